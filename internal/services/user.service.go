package services

import (
	"context"
	"fmt"

	"github.com/aminrz/transfer-registry/internal/audit"
	"github.com/aminrz/transfer-registry/internal/cache"
	"github.com/aminrz/transfer-registry/internal/model"
	"github.com/aminrz/transfer-registry/pkg/prom"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, id int64, patch model.UserPatch) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// AccountLister exposes the account rows owned by one user. The user
// service needs it to invalidate account views swept up by a cascade
// delete.
type AccountLister interface {
	ListForUser(ctx context.Context, userID int64) ([]*model.Account, error)
}

type UserService struct {
	repo         UserRepository
	cache        *cache.ViewCache[model.User]
	accounts     AccountLister
	accountCache *cache.ViewCache[model.Account]
	audit        audit.Recorder
}

func NewUserService(repo UserRepository, viewCache *cache.ViewCache[model.User], accounts AccountLister, accountCache *cache.ViewCache[model.Account], recorder audit.Recorder) *UserService {
	return &UserService{
		repo:         repo,
		cache:        viewCache,
		accounts:     accounts,
		accountCache: accountCache,
		audit:        recorder,
	}
}

func userCacheKey(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *UserService) Create(ctx context.Context, p model.UserCreateRequest) (*model.User, error) {
	if err := p.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	created, err := s.repo.Create(ctx, &model.User{
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		PhoneNumber:  p.PhoneNumber,
		IsVerified:   p.IsVerified,
	})
	if err != nil {
		prom.CountEntityOp("user", "create", "error")
		return nil, mapRepoErr(err)
	}

	prom.CountEntityOp("user", "create", "ok")
	if s.audit != nil {
		s.audit.Record("user", audit.ActionCreate, created.ID)
	}
	return created, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	if s.cache != nil {
		if u, ok := s.cache.Get(userCacheKey(id)); ok {
			return u, nil
		}
	}

	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	if s.cache != nil {
		s.cache.Set(userCacheKey(id), u)
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	return s.repo.List(ctx)
}

// Update applies a sparse patch and returns the fresh record. An empty
// patch leaves the row untouched but still reports whether it exists.
func (s *UserService) Update(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error) {
	count, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		prom.CountEntityOp("user", "update", "error")
		return nil, mapRepoErr(err)
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	if s.cache != nil {
		s.cache.Delete(userCacheKey(id))
	}
	prom.CountEntityOp("user", "update", "ok")
	if s.audit != nil {
		s.audit.Record("user", audit.ActionUpdate, id)
	}

	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return u, nil
}

// Delete removes the user and, through the storage cascade, their
// accounts and transactions. Cached views of the swept accounts are
// invalidated alongside the user's own.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	var doomedAccounts []*model.Account
	if s.accounts != nil && s.accountCache != nil {
		doomedAccounts, _ = s.accounts.ListForUser(ctx, id)
	}

	count, err := s.repo.Delete(ctx, id)
	if err != nil {
		prom.CountEntityOp("user", "delete", "error")
		return mapRepoErr(err)
	}
	if count == 0 {
		return ErrNotFound
	}

	if s.cache != nil {
		s.cache.Delete(userCacheKey(id))
	}
	for _, a := range doomedAccounts {
		s.accountCache.Delete(accountCacheKey(a.ID))
	}
	prom.CountEntityOp("user", "delete", "ok")
	if s.audit != nil {
		s.audit.Record("user", audit.ActionDelete, id)
	}
	return nil
}
