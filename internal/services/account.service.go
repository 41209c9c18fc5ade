package services

import (
	"context"
	"fmt"

	"github.com/aminrz/transfer-registry/internal/audit"
	"github.com/aminrz/transfer-registry/internal/cache"
	"github.com/aminrz/transfer-registry/internal/model"
	"github.com/aminrz/transfer-registry/pkg/prom"
)

type AccountRepository interface {
	Create(ctx context.Context, a *model.Account) (*model.Account, error)
	Get(ctx context.Context, id int64) (*model.Account, error)
	List(ctx context.Context) ([]*model.Account, error)
	Update(ctx context.Context, id int64, patch model.AccountPatch) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type AccountService struct {
	repo  AccountRepository
	cache *cache.ViewCache[model.Account]
	audit audit.Recorder
}

func NewAccountService(repo AccountRepository, viewCache *cache.ViewCache[model.Account], recorder audit.Recorder) *AccountService {
	return &AccountService{
		repo:  repo,
		cache: viewCache,
		audit: recorder,
	}
}

func accountCacheKey(id int64) string {
	return fmt.Sprintf("account:%d", id)
}

func (s *AccountService) Create(ctx context.Context, p model.AccountCreateRequest) (*model.Account, error) {
	if err := p.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	created, err := s.repo.Create(ctx, &model.Account{
		UserID:   p.UserID,
		Balance:  p.Balance,
		Type:     p.Type,
		Currency: p.Currency,
	})
	if err != nil {
		prom.CountEntityOp("account", "create", "error")
		return nil, mapRepoErr(err)
	}

	prom.CountEntityOp("account", "create", "ok")
	if s.audit != nil {
		s.audit.Record("account", audit.ActionCreate, created.ID)
	}
	return created, nil
}

func (s *AccountService) Get(ctx context.Context, id int64) (*model.Account, error) {
	if s.cache != nil {
		if a, ok := s.cache.Get(accountCacheKey(id)); ok {
			return a, nil
		}
	}

	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	if s.cache != nil {
		s.cache.Set(accountCacheKey(id), a)
	}
	return a, nil
}

func (s *AccountService) List(ctx context.Context) ([]*model.Account, error) {
	return s.repo.List(ctx)
}

func (s *AccountService) Update(ctx context.Context, id int64, patch model.AccountPatch) (*model.Account, error) {
	if err := patch.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	count, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		prom.CountEntityOp("account", "update", "error")
		return nil, mapRepoErr(err)
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	if s.cache != nil {
		s.cache.Delete(accountCacheKey(id))
	}
	prom.CountEntityOp("account", "update", "ok")
	if s.audit != nil {
		s.audit.Record("account", audit.ActionUpdate, id)
	}

	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return a, nil
}

// Delete removes the account together with every transaction that
// references it on either side.
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	count, err := s.repo.Delete(ctx, id)
	if err != nil {
		prom.CountEntityOp("account", "delete", "error")
		return mapRepoErr(err)
	}
	if count == 0 {
		return ErrNotFound
	}

	if s.cache != nil {
		s.cache.Delete(accountCacheKey(id))
	}
	prom.CountEntityOp("account", "delete", "ok")
	if s.audit != nil {
		s.audit.Record("account", audit.ActionDelete, id)
	}
	return nil
}
