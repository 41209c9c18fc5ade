package services

import (
	"context"

	"github.com/aminrz/transfer-registry/internal/audit"
	"github.com/aminrz/transfer-registry/internal/model"
	"github.com/aminrz/transfer-registry/pkg/prom"
)

type RecipientRepository interface {
	Create(ctx context.Context, rec *model.Recipient) (*model.Recipient, error)
	Get(ctx context.Context, id int64) (*model.Recipient, error)
	Update(ctx context.Context, id int64, patch model.RecipientPatch) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	ListForUser(ctx context.Context, userID int64) ([]*model.Recipient, error)
	ListFavoritesForUser(ctx context.Context, userID int64) ([]*model.Recipient, error)
	ToggleFavorite(ctx context.Context, id int64) (bool, error)
}

type RecipientService struct {
	repo  RecipientRepository
	audit audit.Recorder
}

func NewRecipientService(repo RecipientRepository, recorder audit.Recorder) *RecipientService {
	return &RecipientService{
		repo:  repo,
		audit: recorder,
	}
}

func (s *RecipientService) Create(ctx context.Context, p model.RecipientCreateRequest) (*model.Recipient, error) {
	if err := p.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	created, err := s.repo.Create(ctx, &model.Recipient{
		UserID:       p.UserID,
		Name:         p.Name,
		AccountInfo:  p.AccountInfo,
		BankName:     p.BankName,
		SwiftCode:    p.SwiftCode,
		Relationship: p.Relationship,
		IsFavorite:   p.IsFavorite,
	})
	if err != nil {
		prom.CountEntityOp("recipient", "create", "error")
		return nil, mapRepoErr(err)
	}

	prom.CountEntityOp("recipient", "create", "ok")
	if s.audit != nil {
		s.audit.Record("recipient", audit.ActionCreate, created.ID)
	}
	return created, nil
}

func (s *RecipientService) Get(ctx context.Context, id int64) (*model.Recipient, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return rec, nil
}

func (s *RecipientService) Update(ctx context.Context, id int64, patch model.RecipientPatch) (*model.Recipient, error) {
	if err := patch.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	count, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		prom.CountEntityOp("recipient", "update", "error")
		return nil, mapRepoErr(err)
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	prom.CountEntityOp("recipient", "update", "ok")
	if s.audit != nil {
		s.audit.Record("recipient", audit.ActionUpdate, id)
	}

	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return rec, nil
}

func (s *RecipientService) Delete(ctx context.Context, id int64) error {
	count, err := s.repo.Delete(ctx, id)
	if err != nil {
		prom.CountEntityOp("recipient", "delete", "error")
		return mapRepoErr(err)
	}
	if count == 0 {
		return ErrNotFound
	}

	prom.CountEntityOp("recipient", "delete", "ok")
	if s.audit != nil {
		s.audit.Record("recipient", audit.ActionDelete, id)
	}
	return nil
}

func (s *RecipientService) ListForUser(ctx context.Context, userID int64) ([]*model.Recipient, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *RecipientService) ListFavoritesForUser(ctx context.Context, userID int64) ([]*model.Recipient, error) {
	return s.repo.ListFavoritesForUser(ctx, userID)
}

// ToggleFavorite flips the flag and reports the new value.
func (s *RecipientService) ToggleFavorite(ctx context.Context, id int64) (bool, error) {
	fav, err := s.repo.ToggleFavorite(ctx, id)
	if err != nil {
		prom.CountEntityOp("recipient", "toggle_favorite", "error")
		return false, mapRepoErr(err)
	}

	prom.CountEntityOp("recipient", "toggle_favorite", "ok")
	if s.audit != nil {
		s.audit.Record("recipient", audit.ActionToggleFavorite, id)
	}
	return fav, nil
}
