package services

import (
	"context"

	"github.com/aminrz/transfer-registry/internal/audit"
	"github.com/aminrz/transfer-registry/internal/model"
	"github.com/aminrz/transfer-registry/pkg/prom"
)

type TransactionRepository interface {
	Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error)
	Get(ctx context.Context, id int64) (*model.Transaction, error)
	List(ctx context.Context) ([]*model.Transaction, error)
	Update(ctx context.Context, id int64, patch model.TransactionPatch) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// TransactionService registers transfer records. Creating a record does
// not move money between the referenced accounts.
type TransactionService struct {
	repo  TransactionRepository
	audit audit.Recorder
}

func NewTransactionService(repo TransactionRepository, recorder audit.Recorder) *TransactionService {
	return &TransactionService{
		repo:  repo,
		audit: recorder,
	}
}

func (s *TransactionService) Create(ctx context.Context, p model.TransactionCreateRequest) (*model.Transaction, error) {
	if err := p.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	created, err := s.repo.Create(ctx, &model.Transaction{
		SenderAccountID:    p.SenderAccountID,
		RecipientAccountID: p.RecipientAccountID,
		Amount:             p.Amount,
		Currency:           p.Currency,
		Status:             p.Status,
		Type:               p.Type,
		Description:        p.Description,
	})
	if err != nil {
		prom.CountEntityOp("transaction", "create", "error")
		return nil, mapRepoErr(err)
	}

	prom.CountEntityOp("transaction", "create", "ok")
	if s.audit != nil {
		s.audit.Record("transaction", audit.ActionCreate, created.ID)
	}
	return created, nil
}

func (s *TransactionService) Get(ctx context.Context, id int64) (*model.Transaction, error) {
	txn, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return txn, nil
}

func (s *TransactionService) List(ctx context.Context) ([]*model.Transaction, error) {
	return s.repo.List(ctx)
}

func (s *TransactionService) Update(ctx context.Context, id int64, patch model.TransactionPatch) (*model.Transaction, error) {
	if err := patch.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	count, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		prom.CountEntityOp("transaction", "update", "error")
		return nil, mapRepoErr(err)
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	prom.CountEntityOp("transaction", "update", "ok")
	if s.audit != nil {
		s.audit.Record("transaction", audit.ActionUpdate, id)
	}

	txn, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return txn, nil
}

func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	count, err := s.repo.Delete(ctx, id)
	if err != nil {
		prom.CountEntityOp("transaction", "delete", "error")
		return mapRepoErr(err)
	}
	if count == 0 {
		return ErrNotFound
	}

	prom.CountEntityOp("transaction", "delete", "ok")
	if s.audit != nil {
		s.audit.Record("transaction", audit.ActionDelete, id)
	}
	return nil
}
