package repository

import (
	"context"
	"errors"

	"github.com/aminrz/transfer-registry/internal/model"
	"github.com/aminrz/transfer-registry/pkg/pg"
	"gorm.io/gorm"
)

var (
	// ErrAccountNotFound is returned when no account row matches the given id.
	ErrAccountNotFound = errors.New("account not found")
)

type AccountRepository struct {
	*pg.DB
}

func NewAccountRepository(db *pg.DB) *AccountRepository {
	return &AccountRepository{
		db,
	}
}

// Create persists the account as given. The non-negative balance contract
// belongs to the boundary; nothing is clamped here.
func (r *AccountRepository) Create(ctx context.Context, a *model.Account) (*model.Account, error) {
	entity := toAccountEntity(a)

	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, classify(err)
	}

	return toAccountModel(entity), nil
}

func (r *AccountRepository) Get(ctx context.Context, id int64) (*model.Account, error) {
	var entity AccountEntity

	err := r.Read(ctx).Where("account_id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return toAccountModel(&entity), nil
}

func (r *AccountRepository) List(ctx context.Context) ([]*model.Account, error) {
	var entities []*AccountEntity

	if err := r.Read(ctx).Order("account_id ASC").Find(&entities).Error; err != nil {
		return nil, err
	}

	return toAccountModels(entities), nil
}

func (r *AccountRepository) ListForUser(ctx context.Context, userID int64) ([]*model.Account, error) {
	var entities []*AccountEntity

	err := r.Read(ctx).
		Where("user_id = ?", userID).
		Order("account_id ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}

	return toAccountModels(entities), nil
}

func (r *AccountRepository) Update(ctx context.Context, id int64, patch model.AccountPatch) (int64, error) {
	cols := map[string]interface{}{}
	if patch.Balance != nil {
		cols["balance"] = *patch.Balance
	}
	if patch.Type != nil {
		cols["account_type"] = string(*patch.Type)
	}
	if patch.Currency != nil {
		cols["currency"] = string(*patch.Currency)
	}

	if len(cols) == 0 {
		return r.exists(ctx, id)
	}

	res := r.Write(ctx).Model(&AccountEntity{}).Where("account_id = ?", id).Updates(cols)
	if res.Error != nil {
		return 0, classify(res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes the transactions referencing the account on either side,
// then the account row, inside one transaction.
func (r *AccountRepository) Delete(ctx context.Context, id int64) (int64, error) {
	var affected int64

	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := r.Write(ctx).
			Where("sender_account_id = ? OR recipient_account_id = ?", id, id).
			Delete(&TransactionEntity{}).Error; err != nil {
			return err
		}

		res := r.Write(ctx).Where("account_id = ?", id).Delete(&AccountEntity{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, classify(err)
	}

	return affected, nil
}

func (r *AccountRepository) exists(ctx context.Context, id int64) (int64, error) {
	var count int64
	if err := r.Read(ctx).Model(&AccountEntity{}).Where("account_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
