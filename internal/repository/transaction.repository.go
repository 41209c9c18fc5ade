package repository

import (
	"context"
	"errors"

	"github.com/aminrz/transfer-registry/internal/model"
	"github.com/aminrz/transfer-registry/pkg/pg"
	"gorm.io/gorm"
)

var (
	// ErrTransactionNotFound is returned when no transaction row matches the given id.
	ErrTransactionNotFound = errors.New("transaction not found")
)

type TransactionRepository struct {
	*pg.DB
}

func NewTransactionRepository(db *pg.DB) *TransactionRepository {
	return &TransactionRepository{
		db,
	}
}

// Create appends a transfer record. Balances are not touched; the record is
// intent only.
func (r *TransactionRepository) Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	entity := toTransactionEntity(txn)

	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, classify(err)
	}

	return toTransactionModel(entity), nil
}

func (r *TransactionRepository) Get(ctx context.Context, id int64) (*model.Transaction, error) {
	var entity TransactionEntity

	err := r.Read(ctx).Where("transaction_id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	return toTransactionModel(&entity), nil
}

func (r *TransactionRepository) List(ctx context.Context) ([]*model.Transaction, error) {
	var entities []*TransactionEntity

	if err := r.Read(ctx).Order("transaction_id ASC").Find(&entities).Error; err != nil {
		return nil, err
	}

	return toTransactionModels(entities), nil
}

func (r *TransactionRepository) Update(ctx context.Context, id int64, patch model.TransactionPatch) (int64, error) {
	cols := map[string]interface{}{}
	if patch.SenderAccountID != nil {
		cols["sender_account_id"] = *patch.SenderAccountID
	}
	if patch.RecipientAccountID != nil {
		cols["recipient_account_id"] = *patch.RecipientAccountID
	}
	if patch.Amount != nil {
		cols["amount"] = *patch.Amount
	}
	if patch.Currency != nil {
		cols["currency"] = *patch.Currency
	}
	if patch.Status != nil {
		cols["status"] = *patch.Status
	}
	if patch.Type != nil {
		cols["transaction_type"] = *patch.Type
	}
	if patch.Description != nil {
		cols["description"] = *patch.Description
	}

	if len(cols) == 0 {
		return r.exists(ctx, id)
	}

	res := r.Write(ctx).Model(&TransactionEntity{}).Where("transaction_id = ?", id).Updates(cols)
	if res.Error != nil {
		return 0, classify(res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes a single record. Transactions are a leaf entity; nothing
// cascades from here.
func (r *TransactionRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.Write(ctx).Where("transaction_id = ?", id).Delete(&TransactionEntity{})
	if res.Error != nil {
		return 0, classify(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *TransactionRepository) exists(ctx context.Context, id int64) (int64, error) {
	var count int64
	if err := r.Read(ctx).Model(&TransactionEntity{}).Where("transaction_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
