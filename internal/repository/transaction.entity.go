package repository

import (
	"time"

	"github.com/aminrz/transfer-registry/internal/model"
	"github.com/shopspring/decimal"
)

type TransactionEntity struct {
	ID                 int64           `db:"transaction_id"       gorm:"primaryKey;autoIncrement;column:transaction_id"`
	SenderAccountID    int64           `db:"sender_account_id"    gorm:"column:sender_account_id;not null;index"`
	Sender             *AccountEntity  `gorm:"foreignKey:SenderAccountID;references:ID"`
	RecipientAccountID int64           `db:"recipient_account_id" gorm:"column:recipient_account_id;not null;index"`
	Recipient          *AccountEntity  `gorm:"foreignKey:RecipientAccountID;references:ID"`
	Amount             decimal.Decimal `db:"amount"               gorm:"column:amount;not null;type:numeric(20,4)"`
	Currency           string          `db:"currency"             gorm:"column:currency;not null"`
	Status             string          `db:"status"               gorm:"column:status;not null"`
	Type               string          `db:"transaction_type"     gorm:"column:transaction_type;not null"`
	Description        string          `db:"description"          gorm:"column:description"`
	CreatedAt          time.Time       `db:"created_at"           gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time       `db:"updated_at"           gorm:"column:updated_at;autoUpdateTime"`
}

func (TransactionEntity) TableName() string {
	return "transactions"
}

func toTransactionEntity(m *model.Transaction) *TransactionEntity {
	if m == nil {
		return nil
	}
	return &TransactionEntity{
		ID:                 m.ID,
		SenderAccountID:    m.SenderAccountID,
		RecipientAccountID: m.RecipientAccountID,
		Amount:             m.Amount,
		Currency:           m.Currency,
		Status:             m.Status,
		Type:               m.Type,
		Description:        m.Description,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toTransactionModel(e *TransactionEntity) *model.Transaction {
	if e == nil {
		return nil
	}
	return &model.Transaction{
		ID:                 e.ID,
		SenderAccountID:    e.SenderAccountID,
		RecipientAccountID: e.RecipientAccountID,
		Amount:             e.Amount,
		Currency:           e.Currency,
		Status:             e.Status,
		Type:               e.Type,
		Description:        e.Description,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

func toTransactionModels(entities []*TransactionEntity) []*model.Transaction {
	if entities == nil {
		return nil
	}
	models := make([]*model.Transaction, len(entities))
	for i, e := range entities {
		models[i] = toTransactionModel(e)
	}
	return models
}
