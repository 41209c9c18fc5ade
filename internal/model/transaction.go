package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a recorded transfer intent between two accounts. Creating
// one does not move money; balances are never touched by this record.
type Transaction struct {
	ID                 int64           `json:"transaction_id"`
	SenderAccountID    int64           `json:"sender_account_id"`
	RecipientAccountID int64           `json:"recipient_account_id"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	Status             string          `json:"status"` // e.g. "pending" | "completed"
	Type               string          `json:"transaction_type"`
	Description        string          `json:"description,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

type TransactionCreateRequest struct {
	SenderAccountID    int64
	RecipientAccountID int64
	Amount             decimal.Decimal
	Currency           string
	Status             string
	Type               string
	Description        string
}

func (p TransactionCreateRequest) Validate() error {
	if p.SenderAccountID == 0 {
		return errors.New("sender_account_id is required")
	}
	if p.RecipientAccountID == 0 {
		return errors.New("recipient_account_id is required")
	}
	if p.Amount.IsNegative() {
		return errors.New("amount must not be negative")
	}
	if p.Currency == "" {
		return errors.New("currency is required")
	}
	if p.Status == "" {
		return errors.New("status is required")
	}
	if p.Type == "" {
		return errors.New("transaction_type is required")
	}
	return nil
}

// TransactionPatch carries a sparse update; nil fields are left untouched.
type TransactionPatch struct {
	SenderAccountID    *int64
	RecipientAccountID *int64
	Amount             *decimal.Decimal
	Currency           *string
	Status             *string
	Type               *string
	Description        *string
}

func (p TransactionPatch) IsEmpty() bool {
	return p.SenderAccountID == nil && p.RecipientAccountID == nil &&
		p.Amount == nil && p.Currency == nil && p.Status == nil &&
		p.Type == nil && p.Description == nil
}

func (p TransactionPatch) Validate() error {
	if p.Amount != nil && p.Amount.IsNegative() {
		return errors.New("amount must not be negative")
	}
	return nil
}
