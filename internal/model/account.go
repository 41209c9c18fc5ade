package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
	AccountTypeCredit   AccountType = "credit"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCredit:
		return true
	}
	return false
}

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
)

func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyJPY:
		return true
	}
	return false
}

type Account struct {
	ID       int64           `json:"account_id"`
	UserID   int64           `json:"user_id"`
	Balance  decimal.Decimal `json:"balance"`
	Type     AccountType     `json:"account_type"`
	Currency Currency        `json:"currency"`
}

type AccountCreateRequest struct {
	UserID   int64
	Balance  decimal.Decimal
	Type     AccountType
	Currency Currency
}

func (p AccountCreateRequest) Validate() error {
	if p.UserID == 0 {
		return errors.New("user_id is required")
	}
	if p.Balance.IsNegative() {
		return errors.New("balance must not be negative")
	}
	if !p.Type.Valid() {
		return errors.New("account_type must be one of checking, savings, credit")
	}
	if !p.Currency.Valid() {
		return errors.New("currency must be one of USD, EUR, GBP, JPY")
	}
	return nil
}

// AccountPatch carries a sparse update; nil fields are left untouched.
// The owning user of an account never changes.
type AccountPatch struct {
	Balance  *decimal.Decimal
	Type     *AccountType
	Currency *Currency
}

func (p AccountPatch) IsEmpty() bool {
	return p.Balance == nil && p.Type == nil && p.Currency == nil
}

func (p AccountPatch) Validate() error {
	if p.Balance != nil && p.Balance.IsNegative() {
		return errors.New("balance must not be negative")
	}
	if p.Type != nil && !p.Type.Valid() {
		return errors.New("account_type must be one of checking, savings, credit")
	}
	if p.Currency != nil && !p.Currency.Valid() {
		return errors.New("currency must be one of USD, EUR, GBP, JPY")
	}
	return nil
}
