package model

import (
	"errors"
	"unicode/utf8"
)

// Relationship classifies a saved payee relative to the owning user.
type Relationship string

const (
	RelationshipFamily   Relationship = "family"
	RelationshipFriend   Relationship = "friend"
	RelationshipBusiness Relationship = "business"
	RelationshipOther    Relationship = "other"
)

func (r Relationship) Valid() bool {
	switch r {
	case RelationshipFamily, RelationshipFriend, RelationshipBusiness, RelationshipOther:
		return true
	}
	return false
}

// Recipient is a saved payee profile. It lives outside the account and
// transaction graph; account_info is an opaque external reference.
type Recipient struct {
	ID           int64        `json:"recipient_id"`
	UserID       int64        `json:"user_id"`
	Name         string       `json:"name"`
	AccountInfo  string       `json:"account_info"`
	BankName     string       `json:"bank_name"`
	SwiftCode    string       `json:"swift_code"`
	Relationship Relationship `json:"relationship"`
	IsFavorite   bool         `json:"is_favorite"`
}

type RecipientCreateRequest struct {
	UserID       int64
	Name         string
	AccountInfo  string
	BankName     string
	SwiftCode    string
	Relationship Relationship
	IsFavorite   bool
}

func (p RecipientCreateRequest) Validate() error {
	if p.UserID == 0 {
		return errors.New("user_id is required")
	}
	if err := checkLen("name", p.Name, 1, 100); err != nil {
		return err
	}
	if err := checkLen("account_info", p.AccountInfo, 1, 100); err != nil {
		return err
	}
	if err := checkLen("bank_name", p.BankName, 1, 100); err != nil {
		return err
	}
	if err := checkLen("swift_code", p.SwiftCode, 8, 11); err != nil {
		return err
	}
	if !p.Relationship.Valid() {
		return errors.New("relationship must be one of family, friend, business, other")
	}
	return nil
}

// RecipientPatch carries a sparse update; nil fields are left untouched.
type RecipientPatch struct {
	Name         *string
	AccountInfo  *string
	BankName     *string
	SwiftCode    *string
	Relationship *Relationship
	IsFavorite   *bool
}

func (p RecipientPatch) IsEmpty() bool {
	return p.Name == nil && p.AccountInfo == nil && p.BankName == nil &&
		p.SwiftCode == nil && p.Relationship == nil && p.IsFavorite == nil
}

func (p RecipientPatch) Validate() error {
	if p.Name != nil {
		if err := checkLen("name", *p.Name, 1, 100); err != nil {
			return err
		}
	}
	if p.AccountInfo != nil {
		if err := checkLen("account_info", *p.AccountInfo, 1, 100); err != nil {
			return err
		}
	}
	if p.BankName != nil {
		if err := checkLen("bank_name", *p.BankName, 1, 100); err != nil {
			return err
		}
	}
	if p.SwiftCode != nil {
		if err := checkLen("swift_code", *p.SwiftCode, 8, 11); err != nil {
			return err
		}
	}
	if p.Relationship != nil && !p.Relationship.Valid() {
		return errors.New("relationship must be one of family, friend, business, other")
	}
	return nil
}

func checkLen(field, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		return errors.New(field + " length is out of range")
	}
	return nil
}
