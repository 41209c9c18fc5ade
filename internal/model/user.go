package model

import (
	"errors"
	"time"
)

type User struct {
	ID           int64     `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PhoneNumber  string    `json:"phone_number"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserCreateRequest is the input for creating a user. PasswordHash is an
// opaque credential string; its derivation happens upstream.
type UserCreateRequest struct {
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	PhoneNumber  string
	IsVerified   bool
}

func (p UserCreateRequest) Validate() error {
	if p.Username == "" {
		return errors.New("username is required")
	}
	if p.Email == "" {
		return errors.New("email is required")
	}
	if p.PasswordHash == "" {
		return errors.New("password is required")
	}
	if p.FirstName == "" {
		return errors.New("first_name is required")
	}
	if p.LastName == "" {
		return errors.New("last_name is required")
	}
	if p.PhoneNumber == "" {
		return errors.New("phone_number is required")
	}
	return nil
}

// UserPatch carries a sparse update; nil fields are left untouched.
type UserPatch struct {
	Username     *string
	Email        *string
	PasswordHash *string
	FirstName    *string
	LastName     *string
	PhoneNumber  *string
	IsVerified   *bool
}

func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && p.PasswordHash == nil &&
		p.FirstName == nil && p.LastName == nil && p.PhoneNumber == nil &&
		p.IsVerified == nil
}
