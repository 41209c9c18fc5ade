package services

import (
	"errors"
	"fmt"

	"github.com/aminrz/transfer-registry/internal/repository"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateKey     = errors.New("record already exists")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidReference = errors.New("referenced record does not exist")
)

func invalidInput(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

// mapRepoErr translates storage sentinels into the service taxonomy.
// Everything unrecognized passes through untouched.
func mapRepoErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateKey):
		return ErrDuplicateKey
	case errors.Is(err, repository.ErrForeignKeyViolation):
		return ErrInvalidReference
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrAccountNotFound),
		errors.Is(err, repository.ErrTransactionNotFound),
		errors.Is(err, repository.ErrRecipientNotFound):
		return ErrNotFound
	}
	return err
}
