package repository

import (
	"context"
	"errors"

	"github.com/aminrz/transfer-registry/internal/model"
	"github.com/aminrz/transfer-registry/pkg/pg"
	"gorm.io/gorm"
)

var (
	// ErrUserNotFound is returned when no user row matches the given id.
	ErrUserNotFound = errors.New("user not found")
)

type UserRepository struct {
	*pg.DB
}

func NewUserRepository(db *pg.DB) *UserRepository {
	return &UserRepository{
		db,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	entity := toUserEntity(u)

	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, classify(err)
	}

	return toUserModel(entity), nil
}

func (r *UserRepository) Get(ctx context.Context, id int64) (*model.User, error) {
	var entity UserEntity

	err := r.Read(ctx).Where("user_id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return toUserModel(&entity), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	var entities []*UserEntity

	if err := r.Read(ctx).Order("user_id ASC").Find(&entities).Error; err != nil {
		return nil, err
	}

	return toUserModels(entities), nil
}

// Update applies the non-nil fields of the patch. An empty patch issues no
// UPDATE at all; the return value is still 0 or 1 depending on existence.
func (r *UserRepository) Update(ctx context.Context, id int64, patch model.UserPatch) (int64, error) {
	cols := map[string]interface{}{}
	if patch.Username != nil {
		cols["username"] = *patch.Username
	}
	if patch.Email != nil {
		cols["email"] = *patch.Email
	}
	if patch.PasswordHash != nil {
		cols["password_hash"] = *patch.PasswordHash
	}
	if patch.FirstName != nil {
		cols["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		cols["last_name"] = *patch.LastName
	}
	if patch.PhoneNumber != nil {
		cols["phone_number"] = *patch.PhoneNumber
	}
	if patch.IsVerified != nil {
		cols["is_verified"] = *patch.IsVerified
	}

	if len(cols) == 0 {
		return r.exists(ctx, id)
	}

	res := r.Write(ctx).Model(&UserEntity{}).Where("user_id = ?", id).Updates(cols)
	if res.Error != nil {
		return 0, classify(res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes the user together with everything hanging off it: first the
// transactions touching any of the user's accounts (as sender or recipient),
// then the accounts, then the user row. All three statements share one
// transaction so a failure partway leaves prior state unchanged. Recipients
// are cascaded by the store's own FK.
func (r *UserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	var affected int64

	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		senderSub := r.Write(ctx).Model(&AccountEntity{}).Select("account_id").Where("user_id = ?", id)
		recipientSub := r.Write(ctx).Model(&AccountEntity{}).Select("account_id").Where("user_id = ?", id)

		if err := r.Write(ctx).
			Where("sender_account_id IN (?) OR recipient_account_id IN (?)", senderSub, recipientSub).
			Delete(&TransactionEntity{}).Error; err != nil {
			return err
		}

		if err := r.Write(ctx).Where("user_id = ?", id).Delete(&AccountEntity{}).Error; err != nil {
			return err
		}

		res := r.Write(ctx).Where("user_id = ?", id).Delete(&UserEntity{})
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

func (r *UserRepository) exists(ctx context.Context, id int64) (int64, error) {
	var count int64
	if err := r.Read(ctx).Model(&UserEntity{}).Where("user_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
