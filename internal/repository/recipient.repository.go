package repository

import (
	"context"
	"errors"

	"github.com/aminrz/transfer-registry/internal/model"
	"github.com/aminrz/transfer-registry/pkg/pg"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrRecipientNotFound is returned when no recipient row matches the given id.
	ErrRecipientNotFound = errors.New("recipient not found")
)

type RecipientRepository struct {
	*pg.DB
}

func NewRecipientRepository(db *pg.DB) *RecipientRepository {
	return &RecipientRepository{
		db,
	}
}

func (r *RecipientRepository) Create(ctx context.Context, rec *model.Recipient) (*model.Recipient, error) {
	entity := toRecipientEntity(rec)

	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, classify(err)
	}

	return toRecipientModel(entity), nil
}

func (r *RecipientRepository) Get(ctx context.Context, id int64) (*model.Recipient, error) {
	var entity RecipientEntity

	err := r.Read(ctx).Where("recipient_id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	return toRecipientModel(&entity), nil
}

func (r *RecipientRepository) Update(ctx context.Context, id int64, patch model.RecipientPatch) (int64, error) {
	cols := map[string]interface{}{}
	if patch.Name != nil {
		cols["name"] = *patch.Name
	}
	if patch.AccountInfo != nil {
		cols["account_info"] = *patch.AccountInfo
	}
	if patch.BankName != nil {
		cols["bank_name"] = *patch.BankName
	}
	if patch.SwiftCode != nil {
		cols["swift_code"] = *patch.SwiftCode
	}
	if patch.Relationship != nil {
		cols["relationship"] = string(*patch.Relationship)
	}
	if patch.IsFavorite != nil {
		cols["is_favorite"] = *patch.IsFavorite
	}

	if len(cols) == 0 {
		return r.exists(ctx, id)
	}

	res := r.Write(ctx).Model(&RecipientEntity{}).Where("recipient_id = ?", id).Updates(cols)
	if res.Error != nil {
		return 0, classify(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *RecipientRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.Write(ctx).Where("recipient_id = ?", id).Delete(&RecipientEntity{})
	if res.Error != nil {
		return 0, classify(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *RecipientRepository) ListForUser(ctx context.Context, userID int64) ([]*model.Recipient, error) {
	var entities []*RecipientEntity

	err := r.Read(ctx).
		Where("user_id = ?", userID).
		Order("recipient_id ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}

	return toRecipientModels(entities), nil
}

func (r *RecipientRepository) ListFavoritesForUser(ctx context.Context, userID int64) ([]*model.Recipient, error) {
	var entities []*RecipientEntity

	err := r.Read(ctx).
		Where("user_id = ? AND is_favorite = ?", userID, true).
		Order("recipient_id ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}

	return toRecipientModels(entities), nil
}

// ToggleFavorite flips the favorite flag in a single conditional UPDATE so
// two concurrent toggles cannot interleave a read with a stale write. The
// new value comes back via RETURNING.
func (r *RecipientRepository) ToggleFavorite(ctx context.Context, id int64) (bool, error) {
	var entity RecipientEntity

	res := r.Write(ctx).Model(&entity).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "is_favorite"}}}).
		Where("recipient_id = ?", id).
		Update("is_favorite", gorm.Expr("NOT is_favorite"))
	if res.Error != nil {
		return false, classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return false, ErrRecipientNotFound
	}

	return entity.IsFavorite, nil
}

func (r *RecipientRepository) exists(ctx context.Context, id int64) (int64, error) {
	var count int64
	if err := r.Read(ctx).Model(&RecipientEntity{}).Where("recipient_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
