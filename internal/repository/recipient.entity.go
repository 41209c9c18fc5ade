package repository

import (
	"github.com/aminrz/transfer-registry/internal/model"
)

// RecipientEntity rows are removed by the store itself when the owning user
// goes away (ON DELETE CASCADE); the user delete path never touches them.
type RecipientEntity struct {
	ID           int64       `db:"recipient_id" gorm:"primaryKey;autoIncrement;column:recipient_id"`
	UserID       int64       `db:"user_id"      gorm:"column:user_id;not null;index"`
	User         *UserEntity `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Name         string      `db:"name"         gorm:"column:name;not null"`
	AccountInfo  string      `db:"account_info" gorm:"column:account_info;not null"`
	BankName     string      `db:"bank_name"    gorm:"column:bank_name;not null"`
	SwiftCode    string      `db:"swift_code"   gorm:"column:swift_code;not null"`
	Relationship string      `db:"relationship" gorm:"column:relationship;not null"`
	IsFavorite   bool        `db:"is_favorite"  gorm:"column:is_favorite;not null;default:false"`
}

func (RecipientEntity) TableName() string {
	return "recipients"
}

func toRecipientEntity(m *model.Recipient) *RecipientEntity {
	if m == nil {
		return nil
	}
	return &RecipientEntity{
		ID:           m.ID,
		UserID:       m.UserID,
		Name:         m.Name,
		AccountInfo:  m.AccountInfo,
		BankName:     m.BankName,
		SwiftCode:    m.SwiftCode,
		Relationship: string(m.Relationship),
		IsFavorite:   m.IsFavorite,
	}
}

func toRecipientModel(e *RecipientEntity) *model.Recipient {
	if e == nil {
		return nil
	}
	return &model.Recipient{
		ID:           e.ID,
		UserID:       e.UserID,
		Name:         e.Name,
		AccountInfo:  e.AccountInfo,
		BankName:     e.BankName,
		SwiftCode:    e.SwiftCode,
		Relationship: model.Relationship(e.Relationship),
		IsFavorite:   e.IsFavorite,
	}
}

func toRecipientModels(entities []*RecipientEntity) []*model.Recipient {
	if entities == nil {
		return nil
	}
	models := make([]*model.Recipient, len(entities))
	for i, e := range entities {
		models[i] = toRecipientModel(e)
	}
	return models
}
