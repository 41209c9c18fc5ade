package repository

import (
	"github.com/aminrz/transfer-registry/internal/model"
	"github.com/shopspring/decimal"
)

type AccountEntity struct {
	ID       int64           `db:"account_id"   gorm:"primaryKey;autoIncrement;column:account_id"`
	UserID   int64           `db:"user_id"      gorm:"column:user_id;not null;index"`
	User     *UserEntity     `gorm:"foreignKey:UserID;references:ID"`
	Balance  decimal.Decimal `db:"balance"      gorm:"column:balance;not null;type:numeric(20,4)"`
	Type     string          `db:"account_type" gorm:"column:account_type;not null"`
	Currency string          `db:"currency"     gorm:"column:currency;not null"`
}

func (AccountEntity) TableName() string {
	return "accounts"
}

func toAccountEntity(m *model.Account) *AccountEntity {
	if m == nil {
		return nil
	}
	return &AccountEntity{
		ID:       m.ID,
		UserID:   m.UserID,
		Balance:  m.Balance,
		Type:     string(m.Type),
		Currency: string(m.Currency),
	}
}

func toAccountModel(e *AccountEntity) *model.Account {
	if e == nil {
		return nil
	}
	return &model.Account{
		ID:       e.ID,
		UserID:   e.UserID,
		Balance:  e.Balance,
		Type:     model.AccountType(e.Type),
		Currency: model.Currency(e.Currency),
	}
}

func toAccountModels(entities []*AccountEntity) []*model.Account {
	if entities == nil {
		return nil
	}
	models := make([]*model.Account, len(entities))
	for i, e := range entities {
		models[i] = toAccountModel(e)
	}
	return models
}
