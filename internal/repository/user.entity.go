package repository

import (
	"time"

	"github.com/aminrz/transfer-registry/internal/model"
)

type UserEntity struct {
	ID           int64     `db:"user_id"       gorm:"primaryKey;autoIncrement;column:user_id"`
	Username     string    `db:"username"      gorm:"column:username;not null;unique"`
	Email        string    `db:"email"         gorm:"column:email;not null;unique"`
	PasswordHash string    `db:"password_hash" gorm:"column:password_hash;not null"`
	FirstName    string    `db:"first_name"    gorm:"column:first_name;not null"`
	LastName     string    `db:"last_name"     gorm:"column:last_name;not null"`
	PhoneNumber  string    `db:"phone_number"  gorm:"column:phone_number;not null"`
	IsVerified   bool      `db:"is_verified"   gorm:"column:is_verified;not null;default:false"`
	CreatedAt    time.Time `db:"created_at"    gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `db:"updated_at"    gorm:"column:updated_at;autoUpdateTime"`
}

func (UserEntity) TableName() string {
	return "users"
}

func toUserEntity(m *model.User) *UserEntity {
	if m == nil {
		return nil
	}
	return &UserEntity{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		PhoneNumber:  m.PhoneNumber,
		IsVerified:   m.IsVerified,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toUserModel(e *UserEntity) *model.User {
	if e == nil {
		return nil
	}
	return &model.User{
		ID:           e.ID,
		Username:     e.Username,
		Email:        e.Email,
		PasswordHash: e.PasswordHash,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		PhoneNumber:  e.PhoneNumber,
		IsVerified:   e.IsVerified,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toUserModels(entities []*UserEntity) []*model.User {
	if entities == nil {
		return nil
	}
	models := make([]*model.User, len(entities))
	for i, e := range entities {
		models[i] = toUserModel(e)
	}
	return models
}
