package adapters

import (
	"time"

	"account_backend/internal/feature/auth/domain/entity"
)

// TokenModel is the GORM model for the tokens table.
type TokenModel struct {
	ID       string    `gorm:"primaryKey;size:64"` // SHA-256 hex digest of the bearer token
	UserID   uint      `gorm:"index;not null"`
	IssuedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (TokenModel) TableName() string {
	return "tokens"
}

// ToEntity converts the GORM model to a domain entity.
func (m *TokenModel) ToEntity() *entity.Token {
	return &entity.Token{
		ID:       m.ID,
		UserID:   m.UserID,
		IssuedAt: m.IssuedAt,
	}
}

// TokenModelFromEntity converts a domain entity to a GORM model.
func TokenModelFromEntity(t *entity.Token) *TokenModel {
	return &TokenModel{
		ID:       t.ID,
		UserID:   t.UserID,
		IssuedAt: t.IssuedAt,
	}
}
