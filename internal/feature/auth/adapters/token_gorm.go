package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"account_backend/internal/feature/auth/domain/entity"
	"account_backend/internal/feature/auth/usecase"
)

// tokenGorm is a GORM implementation of the TokenRepository interface.
// It is the durable fallback used when Redis is unavailable.
type tokenGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure tokenGorm implements TokenRepository.
var _ usecase.TokenRepository = (*tokenGorm)(nil)

// NewTokenGorm creates a new instance of tokenGorm.
func NewTokenGorm(db *gorm.DB) *tokenGorm {
	return &tokenGorm{db: db}
}

// Create persists a new token association to the database.
func (r *tokenGorm) Create(ctx context.Context, token *entity.Token) error {
	model := TokenModelFromEntity(token)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID retrieves a token association by its digest.
func (r *tokenGorm) FindByID(ctx context.Context, id string) (*entity.Token, error) {
	var model TokenModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTokenNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// Delete removes a token association by its digest.
// Deleting a digest that does not exist is a no-op.
func (r *tokenGorm) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&TokenModel{}, "id = ?", id).Error
}

// DeleteAllByUserID removes every token association owned by a user.
func (r *tokenGorm) DeleteAllByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Delete(&TokenModel{}, "user_id = ?", userID).Error
}
