// Package adapters provides repository implementations for the users feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"account_backend/internal/feature/auth/domain/entity"
	"account_backend/internal/feature/users/usecase"
	platformdb "account_backend/internal/platform/db"
)

// userGorm is a GORM implementation of the users feature's UserRepository.
// It operates on the same users table the auth feature reads from; the
// database remains the single owner of user records.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a new instance of userGorm.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// List retrieves all users ordered by ID.
func (r *userGorm) List(ctx context.Context) ([]*entity.User, error) {
	var users []*entity.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Create persists a new user. Email uniqueness is enforced atomically by the
// database constraint at write time, not checked-then-written.
func (r *userGorm) Create(ctx context.Context, user *entity.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if platformdb.IsDuplicateKey(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID retrieves a user by ID.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update persists all fields of the given user.
func (r *userGorm) Update(ctx context.Context, user *entity.User) error {
	result := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", user.ID).
		Updates(map[string]any{
			"name":     user.Name,
			"email":    user.Email,
			"password": user.Password,
			"is_admin": user.IsAdmin,
		})
	if result.Error != nil {
		if platformdb.IsDuplicateKey(result.Error) {
			return usecase.ErrEmailAlreadyExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// Delete removes a user by ID.
func (r *userGorm) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}
