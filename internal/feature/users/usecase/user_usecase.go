package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"account_backend/internal/feature/auth/domain/entity"
)

// minPasswordLength is the minimum accepted password length.
const minPasswordLength = 8

// UserRepository abstracts the persistence layer for user records.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type UserRepository interface {
	// List retrieves all users ordered by ID.
	List(ctx context.Context) ([]*entity.User, error)

	// Create persists a new user. Returns ErrEmailAlreadyExists when the
	// email is already taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by ID. Returns ErrUserNotFound when absent.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Update persists changes to an existing user. Returns
	// ErrEmailAlreadyExists when the new email is already taken.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user by ID. Returns ErrUserNotFound when absent.
	Delete(ctx context.Context, id uint) error
}

// Hasher hashes plaintext passwords before they reach storage.
type Hasher interface {
	Hash(plaintext string) (string, error)
}

// TokenRevoker revokes all live tokens of a user. Satisfied by the token
// stores; used to cut off sessions of deleted accounts.
type TokenRevoker interface {
	DeleteAllByUserID(ctx context.Context, userID uint) error
}

// CreateUserInput carries the fields for creating a user.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	IsAdmin  bool
}

// UpdateUserInput carries a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	IsAdmin  *bool
}

// userUsecase implements the user management business logic.
// Access control is enforced by the middleware chain in front of the
// handlers, not here; by the time these methods run the caller has already
// been authenticated and authorized as an administrator.
type userUsecase struct {
	users  UserRepository
	tokens TokenRevoker
	hasher Hasher
}

// NewUserUsecase creates a new instance of userUsecase.
func NewUserUsecase(users UserRepository, tokens TokenRevoker, hasher Hasher) *userUsecase {
	return &userUsecase{
		users:  users,
		tokens: tokens,
		hasher: hasher,
	}
}

// List returns all users. Password hashes stay internal: the entity never
// serializes the password field.
func (u *userUsecase) List(ctx context.Context) ([]*entity.User, error) {
	return u.users.List(ctx)
}

// Create stores a new user with a hashed password.
func (u *userUsecase) Create(ctx context.Context, input CreateUserInput) (*entity.User, error) {
	if len(input.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: must be at least %d characters long", ErrWeakPassword, minPasswordLength)
	}

	hashed, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashed,
		IsAdmin:  input.IsAdmin,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get retrieves a single user by ID.
func (u *userUsecase) Get(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// Update applies a partial update to a user. Only supplied fields change;
// a supplied password is re-hashed before storage.
func (u *userUsecase) Update(ctx context.Context, id uint, input UpdateUserInput) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}
	if input.Password != nil {
		if len(*input.Password) < minPasswordLength {
			return nil, fmt.Errorf("%w: must be at least %d characters long", ErrWeakPassword, minPasswordLength)
		}
		hashed, err := u.hasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hashed
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	// Re-read so timestamps maintained by the store are current.
	return u.users.FindByID(ctx, id)
}

// Delete removes a user and revokes all of their live tokens, so a deleted
// account cannot keep calling the API with a previously issued token.
func (u *userUsecase) Delete(ctx context.Context, id uint) error {
	if err := u.users.Delete(ctx, id); err != nil {
		return err
	}
	if err := u.tokens.DeleteAllByUserID(ctx, id); err != nil {
		// The record is gone; failing the request now would leave the client
		// retrying a delete that cannot succeed again.
		slog.Warn("failed to revoke tokens of deleted user", "user_id", id, "error", err)
	}
	return nil
}
