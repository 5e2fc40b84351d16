package usecase

import (
	"context"

	"account_backend/internal/feature/auth/domain/entity"
)

// TokenRepository abstracts the persistence layer for token associations.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters / platform).
//
// The repository only ever sees token digests (entity.Token.ID); plaintext
// bearer tokens never reach the storage layer.
type TokenRepository interface {
	// Create persists a new token association.
	Create(ctx context.Context, token *entity.Token) error

	// FindByID retrieves a token association by its digest.
	// Returns ErrTokenNotFound when no association exists.
	FindByID(ctx context.Context, id string) (*entity.Token, error)

	// Delete removes a token association by its digest.
	// Deleting an unknown digest is not an error (revocation is idempotent).
	Delete(ctx context.Context, id string) error

	// DeleteAllByUserID removes every token association owned by a user.
	DeleteAllByUserID(ctx context.Context, userID uint) error
}
