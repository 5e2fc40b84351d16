// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"account_backend/internal/feature/auth/adapters"
	"account_backend/internal/feature/auth/usecase"
	"account_backend/internal/platform/token"
)

// NewTokenRepository creates a TokenRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the relational database.
func NewTokenRepository(rdb *redis.Client, db *gorm.DB) usecase.TokenRepository {
	if rdb != nil {
		return token.NewTokenRedis(rdb, "token")
	}
	return adapters.NewTokenGorm(db)
}
