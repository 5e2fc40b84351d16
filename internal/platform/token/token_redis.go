// Package token provides the Redis-backed token store.
package token

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"account_backend/internal/feature/auth/domain/entity"
	"account_backend/internal/feature/auth/usecase"
)

// TokenRedis implements usecase.TokenRepository using Redis.
// Each association lives under "<prefix>:<digest>" with the set
// "<prefix>:user:<id>" tracking a user's live tokens for bulk revocation.
type TokenRedis struct {
	client *redis.Client
	prefix string
}

// Compile-time check to ensure TokenRedis implements TokenRepository.
var _ usecase.TokenRepository = (*TokenRedis)(nil)

// NewTokenRedis creates a new TokenRedis instance.
func NewTokenRedis(client *redis.Client, prefix string) *TokenRedis {
	return &TokenRedis{
		client: client,
		prefix: prefix,
	}
}

// tokenKey returns the Redis key for a token association.
func (r *TokenRedis) tokenKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

// userTokensKey returns the Redis key for a user's token set.
func (r *TokenRedis) userTokensKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", r.prefix, userID)
}

// Create persists a new token association to Redis.
// Tokens have no built-in expiry; revocation is always explicit.
func (r *TokenRedis) Create(ctx context.Context, token *entity.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := r.client.Set(ctx, r.tokenKey(token.ID), data, 0).Err(); err != nil {
		return err
	}

	// Track in the user's token set for bulk revocation
	return r.client.SAdd(ctx, r.userTokensKey(token.UserID), token.ID).Err()
}

// FindByID retrieves a token association by its digest.
func (r *TokenRedis) FindByID(ctx context.Context, id string) (*entity.Token, error) {
	data, err := r.client.Get(ctx, r.tokenKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, usecase.ErrTokenNotFound
		}
		return nil, err
	}

	var token entity.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token: %w", err)
	}

	return &token, nil
}

// Delete removes a token association.
// Deleting a digest that does not exist is a no-op.
func (r *TokenRedis) Delete(ctx context.Context, id string) error {
	token, err := r.FindByID(ctx, id)
	if err != nil {
		if err == usecase.ErrTokenNotFound {
			return nil
		}
		return err
	}

	if err := r.client.Del(ctx, r.tokenKey(id)).Err(); err != nil {
		return err
	}
	return r.client.SRem(ctx, r.userTokensKey(token.UserID), id).Err()
}

// DeleteAllByUserID removes every token association owned by a user.
func (r *TokenRedis) DeleteAllByUserID(ctx context.Context, userID uint) error {
	ids, err := r.client.SMembers(ctx, r.userTokensKey(userID)).Result()
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := r.client.Del(ctx, r.tokenKey(id)).Err(); err != nil {
			return err
		}
	}

	return r.client.Del(ctx, r.userTokensKey(userID)).Err()
}
