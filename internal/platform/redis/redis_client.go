package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"account_backend/internal/platform/config"
)

// NewRedisClient connects to Redis and verifies the connection with a ping.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	addr := cfg.RedisHost + ":" + cfg.RedisPort

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// 接続確認
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
