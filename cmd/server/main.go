package main

import (
	"context"
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"account_backend/internal/app/bootstrap"
	"account_backend/internal/app/di"
	"account_backend/internal/app/router"
	authadapters "account_backend/internal/feature/auth/adapters"
	"account_backend/internal/feature/auth/domain/entity"
	authhandler "account_backend/internal/feature/auth/transport/handler"
	authusecase "account_backend/internal/feature/auth/usecase"
	usersadapters "account_backend/internal/feature/users/adapters"
	userhandler "account_backend/internal/feature/users/transport/handler"
	usersusecase "account_backend/internal/feature/users/usecase"
	"account_backend/internal/platform/config"
	platformdb "account_backend/internal/platform/db"
	"account_backend/internal/platform/password"
	platformredis "account_backend/internal/platform/redis"
	"account_backend/internal/shared/ratelimiter"
)

func main() {
	cfg := config.Load()

	// db
	db := platformdb.Open(cfg, &entity.User{}, &authadapters.TokenModel{})

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(cfg); err != nil {
		log.Println("[WARN] Redis unavailable. Falling back to the database token store.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	authUserRepo := authadapters.NewUserGorm(db)
	userRepo := usersadapters.NewUserGorm(db)
	tokenRepo := di.NewTokenRepository(rdb, db)

	// Hasher
	hasher := password.NewBcryptHasher(cfg.BcryptCost)

	// Usecase
	authUC := authusecase.NewAuthUsecase(authUserRepo, tokenRepo, hasher)
	userUC := usersusecase.NewUserUsecase(userRepo, tokenRepo, hasher)

	// 初期管理者の作成
	if err := bootstrap.Admin(context.Background(), authUserRepo, hasher, cfg); err != nil {
		log.Fatalf("failed to bootstrap admin: %v", err)
	}

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	userH := userhandler.NewUserHandler(userUC)

	// ログイン試行のレートリミッタ
	loginLimiter := ratelimiter.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)

	// ルータ生成
	r := router.NewRouter(authH, userH, authUC, loginLimiter)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
