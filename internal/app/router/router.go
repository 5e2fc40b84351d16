package router

import (
	"github.com/gin-gonic/gin"

	authhandler "account_backend/internal/feature/auth/transport/handler"
	authmw "account_backend/internal/feature/auth/transport/middleware"
	userhandler "account_backend/internal/feature/users/transport/handler"
	"account_backend/internal/platform/http/handler"
	platformmw "account_backend/internal/platform/http/middleware"
	"account_backend/internal/shared/ratelimiter"
)

// NewRouter assembles the HTTP routing table. The middleware composition
// fixes the pipeline order: request logging, then authentication, then the
// admin gate, then the operation. No user management handler is reachable
// without passing through AuthRequired and AdminOnly.
func NewRouter(authH *authhandler.AuthHandler, userH *userhandler.UserHandler,
	authn authmw.TokenAuthenticator, loginLimiter ratelimiter.RateLimiterInterface) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(platformmw.RequestLogger())

	// 認証不要
	// 導通確認用
	r.Match([]string{"GET", "HEAD", "OPTIONS"}, "/healthz", handler.Health)
	// 新規ユーザー登録（トークン発行）
	r.POST("/register", authH.Register)
	// ログイン（トークン発行）、IPごとのレートリミット付き
	r.POST("/login", authmw.LoginThrottle(loginLimiter), authH.Login)

	// 認証必須のルート
	authed := r.Group("/")
	authed.Use(authmw.AuthRequired(authn))
	{
		authed.POST("/logout", authH.Logout)

		// 管理者のみのルート
		admin := authed.Group("/users")
		admin.Use(authmw.AdminOnly())
		{
			admin.GET("", userH.List)
			admin.POST("", userH.Create)
			admin.GET("/:id", userH.Get)
			admin.PUT("/:id", userH.Update)
			admin.PATCH("/:id", userH.Update)
			admin.DELETE("/:id", userH.Delete)
		}
	}

	return r
}
