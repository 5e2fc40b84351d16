// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"account_backend/internal/feature/auth/domain/entity"
	"account_backend/internal/feature/auth/transport/http/dto"
	"account_backend/internal/feature/auth/transport/middleware"
	"account_backend/internal/feature/auth/usecase"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、発行したトークンとともに返します。
	Register(ctx context.Context, name, email, password string) (*entity.User, string, error)
	// Login はユーザーを認証し、成功時にベアラートークンを返します。
	Login(ctx context.Context, email, password string) (string, error)
	// Logout は指定されたベアラートークンを失効させます。
	Logout(ctx context.Context, token string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをRegisterReqにバインド
// - バリデーションエラーとメール重複時は422を返却
// - 成功時はユーザーとトークン付きで201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorRes{Error: "invalid request"})
		return
	}
	user, token, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		slog.Warn("register failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists), errors.Is(err, usecase.ErrWeakPassword):
			c.JSON(http.StatusUnprocessableEntity, dto.ErrorRes{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "registration failed"})
		}
		return
	}
	slog.Info("user registered", "user_id", user.ID, "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.RegisterRes{Message: "Register successful", User: user, Token: token})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - リクエストJSONをLoginReqにバインド
// - バリデーションエラー時は422を返却
// - 認証失敗時は401を返却
// - 認証成功時はベアラートークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorRes{Error: "invalid request"})
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、失敗理由を区別しない固定メッセージを返す
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "login failed"})
		return
	}
	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LoginRes{Message: "Login successful", Token: token})
}

// Logout はログアウトAPIエンドポイントを処理します。
// AuthRequiredミドルウェアで検証済みのベアラートークンを失効させます。
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.ContextToken)
	if token == "" {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "invalid token"})
		return
	}
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		slog.Warn("logout failed", "error", err, "remote_addr", c.ClientIP())
		if errors.Is(err, usecase.ErrInvalidToken) {
			c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "invalid token"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "logout failed"})
		return
	}
	slog.Info("user logout successful", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.MessageRes{Message: "Logout successful"})
}
