// Package handler provides HTTP handlers for the users feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"account_backend/internal/feature/auth/domain/entity"
	authdto "account_backend/internal/feature/auth/transport/http/dto"
	"account_backend/internal/feature/users/transport/http/dto"
	"account_backend/internal/feature/users/usecase"
)

// UserUsecase defines the user management operations.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type UserUsecase interface {
	List(ctx context.Context) ([]*entity.User, error)
	Create(ctx context.Context, input usecase.CreateUserInput) (*entity.User, error)
	Get(ctx context.Context, id uint) (*entity.User, error)
	Update(ctx context.Context, id uint, input usecase.UpdateUserInput) (*entity.User, error)
	Delete(ctx context.Context, id uint) error
}

// UserHandler handles HTTP requests for user management.
// Every route it serves sits behind the AuthRequired and AdminOnly
// middleware; the handler itself performs no authorization.
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// parseID extracts the numeric user ID from the route parameter.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// List handles GET /users and returns all users.
// Password hashes never appear in the projection.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		slog.Error("failed to list users", "error", err)
		c.JSON(http.StatusInternalServerError, authdto.ErrorRes{Error: "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// Create handles POST /users.
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create user validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnprocessableEntity, authdto.ErrorRes{Error: "invalid request"})
		return
	}
	user, err := h.users.Create(c.Request.Context(), usecase.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		h.renderError(c, err, "failed to create user")
		return
	}
	slog.Info("user created", "user_id", user.ID, "email", user.Email)
	c.JSON(http.StatusCreated, user)
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, authdto.ErrorRes{Error: "user not found"})
		return
	}
	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err, "failed to get user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update handles PUT and PATCH /users/:id.
// Omitted fields are left untouched; a supplied password is re-hashed.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, authdto.ErrorRes{Error: "user not found"})
		return
	}
	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update user validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnprocessableEntity, authdto.ErrorRes{Error: "invalid request"})
		return
	}
	user, err := h.users.Update(c.Request.Context(), id, usecase.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		h.renderError(c, err, "failed to update user")
		return
	}
	slog.Info("user updated", "user_id", user.ID)
	c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, authdto.ErrorRes{Error: "user not found"})
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.renderError(c, err, "failed to delete user")
		return
	}
	slog.Info("user deleted", "user_id", id)
	c.JSON(http.StatusOK, authdto.MessageRes{Message: "Deleted successful"})
}

// renderError maps usecase errors to HTTP statuses with a stable body shape.
// No internal detail (driver errors, stack traces) is surfaced.
func (h *UserHandler) renderError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, authdto.ErrorRes{Error: "user not found"})
	case errors.Is(err, usecase.ErrEmailAlreadyExists), errors.Is(err, usecase.ErrWeakPassword):
		c.JSON(http.StatusUnprocessableEntity, authdto.ErrorRes{Error: err.Error()})
	default:
		slog.Error(logMsg, "error", err)
		c.JSON(http.StatusInternalServerError, authdto.ErrorRes{Error: logMsg})
	}
}
