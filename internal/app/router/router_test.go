package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authadapters "account_backend/internal/feature/auth/adapters"
	"account_backend/internal/feature/auth/domain/entity"
	authhandler "account_backend/internal/feature/auth/transport/handler"
	authusecase "account_backend/internal/feature/auth/usecase"
	usersadapters "account_backend/internal/feature/users/adapters"
	userhandler "account_backend/internal/feature/users/transport/handler"
	usersusecase "account_backend/internal/feature/users/usecase"
	"account_backend/internal/platform/password"
	"account_backend/internal/shared/ratelimiter"
)

// setupServer wires the full request pipeline over an in-memory SQLite
// database, mirroring the production composition in cmd/server.
func setupServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, db.AutoMigrate(&entity.User{}, &authadapters.TokenModel{}))

	hasher := password.NewBcryptHasher(bcrypt.MinCost)
	authUserRepo := authadapters.NewUserGorm(db)
	userRepo := usersadapters.NewUserGorm(db)
	tokenRepo := authadapters.NewTokenGorm(db)

	authUC := authusecase.NewAuthUsecase(authUserRepo, tokenRepo, hasher)
	userUC := usersusecase.NewUserUsecase(userRepo, tokenRepo, hasher)

	authH := authhandler.NewAuthHandler(authUC)
	userH := userhandler.NewUserHandler(userUC)
	limiter := ratelimiter.NewRateLimiter(1000, time.Minute)

	return NewRouter(authH, userH, authUC, limiter), db
}

// doJSON performs a JSON request with an optional bearer token.
func doJSON(r *gin.Engine, method, path, token string, body gin.H) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEndToEnd_RegisterLoginAdminFlow(t *testing.T) {
	r, db := setupServer(t)

	// Register a fresh account
	w := doJSON(r, http.MethodPost, "/register", "", gin.H{
		"name":     "Taro",
		"email":    "taro@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, "register failed: %s", w.Body.String())

	var registerRes struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registerRes))
	require.NotEmpty(t, registerRes.Token)

	// Login with the same credentials
	w = doJSON(r, http.MethodPost, "/login", "", gin.H{
		"email":    "taro@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var loginRes struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginRes))
	token := loginRes.Token
	require.NotEmpty(t, token)

	// The stored hash differs from the plaintext password
	var stored entity.User
	require.NoError(t, db.First(&stored, registerRes.User.ID).Error)
	assert.NotEqual(t, "password123", stored.Password)

	// A non-admin is rejected by the gate
	w = doJSON(r, http.MethodGet, "/users", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Promote the account; the same token now passes, because the admin
	// flag is re-read on every request rather than cached at issuance
	require.NoError(t, db.Model(&entity.User{}).
		Where("id = ?", registerRes.User.ID).
		Update("is_admin", true).Error)

	w = doJSON(r, http.MethodGet, "/users", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), stored.Password, "password hashes must never leak")

	// Wrong password and unknown email both fail with the identical body
	w1 := doJSON(r, http.MethodPost, "/login", "", gin.H{
		"email": "taro@example.com", "password": "wrong-password",
	})
	w2 := doJSON(r, http.MethodPost, "/login", "", gin.H{
		"email": "nobody@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w1.Code)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
	assert.Equal(t, w1.Body.String(), w2.Body.String(), "responses must not reveal which part was wrong")
}

func TestEndToEnd_UserManagement(t *testing.T) {
	r, db := setupServer(t)

	// Seed an admin directly and log in
	hasher := password.NewBcryptHasher(bcrypt.MinCost)
	digest, err := hasher.Hash("admin-password")
	require.NoError(t, err)
	require.NoError(t, db.Create(&entity.User{
		Name:     "admin",
		Email:    "admin@example.com",
		Password: digest,
		IsAdmin:  true,
	}).Error)

	w := doJSON(r, http.MethodPost, "/login", "", gin.H{
		"email": "admin@example.com", "password": "admin-password",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var loginRes struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginRes))
	admin := loginRes.Token

	// Create
	w = doJSON(r, http.MethodPost, "/users", admin, gin.H{
		"name": "Hanako", "email": "hanako@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, "create failed: %s", w.Body.String())
	var created entity.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Duplicate email is a validation error
	w = doJSON(r, http.MethodPost, "/users", admin, gin.H{
		"name": "Hanako2", "email": "hanako@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Get
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/users/%d", created.ID), admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Partial update
	w = doJSON(r, http.MethodPatch, fmt.Sprintf("/users/%d", created.ID), admin, gin.H{
		"name": "Hanako Updated",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated entity.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Hanako Updated", updated.Name)
	assert.Equal(t, "hanako@example.com", updated.Email, "omitted fields stay untouched")

	// Delete, then the record is gone
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/users/%d", created.ID), admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/users/%d", created.ID), admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEndToEnd_DeleteRevokesTokens(t *testing.T) {
	r, db := setupServer(t)

	// Victim registers and holds a live token
	w := doJSON(r, http.MethodPost, "/register", "", gin.H{
		"name": "Victim", "email": "victim@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var registerRes struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registerRes))

	// The live token authenticates (logout is the simplest probe)
	// ...but first seed and log in an admin to perform the delete
	hasher := password.NewBcryptHasher(bcrypt.MinCost)
	digest, err := hasher.Hash("admin-password")
	require.NoError(t, err)
	require.NoError(t, db.Create(&entity.User{
		Name: "admin", Email: "admin@example.com", Password: digest, IsAdmin: true,
	}).Error)

	w = doJSON(r, http.MethodPost, "/login", "", gin.H{
		"email": "admin@example.com", "password": "admin-password",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var loginRes struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginRes))

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/users/%d", registerRes.User.ID), loginRes.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The deleted account's token no longer authenticates
	w = doJSON(r, http.MethodPost, "/logout", registerRes.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEndToEnd_TokenLifecycle(t *testing.T) {
	r, _ := setupServer(t)

	w := doJSON(r, http.MethodPost, "/register", "", gin.H{
		"name": "Taro", "email": "taro@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var registerRes struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registerRes))
	token := registerRes.Token

	// Missing and garbage tokens are rejected
	w = doJSON(r, http.MethodPost, "/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = doJSON(r, http.MethodPost, "/logout", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Logout succeeds once, then the token is dead
	w = doJSON(r, http.MethodPost, "/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodPost, "/logout", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
