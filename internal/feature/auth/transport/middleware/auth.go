// Package middleware provides the authentication and access control gates
// applied in front of protected routes.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"account_backend/internal/feature/auth/domain/entity"
)

const (
	// ContextIdentity is the gin context key holding the *entity.Identity
	// set by AuthRequired.
	ContextIdentity = "identity"

	// ContextToken is the gin context key holding the validated plaintext
	// bearer token, needed by the logout handler for revocation.
	ContextToken = "bearerToken"
)

// TokenAuthenticator resolves a bearer token into an authenticated identity.
// Following Go convention: the interface is defined by the consumer
// (middleware), not the provider (usecase).
type TokenAuthenticator interface {
	AuthenticateToken(ctx context.Context, token string) (*entity.Identity, error)
}

// AuthRequired returns a Gin middleware that validates the bearer token and
// restricts access to authenticated users only. On success it stores the
// resolved identity and the raw token in the request context.
func AuthRequired(auth TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if !strings.HasPrefix(authz, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token := strings.TrimPrefix(authz, "Bearer ")

		identity, err := auth.AuthenticateToken(c.Request.Context(), token)
		if err != nil {
			// Any resolution failure denies access, never allows.
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextIdentity, identity)
		c.Set(ContextToken, token)
		c.Next()
	}
}

// AdminOnly returns a Gin middleware that ensures the authenticated identity
// carries the administrator flag. It must be composed after AuthRequired;
// a missing identity is treated as unauthenticated, not as an internal error.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := c.Get(ContextIdentity)
		identity, cast := value.(*entity.Identity)
		if !ok || !cast || identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !identity.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "administrator access required"})
			return
		}
		c.Next()
	}
}
