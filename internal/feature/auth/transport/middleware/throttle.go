package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"account_backend/internal/shared/ratelimiter"
)

// LoginThrottle returns a Gin middleware that limits login attempts per
// client IP. Exceeding the window returns 429 before the credential check
// runs, so throttled attempts never touch the credential store.
func LoginThrottle(limiter ratelimiter.RateLimiterInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts"})
			return
		}
		c.Next()
	}
}
