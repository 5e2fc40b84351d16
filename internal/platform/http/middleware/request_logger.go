// Package middleware provides platform-level HTTP middleware.
package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID is the response header carrying the request id.
const HeaderRequestID = "X-Request-Id"

// RequestLogger returns a Gin middleware that tags each request with a uuid
// and emits one structured log line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(HeaderRequestID, requestID)

		start := time.Now()
		c.Next()

		slog.Info("request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.ClientIP(),
		)
	}
}
