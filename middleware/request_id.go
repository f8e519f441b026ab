package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/issuetrack-api/logger"
	"go.uber.org/zap"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "requestId"
)

// RequestID tags every request with a correlation id, reusing the caller's
// X-Request-ID when present, and stores a logger carrying it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		logger.WithGin(c, logger.Get().With(zap.String("request_id", id)))

		c.Next()
	}
}

// GetRequestID returns the correlation id of the current request
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
