package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is the HTTP header carrying the correlation id.
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey is the gin context key holding the correlation id.
	RequestIDKey = "request_id"
)

// RequestID ensures every request carries a correlation id, reusing the
// incoming X-Request-ID header when present and echoing it back on the
// response so clients and proxies can correlate log lines.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(RequestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}
