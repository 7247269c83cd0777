package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/craftmarket/api/httperr"
)

// ErrorHandler maps errors attached to the gin context onto the JSON
// error envelope. Recognized httperr kinds keep their status, code and
// message; anything else, including panics, becomes a generic 500 whose
// details go to the server log only.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					append(requestFields(c), zap.Any("panic", r), zap.Stack("stacktrace"))...)
				writeInternal(c)
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var apiErr *httperr.APIError
		if errors.As(err, &apiErr) {
			log.Error("request failed",
				append(requestFields(c),
					zap.Int("error_code", apiErr.ErrorCode),
					zap.String("message", apiErr.Message))...)
			if c.Writer.Written() {
				// too late to replace the body the handler already sent
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(apiErr.Status, apiErr)
			return
		}

		log.Error("unexpected error",
			append(requestFields(c), zap.Error(err))...)
		writeInternal(c)
	}
}

// requestFields is the request context logged with every handled error:
// method, URL, client address and headers.
func requestFields(c *gin.Context) []zap.Field {
	return []zap.Field{
		zap.String("request_id", c.GetString(RequestIDKey)),
		zap.String("method", c.Request.Method),
		zap.String("url", c.Request.URL.String()),
		zap.String("client", c.ClientIP()),
		zap.Any("headers", c.Request.Header),
	}
}

func writeInternal(c *gin.Context) {
	if c.Writer.Written() {
		c.Abort()
		return
	}
	apiErr := httperr.Internal()
	c.AbortWithStatusJSON(apiErr.Status, apiErr)
}
