package middleware

import (
	"bytes"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxLoggedBody caps how much of a request or response body one log
// line may carry.
const maxLoggedBody = 4 << 10

type bodyCapturingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCapturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCapturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// RequestLogger logs every request and its response at info level:
// method, URL, headers, body, status and latency.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var reqBody []byte
		if c.Request.Body != nil {
			reqBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(reqBody))
		}

		log.Info("request",
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.String("client", c.ClientIP()),
			zap.String("method", c.Request.Method),
			zap.String("url", c.Request.URL.String()),
			zap.Any("headers", c.Request.Header),
			zap.ByteString("body", truncate(reqBody)),
		)

		w := &bodyCapturingWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w

		c.Next()

		log.Info("response",
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.String("client", c.ClientIP()),
			zap.String("method", c.Request.Method),
			zap.String("url", c.Request.URL.String()),
			zap.Int("status", c.Writer.Status()),
			zap.Any("headers", c.Writer.Header()),
			zap.ByteString("body", truncate(w.body.Bytes())),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func truncate(b []byte) []byte {
	if len(b) > maxLoggedBody {
		return b[:maxLoggedBody]
	}
	return b
}
