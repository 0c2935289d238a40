package handlers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request. Errors attached with c.Error
// are logged at warn for client errors and error for server errors.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := redactQuery(c.Request.URL.RawQuery)

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
		}

		switch {
		case len(c.Errors) > 0 && status >= http.StatusInternalServerError:
			logger.Error(c.Errors.String(), fields...)
		case len(c.Errors) > 0:
			logger.Warn(c.Errors.String(), fields...)
		default:
			logger.Info("Request processed", fields...)
		}
	}
}

// sensitiveParams are OAuth callback values that must not reach the logs.
var sensitiveParams = []string{"code", "state", "session_state", "id_token", "access_token"}

func redactQuery(raw string) string {
	if raw == "" {
		return ""
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return "[unparseable]"
	}
	for _, key := range sensitiveParams {
		if _, ok := values[key]; ok {
			values.Set(key, "REDACTED")
		}
	}
	return values.Encode()
}

// Recovery turns a panic into the 500 error page.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("Panic while handling request",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"))
		render(c, http.StatusInternalServerError, "error.html", gin.H{"Title": "Error", "Message": "Server error"})
		c.Abort()
	})
}
