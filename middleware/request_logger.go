package middleware

import (
	"time"

	"cardoctor/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestLogger tags each request with an id, stores a child logger on the
// context and logs one line when the request completes.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(utils.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(utils.RequestIDHeader, requestID)

		logger := base.With(zap.String("requestID", requestID))
		c.Set(utils.RequestIDKey, requestID)
		c.Set(utils.LoggerKey, logger)

		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("clientIP", c.ClientIP()),
		)
	}
}

// GetLogger retrieves the request logger from the Gin context, falling back to
// the global logger.
func GetLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get(utils.LoggerKey); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}
