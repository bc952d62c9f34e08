package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error bodies returned to clients. The auth and forbidden payloads keep the
// exact shape existing clients check for.
var (
	UnauthorizedBody = gin.H{"error": true, "message": "unauthorized access"}
	ForbiddenBody    = gin.H{"error": 1, "message": "forbidden access"}
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:   true,
					Message: "internal server error",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response and logs the cause.
func JSONError(c *gin.Context, logger *zap.Logger, status int, message string, cause error) {
	fields := []zap.Field{zap.Int("status", status)}
	if cause != nil {
		fields = append(fields, zap.Error(cause))
	}
	if status >= http.StatusInternalServerError {
		logger.Error(message, fields...)
	} else {
		logger.Warn(message, fields...)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: true, Message: message})
}
