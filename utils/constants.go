package utils

// Gin context keys shared by middleware and handlers.
const (
	// DecodedIdentityKey holds the verified token claims.
	DecodedIdentityKey = "decoded"
	// LoggerKey holds the request-scoped *zap.Logger.
	LoggerKey = "logger"
	// RequestIDKey holds the request id.
	RequestIDKey = "requestID"
)

// RequestIDHeader is read from and echoed to clients.
const RequestIDHeader = "X-Request-ID"

// LivenessMessage is served on GET /.
const LivenessMessage = "doctor is running"
