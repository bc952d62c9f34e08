package auth

import "time"

// TokenService issues and verifies session tokens.
type TokenService interface {
	// IssueToken signs the client-supplied identity. The payload is not validated.
	IssueToken(identity map[string]interface{}) (string, error)
	// VerifyToken checks signature and expiry and returns the decoded identity.
	VerifyToken(token string) (Identity, error)
}

// DefaultTokenService signs HS256 tokens with a shared secret.
type DefaultTokenService struct {
	Secret []byte
	TTL    time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewTokenService builds a DefaultTokenService.
func NewTokenService(secret string, ttl time.Duration) *DefaultTokenService {
	return &DefaultTokenService{Secret: []byte(secret), TTL: ttl}
}
