package auth

import (
	"time"

	"cardoctor/utils"
)

// DefaultTokenTTL is used when a service is built without a TTL.
const DefaultTokenTTL = 2 * time.Hour

// Identity is the decoded payload of a verified token.
type Identity map[string]interface{}

// Email returns the "email" claim, or "" when it is missing or not a string.
func (i Identity) Email() string {
	email, _ := i["email"].(string)
	return email
}

func (s *DefaultTokenService) IssueToken(identity map[string]interface{}) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return utils.GenerateToken(identity, s.Secret, s.now(), ttl)
}

func (s *DefaultTokenService) VerifyToken(token string) (Identity, error) {
	claims, err := utils.ValidateToken(token, s.Secret)
	if err != nil {
		return nil, err
	}
	return Identity(claims), nil
}

func (s *DefaultTokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
