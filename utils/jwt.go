package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// ErrInvalidToken is returned for any token that fails parsing, signature or
// expiry checks. Callers must not distinguish between causes.
var ErrInvalidToken = errors.New("invalid token")

// GenerateToken signs payload with HS256. The payload is copied; "iat" and
// "exp" are always set from now and duration, replacing any client values.
func GenerateToken(payload map[string]interface{}, secret []byte, now time.Time, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{}
	for k, v := range payload {
		claims[k] = v
	}
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(duration).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a token string and returns its claims.
func ValidateToken(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	// jwt v3 treats a missing exp as valid; issued tokens always carry one.
	if _, ok := claims["exp"]; !ok {
		return nil, fmt.Errorf("%w: missing exp", ErrInvalidToken)
	}
	return claims, nil
}
