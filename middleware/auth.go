package middleware

import (
	"net/http"
	"strings"

	"cardoctor/services/auth"
	"cardoctor/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWTAuthMiddleware verifies the bearer token and stores the decoded identity
// under utils.DecodedIdentityKey. Every failure gets the same 401 body.
func JWTAuthMiddleware(tokens auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.UnauthorizedBody)
			return
		}

		// "Bearer <token>": the token is the second field.
		var tokenString string
		if parts := strings.Fields(authHeader); len(parts) > 1 {
			tokenString = parts[1]
		}

		identity, err := tokens.VerifyToken(tokenString)
		if err != nil {
			GetLogger(c).Debug("Rejected bearer token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.UnauthorizedBody)
			return
		}

		c.Set(utils.DecodedIdentityKey, identity)
		c.Next()
	}
}

// IdentityFromContext returns the identity set by JWTAuthMiddleware.
func IdentityFromContext(c *gin.Context) (auth.Identity, bool) {
	v, exists := c.Get(utils.DecodedIdentityKey)
	if !exists {
		return nil, false
	}
	identity, ok := v.(auth.Identity)
	return identity, ok
}
