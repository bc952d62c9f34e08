package handlers

import (
	"net/http"

	"cardoctor/middleware"
	"cardoctor/services/auth"
	"cardoctor/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenHandler serves POST /jwt.
type TokenHandler struct {
	Tokens auth.TokenService
}

func NewTokenHandler(tokens auth.TokenService) *TokenHandler {
	return &TokenHandler{Tokens: tokens}
}

// IssueTokenHandler signs whatever JSON object the client sends.
func (h *TokenHandler) IssueTokenHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	identity := map[string]interface{}{}
	if err := bindJSON(c, &identity); err != nil {
		utils.JSONError(c, logger, http.StatusBadRequest, "invalid request body", err)
		return
	}

	token, err := h.Tokens.IssueToken(identity)
	if err != nil {
		utils.JSONError(c, logger, http.StatusInternalServerError, "internal server error", err)
		return
	}

	email, _ := identity["email"].(string)
	logger.Info("Issued token", zap.String("email", email))
	c.JSON(http.StatusOK, gin.H{"token": token})
}
