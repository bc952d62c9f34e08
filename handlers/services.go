package handlers

import (
	"errors"
	"net/http"

	"cardoctor/middleware"
	"cardoctor/services/catalog"
	"cardoctor/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler serves the read-only service catalog.
type CatalogHandler struct {
	Catalog catalog.CatalogService
}

func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{Catalog: svc}
}

// ListServicesHandler handles GET /services?sort=asc|desc&search=term.
func (h *CatalogHandler) ListServicesHandler(c *gin.Context) {
	services, err := h.Catalog.ListServices(c.Request.Context(), c.Query("sort"), c.Query("search"))
	if err != nil {
		utils.JSONError(c, middleware.GetLogger(c), http.StatusInternalServerError, "internal server error", err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// GetServiceHandler handles GET /services/:id.
func (h *CatalogHandler) GetServiceHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)
	id := c.Param("id")

	svc, err := h.Catalog.GetService(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, svc)
	case errors.Is(err, catalog.ErrInvalidID):
		utils.JSONError(c, logger, http.StatusBadRequest, "invalid id", err)
	case errors.Is(err, catalog.ErrServiceNotFound):
		utils.JSONError(c, logger.With(zap.String("id", id)), http.StatusNotFound, "service not found", err)
	default:
		utils.JSONError(c, logger.With(zap.String("id", id)), http.StatusInternalServerError, "internal server error", err)
	}
}
