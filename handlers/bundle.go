package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Token endpoint
	IssueTokenHandler gin.HandlerFunc

	// Catalog endpoints
	ListServicesHandler gin.HandlerFunc
	GetServiceHandler   gin.HandlerFunc

	// Booking endpoints
	ListBookingsHandler        gin.HandlerFunc
	CreateBookingHandler       gin.HandlerFunc
	UpdateBookingStatusHandler gin.HandlerFunc
	DeleteBookingHandler       gin.HandlerFunc

	// Ops endpoints
	LivenessHandler gin.HandlerFunc
	HealthHandler   gin.HandlerFunc
	MetricsHandler  gin.HandlerFunc
}

// bindJSON decodes the request body into dst. An empty body leaves dst untouched.
func bindJSON(c *gin.Context, dst interface{}) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil
	}
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
