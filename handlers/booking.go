package handlers

import (
	"errors"
	"net/http"

	"cardoctor/middleware"
	"cardoctor/models"
	"cardoctor/services/booking"
	"cardoctor/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the /bookings endpoints.
type BookingHandler struct {
	Bookings booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: svc}
}

// ListBookingsHandler handles GET /bookings?email=. Runs behind JWTAuthMiddleware.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	identity, _ := middleware.IdentityFromContext(c)

	bookings, err := h.Bookings.ListBookings(c.Request.Context(), identity, c.Query("email"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// CreateBookingHandler handles POST /bookings. The body is stored as sent.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	payload := models.Booking{}
	if err := bindJSON(c, &payload); err != nil {
		utils.JSONError(c, logger, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if payload == nil {
		payload = models.Booking{}
	}

	res, err := h.Bookings.CreateBooking(c.Request.Context(), payload)
	if err != nil {
		h.fail(c, err)
		return
	}
	logger.Info("Booking created", zap.Any("insertedId", res.InsertedID), zap.String("email", payload.Email()))
	c.JSON(http.StatusOK, res)
}

// UpdateBookingStatusHandler handles PATCH /bookings/:id with {"status": "..."}.
func (h *BookingHandler) UpdateBookingStatusHandler(c *gin.Context) {
	var update models.BookingStatusUpdate
	if err := bindJSON(c, &update); err != nil {
		utils.JSONError(c, middleware.GetLogger(c), http.StatusBadRequest, "invalid request body", err)
		return
	}

	requester, _ := middleware.IdentityFromContext(c)
	res, err := h.Bookings.UpdateBookingStatus(c.Request.Context(), requester, c.Param("id"), update)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeleteBookingHandler handles DELETE /bookings/:id.
func (h *BookingHandler) DeleteBookingHandler(c *gin.Context) {
	requester, _ := middleware.IdentityFromContext(c)
	res, err := h.Bookings.DeleteBooking(c.Request.Context(), requester, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *BookingHandler) fail(c *gin.Context, err error) {
	logger := middleware.GetLogger(c)
	switch {
	case errors.Is(err, booking.ErrForbidden):
		logger.Warn("Forbidden booking access", zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusForbidden, utils.ForbiddenBody)
	case errors.Is(err, booking.ErrInvalidID):
		utils.JSONError(c, logger, http.StatusBadRequest, "invalid id", err)
	case errors.Is(err, booking.ErrBookingNotFound):
		utils.JSONError(c, logger, http.StatusNotFound, "booking not found", err)
	default:
		utils.JSONError(c, logger, http.StatusInternalServerError, "internal server error", err)
	}
}
