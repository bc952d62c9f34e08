package booking

import (
	"context"

	bookingRepo "cardoctor/database/repository/booking"
	"cardoctor/models"
	"cardoctor/services/auth"
)

// BookingService defines the booking workflow.
type BookingService interface {
	// ListBookings returns the bookings of email. The caller's identity must carry the same email.
	ListBookings(ctx context.Context, identity auth.Identity, email string) ([]models.Booking, error)
	CreateBooking(ctx context.Context, booking models.Booking) (*models.InsertResult, error)
	// UpdateBookingStatus and DeleteBooking ignore requester unless ownership is enforced.
	UpdateBookingStatus(ctx context.Context, requester auth.Identity, id string, update models.BookingStatusUpdate) (*models.UpdateResult, error)
	DeleteBooking(ctx context.Context, requester auth.Identity, id string) (*models.DeleteResult, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo bookingRepo.BookingRepository
	// EnforceOwnership requires the requester's email to match the booking's
	// on update and delete.
	EnforceOwnership bool
}
