package bookingRepo

import (
	"context"

	"cardoctor/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Find returns bookings whose email equals email; an empty email returns all bookings.
	Find(ctx context.Context, email string) ([]models.Booking, error)
	// GetByID returns nil, nil when no booking has the id.
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Booking, error)
	// Create inserts the booking as-is.
	Create(ctx context.Context, booking models.Booking) (*models.InsertResult, error)
	// UpdateStatus sets only the status field.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.UpdateResult, error)
	// Delete removes a booking by id.
	Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error)
}
