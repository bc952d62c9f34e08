package booking

import (
	"context"

	"cardoctor/models"
	"cardoctor/services/auth"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *DefaultBookingService) ListBookings(ctx context.Context, identity auth.Identity, email string) ([]models.Booking, error) {
	// An identity without an email cannot be scoped, so it never matches.
	owner := identity.Email()
	if owner == "" || owner != email {
		return nil, ErrForbidden
	}
	return s.Repo.Find(ctx, email)
}

func (s *DefaultBookingService) CreateBooking(ctx context.Context, booking models.Booking) (*models.InsertResult, error) {
	return s.Repo.Create(ctx, booking)
}

func (s *DefaultBookingService) UpdateBookingStatus(ctx context.Context, requester auth.Identity, id string, update models.BookingStatusUpdate) (*models.UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	if err := s.checkOwnership(ctx, requester, oid); err != nil {
		return nil, err
	}
	return s.Repo.UpdateStatus(ctx, oid, update.Status)
}

func (s *DefaultBookingService) DeleteBooking(ctx context.Context, requester auth.Identity, id string) (*models.DeleteResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	if err := s.checkOwnership(ctx, requester, oid); err != nil {
		return nil, err
	}
	return s.Repo.Delete(ctx, oid)
}

func (s *DefaultBookingService) checkOwnership(ctx context.Context, requester auth.Identity, id primitive.ObjectID) error {
	if !s.EnforceOwnership {
		return nil
	}
	owner := requester.Email()
	if owner == "" {
		return ErrForbidden
	}
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrBookingNotFound
	}
	if existing.Email() != owner {
		return ErrForbidden
	}
	return nil
}
