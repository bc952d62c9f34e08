package memoryRepo

import (
	"context"
	"fmt"
	"sync"

	"cardoctor/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingRepo is an in-memory bookingRepo.BookingRepository.
// It is safe for concurrent use.
type BookingRepo struct {
	mu       sync.RWMutex
	bookings []models.Booking

	// Err, when set, is returned by every call.
	Err error
}

func NewBookingRepo() *BookingRepo {
	return &BookingRepo{}
}

func (r *BookingRepo) Find(ctx context.Context, email string) ([]models.Booking, error) {
	_ = ctx
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Booking{}
	for _, b := range r.bookings {
		if email != "" && b[models.BookingEmailField] != email {
			continue
		}
		out = append(out, clone(b))
	}
	return out, nil
}

func (r *BookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (models.Booking, error) {
	_ = ctx
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return clone(r.bookings[i]), nil
	}
	return nil, nil
}

func (r *BookingRepo) Create(ctx context.Context, booking models.Booking) (*models.InsertResult, error) {
	_ = ctx
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := clone(booking)
	id, ok := doc[models.BookingIDField]
	if !ok {
		id = primitive.NewObjectID()
		doc[models.BookingIDField] = id
	}
	switch id.(type) {
	case primitive.ObjectID, string, float64, bool:
	default:
		return nil, fmt.Errorf("unsupported _id type %T", id)
	}
	for _, b := range r.bookings {
		if b[models.BookingIDField] == id {
			return nil, fmt.Errorf("duplicate key: _id %v", id)
		}
	}
	r.bookings = append(r.bookings, doc)
	return &models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.UpdateResult, error) {
	_ = ctx
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	res := &models.UpdateResult{Acknowledged: true}
	i := r.indexOf(id)
	if i < 0 {
		return res, nil
	}
	res.MatchedCount = 1
	if current, ok := r.bookings[i][models.BookingStatusField]; !ok || current != status {
		r.bookings[i][models.BookingStatusField] = status
		res.ModifiedCount = 1
	}
	return res, nil
}

func (r *BookingRepo) Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	_ = ctx
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	res := &models.DeleteResult{Acknowledged: true}
	if i := r.indexOf(id); i >= 0 {
		r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
		res.DeletedCount = 1
	}
	return res, nil
}

// indexOf must be called with r.mu held.
func (r *BookingRepo) indexOf(id primitive.ObjectID) int {
	for i, b := range r.bookings {
		if oid, ok := b[models.BookingIDField].(primitive.ObjectID); ok && oid == id {
			return i
		}
	}
	return -1
}

func clone(b models.Booking) models.Booking {
	out := make(models.Booking, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
