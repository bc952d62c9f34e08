package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cardoctor/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo(coll *mongo.Collection, timeout time.Duration) *MongoBookingRepo {
	return &MongoBookingRepo{coll: coll, timeout: timeout}
}

func (r *MongoBookingRepo) newContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, r.timeout)
}

// EnsureIndexes creates the index backing email-scoped listings.
func (r *MongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := r.newContext(ctx)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: models.BookingEmailField, Value: 1}}})
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) Find(ctx context.Context, email string) ([]models.Booking, error) {
	ctx, cancel := r.newContext(ctx)
	defer cancel()

	filter := bson.M{}
	if email != "" {
		filter[models.BookingEmailField] = email
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (models.Booking, error) {
	ctx, cancel := r.newContext(ctx)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{models.BookingIDField: id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id.Hex(), err)
	}
	return booking, nil
}

func (r *MongoBookingRepo) Create(ctx context.Context, booking models.Booking) (*models.InsertResult, error) {
	ctx, cancel := r.newContext(ctx)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return &models.InsertResult{Acknowledged: true, InsertedID: res.InsertedID}, nil
}

func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.UpdateResult, error) {
	ctx, cancel := r.newContext(ctx)
	defer cancel()

	filter := bson.M{models.BookingIDField: id}
	update := bson.M{"$set": bson.M{models.BookingStatusField: status}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking with id %s: %w", id.Hex(), err)
	}
	return &models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}, nil
}

func (r *MongoBookingRepo) Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	ctx, cancel := r.newContext(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{models.BookingIDField: id})
	if err != nil {
		return nil, fmt.Errorf("failed to delete booking with id %s: %w", id.Hex(), err)
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
