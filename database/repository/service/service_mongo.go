package serviceRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cardoctor/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoServiceRepo creates a new instance of ServiceRepository using MongoDB.
func NewMongoServiceRepo(coll *mongo.Collection, timeout time.Duration) *MongoServiceRepo {
	return &MongoServiceRepo{coll: coll, timeout: timeout}
}

// newContext bounds a single store call.
func (r *MongoServiceRepo) newContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, r.timeout)
}

// EnsureIndexes creates indexes for the price sort and the external reference code.
func (r *MongoServiceRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := r.newContext(ctx)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "service_id", Value: 1}}, Options: options.Index().SetSparse(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create service indexes: %w", err)
	}
	return nil
}

func (r *MongoServiceRepo) Find(ctx context.Context, q Query) ([]models.Service, error) {
	ctx, cancel := r.newContext(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, q.Filter(), q.FindOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve services: %w", err)
	}
	defer cursor.Close(ctx)

	services := []models.Service{}
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

func (r *MongoServiceRepo) GetByIDWithProjection(ctx context.Context, id primitive.ObjectID, projection bson.M) (*models.Service, error) {
	ctx, cancel := r.newContext(ctx)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var service models.Service
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&service); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch service with id %s: %w", id.Hex(), err)
	}
	return &service, nil
}

// UpsertMany replaces services by service_id, inserting those not yet present.
// Used by the seed command.
func (r *MongoServiceRepo) UpsertMany(ctx context.Context, services []models.Service) (*mongo.BulkWriteResult, error) {
	ctx, cancel := r.newContext(ctx)
	defer cancel()

	writes := make([]mongo.WriteModel, 0, len(services))
	for _, s := range services {
		if s.ServiceID == "" {
			return nil, fmt.Errorf("service %q has no service_id", s.Title)
		}
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"service_id": s.ServiceID}).
			SetReplacement(s).
			SetUpsert(true))
	}
	if len(writes) == 0 {
		return &mongo.BulkWriteResult{}, nil
	}

	res, err := r.coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert services: %w", err)
	}
	return res, nil
}

// Drop removes the whole collection.
func (r *MongoServiceRepo) Drop(ctx context.Context) error {
	ctx, cancel := r.newContext(ctx)
	defer cancel()

	if err := r.coll.Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop services: %w", err)
	}
	return nil
}
