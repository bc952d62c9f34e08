package serviceRepo

import (
	"context"

	"cardoctor/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceRepository defines read access to the service catalog.
type ServiceRepository interface {
	// Find returns every service matching q, ordered by price.
	Find(ctx context.Context, q Query) ([]models.Service, error)
	// GetByIDWithProjection returns nil, nil when no service has the id.
	// Pass nil for projection to retrieve the full document.
	GetByIDWithProjection(ctx context.Context, id primitive.ObjectID, projection bson.M) (*models.Service, error)
}
