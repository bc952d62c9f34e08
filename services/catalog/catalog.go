package catalog

import (
	"context"

	serviceRepo "cardoctor/database/repository/service"
	"cardoctor/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListServices returns the catalog ordered by price, ascending only when sort
// is "asc". A non-empty search keeps services whose title contains it,
// ignoring case.
func (s *DefaultCatalogService) ListServices(ctx context.Context, sort, search string) ([]models.Service, error) {
	return s.Repo.Find(ctx, serviceRepo.Query{Sort: sort, Search: search})
}

// GetService returns the projected service for a hex ObjectID.
func (s *DefaultCatalogService) GetService(ctx context.Context, id string) (*models.Service, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	svc, err := s.Repo.GetByIDWithProjection(ctx, oid, serviceRepo.DetailProjection)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}
