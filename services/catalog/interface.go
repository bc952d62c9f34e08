package catalog

import (
	"context"

	serviceRepo "cardoctor/database/repository/service"
	"cardoctor/models"
)

// CatalogService reads the service catalog.
type CatalogService interface {
	ListServices(ctx context.Context, sort, search string) ([]models.Service, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
}

// DefaultCatalogService is the production implementation.
type DefaultCatalogService struct {
	Repo serviceRepo.ServiceRepository
}
