// Package memoryRepo holds in-memory repositories used by tests and local
// runs without MongoDB. They follow the store's query semantics closely
// enough for handler-level tests.
package memoryRepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	serviceRepo "cardoctor/database/repository/service"
	"cardoctor/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceRepo is an in-memory serviceRepo.ServiceRepository.
// It is safe for concurrent use.
type ServiceRepo struct {
	mu       sync.RWMutex
	services []models.Service

	// Err, when set, is returned by every call.
	Err error
}

func NewServiceRepo(services ...models.Service) *ServiceRepo {
	r := &ServiceRepo{}
	for _, s := range services {
		if s.ID.IsZero() {
			s.ID = primitive.NewObjectID()
		}
		r.services = append(r.services, s)
	}
	return r
}

func (r *ServiceRepo) Find(ctx context.Context, q serviceRepo.Query) ([]models.Service, error) {
	_ = ctx
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(q.Search)
	out := []models.Service{}
	for _, s := range r.services {
		if needle != "" && !strings.Contains(strings.ToLower(s.Title), needle) {
			continue
		}
		out = append(out, s)
	}

	asc := q.SortDirection() == 1
	sort.SliceStable(out, func(i, j int) bool {
		if asc {
			return out[i].Price < out[j].Price
		}
		return out[i].Price > out[j].Price
	})
	return out, nil
}

// GetByIDWithProjection honors inclusion projections on the known fields.
func (r *ServiceRepo) GetByIDWithProjection(ctx context.Context, id primitive.ObjectID, projection bson.M) (*models.Service, error) {
	_ = ctx
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.services {
		if s.ID != id {
			continue
		}
		if projection == nil {
			return &s, nil
		}
		p := models.Service{ID: s.ID}
		if _, ok := projection["title"]; ok {
			p.Title = s.Title
		}
		if _, ok := projection["price"]; ok {
			p.Price = s.Price
		}
		if _, ok := projection["img"]; ok {
			p.Img = s.Img
		}
		if _, ok := projection["service_id"]; ok {
			p.ServiceID = s.ServiceID
		}
		if _, ok := projection["description"]; ok {
			p.Description = s.Description
		}
		if _, ok := projection["facility"]; ok {
			p.Facility = s.Facility
		}
		return &p, nil
	}
	return nil, nil
}
