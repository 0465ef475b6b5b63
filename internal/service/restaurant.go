// Package service contains the business logic for the Resrv API.
// Services validate inputs and orchestrate repo and store calls; the
// matching itself lives in package recommend. No SQL lives here.
package service

import (
	"context"
	"fmt"

	"github.com/pkordes/resrv/backend/internal/domain"
	"github.com/pkordes/resrv/backend/internal/recommend"
	"github.com/pkordes/resrv/backend/internal/repo"
)

// RestaurantService serves catalog browsing, search, and recommendations.
type RestaurantService struct {
	repo repo.RestaurantRepo
}

// NewRestaurantService constructs a RestaurantService backed by the given catalog.
func NewRestaurantService(r repo.RestaurantRepo) *RestaurantService {
	return &RestaurantService{repo: r}
}

// Search returns one page of restaurants loosely matching query, plus the
// total number of matches. A blank query pages through the whole catalog.
func (s *RestaurantService) Search(ctx context.Context, query string, p domain.PaginationParams) ([]domain.Restaurant, int, error) {
	catalog, err := s.repo.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.RestaurantService.Search: %w", err)
	}

	hits := recommend.Search(catalog, query)
	start, end := p.Bounds(len(hits))
	return hits[start:end], len(hits), nil
}

// GetByID returns a single restaurant.
// Returns domain.ErrNotFound if the id is not in the catalog.
func (s *RestaurantService) GetByID(ctx context.Context, id int64) (domain.Restaurant, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("service.RestaurantService.GetByID: %w", err)
	}
	return r, nil
}

// Recommend runs the matcher over the current catalog.
// Nil criteria mean no filtering context yet. Negative budget or party size
// returns domain.ErrValidation.
func (s *RestaurantService) Recommend(ctx context.Context, criteria *domain.Filters) (domain.Buckets, error) {
	if err := validateFilters(criteria); err != nil {
		return domain.Buckets{}, fmt.Errorf("service.RestaurantService.Recommend: %w", err)
	}

	catalog, err := s.repo.List(ctx)
	if err != nil {
		return domain.Buckets{}, fmt.Errorf("service.RestaurantService.Recommend: %w", err)
	}
	return recommend.Recommend(catalog, criteria), nil
}

func validateFilters(f *domain.Filters) error {
	if f == nil {
		return nil
	}
	if f.Budget != nil && *f.Budget < 0 {
		return fmt.Errorf("%w: budget must not be negative", domain.ErrValidation)
	}
	if f.People != nil && *f.People < 0 {
		return fmt.Errorf("%w: people must not be negative", domain.ErrValidation)
	}
	return nil
}
