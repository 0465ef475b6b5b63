package repo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/resrv/backend/internal/domain"
)

// FileCatalog is a RestaurantRepo over a catalog file read once at construction.
// It is immutable afterwards and safe for concurrent use.
type FileCatalog struct {
	restaurants []domain.Restaurant
	byID        map[int64]int
}

// LoadFileCatalog reads a JSON (.json) or YAML (.yaml, .yml) catalog file.
// The file holds a list of restaurants. Duplicate ids are rejected with
// domain.ErrValidation.
func LoadFileCatalog(path string) (*FileCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("repo.LoadFileCatalog: %w", err)
	}

	var restaurants []domain.Restaurant
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(raw, &restaurants)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &restaurants)
	default:
		return nil, fmt.Errorf("repo.LoadFileCatalog: %w: unsupported catalog extension %q", domain.ErrValidation, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("repo.LoadFileCatalog: decode %s: %w", path, err)
	}

	c, err := NewFileCatalog(restaurants)
	if err != nil {
		return nil, fmt.Errorf("repo.LoadFileCatalog: %w", err)
	}
	return c, nil
}

// NewFileCatalog builds a catalog from records already in memory.
func NewFileCatalog(restaurants []domain.Restaurant) (*FileCatalog, error) {
	c := &FileCatalog{
		restaurants: make([]domain.Restaurant, 0, len(restaurants)),
		byID:        make(map[int64]int, len(restaurants)),
	}
	for _, r := range restaurants {
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate restaurant id %d", domain.ErrValidation, r.ID)
		}
		c.byID[r.ID] = len(c.restaurants)
		c.restaurants = append(c.restaurants, cloneRestaurant(r))
	}
	return c, nil
}

// List returns a copy of the catalog in file order.
func (c *FileCatalog) List(_ context.Context) ([]domain.Restaurant, error) {
	out := make([]domain.Restaurant, len(c.restaurants))
	for i, r := range c.restaurants {
		out[i] = cloneRestaurant(r)
	}
	return out, nil
}

// GetByID returns a copy of one restaurant.
func (c *FileCatalog) GetByID(_ context.Context, id int64) (domain.Restaurant, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Restaurant{}, fmt.Errorf("repo.FileCatalog.GetByID: %w", domain.ErrNotFound)
	}
	return cloneRestaurant(c.restaurants[i]), nil
}

// cloneRestaurant deep-copies r so callers cannot reach the catalog's slices or pointers.
func cloneRestaurant(r domain.Restaurant) domain.Restaurant {
	r.Cuisines = slices.Clone(r.Cuisines)
	r.Areas = slices.Clone(r.Areas)
	r.Occasions = slices.Clone(r.Occasions)
	r.Price = clonePtr(r.Price)
	r.MaxPeople = clonePtr(r.MaxPeople)
	r.Rating = clonePtr(r.Rating)
	return r
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
