// Package repo contains catalog access for the Resrv API.
// RestaurantRepo has two implementations: a Postgres table and a JSON/YAML
// file loaded once at startup. No matching logic lives here.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/resrv/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RestaurantRepo is the read side of the restaurant catalog.
// The service layer depends on this interface, not on a concrete source.
type RestaurantRepo interface {
	// List returns the whole catalog in catalog order. Never nil.
	List(ctx context.Context) ([]domain.Restaurant, error)

	// GetByID returns a single restaurant.
	// Returns domain.ErrNotFound if no restaurant with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Restaurant, error)
}

// RestaurantWriter loads catalog entries into a writable source.
// Only the Postgres repo implements it; it is used by the seed command.
type RestaurantWriter interface {
	Upsert(ctx context.Context, r domain.Restaurant) (domain.Restaurant, error)
}

// PGRestaurantRepo is the Postgres implementation of RestaurantRepo and RestaurantWriter.
type PGRestaurantRepo struct {
	db db
}

// NewRestaurantRepo constructs a Postgres-backed repo.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewRestaurantRepo(db db) *PGRestaurantRepo {
	return &PGRestaurantRepo{db: db}
}

const restaurantColumns = `id, name, location, cuisine, cuisines, areas, occasions, price, max_people, rating`

// List returns every restaurant ordered by id, which is the catalog order.
func (r *PGRestaurantRepo) List(ctx context.Context) ([]domain.Restaurant, error) {
	q := `SELECT ` + restaurantColumns + ` FROM restaurants ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.RestaurantRepo.List: %w", err)
	}
	defer rows.Close()

	out := []domain.Restaurant{}
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.RestaurantRepo.List: scan: %w", err)
		}
		out = append(out, rest)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RestaurantRepo.List: rows: %w", err)
	}
	return out, nil
}

// GetByID retrieves a restaurant by primary key.
func (r *PGRestaurantRepo) GetByID(ctx context.Context, id int64) (domain.Restaurant, error) {
	q := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanRestaurant(row)
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("repo.RestaurantRepo.GetByID: %w", err)
	}
	return result, nil
}

// Upsert inserts a restaurant or overwrites every column of the row with the same id.
func (r *PGRestaurantRepo) Upsert(ctx context.Context, rest domain.Restaurant) (domain.Restaurant, error) {
	q := `
		INSERT INTO restaurants (` + restaurantColumns + `)
		VALUES (@id, @name, @location, @cuisine, @cuisines, @areas, @occasions, @price, @max_people, @rating)
		ON CONFLICT (id) DO UPDATE SET
			name       = EXCLUDED.name,
			location   = EXCLUDED.location,
			cuisine    = EXCLUDED.cuisine,
			cuisines   = EXCLUDED.cuisines,
			areas      = EXCLUDED.areas,
			occasions  = EXCLUDED.occasions,
			price      = EXCLUDED.price,
			max_people = EXCLUDED.max_people,
			rating     = EXCLUDED.rating,
			updated_at = now()
		RETURNING ` + restaurantColumns

	args := pgx.NamedArgs{
		"id":         rest.ID,
		"name":       rest.Name,
		"location":   rest.Location,
		"cuisine":    rest.Cuisine,
		"cuisines":   nonNil(rest.Cuisines),
		"areas":      nonNil(rest.Areas),
		"occasions":  nonNil(rest.Occasions),
		"price":      rest.Price, // nil becomes NULL
		"max_people": rest.MaxPeople,
		"rating":     rest.Rating,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanRestaurant(row)
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("repo.RestaurantRepo.Upsert: %w", err)
	}
	return result, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanRestaurant maps a single row into a domain.Restaurant, turning NULL
// numeric columns into nil pointers.
func scanRestaurant(s scanner) (domain.Restaurant, error) {
	var (
		r         domain.Restaurant
		price     pgtype.Int4
		maxPeople pgtype.Int4
		rating    pgtype.Float8
	)

	err := s.Scan(&r.ID, &r.Name, &r.Location, &r.Cuisine,
		&r.Cuisines, &r.Areas, &r.Occasions, &price, &maxPeople, &rating)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Restaurant{}, domain.ErrNotFound
		}
		return domain.Restaurant{}, err
	}

	if price.Valid {
		p := int(price.Int32)
		r.Price = &p
	}
	if maxPeople.Valid {
		m := int(maxPeople.Int32)
		r.MaxPeople = &m
	}
	if rating.Valid {
		v := rating.Float64
		r.Rating = &v
	}
	return r, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
