// Package main loads a restaurant catalog file into Postgres.
//
// It applies pending migrations, then upserts every restaurant from the file
// inside a single transaction, so a failed run leaves the table unchanged.
//
//	go run ./cmd/seed -file data/restaurants.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/resrv/backend/internal/config"
	"github.com/pkordes/resrv/backend/internal/repo"
	"github.com/pkordes/resrv/backend/migrations"
)

func main() {
	path := flag.String("file", "", "catalog file (.json, .yaml or .yml); defaults to CATALOG_PATH")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background(), *path); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string) error {
	if os.Getenv("APP_ENV") != "production" {
		if err := config.LoadDotEnv(); err != nil {
			return err
		}
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return fmt.Errorf("required environment variables not set: DATABASE_URL")
	}
	if path == "" {
		path = os.Getenv("CATALOG_PATH")
	}
	if path == "" {
		path = "data/restaurants.json"
	}

	catalog, err := repo.LoadFileCatalog(path)
	if err != nil {
		return err
	}
	restaurants, err := catalog.List(ctx)
	if err != nil {
		return err
	}

	if _, err := migrations.Up(ctx, dsn); err != nil {
		return err
	}

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(ctx)

	err = pgx.BeginFunc(ctx, conn, func(tx pgx.Tx) error {
		var w repo.RestaurantWriter = repo.NewRestaurantRepo(tx)
		for _, r := range restaurants {
			if _, err := w.Upsert(ctx, r); err != nil {
				return fmt.Errorf("restaurant %d: %w", r.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("catalog seeded", "file", path, "restaurants", len(restaurants))
	return nil
}
