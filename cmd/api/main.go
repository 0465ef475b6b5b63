// Package main is the entry point for the Resrv API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pkordes/resrv/backend/internal/config"
	"github.com/pkordes/resrv/backend/internal/handler"
	"github.com/pkordes/resrv/backend/internal/middleware"
	"github.com/pkordes/resrv/backend/internal/repo"
	"github.com/pkordes/resrv/backend/internal/service"
	"github.com/pkordes/resrv/backend/internal/session"
	"github.com/pkordes/resrv/backend/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	if os.Getenv("APP_ENV") != "production" {
		if err := config.LoadDotEnv(); err != nil {
			slog.Error("failed to load .env", "error", err)
			os.Exit(1)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		// Default text logger until the JSON logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// --- Database ---------------------------------------------------------
	// Only opened when a postgres catalog or session store is configured; the
	// default setup serves the bundled catalog file with in-memory sessions.
	var pool *pgxpool.Pool
	if cfg.NeedsDatabase() {
		if cfg.AutoMigrate {
			n, err := migrations.Up(ctx, cfg.DatabaseURL)
			if err != nil {
				slog.Error("failed to run migrations", "error", err)
				os.Exit(1)
			}
			slog.Info("migrations complete", "applied", n)
		}

		pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		// Verify the DB is reachable before accepting traffic.
		if err := pool.Ping(ctx); err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		slog.Info("database connection established")
	}

	// --- Catalog and sessions --------------------------------------------
	catalog, err := newCatalog(cfg, pool)
	if err != nil {
		slog.Error("failed to load catalog", "error", err, "source", cfg.CatalogSource)
		os.Exit(1)
	}

	var store session.Store = session.NewMemoryStore()
	if cfg.SessionStore == config.StorePostgres {
		store = session.NewPGStore(pool)
	}
	slog.Info("backends ready", "catalog", cfg.CatalogSource, "sessions", cfg.SessionStore)

	// --- Services ---------------------------------------------------------
	restaurantSvc := service.NewRestaurantService(catalog)
	chatSvc := service.NewChatService(store)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer →
	// CORS → MaxBodySize.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP, which the
	// per-IP rate limiter keys on.
	// CORS runs before body limiting so preflights are answered untouched.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	srvHandler := handler.NewServer(restaurantSvc, chatSvc)
	r.Mount("/", srvHandler.Routes(middleware.NewRateLimiter(cfg.RateLimitRPM)))

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// newCatalog selects the restaurant source named by cfg.CatalogSource.
func newCatalog(cfg config.Config, pool *pgxpool.Pool) (repo.RestaurantRepo, error) {
	switch cfg.CatalogSource {
	case config.SourcePostgres:
		return repo.NewRestaurantRepo(pool), nil
	case config.SourceFile:
		c, err := repo.LoadFileCatalog(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		rs, _ := c.List(context.Background())
		slog.Info("catalog loaded", "path", cfg.CatalogPath, "restaurants", len(rs))
		return c, nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
	}
}
