// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Catalog and session backends.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
	StoreMemory    = "memory"
	StorePostgres  = "postgres"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// CatalogSource selects where restaurants are read from: "file" or "postgres".
	CatalogSource string

	// CatalogPath is the JSON or YAML catalog used when CatalogSource is "file".
	CatalogPath string

	// SessionStore selects the chat session backend: "memory" or "postgres".
	SessionStore string

	// DatabaseURL is the Postgres connection string. Required only when a
	// postgres catalog or session store is selected.
	DatabaseURL string

	// AutoMigrate applies pending migrations at startup when Postgres is in use.
	AutoMigrate bool

	// MaxBodyBytes caps request body size. Defaults to 1 MiB.
	MaxBodyBytes int64

	// RateLimitRPM is the per-IP request budget for search and recommendation
	// routes. Zero disables the limiter.
	RateLimitRPM int
}

// NeedsDatabase reports whether any configured backend is Postgres.
func (c Config) NeedsDatabase() bool {
	return c.CatalogSource == SourcePostgres || c.SessionStore == StorePostgres
}

// SlogLevel maps LogLevel onto a slog.Level. Unknown values map to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadDotEnv loads variables from the given .env files (default ".env") into
// the process environment without overriding variables that are already set.
// Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config.LoadDotEnv %s: %w", p, err)
		}
	}
	return nil
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or
// naming the first variable with an invalid value.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		CatalogSource: strings.ToLower(getEnv("CATALOG_SOURCE", SourceFile)),
		CatalogPath:   getEnv("CATALOG_PATH", "data/restaurants.json"),
		SessionStore:  strings.ToLower(getEnv("SESSION_STORE", StoreMemory)),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
	}

	if cfg.CatalogSource != SourceFile && cfg.CatalogSource != SourcePostgres {
		return Config{}, fmt.Errorf("CATALOG_SOURCE must be %q or %q, got %q", SourceFile, SourcePostgres, cfg.CatalogSource)
	}
	if cfg.SessionStore != StoreMemory && cfg.SessionStore != StorePostgres {
		return Config{}, fmt.Errorf("SESSION_STORE must be %q or %q, got %q", StoreMemory, StorePostgres, cfg.SessionStore)
	}

	var err error
	if cfg.AutoMigrate, err = getBool("AUTO_MIGRATE", false); err != nil {
		return Config{}, err
	}
	maxBody, err := getInt("MAX_BODY_BYTES", 1<<20)
	if err != nil {
		return Config{}, err
	}
	if maxBody <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", maxBody)
	}
	cfg.MaxBodyBytes = int64(maxBody)
	if cfg.RateLimitRPM, err = getInt("RATE_LIMIT_RPM", 120); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitRPM < 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_RPM must not be negative, got %d", cfg.RateLimitRPM)
	}

	var missing []string
	if cfg.NeedsDatabase() && cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.CatalogSource == SourceFile && strings.TrimSpace(cfg.CatalogPath) == "" {
		missing = append(missing, "CATALOG_PATH")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	return b, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
