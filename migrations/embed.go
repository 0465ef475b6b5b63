// Package migrations embeds the goose SQL migrations for the restaurants
// catalog and the session key-value table.
package migrations

import "embed"

// FS holds every *.sql migration, embedded at compile time so the seed
// command and integration tests need no migrations directory on disk.
//
//go:embed *.sql
var FS embed.FS
