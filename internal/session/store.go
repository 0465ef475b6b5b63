// Package session provides the key-value storage that chat sessions are kept in.
// Callers get a Store injected instead of reaching for a global, so the chat
// service can run against memory in tests and Postgres in production.
package session

import "context"

// Store is a string key-value store. Implementations are safe for concurrent use.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
