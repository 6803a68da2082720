package repository

import (
	"context"
)

// StateRepository defines the interface for persisted client state, a small
// key-value store holding JSON documents.
type StateRepository interface {
	// Get returns the value stored under key, or errors.ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set creates or replaces the value stored under key
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// Ping checks the store is reachable
	Ping(ctx context.Context) error
}
