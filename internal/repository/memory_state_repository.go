package repository

import (
	"context"
	"sync"

	customError "github.com/ujjiboni/dashboard/pkg/errors"
)

type memoryStateRepository struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStateRepository keeps state for the lifetime of the process only.
func NewMemoryStateRepository() StateRepository {
	return &memoryStateRepository{values: make(map[string][]byte)}
}

func (r *memoryStateRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.values[key]
	if !ok {
		return nil, customError.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (r *memoryStateRepository) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[key] = append([]byte(nil), value...)
	return nil
}

func (r *memoryStateRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.values, key)
	return nil
}

func (r *memoryStateRepository) Ping(_ context.Context) error {
	return nil
}
