package repository

import (
	"context"
	"sync"

	"logisticshub-service/internal/domain/repository"
)

// MemoryKVStore is the always-available in-process fallback store, used when
// no external key-value host is configured or reachable. It is also the
// store exercised by tests.
type MemoryKVStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKVStore creates an empty in-memory store
func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{
		values: make(map[string]string),
	}
}

// Get returns the stored value for key
func (s *MemoryKVStore) Get(ctx context.Context, key string) (repository.ReadResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return repository.ReadResult{State: repository.ReadAbsent}, nil
	}
	return normalizeStoredValue(value), nil
}

// Set stores value under key
func (s *MemoryKVStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}
