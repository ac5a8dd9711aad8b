// Package session maps opaque session ids to the authenticated principal's
// email. An absent entry is indistinguishable from "not logged in".
package session

import (
	"context"
	"sync"
)

// Store is the process-wide session binding. Implementations must be safe for
// concurrent use by independent requests.
type Store interface {
	// Create binds email to id, overwriting any prior value.
	Create(ctx context.Context, id, email string) error
	// Read returns the bound email, or ok=false when the session is absent.
	Read(ctx context.Context, id string) (email string, ok bool, err error)
	// Delete removes the binding; deleting an absent session is not an error.
	Delete(ctx context.Context, id string) error
}

// MemoryStore is the default Store: a concurrency-safe in-process map.
// Entries live until logout or process restart; there is no expiry policy.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore creates an empty in-memory store. Tests inject a fresh
// instance per run.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Create(_ context.Context, id, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = email
	return nil
}

func (s *MemoryStore) Read(_ context.Context, id string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email, ok := s.data[id]
	return email, ok, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}
