// Package memory provides an in-memory ResultStore, used by the CLI and in
// tests where a Redis instance would be overkill.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/aeon/pkg/domain"
	"github.com/aretw0/aeon/pkg/schema"
)

// Store implements ports.ResultStore with a plain map. Safe for concurrent
// use. Entries never expire; the process lifetime is the TTL.
type Store struct {
	mu      sync.RWMutex
	results map[string]schema.GatewayResponse
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		results: make(map[string]schema.GatewayResponse),
	}
}

// Save stores a copy of the response under key.
func (s *Store) Save(_ context.Context, key string, resp *schema.GatewayResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[key] = *resp
	return nil
}

// Load retrieves a cached response, or domain.ErrResultNotFound.
func (s *Store) Load(_ context.Context, key string) (*schema.GatewayResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp, ok := s.results[key]
	if !ok {
		return nil, domain.ErrResultNotFound
	}
	out := resp
	return &out, nil
}

// Delete removes a cached response. Deleting a missing key is a no-op.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.results, key)
	return nil
}
