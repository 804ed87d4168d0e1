package memory

import (
	"context"
	"sync"

	"github.com/aretw0/conduit/pkg/wire"
)

// Store implements ports.VerdictCache in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]wire.Response
	mu   sync.RWMutex
}

// NewStore creates a new in-memory verdict cache.
func NewStore() *Store {
	return &Store{
		data: make(map[string]wire.Response),
	}
}

// Get returns the cached verdict for fingerprint.
func (s *Store) Get(ctx context.Context, fingerprint string) (wire.Response, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp, ok := s.data[fingerprint]
	return resp, ok, nil
}

// Put stores a verdict.
func (s *Store) Put(ctx context.Context, fingerprint string, resp wire.Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[fingerprint] = resp
	return nil
}

// Len returns the number of cached verdicts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
