package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/aretw0/tmsim/pkg/domain"
)

// Store implements ports.ResultStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Result
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Result),
	}
}

// Save keeps a copy of res so later changes by the caller are not visible.
func (s *Store) Save(ctx context.Context, key string, res *domain.Result) error {
	copied := copyResult(res)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copied
	return nil
}

// Load retrieves a result from memory.
func (s *Store) Load(ctx context.Context, key string) (*domain.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.data[key]
	if !ok {
		return nil, domain.ErrResultNotFound
	}

	// Create a copy on read so caller can't mutate store state directly by pointer
	return copyResult(res), nil
}

// Delete removes a result.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns the stored keys, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Len returns the number of cached results.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func copyResult(res *domain.Result) *domain.Result {
	c := *res
	c.Records = slices.Clone(res.Records)
	c.Cached = false
	return &c
}
