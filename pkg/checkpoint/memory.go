package checkpoint

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/matzehuels/coachmark/pkg/errors"
)

// MemoryStore keeps checkpoints in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]Checkpoint
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]Checkpoint)}
}

func (s *MemoryStore) Load(ctx context.Context, tourID string) (Checkpoint, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.items[tourID]
	return c, ok, nil
}

func (s *MemoryStore) Save(ctx context.Context, c Checkpoint) error {
	if err := errors.ValidateTourID(c.TourID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[c.TourID] = c
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, tourID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, tourID)
	return nil
}

// List returns the stored tour IDs.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Collect(maps.Keys(s.items)), nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)

// NullStore never stores anything.
// Useful when persistence is disabled.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() Store {
	return NullStore{}
}

// Load always reports a miss.
func (NullStore) Load(context.Context, string) (Checkpoint, bool, error) {
	return Checkpoint{}, false, nil
}

// Save does nothing.
func (NullStore) Save(context.Context, Checkpoint) error { return nil }

// Delete does nothing.
func (NullStore) Delete(context.Context, string) error { return nil }

// Close does nothing.
func (NullStore) Close() error { return nil }
