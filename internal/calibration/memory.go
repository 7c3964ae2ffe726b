package calibration

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore keeps the calibration mapping in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]int
}

// NewMemoryStore creates an empty, uncalibrated store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]int)}
}

// Load returns the stored calibration.
func (s *MemoryStore) Load(ctx context.Context) (Calibration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Decode(s.values)
}

// Save replaces the stored calibration.
func (s *MemoryStore) Save(ctx context.Context, c Calibration) error {
	if err := c.Validate(); err != nil {
		return err
	}
	values := Encode(c)
	s.mu.Lock()
	s.values = values
	s.mu.Unlock()
	return nil
}

// Values returns a copy of the raw key to integer mapping.
func (s *MemoryStore) Values() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}

var _ Store = (*MemoryStore)(nil)
