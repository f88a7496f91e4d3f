package investigation

import (
	"context"
	"sort"
	"sync"
)

// Store persists investigations. Implementations must be safe for
// concurrent use; the Manager layers its single-writer discipline per
// investigation on top.
type Store interface {
	// Save writes the investigation, replacing any existing session with
	// the same ID.
	Save(ctx context.Context, inv *Investigation) error

	// Get retrieves an investigation by ID.
	// Returns ErrNotFound if the ID is unknown.
	Get(ctx context.Context, id string) (*Investigation, error)

	// List returns all stored investigations ordered by creation time,
	// oldest first.
	List(ctx context.Context) ([]*Investigation, error)

	// Delete removes an investigation by ID.
	// Returns ErrNotFound if the ID is unknown.
	Delete(ctx context.Context, id string) error
}

// MemoryStore is the default in-memory Store. Sessions live for the
// duration of the workbench process.
type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string]*Investigation
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]*Investigation)}
}

// Save writes a deep copy of the investigation.
func (s *MemoryStore) Save(_ context.Context, inv *Investigation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[inv.ID] = inv.Clone()
	return nil
}

// Get returns a deep copy of the stored investigation.
func (s *MemoryStore) Get(_ context.Context, id string) (*Investigation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return inv.Clone(), nil
}

// List returns deep copies of all stored investigations, oldest first.
func (s *MemoryStore) List(_ context.Context) ([]*Investigation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Investigation, 0, len(s.byID))
	for _, inv := range s.byID {
		out = append(out, inv.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes an investigation.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	return nil
}
