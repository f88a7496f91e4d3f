package investigation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/huntworks/engine/match"
	"github.com/huntworks/engine/record"
)

// Manager creates, updates, and persists investigations.
//
// Mutating operations run under a single-writer discipline: at most one
// mutation in flight per investigation, while mutations to different
// investigations proceed independently. The manager also tracks the one
// active investigation per workbench session.
type Manager struct {
	store  Store
	logger *slog.Logger

	mu       sync.Mutex
	locks    map[string]*sync.Mutex
	activeID string

	now   func() time.Time
	newID func() string
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithStore sets the backing store. Defaults to an in-memory store.
func WithStore(store Store) ManagerOption {
	return func(m *Manager) {
		m.store = store
	}
}

// WithLogger sets the manager's structured logger.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithClock overrides the timestamp source. Intended for tests.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a Manager with the given options.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		store: NewMemoryStore(),
		locks: make(map[string]*sync.Mutex),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// lockFor returns the mutex serializing mutations for one investigation.
func (m *Manager) lockFor(id string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.Mutex{}
		m.locks[id] = l
	}
	return l
}

// Create starts a new investigation and makes it the active one.
// Returns ErrNameRequired if the name is empty or whitespace-only.
func (m *Manager) Create(ctx context.Context, name, description string) (*Investigation, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}

	inv := &Investigation{
		ID:          m.newID(),
		Name:        name,
		Description: description,
		CreatedAt:   m.now().UTC(),
		State:       StateCreated,
	}
	if err := m.store.Save(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to save investigation: %w", err)
	}

	m.mu.Lock()
	m.activeID = inv.ID
	m.mu.Unlock()

	m.logger.Info("investigation created", "id", inv.ID, "name", inv.Name)
	return inv.Clone(), nil
}

// Get retrieves an investigation by ID.
func (m *Manager) Get(ctx context.Context, id string) (*Investigation, error) {
	return m.store.Get(ctx, id)
}

// List returns all stored investigations, oldest first.
func (m *Manager) List(ctx context.Context) ([]*Investigation, error) {
	return m.store.List(ctx)
}

// Active returns the active investigation, or nil when no investigation is
// active in this session.
func (m *Manager) Active(ctx context.Context) (*Investigation, error) {
	m.mu.Lock()
	id := m.activeID
	m.mu.Unlock()

	if id == "" {
		return nil, nil
	}
	inv, err := m.store.Get(ctx, id)
	if err == ErrNotFound {
		return nil, nil
	}
	return inv, err
}

// SetActive marks an existing investigation as the session's active one.
func (m *Manager) SetActive(ctx context.Context, id string) error {
	if _, err := m.store.Get(ctx, id); err != nil {
		return err
	}
	m.mu.Lock()
	m.activeID = id
	m.mu.Unlock()
	return nil
}

// RecordQuery appends one entry to the investigation's query history.
// History is append-only; prior entries are never touched.
func (m *Manager) RecordQuery(ctx context.Context, id, queryText string, resultCount int) error {
	return m.mutate(ctx, id, func(inv *Investigation) error {
		inv.QueryHistory = append(inv.QueryHistory, QueryRecord{
			Query:       queryText,
			ExecutedAt:  m.now().UTC(),
			ResultCount: resultCount,
		})
		return nil
	})
}

// ToggleEntity inserts the entity key into the selection set if absent and
// removes it if present. Toggling twice restores the original set.
func (m *Manager) ToggleEntity(ctx context.Context, id string, entityType record.SourceType, entityID string) error {
	key := match.NewEntityKey(entityType, entityID)
	return m.mutate(ctx, id, func(inv *Investigation) error {
		for i, k := range inv.SelectedEntities {
			if k == key {
				inv.SelectedEntities = append(inv.SelectedEntities[:i], inv.SelectedEntities[i+1:]...)
				return nil
			}
		}
		inv.SelectedEntities = append(inv.SelectedEntities, key)
		return nil
	})
}

// Discard terminates the investigation. Terminal: the session admits no
// further mutation or export.
func (m *Manager) Discard(ctx context.Context, id string) error {
	err := m.mutate(ctx, id, func(inv *Investigation) error {
		inv.State = StateDiscarded
		return nil
	})
	if err != nil {
		return err
	}

	m.mu.Lock()
	if m.activeID == id {
		m.activeID = ""
	}
	m.mu.Unlock()
	return nil
}

// ExportSnapshot produces an immutable, timestamped export document.
//
// With an empty id the snapshot is an ad-hoc export: no session is
// consulted or modified and the document carries the name "Ad-hoc Hunt".
// With an investigation id, the session's name is stamped on the document
// and the session transitions to Exported; its history and selections are
// left untouched, so exporting twice yields documents identical except for
// their id and timestamp.
func (m *Manager) ExportSnapshot(ctx context.Context, id, lastQuery string, results match.Result) (*Snapshot, error) {
	snap := &Snapshot{
		ID:            m.newID(),
		Query:         lastQuery,
		Timestamp:     m.now().UTC(),
		Investigation: AdHocName,
		Results:       results,
	}
	if id == "" {
		return snap, nil
	}

	lock := m.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	inv, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.State == StateDiscarded {
		return nil, fmt.Errorf("%w: %s", ErrClosed, id)
	}
	snap.Investigation = inv.Name

	if inv.State != StateExported {
		inv.State = StateExported
		if err := m.store.Save(ctx, inv); err != nil {
			return nil, fmt.Errorf("failed to save investigation: %w", err)
		}
	}

	m.logger.Info("investigation exported", "id", inv.ID, "name", inv.Name, "matches", len(results.Matches))
	return snap, nil
}

// mutate loads, modifies, and saves one investigation under its
// single-writer lock. Terminal states reject mutation.
func (m *Manager) mutate(ctx context.Context, id string, fn func(*Investigation) error) error {
	lock := m.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	inv, err := m.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if inv.State.Terminal() {
		return fmt.Errorf("%w: %s", ErrClosed, id)
	}

	if err := fn(inv); err != nil {
		return err
	}
	if inv.State == StateCreated {
		inv.State = StateActive
	}
	if err := m.store.Save(ctx, inv); err != nil {
		return fmt.Errorf("failed to save investigation: %w", err)
	}
	return nil
}
