package investigation

import (
	"errors"
	"time"

	"github.com/huntworks/engine/match"
)

// Common errors returned by investigation operations.
var (
	// ErrNameRequired is returned when an investigation is created with an
	// empty or whitespace-only name.
	ErrNameRequired = errors.New("investigation: name is required")

	// ErrNotFound is returned when the requested investigation does not
	// exist in the store.
	ErrNotFound = errors.New("investigation: not found")

	// ErrClosed is returned when a mutating operation targets an
	// investigation in a terminal state.
	ErrClosed = errors.New("investigation: investigation is closed")
)

// State is the lifecycle state of an investigation.
type State string

const (
	// StateCreated is the initial state, before any query or selection has
	// been recorded.
	StateCreated State = "created"

	// StateActive indicates the investigation is accumulating queries and
	// entity selections.
	StateActive State = "active"

	// StateExported indicates the investigation was exported. Terminal for
	// mutation; re-export is still allowed.
	StateExported State = "exported"

	// StateDiscarded indicates the analyst discarded the investigation.
	// Terminal.
	StateDiscarded State = "discarded"
)

// IsValid returns true if the state is one of the defined values.
func (s State) IsValid() bool {
	switch s {
	case StateCreated, StateActive, StateExported, StateDiscarded:
		return true
	default:
		return false
	}
}

// Terminal reports whether the state admits no further mutation.
func (s State) Terminal() bool {
	return s == StateExported || s == StateDiscarded
}

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// QueryRecord is one entry in an investigation's query history.
// Entries are append-only: they are never mutated or removed while the
// investigation is active.
type QueryRecord struct {
	// Query is the executed query, either free text or a serialized
	// filter query.
	Query string `json:"query"`

	// ExecutedAt is when the query ran.
	ExecutedAt time.Time `json:"executed_at"`

	// ResultCount is how many matches the query produced.
	ResultCount int `json:"result_count"`
}

// Investigation is a named, stateful container accumulating hunt queries
// and analyst-selected entities over time.
type Investigation struct {
	// ID is the unique identifier assigned at creation.
	ID string `json:"id"`

	// Name is the analyst-provided name. Required, non-empty.
	Name string `json:"name"`

	// Description is optional context for the investigation.
	Description string `json:"description,omitempty"`

	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"created_at"`

	// State is the current lifecycle state.
	State State `json:"state"`

	// SelectedEntities is the set of confirmed entity keys, in selection
	// order. Set semantics are enforced by the Manager: selecting an
	// already-present key removes it, never duplicates it.
	SelectedEntities []match.EntityKey `json:"selected_entities"`

	// QueryHistory is the append-only sequence of executed queries.
	QueryHistory []QueryRecord `json:"query_history"`
}

// HasEntity reports whether the entity key is currently selected.
func (inv *Investigation) HasEntity(key match.EntityKey) bool {
	for _, k := range inv.SelectedEntities {
		if k == key {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the investigation so callers can inspect
// session state without holding the manager's locks.
func (inv *Investigation) Clone() *Investigation {
	if inv == nil {
		return nil
	}
	out := *inv
	out.SelectedEntities = append([]match.EntityKey(nil), inv.SelectedEntities...)
	out.QueryHistory = append([]QueryRecord(nil), inv.QueryHistory...)
	return &out
}
