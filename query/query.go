package query

import (
	"fmt"
	"strings"

	"github.com/huntworks/engine/record"
)

// Query is an AND-combination of clauses scoped to one source type.
// An empty clause list matches every record in the source collection.
type Query struct {
	// SourceType selects which record collection the query runs against.
	SourceType record.SourceType `json:"source_type"`

	// Clauses are evaluated in order and combined with logical AND.
	Clauses []Clause `json:"clauses"`
}

// Validate checks the query's source type and every clause operator.
// Configuration errors surface here, before any record is touched.
func (q Query) Validate() error {
	if !q.SourceType.IsValid() {
		return fmt.Errorf("%w: %q", record.ErrUnknownSourceType, q.SourceType)
	}
	for i, c := range q.Clauses {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("clause %d: %w", i, err)
		}
	}
	return nil
}

// String renders the query in the compact form recorded in investigation
// query history, e.g. "threat: severity equals critical AND risk_score
// greater_than 80". Pass-through clauses are elided; a query with no
// effective clauses renders as "<source>: all records".
func (q Query) String() string {
	parts := make([]string, 0, len(q.Clauses))
	for _, c := range q.Clauses {
		if c.IsPassThrough() {
			continue
		}
		parts = append(parts, c.String())
	}
	if len(parts) == 0 {
		return q.SourceType.String() + ": all records"
	}
	return q.SourceType.String() + ": " + strings.Join(parts, " AND ")
}

// Execute applies the query to an already-loaded record collection and
// returns the matching records in their original relative order (stable
// filter, never re-sorted).
//
// Execute is deterministic and side-effect-free. Configuration errors
// (unknown source type, unsupported operator) abort the whole query;
// data conditions inside individual clauses degrade to "no match" for the
// affected record instead.
func Execute(q Query, records []record.Record) ([]record.Record, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	matched := make([]record.Record, 0, len(records))
	for _, rec := range records {
		if matchesAll(q.Clauses, rec) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func matchesAll(clauses []Clause, rec record.Record) bool {
	for _, c := range clauses {
		if !c.Matches(rec) {
			return false
		}
	}
	return true
}
