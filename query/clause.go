package query

import (
	"strings"

	"github.com/huntworks/engine/record"
)

// Clause is a single field/operator/value filter condition.
//
// A clause with an empty Field or empty Value is an explicit pass-through:
// it matches every record. The workbench UI builds clause rows
// incrementally, and an incomplete row must not filter anything out.
type Clause struct {
	// Field is the record field the clause tests.
	Field string `json:"field"`

	// Operator is the comparison to apply.
	Operator Operator `json:"operator"`

	// Value is the right-hand side of the comparison, always carried as a
	// string and coerced per operator.
	Value string `json:"value"`
}

// IsPassThrough reports whether the clause is incomplete and therefore
// matches unconditionally.
func (c Clause) IsPassThrough() bool {
	return c.Field == "" || c.Value == ""
}

// Matches evaluates the clause against one record.
//
// Evaluation is pure: identical inputs always produce identical output.
// Missing fields are treated as the empty string for string operators and
// as not-a-number for numeric operators; a numeric comparison against a
// non-numeric side evaluates to false rather than raising. The operator is
// assumed valid; callers validate operators up front via Validate or
// Execute.
func (c Clause) Matches(rec record.Record) bool {
	if c.IsPassThrough() {
		return true
	}

	switch c.Operator {
	case OperatorEquals:
		return strings.EqualFold(rec.StringField(c.Field), c.Value)
	case OperatorNotEquals:
		return !strings.EqualFold(rec.StringField(c.Field), c.Value)
	case OperatorContains:
		haystack := strings.ToLower(rec.StringField(c.Field))
		return strings.Contains(haystack, strings.ToLower(c.Value))
	case OperatorGreaterThan:
		lhs, lok := rec.NumericField(c.Field)
		rhs, rok := record.Numeric(c.Value)
		return lok && rok && lhs > rhs
	case OperatorLessThan:
		lhs, lok := rec.NumericField(c.Field)
		rhs, rok := record.Numeric(c.Value)
		return lok && rok && lhs < rhs
	default:
		return false
	}
}

// Validate checks the clause's operator. Pass-through clauses are valid
// regardless of operator because they are never dispatched on it.
func (c Clause) Validate() error {
	if c.IsPassThrough() {
		return nil
	}
	_, err := ParseOperator(string(c.Operator))
	return err
}

// String renders the clause in the compact form used for query history.
func (c Clause) String() string {
	return c.Field + " " + string(c.Operator) + " " + c.Value
}
