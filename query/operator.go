package query

import (
	"errors"
	"fmt"
)

// ErrUnsupportedOperator is returned when a clause names an operator the
// engine does not implement. This is a configuration error: it is raised
// before any record is evaluated and aborts the whole query.
var ErrUnsupportedOperator = errors.New("query: unsupported operator")

// Operator is a clause comparison operator.
type Operator string

const (
	// OperatorEquals matches when the field value equals the clause value,
	// compared case-insensitively as strings.
	OperatorEquals Operator = "equals"

	// OperatorNotEquals is the negation of OperatorEquals.
	OperatorNotEquals Operator = "not_equals"

	// OperatorContains matches when the stringified field value contains
	// the clause value, case-insensitively.
	OperatorContains Operator = "contains"

	// OperatorGreaterThan matches when both sides coerce to numbers and
	// the field value is strictly greater.
	OperatorGreaterThan Operator = "greater_than"

	// OperatorLessThan matches when both sides coerce to numbers and the
	// field value is strictly smaller.
	OperatorLessThan Operator = "less_than"
)

// Operators returns all supported operators in declaration order.
func Operators() []Operator {
	return []Operator{
		OperatorEquals,
		OperatorNotEquals,
		OperatorContains,
		OperatorGreaterThan,
		OperatorLessThan,
	}
}

// IsValid returns true if the operator is supported.
func (o Operator) IsValid() bool {
	switch o {
	case OperatorEquals, OperatorNotEquals, OperatorContains, OperatorGreaterThan, OperatorLessThan:
		return true
	default:
		return false
	}
}

// String returns the string representation of the operator.
func (o Operator) String() string {
	return string(o)
}

// ParseOperator parses a string into an Operator value.
// Returns ErrUnsupportedOperator for unrecognized values.
func ParseOperator(s string) (Operator, error) {
	op := Operator(s)
	if !op.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedOperator, s)
	}
	return op, nil
}
