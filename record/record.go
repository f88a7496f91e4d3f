package record

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is a single named-field record from one of the source collections.
// Records are opaque to the engine: fields are accessed generically by name
// rather than through per-type structs, so the same filtering machinery
// works across all three collections.
//
// A nil Record behaves like a record with no fields.
type Record map[string]any

// Field returns the raw value of the named field and whether it is present.
func (r Record) Field(name string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r[name]
	return v, ok
}

// StringField returns the stringified value of the named field.
// Missing fields stringify to the empty string.
func (r Record) StringField(name string) string {
	v, ok := r.Field(name)
	if !ok || v == nil {
		return ""
	}
	return Stringify(v)
}

// NumericField returns the named field coerced to a float64. The second
// return value is false when the field is missing or its value is not
// numeric (including strings like "N/A").
func (r Record) NumericField(name string) (float64, bool) {
	v, ok := r.Field(name)
	if !ok {
		return 0, false
	}
	return Numeric(v)
}

// Stringify converts a field value to its canonical string form.
// Numbers render without a trailing ".0" for whole values so that a record
// holding 80 and one holding "80" compare equal under string operators.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Numeric coerces a field value to a float64. Strings are trimmed and
// parsed; anything that does not parse cleanly reports false rather than
// an error, so numeric clause comparisons degrade to "no match" instead of
// failing a whole query.
func Numeric(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
