package record

import (
	"errors"
	"fmt"
)

// ErrUnknownSourceType is returned when a source type is not one of the
// three supported record collections. This is a configuration error and is
// reported synchronously, never absorbed.
var ErrUnknownSourceType = errors.New("record: unknown source type")

// SourceType identifies which record collection a record belongs to.
type SourceType string

const (
	// SourceTypeThreat identifies threat intelligence records.
	SourceTypeThreat SourceType = "threat"

	// SourceTypeUserActivity identifies user activity records.
	SourceTypeUserActivity SourceType = "user_activity"

	// SourceTypeDevice identifies device inventory records.
	SourceTypeDevice SourceType = "device"
)

// SourceTypes returns all supported source types in declaration order.
func SourceTypes() []SourceType {
	return []SourceType{SourceTypeThreat, SourceTypeUserActivity, SourceTypeDevice}
}

// IsValid returns true if the source type is one of the supported values.
func (s SourceType) IsValid() bool {
	switch s {
	case SourceTypeThreat, SourceTypeUserActivity, SourceTypeDevice:
		return true
	default:
		return false
	}
}

// String returns the string representation of the source type.
func (s SourceType) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the source type.
// Returns "Unknown" for invalid source types.
func (s SourceType) DisplayName() string {
	switch s {
	case SourceTypeThreat:
		return "Threats"
	case SourceTypeUserActivity:
		return "User Activity"
	case SourceTypeDevice:
		return "Devices"
	default:
		return "Unknown"
	}
}

// ParseSourceType parses a string into a SourceType value.
// Returns ErrUnknownSourceType for unrecognized values.
func ParseSourceType(s string) (SourceType, error) {
	switch s {
	case "threat", "threats":
		return SourceTypeThreat, nil
	case "user_activity", "user-activity":
		return SourceTypeUserActivity, nil
	case "device", "devices":
		return SourceTypeDevice, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSourceType, s)
	}
}
