package record

import "fmt"

// FieldSpec describes one queryable field on a source type.
type FieldSpec struct {
	// Name is the field name as it appears on records.
	Name string `json:"name"`

	// SourceType is the record collection the field belongs to.
	SourceType SourceType `json:"source_type"`
}

// Registry is a static catalogue of queryable fields per source type.
// A Registry is immutable after construction; lookups return copies so
// callers cannot mutate the catalogue through a returned slice.
type Registry struct {
	fields map[SourceType][]FieldSpec
}

// NewRegistry builds a registry from per-source field name lists, preserving
// declaration order.
func NewRegistry(fields map[SourceType][]string) *Registry {
	r := &Registry{fields: make(map[SourceType][]FieldSpec, len(fields))}
	for st, names := range fields {
		specs := make([]FieldSpec, 0, len(names))
		for _, name := range names {
			specs = append(specs, FieldSpec{Name: name, SourceType: st})
		}
		r.fields[st] = specs
	}
	return r
}

// Fields returns the ordered field specs available for clause construction
// against the given source type. Returns ErrUnknownSourceType if the source
// type is not catalogued.
func (r *Registry) Fields(st SourceType) ([]FieldSpec, error) {
	specs, ok := r.fields[st]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSourceType, st)
	}
	out := make([]FieldSpec, len(specs))
	copy(out, specs)
	return out, nil
}

// Has reports whether the named field is catalogued for the source type.
// Unknown source types report false.
func (r *Registry) Has(st SourceType, name string) bool {
	for _, spec := range r.fields[st] {
		if spec.Name == name {
			return true
		}
	}
	return false
}

// defaultRegistry catalogues the fields exposed by the three stock record
// collections. Declared statically, not derived from data.
var defaultRegistry = NewRegistry(map[SourceType][]string{
	SourceTypeThreat: {
		"id",
		"name",
		"type",
		"severity",
		"status",
		"source",
		"risk_score",
		"first_seen",
		"last_seen",
	},
	SourceTypeUserActivity: {
		"id",
		"user",
		"action",
		"resource",
		"timestamp",
		"location",
		"device_id",
		"risk_score",
		"status",
	},
	SourceTypeDevice: {
		"id",
		"hostname",
		"ip_address",
		"os",
		"owner",
		"compliance",
		"risk_score",
		"last_seen",
	},
})

// DefaultRegistry returns the built-in field catalogue.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Fields returns the ordered field specs for the given source type from the
// built-in catalogue.
func Fields(st SourceType) ([]FieldSpec, error) {
	return defaultRegistry.Fields(st)
}
