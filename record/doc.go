// Package record defines the read-only data model shared by every part of
// the hunt engine: source types, the generic record representation, and the
// static field registry used for clause construction.
//
// Records originate in independently maintained collections (threat
// intelligence, user activity, device inventory). The engine treats them as
// immutable, already-loaded sequences of named fields; nothing in this
// package writes back to a record source.
//
// # Source Types
//
// Every record belongs to exactly one SourceType:
//
//	record.SourceTypeThreat       // threat intelligence records
//	record.SourceTypeUserActivity // user activity / audit records
//	record.SourceTypeDevice       // device inventory records
//
// # Field Registry
//
// The registry is a static catalogue of queryable fields per source type.
// It is declared in code, not derived from data, so the set of fields a
// caller may filter on is stable regardless of what any individual record
// happens to contain:
//
//	fields, err := record.Fields(record.SourceTypeThreat)
//	if err != nil {
//	    // unknown source type
//	}
//	for _, f := range fields {
//	    fmt.Println(f.Name)
//	}
package record
