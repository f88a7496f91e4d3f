// Package query implements the local filter engine of the hunting
// workbench: clauses, operators, and the executor that applies a query to
// an in-memory record collection.
//
// A Query is a conjunction of clauses scoped to one source type. There is
// no OR and no grouping; that is a deliberate simplicity constraint of the
// workbench, not an omission. Execution is deterministic, side-effect-free,
// and performs no I/O: the executor walks an already-loaded record slice
// and keeps each record for which every clause matches, preserving the
// original relative order.
//
//	q := query.Query{
//	    SourceType: record.SourceTypeThreat,
//	    Clauses: []query.Clause{
//	        {Field: "severity", Operator: query.OperatorEquals, Value: "critical"},
//	        {Field: "risk_score", Operator: query.OperatorGreaterThan, Value: "80"},
//	    },
//	}
//	hits, err := query.Execute(q, threats)
//
// Error semantics follow the workbench-wide taxonomy: an unsupported
// operator is a configuration error and aborts the whole query before any
// record is evaluated; missing fields and non-numeric values are data
// conditions that degrade to "no match" for the affected clause.
package query
