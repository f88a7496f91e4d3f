// Package investigation implements the stateful half of the hunt engine:
// named investigation sessions that accumulate analyst-selected entities
// and query history across multiple hunts, and the snapshot export that
// turns a session into a downloadable document.
//
// An investigation moves through a small lifecycle:
//
//	Created -> Active (query/selection cycles) -> Exported | Discarded
//
// Exported and Discarded are terminal for mutation: recording a query or
// toggling an entity on a closed investigation fails validation. Exporting
// again from Exported is allowed and produces a fresh document; everything
// else requires a fresh investigation.
//
// The Manager applies a single-writer discipline per investigation: one
// mutation in flight at a time per session, while operations on different
// investigations proceed independently. Sessions live in a Store; the
// in-memory store is the default and a Redis-backed store is provided for
// workbenches shared between analysts.
package investigation
