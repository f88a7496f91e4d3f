// Package analysis defines the contract with the external analysis
// backend: the generative service that, given a free-text hunt query and
// samples of the record sources, returns semantic matches, correlations,
// and narrative insights.
//
// The engine treats the backend strictly as an optional enrichment
// collaborator. Every engine invariant holds with or without it: when the
// backend is slow, fails, or is not configured, callers proceed with local
// filter results and a degraded flag. Prompt construction and
// natural-language parsing live behind the Client implementation and are
// not this package's concern.
package analysis
