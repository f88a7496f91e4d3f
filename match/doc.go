// Package match defines the canonical representation of hunt results:
// matched entities, correlations between them, and the normalizer that
// merges analysis-backend output with locally filtered records into one
// deduplicated result set.
//
// Identity of a match is the (entity type, entity ID) pair. When the same
// entity is found both by the local filter engine and by the analysis
// backend, the normalizer keeps the entry with the higher confidence and
// resolves ties in favor of the first-seen entry.
//
// The normalizer never fails a hunt over malformed backend data: scores are
// clamped to [0,100], missing risk levels default to low, and entries that
// cannot be identified are dropped. Any such repair sets the Degraded flag
// on the result so the caller can surface it to the analyst.
package match
