package match

import (
	"sort"
	"strings"
)

// Payload is the match/correlation portion of an analysis-backend response,
// or any other source of pre-shaped matches to be merged into a result.
type Payload struct {
	Matches      []MatchResult `json:"matches"`
	Correlations []Correlation `json:"correlations"`
}

// Result is the canonical, deduplicated outcome of a hunt.
type Result struct {
	// Matches is the merged match set, one entry per entity identity, in
	// first-seen order.
	Matches []MatchResult `json:"matches"`

	// Correlations are deduplicated on exact equality of their entity-key
	// set, type, and description.
	Correlations []Correlation `json:"correlations"`

	// Degraded is true when any input entry had to be repaired (clamped,
	// defaulted) or dropped, or when the backend payload was missing
	// entirely. Non-fatal: the caller surfaces it to the analyst.
	Degraded bool `json:"degraded"`
}

// Normalize merges locally filtered matches with an analysis-backend
// payload into a single canonical result keyed by entity identity.
//
// Local matches are folded in first, then the backend payload, so a tie on
// confidence retains the local entry. When the same identity appears twice
// with different confidences, the higher confidence wins regardless of
// origin. A nil payload marks the result degraded (the backend was
// unavailable) but local matches still normalize.
func Normalize(local []MatchResult, payload *Payload) Result {
	n := newNormalizer()

	for _, m := range local {
		n.addMatch(m)
	}
	if payload == nil {
		n.degraded = true
	} else {
		for _, m := range payload.Matches {
			n.addMatch(m)
		}
		for _, c := range payload.Correlations {
			n.addCorrelation(c)
		}
	}

	return n.result()
}

type normalizer struct {
	order    []EntityKey
	byKey    map[EntityKey]MatchResult
	corrSeen map[string]struct{}
	corrs    []Correlation
	degraded bool
}

func newNormalizer() *normalizer {
	return &normalizer{
		byKey:    make(map[EntityKey]MatchResult),
		corrSeen: make(map[string]struct{}),
	}
}

func (n *normalizer) addMatch(m MatchResult) {
	// Entries without an identity cannot be deduplicated or selected into
	// an investigation; drop them rather than fail the hunt.
	if m.EntityID == "" || !m.EntityType.IsValid() {
		n.degraded = true
		return
	}

	if clamped := Clamp(m.Confidence); clamped != m.Confidence {
		m.Confidence = clamped
		n.degraded = true
	}
	if normalized, ok := NormalizeRiskLevel(string(m.RiskLevel)); !ok {
		m.RiskLevel = normalized
		n.degraded = true
	}

	key := m.Key()
	existing, seen := n.byKey[key]
	if !seen {
		n.order = append(n.order, key)
		n.byKey[key] = m
		return
	}
	if m.Confidence > existing.Confidence {
		n.byKey[key] = m
	}
}

func (n *normalizer) addCorrelation(c Correlation) {
	if len(c.Entities) == 0 {
		n.degraded = true
		return
	}
	if clamped := Clamp(c.Significance); clamped != c.Significance {
		c.Significance = clamped
		n.degraded = true
	}

	sig := correlationKey(c)
	if _, dup := n.corrSeen[sig]; dup {
		return
	}
	n.corrSeen[sig] = struct{}{}
	n.corrs = append(n.corrs, c)
}

// correlationKey builds the dedup key: the entity-key set (order
// independent) plus type and description.
func correlationKey(c Correlation) string {
	keys := make([]string, len(c.Entities))
	for i, e := range c.Entities {
		keys[i] = e.String()
	}
	sort.Strings(keys)
	return strings.Join(keys, "|") + "\x00" + c.CorrelationType + "\x00" + c.Description
}

func (n *normalizer) result() Result {
	matches := make([]MatchResult, 0, len(n.order))
	for _, key := range n.order {
		matches = append(matches, n.byKey[key])
	}
	return Result{
		Matches:      matches,
		Correlations: n.corrs,
		Degraded:     n.degraded,
	}
}
