package match

import (
	"fmt"
	"strings"

	"github.com/huntworks/engine/record"
)

// EntityKey is the composite identity of a matched entity, rendered as
// "entityType:entityId". Investigations track selected entities by key.
type EntityKey string

// NewEntityKey builds the composite key for an entity.
func NewEntityKey(entityType record.SourceType, entityID string) EntityKey {
	return EntityKey(string(entityType) + ":" + entityID)
}

// Split returns the entity type and entity ID halves of the key.
// A key with no separator reports its whole value as the ID with an empty
// type.
func (k EntityKey) Split() (record.SourceType, string) {
	s := string(k)
	i := strings.Index(s, ":")
	if i < 0 {
		return "", s
	}
	return record.SourceType(s[:i]), s[i+1:]
}

// String returns the composite key string.
func (k EntityKey) String() string {
	return string(k)
}

// MatchResult is one entity identified as relevant to a hunt, with
// confidence and risk metadata. Identity is (EntityType, EntityID).
type MatchResult struct {
	// EntityType is the record collection the entity belongs to.
	EntityType record.SourceType `json:"entity_type"`

	// EntityID identifies the entity within its collection.
	EntityID string `json:"entity_id"`

	// MatchReason explains why the entity was matched.
	MatchReason string `json:"match_reason"`

	// Confidence is the match confidence, always within [0,100].
	Confidence float64 `json:"confidence"`

	// RiskLevel classifies the entity's risk.
	RiskLevel RiskLevel `json:"risk_level"`

	// Summary is a short human-readable description of the entity.
	Summary string `json:"summary"`
}

// Key returns the composite identity key for the match.
func (m MatchResult) Key() EntityKey {
	return NewEntityKey(m.EntityType, m.EntityID)
}

// Correlation is a detected relationship linking two or more matched
// entities.
type Correlation struct {
	// Entities are the composite keys of the related entities.
	Entities []EntityKey `json:"entities"`

	// CorrelationType names the kind of relationship.
	CorrelationType string `json:"correlation_type"`

	// Description explains the relationship.
	Description string `json:"description"`

	// Significance scores the relationship's importance, within [0,100].
	Significance float64 `json:"significance"`
}

// Clamp bounds a score to the closed interval [0,100]. Out-of-range values
// from the analysis backend are clamped, never rejected.
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// FromRecord projects a locally filtered record into MatchResult shape.
// Local filter hits are exact, so confidence is 100; the risk level is
// derived from the record's severity or risk_score field when present and
// defaults to low otherwise.
func FromRecord(st record.SourceType, rec record.Record, reason string) MatchResult {
	return MatchResult{
		EntityType:  st,
		EntityID:    rec.StringField("id"),
		MatchReason: reason,
		Confidence:  100,
		RiskLevel:   riskFromRecord(rec),
		Summary:     summarizeRecord(st, rec),
	}
}

func riskFromRecord(rec record.Record) RiskLevel {
	if sev := rec.StringField("severity"); sev != "" {
		if r, ok := NormalizeRiskLevel(strings.ToLower(sev)); ok {
			return r
		}
	}
	if score, ok := rec.NumericField("risk_score"); ok {
		switch {
		case score >= 90:
			return RiskCritical
		case score >= 70:
			return RiskHigh
		case score >= 40:
			return RiskMedium
		}
	}
	return RiskLow
}

func summarizeRecord(st record.SourceType, rec record.Record) string {
	var label string
	switch st {
	case record.SourceTypeThreat:
		label = rec.StringField("name")
	case record.SourceTypeUserActivity:
		label = strings.TrimSpace(rec.StringField("user") + " " + rec.StringField("action"))
	case record.SourceTypeDevice:
		label = rec.StringField("hostname")
	}
	if label == "" {
		label = rec.StringField("id")
	}
	return fmt.Sprintf("%s: %s", st.DisplayName(), label)
}
