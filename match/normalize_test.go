package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huntworks/engine/record"
)

func backendMatch(id string, confidence float64) MatchResult {
	return MatchResult{
		EntityType:  record.SourceTypeThreat,
		EntityID:    id,
		MatchReason: "semantic hunt",
		Confidence:  confidence,
		RiskLevel:   RiskHigh,
		Summary:     "Threats: " + id,
	}
}

func TestNormalize_DeduplicatesByIdentity(t *testing.T) {
	local := []MatchResult{backendMatch("t1", 100)}
	payload := &Payload{
		Matches: []MatchResult{backendMatch("t1", 60), backendMatch("t2", 70)},
	}

	got := Normalize(local, payload)

	require.Len(t, got.Matches, 2)
	assert.Equal(t, "t1", got.Matches[0].EntityID)
	assert.Equal(t, float64(100), got.Matches[0].Confidence, "higher confidence retained")
	assert.Equal(t, "t2", got.Matches[1].EntityID)
	assert.False(t, got.Degraded)
}

func TestNormalize_HigherBackendConfidenceWins(t *testing.T) {
	local := []MatchResult{backendMatch("t1", 40)}
	payload := &Payload{Matches: []MatchResult{backendMatch("t1", 90)}}

	got := Normalize(local, payload)

	require.Len(t, got.Matches, 1)
	assert.Equal(t, float64(90), got.Matches[0].Confidence)
}

func TestNormalize_TieRetainsFirstSeen(t *testing.T) {
	first := backendMatch("t1", 80)
	first.MatchReason = "local filter"
	second := backendMatch("t1", 80)
	second.MatchReason = "semantic hunt"

	got := Normalize([]MatchResult{first}, &Payload{Matches: []MatchResult{second}})

	require.Len(t, got.Matches, 1)
	assert.Equal(t, "local filter", got.Matches[0].MatchReason)
}

func TestNormalize_PreservesFirstSeenOrder(t *testing.T) {
	payload := &Payload{
		Matches: []MatchResult{
			backendMatch("t3", 10),
			backendMatch("t1", 20),
			backendMatch("t2", 30),
		},
	}

	got := Normalize(nil, payload)

	require.Len(t, got.Matches, 3)
	assert.Equal(t, "t3", got.Matches[0].EntityID)
	assert.Equal(t, "t1", got.Matches[1].EntityID)
	assert.Equal(t, "t2", got.Matches[2].EntityID)
}

func TestNormalize_ClampsAndDefaults(t *testing.T) {
	payload := &Payload{
		Matches: []MatchResult{
			{EntityType: record.SourceTypeThreat, EntityID: "t1", Confidence: 250, RiskLevel: RiskHigh},
			{EntityType: record.SourceTypeThreat, EntityID: "t2", Confidence: -10, RiskLevel: RiskLow},
			{EntityType: record.SourceTypeThreat, EntityID: "t3", Confidence: 50},
		},
	}

	got := Normalize(nil, payload)

	require.Len(t, got.Matches, 3)
	assert.Equal(t, float64(100), got.Matches[0].Confidence)
	assert.Equal(t, float64(0), got.Matches[1].Confidence)
	assert.Equal(t, RiskLow, got.Matches[2].RiskLevel, "missing risk level defaults to low")
	assert.True(t, got.Degraded)
}

func TestNormalize_DropsUnidentifiableEntries(t *testing.T) {
	payload := &Payload{
		Matches: []MatchResult{
			{EntityType: record.SourceTypeThreat, EntityID: "", Confidence: 90, RiskLevel: RiskHigh},
			{EntityType: record.SourceType("mailbox"), EntityID: "x", Confidence: 90, RiskLevel: RiskHigh},
			backendMatch("t1", 55),
		},
	}

	got := Normalize(nil, payload)

	require.Len(t, got.Matches, 1)
	assert.Equal(t, "t1", got.Matches[0].EntityID)
	assert.True(t, got.Degraded, "dropped entries surface as degraded, not as an error")
}

func TestNormalize_NilPayloadIsDegraded(t *testing.T) {
	local := []MatchResult{backendMatch("t1", 100)}

	got := Normalize(local, nil)

	require.Len(t, got.Matches, 1)
	assert.True(t, got.Degraded)
}

func TestNormalize_CorrelationDedup(t *testing.T) {
	a := NewEntityKey(record.SourceTypeThreat, "t1")
	b := NewEntityKey(record.SourceTypeDevice, "d1")

	payload := &Payload{
		Correlations: []Correlation{
			{Entities: []EntityKey{a, b}, CorrelationType: "shared_infrastructure", Description: "same C2", Significance: 80},
			{Entities: []EntityKey{b, a}, CorrelationType: "shared_infrastructure", Description: "same C2", Significance: 80},
			{Entities: []EntityKey{a, b}, CorrelationType: "shared_infrastructure", Description: "different note", Significance: 80},
			{Entities: []EntityKey{a, b}, CorrelationType: "temporal", Description: "same C2", Significance: 80},
		},
	}

	got := Normalize(nil, payload)

	// Entity-key order does not distinguish correlations; type and
	// description do.
	require.Len(t, got.Correlations, 3)
	assert.False(t, got.Degraded)
}

func TestNormalize_CorrelationClampAndEmptySet(t *testing.T) {
	a := NewEntityKey(record.SourceTypeThreat, "t1")
	payload := &Payload{
		Correlations: []Correlation{
			{Entities: []EntityKey{a}, CorrelationType: "t", Description: "d", Significance: 300},
			{CorrelationType: "orphaned", Description: "no entities", Significance: 10},
		},
	}

	got := Normalize(nil, payload)

	require.Len(t, got.Correlations, 1)
	assert.Equal(t, float64(100), got.Correlations[0].Significance)
	assert.True(t, got.Degraded)
}
