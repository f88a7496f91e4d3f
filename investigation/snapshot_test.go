package investigation

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huntworks/engine/match"
	"github.com/huntworks/engine/record"
)

func TestExportFormat_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		format ExportFormat
		want   bool
	}{
		{"json is valid", FormatJSON, true},
		{"csv is valid", FormatCSV, true},
		{"empty is invalid", ExportFormat(""), false},
		{"pdf is invalid", ExportFormat("pdf"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format.IsValid(); got != tt.want {
				t.Errorf("ExportFormat.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExportFormat_FileExtension(t *testing.T) {
	assert.Equal(t, ".json", FormatJSON.FileExtension())
	assert.Equal(t, ".csv", FormatCSV.FileExtension())
	assert.Equal(t, "", ExportFormat("pdf").FileExtension())
}

func TestExportFormat_MimeType(t *testing.T) {
	assert.Equal(t, "application/json", FormatJSON.MimeType())
	assert.Equal(t, "text/csv", FormatCSV.MimeType())
	assert.Equal(t, "application/octet-stream", ExportFormat("pdf").MimeType())
}

func sampleSnapshot() *Snapshot {
	return &Snapshot{
		ID:            "exp-1",
		Query:         "threat: severity equals critical",
		Timestamp:     time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Investigation: "APT Campaign Review",
		Results: match.Result{
			Matches: []match.MatchResult{
				{
					EntityType:  record.SourceTypeThreat,
					EntityID:    "t1",
					MatchReason: "severity equals critical",
					Confidence:  100,
					RiskLevel:   match.RiskCritical,
					Summary:     "Threats: LockBit",
				},
			},
			Correlations: []match.Correlation{
				{
					Entities:        []match.EntityKey{"threat:t1", "device:d1"},
					CorrelationType: "shared_infrastructure",
					Description:     "same C2 endpoint",
					Significance:    85,
				},
			},
		},
	}
}

func TestSnapshot_WriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleSnapshot().WriteJSON(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "threat: severity equals critical", decoded["query"])
	assert.Equal(t, "APT Campaign Review", decoded["investigation"])
	assert.Equal(t, "2024-05-01T12:00:00Z", decoded["timestamp"], "timestamp must be ISO-8601")

	results, ok := decoded["results"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, results["matches"], 1)
	assert.Len(t, results["correlations"], 1)
}

func TestSnapshot_WriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleSnapshot().WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "entity_type,entity_id,match_reason,confidence,risk_level,summary", lines[0])
	assert.Contains(t, lines[1], "threat,t1")
	assert.Contains(t, lines[1], "critical")
}

func TestSnapshot_Write_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := sampleSnapshot().Write(&buf, ExportFormat("pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}
