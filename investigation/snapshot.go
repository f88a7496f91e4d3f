package investigation

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huntworks/engine/match"
)

// AdHocName is the investigation name stamped on snapshots exported
// without an active investigation.
const AdHocName = "Ad-hoc Hunt"

// ExportFormat represents the format for writing a snapshot.
type ExportFormat string

const (
	// FormatJSON writes the snapshot as a JSON document.
	FormatJSON ExportFormat = "json"

	// FormatCSV writes the snapshot's matches as comma-separated values.
	FormatCSV ExportFormat = "csv"
)

// IsValid returns true if the export format is supported.
func (f ExportFormat) IsValid() bool {
	switch f {
	case FormatJSON, FormatCSV:
		return true
	default:
		return false
	}
}

// String returns the string representation of the export format.
func (f ExportFormat) String() string {
	return string(f)
}

// FileExtension returns the file extension for the export format.
func (f ExportFormat) FileExtension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatCSV:
		return ".csv"
	default:
		return ""
	}
}

// MimeType returns the MIME type for the export format.
func (f ExportFormat) MimeType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}

// Snapshot is an immutable, timestamped export document suitable for
// download as a file artifact. Building a snapshot never mutates the
// session it was taken from.
type Snapshot struct {
	// ID uniquely identifies this export.
	ID string `json:"id"`

	// Query is the last executed query, free text or serialized filter.
	Query string `json:"query"`

	// Timestamp is when the snapshot was taken (ISO-8601 in JSON).
	Timestamp time.Time `json:"timestamp"`

	// Investigation is the session name, or "Ad-hoc Hunt" when the export
	// was taken outside any investigation.
	Investigation string `json:"investigation"`

	// Results is the normalized match/correlation payload.
	Results match.Result `json:"results"`
}

// Write renders the snapshot to w in the requested format.
func (s *Snapshot) Write(w io.Writer, format ExportFormat) error {
	switch format {
	case FormatJSON:
		return s.WriteJSON(w)
	case FormatCSV:
		return s.WriteCSV(w)
	default:
		return fmt.Errorf("unsupported export format: %q", format)
	}
}

// WriteJSON renders the snapshot as an indented JSON document.
func (s *Snapshot) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// WriteCSV renders the snapshot's matches as CSV, one row per matched
// entity. Correlations and insights are JSON-only.
func (s *Snapshot) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{"entity_type", "entity_id", "match_reason", "confidence", "risk_level", "summary"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, m := range s.Results.Matches {
		row := []string{
			m.EntityType.String(),
			m.EntityID,
			m.MatchReason,
			strconv.FormatFloat(m.Confidence, 'f', -1, 64),
			m.RiskLevel.String(),
			m.Summary,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
