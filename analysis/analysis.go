package analysis

import (
	"context"

	"github.com/huntworks/engine/match"
	"github.com/huntworks/engine/record"
)

// DefaultSampleSize bounds how many records per source are sent to the
// backend when no explicit size is configured.
const DefaultSampleSize = 10

// Request carries a free-text hunt query plus bounded samples of each
// record source for the backend to reason over.
type Request struct {
	// FreeTextQuery is the analyst's hunt query, passed through opaquely.
	FreeTextQuery string `json:"free_text_query"`

	// SampleThreats is a bounded sample of the threat collection.
	SampleThreats []record.Record `json:"sample_threats"`

	// SampleUserActivity is a bounded sample of the user activity collection.
	SampleUserActivity []record.Record `json:"sample_user_activity"`

	// SampleDevices is a bounded sample of the device collection.
	SampleDevices []record.Record `json:"sample_devices"`
}

// Insights is the narrative portion of a backend response. The engine
// passes it through to the caller unmodified; it never influences match
// normalization.
type Insights struct {
	// Summary is a prose overview of what the backend found.
	Summary string `json:"summary"`

	// KeyFindings lists the most important observations.
	KeyFindings []string `json:"key_findings"`

	// RecommendedActions lists suggested analyst follow-ups.
	RecommendedActions []string `json:"recommended_actions"`

	// FollowUpQueries suggests further hunt queries.
	FollowUpQueries []string `json:"follow_up_queries"`
}

// Response is the structured result of a backend hunt.
type Response struct {
	// Matches are the entities the backend identified as relevant.
	Matches []match.MatchResult `json:"matches"`

	// Correlations are relationships the backend detected between entities.
	Correlations []match.Correlation `json:"correlations"`

	// Insights is narrative context, passed through to the caller.
	Insights Insights `json:"insights"`
}

// Payload returns the portion of the response consumed by the match
// normalizer.
func (r *Response) Payload() *match.Payload {
	if r == nil {
		return nil
	}
	return &match.Payload{Matches: r.Matches, Correlations: r.Correlations}
}

// Client is implemented by the host application to reach the analysis
// backend. Analyze is the only engine operation expected to have meaningful
// latency; implementations must honor context cancellation and deadlines.
//
// An error from Analyze is a recoverable, user-visible condition for the
// engine, never fatal: the hunt continues with local results only.
type Client interface {
	Analyze(ctx context.Context, req Request) (*Response, error)
}

// NewRequest assembles a backend request from the loaded sources, sampling
// each collection down to sampleSize records. A non-positive sampleSize
// falls back to DefaultSampleSize.
func NewRequest(freeText string, sources map[record.SourceType][]record.Record, sampleSize int) Request {
	return Request{
		FreeTextQuery:      freeText,
		SampleThreats:      Sample(sources[record.SourceTypeThreat], sampleSize),
		SampleUserActivity: Sample(sources[record.SourceTypeUserActivity], sampleSize),
		SampleDevices:      Sample(sources[record.SourceTypeDevice], sampleSize),
	}
}

// Sample returns the first n records of the collection. The prefix is used
// rather than a random sample so identical hunts build identical requests.
func Sample(records []record.Record, n int) []record.Record {
	if n <= 0 {
		n = DefaultSampleSize
	}
	if len(records) <= n {
		return records
	}
	return records[:n]
}
