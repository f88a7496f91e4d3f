package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/huntworks/engine/analysis"
	"github.com/huntworks/engine/config"
	"github.com/huntworks/engine/investigation"
	"github.com/huntworks/engine/match"
	"github.com/huntworks/engine/query"
	"github.com/huntworks/engine/record"
)

// Workbench is the main engine interface consumed by the presentation
// layer. It coordinates the field registry, the local filter executor, the
// analysis backend, and investigation sessions.
type Workbench interface {
	// Fields returns the ordered field specs available for clause
	// construction against the given source type.
	Fields(sourceType record.SourceType) ([]record.FieldSpec, error)

	// RunQuery executes a local filter query against an already-loaded
	// record collection. Deterministic and side-effect-free.
	RunQuery(ctx context.Context, q query.Query, records []record.Record) ([]record.Record, error)

	// Hunt runs a combined hunt: the local filter (when a query is
	// given) plus the analysis backend (when configured and a free-text
	// query is given), normalized into one deduplicated result.
	//
	// Backend unavailability is not an error: the result carries local
	// matches with the degraded flag set. Configuration errors in the
	// filter query fail fast.
	Hunt(ctx context.Context, req HuntRequest) (*HuntResult, error)

	// Investigations returns the investigation session manager.
	Investigations() *investigation.Manager
}

// HuntRequest describes one hunt.
type HuntRequest struct {
	// Query is the optional local filter query.
	Query *query.Query

	// FreeText is the optional semantic hunt query, passed opaquely to
	// the analysis backend.
	FreeText string

	// Sources holds the loaded record collections keyed by source type.
	Sources map[record.SourceType][]record.Record
}

// HuntResult is the outcome of a hunt.
type HuntResult struct {
	// Results is the normalized, deduplicated match set, including the
	// degraded flag.
	Results match.Result `json:"results"`

	// Insights is the backend's narrative, passed through unmodified.
	// Zero-valued when the backend did not run.
	Insights analysis.Insights `json:"insights"`

	// LocalCount is how many records the local filter matched.
	LocalCount int `json:"local_count"`

	// QueryText is the serialized form of the executed query, suitable
	// for investigation history and export documents.
	QueryText string `json:"query_text"`
}

type defaultWorkbench struct {
	logger         *slog.Logger
	tracer         trace.Tracer
	client         analysis.Client
	timeout        time.Duration
	sampleSize     int
	registry       *record.Registry
	investigations *investigation.Manager
}

// NewWorkbench creates a hunting workbench engine.
//
// Example:
//
//	wb, err := engine.NewWorkbench(
//	    engine.WithConfig("workbench.yaml"),
//	    engine.WithAnalysisClient(backend),
//	)
func NewWorkbench(opts ...WorkbenchOption) (Workbench, error) {
	cfg := &workbenchConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var fileCfg config.Config
	if cfg.configPath != "" {
		loaded, err := config.Load(cfg.configPath)
		if err != nil {
			return nil, NewConfigurationError("NewWorkbench", err)
		}
		fileCfg = *loaded
	}

	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: fileCfg.Logging.GetLevel(),
		}))
	}
	if cfg.analysisTimeout == 0 {
		cfg.analysisTimeout = fileCfg.Analysis.GetTimeout()
	}
	if cfg.sampleSize == 0 {
		cfg.sampleSize = fileCfg.Analysis.GetSampleSize()
	}
	if cfg.registry == nil {
		cfg.registry = record.DefaultRegistry()
	}

	if cfg.store == nil {
		switch backend := fileCfg.Store.GetBackend(); backend {
		case "memory":
			cfg.store = investigation.NewMemoryStore()
		case "redis":
			store, err := investigation.NewRedisStore(investigation.RedisOptions{
				URL:            fileCfg.Store.Redis.GetURL(),
				ConnectTimeout: fileCfg.Store.Redis.GetConnectTimeout(),
			})
			if err != nil {
				return nil, NewConfigurationError("NewWorkbench", err)
			}
			cfg.store = store
		default:
			return nil, NewConfigurationError("NewWorkbench",
				fmt.Errorf("%w: unknown store backend %q", ErrInvalidConfig, backend))
		}
	}

	return &defaultWorkbench{
		logger:     cfg.logger,
		tracer:     cfg.tracer,
		client:     cfg.client,
		timeout:    cfg.analysisTimeout,
		sampleSize: cfg.sampleSize,
		registry:   cfg.registry,
		investigations: investigation.NewManager(
			investigation.WithStore(cfg.store),
			investigation.WithLogger(cfg.logger),
		),
	}, nil
}

func (w *defaultWorkbench) Fields(sourceType record.SourceType) ([]record.FieldSpec, error) {
	fields, err := w.registry.Fields(sourceType)
	if err != nil {
		return nil, NewConfigurationError("Workbench.Fields", err)
	}
	return fields, nil
}

func (w *defaultWorkbench) RunQuery(ctx context.Context, q query.Query, records []record.Record) ([]record.Record, error) {
	hits, err := query.Execute(q, records)
	if err != nil {
		return nil, NewConfigurationError("Workbench.RunQuery", err)
	}
	w.logger.DebugContext(ctx, "query executed",
		"source_type", q.SourceType,
		"clauses", len(q.Clauses),
		"matched", len(hits))
	return hits, nil
}

func (w *defaultWorkbench) Hunt(ctx context.Context, req HuntRequest) (*HuntResult, error) {
	result := &HuntResult{QueryText: req.FreeText}

	var local []match.MatchResult
	if req.Query != nil {
		hits, err := query.Execute(*req.Query, req.Sources[req.Query.SourceType])
		if err != nil {
			return nil, NewConfigurationError("Workbench.Hunt", err)
		}
		reason := "matched filter: " + req.Query.String()
		for _, rec := range hits {
			local = append(local, match.FromRecord(req.Query.SourceType, rec, reason))
		}
		result.LocalCount = len(hits)
		if req.FreeText == "" {
			result.QueryText = req.Query.String()
		}
	}

	// A nil payload means the backend was wanted and missed; an empty one
	// means the hunt was local-only by design. The normalizer flags only
	// the former as degraded.
	payload := &match.Payload{}
	if req.FreeText != "" {
		resp := w.analyze(ctx, req)
		if resp == nil {
			payload = nil
		} else {
			payload = resp.Payload()
			result.Insights = resp.Insights
		}
	}

	result.Results = match.Normalize(local, payload)
	w.logger.InfoContext(ctx, "hunt completed",
		"local_matches", result.LocalCount,
		"total_matches", len(result.Results.Matches),
		"correlations", len(result.Results.Correlations),
		"degraded", result.Results.Degraded)
	return result, nil
}

// analyze calls the analysis backend with the configured timeout, wrapped
// in a trace span when a tracer is configured. Returns nil on any failure;
// the hunt proceeds with local results.
func (w *defaultWorkbench) analyze(ctx context.Context, req HuntRequest) *analysis.Response {
	if w.client == nil {
		w.logger.DebugContext(ctx, "no analysis backend configured, hunt runs local-only")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	var span trace.Span
	if w.tracer != nil {
		ctx, span = w.tracer.Start(ctx, "analysis.Analyze",
			trace.WithAttributes(
				attribute.Int("hunt.sample_size", w.sampleSize),
				attribute.Int("hunt.query_length", len(req.FreeText)),
			))
		defer span.End()
	}

	resp, err := w.client.Analyze(ctx, analysis.NewRequest(req.FreeText, req.Sources, w.sampleSize))
	if err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "analysis backend call failed")
		}
		w.logger.WarnContext(ctx, "analysis backend call failed, continuing with local results", "error", err)
		return nil
	}
	if span != nil {
		span.SetAttributes(
			attribute.Int("hunt.backend_matches", len(resp.Matches)),
			attribute.Int("hunt.backend_correlations", len(resp.Correlations)),
		)
	}
	return resp
}

func (w *defaultWorkbench) Investigations() *investigation.Manager {
	return w.investigations
}
