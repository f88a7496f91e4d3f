package engine

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/huntworks/engine/analysis"
	"github.com/huntworks/engine/investigation"
	"github.com/huntworks/engine/record"
)

// WorkbenchOption configures the Workbench.
type WorkbenchOption func(*workbenchConfig)

// workbenchConfig holds configuration for a Workbench instance.
// Zero values mean "not set": explicit options win over the config file,
// which wins over built-in defaults.
type workbenchConfig struct {
	configPath      string
	logger          *slog.Logger
	tracer          trace.Tracer
	client          analysis.Client
	analysisTimeout time.Duration
	sampleSize      int
	registry        *record.Registry
	store           investigation.Store
}

// WithConfig sets the workbench.yaml configuration file path.
// File settings fill in whatever the other options leave unset.
func WithConfig(path string) WorkbenchOption {
	return func(c *workbenchConfig) {
		c.configPath = path
	}
}

// WithLogger sets a custom logger for the workbench.
// If not provided, a default JSON logger will be created.
func WithLogger(logger *slog.Logger) WorkbenchOption {
	return func(c *workbenchConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer. The workbench records a span
// around each analysis backend call, the only operation with meaningful
// latency.
func WithTracer(tracer trace.Tracer) WorkbenchOption {
	return func(c *workbenchConfig) {
		c.tracer = tracer
	}
}

// WithAnalysisClient sets the analysis backend client. Without a client
// every hunt runs local-only and semantic hunts report degraded results.
func WithAnalysisClient(client analysis.Client) WorkbenchOption {
	return func(c *workbenchConfig) {
		c.client = client
	}
}

// WithAnalysisTimeout bounds one analysis backend call. A hunt whose
// backend call exceeds the timeout proceeds with local results and the
// degraded flag set.
func WithAnalysisTimeout(d time.Duration) WorkbenchOption {
	return func(c *workbenchConfig) {
		c.analysisTimeout = d
	}
}

// WithSampleSize sets how many records per source are sent to the analysis
// backend.
func WithSampleSize(n int) WorkbenchOption {
	return func(c *workbenchConfig) {
		c.sampleSize = n
	}
}

// WithRegistry replaces the built-in field registry.
func WithRegistry(r *record.Registry) WorkbenchOption {
	return func(c *workbenchConfig) {
		c.registry = r
	}
}

// WithInvestigationStore sets the store backing investigation sessions.
// Defaults to an in-memory store.
func WithInvestigationStore(store investigation.Store) WorkbenchOption {
	return func(c *workbenchConfig) {
		c.store = store
	}
}
