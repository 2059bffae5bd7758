// Package telemetry provides OpenTelemetry instrumentation for the
// credibility service. It exports Prometheus metrics and provides tracing
// capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "khabarcheck"

// Analysis modes for metric labels.
const (
	ModeText = "text"
	ModeURL  = "url"
)

// Metrics holds all credibility service Prometheus metrics.
type Metrics struct {
	// Analysis metrics
	AnalysesTotal    *prometheus.CounterVec
	AnalysesFailed   *prometheus.CounterVec
	ScoringDuration  *prometheus.HistogramVec
	VerdictsTotal    *prometheus.CounterVec
	ContentPenalty   prometheus.Histogram
	OverallScore     prometheus.Histogram

	// Source registry metrics
	SourceLookups *prometheus.CounterVec

	// Collaborator metrics
	ExtractionDuration prometheus.Histogram
	ModelUnavailable   prometheus.Counter
}

// Provider wraps telemetry providers.
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics.
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initAnalysisMetrics(m)
	initRegistryMetrics(m)
	initCollaboratorMetrics(m)
	return m
}

func initAnalysisMetrics(m *Metrics) {
	m.AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "khabarcheck_analyses_total",
		Help: "Total analyses completed, by mode (text, url)",
	}, []string{"mode"})

	m.AnalysesFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "khabarcheck_analyses_failed_total",
		Help: "Total analyses that failed, by mode and error code",
	}, []string{"mode", "error_code"})

	m.ScoringDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "khabarcheck_scoring_duration_seconds",
		Help:    "Time to produce an assessment, including collaborator calls",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
	}, []string{"mode"})

	m.VerdictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "khabarcheck_verdicts_total",
		Help: "Verdict tier distribution for URL analyses",
	}, []string{"tier"})

	m.ContentPenalty = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "khabarcheck_content_penalty",
		Help:    "Distribution of the clamped content heuristic penalty",
		Buckets: []float64{0, 0.05, 0.1, 0.15, 0.2, 0.25, 0.3, 0.35, 0.4},
	})

	m.OverallScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "khabarcheck_overall_credibility",
		Help:    "Distribution of the overall credibility scalar",
		Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
	})
}

func initRegistryMetrics(m *Metrics) {
	m.SourceLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "khabarcheck_source_lookups_total",
		Help: "Registry resolutions by outcome (known, unknown, suspicious)",
	}, []string{"outcome"})
}

func initCollaboratorMetrics(m *Metrics) {
	m.ExtractionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "khabarcheck_extraction_duration_seconds",
		Help:    "Time to fetch and parse an article page",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
	})

	m.ModelUnavailable = promauto.NewCounter(prometheus.CounterOpts{
		Name: "khabarcheck_model_unavailable_total",
		Help: "Requests rejected because the ML sidecar was unreachable",
	})
}

// RecordAnalysis records a completed analysis.
func (p *Provider) RecordAnalysis(ctx context.Context, mode string, duration time.Duration) {
	p.Metrics.AnalysesTotal.WithLabelValues(mode).Inc()
	p.Metrics.ScoringDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordAnalysisFailure records a failed analysis with its error code.
func (p *Provider) RecordAnalysisFailure(ctx context.Context, mode, errorCode string) {
	p.Metrics.AnalysesFailed.WithLabelValues(mode, errorCode).Inc()
}

// RecordVerdict records the verdict tier and the score distributions of a
// URL analysis.
func (p *Provider) RecordVerdict(ctx context.Context, tier string, overall, penalty float64) {
	p.Metrics.VerdictsTotal.WithLabelValues(tier).Inc()
	p.Metrics.OverallScore.Observe(overall)
	p.Metrics.ContentPenalty.Observe(penalty)
}

// RecordSourceLookup records a registry resolution outcome.
func (p *Provider) RecordSourceLookup(ctx context.Context, known, suspicious bool) {
	outcome := "unknown"
	switch {
	case known:
		outcome = "known"
	case suspicious:
		outcome = "suspicious"
	}
	p.Metrics.SourceLookups.WithLabelValues(outcome).Inc()
}

// RecordExtraction records the article fetch duration.
func (p *Provider) RecordExtraction(ctx context.Context, duration time.Duration) {
	p.Metrics.ExtractionDuration.Observe(duration.Seconds())
}

// RecordModelUnavailable counts a request rejected on sidecar failure.
func (p *Provider) RecordModelUnavailable(ctx context.Context) {
	p.Metrics.ModelUnavailable.Inc()
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, span
}
