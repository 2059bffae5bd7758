// Package api exposes the credibility engine over HTTP with gin.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khabarcheck/khabarcheck/internal/domain"
	"github.com/khabarcheck/khabarcheck/internal/logging"
	"github.com/khabarcheck/khabarcheck/internal/processor"
	"github.com/khabarcheck/khabarcheck/internal/registry"
	"github.com/khabarcheck/khabarcheck/internal/scoring"
	"github.com/khabarcheck/khabarcheck/internal/telemetry"
)

// HealthChecker reports whether the ML sidecar can serve classifications.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handler handles HTTP requests for the credibility API.
type Handler struct {
	scorer    *scoring.HybridScorer
	analysis  *scoring.AnalysisService
	batch     *processor.BatchProcessor
	registry  *registry.Registry
	health    HealthChecker
	telemetry *telemetry.Provider
	logger    logging.Logger

	serviceName string
	version     string
}

// NewHandler creates a new API handler.
func NewHandler(
	scorer *scoring.HybridScorer,
	analysis *scoring.AnalysisService,
	batch *processor.BatchProcessor,
	reg *registry.Registry,
	health HealthChecker,
	provider *telemetry.Provider,
	logger logging.Logger,
	serviceName, version string,
) *Handler {
	return &Handler{
		scorer:      scorer,
		analysis:    analysis,
		batch:       batch,
		registry:    reg,
		health:      health,
		telemetry:   provider,
		logger:      logger,
		serviceName: serviceName,
		version:     version,
	}
}

// AnalyzeText handles POST /api/v1/analyze/text.
func (h *Handler) AnalyzeText(c *gin.Context) {
	var req AnalyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid analyze text request", logging.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	weight := h.scorer.DefaultWeight()
	if req.TextWeight != nil {
		weight = *req.TextWeight
	}

	start := time.Now()
	result, err := h.scorer.Score(c.Request.Context(), req.Text, req.Source, weight)
	if err != nil {
		h.respondPipelineError(c, telemetry.ModeText, err)
		return
	}

	h.telemetry.RecordAnalysis(c.Request.Context(), telemetry.ModeText, time.Since(start))
	h.telemetry.RecordSourceLookup(c.Request.Context(), result.Source.Known, result.Source.Suspicious)

	h.logger.Info("text analyzed",
		logging.String("label", result.Label),
		logging.Float64("confidence", result.Confidence),
		logging.Bool("source_known", result.Source.Known))

	c.JSON(http.StatusOK, AnalyzeTextResponse{Result: result})
}

// AnalyzeURL handles POST /api/v1/analyze/url.
func (h *Handler) AnalyzeURL(c *gin.Context) {
	var req AnalyzeURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid analyze url request", logging.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	start := time.Now()
	result, err := h.analysis.AnalyzeURL(c.Request.Context(), req.URL)
	if err != nil {
		h.respondPipelineError(c, telemetry.ModeURL, err)
		return
	}

	h.telemetry.RecordAnalysis(c.Request.Context(), telemetry.ModeURL, time.Since(start))
	h.telemetry.RecordSourceLookup(c.Request.Context(), result.Hybrid.Source.Known, result.Hybrid.Source.Suspicious)
	h.telemetry.RecordVerdict(c.Request.Context(), result.Verdict, result.OverallCredibility, result.Content.Penalty)

	h.logger.Info("url analyzed",
		logging.String("domain", result.Article.Domain),
		logging.Float64("overall_credibility", result.OverallCredibility),
		logging.String("verdict", result.Verdict))

	c.JSON(http.StatusOK, AnalyzeURLResponse{Result: result})
}

// AnalyzeBatch handles POST /api/v1/analyze/batch. Per-item failures are
// reported inline; the request only fails wholesale on malformed input.
func (h *Handler) AnalyzeBatch(c *gin.Context) {
	var req AnalyzeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid analyze batch request", logging.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	weight := h.scorer.DefaultWeight()
	if req.TextWeight != nil {
		weight = *req.TextWeight
	}

	start := time.Now()
	results := h.batch.Process(c.Request.Context(), req.Items, weight)

	resp := AnalyzeBatchResponse{
		Results: make([]BatchItemResult, len(results)),
		Total:   len(results),
	}
	for i, r := range results {
		if r.Error != nil {
			resp.Results[i] = BatchItemResult{Error: r.Error.Error(), Code: errorCode(r.Error)}
			resp.Failed++
			continue
		}
		resp.Results[i] = BatchItemResult{Result: r.Result}
		resp.Success++
	}

	h.telemetry.RecordAnalysis(c.Request.Context(), telemetry.ModeText, time.Since(start))

	h.logger.Info("batch analyzed",
		logging.Int("total", resp.Total),
		logging.Int("success", resp.Success),
		logging.Int("failed", resp.Failed))

	c.JSON(http.StatusOK, resp)
}

// ListSources handles GET /api/v1/sources.
func (h *Handler) ListSources(c *gin.Context) {
	catalogue := h.registry.Grouped()

	c.JSON(http.StatusOK, SourcesListResponse{
		Reliable:   catalogue.Reliable,
		Mixed:      catalogue.Mixed,
		Unreliable: catalogue.Unreliable,
		Total:      h.registry.Len(),
	})
}

// GetSource handles GET /api/v1/sources/:domain. Unknown domains are not an
// error: the registry resolves them to a synthetic neutral or suspicious
// record, and the advice string reflects that prior.
func (h *Handler) GetSource(c *gin.Context) {
	resolved := h.registry.Resolve(c.Param("domain"))
	h.telemetry.RecordSourceLookup(c.Request.Context(), resolved.Known, resolved.Suspicious)

	c.JSON(http.StatusOK, SourceResponse{
		Source:         resolved,
		IsReliable:     resolved.Record.ReliabilityScore >= sourceIsReliableScore,
		Recommendation: sourceRecommendation(resolved.Record.ReliabilityScore),
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.serviceName,
		"version": h.version,
	})
}

// ReadyCheck handles GET /ready. Readiness requires the ML sidecar to be
// reachable with its model loaded; the registry and heuristics are in-process
// and always ready.
func (h *Handler) ReadyCheck(c *gin.Context) {
	if err := h.health.Health(c.Request.Context()); err != nil {
		h.logger.Warn("readiness check failed", logging.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"checks": gin.H{"ml_sidecar": err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"checks": gin.H{"ml_sidecar": "ok"},
	})
}

// respondPipelineError maps pipeline errors to HTTP statuses and records the
// failure.
func (h *Handler) respondPipelineError(c *gin.Context, mode string, err error) {
	code := errorCode(err)
	h.telemetry.RecordAnalysisFailure(c.Request.Context(), mode, code)

	var status int
	switch {
	case errors.Is(err, domain.ErrInputTooShort), errors.Is(err, domain.ErrInvalidWeight):
		status = http.StatusBadRequest
		h.logger.Warn("analysis rejected", logging.String("code", code), logging.Error(err))
	case errors.Is(err, domain.ErrExtractionFailed):
		status = http.StatusUnprocessableEntity
		h.logger.Warn("extraction failed", logging.Error(err))
	case errors.Is(err, domain.ErrModelUnavailable):
		status = http.StatusServiceUnavailable
		h.telemetry.RecordModelUnavailable(c.Request.Context())
		h.logger.Error("ml sidecar unavailable", logging.Error(err))
	default:
		status = http.StatusInternalServerError
		h.logger.Error("analysis failed", logging.Error(err))
	}

	c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
}
