package api

import (
	"errors"

	"github.com/khabarcheck/khabarcheck/internal/domain"
	"github.com/khabarcheck/khabarcheck/internal/processor"
)

// AnalyzeTextRequest is the body of POST /api/v1/analyze/text.
// Source is optional: a bare domain or a human-readable source name.
// TextWeight is optional; nil means the configured default. Zero is a valid
// weight (source-only), which is why this is a pointer.
type AnalyzeTextRequest struct {
	Text       string   `json:"text" binding:"required"`
	Source     string   `json:"source"`
	TextWeight *float64 `json:"text_weight"`
}

// AnalyzeTextResponse wraps the hybrid scoring result.
type AnalyzeTextResponse struct {
	Result *domain.HybridResult `json:"result"`
}

// AnalyzeURLRequest is the body of POST /api/v1/analyze/url.
type AnalyzeURLRequest struct {
	URL string `json:"url" binding:"required"`
}

// AnalyzeURLResponse wraps the comprehensive analysis.
type AnalyzeURLResponse struct {
	Result *domain.Analysis `json:"result"`
}

// AnalyzeBatchRequest is the body of POST /api/v1/analyze/batch.
type AnalyzeBatchRequest struct {
	Items      []processor.BatchItem `json:"items" binding:"required,min=1,max=50,dive"`
	TextWeight *float64              `json:"text_weight"`
}

// BatchItemResult is the per-item outcome in a batch response.
type BatchItemResult struct {
	Result *domain.HybridResult `json:"result,omitempty"`
	Error  string               `json:"error,omitempty"`
	Code   string               `json:"code,omitempty"`
}

// AnalyzeBatchResponse summarizes a batch run.
type AnalyzeBatchResponse struct {
	Results []BatchItemResult `json:"results"`
	Total   int               `json:"total"`
	Success int               `json:"success"`
	Failed  int               `json:"failed"`
}

// SourcesListResponse is the grouped source catalogue.
type SourcesListResponse struct {
	Reliable   []domain.SourceRecord `json:"reliable"`
	Mixed      []domain.SourceRecord `json:"mixed"`
	Unreliable []domain.SourceRecord `json:"unreliable"`
	Total      int                   `json:"total"`
}

// SourceResponse is a single registry resolution with its reliability advice.
// Unknown domains resolve to a synthetic neutral or suspicious record, so the
// endpoint never 404s.
type SourceResponse struct {
	Source         domain.ResolvedSource `json:"source"`
	IsReliable     bool                  `json:"is_reliable"`
	Recommendation string                `json:"recommendation"`
}

// Reliability score tiers for the source check advice.
const (
	sourceReliableScore   = 0.8
	sourceMixedScore      = 0.5
	sourceCautionScore    = 0.3
	sourceIsReliableScore = 0.6
)

// sourceRecommendation maps a reliability score to the advice string for the
// per-domain source check.
func sourceRecommendation(score float64) string {
	switch {
	case score >= sourceReliableScore:
		return "This is a known reliable source."
	case score >= sourceMixedScore:
		return "This source has mixed reliability."
	case score >= sourceCautionScore:
		return "Exercise caution with this source."
	default:
		return "This source is known for unreliable content."
	}
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Stable error codes, also used as telemetry labels.
const (
	codeInputTooShort    = "input_too_short"
	codeInvalidWeight    = "invalid_weight"
	codeModelUnavailable = "model_unavailable"
	codeExtractionFailed = "extraction_failed"
	codeInternal         = "internal"
)

// errorCode maps a pipeline error to its stable code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrInputTooShort):
		return codeInputTooShort
	case errors.Is(err, domain.ErrInvalidWeight):
		return codeInvalidWeight
	case errors.Is(err, domain.ErrModelUnavailable):
		return codeModelUnavailable
	case errors.Is(err, domain.ErrExtractionFailed):
		return codeExtractionFailed
	default:
		return codeInternal
	}
}
