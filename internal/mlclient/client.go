// Package mlclient is the HTTP client for the fake-news ML sidecar, which
// serves the TF-IDF + logistic-regression model. The sidecar receives text
// already cleaned by textnorm; the client never normalizes.
package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/khabarcheck/khabarcheck/internal/domain"
)

const defaultTimeout = 5 * time.Second

// probabilityTolerance bounds how far the sidecar's probability pair may
// drift from summing to one before the response is treated as malformed.
const probabilityTolerance = 1e-6

// classifyRequest is the request body for POST /classify.
type classifyRequest struct {
	Text string `json:"text"`
}

// classifyResponse is the sidecar's wire response.
type classifyResponse struct {
	FakeProbability float64 `json:"fake_probability"`
	RealProbability float64 `json:"real_probability"`
	ModelVersion    string  `json:"model_version,omitempty"`
}

// healthResponse is the JSON shape returned by GET /health.
type healthResponse struct {
	ModelLoaded  bool   `json:"model_loaded"`
	ModelVersion string `json:"model_version,omitempty"`
}

// Client calls the fake-news ML sidecar.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a sidecar client. A zero timeout falls back to the
// default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Classify sends normalized text to the sidecar and returns the probability
// pair relabeled by argmax. Transport failures and non-200 responses surface
// as ErrModelUnavailable: the model is a readiness concern, not an input one.
func (c *Client) Classify(ctx context.Context, normalizedText string) (domain.ClassificationResult, error) {
	body, err := json.Marshal(classifyRequest{Text: normalizedText})
	if err != nil {
		return domain.ClassificationResult{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return domain.ClassificationResult{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.ClassificationResult{}, fmt.Errorf("%w: %w", domain.ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ClassificationResult{}, fmt.Errorf("%w: sidecar returned %d", domain.ErrModelUnavailable, resp.StatusCode)
	}

	var wire classifyResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&wire); decodeErr != nil {
		return domain.ClassificationResult{}, fmt.Errorf("%w: decode response: %w", domain.ErrModelUnavailable, decodeErr)
	}
	if validErr := validateWire(wire); validErr != nil {
		return domain.ClassificationResult{}, validErr
	}

	return fromWire(wire, normalizedText), nil
}

// validateWire rejects shape-broken sidecar responses. A usable
// classification carries two probabilities in [0,1] that sum to one; anything
// else means the sidecar is misbehaving, not that the input was bad.
func validateWire(wire classifyResponse) error {
	if wire.FakeProbability < 0 || wire.FakeProbability > 1 ||
		wire.RealProbability < 0 || wire.RealProbability > 1 {
		return fmt.Errorf("%w: probability out of range: fake=%v real=%v",
			domain.ErrModelUnavailable, wire.FakeProbability, wire.RealProbability)
	}
	if math.Abs(wire.FakeProbability+wire.RealProbability-1) > probabilityTolerance {
		return fmt.Errorf("%w: probabilities sum to %v, want 1",
			domain.ErrModelUnavailable, wire.FakeProbability+wire.RealProbability)
	}
	return nil
}

// Health checks sidecar readiness: reachable and model loaded.
func (c *Client) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unhealthy status %d", domain.ErrModelUnavailable, resp.StatusCode)
	}

	var health healthResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&health); decodeErr != nil {
		return fmt.Errorf("%w: decode health: %w", domain.ErrModelUnavailable, decodeErr)
	}
	if !health.ModelLoaded {
		return fmt.Errorf("%w: model not loaded", domain.ErrModelUnavailable)
	}
	return nil
}

// fromWire relabels the probability pair by argmax. Ties go to REAL.
func fromWire(wire classifyResponse, normalizedText string) domain.ClassificationResult {
	label := domain.LabelFake
	confidence := wire.FakeProbability
	if wire.RealProbability >= wire.FakeProbability {
		label = domain.LabelReal
		confidence = wire.RealProbability
	}

	return domain.ClassificationResult{
		Label:           label,
		Confidence:      confidence,
		FakeProbability: wire.FakeProbability,
		RealProbability: wire.RealProbability,
		TextLength:      utf8.RuneCountInString(normalizedText),
	}
}
