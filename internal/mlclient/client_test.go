package mlclient

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/khabarcheck/khabarcheck/internal/domain"
)

func TestClient_Classify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/classify" {
			t.Errorf("expected /classify, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}

		var req classifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Text != "president announced new policy" {
			t.Errorf("unexpected text: %q", req.Text)
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(classifyResponse{
			FakeProbability: 0.05,
			RealProbability: 0.95,
			ModelVersion:    "2026-07-tfidf-lr-v3",
		}); err != nil {
			t.Errorf("failed to encode response: %v", err)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	result, err := client.Classify(context.Background(), "president announced new policy")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Label != domain.LabelReal {
		t.Errorf("expected REAL, got %s", result.Label)
	}
	if result.Confidence != 0.95 {
		t.Errorf("expected confidence 0.95, got %v", result.Confidence)
	}
	if math.Abs(result.FakeProbability+result.RealProbability-1) > 1e-6 {
		t.Errorf("probabilities do not conserve: %v + %v", result.FakeProbability, result.RealProbability)
	}
	if result.TextLength != len("president announced new policy") {
		t.Errorf("unexpected text length %d", result.TextLength)
	}
}

func TestClient_Classify_FakeLabel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(classifyResponse{FakeProbability: 0.8, RealProbability: 0.2})
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	result, err := client.Classify(context.Background(), "aliens secretly run parliament")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Label != domain.LabelFake {
		t.Errorf("expected FAKE, got %s", result.Label)
	}
	if result.Confidence != 0.8 {
		t.Errorf("expected confidence 0.8, got %v", result.Confidence)
	}
}

func TestClient_Classify_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	_, err := client.Classify(context.Background(), "some text")

	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Errorf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestClient_Classify_MalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"missing real probability", `{"fake_probability": 0.7}`},
		{"pair does not sum to one", `{"fake_probability": 0.6, "real_probability": 0.6}`},
		{"probabilities out of range", `{"fake_probability": -0.1, "real_probability": 1.1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, 0)
			_, err := client.Classify(context.Background(), "president announced new policy")

			if !errors.Is(err, domain.ErrModelUnavailable) {
				t.Errorf("expected ErrModelUnavailable, got %v", err)
			}
		})
	}
}

func TestClient_Classify_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 0)
	_, err := client.Classify(context.Background(), "some text")

	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Errorf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("expected /health, got %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(healthResponse{ModelLoaded: true, ModelVersion: "2026-07-tfidf-lr-v3"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	if err := client.Health(context.Background()); err != nil {
		t.Errorf("unexpected health error: %v", err)
	}
}

func TestClient_Health_ModelNotLoaded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(healthResponse{ModelLoaded: false})
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	err := client.Health(context.Background())

	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Errorf("expected ErrModelUnavailable, got %v", err)
	}
}
