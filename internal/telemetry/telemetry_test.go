package telemetry_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/khabarcheck/khabarcheck/internal/telemetry"
)

// providerOnce ensures we only create one Provider per test run to avoid
// duplicate Prometheus metric registration errors from promauto's global registry
var (
	testProvider *telemetry.Provider
	providerOnce sync.Once
)

func getTestProvider(t *testing.T) *telemetry.Provider {
	t.Helper()
	providerOnce.Do(func() {
		testProvider = telemetry.NewProvider()
	})
	return testProvider
}

func TestNewProvider(t *testing.T) {
	provider := getTestProvider(t)
	if provider == nil {
		t.Fatal("expected non-nil provider")
	}
	if provider.Tracer == nil {
		t.Error("expected non-nil tracer")
	}
	if provider.Metrics == nil {
		t.Error("expected non-nil metrics")
	}
}

func TestRecordAnalysis(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	// Should not panic
	provider.RecordAnalysis(ctx, telemetry.ModeText, 100*time.Millisecond)
	provider.RecordAnalysis(ctx, telemetry.ModeURL, 2*time.Second)
	provider.RecordAnalysisFailure(ctx, telemetry.ModeText, "input_too_short")
}

func TestRecordVerdict(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	// Should not panic
	provider.RecordVerdict(ctx, "LIKELY CREDIBLE", 0.905, 0)
	provider.RecordVerdict(ctx, "LIKELY NOT CREDIBLE", 0.355, 0.2)
}

func TestRecordCollaborators(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	// Should not panic
	provider.RecordExtraction(ctx, 750*time.Millisecond)
	provider.RecordModelUnavailable(ctx)
}

func TestRecordSourceLookup(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	// Should not panic
	provider.RecordSourceLookup(ctx, true, false)
	provider.RecordSourceLookup(ctx, false, true)
	provider.RecordSourceLookup(ctx, false, false)
}
