package scoring

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/khabarcheck/khabarcheck/internal/domain"
	"github.com/khabarcheck/khabarcheck/internal/logging"
	"github.com/khabarcheck/khabarcheck/internal/registry"
)

// stubClassifier returns a fixed probability pair, or a fixed error.
type stubClassifier struct {
	fake float64
	real float64
	err  error

	lastText string
}

func (s *stubClassifier) Classify(_ context.Context, normalizedText string) (domain.ClassificationResult, error) {
	s.lastText = normalizedText
	if s.err != nil {
		return domain.ClassificationResult{}, s.err
	}

	label := domain.LabelFake
	confidence := s.fake
	if s.real >= s.fake {
		label = domain.LabelReal
		confidence = s.real
	}
	return domain.ClassificationResult{
		Label:           label,
		Confidence:      confidence,
		FakeProbability: s.fake,
		RealProbability: s.real,
		TextLength:      len(normalizedText),
	}, nil
}

func newTestScorer(classifier TextClassifier) *HybridScorer {
	return NewHybridScorer(classifier, registry.New(logging.Nop()), logging.Nop())
}

const sampleText = "The government announced a new infrastructure budget for the coming fiscal year."

func TestScore_SourceAwareRenormalization(t *testing.T) {
	// Text leans FAKE, but a 0.95 wire source pulls the blend to REAL.
	classifier := &stubClassifier{fake: 0.66, real: 0.34}
	scorer := newTestScorer(classifier)

	result, err := scorer.Score(context.Background(), sampleText, "reuters.com", 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 0.7*0.34 + 0.3*0.95 = 0.523 real, 0.7*0.66 + 0.3*0.05 = 0.477 fake.
	if math.Abs(result.RealProbability-0.523) > 1e-9 {
		t.Errorf("expected real probability 0.523, got %v", result.RealProbability)
	}
	if math.Abs(result.FakeProbability-0.477) > 1e-9 {
		t.Errorf("expected fake probability 0.477, got %v", result.FakeProbability)
	}
	if result.Label != domain.LabelReal {
		t.Errorf("expected REAL after source blend, got %s", result.Label)
	}
	if math.Abs(result.Confidence-0.523) > 1e-9 {
		t.Errorf("expected confidence 0.523, got %v", result.Confidence)
	}
	if !result.Source.Known || result.Source.Record.Domain != "reuters.com" {
		t.Errorf("expected known reuters.com source, got %+v", result.Source)
	}
	if !strings.Contains(result.Rationale, "overrides the text-only FAKE prediction") {
		t.Errorf("expected override note in rationale, got %q", result.Rationale)
	}
}

func TestScore_ProbabilityConservation(t *testing.T) {
	classifier := &stubClassifier{fake: 0.37, real: 0.63}
	scorer := newTestScorer(classifier)

	for _, weight := range []float64{0, 0.25, 0.5, 0.7, 0.9, 1} {
		result, err := scorer.Score(context.Background(), sampleText, "onlinekhabar.com", weight)
		if err != nil {
			t.Fatalf("weight %v: unexpected error: %v", weight, err)
		}
		if math.Abs(result.FakeProbability+result.RealProbability-1) > 1e-6 {
			t.Errorf("weight %v: probabilities do not conserve: %v + %v",
				weight, result.FakeProbability, result.RealProbability)
		}
		if result.TextWeight != weight || math.Abs(result.SourceWeight-(1-weight)) > 1e-9 {
			t.Errorf("weight %v: stored weights %v/%v", weight, result.TextWeight, result.SourceWeight)
		}
	}
}

func TestScore_TextOnlyMode(t *testing.T) {
	classifier := &stubClassifier{fake: 0.8, real: 0.2}
	scorer := newTestScorer(classifier)

	result, err := scorer.Score(context.Background(), sampleText, "reuters.com", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// With full text weight the source must not move the probabilities, even
	// for a highly reliable source.
	if result.Label != domain.LabelFake {
		t.Errorf("expected FAKE, got %s", result.Label)
	}
	if math.Abs(result.FakeProbability-0.8) > 1e-9 || math.Abs(result.RealProbability-0.2) > 1e-9 {
		t.Errorf("expected raw 0.8/0.2 pair, got %v/%v", result.FakeProbability, result.RealProbability)
	}
	if result.Confidence != 0.8 {
		t.Errorf("expected confidence 0.8, got %v", result.Confidence)
	}
	if result.SourceWeight != 0 {
		t.Errorf("expected zero source weight, got %v", result.SourceWeight)
	}
}

func TestScore_UnknownSourceNeutral(t *testing.T) {
	classifier := &stubClassifier{fake: 0.4, real: 0.6}
	scorer := newTestScorer(classifier)

	result, err := scorer.Score(context.Background(), sampleText, "totallymaderandomdomain123.xyz", 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Source.Known {
		t.Errorf("expected unknown source, got %+v", result.Source)
	}
	if result.Source.Record.ReliabilityScore != 0.5 {
		t.Errorf("expected neutral 0.5 prior, got %v", result.Source.Record.ReliabilityScore)
	}
	if !strings.Contains(result.Rationale, "not in the curated registry") {
		t.Errorf("expected unknown-source rationale, got %q", result.Rationale)
	}
}

func TestScore_EmptyHintIsNeutral(t *testing.T) {
	classifier := &stubClassifier{fake: 0.4, real: 0.6}
	scorer := newTestScorer(classifier)

	result, err := scorer.Score(context.Background(), sampleText, "", 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Source.Known || result.Source.Record.ReliabilityScore != 0.5 {
		t.Errorf("expected neutral unknown source, got %+v", result.Source)
	}
}

func TestScore_NameHintResolvesByDisplayName(t *testing.T) {
	classifier := &stubClassifier{fake: 0.3, real: 0.7}
	scorer := newTestScorer(classifier)

	result, err := scorer.Score(context.Background(), sampleText, "Kathmandu Post", 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Source.Known || result.Source.Record.Domain != "kathmandupost.com" {
		t.Errorf("expected kathmandupost.com by name, got %+v", result.Source)
	}
	if !strings.Contains(result.Rationale, "highly reliable source") {
		t.Errorf("expected reinforcement rationale, got %q", result.Rationale)
	}
}

func TestScore_UnreliableSourceWarning(t *testing.T) {
	classifier := &stubClassifier{fake: 0.45, real: 0.55}
	scorer := newTestScorer(classifier)

	result, err := scorer.Score(context.Background(), sampleText, "infowars.com", 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(result.Rationale, "Warning:") {
		t.Errorf("expected warning rationale, got %q", result.Rationale)
	}
	// 0.7*0.55 + 0.3*0.10 = 0.415 real: the source pulls the label to FAKE.
	if result.Label != domain.LabelFake {
		t.Errorf("expected FAKE after unreliable source blend, got %s", result.Label)
	}
}

func TestScore_InvalidWeight(t *testing.T) {
	scorer := newTestScorer(&stubClassifier{fake: 0.5, real: 0.5})

	for _, weight := range []float64{-0.1, 1.5, 2} {
		_, err := scorer.Score(context.Background(), sampleText, "", weight)
		if !errors.Is(err, domain.ErrInvalidWeight) {
			t.Errorf("weight %v: expected ErrInvalidWeight, got %v", weight, err)
		}
	}
}

func TestScore_InputTooShort(t *testing.T) {
	scorer := newTestScorer(&stubClassifier{fake: 0.5, real: 0.5})

	// "ok hi" normalizes to nothing: every token is at or below two runes.
	for _, text := range []string{"", "   ", "ok hi", "https://example.com/article"} {
		_, err := scorer.Score(context.Background(), text, "", 0.7)
		if !errors.Is(err, domain.ErrInputTooShort) {
			t.Errorf("text %q: expected ErrInputTooShort, got %v", text, err)
		}
	}
}

func TestScore_ClassifierErrorPropagates(t *testing.T) {
	classifier := &stubClassifier{err: domain.ErrModelUnavailable}
	scorer := newTestScorer(classifier)

	_, err := scorer.Score(context.Background(), sampleText, "", 0.7)
	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Errorf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestScore_ClassifierReceivesNormalizedText(t *testing.T) {
	classifier := &stubClassifier{fake: 0.4, real: 0.6}
	scorer := newTestScorer(classifier)

	_, err := scorer.Score(context.Background(), "Read MORE at https://example.com! The Budget Grew 300%.", "", 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(classifier.lastText, "https://") || strings.Contains(classifier.lastText, "!") {
		t.Errorf("classifier received un-normalized text: %q", classifier.lastText)
	}
	if classifier.lastText != strings.ToLower(classifier.lastText) {
		t.Errorf("classifier received mixed-case text: %q", classifier.lastText)
	}
}

func TestScore_TiesGoToReal(t *testing.T) {
	classifier := &stubClassifier{fake: 0.5, real: 0.5}
	scorer := newTestScorer(classifier)

	// Neutral source keeps the pair balanced at exactly 0.5/0.5.
	result, err := scorer.Score(context.Background(), sampleText, "", 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Label != domain.LabelReal {
		t.Errorf("expected tie to resolve to REAL, got %s", result.Label)
	}
}
