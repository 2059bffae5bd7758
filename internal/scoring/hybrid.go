// Package scoring fuses the text classifier, the source registry and the
// content heuristics into a single credibility assessment. Everything here is
// a pure, synchronous computation over the inputs and the immutable registry;
// only the injected classifier performs I/O.
package scoring

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/khabarcheck/khabarcheck/internal/domain"
	"github.com/khabarcheck/khabarcheck/internal/logging"
	"github.com/khabarcheck/khabarcheck/internal/registry"
	"github.com/khabarcheck/khabarcheck/internal/textnorm"
)

// Defaults for the hybrid blend.
const (
	// DefaultTextWeight is the classifier share in source-aware mode; the
	// source reputation carries the remaining 0.3.
	DefaultTextWeight = 0.7

	// defaultMinTextLength is the minimum rune length of normalized text the
	// classifier accepts.
	defaultMinTextLength = 5
)

// Reliability bands for rationale selection.
const (
	highReliability = 0.8
	lowReliability  = 0.3
)

const probabilityPrecision = 10000 // 4 decimal places for emitted probabilities

// TextClassifier is the boundary to the opaque classification model. It
// receives text already passed through textnorm.Normalize.
type TextClassifier interface {
	Classify(ctx context.Context, normalizedText string) (domain.ClassificationResult, error)
}

// Config holds the hybrid scorer settings.
type Config struct {
	DefaultTextWeight float64
	MinTextLength     int
}

// HybridScorer combines classifier output with source reputation.
type HybridScorer struct {
	classifier TextClassifier
	registry   *registry.Registry
	logger     logging.Logger
	config     Config
}

// NewHybridScorer creates a scorer with default settings.
func NewHybridScorer(classifier TextClassifier, reg *registry.Registry, logger logging.Logger) *HybridScorer {
	return NewHybridScorerWithConfig(classifier, reg, logger, Config{
		DefaultTextWeight: DefaultTextWeight,
		MinTextLength:     defaultMinTextLength,
	})
}

// NewHybridScorerWithConfig creates a scorer with custom settings.
func NewHybridScorerWithConfig(classifier TextClassifier, reg *registry.Registry, logger logging.Logger, config Config) *HybridScorer {
	if config.DefaultTextWeight == 0 {
		config.DefaultTextWeight = DefaultTextWeight
	}
	if config.MinTextLength == 0 {
		config.MinTextLength = defaultMinTextLength
	}
	return &HybridScorer{
		classifier: classifier,
		registry:   reg,
		logger:     logger,
		config:     config,
	}
}

// DefaultWeight returns the configured source-aware text weight.
func (s *HybridScorer) DefaultWeight() float64 {
	return s.config.DefaultTextWeight
}

// Score runs the full hybrid pipeline. textWeight 1 is text-only mode: the
// result is the raw classification, relabeled. Any other weight blends the
// classifier probabilities with the resolved source reliability and
// renormalizes the pair to sum to exactly 1.
//
// sourceHint may be a bare domain, a free-text source name, or empty (a
// neutral unknown source is assumed). Errors: ErrInvalidWeight,
// ErrInputTooShort, and whatever the classifier propagates.
func (s *HybridScorer) Score(ctx context.Context, text, sourceHint string, textWeight float64) (*domain.HybridResult, error) {
	if textWeight < 0 || textWeight > 1 {
		return nil, fmt.Errorf("%w: got %v", domain.ErrInvalidWeight, textWeight)
	}

	normalized := textnorm.Normalize(text)
	if utf8.RuneCountInString(normalized) < s.config.MinTextLength {
		return nil, fmt.Errorf("%w: %d runes after normalization, need %d",
			domain.ErrInputTooShort, utf8.RuneCountInString(normalized), s.config.MinTextLength)
	}

	classification, err := s.classifier.Classify(ctx, normalized)
	if err != nil {
		return nil, err
	}

	source := s.resolveHint(sourceHint)
	result := s.combine(classification, source, textWeight)

	s.logger.Debug("hybrid score computed",
		logging.String("label", result.Label),
		logging.Float64("confidence", result.Confidence),
		logging.Bool("source_known", source.Known),
		logging.Float64("text_weight", textWeight))

	return result, nil
}

// resolveHint maps a caller-supplied source hint to a registry record. Hints
// with a dot and no spaces are treated as domains; anything else non-empty is
// resolved as a display name.
func (s *HybridScorer) resolveHint(sourceHint string) domain.ResolvedSource {
	hint := strings.TrimSpace(sourceHint)
	switch {
	case hint == "":
		return s.registry.Neutral()
	case strings.Contains(hint, ".") && !strings.Contains(hint, " "):
		return s.registry.Resolve(hint)
	default:
		return s.registry.ResolveName(hint)
	}
}

// combine blends the probability pair with the source score and renormalizes.
func (s *HybridScorer) combine(cls domain.ClassificationResult, source domain.ResolvedSource, textWeight float64) *domain.HybridResult {
	result := &domain.HybridResult{
		Classification: cls,
		Source:         source,
		TextWeight:     textWeight,
		SourceWeight:   1 - textWeight,
	}

	if textWeight == 1 {
		// Text-only mode: the raw classification, relabeled.
		result.Label = cls.Label
		result.Confidence = roundProb(cls.Confidence)
		result.RealProbability = roundProb(cls.RealProbability)
		result.FakeProbability = 1 - result.RealProbability
		result.Rationale = s.rationale(cls.Label, result.Label, source)
		return result
	}

	sourceScore := source.Record.ReliabilityScore

	// The source score acts as a real-probability analogue, so the weighted
	// pair does not sum to 1 until renormalized.
	rawReal := textWeight*cls.RealProbability + (1-textWeight)*sourceScore
	rawFake := textWeight*cls.FakeProbability + (1-textWeight)*(1-sourceScore)

	sum := rawReal + rawFake
	finalReal := rawReal / sum
	finalFake := rawFake / sum

	label := domain.LabelFake
	confidence := finalFake
	if finalReal >= finalFake {
		label = domain.LabelReal
		confidence = finalReal
	}

	// Round the real side, derive the fake side so the pair still sums to
	// exactly 1 after presentation rounding.
	result.RealProbability = roundProb(finalReal)
	result.FakeProbability = 1 - result.RealProbability
	result.Label = label
	result.Confidence = roundProb(confidence)
	result.Rationale = s.rationale(cls.Label, label, source)

	return result
}

// rationale selects exactly one template based on the resolved source, with
// an override note when source reputation flipped the text-only label.
func (s *HybridScorer) rationale(textLabel, finalLabel string, source domain.ResolvedSource) string {
	overridden := textLabel != finalLabel

	switch {
	case source.Known && source.Record.ReliabilityScore >= highReliability:
		msg := fmt.Sprintf("%s is a highly reliable source (reliability %.2f), which reinforces the assessment.",
			source.Record.Name, source.Record.ReliabilityScore)
		if overridden {
			msg += fmt.Sprintf(" The source reputation overrides the text-only %s prediction.", textLabel)
		}
		return msg

	case source.Known && source.Record.ReliabilityScore <= lowReliability:
		msg := fmt.Sprintf("Warning: %s is known for unreliable content (reliability %.2f).",
			source.Record.Name, source.Record.ReliabilityScore)
		if overridden {
			msg += fmt.Sprintf(" The source reputation overrides the text-only %s prediction.", textLabel)
		}
		return msg

	case source.Known:
		return fmt.Sprintf("%s has moderate reliability (reliability %.2f); the text signal was adjusted accordingly.",
			source.Record.Name, source.Record.ReliabilityScore)

	default:
		return "Source is not in the curated registry; the text classification carries most of the weight."
	}
}

// roundProb rounds to 4 decimal places for presentation stability.
func roundProb(p float64) float64 {
	return math.Round(p*probabilityPrecision) / probabilityPrecision
}
