package scoring

import (
	"context"
	"math"
	"unicode/utf8"

	"github.com/khabarcheck/khabarcheck/internal/domain"
	"github.com/khabarcheck/khabarcheck/internal/heuristics"
	"github.com/khabarcheck/khabarcheck/internal/logging"
)

// Default blend weights for the overall credibility scalar. The hybrid score
// already fuses text and source for labeling; the overall scalar re-blends
// the raw signals so content quality gets an explicit share.
const (
	DefaultSourceBlendWeight  = 0.3
	DefaultTextBlendWeight    = 0.5
	DefaultContentBlendWeight = 0.2
)

const (
	overallPrecision = 1000 // 3 decimal places for the overall scalar
	previewRunes     = 500
)

// trustedSources is the fixed cross-check list surfaced with every URL
// analysis.
var trustedSources = []string{
	"https://kathmandupost.com",
	"https://www.nepalitimes.com",
	"https://thehimalayantimes.com",
	"https://www.bbc.com/nepali",
	"https://southasiacheck.org",
}

// ArticleFetcher extracts an article from a URL.
type ArticleFetcher interface {
	Extract(ctx context.Context, rawURL string) (domain.Article, error)
}

// BlendWeights are the shares of source reputation, classifier output and
// content quality in the overall credibility scalar.
type BlendWeights struct {
	Source  float64 `yaml:"source"`
	Text    float64 `yaml:"text"`
	Content float64 `yaml:"content"`
}

// DefaultBlendWeights returns the standard overall blend.
func DefaultBlendWeights() BlendWeights {
	return BlendWeights{
		Source:  DefaultSourceBlendWeight,
		Text:    DefaultTextBlendWeight,
		Content: DefaultContentBlendWeight,
	}
}

// AnalysisService orchestrates the comprehensive per-URL assessment:
// extraction, heuristics, hybrid scoring, overall credibility and verdict.
type AnalysisService struct {
	fetcher   ArticleFetcher
	scorer    *HybridScorer
	heuristic *heuristics.Analyzer
	logger    logging.Logger
	weights   BlendWeights
}

// NewAnalysisService creates the orchestrator with default blend weights.
func NewAnalysisService(fetcher ArticleFetcher, scorer *HybridScorer, heuristic *heuristics.Analyzer, logger logging.Logger) *AnalysisService {
	return NewAnalysisServiceWithWeights(fetcher, scorer, heuristic, logger, DefaultBlendWeights())
}

// NewAnalysisServiceWithWeights creates the orchestrator with custom blend
// weights.
func NewAnalysisServiceWithWeights(fetcher ArticleFetcher, scorer *HybridScorer, heuristic *heuristics.Analyzer, logger logging.Logger, weights BlendWeights) *AnalysisService {
	if weights == (BlendWeights{}) {
		weights = DefaultBlendWeights()
	}
	return &AnalysisService{
		fetcher:   fetcher,
		scorer:    scorer,
		heuristic: heuristic,
		logger:    logger,
		weights:   weights,
	}
}

// AnalyzeURL fetches the article and runs every signal over it. Extraction
// failures surface wrapped in ErrExtractionFailed from the fetcher; scoring
// errors propagate unchanged.
func (s *AnalysisService) AnalyzeURL(ctx context.Context, rawURL string) (*domain.Analysis, error) {
	article, err := s.fetcher.Extract(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	content := s.heuristic.Analyze(article.BodyText)

	hybrid, err := s.scorer.Score(ctx, article.BodyText, article.Domain, s.scorer.DefaultWeight())
	if err != nil {
		return nil, err
	}

	sourceScore := hybrid.Source.Record.ReliabilityScore
	textScore := hybrid.Classification.RealProbability
	contentScore := 1 - content.Penalty

	overall := s.weights.Source*sourceScore + s.weights.Text*textScore + s.weights.Content*contentScore
	overall = math.Round(overall*overallPrecision) / overallPrecision

	verdict := BuildVerdict(overall, hybrid.Source, content.Flags)

	s.logger.Info("url analysis complete",
		logging.String("domain", article.Domain),
		logging.Float64("overall_credibility", overall),
		logging.String("verdict", verdict.Tier),
		logging.Int("flags", len(content.Flags)))

	return &domain.Analysis{
		Article:            article,
		TextPreview:        preview(article.BodyText),
		Hybrid:             *hybrid,
		Content:            content,
		OverallCredibility: overall,
		Verdict:            verdict.Tier,
		Recommendation:     verdict.Recommendation,
		TrustedSources:     trustedSources,
	}, nil
}

// preview truncates body text to the first 500 runes with an ellipsis.
func preview(text string) string {
	if utf8.RuneCountInString(text) <= previewRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:previewRunes]) + "..."
}
