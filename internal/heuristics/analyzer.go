// Package heuristics scans raw article text for sensationalism markers and
// formatting abuse. Unlike the normalizer, it works on un-normalized text:
// casing and punctuation are the signal here.
package heuristics

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"golang.org/x/text/unicode/norm"

	"github.com/khabarcheck/khabarcheck/internal/domain"
)

// Default penalty weights. Empirically chosen; exposed as config rather than
// hard-coded so deployments can tune them without a rebuild.
const (
	defaultPhrasePenalty        = 0.05
	defaultCapsPenalty          = 0.1
	defaultExclamationPenalty   = 0.05
	defaultMaxPenalty           = 0.4
	defaultCapsRatioThreshold   = 0.2
	defaultExclamationThreshold = 3
)

const capsRatioPrecision = 1000 // round to 3 decimals for presentation

// Config holds the penalty weights and thresholds for content analysis.
type Config struct {
	PhrasePenalty        float64 `yaml:"phrase_penalty"`
	CapsPenalty          float64 `yaml:"caps_penalty"`
	ExclamationPenalty   float64 `yaml:"exclamation_penalty"`
	MaxPenalty           float64 `yaml:"max_penalty"`
	CapsRatioThreshold   float64 `yaml:"caps_ratio_threshold"`
	ExclamationThreshold int     `yaml:"exclamation_threshold"`
}

// DefaultConfig returns the standard penalty configuration.
func DefaultConfig() Config {
	return Config{
		PhrasePenalty:        defaultPhrasePenalty,
		CapsPenalty:          defaultCapsPenalty,
		ExclamationPenalty:   defaultExclamationPenalty,
		MaxPenalty:           defaultMaxPenalty,
		CapsRatioThreshold:   defaultCapsRatioThreshold,
		ExclamationThreshold: defaultExclamationThreshold,
	}
}

// Analyzer detects clickbait phrases and formatting abuse in raw text.
// The Aho-Corasick automatons are built once in the constructor; Analyze is
// pure and safe for concurrent callers.
type Analyzer struct {
	config Config

	englishMatcher *ahocorasick.Matcher
	nepaliMatcher  *ahocorasick.Matcher
}

// NewAnalyzer creates an analyzer with the default configuration.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultConfig())
}

// NewAnalyzerWithConfig creates an analyzer with custom penalty weights.
func NewAnalyzerWithConfig(config Config) *Analyzer {
	english := make([]string, len(clickbaitPhrases))
	for i, p := range clickbaitPhrases {
		english[i] = strings.ToLower(p)
	}

	nepali := make([]string, len(nepaliSensationalPhrases))
	for i, p := range nepaliSensationalPhrases {
		nepali[i] = norm.NFC.String(p)
	}

	return &Analyzer{
		config:         config,
		englishMatcher: ahocorasick.NewStringMatcher(english),
		nepaliMatcher:  ahocorasick.NewStringMatcher(nepali),
	}
}

// Analyze scans raw text and returns matched phrases, formatting stats,
// human-readable flags and the clamped credibility penalty. Total function:
// adversarial input degrades to zero values, never errors.
func (a *Analyzer) Analyze(rawText string) domain.ContentHeuristicResult {
	matched := matchInOrder(a.englishMatcher, clickbaitPhrases, strings.ToLower(rawText))
	nepaliMatched := matchInOrder(a.nepaliMatcher, nepaliSensationalPhrases, norm.NFC.String(rawText))

	capsRatio := uppercaseRatio(rawText)
	exclamations := strings.Count(rawText, "!")
	questions := strings.Count(rawText, "?")

	// Flag order is fixed: phrase counts first, then formatting abuse.
	var flags []string
	if len(matched) > 0 {
		flags = append(flags, fmt.Sprintf("Contains %d clickbait/sensational phrase(s)", len(matched)))
	}
	if len(nepaliMatched) > 0 {
		flags = append(flags, fmt.Sprintf("Contains %d Nepali sensational phrase(s)", len(nepaliMatched)))
	}
	if capsRatio > a.config.CapsRatioThreshold {
		flags = append(flags, "Excessive use of capital letters")
	}
	if exclamations > a.config.ExclamationThreshold {
		flags = append(flags, "Excessive exclamation marks")
	}

	penalty := a.config.PhrasePenalty * float64(len(matched)+len(nepaliMatched))
	if capsRatio > a.config.CapsRatioThreshold {
		penalty += a.config.CapsPenalty
	}
	if exclamations > a.config.ExclamationThreshold {
		penalty += a.config.ExclamationPenalty
	}
	penalty = math.Min(math.Max(penalty, 0), a.config.MaxPenalty)

	return domain.ContentHeuristicResult{
		MatchedPhrases:       matched,
		NepaliMatchedPhrases: nepaliMatched,
		CapsRatio:            math.Round(capsRatio*capsRatioPrecision) / capsRatioPrecision,
		ExclamationCount:     exclamations,
		QuestionCount:        questions,
		Flags:                flags,
		Penalty:              penalty,
	}
}

// matchInOrder runs the automaton over text and returns the matched phrases
// in the fixed order of the source list, each at most once.
func matchInOrder(matcher *ahocorasick.Matcher, phrases []string, text string) []string {
	hits := matcher.Match([]byte(text))
	if len(hits) == 0 {
		return nil
	}

	seen := make(map[int]bool, len(hits))
	for _, idx := range hits {
		seen[idx] = true
	}

	matched := make([]string, 0, len(seen))
	for i, phrase := range phrases {
		if seen[i] {
			matched = append(matched, phrase)
		}
	}
	return matched
}

// uppercaseRatio returns uppercase runes over total runes, 0 for empty text.
func uppercaseRatio(text string) float64 {
	total := utf8.RuneCountInString(text)
	if total == 0 {
		return 0
	}

	upper := 0
	for _, r := range text {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return float64(upper) / float64(total)
}
