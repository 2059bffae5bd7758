// Package domain holds the core types shared across the credibility engine.
package domain

// Prediction labels emitted by the classifier and the hybrid scorer.
const (
	LabelReal = "REAL"
	LabelFake = "FAKE"
)

// SourceType categorizes a curated source.
type SourceType string

// Known source types.
const (
	SourceTypeMainstream    SourceType = "mainstream"
	SourceTypeOnline        SourceType = "online"
	SourceTypeState         SourceType = "state"
	SourceTypeGovernment    SourceType = "government"
	SourceTypeInternational SourceType = "international"
	SourceTypeWire          SourceType = "wire"
	SourceTypeFactCheck     SourceType = "factcheck"
	SourceTypeFake          SourceType = "fake"
	SourceTypeSatire        SourceType = "satire"
	SourceTypeTech          SourceType = "tech"
	SourceTypeUnknown       SourceType = "unknown"
)

// SourceRecord is one curated news source.
// Domain is the unique key: lowercase, no leading "www.".
type SourceRecord struct {
	Domain           string     `json:"domain"`
	Name             string     `json:"name"`
	ReliabilityScore float64    `json:"reliability_score"` // 1.0 = highest trust, 0.0 = known fabricated
	SourceType       SourceType `json:"source_type"`
}

// ResolvedSource is the result of a registry lookup. When Known is false the
// record is synthetic: neutral 0.5 prior, or 0.4 when the domain matched a
// suspicious pattern.
type ResolvedSource struct {
	Known      bool         `json:"known"`
	Record     SourceRecord `json:"record"`
	Suspicious bool         `json:"suspicious,omitempty"`
}

// ClassificationResult is the probability pair returned by the text classifier.
// FakeProbability + RealProbability sum to 1 up to floating drift.
type ClassificationResult struct {
	Label           string  `json:"label"`
	Confidence      float64 `json:"confidence"`
	FakeProbability float64 `json:"fake_probability"`
	RealProbability float64 `json:"real_probability"`
	TextLength      int     `json:"text_length"` // rune length of the normalized text
}

// ContentHeuristicResult holds the sensationalism scan over raw text.
// Penalty is recomputed on every call and clamped to [0, 0.4].
type ContentHeuristicResult struct {
	MatchedPhrases       []string `json:"matched_phrases"`
	NepaliMatchedPhrases []string `json:"nepali_matched_phrases"`
	CapsRatio            float64  `json:"caps_ratio"`
	ExclamationCount     int      `json:"exclamation_count"`
	QuestionCount        int      `json:"question_count"`
	Flags                []string `json:"flags"`
	Penalty              float64  `json:"penalty"`
}

// HybridResult is the final per-request scoring output.
type HybridResult struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`

	FakeProbability float64 `json:"fake_probability"`
	RealProbability float64 `json:"real_probability"`

	Classification ClassificationResult `json:"classification"`
	Source         ResolvedSource       `json:"source"`

	TextWeight   float64 `json:"text_weight"`
	SourceWeight float64 `json:"source_weight"`

	Rationale string `json:"rationale"`
}

// Verdict is the coarse three-tier credibility bucket plus guidance text.
type Verdict struct {
	Tier           string `json:"tier"`
	Recommendation string `json:"recommendation"`
}

// Verdict tiers, highest first.
const (
	VerdictLikelyCredible    = "LIKELY CREDIBLE"
	VerdictUncertain         = "UNCERTAIN - VERIFY"
	VerdictLikelyNotCredible = "LIKELY NOT CREDIBLE"
)
