package domain

// Article is the consumed shape of the article-fetch collaborator.
// Title, Author and Date are best-effort and may be empty.
type Article struct {
	URL      string `json:"url"`
	Domain   string `json:"domain"`
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	Date     string `json:"date,omitempty"`
	BodyText string `json:"body_text"`
}

// Analysis is the comprehensive per-URL assessment: hybrid score, content
// heuristics, overall credibility scalar and verdict. Computed per request,
// never persisted.
type Analysis struct {
	Article     Article                `json:"article"`
	TextPreview string                 `json:"text_preview"`
	Hybrid      HybridResult           `json:"hybrid"`
	Content     ContentHeuristicResult `json:"content_analysis"`

	OverallCredibility float64  `json:"overall_credibility"`
	Verdict            string   `json:"verdict"`
	Recommendation     string   `json:"recommendation"`
	TrustedSources     []string `json:"trusted_sources"`
}
