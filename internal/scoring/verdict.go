package scoring

import (
	"fmt"
	"strings"

	"github.com/khabarcheck/khabarcheck/internal/domain"
)

// Verdict tier thresholds over the overall credibility scalar.
const (
	credibleThreshold  = 0.7
	uncertainThreshold = 0.5
)

// maxRecommendationFlags caps how many heuristic flags the recommendation
// text quotes.
const maxRecommendationFlags = 2

// Tier buckets an overall credibility score into one of the three verdicts.
func Tier(overallCredibility float64) string {
	switch {
	case overallCredibility >= credibleThreshold:
		return domain.VerdictLikelyCredible
	case overallCredibility >= uncertainThreshold:
		return domain.VerdictUncertain
	default:
		return domain.VerdictLikelyNotCredible
	}
}

// Recommend produces the reader guidance line. Source reputation wins over
// content flags; the generic advice is the fallback.
func Recommend(source domain.ResolvedSource, flags []string) string {
	switch {
	case source.Known && source.Record.ReliabilityScore >= highReliability:
		return fmt.Sprintf("This article is from %s, a generally reliable source. Content analysis supports this assessment.",
			source.Record.Name)

	case source.Known && source.Record.ReliabilityScore < lowReliability:
		return fmt.Sprintf("Warning: %s is known for unreliable content. Verify this information with trusted sources.",
			source.Record.Name)

	case len(flags) > 0:
		quoted := flags
		if len(quoted) > maxRecommendationFlags {
			quoted = quoted[:maxRecommendationFlags]
		}
		return fmt.Sprintf("The article contains some concerning patterns: %s. Cross-verify with trusted sources.",
			strings.Join(quoted, ", "))

	default:
		return "Consider verifying this information with established news outlets before sharing."
	}
}

// BuildVerdict combines tier and recommendation for an assessment.
func BuildVerdict(overallCredibility float64, source domain.ResolvedSource, flags []string) domain.Verdict {
	return domain.Verdict{
		Tier:           Tier(overallCredibility),
		Recommendation: Recommend(source, flags),
	}
}
