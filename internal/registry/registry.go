// Package registry holds the curated source-reputation registry. The registry
// is built once at process start, is immutable afterwards, and is safe for
// concurrent readers without locking.
package registry

import (
	"sort"
	"strings"

	"github.com/khabarcheck/khabarcheck/internal/domain"
	"github.com/khabarcheck/khabarcheck/internal/logging"
)

// Synthetic reliability priors for domains the registry does not know.
const (
	neutralScore    = 0.5
	suspiciousScore = 0.4
)

// Grouping thresholds for the source catalogue.
const (
	reliableThreshold = 0.7
	mixedThreshold    = 0.4
)

// Registry is the immutable domain-keyed source map. The entries slice keeps
// the merged insertion order (Nepal, international, unreliable) because fuzzy
// resolution is a first-match linear scan over it; an unordered map alone
// would make resolution non-deterministic for ambiguous inputs.
type Registry struct {
	entries  []domain.SourceRecord
	byDomain map[string]int
}

// New builds the registry from the curated seed lists.
func New(logger logging.Logger) *Registry {
	entries := make([]domain.SourceRecord, 0, len(nepalSources)+len(internationalSources)+len(unreliableSources))
	entries = append(entries, nepalSources...)
	entries = append(entries, internationalSources...)
	entries = append(entries, unreliableSources...)

	byDomain := make(map[string]int, len(entries))
	for i, rec := range entries {
		byDomain[rec.Domain] = i
	}

	logger.Info("source registry built",
		logging.Int("sources", len(entries)),
		logging.Int("suspicious_patterns", len(suspiciousDomainPatterns)))

	return &Registry{entries: entries, byDomain: byDomain}
}

// NormalizeDomain lowercases a domain and strips a leading "www." prefix.
func NormalizeDomain(d string) string {
	d = strings.ToLower(strings.TrimSpace(d))
	return strings.TrimPrefix(d, "www.")
}

// Resolve looks up a domain. Resolution order: exact key match, then
// first-match substring scan in registry insertion order (either direction),
// then a synthetic unknown record whose score depends on the
// suspicious-pattern list. Always returns a ResolvedSource.
func (r *Registry) Resolve(domainOrName string) domain.ResolvedSource {
	key := NormalizeDomain(domainOrName)
	if key == "" {
		return r.syntheticUnknown(key)
	}

	if i, ok := r.byDomain[key]; ok {
		return domain.ResolvedSource{Known: true, Record: r.entries[i]}
	}

	// First match wins, not best match. Ambiguous inputs resolve to whichever
	// entry was inserted first; clients depend on this staying reproducible.
	for _, rec := range r.entries {
		if strings.Contains(key, rec.Domain) || strings.Contains(rec.Domain, key) {
			return domain.ResolvedSource{Known: true, Record: rec}
		}
	}

	return r.syntheticUnknown(key)
}

// ResolveName resolves a free-text source name (not a domain) against the
// registry display names, case-insensitive substring in either direction,
// under the same first-match policy.
func (r *Registry) ResolveName(name string) domain.ResolvedSource {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return r.syntheticUnknown(key)
	}

	for _, rec := range r.entries {
		known := strings.ToLower(rec.Name)
		if strings.Contains(key, known) || strings.Contains(known, key) {
			return domain.ResolvedSource{Known: true, Record: rec}
		}
	}

	return r.syntheticUnknown(NormalizeDomain(key))
}

// Neutral returns the synthetic neutral source used when a caller provides no
// source hint at all.
func (r *Registry) Neutral() domain.ResolvedSource {
	return domain.ResolvedSource{
		Known: false,
		Record: domain.SourceRecord{
			ReliabilityScore: neutralScore,
			SourceType:       domain.SourceTypeUnknown,
		},
	}
}

func (r *Registry) syntheticUnknown(key string) domain.ResolvedSource {
	suspicious := false
	for _, pattern := range suspiciousDomainPatterns {
		if strings.Contains(key, pattern) {
			suspicious = true
			break
		}
	}

	score := neutralScore
	if suspicious {
		score = suspiciousScore
	}

	return domain.ResolvedSource{
		Known:      false,
		Suspicious: suspicious,
		Record: domain.SourceRecord{
			Domain:           key,
			Name:             key,
			ReliabilityScore: score,
			SourceType:       domain.SourceTypeUnknown,
		},
	}
}

// Len returns the number of curated sources.
func (r *Registry) Len() int { return len(r.entries) }

// All returns a copy of the curated records in merge order.
func (r *Registry) All() []domain.SourceRecord {
	out := make([]domain.SourceRecord, len(r.entries))
	copy(out, r.entries)
	return out
}

// Catalogue groups the curated sources by reliability band for presentation.
type Catalogue struct {
	Reliable   []domain.SourceRecord `json:"reliable_sources"`
	Mixed      []domain.SourceRecord `json:"mixed_reliability"`
	Unreliable []domain.SourceRecord `json:"unreliable_sources"`
}

// Grouped buckets sources into reliable (>=0.7), mixed (>=0.4) and
// unreliable bands, each sorted by score descending.
func (r *Registry) Grouped() Catalogue {
	var cat Catalogue
	for _, rec := range r.entries {
		switch {
		case rec.ReliabilityScore >= reliableThreshold:
			cat.Reliable = append(cat.Reliable, rec)
		case rec.ReliabilityScore >= mixedThreshold:
			cat.Mixed = append(cat.Mixed, rec)
		default:
			cat.Unreliable = append(cat.Unreliable, rec)
		}
	}

	byScoreDesc := func(s []domain.SourceRecord) {
		sort.SliceStable(s, func(i, j int) bool {
			return s[i].ReliabilityScore > s[j].ReliabilityScore
		})
	}
	byScoreDesc(cat.Reliable)
	byScoreDesc(cat.Mixed)
	byScoreDesc(cat.Unreliable)

	return cat
}
