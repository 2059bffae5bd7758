package registry

import (
	"testing"

	"github.com/khabarcheck/khabarcheck/internal/domain"
	"github.com/khabarcheck/khabarcheck/internal/logging"
)

func newTestRegistry() *Registry {
	return New(logging.Nop())
}

func TestResolve_ExactMatch(t *testing.T) {
	r := newTestRegistry()

	resolved := r.Resolve("kathmandupost.com")

	if !resolved.Known {
		t.Fatal("expected known source")
	}
	if resolved.Record.Name != "The Kathmandu Post" {
		t.Errorf("expected The Kathmandu Post, got %s", resolved.Record.Name)
	}
	if resolved.Record.ReliabilityScore != 0.85 {
		t.Errorf("expected score 0.85, got %v", resolved.Record.ReliabilityScore)
	}
	if resolved.Record.SourceType != domain.SourceTypeMainstream {
		t.Errorf("expected mainstream, got %s", resolved.Record.SourceType)
	}
}

func TestResolve_WWWPrefixIsEquivalent(t *testing.T) {
	r := newTestRegistry()

	bare := r.Resolve("kathmandupost.com")
	www := r.Resolve("www.kathmandupost.com")

	if bare != www {
		t.Errorf("www-prefixed lookup diverged: %+v vs %+v", bare, www)
	}
}

func TestResolve_CaseInsensitive(t *testing.T) {
	r := newTestRegistry()

	resolved := r.Resolve("Reuters.COM")
	if !resolved.Known || resolved.Record.Name != "Reuters" {
		t.Errorf("expected Reuters, got %+v", resolved)
	}
}

func TestResolve_SubdomainFuzzyMatch(t *testing.T) {
	r := newTestRegistry()

	resolved := r.Resolve("english.onlinekhabar.com")
	if !resolved.Known {
		t.Fatal("expected subdomain to resolve to known source")
	}
	if resolved.Record.Domain != "onlinekhabar.com" {
		t.Errorf("expected onlinekhabar.com, got %s", resolved.Record.Domain)
	}
}

func TestResolve_FirstMatchPolicy(t *testing.T) {
	r := newTestRegistry()

	// "bbc.com" is an exact key, but a path-qualified input is a fuzzy lookup
	// that can match both "bbc.com/nepali" and "bbc.com". The Nepal list is
	// merged first, so "bbc.com/nepali" must win.
	resolved := r.Resolve("bbc.com/nepali")
	if !resolved.Known || resolved.Record.Name != "BBC Nepali" {
		t.Fatalf("expected BBC Nepali, got %+v", resolved)
	}

	fuzzy := r.Resolve("bbc.com/nepali/news/articles")
	if !fuzzy.Known || fuzzy.Record.Name != "BBC Nepali" {
		t.Errorf("expected first-match BBC Nepali for path lookup, got %+v", fuzzy)
	}
}

func TestResolve_UnknownDomainNeutralPrior(t *testing.T) {
	r := newTestRegistry()

	resolved := r.Resolve("totallymaderandomdomain123.xyz")

	if resolved.Known {
		t.Fatal("expected unknown source")
	}
	if resolved.Record.ReliabilityScore != 0.5 {
		t.Errorf("expected neutral 0.5, got %v", resolved.Record.ReliabilityScore)
	}
	if resolved.Record.SourceType != domain.SourceTypeUnknown {
		t.Errorf("expected unknown type, got %s", resolved.Record.SourceType)
	}
	if resolved.Suspicious {
		t.Error("expected no suspicious pattern")
	}
}

func TestResolve_SuspiciousPatterns(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		domain string
	}{
		{"shocking-breaking-news24.blogspot.com"},
		{"real-truth-exposed.com"},
		{"khabar-news24.com"},
		{"somesite.wordpress.com"},
	}

	for _, tt := range tests {
		resolved := r.Resolve(tt.domain)
		if resolved.Known {
			t.Errorf("%s: expected unknown", tt.domain)
			continue
		}
		if !resolved.Suspicious {
			t.Errorf("%s: expected suspicious pattern match", tt.domain)
		}
		if resolved.Record.ReliabilityScore != 0.4 {
			t.Errorf("%s: expected score 0.4, got %v", tt.domain, resolved.Record.ReliabilityScore)
		}
	}
}

func TestResolve_EmptyInput(t *testing.T) {
	r := newTestRegistry()

	resolved := r.Resolve("")
	if resolved.Known {
		t.Fatal("expected unknown for empty input")
	}
	if resolved.Record.ReliabilityScore != 0.5 {
		t.Errorf("expected neutral prior, got %v", resolved.Record.ReliabilityScore)
	}
}

func TestResolveName(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		input    string
		expected string
	}{
		{"The Kathmandu Post", "The Kathmandu Post"},
		{"kathmandu post", "The Kathmandu Post"},
		{"Reuters", "Reuters"},
		{"republica", "Republica"},
	}

	for _, tt := range tests {
		resolved := r.ResolveName(tt.input)
		if !resolved.Known {
			t.Errorf("ResolveName(%q): expected known source", tt.input)
			continue
		}
		if resolved.Record.Name != tt.expected {
			t.Errorf("ResolveName(%q) = %s, want %s", tt.input, resolved.Record.Name, tt.expected)
		}
	}

	unknown := r.ResolveName("My Cousin's Blog")
	if unknown.Known {
		t.Errorf("expected unknown for unrecognized name, got %+v", unknown)
	}
}

func TestRegistry_MergeOrder(t *testing.T) {
	r := newTestRegistry()

	all := r.All()
	if len(all) != r.Len() {
		t.Fatalf("All() length %d != Len() %d", len(all), r.Len())
	}

	// Nepal sources first, then international, then unreliable.
	if all[0].Domain != "kathmandupost.com" {
		t.Errorf("expected kathmandupost.com first, got %s", all[0].Domain)
	}
	if all[len(nepalSources)].Domain != "reuters.com" {
		t.Errorf("expected reuters.com to open the international block, got %s", all[len(nepalSources)].Domain)
	}
	if all[len(nepalSources)+len(internationalSources)].Domain != "infowars.com" {
		t.Errorf("expected infowars.com to open the unreliable block, got %s",
			all[len(nepalSources)+len(internationalSources)].Domain)
	}
}

func TestRegistry_AllReturnsCopy(t *testing.T) {
	r := newTestRegistry()

	all := r.All()
	all[0].ReliabilityScore = 0.0

	if r.Resolve("kathmandupost.com").Record.ReliabilityScore != 0.85 {
		t.Error("mutating All() result leaked into the registry")
	}
}

func TestRegistry_ScoreBounds(t *testing.T) {
	r := newTestRegistry()

	for _, rec := range r.All() {
		if rec.ReliabilityScore < 0 || rec.ReliabilityScore > 1 {
			t.Errorf("%s: score %v outside [0,1]", rec.Domain, rec.ReliabilityScore)
		}
		if rec.Domain != NormalizeDomain(rec.Domain) {
			t.Errorf("%s: key not normalized", rec.Domain)
		}
	}
}

func TestRegistry_Grouped(t *testing.T) {
	r := newTestRegistry()

	cat := r.Grouped()

	total := len(cat.Reliable) + len(cat.Mixed) + len(cat.Unreliable)
	if total != r.Len() {
		t.Fatalf("grouped total %d != registry size %d", total, r.Len())
	}

	for i := 1; i < len(cat.Reliable); i++ {
		if cat.Reliable[i].ReliabilityScore > cat.Reliable[i-1].ReliabilityScore {
			t.Fatal("reliable band not sorted by score descending")
		}
	}
	for _, rec := range cat.Reliable {
		if rec.ReliabilityScore < 0.7 {
			t.Errorf("%s: score %v below reliable threshold", rec.Domain, rec.ReliabilityScore)
		}
	}
	for _, rec := range cat.Unreliable {
		if rec.ReliabilityScore >= 0.4 {
			t.Errorf("%s: score %v too high for unreliable band", rec.Domain, rec.ReliabilityScore)
		}
	}
}
