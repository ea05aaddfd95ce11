package scan

import (
	"testing"

	"github.com/soundbridge/opportunity-engine/internal/models"
)

func TestLoadRegistry_EmbeddedSeed(t *testing.T) {
	reg, err := LoadRegistry()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg.Size() != 13 {
		t.Fatalf("expected 13 seed sources, got %d", reg.Size())
	}
	if got := len(reg.Sources(TierCore)); got != 4 {
		t.Fatalf("expected 4 core sources, got %d", got)
	}
	if avg := reg.AverageCredibility(); avg <= 0 {
		t.Fatalf("expected a positive average credibility, got %v", avg)
	}

	for _, src := range reg.Sources("") {
		if src.URL == "" || src.Name == "" || src.Category == "" {
			t.Fatalf("incomplete seed source: %+v", src)
		}
		if src.CredibilityScore < 0 || src.CredibilityScore > 100 {
			t.Fatalf("credibility out of range for %s: %d", src.Name, src.CredibilityScore)
		}
	}
}

func TestRegistryAdd_DeduplicatesByURL(t *testing.T) {
	reg := NewRegistry()
	src := Source{ScanTarget: models.ScanTarget{URL: "https://example.com/fund", Name: "Example Fund"}}

	if !reg.Add(src) {
		t.Fatal("expected the first add to succeed")
	}
	if reg.Add(src) {
		t.Fatal("expected the duplicate URL to be rejected")
	}

	variant := src
	variant.URL = "HTTPS://EXAMPLE.COM/FUND  "
	if reg.Add(variant) {
		t.Fatal("URL dedup must ignore case and surrounding whitespace")
	}
	if reg.Size() != 1 {
		t.Fatalf("expected 1 source, got %d", reg.Size())
	}
}

func TestRegistryAdd_RejectsEmptyURL(t *testing.T) {
	reg := NewRegistry()
	if reg.Add(Source{ScanTarget: models.ScanTarget{Name: "No URL"}}) {
		t.Fatal("expected an empty URL to be rejected")
	}
}

func TestRegistryAdd_AppliesDefaults(t *testing.T) {
	reg := NewRegistry()
	reg.Add(Source{ScanTarget: models.ScanTarget{URL: "https://example.com", Name: "X", CredibilityScore: 150}})

	got := reg.Sources("")[0]
	if got.Tier != TierExtended {
		t.Fatalf("expected the default tier, got %q", got.Tier)
	}
	if got.Strategy != StrategyTemplate {
		t.Fatalf("expected the default strategy, got %q", got.Strategy)
	}
	if got.CredibilityScore != 100 {
		t.Fatalf("expected credibility clamped to 100, got %d", got.CredibilityScore)
	}
}

func TestRegistrySources_FiltersByTier(t *testing.T) {
	reg := NewRegistry()
	core := Source{ScanTarget: models.ScanTarget{URL: "https://a.example", Name: "A"}, Tier: TierCore}
	industry := Source{ScanTarget: models.ScanTarget{URL: "https://b.example", Name: "B"}, Tier: TierIndustry}
	reg.Add(core)
	reg.Add(industry)

	if got := reg.Sources(TierCore); len(got) != 1 || got[0].Name != "A" {
		t.Fatalf("unexpected core sources: %+v", got)
	}
	if got := reg.Sources(""); len(got) != 2 {
		t.Fatalf("expected all sources for the empty tier, got %d", len(got))
	}
}
