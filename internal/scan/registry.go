package scan

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/soundbridge/opportunity-engine/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed config/sources.yaml
var sourcesYAML embed.FS

// Scan tiers. Quick scans cover core verified sources only; full scans add
// the extended, regional and industry tiers.
const (
	TierCore     = "core"
	TierExtended = "extended"
	TierRegional = "regional"
	TierIndustry = "industry"
)

// Adapter strategies. Templated sources are the default; rss and html name
// the real-fetch implementations.
const (
	StrategyTemplate = "template"
	StrategyRSS      = "rss"
	StrategyHTML     = "html"
)

// HTMLSelectors configures the html strategy's listing extraction.
type HTMLSelectors struct {
	Item        string `yaml:"item,omitempty"`
	Title       string `yaml:"title,omitempty"`
	Link        string `yaml:"link,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Source is a registry entry: a scan target plus its tier and adapter
// strategy.
type Source struct {
	models.ScanTarget `yaml:",inline"`

	Tier      string        `yaml:"tier"`
	Strategy  string        `yaml:"strategy,omitempty"`
	Selectors HTMLSelectors `yaml:"selectors,omitempty"`
}

type seedFile struct {
	Sources []Source `yaml:"sources"`
}

// Registry owns the list of scan targets. It is append-only and deduplicated
// by URL; there is no removal path.
type Registry struct {
	mu      sync.RWMutex
	sources []Source
	byURL   map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{byURL: make(map[string]bool)}
}

// LoadRegistry builds a registry from the embedded sources.yaml seed file.
func LoadRegistry() (*Registry, error) {
	data, err := sourcesYAML.ReadFile("config/sources.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded sources: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse sources.yaml: %w", err)
	}

	reg := NewRegistry()
	for _, src := range seed.Sources {
		reg.Add(src)
	}

	return reg, nil
}

// Add registers a source if its URL is not already known. Returns true when
// the source was appended.
func (r *Registry) Add(src Source) bool {
	key := strings.ToLower(strings.TrimSpace(src.URL))
	if key == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byURL[key] {
		return false
	}

	if src.Tier == "" {
		src.Tier = TierExtended
	}
	if src.Strategy == "" {
		src.Strategy = StrategyTemplate
	}
	src.CredibilityScore = clampCredibility(src.CredibilityScore)

	r.sources = append(r.sources, src)
	r.byURL[key] = true
	return true
}

func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sources)
}

// Sources returns a copy of the registered sources for a tier, or all
// sources when tier is empty.
func (r *Registry) Sources(tier string) []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Source, 0, len(r.sources))
	for _, src := range r.sources {
		if tier == "" || src.Tier == tier {
			out = append(out, src)
		}
	}
	return out
}

func (r *Registry) AverageCredibility() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.sources) == 0 {
		return 0
	}

	total := 0
	for _, src := range r.sources {
		total += src.CredibilityScore
	}
	return float64(total) / float64(len(r.sources))
}

func (r *Registry) CountByCategory() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)
	for _, src := range r.sources {
		counts[src.Category]++
	}
	return counts
}

func (r *Registry) CountByRegion() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)
	for _, src := range r.sources {
		counts[src.Region]++
	}
	return counts
}
