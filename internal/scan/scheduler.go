package scan

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/soundbridge/opportunity-engine/internal/models"
)

type ScanType string

const (
	ScanQuick ScanType = "quick"
	ScanFull  ScanType = "full"
)

// ScanResult is the structured outcome of one scan cycle. Success is false
// only when every phase failed or the scan could not start.
type ScanResult struct {
	ScanType         ScanType  `json:"scan_type"`
	ScannedSources   int       `json:"scanned_sources"`
	NewOpportunities int       `json:"new_opportunities"`
	Success          bool      `json:"success"`
	Message          string    `json:"message"`
	StartedAt        time.Time `json:"started_at"`
}

// ScanStatistics is a by-value snapshot of scanner state.
type ScanStatistics struct {
	TotalScans              int            `json:"total_scans"`
	TotalOpportunitiesFound int            `json:"total_opportunities_found"`
	RegistrySize            int            `json:"registry_size"`
	AverageCredibility      float64        `json:"average_credibility"`
	LastQuickScan           time.Time      `json:"last_quick_scan"`
	LastFullScan            time.Time      `json:"last_full_scan"`
	NextQuickScan           time.Time      `json:"next_quick_scan"`
	NextFullScan            time.Time      `json:"next_full_scan"`
	SourcesByCategory       map[string]int `json:"sources_by_category"`
	SourcesByRegion         map[string]int `json:"sources_by_region"`
}

// Config controls scan cadence and adapter budgets.
type Config struct {
	QuickInterval     time.Duration
	FullInterval      time.Duration
	DiscoveryInterval time.Duration
	DiscoveryDelay    time.Duration // initial discovery shortly after startup
	AdapterTimeout    time.Duration
}

func DefaultConfig() Config {
	return Config{
		QuickInterval:     6 * time.Hour,
		FullInterval:      24 * time.Hour,
		DiscoveryInterval: 7 * 24 * time.Hour,
		DiscoveryDelay:    time.Minute,
		AdapterTimeout:    30 * time.Second,
	}
}

type scanPhase struct {
	tier   string
	method string
}

var quickPhases = []scanPhase{
	{tier: TierCore, method: models.DiscoveryCore},
}

var fullPhases = []scanPhase{
	{tier: TierCore, method: models.DiscoveryCore},
	{tier: TierExtended, method: models.DiscoveryExtended},
	{tier: TierRegional, method: models.DiscoveryRegional},
	{tier: TierIndustry, method: models.DiscoveryIndustry},
}

// Scanner owns scan execution against the registry. It is an explicitly
// constructed service; its lifecycle belongs to the process wiring code.
type Scanner struct {
	store    OpportunityStore
	registry *Registry
	gate     *Gate
	cfg      Config

	now        func() time.Time
	newAdapter func(Source) SourceAdapter

	quickMu sync.Mutex
	fullMu  sync.Mutex

	statsMu    sync.Mutex
	totalScans int
	totalFound int
	lastScan   map[ScanType]time.Time
}

func NewScanner(store OpportunityStore, registry *Registry, cfg Config) *Scanner {
	s := &Scanner{
		store:    store,
		registry: registry,
		gate:     NewGate(store),
		cfg:      cfg,
		now:      time.Now,
		lastScan: make(map[ScanType]time.Time),
	}
	s.newAdapter = func(src Source) SourceAdapter {
		return NewAdapter(src, s.now)
	}
	return s
}

func (s *Scanner) mutexFor(scanType ScanType) *sync.Mutex {
	if scanType == ScanFull {
		return &s.fullMu
	}
	return &s.quickMu
}

// Scan runs one scan cycle. At most one scan per type is in flight; a
// concurrent attempt of the same type returns a busy result without running.
// Individual adapter failures are skipped sources; the cycle fails overall
// only when every phase fails.
func (s *Scanner) Scan(ctx context.Context, scanType ScanType) (ScanResult, error) {
	if scanType != ScanQuick && scanType != ScanFull {
		return ScanResult{ScanType: scanType, Message: fmt.Sprintf("unknown scan type %q", scanType)}, fmt.Errorf("unknown scan type %q", scanType)
	}

	mu := s.mutexFor(scanType)
	if !mu.TryLock() {
		return ScanResult{
			ScanType: scanType,
			Message:  fmt.Sprintf("a %s scan is already in flight", scanType),
		}, nil
	}
	defer mu.Unlock()

	started := s.now()
	result := ScanResult{ScanType: scanType, StartedAt: started}

	phases := quickPhases
	if scanType == ScanFull {
		phases = fullPhases
	}

	okPhases := 0
	failedPhases := 0

	for _, phase := range phases {
		sources := s.registry.Sources(phase.tier)
		if len(sources) == 0 {
			continue
		}

		phaseScanned := 0
		for _, src := range sources {
			// Shutdown: finish the current adapter, then stop.
			if ctx.Err() != nil {
				log.Printf("[scan] %s scan interrupted: %v", scanType, ctx.Err())
				break
			}

			adapter := s.newAdapter(src)
			actx, cancel := context.WithTimeout(ctx, s.cfg.AdapterTimeout)
			candidates, err := adapter.Fetch(actx)
			cancel()
			if err != nil {
				log.Printf("[scan] source %s unavailable, skipping: %v", src.Name, err)
				continue
			}

			for i := range candidates {
				NormalizeCandidate(&candidates[i], src.ScanTarget)
				candidates[i].DiscoveryMethod = phase.method
			}

			added, err := s.gate.Persist(ctx, candidates)
			if err != nil {
				log.Printf("[scan] persisting candidates from %s failed: %v", src.Name, err)
				continue
			}

			phaseScanned++
			result.ScannedSources++
			result.NewOpportunities += added
		}

		if phaseScanned == 0 {
			failedPhases++
		} else {
			okPhases++
		}

		if ctx.Err() != nil {
			break
		}
	}

	s.statsMu.Lock()
	s.totalScans++
	s.totalFound += result.NewOpportunities
	s.lastScan[scanType] = started
	s.statsMu.Unlock()

	if okPhases == 0 && failedPhases > 0 {
		result.Message = fmt.Sprintf("%s scan failed: no source in any phase could be scanned", scanType)
		return result, fmt.Errorf("%s scan failed: all phases failed", scanType)
	}

	result.Success = true
	result.Message = fmt.Sprintf("%s scan complete: %d sources scanned, %d new opportunities", scanType, result.ScannedSources, result.NewOpportunities)
	log.Printf("[scan] %s", result.Message)
	return result, nil
}

// DiscoverNewSources runs the category-specific discovery generators and
// appends any target whose URL is not yet registered. The registry grows
// monotonically; there is no removal path.
func (s *Scanner) DiscoverNewSources(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	added := 0
	for _, generate := range discoveryGenerators {
		for _, src := range generate() {
			if s.registry.Add(src) {
				added++
				log.Printf("[discovery] registered new source: %s (%s)", src.Name, src.URL)
			}
		}
	}

	if added > 0 {
		log.Printf("[discovery] %d new sources registered, registry size now %d", added, s.registry.Size())
	}
	return added, nil
}

// ScheduleAutomaticScans arms the quick, full and discovery timers. All
// goroutines stop when ctx is cancelled; a scan in progress finishes its
// current adapter call first.
func (s *Scanner) ScheduleAutomaticScans(ctx context.Context) {
	go s.runPeriodic(ctx, s.cfg.QuickInterval, func() {
		if _, err := s.Scan(ctx, ScanQuick); err != nil {
			log.Printf("[scan] scheduled quick scan failed: %v", err)
		}
	})

	go s.runPeriodic(ctx, s.cfg.FullInterval, func() {
		if _, err := s.Scan(ctx, ScanFull); err != nil {
			log.Printf("[scan] scheduled full scan failed: %v", err)
		}
	})

	go func() {
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.cfg.DiscoveryDelay):
			if _, err := s.DiscoverNewSources(ctx); err != nil {
				log.Printf("[discovery] initial discovery failed: %v", err)
			}
		}
		s.runPeriodic(ctx, s.cfg.DiscoveryInterval, func() {
			if _, err := s.DiscoverNewSources(ctx); err != nil {
				log.Printf("[discovery] scheduled discovery failed: %v", err)
			}
		})
	}()
}

func (s *Scanner) runPeriodic(ctx context.Context, interval time.Duration, fn func()) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}

// Statistics returns a read-only snapshot of scanner and registry state.
func (s *Scanner) Statistics() ScanStatistics {
	s.statsMu.Lock()
	lastQuick := s.lastScan[ScanQuick]
	lastFull := s.lastScan[ScanFull]
	stats := ScanStatistics{
		TotalScans:              s.totalScans,
		TotalOpportunitiesFound: s.totalFound,
		LastQuickScan:           lastQuick,
		LastFullScan:            lastFull,
	}
	s.statsMu.Unlock()

	if !lastQuick.IsZero() {
		stats.NextQuickScan = lastQuick.Add(s.cfg.QuickInterval)
	}
	if !lastFull.IsZero() {
		stats.NextFullScan = lastFull.Add(s.cfg.FullInterval)
	}

	stats.RegistrySize = s.registry.Size()
	stats.AverageCredibility = s.registry.AverageCredibility()
	stats.SourcesByCategory = s.registry.CountByCategory()
	stats.SourcesByRegion = s.registry.CountByRegion()

	return stats
}
