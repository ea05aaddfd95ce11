package match

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/soundbridge/opportunity-engine/internal/models"
)

// Report is a personalized digest of the current catalog for one user.
type Report struct {
	UserID                     string              `json:"user_id"`
	GeneratedAt                time.Time           `json:"generated_at"`
	TotalRelevantOpportunities int                 `json:"total_relevant_opportunities"`
	HighPriorityCount          int                 `json:"high_priority_count"`
	UpcomingDeadlines          int                 `json:"upcoming_deadlines"`
	RecommendedActions         []string            `json:"recommended_actions"`
	TopOpportunities           []ScoredOpportunity `json:"top_opportunities"`
}

// DeadlineEntry is one upcoming deadline in the catalog statistics.
type DeadlineEntry struct {
	Title    string    `json:"title"`
	Source   string    `json:"source"`
	Deadline time.Time `json:"deadline"`
}

// OpportunityStatistics aggregates the catalog independent of any user.
type OpportunityStatistics struct {
	TotalOpportunities int             `json:"total_opportunities"`
	ByCategory         map[string]int  `json:"by_category"`
	ByRegion           map[string]int  `json:"by_region"`
	ByCompensation     map[string]int  `json:"by_compensation"`
	AverageCredibility float64         `json:"average_credibility"`
	UpcomingDeadlines  []DeadlineEntry `json:"upcoming_deadlines"`
}

const (
	topOpportunityCount   = 5
	urgentDeadlineDays    = 30
	notableFundingAmount  = 25000
	upcomingDeadlineLimit = 10
)

// GeneratePersonalizedReport ranks the whole catalog for the user and distills
// it into counts, the top matches, and suggested next actions.
func (e *Engine) GeneratePersonalizedReport(ctx context.Context, userID string) (*Report, error) {
	matches, err := e.FindMatchesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := e.now()
	report := &Report{
		UserID:                     userID,
		GeneratedAt:                now,
		TotalRelevantOpportunities: len(matches),
	}

	urgentDays := -1
	hasNotableFunding := false
	hasManagedAdvantage := false
	for _, m := range matches {
		if m.PriorityLevel == PriorityHigh {
			report.HighPriorityCount++
		}
		if days := daysUntil(m.Deadline, now); days >= 0 && days <= urgentDeadlineDays && !m.Deadline.IsZero() {
			report.UpcomingDeadlines++
			if urgentDays < 0 || days < urgentDays {
				urgentDays = days
			}
		}
		if ParseAmount(m.Amount) >= notableFundingAmount {
			hasNotableFunding = true
		}
		for _, reason := range m.MatchingReasons {
			if reason == "Managed talent advantage: professional representation strengthens this application" {
				hasManagedAdvantage = true
			}
		}
	}

	if len(matches) > topOpportunityCount {
		report.TopOpportunities = matches[:topOpportunityCount]
	} else {
		report.TopOpportunities = matches
	}

	report.RecommendedActions = recommendedActions(report, urgentDays, hasNotableFunding, hasManagedAdvantage)
	return report, nil
}

func recommendedActions(r *Report, urgentDays int, notableFunding, managedAdvantage bool) []string {
	if r.TotalRelevantOpportunities == 0 {
		return []string{
			"Complete your profile with genres, skills and location to unlock personalized matches",
			"Check back after the next scan cycle: new opportunities are discovered continuously",
		}
	}

	var actions []string
	if r.UpcomingDeadlines > 0 {
		actions = append(actions, fmt.Sprintf("Apply within %d days: %d of your matches close soon", urgentDays, r.UpcomingDeadlines))
	}
	if notableFunding {
		actions = append(actions, "Prioritize the high-value opportunities in your matches and prepare budgets early")
	}
	if managedAdvantage {
		actions = append(actions, "Leverage your management representation: several matches favor professionally represented artists")
	}
	if r.HighPriorityCount > 0 {
		actions = append(actions, fmt.Sprintf("Focus on your %d high-priority matches first", r.HighPriorityCount))
	}
	if len(actions) == 0 {
		actions = append(actions, "Review your top matches and shortlist the ones that fit your current projects")
	}
	return actions
}

// GetOpportunityStatistics summarizes the stored catalog.
func (e *Engine) GetOpportunityStatistics(ctx context.Context) (*OpportunityStatistics, error) {
	opportunities, err := e.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing opportunities: %w", err)
	}

	stats := &OpportunityStatistics{
		TotalOpportunities: len(opportunities),
		ByCategory:         make(map[string]int),
		ByRegion:           make(map[string]int),
		ByCompensation:     make(map[string]int),
	}

	now := e.now()
	credibilitySum := 0
	var upcoming []DeadlineEntry
	for _, o := range opportunities {
		stats.ByCategory[models.CategoryName(o.CategoryID)]++
		region := o.Location
		if region == "" {
			region = "unspecified"
		}
		stats.ByRegion[region]++
		stats.ByCompensation[o.CompensationType]++
		credibilitySum += o.CredibilityScore

		if !o.Deadline.IsZero() && o.Deadline.After(now) {
			upcoming = append(upcoming, DeadlineEntry{Title: o.Title, Source: o.Source, Deadline: o.Deadline})
		}
	}

	if len(opportunities) > 0 {
		stats.AverageCredibility = float64(credibilitySum) / float64(len(opportunities))
	}

	sort.Slice(upcoming, func(i, j int) bool {
		if !upcoming[i].Deadline.Equal(upcoming[j].Deadline) {
			return upcoming[i].Deadline.Before(upcoming[j].Deadline)
		}
		return upcoming[i].Title < upcoming[j].Title
	})
	if len(upcoming) > upcomingDeadlineLimit {
		upcoming = upcoming[:upcomingDeadlineLimit]
	}
	stats.UpcomingDeadlines = upcoming

	return stats, nil
}
