package match

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/soundbridge/opportunity-engine/internal/models"
)

// Priority buckets.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// highValueAmount forces a high priority regardless of total score.
const highValueAmount = 50000

// ScoredOpportunity is an opportunity annotated for a specific user context.
// Derived, never persisted.
type ScoredOpportunity struct {
	models.Opportunity

	RelevanceScore  int      `json:"relevance_score"`
	MatchingReasons []string `json:"matching_reasons"`
	PriorityLevel   string   `json:"priority_level"`
}

// Score computes the weighted relevance of an opportunity, optionally
// personalized by a profile. The score is rounded and clamped to [0, 100];
// reasons are ordered by component.
func Score(o models.Opportunity, profile *models.UserProfile, roles RoleDirectory, now time.Time) (int, []string) {
	score, _, reasons := scoreComponents(o, profile, roles, now)
	return score, reasons
}

// ScoreOpportunity scores and buckets an opportunity into a priority level.
func ScoreOpportunity(o models.Opportunity, profile *models.UserProfile, roles RoleDirectory, now time.Time) ScoredOpportunity {
	score, highValue, reasons := scoreComponents(o, profile, roles, now)
	return ScoredOpportunity{
		Opportunity:     o,
		RelevanceScore:  score,
		MatchingReasons: reasons,
		PriorityLevel:   PriorityFor(score, highValue),
	}
}

func scoreComponents(o models.Opportunity, profile *models.UserProfile, roles RoleDirectory, now time.Time) (int, bool, []string) {
	total := 0.0
	var reasons []string

	// Credibility: up to 30 points, linear in the source's trust weight.
	total += float64(o.CredibilityScore) / 100 * 30
	if o.CredibilityScore >= 85 {
		reasons = append(reasons, fmt.Sprintf("Highly credible source (%d/100)", o.CredibilityScore))
	}

	// Deadline urgency: sooner deadlines within the window score higher.
	switch days := daysUntil(o.Deadline, now); {
	case o.Deadline.IsZero() || days < 0:
		total += 10
	case days <= 30:
		total += 20
		reasons = append(reasons, fmt.Sprintf("Closes soon: %d days left to apply", days))
	case days <= 90:
		total += 15
	default:
		total += 10
	}

	// Value tier. Amounts at or above the high-value threshold also force
	// the high priority bucket.
	highValue := false
	switch amount := ParseAmount(o.Amount); {
	case amount >= highValueAmount:
		total += 20
		highValue = true
		reasons = append(reasons, fmt.Sprintf("High-value opportunity (%s)", o.Amount))
	case amount >= 10000:
		total += 15
		reasons = append(reasons, fmt.Sprintf("Substantial funding (%s)", o.Amount))
	case amount > 0:
		total += 10
	default:
		total += 5
	}

	if profile != nil {
		total += scoreProfileMatch(o, profile, roles, &reasons)

		if roles != nil && roles.IsManagedRole(profile.RoleID) && isManagedTalentOpportunity(o) {
			total += 10
			reasons = append(reasons, "Managed talent advantage: professional representation strengthens this application")
		}
	}

	// Reward records surfaced by the broader-coverage scan phases.
	if o.DiscoveryMethod == models.DiscoveryExtended || o.DiscoveryMethod == models.DiscoveryRegional {
		total += 5
	}

	score := int(math.Round(total))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return score, highValue, reasons
}

func scoreProfileMatch(o models.Opportunity, profile *models.UserProfile, roles RoleDirectory, reasons *[]string) float64 {
	points := 0.0
	text := strings.ToLower(o.Tags + " " + o.Description + " " + o.Requirements)

	// Genre overlap: 5 points per matching genre, capped at 15.
	genrePoints := 0.0
	for _, genre := range profile.Genres {
		g := strings.ToLower(strings.TrimSpace(genre))
		if g == "" || !strings.Contains(text, g) {
			continue
		}
		if genrePoints < 15 {
			genrePoints += 5
			*reasons = append(*reasons, fmt.Sprintf("Matches your genre: %s", strings.TrimSpace(genre)))
		}
	}
	points += genrePoints

	// Role keyword overlap: 3 points per match, capped at 10.
	if roles != nil {
		rolePoints := 0.0
		for _, kw := range roles.KeywordsForRole(profile.RoleID) {
			if strings.Contains(text, strings.ToLower(kw)) {
				rolePoints += 3
			}
		}
		if rolePoints > 10 {
			rolePoints = 10
		}
		if rolePoints > 0 {
			*reasons = append(*reasons, "Relevant to your professional role")
		}
		points += rolePoints
	}

	// Location proximity: regional grouping first, then global/remote tokens.
	if profile.Location != "" {
		oppLower := strings.ToLower(o.Location)
		profLower := strings.ToLower(profile.Location)
		switch {
		case oppLower != "" && (strings.Contains(oppLower, profLower) || strings.Contains(profLower, oppLower)):
			points += 10
			*reasons = append(*reasons, "In your area")
		case regionGroupFor(o.Location) != "" && regionGroupFor(o.Location) == regionGroupFor(profile.Location):
			points += 10
			*reasons = append(*reasons, "In your region")
		case isGlobalLocation(o.Location):
			points += 6
			*reasons = append(*reasons, "Open to applicants worldwide")
		}
	}

	return points
}

// PriorityFor buckets a relevance score. High-value opportunities are always
// high priority.
func PriorityFor(score int, highValue bool) string {
	if highValue || score >= 80 {
		return PriorityHigh
	}
	if score >= 60 {
		return PriorityMedium
	}
	return PriorityLow
}

// daysUntil returns whole days from now until the deadline, negative when
// the deadline has passed.
func daysUntil(deadline, now time.Time) int {
	if deadline.IsZero() {
		return 0
	}
	return int(deadline.Sub(now).Hours() / 24)
}
