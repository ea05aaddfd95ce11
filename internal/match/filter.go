package match

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/soundbridge/opportunity-engine/internal/models"
)

// DateRange is an inclusive deadline window. Zero endpoints mean unbounded
// on that side.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AmountRange is an inclusive numeric window over the parsed amount.
type AmountRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Criteria is a transient, all-optional query object. An absent field means
// no constraint on that dimension; malformed values are ignored rather than
// rejecting the whole query.
type Criteria struct {
	Categories           []string     `json:"categories,omitempty"`
	Regions              []string     `json:"regions,omitempty"`
	CompensationTypes    []string     `json:"compensation_types,omitempty"`
	DeadlineRange        *DateRange   `json:"deadline_range,omitempty"`
	AmountRange          *AmountRange `json:"amount_range,omitempty"`
	CredibilityThreshold *int         `json:"credibility_threshold,omitempty"`
	Tags                 []string     `json:"tags,omitempty"`
	ManagedTalentOnly    bool         `json:"managed_talent_only,omitempty"`
}

// managedTalentKeywords is the fixed keyword set behind the
// managed-talent heuristic, matched against description and requirements.
var managedTalentKeywords = []string{"management", "representation", "label", "professional"}

var amountPattern = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// ParseAmount extracts a numeric value from a raw amount string. Unparseable
// amounts are 0; the result is never negative.
func ParseAmount(raw string) float64 {
	match := amountPattern.FindString(raw)
	if match == "" {
		return 0
	}
	clean := strings.ReplaceAll(match, ",", "")
	value, err := strconv.ParseFloat(clean, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// Apply evaluates the criteria over the opportunity set: conjunctive across
// provided criteria, disjunctive within each. Empty criteria return every
// input.
func Apply(criteria Criteria, opportunities []models.Opportunity) []models.Opportunity {
	out := make([]models.Opportunity, 0, len(opportunities))
	for _, o := range opportunities {
		if matches(criteria, o) {
			out = append(out, o)
		}
	}
	return out
}

func matches(c Criteria, o models.Opportunity) bool {
	if len(c.Categories) > 0 && !containsAny(o.Tags, c.Categories) {
		return false
	}
	if len(c.Regions) > 0 && !containsAny(o.Location, c.Regions) {
		return false
	}
	if len(c.CompensationTypes) > 0 && !exactAny(o.CompensationType, c.CompensationTypes) {
		return false
	}
	if c.DeadlineRange != nil && !deadlineWithin(o.Deadline, *c.DeadlineRange) {
		return false
	}
	if c.AmountRange != nil && !amountWithin(ParseAmount(o.Amount), *c.AmountRange) {
		return false
	}
	if c.CredibilityThreshold != nil {
		// Out-of-range thresholds are malformed and skipped.
		if t := *c.CredibilityThreshold; t >= 0 && t <= 100 && o.CredibilityScore < t {
			return false
		}
	}
	if len(c.Tags) > 0 && !containsAny(o.Tags, c.Tags) {
		return false
	}
	if c.ManagedTalentOnly && !isManagedTalentOpportunity(o) {
		return false
	}
	return true
}

// containsAny reports whether haystack contains at least one of the wanted
// values, case-insensitively.
func containsAny(haystack string, wanted []string) bool {
	lower := strings.ToLower(haystack)
	for _, w := range wanted {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" && strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func exactAny(value string, wanted []string) bool {
	for _, w := range wanted {
		if strings.EqualFold(strings.TrimSpace(w), value) {
			return true
		}
	}
	return false
}

func deadlineWithin(deadline time.Time, r DateRange) bool {
	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		// Inverted range is malformed; skip the criterion.
		return true
	}
	if deadline.IsZero() {
		return false
	}
	if !r.Start.IsZero() && deadline.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && deadline.After(r.End) {
		return false
	}
	return true
}

func amountWithin(amount float64, r AmountRange) bool {
	if r.Max > 0 && r.Max < r.Min {
		return true
	}
	if amount < r.Min {
		return false
	}
	if r.Max > 0 && amount > r.Max {
		return false
	}
	return true
}

// isManagedTalentOpportunity is a keyword heuristic: true only when the
// description or requirements mention professional representation.
func isManagedTalentOpportunity(o models.Opportunity) bool {
	text := strings.ToLower(o.Description + " " + o.Requirements)
	for _, kw := range managedTalentKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
