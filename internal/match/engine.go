package match

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/soundbridge/opportunity-engine/internal/models"
)

// OpportunityLister provides the persisted opportunity set.
type OpportunityLister interface {
	List(ctx context.Context) ([]models.Opportunity, error)
}

// ProfileService resolves user profiles for personalization.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}

// Engine filters, scores and ranks opportunities against user context.
type Engine struct {
	store    OpportunityLister
	profiles ProfileService
	roles    RoleDirectory

	now func() time.Time
}

func NewEngine(store OpportunityLister, profiles ProfileService, roles RoleDirectory) *Engine {
	if roles == nil {
		roles = StaticRoles
	}
	return &Engine{
		store:    store,
		profiles: profiles,
		roles:    roles,
		now:      time.Now,
	}
}

// GetFilteredOpportunities returns the stored opportunities that satisfy the
// criteria, scored against the profile (which may be nil) and ranked best
// first. Ties break on credibility, then title, so the ordering is stable
// across runs.
func (e *Engine) GetFilteredOpportunities(ctx context.Context, criteria Criteria, profile *models.UserProfile) ([]ScoredOpportunity, error) {
	opportunities, err := e.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing opportunities: %w", err)
	}

	now := e.now()
	scored := make([]ScoredOpportunity, 0, len(opportunities))
	for _, o := range opportunities {
		if !matches(criteria, o) {
			continue
		}
		scored = append(scored, ScoreOpportunity(o, profile, e.roles, now))
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].RelevanceScore != scored[j].RelevanceScore {
			return scored[i].RelevanceScore > scored[j].RelevanceScore
		}
		if scored[i].CredibilityScore != scored[j].CredibilityScore {
			return scored[i].CredibilityScore > scored[j].CredibilityScore
		}
		return scored[i].Title < scored[j].Title
	})

	return scored, nil
}

// FindMatchesForUser ranks all opportunities for the given user. A missing
// profile is not an error: the user simply has no matches yet.
func (e *Engine) FindMatchesForUser(ctx context.Context, userID string) ([]ScoredOpportunity, error) {
	profile, err := e.profiles.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrProfileNotFound) {
			return []ScoredOpportunity{}, nil
		}
		return nil, fmt.Errorf("loading profile %s: %w", userID, err)
	}

	return e.GetFilteredOpportunities(ctx, Criteria{}, profile)
}
