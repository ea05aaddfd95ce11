package match

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/soundbridge/opportunity-engine/internal/models"
)

type fakeLister struct {
	opps []models.Opportunity
	err  error
}

func (f *fakeLister) List(ctx context.Context) ([]models.Opportunity, error) {
	return f.opps, f.err
}

type fakeProfiles struct {
	profiles map[string]*models.UserProfile
	err      error
}

func (f *fakeProfiles) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, models.ErrProfileNotFound
	}
	return p, nil
}

func newTestEngine(opps []models.Opportunity, profiles map[string]*models.UserProfile) *Engine {
	e := NewEngine(&fakeLister{opps: opps}, &fakeProfiles{profiles: profiles}, StaticRoles)
	e.now = func() time.Time { return scoreNow }
	return e
}

func TestGetFilteredOpportunities_EmptyCriteriaKeepsEverything(t *testing.T) {
	catalog := sampleCatalog()
	e := newTestEngine(catalog, nil)

	out, err := e.GetFilteredOpportunities(context.Background(), Criteria{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(catalog) {
		t.Fatalf("expected %d results, got %d", len(catalog), len(out))
	}
}

func TestGetFilteredOpportunities_SortedBestFirst(t *testing.T) {
	e := newTestEngine(sampleCatalog(), nil)

	out, err := e.GetFilteredOpportunities(context.Background(), Criteria{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(out); i++ {
		if out[i-1].RelevanceScore < out[i].RelevanceScore {
			t.Fatalf("results not sorted: %d before %d", out[i-1].RelevanceScore, out[i].RelevanceScore)
		}
	}
}

func TestGetFilteredOpportunities_DeterministicTieBreak(t *testing.T) {
	shared := models.Opportunity{
		CredibilityScore: 70,
		Deadline:         scoreNow.AddDate(0, 0, 45),
	}
	a := shared
	a.Title = "Alpha Grant"
	b := shared
	b.Title = "Beta Grant"
	c := shared
	// One credibility point more rounds to the same score, so the
	// secondary key decides.
	c.Title = "Alpha Grant Higher Cred"
	c.CredibilityScore = 71

	e := newTestEngine([]models.Opportunity{b, c, a}, nil)
	out, err := e.GetFilteredOpportunities(context.Background(), Criteria{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out[0].Title != "Alpha Grant Higher Cred" {
		t.Fatalf("expected higher credibility to win the tie, got %s first", out[0].Title)
	}
	if out[1].Title != "Alpha Grant" || out[2].Title != "Beta Grant" {
		t.Fatalf("expected alphabetical tie-break, got %s then %s", out[1].Title, out[2].Title)
	}
}

func TestGetFilteredOpportunities_StoreError(t *testing.T) {
	e := NewEngine(&fakeLister{err: errors.New("connection refused")}, &fakeProfiles{}, StaticRoles)

	if _, err := e.GetFilteredOpportunities(context.Background(), Criteria{}, nil); err == nil {
		t.Fatal("expected a store error to propagate")
	}
}

func TestFindMatchesForUser_MissingProfileIsEmptyNotError(t *testing.T) {
	e := newTestEngine(sampleCatalog(), nil)

	out, err := e.FindMatchesForUser(context.Background(), "unknown-user")
	if err != nil {
		t.Fatalf("missing profile must not be an error, got %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected an empty result set, got %v", out)
	}
}

func TestFindMatchesForUser_ScoresWithProfile(t *testing.T) {
	profiles := map[string]*models.UserProfile{
		"artist-1": {
			ID:       "artist-1",
			RoleID:   RoleArtist,
			Genres:   []string{"independent"},
			Location: "Trinidad",
		},
	}
	e := newTestEngine(sampleCatalog(), profiles)

	out, err := e.FindMatchesForUser(context.Background(), "artist-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected the whole catalog ranked, got %d", len(out))
	}

	// The Caribbean showcase should carry a region proximity reason for a
	// Trinidad-based artist.
	var caribbean *ScoredOpportunity
	for i := range out {
		if out[i].Title == "Discovery Stage Open Call" {
			caribbean = &out[i]
		}
	}
	if caribbean == nil {
		t.Fatal("expected the Caribbean showcase in the results")
	}
	found := false
	for _, r := range caribbean.MatchingReasons {
		if r == "In your region" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a region reason, got %v", caribbean.MatchingReasons)
	}
}
