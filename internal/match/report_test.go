package match

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/soundbridge/opportunity-engine/internal/models"
)

func TestGeneratePersonalizedReport_CountsAndActions(t *testing.T) {
	profiles := map[string]*models.UserProfile{
		"artist-1": {
			ID:       "artist-1",
			RoleID:   RoleManagedArtist,
			Genres:   []string{"Soca"},
			Location: "Trinidad and Tobago",
		},
	}
	catalog := []models.Opportunity{
		{
			Title:            "Caribbean Touring Fund",
			Description:      "Touring support for soca artists with management representation.",
			CredibilityScore: 90,
			Amount:           "$30,000",
			Deadline:         scoreNow.AddDate(0, 0, 12),
			Tags:             "soca,touring",
			Location:         "Caribbean",
		},
		{
			Title:            "Distant Residency",
			CredibilityScore: 60,
			Deadline:         scoreNow.AddDate(0, 0, 150),
			Location:         "Europe",
		},
	}

	e := newTestEngine(catalog, profiles)
	report, err := e.GeneratePersonalizedReport(context.Background(), "artist-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TotalRelevantOpportunities != 2 {
		t.Fatalf("expected 2 relevant opportunities, got %d", report.TotalRelevantOpportunities)
	}
	if report.UpcomingDeadlines != 1 {
		t.Fatalf("expected 1 upcoming deadline, got %d", report.UpcomingDeadlines)
	}
	if report.HighPriorityCount < 1 {
		t.Fatalf("expected at least one high priority match, got %d", report.HighPriorityCount)
	}
	if len(report.TopOpportunities) != 2 {
		t.Fatalf("expected both matches in the top list, got %d", len(report.TopOpportunities))
	}
	if report.TopOpportunities[0].Title != "Caribbean Touring Fund" {
		t.Fatalf("expected the personalized match first, got %s", report.TopOpportunities[0].Title)
	}

	joined := strings.Join(report.RecommendedActions, " | ")
	if !strings.Contains(joined, "Apply within") {
		t.Fatalf("expected an urgency action, got %v", report.RecommendedActions)
	}
	if !strings.Contains(joined, "high-value") {
		t.Fatalf("expected a high-value action, got %v", report.RecommendedActions)
	}
	if !strings.Contains(joined, "management representation") {
		t.Fatalf("expected a managed-talent action, got %v", report.RecommendedActions)
	}
}

func TestGeneratePersonalizedReport_NoMatchesFallsBackToProfileTips(t *testing.T) {
	e := newTestEngine(nil, nil)

	report, err := e.GeneratePersonalizedReport(context.Background(), "unknown-user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.TotalRelevantOpportunities != 0 {
		t.Fatalf("expected no matches, got %d", report.TotalRelevantOpportunities)
	}
	if len(report.RecommendedActions) == 0 {
		t.Fatal("expected fallback profile tips")
	}
	if !strings.Contains(report.RecommendedActions[0], "Complete your profile") {
		t.Fatalf("expected a profile completion tip, got %v", report.RecommendedActions)
	}
}

func TestGeneratePersonalizedReport_TopFiveOnly(t *testing.T) {
	profiles := map[string]*models.UserProfile{
		"artist-1": {ID: "artist-1", RoleID: RoleArtist},
	}
	var catalog []models.Opportunity
	for i := 0; i < 8; i++ {
		catalog = append(catalog, models.Opportunity{
			Title:            fmt.Sprintf("Opportunity %d", i),
			CredibilityScore: 50 + i,
			Deadline:         scoreNow.AddDate(0, 0, 60),
		})
	}

	e := newTestEngine(catalog, profiles)
	report, err := e.GeneratePersonalizedReport(context.Background(), "artist-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.TopOpportunities) != 5 {
		t.Fatalf("expected the top 5 matches, got %d", len(report.TopOpportunities))
	}
}

func TestGetOpportunityStatistics(t *testing.T) {
	catalog := []models.Opportunity{
		{
			Title:            "Grant A",
			CategoryID:       models.CategoryGrant,
			Location:         "Canada",
			CompensationType: models.CompensationPaid,
			CredibilityScore: 90,
			Deadline:         scoreNow.AddDate(0, 0, 30),
		},
		{
			Title:            "Festival B",
			CategoryID:       models.CategoryFestival,
			Location:         "Caribbean",
			CompensationType: models.CompensationExposure,
			CredibilityScore: 70,
			Deadline:         scoreNow.AddDate(0, 0, 10),
		},
		{
			Title:            "Expired Call",
			CategoryID:       models.CategoryGrant,
			Location:         "Canada",
			CompensationType: models.CompensationPaid,
			CredibilityScore: 80,
			Deadline:         scoreNow.AddDate(0, 0, -10),
		},
	}

	e := newTestEngine(catalog, nil)
	stats, err := e.GetOpportunityStatistics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.TotalOpportunities != 3 {
		t.Fatalf("expected 3 opportunities, got %d", stats.TotalOpportunities)
	}
	if stats.ByCategory["grant"] != 2 || stats.ByCategory["festival"] != 1 {
		t.Fatalf("unexpected category counts: %v", stats.ByCategory)
	}
	if stats.ByRegion["Canada"] != 2 {
		t.Fatalf("unexpected region counts: %v", stats.ByRegion)
	}
	if stats.AverageCredibility != 80 {
		t.Fatalf("expected average credibility 80, got %v", stats.AverageCredibility)
	}

	// Expired deadlines are excluded; the nearest upcoming comes first.
	if len(stats.UpcomingDeadlines) != 2 {
		t.Fatalf("expected 2 upcoming deadlines, got %d", len(stats.UpcomingDeadlines))
	}
	if stats.UpcomingDeadlines[0].Title != "Festival B" {
		t.Fatalf("expected the nearest deadline first, got %s", stats.UpcomingDeadlines[0].Title)
	}
}
