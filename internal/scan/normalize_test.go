package scan

import (
	"strings"
	"testing"

	"github.com/soundbridge/opportunity-engine/internal/models"
)

func TestHTMLToText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"<p>Music   Grant</p>", "Music Grant"},
		{"plain   text", "plain text"},
		{"<div><b>Apply</b> by <i>June</i></div>", "Apply by June"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := HTMLToText(tc.in); got != tc.want {
			t.Fatalf("HTMLToText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeCandidate_FillsFromTarget(t *testing.T) {
	target := models.ScanTarget{
		URL:              "https://fund.example",
		Name:             "Example Fund",
		Region:           "caribbean",
		CredibilityScore: 88,
		Organization: models.OrganizationDetails{
			Description: "Regional music development agency",
			Website:     "https://fund.example/about",
			Email:       "info@fund.example",
		},
	}

	o := models.Opportunity{Title: "  <b>Touring</b> Grant  "}
	NormalizeCandidate(&o, target)

	if o.Title != "Touring Grant" {
		t.Fatalf("expected a cleaned title, got %q", o.Title)
	}
	if o.Source != "Example Fund" || o.URL != "https://fund.example" {
		t.Fatalf("expected source fields from the target, got %q %q", o.Source, o.URL)
	}
	if o.CredibilityScore != 88 {
		t.Fatalf("expected the target credibility, got %d", o.CredibilityScore)
	}
	if o.Location != "caribbean" {
		t.Fatalf("expected the target region as location, got %q", o.Location)
	}
	if o.CompensationType != models.CompensationExposure {
		t.Fatalf("expected the exposure default, got %q", o.CompensationType)
	}
	if o.OrganizerName != "Example Fund" || o.ContactEmail != "info@fund.example" {
		t.Fatalf("expected organizer details from the target, got %q %q", o.OrganizerName, o.ContactEmail)
	}
	if o.VerificationStatus != "verified" {
		t.Fatalf("credibility 88 should verify, got %q", o.VerificationStatus)
	}
}

func TestNormalizeCandidate_VerificationThreshold(t *testing.T) {
	target := models.ScanTarget{Name: "Low Trust", URL: "https://low.example", CredibilityScore: 79}
	o := models.Opportunity{Title: "Open Call"}
	NormalizeCandidate(&o, target)
	if o.VerificationStatus != "unverified" {
		t.Fatalf("credibility 79 should not verify, got %q", o.VerificationStatus)
	}
}

func TestNormalizeCandidate_SanitizesDescription(t *testing.T) {
	target := models.ScanTarget{Name: "X", URL: "https://x.example", CredibilityScore: 50}
	o := models.Opportunity{
		Title:       "Open Call",
		Description: `<p>Apply now</p><script>alert("x")</script>`,
	}
	NormalizeCandidate(&o, target)
	if strings.Contains(o.Description, "<script>") {
		t.Fatalf("script tags must be stripped, got %q", o.Description)
	}
	if !strings.Contains(o.Description, "Apply now") {
		t.Fatalf("safe content must survive sanitizing, got %q", o.Description)
	}
}

func TestNormalizeCandidate_KeepsExplicitFields(t *testing.T) {
	target := models.ScanTarget{Name: "Fallback", URL: "https://fallback.example", Region: "europe", CredibilityScore: 60}
	o := models.Opportunity{
		Title:            "Open Call",
		Source:           "Original Source",
		Location:         "Berlin, Germany",
		CompensationType: models.CompensationPaid,
		CredibilityScore: 95,
	}
	NormalizeCandidate(&o, target)

	if o.Source != "Original Source" {
		t.Fatalf("explicit source must win, got %q", o.Source)
	}
	if o.Location != "Berlin, Germany" {
		t.Fatalf("explicit location must win, got %q", o.Location)
	}
	if o.CompensationType != models.CompensationPaid {
		t.Fatalf("explicit compensation must win, got %q", o.CompensationType)
	}
	if o.CredibilityScore != 95 {
		t.Fatalf("explicit credibility must win, got %d", o.CredibilityScore)
	}
}
