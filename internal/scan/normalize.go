package scan

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/soundbridge/opportunity-engine/internal/models"
)

var descriptionPolicy = bluemonday.UGCPolicy()

// HTMLToText converts HTML to plain text, collapsing whitespace.
func HTMLToText(html string) string {
	if !strings.ContainsAny(html, "<>") {
		return collapseWhitespace(html)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return collapseWhitespace(html)
	}
	return collapseWhitespace(doc.Text())
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// sanitizeUTF8 removes invalid UTF-8 byte sequences that would be rejected
// by the store.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "")
}

// sanitizeHTML strips unsafe tags and attributes from candidate descriptions.
func sanitizeHTML(s string) string {
	return descriptionPolicy.Sanitize(s)
}

func clampCredibility(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// NormalizeCandidate cleans a candidate record and fills gaps from its scan
// target before the dedup gate sees it.
func NormalizeCandidate(o *models.Opportunity, target models.ScanTarget) {
	o.Title = strings.TrimSpace(sanitizeUTF8(HTMLToText(o.Title)))
	o.Description = sanitizeHTML(sanitizeUTF8(o.Description))
	o.Requirements = strings.TrimSpace(sanitizeUTF8(HTMLToText(o.Requirements)))

	if o.Source == "" {
		o.Source = target.Name
	}
	if o.URL == "" {
		o.URL = target.URL
	}
	if o.CredibilityScore == 0 {
		o.CredibilityScore = target.CredibilityScore
	}
	o.CredibilityScore = clampCredibility(o.CredibilityScore)

	if o.CompensationType == "" {
		o.CompensationType = models.CompensationExposure
	}
	if o.OrganizerName == "" {
		o.OrganizerName = target.Name
	}
	if o.OrganizerDescription == "" {
		o.OrganizerDescription = target.Organization.Description
	}
	if o.OrganizerWebsite == "" {
		o.OrganizerWebsite = target.Organization.Website
	}
	if o.OrganizerAddress == "" {
		o.OrganizerAddress = target.Organization.Address
	}
	if o.OrganizerPhone == "" {
		o.OrganizerPhone = target.Organization.Phone
	}
	if o.ContactEmail == "" {
		o.ContactEmail = target.Organization.Email
	}
	if o.Location == "" {
		o.Location = target.Region
	}

	if o.VerificationStatus == "" {
		if o.CredibilityScore >= 80 {
			o.VerificationStatus = "verified"
		} else {
			o.VerificationStatus = "unverified"
		}
	}
}
