package models

import (
	"time"

	"github.com/google/uuid"
)

// Compensation types an opportunity can offer.
const (
	CompensationPaid         = "paid"
	CompensationRevenueShare = "revenue_share"
	CompensationExposure     = "exposure"
	CompensationVolunteer    = "volunteer"
)

// Opportunity categories. Stored as integers so external systems can
// reference them without string drift.
const (
	CategoryGrant       = 1
	CategoryFestival    = 2
	CategorySyncLicense = 3
	CategoryCompetition = 4
	CategoryResidency   = 5
	CategoryShowcase    = 6
	CategoryRights      = 7
)

// Discovery methods record which scan phase produced a record.
const (
	DiscoveryCore     = "core_scan"
	DiscoveryExtended = "extended_scan"
	DiscoveryRegional = "regional_scan"
	DiscoveryIndustry = "industry_scan"
)

// CategoryName maps a category ID to its display name.
func CategoryName(id int) string {
	switch id {
	case CategoryGrant:
		return "grant"
	case CategoryFestival:
		return "festival"
	case CategorySyncLicense:
		return "sync_license"
	case CategoryCompetition:
		return "competition"
	case CategoryResidency:
		return "residency"
	case CategoryShowcase:
		return "showcase"
	case CategoryRights:
		return "rights"
	default:
		return "other"
	}
}

// Opportunity is a discrete, time-bounded music-industry offer. Records are
// immutable after creation; the title is the catalog-wide unique key.
type Opportunity struct {
	ID                   uuid.UUID `json:"id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Source               string    `json:"source"`
	URL                  string    `json:"url"`
	Deadline             time.Time `json:"deadline"`
	Amount               string    `json:"amount"` // raw text, parsed on demand
	Requirements         string    `json:"requirements"`
	OrganizerName        string    `json:"organizer_name"`
	OrganizerDescription string    `json:"organizer_description"`
	OrganizerWebsite     string    `json:"organizer_website"`
	OrganizerAddress     string    `json:"organizer_address"`
	OrganizerPhone       string    `json:"organizer_phone"`
	ContactEmail         string    `json:"contact_email"`
	ApplicationProcess   string    `json:"application_process"`
	CredibilityScore     int       `json:"credibility_score"` // 0-100
	Tags                 string    `json:"tags"`              // comma-delimited
	CategoryID           int       `json:"category_id"`
	Location             string    `json:"location"`
	CompensationType     string    `json:"compensation_type"`
	VerificationStatus   string    `json:"verification_status"`
	DiscoveryMethod      string    `json:"discovery_method"`
	CreatedAt            time.Time `json:"created_at"`
}

// OrganizationDetails describes the organization behind a scan target.
type OrganizationDetails struct {
	Description string `json:"description" yaml:"description,omitempty"`
	Website     string `json:"website" yaml:"website,omitempty"`
	Address     string `json:"address" yaml:"address,omitempty"`
	Phone       string `json:"phone" yaml:"phone,omitempty"`
	Email       string `json:"email" yaml:"email,omitempty"`
}

// ScanTarget is a registry entry: an organization or channel treated as a
// provider of opportunities. Targets are append-only and deduplicated by URL.
type ScanTarget struct {
	URL              string              `json:"url" yaml:"url"`
	Name             string              `json:"name" yaml:"name"`
	Category         string              `json:"category" yaml:"category"`
	Region           string              `json:"region" yaml:"region"`
	ScanInterval     int                 `json:"scan_interval_hours" yaml:"scan_interval_hours"`
	CredibilityScore int                 `json:"credibility_score" yaml:"credibility_score"`
	Organization     OrganizationDetails `json:"organization" yaml:"organization,omitempty"`
}

// UserProfile is supplied by the external identity/profile service. The
// engine consumes it for personalized scoring but does not own it.
type UserProfile struct {
	ID              string   `json:"id"`
	RoleID          int      `json:"role_id"`
	Genres          []string `json:"genres"`
	Skills          []string `json:"skills"`
	Location        string   `json:"location"`
	ManagementLevel string   `json:"management_level"`
}
