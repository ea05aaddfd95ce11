package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/soundbridge/opportunity-engine/internal/models"
)

// SourceAdapter produces candidate opportunity records for one scan target.
// Implementations are swappable: the templated adapter is the default, the
// rss and html strategies fetch for real.
type SourceAdapter interface {
	Target() models.ScanTarget
	Fetch(ctx context.Context) ([]models.Opportunity, error)
}

// NewAdapter builds the adapter named by the source's strategy.
func NewAdapter(src Source, now func() time.Time) SourceAdapter {
	switch src.Strategy {
	case StrategyRSS:
		return NewRSSAdapter(src)
	case StrategyHTML:
		return NewHTMLAdapter(src)
	default:
		return &TemplateAdapter{src: src, now: now}
	}
}

// CategoryID maps a registry category name to its model constant.
func CategoryID(category string) int {
	switch category {
	case "grant":
		return models.CategoryGrant
	case "festival":
		return models.CategoryFestival
	case "sync_license":
		return models.CategorySyncLicense
	case "competition":
		return models.CategoryCompetition
	case "residency":
		return models.CategoryResidency
	case "showcase":
		return models.CategoryShowcase
	case "rights":
		return models.CategoryRights
	default:
		return 0
	}
}

// candidateTemplate is a pre-written opportunity shape. Titles are stable
// across scans so the dedup gate can recognize repeats; deadlines are
// offsets from scan time.
type candidateTemplate struct {
	Title        string
	Description  string
	Requirements string
	Amount       string
	DeadlineDays int
	Tags         string
	Compensation string
	Process      string
}

var templatesByCategory = map[string][]candidateTemplate{
	"grant": {
		{
			Title:        "Music Creation Grant",
			Description:  "Project funding for the creation and recording of new original work by professional musicians.",
			Requirements: "Open to professional artists with a released catalog. Project budget and timeline required.",
			Amount:       "$25,000",
			DeadlineDays: 45,
			Tags:         "grant,funding,recording,professional",
			Compensation: models.CompensationPaid,
			Process:      "Submit a project proposal, budget, and two work samples through the online portal.",
		},
		{
			Title:        "Touring Support Fund",
			Description:  "Subsidies covering travel and performance costs for artists touring outside their home market.",
			Requirements: "Confirmed tour dates at recognized venues. Management or label representation preferred.",
			Amount:       "$12,500",
			DeadlineDays: 75,
			Tags:         "grant,touring,travel,management",
			Compensation: models.CompensationPaid,
			Process:      "Apply with tour itinerary, venue confirmations, and a cost breakdown.",
		},
		{
			Title:        "Emerging Artist Development Award",
			Description:  "Seed funding and mentorship for early-career musicians building a first professional release.",
			Requirements: "Under five years of professional activity. No label requirement.",
			Amount:       "$5,000",
			DeadlineDays: 120,
			Tags:         "grant,emerging,development,mentorship",
			Compensation: models.CompensationPaid,
			Process:      "Short-form application with artist statement and demo links.",
		},
	},
	"festival": {
		{
			Title:        "Main Stage Performance Slot",
			Description:  "Paid festival performance slots for touring acts across all genres.",
			Requirements: "Live show history and a current EPK. Professional representation a plus.",
			Amount:       "$3,000",
			DeadlineDays: 60,
			Tags:         "festival,performance,live,booking",
			Compensation: models.CompensationPaid,
			Process:      "Submit EPK and live footage to the booking committee.",
		},
		{
			Title:        "Discovery Stage Open Call",
			Description:  "Showcase slots for unsigned and independent artists in front of festival audiences.",
			Requirements: "Open to all independent artists.",
			Amount:       "",
			DeadlineDays: 40,
			Tags:         "festival,showcase,independent,exposure",
			Compensation: models.CompensationExposure,
			Process:      "Open call application with two live recordings.",
		},
	},
	"sync_license": {
		{
			Title:        "Film & TV Sync Licensing Call",
			Description:  "Ongoing call for master-ready tracks to license into film, television and advertising placements.",
			Requirements: "Must own or control both master and publishing rights. Broadcast-quality mixes only.",
			Amount:       "$2,500",
			DeadlineDays: 90,
			Tags:         "sync,licensing,film,tv,publishing",
			Compensation: models.CompensationRevenueShare,
			Process:      "Upload tracks with metadata and rights declarations for catalog review.",
		},
		{
			Title:        "Brand Campaign Music Brief",
			Description:  "Commissioned tracks and existing catalog sought for an international brand campaign.",
			Requirements: "Cleared instrumentals preferred. Fast turnaround required.",
			Amount:       "$15,000",
			DeadlineDays: 21,
			Tags:         "sync,brand,advertising,commission",
			Compensation: models.CompensationPaid,
			Process:      "Respond to the brief with up to three track submissions.",
		},
	},
	"competition": {
		{
			Title:        "Songwriting Competition",
			Description:  "Annual songwriting contest with cash prizes and industry exposure across multiple genre categories.",
			Requirements: "Original songs only. One entry per category.",
			Amount:       "$10,000",
			DeadlineDays: 50,
			Tags:         "competition,songwriting,prize,exposure",
			Compensation: models.CompensationPaid,
			Process:      "Enter online with an audio file and lyric sheet per song.",
		},
		{
			Title:        "Young Composer Award",
			Description:  "Composition prize recognizing outstanding new concert and media works by composers under 30.",
			Requirements: "Age 30 or under at the deadline. Score and recording required.",
			Amount:       "$7,500",
			DeadlineDays: 100,
			Tags:         "competition,composition,award,emerging",
			Compensation: models.CompensationPaid,
			Process:      "Submit score PDF and reference recording with a short biography.",
		},
	},
	"residency": {
		{
			Title:        "International Artist Residency",
			Description:  "Funded four-week residency with studio access, accommodation and a travel stipend.",
			Requirements: "Professional practice, work plan for the residency period.",
			Amount:       "$4,000",
			DeadlineDays: 80,
			Tags:         "residency,international,studio,travel",
			Compensation: models.CompensationPaid,
			Process:      "Apply with portfolio, work plan, and two references.",
		},
	},
	"showcase": {
		{
			Title:        "Industry Showcase Application",
			Description:  "Performance showcase in front of booking agents, labels and music supervisors.",
			Requirements: "Active release schedule and live show. Management representation noted in selection.",
			Amount:       "",
			DeadlineDays: 35,
			Tags:         "showcase,industry,networking,label,management",
			Compensation: models.CompensationExposure,
			Process:      "Apply with EPK, streaming links, and recent live video.",
		},
		{
			Title:        "Export Office Delegation",
			Description:  "Join an official delegation of artists presented to international buyers at partner markets.",
			Requirements: "Export-ready acts with professional representation.",
			Amount:       "$2,000",
			DeadlineDays: 65,
			Tags:         "showcase,export,delegation,professional",
			Compensation: models.CompensationPaid,
			Process:      "Nomination form plus a one-page export strategy.",
		},
	},
	"rights": {
		{
			Title:        "Unclaimed Royalties Outreach",
			Description:  "Registration drive helping performers and rights holders claim digital performance royalties.",
			Requirements: "Recorded works distributed to digital services.",
			Amount:       "",
			DeadlineDays: 180,
			Tags:         "rights,royalties,registration,label",
			Compensation: models.CompensationRevenueShare,
			Process:      "Register catalog and performer details for royalty matching.",
		},
	},
}

// TemplateAdapter returns pre-written candidate records for its target. It
// stands in for real network discovery; deadlines are computed from scan
// time so urgency scoring stays meaningful.
type TemplateAdapter struct {
	src Source
	now func() time.Time
}

func (a *TemplateAdapter) Target() models.ScanTarget {
	return a.src.ScanTarget
}

func (a *TemplateAdapter) Fetch(ctx context.Context) ([]models.Opportunity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	templates := templatesByCategory[a.src.Category]
	if len(templates) == 0 {
		return nil, fmt.Errorf("no candidate templates for category %q", a.src.Category)
	}

	now := time.Now()
	if a.now != nil {
		now = a.now()
	}

	opps := make([]models.Opportunity, 0, len(templates))
	for _, tpl := range templates {
		opps = append(opps, models.Opportunity{
			Title:              fmt.Sprintf("%s: %s", a.src.Name, tpl.Title),
			Description:        tpl.Description,
			Source:             a.src.Name,
			URL:                a.src.URL,
			Deadline:           now.AddDate(0, 0, tpl.DeadlineDays),
			Amount:             tpl.Amount,
			Requirements:       tpl.Requirements,
			ApplicationProcess: tpl.Process,
			CredibilityScore:   a.src.CredibilityScore,
			Tags:               tpl.Tags,
			CategoryID:         CategoryID(a.src.Category),
			Location:           a.src.Region,
			CompensationType:   tpl.Compensation,
		})
	}

	return opps, nil
}
