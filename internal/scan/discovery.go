package scan

import "github.com/soundbridge/opportunity-engine/internal/models"

// discoveryGenerators are the category-specific source discovery functions.
// In production these would query directories and association listings; the
// current generators return curated targets, mirroring the templated
// adapters.
var discoveryGenerators = []func() []Source{
	industryAssociationTargets,
	governmentArtsCouncilTargets,
	festivalNetworkTargets,
	rightsOrganizationTargets,
}

func industryAssociationTargets() []Source {
	return []Source{
		{
			ScanTarget: models.ScanTarget{
				Name:             "IMPALA",
				URL:              "https://www.impalamusic.org/opportunities",
				Category:         "showcase",
				Region:           "europe",
				ScanInterval:     24,
				CredibilityScore: 83,
				Organization: models.OrganizationDetails{
					Description: "European association of independent music companies.",
					Website:     "https://www.impalamusic.org",
				},
			},
			Tier: TierIndustry,
		},
		{
			ScanTarget: models.ScanTarget{
				Name:             "Music Managers Forum",
				URL:              "https://themmf.net/programmes",
				Category:         "grant",
				Region:           "europe",
				ScanInterval:     24,
				CredibilityScore: 80,
				Organization: models.OrganizationDetails{
					Description: "Professional body for music managers, running funded development programmes.",
					Website:     "https://themmf.net",
				},
			},
			Tier: TierIndustry,
		},
	}
}

func governmentArtsCouncilTargets() []Source {
	return []Source{
		{
			ScanTarget: models.ScanTarget{
				Name:             "Creative New Zealand",
				URL:              "https://creativenz.govt.nz/funding-and-support",
				Category:         "grant",
				Region:           "oceania",
				ScanInterval:     24,
				CredibilityScore: 90,
				Organization: models.OrganizationDetails{
					Description: "New Zealand's national arts development agency.",
					Website:     "https://creativenz.govt.nz",
				},
			},
			Tier: TierExtended,
		},
		{
			ScanTarget: models.ScanTarget{
				Name:             "Australia Council for the Arts",
				URL:              "https://creative.gov.au/investment-and-development/music",
				Category:         "grant",
				Region:           "oceania",
				ScanInterval:     24,
				CredibilityScore: 91,
				Organization: models.OrganizationDetails{
					Description: "Australian government arts funding and advisory body.",
					Website:     "https://creative.gov.au",
				},
			},
			Tier: TierExtended,
		},
	}
}

func festivalNetworkTargets() []Source {
	return []Source{
		{
			ScanTarget: models.ScanTarget{
				Name:             "Reeperbahn Festival",
				URL:              "https://www.reeperbahnfestival.com/en/apply",
				Category:         "festival",
				Region:           "europe",
				ScanInterval:     24,
				CredibilityScore: 86,
				Organization: models.OrganizationDetails{
					Description: "Hamburg showcase festival and conference for international acts.",
					Website:     "https://www.reeperbahnfestival.com",
				},
			},
			Tier: TierRegional,
		},
		{
			ScanTarget: models.ScanTarget{
				Name:             "Tobago Jazz Experience",
				URL:              "https://tobagojazzexperience.com/performers",
				Category:         "festival",
				Region:           "caribbean",
				ScanInterval:     24,
				CredibilityScore: 75,
				Organization: models.OrganizationDetails{
					Description: "Annual jazz festival booking regional and international performers.",
					Website:     "https://tobagojazzexperience.com",
				},
			},
			Tier: TierRegional,
		},
	}
}

func rightsOrganizationTargets() []Source {
	return []Source{
		{
			ScanTarget: models.ScanTarget{
				Name:             "SOCAN Foundation",
				URL:              "https://www.socanfoundation.ca/awards",
				Category:         "competition",
				Region:           "north_america",
				ScanInterval:     24,
				CredibilityScore: 87,
				Organization: models.OrganizationDetails{
					Description: "Canadian performing rights foundation running awards for songwriters.",
					Website:     "https://www.socanfoundation.ca",
				},
			},
			Tier: TierIndustry,
		},
	}
}
