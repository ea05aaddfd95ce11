package match

import "strings"

// Role IDs as assigned by the external identity service.
const (
	RoleArtist        = 1
	RoleProducer      = 2
	RoleSongwriter    = 3
	RoleDJ            = 4
	RoleManagedArtist = 5
	RoleLabelArtist   = 6
)

// RoleDirectory resolves role IDs to scoring signals. The identity service
// owns roles; StaticRoles is the packaged fallback.
type RoleDirectory interface {
	KeywordsForRole(roleID int) []string
	IsManagedRole(roleID int) bool
}

var roleKeywords = map[int][]string{
	RoleArtist:        {"artist", "performance", "recording", "touring"},
	RoleProducer:      {"producer", "production", "mixing", "studio"},
	RoleSongwriter:    {"songwriter", "songwriting", "composition", "publishing"},
	RoleDJ:            {"dj", "club", "radio", "remix"},
	RoleManagedArtist: {"artist", "touring", "professional", "management"},
	RoleLabelArtist:   {"artist", "label", "release", "catalog"},
}

var managedRoles = map[int]bool{
	RoleManagedArtist: true,
	RoleLabelArtist:   true,
}

type staticRoles struct{}

// StaticRoles is the built-in role directory.
var StaticRoles RoleDirectory = staticRoles{}

func (staticRoles) KeywordsForRole(roleID int) []string {
	return roleKeywords[roleID]
}

func (staticRoles) IsManagedRole(roleID int) bool {
	return managedRoles[roleID]
}

// regionGroups clusters location tokens for proximity scoring. Matching is
// substring-based over free-text locations.
var regionGroups = map[string][]string{
	"caribbean":     {"caribbean", "trinidad", "tobago", "jamaica", "barbados", "bahamas", "port of spain", "kingston"},
	"north_america": {"north america", "usa", "united states", "canada", "new york", "los angeles", "nashville", "toronto", "miami", "austin"},
	"europe":        {"europe", "uk", "united kingdom", "london", "germany", "berlin", "hamburg", "france", "paris", "amsterdam"},
	"latin_america": {"latin america", "mexico", "brazil", "colombia", "argentina", "chile", "sao paulo", "bogota"},
	"africa":        {"africa", "nigeria", "lagos", "ghana", "accra", "south africa", "johannesburg", "kenya"},
	"oceania":       {"oceania", "australia", "sydney", "melbourne", "new zealand", "auckland"},
}

// globalTokens mark opportunities open to applicants anywhere.
var globalTokens = []string{"global", "worldwide", "international", "remote", "online", "virtual"}

// regionGroupFor returns the region group a free-text location falls into,
// or "" when none matches.
func regionGroupFor(location string) string {
	lower := strings.ToLower(location)
	if lower == "" {
		return ""
	}
	for group, tokens := range regionGroups {
		for _, token := range tokens {
			if strings.Contains(lower, token) {
				return group
			}
		}
	}
	return ""
}

func isGlobalLocation(location string) bool {
	lower := strings.ToLower(location)
	for _, token := range globalTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}
