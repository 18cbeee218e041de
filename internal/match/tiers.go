package match

import "strings"

// Tier bounds. Tier 1 is the most selective; unlisted institutions default to 4.
const (
	TierTop     = 1
	TierDefault = 4
)

// TierTable maps institutions to curated quality tiers
type TierTable struct {
	byInstitution map[string]int
	members       map[int][]string // tier -> institution IDs, load order preserved
}

// NewTierTable indexes curated tier membership lists. Each institution belongs
// to exactly one tier; on duplicates the first listing wins.
func NewTierTable(tiers map[int][]string) *TierTable {
	byInstitution := make(map[string]int)
	members := make(map[int][]string, len(tiers))
	for tier := TierTop; tier <= TierDefault; tier++ {
		for _, id := range tiers[tier] {
			key := strings.ToLower(id)
			if _, seen := byInstitution[key]; seen {
				continue
			}
			byInstitution[key] = tier
			members[tier] = append(members[tier], key)
		}
	}
	return &TierTable{byInstitution: byInstitution, members: members}
}

// TierOf returns the curated tier for an institution, defaulting to tier 4
func (t *TierTable) TierOf(institutionID string) int {
	if tier, ok := t.byInstitution[strings.ToLower(institutionID)]; ok {
		return tier
	}
	return TierDefault
}

// Members returns the institution IDs listed in a tier
func (t *TierTable) Members(tier int) []string {
	return t.members[tier]
}

// AcademicTier derives the user's academic band from the computed percentage
func AcademicTier(percentage float64) int {
	switch {
	case percentage >= 90:
		return 1
	case percentage >= 75:
		return 2
	case percentage >= 60:
		return 3
	default:
		return 4
	}
}

// DefaultTiers returns the built-in curated tier membership lists
func DefaultTiers() map[int][]string {
	return map[int][]string{
		1: {"nust", "lums", "giki", "pieas", "aku", "iba_karachi"},
		2: {"fast", "uet_lahore", "comsats", "ned", "qau", "air_university", "bahria", "szabist"},
		3: {"punjab_university", "uet_taxila", "ku", "uol", "ucp", "iiui", "riphah"},
		4: {},
	}
}
