// Package quota maps a user profile to the reserved-seat categories the user
// may plausibly claim. Detection is profile-only: it never consults historical
// merit data and never confirms eligibility.
package quota

import (
	"strings"

	"github.com/humna-mustafa/PakUni-sub008/internal/models"
)

// Well-known quota identifiers
const (
	QuotaOpen        = "open"
	QuotaWomen       = "women"
	QuotaRural       = "rural_district"
	QuotaBalochistan = "balochistan"
	QuotaKPK         = "kpk"
	QuotaSindh       = "sindh_rural"
	QuotaHafiz       = "hafiz_quran"
	QuotaSports      = "sports"
	QuotaDisabled    = "disabled"
	QuotaFauji       = "armed_forces"
	QuotaOverseas    = "overseas_pakistani"
)

// provinceQuotas maps a home province to its provincial quota identifier
var provinceQuotas = map[string]string{
	"balochistan":        QuotaBalochistan,
	"khyber pakhtunkhwa": QuotaKPK,
	"kpk":                QuotaKPK,
	"sindh":              QuotaSindh,
}

// Detector evaluates quota eligibility rules against user profiles
type Detector struct {
	categories     map[string]models.QuotaCategory
	ruralDistricts map[string]bool
}

// NewDetector builds a detector over the given category table and the set of
// historically under-represented districts
func NewDetector(categories []models.QuotaCategory, ruralDistricts []string) *Detector {
	catIndex := make(map[string]models.QuotaCategory, len(categories))
	for _, c := range categories {
		catIndex[c.ID] = c
	}
	districts := make(map[string]bool, len(ruralDistricts))
	for _, d := range ruralDistricts {
		districts[strings.ToLower(strings.TrimSpace(d))] = true
	}
	return &Detector{categories: catIndex, ruralDistricts: districts}
}

// Detect returns the quota identifiers the profile may plausibly claim.
// The open category is always included, even for a nil profile. Each rule is
// independent; any subset may fire. Unrecognized values are ignored.
func (d *Detector) Detect(profile *models.QuotaProfile) []string {
	quotas := []string{QuotaOpen}
	if profile == nil {
		return quotas
	}

	if strings.EqualFold(strings.TrimSpace(profile.Gender), "female") {
		quotas = append(quotas, QuotaWomen)
	}

	if d.ruralDistricts[strings.ToLower(strings.TrimSpace(profile.Region))] {
		quotas = append(quotas, QuotaRural)
	}

	if q, ok := provinceQuotas[strings.ToLower(strings.TrimSpace(profile.Province))]; ok {
		quotas = append(quotas, q)
	}

	if profile.HafizQuran {
		quotas = append(quotas, QuotaHafiz)
	}
	if profile.SportsPlayer {
		quotas = append(quotas, QuotaSports)
	}
	if profile.Disabled {
		quotas = append(quotas, QuotaDisabled)
	}
	if profile.ArmedForces {
		quotas = append(quotas, QuotaFauji)
	}
	if profile.OverseasPak {
		quotas = append(quotas, QuotaOverseas)
	}

	return quotas
}

// Category returns the category descriptor for a quota identifier
func (d *Detector) Category(id string) (models.QuotaCategory, bool) {
	c, ok := d.categories[id]
	return c, ok
}

// Label returns the display label for a quota identifier, falling back to the
// identifier itself when the category table has no entry
func (d *Detector) Label(id string) string {
	if c, ok := d.categories[id]; ok {
		return c.Label
	}
	return id
}

// DefaultCategories returns the built-in reserved-seat category table
func DefaultCategories() []models.QuotaCategory {
	return []models.QuotaCategory{
		{ID: QuotaOpen, Label: "Open Merit", MeritReduction: 0, Criteria: "No special eligibility required"},
		{ID: QuotaWomen, Label: "Women Reserved Seats", MeritReduction: 3, Criteria: "Female applicants"},
		{ID: QuotaRural, Label: "Under-represented Districts", MeritReduction: 8, Criteria: "Domicile of a listed rural district"},
		{ID: QuotaBalochistan, Label: "Balochistan Quota", MeritReduction: 10, Criteria: "Domicile of Balochistan"},
		{ID: QuotaKPK, Label: "KPK / FATA Quota", MeritReduction: 8, Criteria: "Domicile of Khyber Pakhtunkhwa or merged districts"},
		{ID: QuotaSindh, Label: "Sindh Rural Quota", MeritReduction: 6, Criteria: "Rural domicile of Sindh"},
		{ID: QuotaHafiz, Label: "Hafiz-e-Quran", MeritReduction: -2, Criteria: "Certified Hafiz-e-Quran (bonus marks rather than a separate list at most institutions)"},
		{ID: QuotaSports, Label: "Sports Quota", MeritReduction: 12, Criteria: "Documented divisional or national sports achievement"},
		{ID: QuotaDisabled, Label: "Disabled Persons Quota", MeritReduction: 10, Criteria: "Registered disability certificate"},
		{ID: QuotaFauji, Label: "Armed Forces Quota", MeritReduction: 5, Criteria: "Serving or retired armed-forces personnel and dependents"},
		{ID: QuotaOverseas, Label: "Overseas Pakistani Quota", MeritReduction: 7, Criteria: "Overseas Pakistani or dual national"},
	}
}

// DefaultRuralDistricts returns the built-in list of historically
// under-represented districts used by the regional quota rule
func DefaultRuralDistricts() []string {
	return []string{
		"tharparkar", "umerkot", "badin", "thatta", "sujawal",
		"dera bugti", "kohlu", "awaran", "kharan", "washuk", "chagai",
		"zhob", "sherani", "musakhel", "barkhan",
		"upper dir", "kohistan", "shangla", "torghar", "battagram",
		"north waziristan", "south waziristan", "kurram", "orakzai", "bajaur",
		"rajanpur", "muzaffargarh", "dera ghazi khan",
	}
}
