package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/humna-mustafa/PakUni-sub008/internal/history"
	"github.com/humna-mustafa/PakUni-sub008/internal/models"
	"github.com/humna-mustafa/PakUni-sub008/internal/quota"
)

const testYear = 2025

func testInstitutions() []models.Institution {
	return []models.Institution{
		{ID: "nust", ShortName: "NUST", Name: "National University of Sciences and Technology",
			City: "Islamabad", Province: "Federal", Sector: models.SectorPublic, HECRanking: 1},
		{ID: "fast", ShortName: "FAST", Name: "National University of Computer and Emerging Sciences",
			City: "Lahore", Province: "Punjab", Sector: models.SectorPrivate, HECRanking: 8},
		{ID: "comsats", ShortName: "COMSATS", Name: "COMSATS University Islamabad",
			City: "Islamabad", Province: "Federal", Sector: models.SectorPublic, HECRanking: 12},
		{ID: "uol", ShortName: "UOL", Name: "University of Lahore",
			City: "Lahore", Province: "Punjab", Sector: models.SectorPrivate},
		{ID: "lums", ShortName: "LUMS", Name: "Lahore University of Management Sciences",
			City: "Lahore", Province: "Punjab", Sector: models.SectorPrivate, HECRanking: 2},
		{ID: "giki", ShortName: "GIKI", Name: "Ghulam Ishaq Khan Institute",
			City: "Topi", Province: "Khyber Pakhtunkhwa", Sector: models.SectorPrivate, HECRanking: 4},
	}
}

func testPrograms() []models.Program {
	return []models.Program{
		{ID: "cs_bs", Field: "computer science", Title: "BS Computer Science", MinPercentage: 70,
			AvgSemesterFee: 150000, InstitutionIDs: []string{"NUST", "FAST", "comsats", "uol"}},
		{ID: "se_bs", Field: "computer science", Title: "BS Software Engineering", MinPercentage: 75,
			AvgSemesterFee: 160000, InstitutionIDs: []string{"nust", "fast", "comsats"}},
		{ID: "ds_bs", Field: "computer science", Title: "BS Data Science", MinPercentage: 72,
			AvgSemesterFee: 155000, InstitutionIDs: []string{"nust", "comsats"}},
		{ID: "mgmt_bs", Field: "business", Title: "BS Management Science", MinPercentage: 65,
			AvgSemesterFee: 400000, InstitutionIDs: []string{"LUMS"}},
		{ID: "ee_bs", Field: "engineering", Title: "BS Electrical Engineering", MinPercentage: 78,
			AvgSemesterFee: 140000, InstitutionIDs: []string{"nust", "comsats"}},
		{ID: "giki_ee", Field: "engineering", Title: "BS Engineering Sciences", MinPercentage: 88,
			AvgSemesterFee: 250000, InstitutionIDs: []string{"giki"}},
		{ID: "mbbs", Field: "medical", Title: "MBBS", MinPercentage: 60,
			AvgSemesterFee: 500000, InstitutionIDs: []string{"uol"}},
	}
}

func testHistory() []models.HistoricalMeritRecord {
	return []models.HistoricalMeritRecord{
		{InstitutionID: "nust", Program: "BS Computer Science", Year: 2023, Session: models.SessionFall,
			Category: models.MeritListOpen, ClosingMerit: 82.0},
		{InstitutionID: "nust", Program: "BS Computer Science", Year: 2024, Session: models.SessionFall,
			Category: models.MeritListOpen, ClosingMerit: 83.0},
		{InstitutionID: "nust", Program: "BS Computer Science", Year: 2024, Session: models.SessionFall,
			Category: models.MeritListReserved, QuotaType: "balochistan", ClosingMerit: 73.0},
		{InstitutionID: "comsats", Program: "BS Computer Science", Year: 2024, Session: models.SessionFall,
			Category: models.MeritListOpen, ClosingMerit: 71.0},
		// FAST and UOL carry no history: the tier-gap branch decides them
	}
}

func newTestEngine() *Engine {
	return NewEngine(
		testInstitutions(),
		testPrograms(),
		NewTierTable(DefaultTiers()),
		NewAliasIndex(DefaultAliases()),
		history.NewMatcher(testHistory(), testYear),
		quota.NewDetector(quota.DefaultCategories(), quota.DefaultRuralDistricts()),
		DefaultScoringConfig(),
	)
}

func meritOf(aggregate float64) models.MeritResult {
	return models.MeritResult{Aggregate: aggregate}
}

func findRec(t *testing.T, recs []models.Recommendation, id string) models.Recommendation {
	t.Helper()
	for _, r := range recs {
		if r.Institution.ID == id {
			return r
		}
	}
	t.Fatalf("no recommendation for %s in %d candidates", id, len(recs))
	return models.Recommendation{}
}

func hasRec(recs []models.Recommendation, id string) bool {
	for _, r := range recs {
		if r.Institution.ID == id {
			return true
		}
	}
	return false
}

func TestBuild_QualifiedAndReachBandPrograms(t *testing.T) {
	e := newTestEngine()

	criteria := models.RecommendationCriteria{
		PreferredPrograms: []string{"computer science"},
	}

	// 68%: below BS CS minimum (70) but inside the 10-point reach band
	recs := e.Build(criteria, meritOf(68))
	assert.True(t, hasRec(recs, "comsats"), "reach-band program still produces the candidate")

	// 55%: outside the band for every CS program
	recs = e.Build(criteria, meritOf(55))
	assert.False(t, hasRec(recs, "comsats"))
	assert.False(t, hasRec(recs, "fast"))
}

func TestBuild_AliasResolutionInOfferingLists(t *testing.T) {
	e := newTestEngine()

	// BS CS lists "NUST" and "FAST" in mixed case; both must resolve
	recs := e.Build(models.RecommendationCriteria{PreferredPrograms: []string{"computer science"}}, meritOf(80))
	assert.True(t, hasRec(recs, "nust"))
	assert.True(t, hasRec(recs, "fast"))
}

func TestBuild_TopBandAddsTierOnePicks(t *testing.T) {
	e := newTestEngine()

	// 91%: academic tier 1. LUMS offers no CS program but... it does not offer
	// the preferred category either, so it must NOT be added.
	recs := e.Build(models.RecommendationCriteria{PreferredPrograms: []string{"computer science"}}, meritOf(91))
	assert.False(t, hasRec(recs, "lums"))

	// With a business preference LUMS is a curated tier-1 pick
	recs = e.Build(models.RecommendationCriteria{PreferredPrograms: []string{"business"}}, meritOf(91))
	lums := findRec(t, recs, "lums")
	assert.True(t, hasReason(lums, models.ReasonProgramMatch) || hasReason(lums, models.ReasonCategoryMatch) || hasReason(lums, models.ReasonTierPick))
}

func TestBuild_MiddleBandAddsStretchTier(t *testing.T) {
	e := newTestEngine()

	// 76%: academic tier 2. GIKI's only engineering program closes at 88,
	// outside the reach band, so it can enter only as a tier-1 stretch pick.
	recs := e.Build(models.RecommendationCriteria{PreferredPrograms: []string{"engineering"}}, meritOf(76))

	require.True(t, hasRec(recs, "giki"), "tier-1 stretch entry expected for a tier-2 user")
	giki := findRec(t, recs, "giki")
	assert.True(t, hasReason(giki, models.ReasonReachStretch))
	assert.Equal(t, models.CategoryReach, giki.Category, "stretch entries without history are reach")
}

func TestBuild_TypeFilterExcludesSector(t *testing.T) {
	e := newTestEngine()

	criteria := models.RecommendationCriteria{
		PreferredPrograms: []string{"computer science"},
		InstitutionType:   models.SectorPublic,
	}
	recs := e.Build(criteria, meritOf(80))

	assert.True(t, hasRec(recs, "nust"))
	assert.False(t, hasRec(recs, "fast"), "private institution filtered out")
	assert.False(t, hasRec(recs, "uol"))
}

func hasReason(rec models.Recommendation, code models.ReasonCode) bool {
	for _, r := range rec.Reasons {
		if r.Code == code {
			return true
		}
	}
	return false
}

func TestScore_BonusLadder(t *testing.T) {
	e := newTestEngine()

	criteria := models.RecommendationCriteria{
		PreferredPrograms: []string{"BS Computer Science"},
		PreferredCities:   []string{"islamabad"},
		InstitutionType:   models.SectorPublic,
		PreferredSession:  models.SessionFall,
	}
	recs := e.Build(criteria, meritOf(85))
	nust := findRec(t, recs, "nust")

	assert.True(t, hasReason(nust, models.ReasonCityMatch))
	assert.True(t, hasReason(nust, models.ReasonProgramMatch))
	assert.True(t, hasReason(nust, models.ReasonTypeMatch))
	assert.True(t, hasReason(nust, models.ReasonSessionMatch))
	assert.True(t, hasReason(nust, models.ReasonRankedTop))
	assert.True(t, hasReason(nust, models.ReasonMeritCleared))

	// history: gap +2 vs 83 -> good(80), rising? 82->83 change 1 = stable, so 80.
	// +15 city +10 program +5 type +5 session +5 ranking = 120 -> capped
	assert.Equal(t, 100.0, nust.Score, "composite score capped at 100")
	assert.NotNil(t, nust.Fee)
	assert.Equal(t, "PKR", nust.Fee.Currency)
}

func TestScore_CategoryOnlyProgramBonus(t *testing.T) {
	e := newTestEngine()

	// "medical" names the field; no program title contains it
	recs := e.Build(models.RecommendationCriteria{PreferredPrograms: []string{"medical"}}, meritOf(80))
	uol := findRec(t, recs, "uol")

	assert.True(t, hasReason(uol, models.ReasonCategoryMatch))
	assert.False(t, hasReason(uol, models.ReasonProgramMatch))
}

func TestScore_BreadthBonus(t *testing.T) {
	e := newTestEngine()

	// NUST offers CS, SE, DS and EE; a broad preference matches more than two
	recs := e.Build(models.RecommendationCriteria{PreferredPrograms: []string{"computer science", "engineering"}}, meritOf(85))
	nust := findRec(t, recs, "nust")

	assert.Greater(t, len(nust.MatchingPrograms), 2)
	assert.True(t, hasReason(nust, models.ReasonProgramBreadth))
}

func TestCategorize_HistoricalBranch(t *testing.T) {
	e := newTestEngine()
	criteria := models.RecommendationCriteria{PreferredPrograms: []string{"computer science"}}

	// comsats closing 71: aggregate 85 -> gap 14, excellent and >= 8: safety
	recs := e.Build(criteria, meritOf(85))
	assert.Equal(t, models.CategorySafety, findRec(t, recs, "comsats").Category)

	// nust closing 83: aggregate 85 -> gap 2, good: target
	assert.Equal(t, models.CategoryTarget, findRec(t, recs, "nust").Category)

	// aggregate 74 -> nust gap -9: very_low, reach
	recs = e.Build(criteria, meritOf(74))
	assert.Equal(t, models.CategoryReach, findRec(t, recs, "nust").Category)
}

func TestCategorize_QuotaDemotesReach(t *testing.T) {
	e := newTestEngine()

	criteria := models.RecommendationCriteria{
		PreferredPrograms: []string{"computer science"},
		Quota:             &models.QuotaProfile{Province: "Balochistan"},
	}

	// aggregate 74: reach under open merit (closing 83) but clears the
	// balochistan list at 73 -> demoted to target, with the quota reason
	recs := e.Build(criteria, meritOf(74))
	nust := findRec(t, recs, "nust")

	assert.Equal(t, models.CategoryTarget, nust.Category)
	assert.True(t, hasReason(nust, models.ReasonQuotaOpportunity))
	require.NotEmpty(t, nust.QuotaOptions)
	assert.Equal(t, "balochistan", nust.QuotaOptions[0].QuotaID)
	assert.Equal(t, "Balochistan Quota", nust.QuotaOptions[0].Label)
	assert.True(t, nust.QuotaOptions[0].Clears)
}

func TestCategorize_TierGapBranch(t *testing.T) {
	e := newTestEngine()
	criteria := models.RecommendationCriteria{PreferredPrograms: []string{"computer science"}}

	// FAST (tier 2) has no history. Tier-2 user (76%): same tier -> target.
	recs := e.Build(criteria, meritOf(76))
	assert.Equal(t, models.CategoryTarget, findRec(t, recs, "fast").Category)

	// Tier-1 user (91%): FAST is one tier worse -> still target (not > 1 worse).
	recs = e.Build(criteria, meritOf(91))
	assert.Equal(t, models.CategoryTarget, findRec(t, recs, "fast").Category)

	// UOL is tier 3: two tiers worse than a tier-1 user -> safety.
	if hasRec(recs, "uol") {
		assert.Equal(t, models.CategorySafety, findRec(t, recs, "uol").Category)
	}

	// Tier-3 user (65%): FAST is numerically better -> reach.
	recs = e.Build(criteria, meritOf(65))
	if hasRec(recs, "fast") {
		assert.Equal(t, models.CategoryReach, findRec(t, recs, "fast").Category)
	}
}

func TestAcademicTier_Bands(t *testing.T) {
	testCases := []struct {
		pct      float64
		expected int
	}{
		{95, 1}, {90, 1}, {89.9, 2}, {75, 2}, {74.9, 3}, {60, 3}, {59.9, 4}, {0, 4},
	}
	for _, tc := range testCases {
		if got := AcademicTier(tc.pct); got != tc.expected {
			t.Errorf("AcademicTier(%.1f) = %d, want %d", tc.pct, got, tc.expected)
		}
	}
}

func TestTierTable_DefaultsToFour(t *testing.T) {
	table := NewTierTable(DefaultTiers())

	assert.Equal(t, 1, table.TierOf("NUST"))
	assert.Equal(t, 2, table.TierOf("fast"))
	assert.Equal(t, 3, table.TierOf("uol"))
	assert.Equal(t, 4, table.TierOf("some_new_college"))
}

func TestAliasIndex_Resolution(t *testing.T) {
	idx := NewAliasIndex(DefaultAliases())

	assert.Equal(t, "nust", idx.Resolve("NUST"))
	assert.Equal(t, "nust", idx.Resolve("National University of Sciences and Technology"))
	assert.Equal(t, "uet_lahore", idx.Resolve("UET"))
	assert.Equal(t, "fast", idx.Resolve("nuces"))
	// Unknown names resolve to themselves lowercased
	assert.Equal(t, "mystery college", idx.Resolve("Mystery College"))
}
