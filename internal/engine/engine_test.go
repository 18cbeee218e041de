package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/humna-mustafa/PakUni-sub008/internal/models"
	"github.com/humna-mustafa/PakUni-sub008/internal/refdata"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	snap, err := refdata.LoadDefault()
	require.NoError(t, err)
	return New(snap)
}

func TestCalculateMerit_EndToEnd(t *testing.T) {
	e := newTestEngine(t)

	result := e.CalculateMerit(models.MeritInput{
		MatricObtained: 950, MatricTotal: 1100,
		InterObtained: 850, InterTotal: 1100,
		TestObtained: 150, HasTestScore: true,
		InstitutionID: "nust",
	})

	assert.InDelta(t, 76.48, result.Aggregate, 0.01)
	assert.Equal(t, models.ChanceModerate, result.Chance)
}

func TestRecommend_OrderedOutput(t *testing.T) {
	e := newTestEngine(t)

	criteria := models.RecommendationCriteria{
		MeritInput: models.MeritInput{
			MatricObtained: 990, MatricTotal: 1100,
			InterObtained: 930, InterTotal: 1100,
			TestObtained: 160, HasTestScore: true,
			InstitutionID: "nust",
		},
		PreferredPrograms: []string{"computer science"},
		PreferredCities:   []string{"Islamabad"},
	}

	recs, merit := e.Recommend(criteria)
	require.NotEmpty(t, recs)
	assert.Greater(t, merit.Aggregate, 0.0)

	// Output respects the total order: category precedence, then score
	catRank := map[models.Category]int{
		models.CategoryTarget: 0, models.CategorySafety: 1, models.CategoryReach: 2,
	}
	for i := 1; i < len(recs); i++ {
		prev, cur := recs[i-1], recs[i]
		if catRank[prev.Category] > catRank[cur.Category] {
			t.Fatalf("category order violated at %d: %s before %s", i, prev.Category, cur.Category)
		}
		if prev.Category == cur.Category && prev.Score < cur.Score {
			t.Fatalf("score order violated at %d: %.1f before %.1f", i, prev.Score, cur.Score)
		}
	}

	// Every recommendation carries exactly one category and a bounded score
	for _, r := range recs {
		assert.Contains(t, []models.Category{models.CategorySafety, models.CategoryTarget, models.CategoryReach}, r.Category)
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 100.0)
		assert.GreaterOrEqual(t, r.Tier, 1)
		assert.LessOrEqual(t, r.Tier, 4)
	}
}

func TestRecommend_ByteIdenticalReruns(t *testing.T) {
	e := newTestEngine(t)

	criteria := models.RecommendationCriteria{
		MeritInput: models.MeritInput{
			MatricObtained: 900, MatricTotal: 1100,
			InterObtained: 880, InterTotal: 1100,
			TestObtained: 140, HasTestScore: true,
		},
		PreferredPrograms: []string{"engineering"},
		PreferredSession:  models.SessionFall,
	}

	first, _ := e.Recommend(criteria)
	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, _ := e.Recommend(criteria)
		againJSON, err := json.Marshal(again)
		require.NoError(t, err)
		assert.Equal(t, string(firstJSON), string(againJSON), "rerun %d differs", i)
	}
}

func TestRecommend_QuotaProfileSurfacesOpportunities(t *testing.T) {
	e := newTestEngine(t)

	criteria := models.RecommendationCriteria{
		MeritInput: models.MeritInput{
			MatricObtained: 900, MatricTotal: 1100,
			InterObtained: 870, InterTotal: 1100,
			TestObtained: 130, HasTestScore: true,
			InstitutionID: "nust",
		},
		PreferredPrograms: []string{"computer science"},
		Quota:             &models.QuotaProfile{Province: "Balochistan"},
	}

	recs, _ := e.Recommend(criteria)
	require.NotEmpty(t, recs)

	var sawQuota bool
	for _, r := range recs {
		for _, opp := range r.QuotaOptions {
			if opp.QuotaID == "balochistan" {
				sawQuota = true
				assert.NotEmpty(t, opp.Label)
			}
		}
	}
	assert.True(t, sawQuota, "balochistan reserved lists exist in the default dataset")
}

func TestReload_AtomicSwap(t *testing.T) {
	e := newTestEngine(t)
	before := e.Snapshot()

	fresh, err := refdata.LoadDefault()
	require.NoError(t, err)
	fresh.Version = "swapped"

	e.Reload(fresh)

	assert.Equal(t, "swapped", e.Snapshot().Version)
	assert.NotEqual(t, before.Version, e.Snapshot().Version)

	// The engine still serves correct results after the swap
	result := e.CalculateMerit(models.MeritInput{
		MatricObtained: 950, MatricTotal: 1100,
		InterObtained: 850, InterTotal: 1100,
		TestObtained: 150, HasTestScore: true,
		InstitutionID: "nust",
	})
	assert.InDelta(t, 76.48, result.Aggregate, 0.01)
}
