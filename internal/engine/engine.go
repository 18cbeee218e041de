// Package engine orchestrates the merit pipeline: normalization, formula
// resolution, aggregation, quota detection, historical matching, candidate
// scoring and final ranking. All computation is synchronous and
// side-effect-free over an immutable reference snapshot.
package engine

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/humna-mustafa/PakUni-sub008/internal/aggregate"
	"github.com/humna-mustafa/PakUni-sub008/internal/formula"
	"github.com/humna-mustafa/PakUni-sub008/internal/history"
	"github.com/humna-mustafa/PakUni-sub008/internal/match"
	"github.com/humna-mustafa/PakUni-sub008/internal/models"
	"github.com/humna-mustafa/PakUni-sub008/internal/normalize"
	"github.com/humna-mustafa/PakUni-sub008/internal/quota"
	"github.com/humna-mustafa/PakUni-sub008/internal/rank"
	"github.com/humna-mustafa/PakUni-sub008/internal/refdata"
)

// compiled holds the indexed lookup structures built from one snapshot.
// Everything here is read-only after construction.
type compiled struct {
	snapshot   *refdata.Snapshot
	calculator *aggregate.Calculator
	matcher    *match.Engine
	quotas     *quota.Detector
}

// Engine is the request-facing facade. Concurrent requests share one compiled
// snapshot; Reload swaps the pointer atomically so in-flight computations
// never observe a half-updated table.
type Engine struct {
	current atomic.Pointer[compiled]
}

// New compiles a snapshot into a ready engine
func New(snapshot *refdata.Snapshot) *Engine {
	e := &Engine{}
	e.current.Store(compile(snapshot))
	return e
}

// compile builds every index once so per-request work is pure lookup
func compile(snapshot *refdata.Snapshot) *compiled {
	resolver := formula.NewResolver(snapshot.Formulas)
	tests := normalize.NewTestRegistry(snapshot.EntryTests)
	quotas := quota.NewDetector(snapshot.QuotaCategories, snapshot.RuralDistricts)
	historyMatcher := history.NewMatcher(snapshot.History, time.Now().Year())

	matcher := match.NewEngine(
		snapshot.Institutions,
		snapshot.Programs,
		match.NewTierTable(snapshot.Tiers),
		match.NewAliasIndex(snapshot.Aliases),
		historyMatcher,
		quotas,
		match.DefaultScoringConfig(),
	)

	return &compiled{
		snapshot:   snapshot,
		calculator: aggregate.NewCalculator(resolver, tests),
		quotas:     quotas,
		matcher:    matcher,
	}
}

// CalculateMerit runs the normalization and aggregation stages for one input
func (e *Engine) CalculateMerit(input models.MeritInput) models.MeritResult {
	return e.current.Load().calculator.Calculate(input)
}

// Recommend runs the full pipeline and returns the ordered recommendation list
func (e *Engine) Recommend(criteria models.RecommendationCriteria) ([]models.Recommendation, models.MeritResult) {
	c := e.current.Load()

	merit := c.calculator.Calculate(criteria.MeritInput)
	recommendations := c.matcher.Build(criteria, merit)
	rank.Order(recommendations)

	log.Info().
		Float64("aggregate", merit.Aggregate).
		Int("recommendations", len(recommendations)).
		Msg("recommendation request served")

	return recommendations, merit
}

// Reload atomically swaps in a new reference snapshot
func (e *Engine) Reload(snapshot *refdata.Snapshot) {
	e.current.Store(compile(snapshot))
	log.Info().Str("version", snapshot.Version).Msg("reference snapshot swapped")
}

// Snapshot returns the snapshot currently in service
func (e *Engine) Snapshot() *refdata.Snapshot {
	return e.current.Load().snapshot
}
