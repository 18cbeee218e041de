// Package match builds and scores the candidate institution set for a
// recommendation request: preference-driven program matching supplemented by
// tier-appropriate picks, composite scoring, and safety/target/reach
// classification.
package match

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/humna-mustafa/PakUni-sub008/internal/history"
	"github.com/humna-mustafa/PakUni-sub008/internal/models"
	"github.com/humna-mustafa/PakUni-sub008/internal/quota"
)

// reachBandPoints is how far below a program's minimum percentage a user may
// sit and still see the program as a reach candidate
const reachBandPoints = 10.0

// ScoringConfig contains the additive bonuses applied on top of the
// historical base score
type ScoringConfig struct {
	CityBonus       float64 `yaml:"city_bonus"`        // +15 preferred city
	ProgramBonus    float64 `yaml:"program_bonus"`     // +10 program name match
	CategoryBonus   float64 `yaml:"category_bonus"`    // +5 matched only by category
	TypeBonus       float64 `yaml:"type_bonus"`        // +5 explicit sector preference met
	SessionBonus    float64 `yaml:"session_bonus"`     // +5 preferred session available
	RankingBonus    float64 `yaml:"ranking_bonus"`     // +5 top national/HEC ranking
	QuotaBonus      float64 `yaml:"quota_bonus"`       // +8 a reserved list the user clears
	BreadthBonus    float64 `yaml:"breadth_bonus"`     // +3 more than two matching programs
	TopRankCutoff   int     `yaml:"top_rank_cutoff"`   // HEC rank at or above which RankingBonus applies
	SafetyGapPoints float64 `yaml:"safety_gap_points"` // gap needed for a safety call with history
}

// DefaultScoringConfig returns the standard bonus table
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		CityBonus:       15,
		ProgramBonus:    10,
		CategoryBonus:   5,
		TypeBonus:       5,
		SessionBonus:    5,
		RankingBonus:    5,
		QuotaBonus:      8,
		BreadthBonus:    3,
		TopRankCutoff:   10,
		SafetyGapPoints: 8,
	}
}

// Engine builds scored, categorized candidates from immutable reference data
type Engine struct {
	institutions map[string]models.Institution
	programs     []models.Program
	tiers        *TierTable
	aliases      *AliasIndex
	history      *history.Matcher
	quotas       *quota.Detector
	config       ScoringConfig
}

// NewEngine wires the matching engine over loaded reference tables
func NewEngine(
	institutions []models.Institution,
	programs []models.Program,
	tiers *TierTable,
	aliases *AliasIndex,
	historyMatcher *history.Matcher,
	quotaDetector *quota.Detector,
	config ScoringConfig,
) *Engine {
	index := make(map[string]models.Institution, len(institutions))
	for _, inst := range institutions {
		index[strings.ToLower(inst.ID)] = inst
	}
	return &Engine{
		institutions: index,
		programs:     programs,
		tiers:        tiers,
		aliases:      aliases,
		history:      historyMatcher,
		quotas:       quotaDetector,
		config:       config,
	}
}

// candidate accumulates evidence about one institution before scoring
type candidate struct {
	institution   models.Institution
	programs      []models.Program
	nameMatched   bool // at least one program matched by name, not just category
	reachBandOnly bool // every matching program sits in the 10-point reach band
	tierPick      bool // added from the curated tier lists, not via a program
	reachStretch  bool // added as an explicit tier-above stretch entry
}

// Build constructs, scores and categorizes the candidate set. The output is
// unordered; the ranker imposes the final total order.
func (e *Engine) Build(criteria models.RecommendationCriteria, merit models.MeritResult) []models.Recommendation {
	userQuotas := e.quotas.Detect(criteria.Quota)
	academicTier := AcademicTier(merit.Aggregate)

	candidates := e.collectProgramCandidates(criteria, merit.Aggregate)
	e.supplementTierCandidates(candidates, criteria, academicTier)

	recommendations := make([]models.Recommendation, 0, len(candidates))
	for _, cand := range candidates {
		recommendations = append(recommendations, e.score(cand, criteria, merit, userQuotas, academicTier))
	}

	log.Debug().
		Int("candidates", len(recommendations)).
		Int("academic_tier", academicTier).
		Float64("aggregate", merit.Aggregate).
		Msg("candidate set built")

	return recommendations
}

// collectProgramCandidates gathers institutions offering a program the user
// qualifies for, or nearly qualifies for within the reach band
func (e *Engine) collectProgramCandidates(criteria models.RecommendationCriteria, aggregate float64) map[string]*candidate {
	candidates := make(map[string]*candidate)

	for _, program := range e.programs {
		qualifies := aggregate >= program.MinPercentage
		inReachBand := !qualifies && aggregate >= program.MinPercentage-reachBandPoints
		if !qualifies && !inReachBand {
			continue
		}

		nameMatch, categoryMatch := programPreferenceMatch(program, criteria.PreferredPrograms)
		if !nameMatch && !categoryMatch {
			continue
		}

		for _, rawID := range program.InstitutionIDs {
			id := e.aliases.Resolve(rawID)
			inst, ok := e.institutions[id]
			if !ok || !sectorAllowed(inst.Sector, criteria.InstitutionType) {
				continue
			}

			cand, exists := candidates[id]
			if !exists {
				cand = &candidate{institution: inst, reachBandOnly: true}
				candidates[id] = cand
			}
			cand.programs = append(cand.programs, program)
			if nameMatch {
				cand.nameMatched = true
			}
			if qualifies {
				cand.reachBandOnly = false
			}
		}
	}

	return candidates
}

// supplementTierCandidates adds curated institutions for the user's band: the
// top band gets every tier-1 institution, middle bands get their own tier plus
// the tier above as explicit stretch entries
func (e *Engine) supplementTierCandidates(candidates map[string]*candidate, criteria models.RecommendationCriteria, academicTier int) {
	addTier := func(tier int, stretch bool) {
		for _, id := range e.tiers.Members(tier) {
			if _, exists := candidates[id]; exists {
				continue
			}
			inst, ok := e.institutions[id]
			if !ok || !sectorAllowed(inst.Sector, criteria.InstitutionType) {
				continue
			}
			if !e.offersPreferredCategory(id, criteria.PreferredPrograms) {
				continue
			}
			candidates[id] = &candidate{
				institution:  inst,
				tierPick:     true,
				reachStretch: stretch,
			}
		}
	}

	switch academicTier {
	case 1:
		addTier(1, false)
	case 2, 3:
		addTier(academicTier, false)
		addTier(academicTier-1, true)
	}
}

// offersPreferredCategory reports whether an institution offers any program in
// the preferred category. No preference means any program counts.
func (e *Engine) offersPreferredCategory(institutionID string, preferred []string) bool {
	for _, program := range e.programs {
		for _, rawID := range program.InstitutionIDs {
			if e.aliases.Resolve(rawID) != institutionID {
				continue
			}
			if len(preferred) == 0 {
				return true
			}
			if _, categoryMatch := programPreferenceMatch(program, preferred); categoryMatch {
				return true
			}
		}
	}
	return false
}

// score computes the composite match score and category for one candidate
func (e *Engine) score(cand *candidate, criteria models.RecommendationCriteria, merit models.MeritResult, userQuotas []string, academicTier int) models.Recommendation {
	inst := cand.institution
	cfg := e.config

	hist := e.history.Match(history.Query{
		InstitutionID:   inst.ID,
		ProgramKeywords: criteria.PreferredPrograms,
		Session:         criteria.PreferredSession,
		Aggregate:       merit.Aggregate,
		UserQuotas:      userQuotas,
	})

	score := hist.Score
	var reasons []models.MatchReason

	if cityMatches(inst.City, criteria.PreferredCities) {
		score += cfg.CityBonus
		reasons = append(reasons, models.MatchReason{
			Code:   models.ReasonCityMatch,
			Params: map[string]string{"city": inst.City},
		})
	}

	if len(cand.programs) > 0 {
		if cand.nameMatched {
			score += cfg.ProgramBonus
			reasons = append(reasons, models.MatchReason{
				Code:   models.ReasonProgramMatch,
				Params: map[string]string{"program": cand.programs[0].Title},
			})
		} else {
			score += cfg.CategoryBonus
			reasons = append(reasons, models.MatchReason{
				Code:   models.ReasonCategoryMatch,
				Params: map[string]string{"field": cand.programs[0].Field},
			})
		}
	}

	if criteria.InstitutionType != "" && criteria.InstitutionType != models.Sector("both") && inst.Sector == criteria.InstitutionType {
		score += cfg.TypeBonus
		reasons = append(reasons, models.MatchReason{
			Code:   models.ReasonTypeMatch,
			Params: map[string]string{"sector": string(inst.Sector)},
		})
	}

	if sessionAvailable(criteria.PreferredSession, hist) {
		score += cfg.SessionBonus
		reasons = append(reasons, models.MatchReason{
			Code:   models.ReasonSessionMatch,
			Params: map[string]string{"session": string(criteria.PreferredSession)},
		})
	}

	if inst.HECRanking > 0 && inst.HECRanking <= cfg.TopRankCutoff {
		score += cfg.RankingBonus
		reasons = append(reasons, models.MatchReason{
			Code:   models.ReasonRankedTop,
			Params: map[string]string{"rank": fmt.Sprintf("%d", inst.HECRanking)},
		})
	}

	clearedQuota := ""
	for _, opp := range hist.QuotaOptions {
		if opp.Clears {
			clearedQuota = opp.QuotaID
			break
		}
	}
	if clearedQuota != "" {
		score += cfg.QuotaBonus // single capped contribution regardless of how many lists clear
		reasons = append(reasons, models.MatchReason{
			Code:   models.ReasonQuotaOpportunity,
			Params: map[string]string{"quota": clearedQuota},
		})
	}

	if len(cand.programs) > 2 {
		score += cfg.BreadthBonus
		reasons = append(reasons, models.MatchReason{
			Code:   models.ReasonProgramBreadth,
			Params: map[string]string{"count": fmt.Sprintf("%d", len(cand.programs))},
		})
	}

	if cand.tierPick {
		code := models.ReasonTierPick
		if cand.reachStretch {
			code = models.ReasonReachStretch
		}
		reasons = append(reasons, models.MatchReason{
			Code:   code,
			Params: map[string]string{"tier": fmt.Sprintf("%d", e.tiers.TierOf(inst.ID))},
		})
	}

	if hist.Insight != nil && hist.Insight.Gap >= 0 {
		reasons = append(reasons, models.MatchReason{
			Code:   models.ReasonMeritCleared,
			Params: map[string]string{"closing_merit": fmt.Sprintf("%.2f", hist.Insight.ClosingMerit)},
		})
	}

	score = math.Min(100, score)

	category := e.categorize(cand, hist, academicTier)

	// Fill quota labels from the category table
	for i := range hist.QuotaOptions {
		hist.QuotaOptions[i].Label = e.quotas.Label(hist.QuotaOptions[i].QuotaID)
	}

	rec := models.Recommendation{
		Institution:  inst,
		Score:        score,
		Tier:         e.tiers.TierOf(inst.ID),
		Category:     category,
		Reasons:      reasons,
		Insight:      hist.Insight,
		QuotaOptions: hist.QuotaOptions,
	}

	if len(cand.programs) > 0 {
		total := 0.0
		for _, p := range cand.programs {
			rec.MatchingPrograms = append(rec.MatchingPrograms, p.Title)
			total += p.AvgSemesterFee
		}
		rec.Fee = &models.FeeSummary{
			AvgSemesterFee: total / float64(len(cand.programs)),
			Currency:       "PKR",
		}
	}

	return rec
}

// categorize assigns safety/target/reach. The two branches deliberately stay
// separate: historical insight drives the call when it exists, the curated
// tier gap decides otherwise.
func (e *Engine) categorize(cand *candidate, hist history.MatchResult, academicTier int) models.Category {
	if hist.Insight != nil {
		category := models.CategoryTarget
		switch {
		case hist.Chance == models.ChanceLow || hist.Chance == models.ChanceVeryLow:
			category = models.CategoryReach
		case hist.Chance == models.ChanceExcellent && hist.Insight.Gap >= e.config.SafetyGapPoints:
			category = models.CategorySafety
		}

		// A reach under open merit that clears a reserved list is demoted to target
		if category == models.CategoryReach {
			for _, opp := range hist.QuotaOptions {
				if opp.Clears {
					return models.CategoryTarget
				}
			}
		}
		return category
	}

	instTier := e.tiers.TierOf(cand.institution.ID)
	switch {
	case cand.reachStretch || instTier < academicTier:
		return models.CategoryReach
	case instTier > academicTier+1:
		return models.CategorySafety
	default:
		return models.CategoryTarget
	}
}

// programPreferenceMatch reports how a program relates to the preference list.
// An empty preference list is a category match for every program.
func programPreferenceMatch(program models.Program, preferred []string) (nameMatch, categoryMatch bool) {
	if len(preferred) == 0 {
		return false, true
	}
	title := strings.ToLower(program.Title)
	field := strings.ToLower(program.Field)
	for _, pref := range preferred {
		p := strings.ToLower(strings.TrimSpace(pref))
		if p == "" {
			continue
		}
		if strings.Contains(title, p) || strings.Contains(p, title) {
			nameMatch = true
		}
		if strings.Contains(field, p) || strings.Contains(p, field) {
			categoryMatch = true
		}
	}
	return nameMatch, categoryMatch
}

func sectorAllowed(sector models.Sector, wanted models.Sector) bool {
	if wanted == "" || wanted == models.Sector("both") {
		return true
	}
	return sector == wanted
}

func cityMatches(city string, preferred []string) bool {
	for _, c := range preferred {
		if strings.EqualFold(strings.TrimSpace(c), city) {
			return true
		}
	}
	return false
}

// sessionAvailable reports whether the preferred session is confirmed by the
// historical record set (the history query already filtered on it)
func sessionAvailable(wanted models.Session, hist history.MatchResult) bool {
	if wanted == "" || wanted == models.SessionBoth {
		return false
	}
	return hist.Insight != nil
}
