// Package history estimates admission chances by comparing a computed merit
// aggregate against recent historical closing-merit records.
package history

import (
	"math"
	"sort"
	"strings"

	"github.com/humna-mustafa/PakUni-sub008/internal/models"
)

// lookbackYears is the trailing window of admission cycles considered
const lookbackYears = 3

// NeutralScore is returned when no historical data exists for a candidate
const NeutralScore = 50.0

// MatchResult is the outcome of matching one institution against history
type MatchResult struct {
	Score        float64                   // 0-100, trend-adjusted
	Chance       models.ChanceLevel        // unknown when no data
	Trend        models.Trend              // unknown when no data
	Insight      *models.MeritInsight      // nil when no data
	QuotaOptions []models.QuotaOpportunity // reserved lists the user might clear
}

// Matcher indexes historical merit records for fast per-institution lookup
type Matcher struct {
	byInstitution map[string][]models.HistoricalMeritRecord
	currentYear   int
}

// NewMatcher builds a matcher over append-only historical records. currentYear
// anchors the trailing lookback window.
func NewMatcher(records []models.HistoricalMeritRecord, currentYear int) *Matcher {
	byInstitution := make(map[string][]models.HistoricalMeritRecord)
	for _, r := range records {
		key := strings.ToLower(r.InstitutionID)
		byInstitution[key] = append(byInstitution[key], r)
	}
	// Oldest first within each institution so window scans are ordered
	for _, recs := range byInstitution {
		sort.SliceStable(recs, func(i, j int) bool { return recs[i].Year < recs[j].Year })
	}
	return &Matcher{byInstitution: byInstitution, currentYear: currentYear}
}

// Query scopes a historical match
type Query struct {
	InstitutionID   string
	ProgramKeywords []string       // substring matched, empty matches all
	Session         models.Session // empty or both matches all
	Aggregate       float64
	UserQuotas      []string // plausible quota IDs from the detector
}

// Match runs the full historical comparison for one institution. It never
// fails: absent data yields a neutral result, not an error.
func (m *Matcher) Match(q Query) MatchResult {
	all := m.byInstitution[strings.ToLower(q.InstitutionID)]

	var open, reserved, selfFinance []models.HistoricalMeritRecord
	for _, r := range all {
		if !m.inWindow(r.Year) || !sessionMatches(r.Session, q.Session) || !keywordsMatch(r.Program, q.ProgramKeywords) {
			continue
		}
		switch r.Category {
		case models.MeritListOpen:
			open = append(open, r)
		case models.MeritListReserved:
			reserved = append(reserved, r)
		case models.MeritListSelfFinance:
			selfFinance = append(selfFinance, r)
		}
	}

	if len(open) == 0 {
		return MatchResult{
			Score:        NeutralScore,
			Chance:       models.ChanceUnknown,
			Trend:        models.TrendUnknown,
			QuotaOptions: m.quotaOpportunities(reserved, q),
		}
	}

	latest := open[len(open)-1]
	oldest := open[0]

	gap := q.Aggregate - latest.ClosingMerit
	chance := ChanceFromGap(gap)
	trend := trendFrom(oldest.ClosingMerit, latest.ClosingMerit)
	score := scoreFor(chance, trend)

	insight := &models.MeritInsight{
		ClosingMerit: latest.ClosingMerit,
		Year:         latest.Year,
		UserMerit:    q.Aggregate,
		Gap:          gap,
		Chance:       chance,
		Trend:        trend,
	}
	if sf := latestRecord(selfFinance); sf != nil {
		insight.SelfFinanceMerit = sf.ClosingMerit
	}

	return MatchResult{
		Score:        score,
		Chance:       chance,
		Trend:        trend,
		Insight:      insight,
		QuotaOptions: m.quotaOpportunities(reserved, q),
	}
}

// ChanceFromGap buckets the distance between a user aggregate and the
// authoritative closing merit. A gap of exactly zero is still "good".
func ChanceFromGap(gap float64) models.ChanceLevel {
	switch {
	case gap >= 5:
		return models.ChanceExcellent
	case gap >= 0:
		return models.ChanceGood
	case gap >= -3:
		return models.ChanceModerate
	case gap >= -8:
		return models.ChanceLow
	default:
		return models.ChanceVeryLow
	}
}

// trendFrom compares the oldest and newest closing merits in the window
func trendFrom(oldest, newest float64) models.Trend {
	change := newest - oldest
	switch {
	case change > 2:
		return models.TrendRising
	case change < -2:
		return models.TrendFalling
	default:
		return models.TrendStable
	}
}

// scoreFor maps a chance level to 0-100 and nudges it for the merit trend:
// a falling cutoff eases the estimate, a rising one tightens it.
func scoreFor(chance models.ChanceLevel, trend models.Trend) float64 {
	var base float64
	switch chance {
	case models.ChanceExcellent:
		base = 95
	case models.ChanceGood:
		base = 80
	case models.ChanceModerate:
		base = 65
	case models.ChanceLow:
		base = 45
	default:
		base = 25
	}

	switch trend {
	case models.TrendFalling:
		base += 5
	case models.TrendRising:
		base -= 5
	}

	return math.Max(0, math.Min(100, base))
}

// quotaOpportunities scans reserved lists for the lowest bar the user might
// clear under each plausible quota
func (m *Matcher) quotaOpportunities(reserved []models.HistoricalMeritRecord, q Query) []models.QuotaOpportunity {
	if len(reserved) == 0 || len(q.UserQuotas) == 0 {
		return nil
	}

	var opportunities []models.QuotaOpportunity
	for _, quotaID := range q.UserQuotas {
		if quotaID == "open" {
			continue
		}
		best := math.Inf(1)
		for _, r := range reserved {
			if strings.EqualFold(r.QuotaType, quotaID) && r.ClosingMerit < best {
				best = r.ClosingMerit
			}
		}
		if math.IsInf(best, 1) {
			continue
		}
		gap := q.Aggregate - best
		opportunities = append(opportunities, models.QuotaOpportunity{
			QuotaID:      quotaID,
			ClosingMerit: best,
			Gap:          gap,
			Clears:       gap >= 0,
		})
	}
	return opportunities
}

// latestRecord returns the most recent record in a year-ordered slice
func latestRecord(recs []models.HistoricalMeritRecord) *models.HistoricalMeritRecord {
	if len(recs) == 0 {
		return nil
	}
	return &recs[len(recs)-1]
}

func (m *Matcher) inWindow(year int) bool {
	return year >= m.currentYear-lookbackYears && year <= m.currentYear
}

func sessionMatches(record, wanted models.Session) bool {
	if wanted == "" || wanted == models.SessionBoth {
		return true
	}
	return record == wanted || record == models.SessionBoth
}

func keywordsMatch(program string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	p := strings.ToLower(program)
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(p, kw) {
			return true
		}
	}
	return false
}
