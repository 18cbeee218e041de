// Package aggregate combines normalized score percentages with institution
// formula weights into a single merit aggregate with a contribution breakdown.
package aggregate

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/humna-mustafa/PakUni-sub008/internal/formula"
	"github.com/humna-mustafa/PakUni-sub008/internal/models"
	"github.com/humna-mustafa/PakUni-sub008/internal/normalize"
)

// Calculator computes merit aggregates against resolved formulas
type Calculator struct {
	resolver *formula.Resolver
	tests    *normalize.TestRegistry
}

// NewCalculator creates a merit aggregate calculator
func NewCalculator(resolver *formula.Resolver, tests *normalize.TestRegistry) *Calculator {
	return &Calculator{resolver: resolver, tests: tests}
}

// Calculate computes the merit aggregate for one input. It never fails: a
// formula that requires a missing test score is silently replaced by the
// test-absent default, and all lookups fall back to defined defaults.
//
// The flat eligibility bonus is additive and deliberately uncapped, so the
// aggregate may exceed 100. Downstream consumers compare the uncapped value
// against historical closing merits.
func (c *Calculator) Calculate(input models.MeritInput) models.MeritResult {
	f := c.resolver.Resolve(input.InstitutionID)

	matricPct := normalize.Percentage(input.MatricObtained, input.MatricTotal)
	interPct := normalize.Percentage(input.InterObtained, input.InterTotal)

	testPct := 0.0
	if input.HasTestScore {
		testPct = c.tests.TestPercentage(input.TestObtained, input.TestTotal, f.EntryTestID)
	}

	usedFallback := false
	if f.RequiresTest() && !input.HasTestScore {
		f = formula.DefaultWithoutTest()
		usedFallback = true
		log.Debug().
			Str("institution", input.InstitutionID).
			Msg("no entry test score supplied, substituting test-absent formula")
	}

	breakdown := models.ContributionBreakdown{
		Matric: matricPct * f.MatricWeight,
		Inter:  interPct * f.InterWeight,
		Test:   testPct * f.TestWeight,
	}
	if input.HafizQuran && f.HafizBonus > 0 {
		breakdown.Bonus = f.HafizBonus
	}

	agg := breakdown.Matric + breakdown.Inter + breakdown.Test + breakdown.Bonus

	result := models.MeritResult{
		Aggregate:    agg,
		MatricPct:    matricPct,
		InterPct:     interPct,
		TestPct:      testPct,
		Breakdown:    breakdown,
		Formula:      f.Description,
		Chance:       GenericChance(agg),
		UsedFallback: usedFallback,
	}

	if input.QuotaType != "" {
		result.QuotaNote = fmt.Sprintf("reserved-seat lists for %q typically close below the open merit", input.QuotaType)
	}

	return result
}

// GenericChance buckets an aggregate without consulting historical data.
// The history matcher computes a separate, data-driven chance level.
func GenericChance(aggregate float64) models.ChanceLevel {
	switch {
	case aggregate >= 90:
		return models.ChanceExcellent
	case aggregate >= 80:
		return models.ChanceGood
	case aggregate >= 70:
		return models.ChanceModerate
	case aggregate >= 60:
		return models.ChanceLow
	default:
		return models.ChanceVeryLow
	}
}
