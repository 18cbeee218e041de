// Package normalize converts raw (obtained, total) score pairs into 0-100
// percentages. Every function here is total: bad input yields 0, never NaN.
package normalize

import (
	"math"

	"github.com/humna-mustafa/PakUni-sub008/internal/models"
)

// Percentage converts an obtained/total pair to a percentage clamped to [0,100].
// A zero or negative total yields 0.
func Percentage(obtained, total float64) float64 {
	if total <= 0 {
		return 0
	}
	pct := obtained / total * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0
	}
	return math.Max(0, math.Min(100, pct))
}

// TestRegistry resolves total-marks scales for known entry tests
type TestRegistry struct {
	byID map[string]models.EntryTestMetadata
}

// NewTestRegistry indexes entry test metadata by identifier
func NewTestRegistry(tests []models.EntryTestMetadata) *TestRegistry {
	byID := make(map[string]models.EntryTestMetadata, len(tests))
	for _, t := range tests {
		byID[t.ID] = t
	}
	return &TestRegistry{byID: byID}
}

// TotalMarks returns the total-marks scale for a test, or 0 if unknown
func (r *TestRegistry) TotalMarks(testID string) float64 {
	if t, ok := r.byID[testID]; ok {
		return t.TotalMarks
	}
	return 0
}

// TestPercentage normalizes a raw entry-test score. An explicit total supplied
// by the caller wins over the registry scale for the given test.
func (r *TestRegistry) TestPercentage(obtained, explicitTotal float64, testID string) float64 {
	total := explicitTotal
	if total <= 0 {
		total = r.TotalMarks(testID)
	}
	return Percentage(obtained, total)
}
