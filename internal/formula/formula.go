// Package formula resolves institution-specific weighted admission formulas.
// Resolution is a pure lookup and is total: an unknown institution falls back
// to one of two sentinel defaults, never to nil.
package formula

import (
	"strings"

	"github.com/humna-mustafa/PakUni-sub008/internal/models"
)

// Sentinel institution identifiers for the two default formulas
const (
	DefaultWithTestID    = "_default_with_test"
	DefaultWithoutTestID = "_default_without_test"
)

// DefaultWithTest is used when no institution-specific formula exists and a
// test score is available: matric 10%, intermediate 40%, entry test 50%.
func DefaultWithTest() models.MeritFormula {
	return models.MeritFormula{
		InstitutionID: DefaultWithTestID,
		MatricWeight:  0.10,
		InterWeight:   0.40,
		TestWeight:    0.50,
		Description:   "Matric 10% + Intermediate 40% + Entry Test 50%",
	}
}

// DefaultWithoutTest is the formula substituted when a required test score is
// missing: matric 20%, intermediate 80%.
func DefaultWithoutTest() models.MeritFormula {
	return models.MeritFormula{
		InstitutionID: DefaultWithoutTestID,
		MatricWeight:  0.20,
		InterWeight:   0.80,
		TestWeight:    0,
		Description:   "Matric 20% + Intermediate 80% (no entry test)",
	}
}

// Resolver maps institution identifiers to merit formulas
type Resolver struct {
	byInstitution map[string]models.MeritFormula
}

// NewResolver indexes formulas by lowercased institution identifier.
// Later duplicates win, matching dataset override order.
func NewResolver(formulas []models.MeritFormula) *Resolver {
	byInstitution := make(map[string]models.MeritFormula, len(formulas))
	for _, f := range formulas {
		byInstitution[strings.ToLower(f.InstitutionID)] = f
	}
	return &Resolver{byInstitution: byInstitution}
}

// Resolve returns the formula for an institution, case-insensitively. When no
// institution-specific formula exists it returns the test-present default.
func (r *Resolver) Resolve(institutionID string) models.MeritFormula {
	if f, ok := r.byInstitution[strings.ToLower(strings.TrimSpace(institutionID))]; ok {
		return f
	}
	return DefaultWithTest()
}

// Known reports whether an institution has its own formula
func (r *Resolver) Known(institutionID string) bool {
	_, ok := r.byInstitution[strings.ToLower(strings.TrimSpace(institutionID))]
	return ok
}

// Len returns the number of institution-specific formulas loaded
func (r *Resolver) Len() int {
	return len(r.byInstitution)
}
