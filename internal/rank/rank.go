// Package rank imposes the final deterministic total order over scored
// recommendations.
package rank

import (
	"sort"

	"github.com/humna-mustafa/PakUni-sub008/internal/models"
)

// categoryPriority orders categories most-preferred first: targets lead,
// safeties back them up, reaches close the list
var categoryPriority = map[models.Category]int{
	models.CategoryTarget: 0,
	models.CategorySafety: 1,
	models.CategoryReach:  2,
}

// Order sorts recommendations in place into a strict total order:
// category, then score descending, then tier ascending, then institution
// name, then institution ID. Two runs over the same input produce identical
// output.
func Order(recs []models.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return Less(recs[i], recs[j])
	})
}

// Less reports whether a sorts strictly before b
func Less(a, b models.Recommendation) bool {
	if pa, pb := categoryPriority[a.Category], categoryPriority[b.Category]; pa != pb {
		return pa < pb
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Tier != b.Tier {
		return a.Tier < b.Tier
	}
	if a.Institution.Name != b.Institution.Name {
		return a.Institution.Name < b.Institution.Name
	}
	// Final tie-break keeps the order strict even for identical names
	return a.Institution.ID < b.Institution.ID
}
