package personalization

import (
	"sort"

	"intent-search-be/pkg/store"
)

// BrandBoost is the multiplier applied to results from a preferred brand.
const BrandBoost = 1.2

// BoostPreferredBrands multiplies the relevance score of every result whose
// brand the user prefers, then re-sorts by score descending. The sort is
// stable so results with equal scores keep their relative order; a boosted
// product can only move up.
func BoostPreferredBrands(results []store.RankedProduct, preferredBrands []string) []store.RankedProduct {
	if len(results) == 0 || len(preferredBrands) == 0 {
		return results
	}

	preferred := make(map[string]bool, len(preferredBrands))
	for _, brand := range preferredBrands {
		preferred[brand] = true
	}

	boosted := make([]store.RankedProduct, len(results))
	copy(boosted, results)

	for i := range boosted {
		if preferred[boosted[i].Brand] {
			boosted[i].RelevanceScore *= BrandBoost
		}
	}

	sort.SliceStable(boosted, func(i, j int) bool {
		return boosted[i].RelevanceScore > boosted[j].RelevanceScore
	})

	return boosted
}
