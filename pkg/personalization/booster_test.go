package personalization

import (
	"testing"

	"intent-search-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func result(name, brand string, score float64) store.RankedProduct {
	return store.RankedProduct{Product: store.Product{
		Name:           name,
		Brand:          brand,
		RelevanceScore: score,
	}}
}

func names(results []store.RankedProduct) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Name
	}
	return out
}

func TestBoostPreferredBrands(t *testing.T) {
	t.Run("preferred brand moves up", func(t *testing.T) {
		results := []store.RankedProduct{
			result("Bose QC45", "Bose", 0.90),
			result("Anker Q30", "Anker", 0.85),
			result("Sony XM5", "Sony", 0.80),
		}

		boosted := BoostPreferredBrands(results, []string{"Sony"})

		assert.Equal(t, []string{"Sony XM5", "Bose QC45", "Anker Q30"}, names(boosted))
		assert.InDelta(t, 0.80*BrandBoost, boosted[0].RelevanceScore, 1e-9)
		// Non-preferred scores untouched
		assert.Equal(t, 0.90, boosted[1].RelevanceScore)
	})

	t.Run("boost cannot demote a product", func(t *testing.T) {
		results := []store.RankedProduct{
			result("Sony XM5", "Sony", 0.90),
			result("Bose QC45", "Bose", 0.50),
		}

		boosted := BoostPreferredBrands(results, []string{"Sony"})

		assert.Equal(t, []string{"Sony XM5", "Bose QC45"}, names(boosted))
	})

	t.Run("stable order for equal scores", func(t *testing.T) {
		results := []store.RankedProduct{
			result("First", "A", 0.80),
			result("Second", "B", 0.80),
			result("Third", "C", 0.80),
		}

		boosted := BoostPreferredBrands(results, []string{"Nokia"})

		assert.Equal(t, []string{"First", "Second", "Third"}, names(boosted))
	})

	t.Run("no preferred brands is a no-op", func(t *testing.T) {
		results := []store.RankedProduct{result("A", "X", 0.5)}

		assert.Equal(t, results, BoostPreferredBrands(results, nil))
	})

	t.Run("empty results", func(t *testing.T) {
		assert.Empty(t, BoostPreferredBrands(nil, []string{"Sony"}))
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		results := []store.RankedProduct{
			result("Anker Q30", "Anker", 0.85),
			result("Sony XM5", "Sony", 0.80),
		}

		_ = BoostPreferredBrands(results, []string{"Sony"})

		assert.Equal(t, "Anker Q30", results[0].Name)
		assert.Equal(t, 0.80, results[1].RelevanceScore)
	})
}
