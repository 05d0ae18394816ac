package pipeline

import (
	"testing"

	"intent-search-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func rankedProduct(name string, price float64, inStock bool, attrs map[string]interface{}) store.RankedProduct {
	return store.RankedProduct{Product: store.Product{
		Name:       name,
		Price:      price,
		InStock:    inStock,
		Attributes: attrs,
	}}
}

func float64Ptr(v float64) *float64 { return &v }

func TestValidateQuality(t *testing.T) {
	engine := NewEngine(nil, nil, DefaultConfig(), nil)

	tests := []struct {
		name       string
		state      SearchState
		wantIssues []string
	}{
		{
			name: "specific product found",
			state: SearchState{
				Intent:     IntentSpecificProduct,
				Parameters: Parameters{SpecificProduct: "WH-1000XM5"},
				RankedResults: []store.RankedProduct{
					rankedProduct("Sony WH-1000XM5 Headphones", 399, true, nil),
				},
			},
			wantIssues: nil,
		},
		{
			name: "specific product missing from top window",
			state: SearchState{
				Intent:     IntentSpecificProduct,
				Parameters: Parameters{SpecificProduct: "WH-1000XM5"},
				RankedResults: []store.RankedProduct{
					rankedProduct("Bose QC45", 329, true, nil),
					rankedProduct("Anker Q30", 79, true, nil),
				},
			},
			wantIssues: []string{QualityNoExactMatch},
		},
		{
			name: "price constraint satisfied",
			state: SearchState{
				Intent:     IntentPriceBased,
				Parameters: Parameters{PriceRange: &PriceRange{Max: float64Ptr(100)}},
				RankedResults: []store.RankedProduct{
					rankedProduct("Budget Earbuds", 49, true, nil),
				},
			},
			wantIssues: nil,
		},
		{
			name: "nothing in price range",
			state: SearchState{
				Intent:     IntentPriceBased,
				Parameters: Parameters{PriceRange: &PriceRange{Max: float64Ptr(50)}},
				RankedResults: []store.RankedProduct{
					rankedProduct("Premium Headphones", 399, true, nil),
					rankedProduct("Mid Headphones", 150, true, nil),
				},
			},
			wantIssues: []string{QualityNoPriceMatch},
		},
		{
			name: "price range with nil bounds is skipped",
			state: SearchState{
				Intent:     IntentPriceBased,
				Parameters: Parameters{PriceRange: &PriceRange{}},
				RankedResults: []store.RankedProduct{
					rankedProduct("Anything", 999, true, nil),
				},
			},
			wantIssues: nil,
		},
		{
			name: "availability with everything out of stock",
			state: SearchState{
				Intent: IntentAvailability,
				RankedResults: []store.RankedProduct{
					rankedProduct("Tablet", 799, false, nil),
					rankedProduct("Reader", 149, false, nil),
				},
			},
			wantIssues: []string{QualityNoInStock},
		},
		{
			name: "attribute search with matching list value",
			state: SearchState{
				Intent:     IntentAttributeSearch,
				Parameters: Parameters{Attributes: map[string][]string{"color": {"red"}}},
				RankedResults: []store.RankedProduct{
					rankedProduct("Red Mouse", 99, true, map[string]interface{}{
						"color": []interface{}{"red", "black"},
					}),
				},
			},
			wantIssues: nil,
		},
		{
			name: "attribute search without the attribute",
			state: SearchState{
				Intent:     IntentAttributeSearch,
				Parameters: Parameters{Attributes: map[string][]string{"color": {"red"}}},
				RankedResults: []store.RankedProduct{
					rankedProduct("Mouse", 99, true, map[string]interface{}{
						"connectivity": "bluetooth",
					}),
				},
			},
			wantIssues: []string{QualityNoAttributeMatch},
		},
		{
			name: "scalar attribute value counts as a match",
			state: SearchState{
				Intent:     IntentAttributeSearch,
				Parameters: Parameters{Attributes: map[string][]string{"waterproof": {"yes"}}},
				RankedResults: []store.RankedProduct{
					rankedProduct("E-Reader", 149, true, map[string]interface{}{
						"waterproof": true,
					}),
				},
			},
			wantIssues: nil,
		},
		{
			name: "false scalar attribute counts as absent",
			state: SearchState{
				Intent:     IntentAttributeSearch,
				Parameters: Parameters{Attributes: map[string][]string{"waterproof": {"yes"}}},
				RankedResults: []store.RankedProduct{
					rankedProduct("Tablet", 799, true, map[string]interface{}{
						"waterproof": false,
					}),
				},
			},
			wantIssues: []string{QualityNoAttributeMatch},
		},
		{
			name: "empty string attribute counts as absent",
			state: SearchState{
				Intent:     IntentAttributeSearch,
				Parameters: Parameters{Attributes: map[string][]string{"color": {"red"}}},
				RankedResults: []store.RankedProduct{
					rankedProduct("Mouse", 99, true, map[string]interface{}{
						"color": "",
					}),
				},
			},
			wantIssues: []string{QualityNoAttributeMatch},
		},
		{
			name: "discovery intent has no rules",
			state: SearchState{
				Intent: IntentProductDiscovery,
				RankedResults: []store.RankedProduct{
					rankedProduct("Anything", 1, false, nil),
				},
			},
			wantIssues: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := engine.validateQuality(tt.state)

			var issues []string
			if raw, ok := out.Metadata["result_quality_issues"]; ok {
				issues = raw.([]string)
			}
			assert.Equal(t, tt.wantIssues, issues)
			assert.Equal(t, len(tt.state.RankedResults), out.Metadata["result_count"])
		})
	}
}

func TestValidateQualityEmptyResultsSkipsRules(t *testing.T) {
	engine := NewEngine(nil, nil, DefaultConfig(), nil)

	out := engine.validateQuality(SearchState{Intent: IntentAvailability})
	assert.NotContains(t, out.Metadata, "result_quality_issues")
}

func TestExactMatchWindow(t *testing.T) {
	// The match sits at index 3, outside a window of 3
	ranked := []store.RankedProduct{
		rankedProduct("A", 1, true, nil),
		rankedProduct("B", 1, true, nil),
		rankedProduct("C", 1, true, nil),
		rankedProduct("Target Thing", 1, true, nil),
	}

	assert.False(t, exactMatchFound(ranked, "target", 3))
	assert.True(t, exactMatchFound(ranked, "target", 4))
}

func TestPriceInRange(t *testing.T) {
	pr := &PriceRange{Min: float64Ptr(50), Max: float64Ptr(150)}

	assert.True(t, priceInRange(100, pr))
	assert.True(t, priceInRange(50, pr))
	assert.True(t, priceInRange(150, pr))
	assert.False(t, priceInRange(49.99, pr))
	assert.False(t, priceInRange(150.01, pr))
}
