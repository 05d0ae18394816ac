package pipeline

import (
	"strings"

	"intent-search-be/pkg/store"
)

// Intent constants
const (
	IntentProductDiscovery = "PRODUCT_DISCOVERY"
	IntentSpecificProduct  = "SPECIFIC_PRODUCT"
	IntentAttributeSearch  = "ATTRIBUTE_SEARCH"
	IntentProblemSolution  = "PROBLEM_SOLUTION"
	IntentComparison       = "COMPARISON"
	IntentPriceBased       = "PRICE_BASED"
	IntentAvailability     = "AVAILABILITY"
)

var validIntents = map[string]bool{
	IntentProductDiscovery: true,
	IntentSpecificProduct:  true,
	IntentAttributeSearch:  true,
	IntentProblemSolution:  true,
	IntentComparison:       true,
	IntentPriceBased:       true,
	IntentAvailability:     true,
}

// Validation error codes, checked in this order (first match wins)
const (
	ValidationEmptyQuery        = "EMPTY_QUERY"
	ValidationQueryTooLong      = "QUERY_TOO_LONG"
	ValidationHarmfulContent    = "POTENTIALLY_HARMFUL_CONTENT"
	ValidationNonEcommerceQuery = "NON_ECOMMERCE_QUERY"
)

// Quality issue codes
const (
	QualityNoExactMatch     = "NO_EXACT_MATCH"
	QualityNoPriceMatch     = "NO_PRICE_MATCH"
	QualityNoInStock        = "NO_IN_STOCK"
	QualityNoAttributeMatch = "NO_ATTRIBUTE_MATCH"
)

// PriceRange holds price constraints extracted from a query.
// Min/Max are pointers so "min only" and "max only" are representable.
type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Parameters is the structured search parameter set extracted by the LLM.
// The zero value means "nothing extracted".
type Parameters struct {
	ProductType     string              `json:"product_type,omitempty"`
	SpecificProduct string              `json:"specific_product,omitempty"`
	Attributes      map[string][]string `json:"attributes,omitempty"`
	PriceRange      *PriceRange         `json:"price_range,omitempty"`
	Brands          []string            `json:"brands,omitempty"`
	Problems        []string            `json:"problems,omitempty"`
	ComparisonItems []string            `json:"comparison_items,omitempty"`
}

// Count returns the number of populated parameter fields.
func (p Parameters) Count() int {
	count := 0
	if p.ProductType != "" {
		count++
	}
	if p.SpecificProduct != "" {
		count++
	}
	if len(p.Attributes) > 0 {
		count++
	}
	if p.PriceRange != nil {
		count++
	}
	if len(p.Brands) > 0 {
		count++
	}
	if len(p.Problems) > 0 {
		count++
	}
	if len(p.ComparisonItems) > 0 {
		count++
	}
	return count
}

// Sanitize trims surrounding whitespace from every string value.
func (p Parameters) Sanitize() Parameters {
	out := p
	out.ProductType = strings.TrimSpace(p.ProductType)
	out.SpecificProduct = strings.TrimSpace(p.SpecificProduct)
	if len(p.Attributes) > 0 {
		attrs := make(map[string][]string, len(p.Attributes))
		for key, values := range p.Attributes {
			attrs[strings.TrimSpace(key)] = trimAll(values)
		}
		out.Attributes = attrs
	}
	out.Brands = trimAll(p.Brands)
	out.Problems = trimAll(p.Problems)
	out.ComparisonItems = trimAll(p.ComparisonItems)
	return out
}

func trimAll(values []string) []string {
	if values == nil {
		return nil
	}
	trimmed := make([]string, len(values))
	for i, v := range values {
		trimmed[i] = strings.TrimSpace(v)
	}
	return trimmed
}

// SearchState carries everything a query accumulates as it moves through the
// pipeline. Stages treat it as a value: copy in, overlay changes, return.
type SearchState struct {
	Query         string
	Intent        string
	Parameters    Parameters
	EnhancedQuery string

	RetrievalResults []store.Product
	RankedResults    []store.RankedProduct
	Response         string

	InputValidationError string
	Err                  string

	ConversationHistory []store.Turn
	Metadata            map[string]interface{}
}

// withMeta returns a copy of the state with the given keys overlaid onto a
// fresh metadata map. Existing keys survive; nothing is ever deleted.
func (s SearchState) withMeta(updates map[string]interface{}) SearchState {
	merged := make(map[string]interface{}, len(s.Metadata)+len(updates))
	for k, v := range s.Metadata {
		merged[k] = v
	}
	for k, v := range updates {
		merged[k] = v
	}
	s.Metadata = merged
	return s
}

func (s SearchState) metaStrings(key string) []string {
	raw, ok := s.Metadata[key]
	if !ok {
		return nil
	}
	values, _ := raw.([]string)
	return values
}
