package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"intent-search-be/pkg/store"
)

// validateQuality runs intent-specific quality rules over the ranked results.
// Rules are independent; every violated rule appends its code. Routing after
// this stage branches to the no-results or quality-issues handlers.
func (e *Engine) validateQuality(state SearchState) SearchState {
	ranked := state.RankedResults
	intent := state.Intent
	parameters := state.Parameters

	e.logger.Printf("[QUALITY] Validating results quality for intent: %s", intent)

	if len(ranked) == 0 {
		e.logger.Printf("[QUALITY] No results found")
		return state
	}

	var qualityIssues []string

	if intent == IntentSpecificProduct && parameters.SpecificProduct != "" {
		if !exactMatchFound(ranked, parameters.SpecificProduct, e.config.ExactMatchWindow) {
			qualityIssues = append(qualityIssues, QualityNoExactMatch)
			e.logger.Printf("[QUALITY] Quality issue: no exact match found for %q", parameters.SpecificProduct)
		}
	}

	if intent == IntentPriceBased && parameters.PriceRange != nil {
		pr := parameters.PriceRange
		if (pr.Min != nil || pr.Max != nil) && !priceMatchFound(ranked, pr, e.config.QualityWindow) {
			qualityIssues = append(qualityIssues, QualityNoPriceMatch)
			e.logger.Printf("[QUALITY] Quality issue: no products match price constraints")
		}
	}

	if intent == IntentAvailability {
		if !inStockFound(ranked, e.config.QualityWindow) {
			qualityIssues = append(qualityIssues, QualityNoInStock)
			e.logger.Printf("[QUALITY] Quality issue: no in-stock products found")
		}
	}

	if intent == IntentAttributeSearch && len(parameters.Attributes) > 0 {
		if !attributeMatchFound(ranked, parameters.Attributes, e.config.QualityWindow) {
			qualityIssues = append(qualityIssues, QualityNoAttributeMatch)
			e.logger.Printf("[QUALITY] Quality issue: no products match requested attributes")
		}
	}

	if len(qualityIssues) > 0 {
		e.logger.Printf("[QUALITY] Quality issues detected: %v", qualityIssues)
	} else {
		e.logger.Printf("[QUALITY] Results quality validation passed")
	}

	return state.withMeta(map[string]interface{}{
		"result_quality_issues":   qualityIssues,
		"result_count":            len(ranked),
		"quality_check_timestamp": time.Now().UTC(),
	})
}

func exactMatchFound(ranked []store.RankedProduct, specificProduct string, window int) bool {
	needle := strings.ToLower(specificProduct)
	for _, product := range top(ranked, window) {
		if strings.Contains(strings.ToLower(product.Name), needle) {
			return true
		}
	}
	return false
}

func priceMatchFound(ranked []store.RankedProduct, pr *PriceRange, window int) bool {
	for _, product := range top(ranked, window) {
		if priceInRange(product.Price, pr) {
			return true
		}
	}
	return false
}

func priceInRange(price float64, pr *PriceRange) bool {
	if pr.Min != nil && price < *pr.Min {
		return false
	}
	if pr.Max != nil && price > *pr.Max {
		return false
	}
	return true
}

func inStockFound(ranked []store.RankedProduct, window int) bool {
	for _, product := range top(ranked, window) {
		if product.InStock {
			return true
		}
	}
	return false
}

// attributeMatchFound reports whether any product in the window carries all
// requested attributes with at least one overlapping value each.
func attributeMatchFound(ranked []store.RankedProduct, requested map[string][]string, window int) bool {
	for _, product := range top(ranked, window) {
		if productMatchesAttributes(product.Attributes, requested) {
			return true
		}
	}
	return false
}

func productMatchesAttributes(productAttrs map[string]interface{}, requested map[string][]string) bool {
	for name, wantedValues := range requested {
		raw, ok := productAttrs[name]
		if !ok || raw == nil {
			return false
		}
		if !anyValueMatches(raw, wantedValues) {
			return false
		}
	}
	return true
}

func anyValueMatches(raw interface{}, wanted []string) bool {
	switch have := raw.(type) {
	case []interface{}:
		for _, w := range wanted {
			for _, h := range have {
				if s, ok := h.(string); ok && s == w {
					return true
				}
			}
		}
		return false
	case []string:
		for _, w := range wanted {
			for _, h := range have {
				if h == w {
					return true
				}
			}
		}
		return false
	default:
		// A truthy scalar counts as a match; false/empty/zero means the
		// attribute is effectively absent
		return !isFalsyScalar(raw)
	}
}

func isFalsyScalar(raw interface{}) bool {
	switch v := raw.(type) {
	case bool:
		return !v
	case string:
		return v == ""
	case float64:
		return v == 0
	case int:
		return v == 0
	default:
		return false
	}
}

func top(ranked []store.RankedProduct, n int) []store.RankedProduct {
	if len(ranked) <= n {
		return ranked
	}
	return ranked[:n]
}

// handleNoResults builds the response for a search that found nothing.
func (e *Engine) handleNoResults(ctx context.Context, state SearchState) SearchState {
	e.logger.Printf("[QUALITY] Handling no results for query: %q", state.Query)

	prompt := buildNoResultsPrompt(state.Query, state.Intent, state.Parameters)
	response := e.safeGenerate(ctx, prompt,
		"I couldn't find any products matching your search. Could you try with different terms?")

	state.Response = response
	state.Err = "NO_RESULTS_FOUND"
	return state.withMeta(map[string]interface{}{
		"no_results_handler_executed": true,
	})
}

// handleQualityIssues builds an honest response when results exist but missed
// some constraint the user cared about.
func (e *Engine) handleQualityIssues(ctx context.Context, state SearchState) SearchState {
	qualityIssues := state.metaStrings("result_quality_issues")

	e.logger.Printf("[QUALITY] Handling quality issues: %v", qualityIssues)

	topResults := top(state.RankedResults, e.config.ResponseResults)
	prompt := buildQualityIssuesPrompt(state.Query, state.Intent, qualityIssues, state.Parameters, topResults)
	response := e.safeGenerate(ctx, prompt,
		"I found some products, but they may not be exactly what you're looking for. Here are the closest matches.")

	state.Response = response
	state.Err = fmt.Sprintf("QUALITY_ISSUES: %s", strings.Join(qualityIssues, ","))
	return state.withMeta(map[string]interface{}{
		"quality_issues_handler_executed": true,
	})
}
