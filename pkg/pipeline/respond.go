package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"intent-search-be/pkg/store"
)

var prohibitedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(I apologize|I'm sorry|As an AI|I don't have access)`),
	regexp.MustCompile(`(?i)(cannot|can't) (provide|give|offer) (you )?(specific|exact|real)`),
}

// buildResponse generates the final answer from the ranked results, then runs
// an output-validation pass that rewrites meta-commentary or apologies out of
// the text.
func (e *Engine) buildResponse(ctx context.Context, state SearchState) SearchState {
	e.logger.Printf("[RESPOND] Building response for query: %q with intent: %s", state.Query, state.Intent)

	topResults := top(state.RankedResults, e.config.ResponseResults)
	prompt := buildResponsePrompt(state.Query, state.Intent, state.Parameters, topResults)
	fallback := fmt.Sprintf("Here are some products that match your search for '%s'.", state.Query)

	response := e.safeGenerate(ctx, prompt, fallback)
	cleaned := e.cleanResponse(ctx, response)

	e.logger.Printf("[RESPOND] Response generated: %d words", len(strings.Fields(cleaned)))

	state.Response = cleaned
	return state.withMeta(map[string]interface{}{
		"response_generation_timestamp": time.Now().UTC(),
		"response_word_count":           len(strings.Fields(cleaned)),
		"response_required_cleaning":    cleaned != response,
	})
}

// cleanResponse rewrites the response through the LLM when it contains
// prohibited meta-commentary. If the rewrite itself fails, the original text
// stands.
func (e *Engine) cleanResponse(ctx context.Context, response string) string {
	contaminated := false
	for _, pattern := range prohibitedPatterns {
		if pattern.MatchString(response) {
			contaminated = true
			break
		}
	}
	if !contaminated {
		return response
	}

	e.logger.Printf("[RESPOND] Prohibited patterns found in response, cleaning")
	return e.safeGenerate(ctx, buildCleaningPrompt(response), response)
}

// FallbackResponse produces a deterministic product listing used when LLM
// generation is unavailable entirely.
func FallbackResponse(query string, results []store.RankedProduct) string {
	if len(results) == 0 {
		return fmt.Sprintf("I found no products matching your search for '%s'.", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are some products that match your search for '%s':\n\n", query)
	for i, product := range results {
		if i >= 3 {
			break
		}
		name := product.Name
		if name == "" {
			name = "Product"
		}
		priceText := ""
		if product.Price > 0 {
			priceText = fmt.Sprintf(" - $%.2f", product.Price)
		}
		fmt.Fprintf(&b, "%d. %s%s\n", i+1, name, priceText)
	}
	return b.String()
}
