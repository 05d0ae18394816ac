package pipeline

import (
	"context"
	"strings"
	"time"
)

// classifyIntent asks the LLM for one of the seven intent labels. Anything
// unexpected, including an LLM failure, collapses to PRODUCT_DISCOVERY. When
// validation already failed the stage is a pass-through; routing sends the
// state to the error handler instead.
func (e *Engine) classifyIntent(ctx context.Context, state SearchState) SearchState {
	if state.InputValidationError != "" {
		e.logger.Printf("[INTENT] Skipping intent classification due to validation error")
		return state
	}

	query := state.Query
	e.logger.Printf("[INTENT] Classifying intent for query: %s", query)

	prompt := buildIntentPrompt(query)
	intent := strings.TrimSpace(e.safeGenerate(ctx, prompt, IntentProductDiscovery))

	if !validIntents[intent] {
		e.logger.Printf("[INTENT] Invalid intent received: %q, using default", intent)
		intent = IntentProductDiscovery
	}

	e.logger.Printf("[INTENT] Classified intent: %s", intent)

	// Crude length heuristic; kept as a two-level signal until real
	// confidence scores are available.
	confidence := "low"
	if len(query) > 5 {
		confidence = "high"
	}

	state.Intent = intent
	return state.withMeta(map[string]interface{}{
		"intent_classification_confidence": confidence,
		"intent_classification_timestamp":  time.Now().UTC(),
	})
}
