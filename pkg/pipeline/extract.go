package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
)

// Extraction status values recorded in metadata
const (
	ExtractionStatusSuccess        = "SUCCESS"
	ExtractionStatusJSONParseError = "JSON_PARSE_ERROR"
)

// extractParameters pulls structured search parameters out of the query via
// the LLM. Any failure (transport, malformed JSON, shape violation) degrades
// to empty parameters with the failure mode recorded in metadata.
func (e *Engine) extractParameters(ctx context.Context, state SearchState) SearchState {
	query := state.Query
	intent := state.Intent

	e.logger.Printf("[EXTRACT] Extracting parameters for query: %q with intent: %s", query, intent)

	prompt := buildExtractionPrompt(query, intent)

	var parameters Parameters
	status := ExtractionStatusSuccess

	rawText, err := e.llmProvider.Generate(ctx, prompt)
	if err != nil {
		e.logger.Printf("[ERROR] Parameter extraction failed: %v", err)
		status = fmt.Sprintf("EXTRACTION_ERROR: %v", err)
	} else {
		parameters, status = parseParameters(stripJSONFence(rawText))
		if status != ExtractionStatusSuccess {
			e.logger.Printf("[ERROR] Parameter parsing failed (%s): %s", status, rawText)
		} else {
			e.logger.Printf("[EXTRACT] Successfully extracted %d parameters", parameters.Count())
		}
	}

	state.Parameters = parameters
	return state.withMeta(map[string]interface{}{
		"parameter_extraction_status": status,
		"parameter_count":             parameters.Count(),
	})
}

// parseParameters validates the LLM output in two passes: syntactic JSON
// first, then shape and value constraints. Returns empty parameters together
// with a status describing the first failure.
func parseParameters(text string) (Parameters, string) {
	// First pass - basic JSON validation
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return Parameters{}, ExtractionStatusJSONParseError
	}

	// Second pass - shape validation against the parameter model
	var parameters Parameters
	if err := json.Unmarshal([]byte(text), &parameters); err != nil {
		return Parameters{}, fmt.Sprintf("VALIDATION_ERROR: %v", err)
	}

	if pr := parameters.PriceRange; pr != nil {
		if pr.Min != nil && *pr.Min < 0 {
			return Parameters{}, "VALIDATION_ERROR: price cannot be negative"
		}
		if pr.Max != nil && *pr.Max < 0 {
			return Parameters{}, "VALIDATION_ERROR: price cannot be negative"
		}
	}

	return parameters.Sanitize(), ExtractionStatusSuccess
}
