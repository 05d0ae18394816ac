package pipeline

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	potentiallyHarmfulPattern = regexp.MustCompile(`(?i)(hack|exploit|steal|crack|illegal|script\s*kiddie)`)

	nonEcommercePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(how\s+to\s+make|recipe for|directions to|weather in|news about)`),
		regexp.MustCompile(`(?i)(what time is|when does|who is the president|sports score)`),
	}
)

var validationErrorMessages = map[string]string{
	ValidationEmptyQuery:        "I noticed your search was empty. What kind of products are you looking for?",
	ValidationQueryTooLong:      "Your search query is quite detailed. Could you try a more concise search?",
	ValidationHarmfulContent:    "I'm unable to process that type of search query. Let me help you find products instead.",
	ValidationNonEcommerceQuery: "I'm specialized in finding products. What items are you interested in shopping for?",
}

const genericValidationMessage = "I couldn't process your search. Could you try rephrasing it?"

// validateInput screens the raw query before any LLM work. Checks run in a
// fixed order and the first failure wins.
func (e *Engine) validateInput(state SearchState) SearchState {
	query := state.Query
	validationError := ""

	switch {
	case strings.TrimSpace(query) == "":
		validationError = ValidationEmptyQuery
		e.logger.Printf("[VALIDATE] Query validation failed: empty query")
	case len(query) > e.config.MaxQueryLength:
		validationError = ValidationQueryTooLong
		e.logger.Printf("[VALIDATE] Query validation failed: query too long (%d chars)", len(query))
	case potentiallyHarmfulPattern.MatchString(query):
		validationError = ValidationHarmfulContent
		e.logger.Printf("[VALIDATE] Query validation failed: potentially harmful content")
	default:
		for _, pattern := range nonEcommercePatterns {
			if pattern.MatchString(query) {
				validationError = ValidationNonEcommerceQuery
				e.logger.Printf("[VALIDATE] Query validation failed: non-ecommerce query")
				break
			}
		}
	}

	state = state.withMeta(map[string]interface{}{
		"input_validation_timestamp": time.Now().UTC(),
		"query_length":               len(query),
	})
	state.InputValidationError = validationError
	return state
}

// handleValidationError turns a validation code into a user-facing message.
func (e *Engine) handleValidationError(state SearchState) SearchState {
	message, ok := validationErrorMessages[state.InputValidationError]
	if !ok {
		message = genericValidationMessage
	}

	e.logger.Printf("[VALIDATE] Generating validation error response for: %s", state.InputValidationError)

	state.Response = message
	state.Err = fmt.Sprintf("Input validation failed: %s", state.InputValidationError)
	return state
}
