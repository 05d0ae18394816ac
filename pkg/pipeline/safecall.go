package pipeline

import (
	"context"
	"strings"

	"intent-search-be/pkg/llm"
)

// safeGenerate calls the LLM and falls back to defaultResponse on any error.
// Every stage goes through this wrapper so an LLM outage degrades a single
// stage instead of failing the whole search.
func (e *Engine) safeGenerate(ctx context.Context, prompt string, defaultResponse string, opts ...llm.Option) string {
	response, err := e.llmProvider.Generate(ctx, prompt, opts...)
	if err != nil {
		e.logger.Printf("[ERROR] LLM call failed: %v", err)
		return defaultResponse
	}
	return response
}

// stripJSONFence removes a surrounding ```json ... ``` fence if present.
func stripJSONFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "```json") && strings.HasSuffix(trimmed, "```") {
		return strings.TrimSpace(trimmed[7 : len(trimmed)-3])
	}
	return trimmed
}
