package pipeline

import (
	"context"
	"strings"
	"time"
)

// enhanceQuery expands the query with synonyms and implicit attributes. On
// any failure the original query is carried forward unchanged, so retrieval
// always has something to search with.
func (e *Engine) enhanceQuery(ctx context.Context, state SearchState) SearchState {
	query := state.Query

	e.logger.Printf("[ENHANCE] Enhancing query: %q with intent: %s", query, state.Intent)

	prompt := buildEnhancementPrompt(query, state.Intent, state.Parameters)
	enhanced := strings.TrimSpace(e.safeGenerate(ctx, prompt, query))
	if enhanced == "" {
		enhanced = query
	}

	e.logger.Printf("[ENHANCE] Enhanced query: %q", enhanced)

	originalLen := len(query)
	if originalLen < 1 {
		originalLen = 1
	}

	state.EnhancedQuery = enhanced
	return state.withMeta(map[string]interface{}{
		"query_enhancement_timestamp": time.Now().UTC(),
		"query_expansion_ratio":       float64(len(enhanced)) / float64(originalLen),
		"original_query_length":       len(query),
		"enhanced_query_length":       len(enhanced),
	})
}
