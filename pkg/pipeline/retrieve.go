package pipeline

import (
	"context"
	"fmt"
	"time"

	"intent-search-be/pkg/store"
)

// retrieveResults runs the nearest-neighbor search against the vector store
// using the enhanced query (or the original one if enhancement produced
// nothing). A failed or empty search yields an empty slice plus diagnostics,
// never an abort.
func (e *Engine) retrieveResults(ctx context.Context, state SearchState) SearchState {
	query := state.EnhancedQuery
	if query == "" {
		query = state.Query
	}

	e.logger.Printf("[RETRIEVE] Performing vector search with query: %s", query)

	results, err := e.retriever.Search(ctx, query, e.config.RetrievalK)
	if err != nil {
		e.logger.Printf("[ERROR] Vector search failed: %v", err)
		state.RetrievalResults = []store.Product{}
		state.Err = fmt.Sprintf("Vector search failed: %v", err)
		return state.withMeta(map[string]interface{}{
			"vector_search_error": err.Error(),
		})
	}

	e.logger.Printf("[RETRIEVE] Vector search found %d results", len(results))

	updates := map[string]interface{}{
		"vector_search_timestamp":    time.Now().UTC(),
		"vector_search_result_count": len(results),
	}
	if len(results) == 0 {
		updates["no_results_found"] = true
		e.logger.Printf("[RETRIEVE] No results found for vector search")
	}

	state.RetrievalResults = results
	return state.withMeta(updates)
}
