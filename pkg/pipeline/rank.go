package pipeline

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"intent-search-be/pkg/store"
)

// Ranking method values recorded in metadata
const (
	RankingMethodLLM    = "llm_ranking"
	RankingMethodVector = "vector_similarity"
)

type rankingItem struct {
	ProductID string `json:"product_id"`
	Rank      int    `json:"rank"`
	Reason    string `json:"reason"`
}

// rankResults sends the top candidates to the LLM for intent-aware
// re-ranking. The ranked list always contains exactly the retrieved products:
// ranked ones first in LLM order, then any the LLM omitted in retrieval
// order. Every failure falls back to plain retrieval order.
func (e *Engine) rankResults(ctx context.Context, state SearchState) SearchState {
	retrieved := state.RetrievalResults

	e.logger.Printf("[RANK] Ranking results for query: %q with intent: %s", state.Query, state.Intent)

	if len(retrieved) == 0 {
		e.logger.Printf("[RANK] No results to rank")
		state.RankedResults = []store.RankedProduct{}
		state.Err = "No results found"
		return state
	}

	candidates := retrieved
	if len(candidates) > e.config.RankingCandidates {
		candidates = candidates[:e.config.RankingCandidates]
	}

	prompt := buildRankingPrompt(state.Query, state.Intent, state.Parameters, candidates)
	rankingText := e.safeGenerate(ctx, prompt, "[]")

	ranked, usedLLM := mergeRankings(retrieved, rankingText)
	if usedLLM {
		e.logger.Printf("[RANK] Successfully ranked %d results", len(ranked))
	} else {
		e.logger.Printf("[RANK] Falling back to vector similarity order")
	}

	method := RankingMethodVector
	if usedLLM {
		method = RankingMethodLLM
	}

	state.RankedResults = ranked
	return state.withMeta(map[string]interface{}{
		"ranking_timestamp": time.Now().UTC(),
		"ranking_method":    method,
	})
}

// mergeRankings applies the LLM ranking output to the retrieved products.
// Returns the merged list and whether the LLM ordering was actually used.
func mergeRankings(retrieved []store.Product, rankingText string) ([]store.RankedProduct, bool) {
	var rankings []rankingItem
	if err := json.Unmarshal([]byte(stripJSONFence(rankingText)), &rankings); err != nil {
		return fallbackRanking(retrieved), false
	}

	productByID := make(map[string]store.Product, len(retrieved))
	for _, p := range retrieved {
		productByID[p.ID] = p
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Rank < rankings[j].Rank
	})

	ranked := make([]store.RankedProduct, 0, len(retrieved))
	seen := make(map[string]bool, len(retrieved))

	for _, item := range rankings {
		product, ok := productByID[item.ProductID]
		if !ok || seen[item.ProductID] {
			continue
		}
		seen[item.ProductID] = true
		ranked = append(ranked, store.RankedProduct{
			Product:    product,
			Rank:       item.Rank,
			RankReason: item.Reason,
		})
	}

	// Append anything the LLM left out, preserving retrieval order
	for _, product := range retrieved {
		if !seen[product.ID] {
			ranked = append(ranked, store.RankedProduct{Product: product})
		}
	}

	return ranked, len(seen) > 0
}

func fallbackRanking(retrieved []store.Product) []store.RankedProduct {
	ranked := make([]store.RankedProduct, len(retrieved))
	for i, product := range retrieved {
		ranked[i] = store.RankedProduct{Product: product}
	}
	return ranked
}
