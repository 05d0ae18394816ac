package pipeline

import (
	"context"
	"testing"

	"intent-search-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestMergeRankings(t *testing.T) {
	retrieved := []store.Product{
		{ID: "a", Name: "Product A"},
		{ID: "b", Name: "Product B"},
		{ID: "c", Name: "Product C"},
	}

	t.Run("full ranking reorders", func(t *testing.T) {
		ranked, usedLLM := mergeRankings(retrieved, `[
			{"product_id": "c", "rank": 1, "reason": "best"},
			{"product_id": "a", "rank": 2, "reason": "good"},
			{"product_id": "b", "rank": 3, "reason": "ok"}
		]`)

		assert.True(t, usedLLM)
		assert.Len(t, ranked, 3)
		assert.Equal(t, []string{"c", "a", "b"}, ids(ranked))
		assert.Equal(t, "best", ranked[0].RankReason)
	})

	t.Run("omitted products appended in retrieval order", func(t *testing.T) {
		ranked, usedLLM := mergeRankings(retrieved, `[{"product_id": "b", "rank": 1, "reason": "only one"}]`)

		assert.True(t, usedLLM)
		assert.Equal(t, []string{"b", "a", "c"}, ids(ranked))
		assert.Equal(t, 1, ranked[0].Rank)
		assert.Zero(t, ranked[1].Rank)
	})

	t.Run("unknown and duplicate ids ignored", func(t *testing.T) {
		ranked, usedLLM := mergeRankings(retrieved, `[
			{"product_id": "ghost", "rank": 1},
			{"product_id": "a", "rank": 2},
			{"product_id": "a", "rank": 3}
		]`)

		assert.True(t, usedLLM)
		assert.Equal(t, []string{"a", "b", "c"}, ids(ranked))
	})

	t.Run("ranks sorted regardless of array order", func(t *testing.T) {
		ranked, usedLLM := mergeRankings(retrieved, `[
			{"product_id": "a", "rank": 3},
			{"product_id": "b", "rank": 1},
			{"product_id": "c", "rank": 2}
		]`)

		assert.True(t, usedLLM)
		assert.Equal(t, []string{"b", "c", "a"}, ids(ranked))
	})

	t.Run("fenced json accepted", func(t *testing.T) {
		ranked, usedLLM := mergeRankings(retrieved, "```json\n[{\"product_id\": \"c\", \"rank\": 1}]\n```")

		assert.True(t, usedLLM)
		assert.Equal(t, "c", ranked[0].ID)
	})

	t.Run("garbage falls back to retrieval order", func(t *testing.T) {
		ranked, usedLLM := mergeRankings(retrieved, "sorry, I cannot rank these")

		assert.False(t, usedLLM)
		assert.Equal(t, []string{"a", "b", "c"}, ids(ranked))
	})

	t.Run("empty array counts as fallback", func(t *testing.T) {
		ranked, usedLLM := mergeRankings(retrieved, `[]`)

		assert.False(t, usedLLM)
		assert.Equal(t, []string{"a", "b", "c"}, ids(ranked))
	})
}

func TestRankResultsCapsCandidates(t *testing.T) {
	var retrieved []store.Product
	for i := 0; i < 10; i++ {
		retrieved = append(retrieved, store.Product{ID: string(rune('a' + i))})
	}

	llmMock := &mockLLM{responses: map[string]string{
		"ranking e-commerce search results": `[]`,
	}}
	cfg := DefaultConfig()
	cfg.RankingCandidates = 3
	engine := NewEngine(llmMock, nil, cfg, nil)

	state := engine.rankResults(context.Background(), SearchState{Query: "q", RetrievalResults: retrieved})

	// All retrieved products survive even though only 3 were sent for ranking
	assert.Len(t, state.RankedResults, 10)
	assert.Equal(t, RankingMethodVector, state.Metadata["ranking_method"])
}

func ids(ranked []store.RankedProduct) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.ID
	}
	return out
}
