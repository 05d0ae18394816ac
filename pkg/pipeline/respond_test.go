package pipeline

import (
	"context"
	"strings"
	"testing"

	"intent-search-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestCleanResponse(t *testing.T) {
	t.Run("clean response passes through without an LLM call", func(t *testing.T) {
		llmMock := &mockLLM{}
		engine := NewEngine(llmMock, nil, DefaultConfig(), nil)

		out := engine.cleanResponse(context.Background(), "Here are three great options for you.")

		assert.Equal(t, "Here are three great options for you.", out)
		assert.Empty(t, llmMock.calls)
	})

	t.Run("apology triggers a rewrite", func(t *testing.T) {
		llmMock := &mockLLM{responses: map[string]string{
			"Response to rewrite": "Here are the closest matches we carry.",
		}}
		engine := NewEngine(llmMock, nil, DefaultConfig(), nil)

		out := engine.cleanResponse(context.Background(), "I'm sorry, as an AI I found these.")

		assert.Equal(t, "Here are the closest matches we carry.", out)
		assert.Len(t, llmMock.calls, 1)
	})

	t.Run("failed rewrite keeps the original", func(t *testing.T) {
		llmMock := &mockLLM{} // no canned responses, every call errors
		engine := NewEngine(llmMock, nil, DefaultConfig(), nil)

		contaminated := "I apologize, but here are some options."
		out := engine.cleanResponse(context.Background(), contaminated)

		assert.Equal(t, contaminated, out)
	})
}

func TestFallbackResponse(t *testing.T) {
	t.Run("no results", func(t *testing.T) {
		out := FallbackResponse("red shoes", nil)
		assert.Equal(t, "I found no products matching your search for 'red shoes'.", out)
	})

	t.Run("lists at most three products with prices", func(t *testing.T) {
		results := []store.RankedProduct{
			{Product: store.Product{Name: "Shoe A", Price: 59.90}},
			{Product: store.Product{Name: "Shoe B"}},
			{Product: store.Product{Name: "Shoe C", Price: 120}},
			{Product: store.Product{Name: "Shoe D", Price: 10}},
		}

		out := FallbackResponse("red shoes", results)

		assert.Contains(t, out, "1. Shoe A - $59.90")
		assert.Contains(t, out, "2. Shoe B\n")
		assert.Contains(t, out, "3. Shoe C - $120.00")
		assert.NotContains(t, out, "Shoe D")
	})

	t.Run("unnamed product gets a placeholder", func(t *testing.T) {
		out := FallbackResponse("q", []store.RankedProduct{{}})
		assert.True(t, strings.Contains(out, "1. Product"))
	})
}
