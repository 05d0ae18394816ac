package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"intent-search-be/pkg/llm"
	"intent-search-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

// mockLLM routes prompts to canned responses by substring matching on the
// prompt text, which is enough to drive every stage deterministically.
type mockLLM struct {
	responses map[string]string // prompt substring -> response
	err       error
	calls     []string
}

func (m *mockLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	m.calls = append(m.calls, prompt)
	if m.err != nil {
		return "", m.err
	}
	for needle, response := range m.responses {
		if strings.Contains(prompt, needle) {
			return response, nil
		}
	}
	return "", fmt.Errorf("no canned response for prompt")
}

func (m *mockLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return m.Generate(ctx, history[len(history)-1].Content, options...)
}

type mockRetriever struct {
	results []store.Product
	err     error
	gotK    int
	gotQ    string
}

func (m *mockRetriever) Search(ctx context.Context, query string, k int) ([]store.Product, error) {
	m.gotQ = query
	m.gotK = k
	return m.results, m.err
}

func sampleProducts() []store.Product {
	return []store.Product{
		{ID: "p1", Name: "Sony WH-1000XM5", Brand: "Sony", Price: 399.99, InStock: true, RelevanceScore: 0.91},
		{ID: "p2", Name: "Anker Soundcore Q30", Brand: "Anker", Price: 79.99, InStock: true, RelevanceScore: 0.84},
		{ID: "p3", Name: "Bose QC45", Brand: "Bose", Price: 329.00, InStock: false, RelevanceScore: 0.80},
	}
}

func TestInvokeHappyPath(t *testing.T) {
	llmMock := &mockLLM{responses: map[string]string{
		"classifying e-commerce search queries": IntentProductDiscovery,
		"Extract search parameters":             `{"product_type": "headphones", "brands": ["Sony"]}`,
		"enhancing e-commerce search queries":   "wireless noise canceling headphones",
		"ranking e-commerce search results":     `[{"product_id": "p2", "rank": 1, "reason": "best value"}, {"product_id": "p1", "rank": 2, "reason": "premium pick"}]`,
		"Top 3 results:":                        "Great picks for headphones: the Anker Soundcore Q30 and the Sony WH-1000XM5.",
	}}
	retriever := &mockRetriever{results: sampleProducts()}

	engine := NewEngine(llmMock, retriever, DefaultConfig(), nil)
	final := engine.Invoke(context.Background(), SearchState{Query: "wireless headphones"})

	assert.Empty(t, final.Err)
	assert.Equal(t, IntentProductDiscovery, final.Intent)
	assert.Equal(t, "headphones", final.Parameters.ProductType)
	assert.Equal(t, "wireless noise canceling headphones", final.EnhancedQuery)
	assert.Equal(t, "wireless noise canceling headphones", retriever.gotQ)
	assert.Equal(t, DefaultConfig().RetrievalK, retriever.gotK)

	// Ranked list contains exactly the retrieved products, LLM order first
	if assert.Len(t, final.RankedResults, 3) {
		assert.Equal(t, "p2", final.RankedResults[0].ID)
		assert.Equal(t, 1, final.RankedResults[0].Rank)
		assert.Equal(t, "p1", final.RankedResults[1].ID)
		assert.Equal(t, "p3", final.RankedResults[2].ID)
		assert.Zero(t, final.RankedResults[2].Rank)
	}

	assert.Contains(t, final.Response, "Anker Soundcore Q30")
	assert.Equal(t, RankingMethodLLM, final.Metadata["ranking_method"])
	assert.Equal(t, ExtractionStatusSuccess, final.Metadata["parameter_extraction_status"])
	assert.Contains(t, final.Metadata, "process_complete_timestamp")
	assert.Equal(t, 0.95, final.Metadata["search_quality_score"])
}

func TestInvokeEmptyQueryShortCircuits(t *testing.T) {
	llmMock := &mockLLM{}
	retriever := &mockRetriever{}

	engine := NewEngine(llmMock, retriever, DefaultConfig(), nil)
	final := engine.Invoke(context.Background(), SearchState{Query: "   "})

	assert.Equal(t, ValidationEmptyQuery, final.InputValidationError)
	assert.Equal(t, validationErrorMessages[ValidationEmptyQuery], final.Response)
	assert.Equal(t, "Input validation failed: EMPTY_QUERY", final.Err)
	assert.Empty(t, llmMock.calls, "validation failures must not reach the LLM")
	assert.Empty(t, retriever.gotQ)
	// Telemetry still runs on the error branch
	assert.Contains(t, final.Metadata, "process_complete_timestamp")
	assert.Equal(t, 0.5, final.Metadata["search_quality_score"])
}

func TestInvokeNoResults(t *testing.T) {
	llmMock := &mockLLM{responses: map[string]string{
		"classifying e-commerce search queries": IntentProductDiscovery,
		"Extract search parameters":             `{}`,
		"enhancing e-commerce search queries":   "quantum flux capacitor",
		"returned no results":                   "I couldn't find a flux capacitor. Maybe try chargers?",
	}}
	retriever := &mockRetriever{results: []store.Product{}}

	engine := NewEngine(llmMock, retriever, DefaultConfig(), nil)
	final := engine.Invoke(context.Background(), SearchState{Query: "flux capacitor"})

	assert.Equal(t, "NO_RESULTS_FOUND", final.Err)
	assert.Equal(t, "I couldn't find a flux capacitor. Maybe try chargers?", final.Response)
	assert.Empty(t, final.RankedResults)
	assert.Equal(t, true, final.Metadata["no_results_handler_executed"])
}

func TestInvokeLLMOutageDegradesGracefully(t *testing.T) {
	llmMock := &mockLLM{err: errors.New("upstream timeout")}
	retriever := &mockRetriever{results: sampleProducts()}

	engine := NewEngine(llmMock, retriever, DefaultConfig(), nil)
	final := engine.Invoke(context.Background(), SearchState{Query: "wireless headphones"})

	// Every LLM-backed stage falls back instead of aborting
	assert.Equal(t, IntentProductDiscovery, final.Intent)
	assert.Equal(t, "wireless headphones", final.EnhancedQuery)
	assert.Len(t, final.RankedResults, 3)
	assert.Equal(t, RankingMethodVector, final.Metadata["ranking_method"])
	assert.Contains(t, final.Response, "wireless headphones")
}

func TestInvokeRetrieverFailure(t *testing.T) {
	llmMock := &mockLLM{responses: map[string]string{
		"classifying e-commerce search queries": IntentProductDiscovery,
		"Extract search parameters":             `{}`,
		"enhancing e-commerce search queries":   "usb c charger",
		"returned no results":                   "Nothing matched, sorry.",
	}}
	retriever := &mockRetriever{err: errors.New("connection refused")}

	engine := NewEngine(llmMock, retriever, DefaultConfig(), nil)
	final := engine.Invoke(context.Background(), SearchState{Query: "usb charger"})

	assert.Equal(t, "NO_RESULTS_FOUND", final.Err)
	assert.Equal(t, "connection refused", final.Metadata["vector_search_error"])
	assert.Empty(t, final.RankedResults)
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "validate_input", StageValidateInput.String())
	assert.Equal(t, "add_telemetry", StageTelemetry.String())
	assert.Equal(t, "unknown", Stage(99).String())
}
