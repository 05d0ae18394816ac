package service

import (
	"context"
	"strings"
	"testing"

	"intent-search-be/internal/dto"
	"intent-search-be/pkg/llm"
	"intent-search-be/pkg/pipeline"
	"intent-search-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

// Stub collaborators. Only the calls the orchestrator makes are recorded.

type stubLLM struct {
	responses map[string]string // prompt substring -> response
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	for needle, response := range s.responses {
		if strings.Contains(prompt, needle) {
			return response, nil
		}
	}
	return "", assert.AnError
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.Generate(ctx, history[len(history)-1].Content, options...)
}

type stubRetriever struct {
	results  []store.Product
	searched bool
	gotQuery string
}

func (s *stubRetriever) Search(ctx context.Context, query string, k int) ([]store.Product, error) {
	s.searched = true
	s.gotQuery = query
	return s.results, nil
}

type stubConversation struct {
	history       []store.Turn
	recordedTurns []store.Turn
	cleared       []string
}

func (s *stubConversation) GetHistory(sessionId string) []store.Turn { return s.history }
func (s *stubConversation) RecordTurn(sessionId string, turn store.Turn) {
	s.recordedTurns = append(s.recordedTurns, turn)
}
func (s *stubConversation) ClearSession(sessionId string) { s.cleared = append(s.cleared, sessionId) }

type stubPersonalization struct {
	preferences store.Preferences
	err         error
}

func (s *stubPersonalization) GetPreferences(ctx context.Context, userId string) (store.Preferences, error) {
	return s.preferences, s.err
}

func (s *stubPersonalization) UpdatePreferences(ctx context.Context, userId string, req *dto.UpdatePreferencesRequest) (store.Preferences, error) {
	return s.preferences, s.err
}

type stubCache struct {
	cached *dto.SearchResponse
	stored []*dto.SearchResponse
}

func (s *stubCache) GetCachedResponse(ctx context.Context, userId, query string) (*dto.SearchResponse, bool) {
	return s.cached, s.cached != nil
}

func (s *stubCache) StoreResponse(ctx context.Context, userId, query string, response *dto.SearchResponse) {
	s.stored = append(s.stored, response)
}

type stubTelemetry struct {
	ITelemetryService
	searches []string
	errors   []string
}

func (s *stubTelemetry) LogSearch(ctx context.Context, query, intent string, executionTime float64, userId, sessionId, requestId, searchError string) {
	s.searches = append(s.searches, query)
}

func (s *stubTelemetry) LogError(ctx context.Context, errorType, errorMessage, query, userId, sessionId string) {
	s.errors = append(s.errors, errorType)
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type searchFixture struct {
	service         ISearchService
	retriever       *stubRetriever
	conversation    *stubConversation
	personalization *stubPersonalization
	cache           *stubCache
	telemetry       *stubTelemetry
}

func newSearchFixture(products []store.Product) *searchFixture {
	llmStub := &stubLLM{responses: map[string]string{
		"classifying e-commerce search queries": pipeline.IntentProductDiscovery,
		"Extract search parameters":             `{}`,
		"enhancing e-commerce search queries":   "enhanced query",
		"ranking e-commerce search results":     `[]`,
		"Top 3 results:":                        "Here is what I found for you.",
		"returned no results":                   "Nothing matched your search.",
	}}
	retriever := &stubRetriever{results: products}
	engine := pipeline.NewEngine(llmStub, retriever, pipeline.DefaultConfig(), nil)

	f := &searchFixture{
		retriever:       retriever,
		conversation:    &stubConversation{},
		personalization: &stubPersonalization{preferences: store.DefaultPreferences()},
		cache:           &stubCache{},
		telemetry:       &stubTelemetry{},
	}
	f.service = NewSearchService(engine, f.conversation, f.personalization, f.cache, f.telemetry, noopLogger{})
	return f
}

func catalogProducts() []store.Product {
	return []store.Product{
		{ID: "p1", Name: "Sony WH-1000XM5", Brand: "Sony", Price: 399, InStock: true, RelevanceScore: 0.9},
		{ID: "p2", Name: "Anker Q30", Brand: "Anker", Price: 79, InStock: true, RelevanceScore: 0.8},
	}
}

func TestSearchHappyPath(t *testing.T) {
	f := newSearchFixture(catalogProducts())

	resp := f.service.Search(context.Background(), "wireless headphones", SearchOptions{
		UserId:                "u1",
		SessionId:             "s1",
		RequestId:             "req-1",
		EnableConversation:    true,
		EnablePersonalization: true,
	})

	assert.Empty(t, resp.Error)
	assert.Equal(t, "Here is what I found for you.", resp.Response)
	assert.Equal(t, pipeline.IntentProductDiscovery, resp.Intent)
	assert.Equal(t, "wireless headphones", resp.Query)
	assert.Equal(t, "enhanced query", resp.EnhancedQuery)
	assert.Equal(t, "req-1", resp.RequestId)
	assert.Len(t, resp.Results, 2)
	assert.False(t, resp.ConversationAware)

	// Side effects: turn recorded, telemetry logged, response cached
	assert.Len(t, f.conversation.recordedTurns, 1)
	assert.Equal(t, "wireless headphones", f.conversation.recordedTurns[0].Query)
	assert.Equal(t, []string{"wireless headphones"}, f.telemetry.searches)
	assert.Len(t, f.cache.stored, 1)
}

func TestSearchCacheHitShortCircuits(t *testing.T) {
	f := newSearchFixture(catalogProducts())
	f.cache.cached = &dto.SearchResponse{
		Response:  "cached answer",
		Query:     "wireless headphones",
		Results:   []store.RankedProduct{},
		RequestId: "old-request",
	}

	resp := f.service.Search(context.Background(), "wireless headphones", SearchOptions{
		UserId:    "u1",
		RequestId: "req-2",
	})

	assert.Equal(t, "cached answer", resp.Response)
	assert.Equal(t, "req-2", resp.RequestId, "request id must reflect the current request")
	assert.False(t, f.retriever.searched, "cache hit must not run the pipeline")
	assert.Empty(t, f.telemetry.searches)
	assert.Empty(t, f.cache.stored)
}

func TestSearchResolvesConversationReference(t *testing.T) {
	f := newSearchFixture(catalogProducts())
	f.conversation.history = []store.Turn{{
		Query:    "wireless headphones",
		Response: "found some",
		ProductReferences: []store.ProductReference{
			{ID: "p1", Name: "Sony WH-1000XM5"},
		},
	}}

	resp := f.service.Search(context.Background(), "do you have those in black", SearchOptions{
		SessionId:          "s1",
		EnableConversation: true,
	})

	assert.True(t, resp.ConversationAware)
	// The rewritten query flows into the pipeline, the original stays in the response
	assert.Equal(t, "do you have those in black", resp.Query)
	assert.Equal(t, "enhanced query", f.retriever.gotQuery)
}

func TestSearchConversationDisabled(t *testing.T) {
	f := newSearchFixture(catalogProducts())
	f.conversation.history = []store.Turn{{
		ProductReferences: []store.ProductReference{{ID: "p1", Name: "Sony WH-1000XM5"}},
	}}

	resp := f.service.Search(context.Background(), "do you have those in black", SearchOptions{
		SessionId:          "s1",
		EnableConversation: false,
	})

	assert.False(t, resp.ConversationAware)
	assert.Empty(t, f.conversation.recordedTurns)
}

func TestSearchPersonalizationBoost(t *testing.T) {
	f := newSearchFixture(catalogProducts())
	f.personalization.preferences = store.Preferences{
		PreferredBrands:      []string{"Anker"},
		PriceSensitivity:     store.PriceSensitivityMedium,
		CategoriesOfInterest: []string{},
	}

	resp := f.service.Search(context.Background(), "wireless headphones", SearchOptions{
		UserId:                "u1",
		EnablePersonalization: true,
	})

	if assert.Len(t, resp.Results, 2) {
		assert.Equal(t, "Anker Q30", resp.Results[0].Name, "preferred brand should be boosted to the top")
	}
}

func TestSearchPreferenceLoadFailureFallsBack(t *testing.T) {
	f := newSearchFixture(catalogProducts())
	f.personalization.err = assert.AnError

	resp := f.service.Search(context.Background(), "wireless headphones", SearchOptions{
		UserId:                "u1",
		EnablePersonalization: true,
	})

	assert.Empty(t, resp.Error)
	assert.Equal(t, "Sony WH-1000XM5", resp.Results[0].Name, "retrieval order kept without preferences")
}

func TestSearchNoResults(t *testing.T) {
	f := newSearchFixture(nil)

	resp := f.service.Search(context.Background(), "flux capacitor", SearchOptions{
		SessionId:          "s1",
		EnableConversation: true,
	})

	assert.Equal(t, "NO_RESULTS_FOUND", resp.Error)
	assert.Equal(t, "Nothing matched your search.", resp.Response)
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
	assert.Empty(t, f.conversation.recordedTurns, "empty searches are not recorded as turns")
}

func TestSearchValidationError(t *testing.T) {
	f := newSearchFixture(catalogProducts())

	resp := f.service.Search(context.Background(), "", SearchOptions{})

	assert.Equal(t, "Input validation failed: EMPTY_QUERY", resp.Error)
	assert.NotEmpty(t, resp.Response)
	assert.False(t, f.retriever.searched)
}
