package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"intent-search-be/internal/dto"
	"intent-search-be/internal/service"
	"intent-search-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubSearchService struct {
	calls []string
}

func (s *stubSearchService) Search(ctx context.Context, query string, opts service.SearchOptions) *dto.SearchResponse {
	s.calls = append(s.calls, query)

	resp := &dto.SearchResponse{
		Response:  "Here is what I found.",
		Results:   []store.RankedProduct{},
		Query:     query,
		RequestId: opts.RequestId,
	}
	if strings.TrimSpace(query) == "" {
		resp.Response = "I noticed your search was empty. What kind of products are you looking for?"
		resp.Error = "Input validation failed: EMPTY_QUERY"
	}
	return resp
}

// Unused collaborators; only the methods the tested routes call exist.
type stubPersonalizationService struct{ service.IPersonalizationService }
type stubConversationService struct{ service.IConversationService }
type stubTelemetryService struct{ service.ITelemetryService }

func newSearchTestApp(search *stubSearchService) *fiber.App {
	app := fiber.New()
	ctrl := NewSearchController(
		search,
		stubPersonalizationService{},
		stubConversationService{},
		stubTelemetryService{},
	)
	ctrl.RegisterRoutes(app.Group("/api"))
	return app
}

func postSearch(t *testing.T, app *fiber.App, body string) (int, dto.SearchResponse) {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/search/v1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var envelope struct {
		Success bool               `json:"success"`
		Data    dto.SearchResponse `json:"data"`
	}
	_ = json.Unmarshal(raw, &envelope)
	return resp.StatusCode, envelope.Data
}

func TestSearchAcceptsEmptyQuery(t *testing.T) {
	search := &stubSearchService{}
	app := newSearchTestApp(search)

	status, data := postSearch(t, app, `{"query": ""}`)

	// Empty queries are answered by the pipeline, never rejected upfront
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []string{""}, search.calls)
	assert.Equal(t, "Input validation failed: EMPTY_QUERY", data.Error)
	assert.Contains(t, data.Response, "your search was empty")
}

func TestSearchValidQuery(t *testing.T) {
	search := &stubSearchService{}
	app := newSearchTestApp(search)

	status, data := postSearch(t, app, `{"query": "wireless headphones"}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []string{"wireless headphones"}, search.calls)
	assert.Empty(t, data.Error)
	assert.NotEmpty(t, data.RequestId)
}

func TestSearchMalformedBody(t *testing.T) {
	search := &stubSearchService{}
	app := newSearchTestApp(search)

	status, _ := postSearch(t, app, `{"query": `)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Empty(t, search.calls)
}

func TestSearchGeneratesSessionId(t *testing.T) {
	search := &stubSearchService{}
	app := newSearchTestApp(search)

	req := httptest.NewRequest("POST", "/api/search/v1", strings.NewReader(`{"query": "tablets"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	assert.NotEmpty(t, resp.Header.Get("X-Session-Id"))
}
