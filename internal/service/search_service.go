package service

import (
	"context"
	"fmt"
	"time"

	"intent-search-be/internal/dto"
	"intent-search-be/internal/pkg/logger"
	"intent-search-be/pkg/conversation"
	"intent-search-be/pkg/personalization"
	"intent-search-be/pkg/pipeline"
	"intent-search-be/pkg/store"
)

const emptyResponseFallback = "I couldn't find what you're looking for. Could you try a different search?"

type SearchOptions struct {
	UserId                string
	SessionId             string
	RequestId             string
	EnableConversation    bool
	EnablePersonalization bool
}

type ISearchService interface {
	Search(ctx context.Context, query string, opts SearchOptions) *dto.SearchResponse
}

type searchService struct {
	engine                 *pipeline.Engine
	conversationService    IConversationService
	personalizationService IPersonalizationService
	cacheService           ICacheService
	telemetryService       ITelemetryService
	logger                 logger.ILogger
}

func NewSearchService(
	engine *pipeline.Engine,
	conversationService IConversationService,
	personalizationService IPersonalizationService,
	cacheService ICacheService,
	telemetryService ITelemetryService,
	sysLogger logger.ILogger,
) ISearchService {
	return &searchService{
		engine:                 engine,
		conversationService:    conversationService,
		personalizationService: personalizationService,
		cacheService:           cacheService,
		telemetryService:       telemetryService,
		logger:                 sysLogger,
	}
}

// Search runs the full intent pipeline for one query. It never returns an
// error: degraded states come back as a response payload with Error set.
func (s *searchService) Search(ctx context.Context, query string, opts SearchOptions) (response *dto.SearchResponse) {
	start := time.Now()

	// The pipeline recovers per stage, this guards everything around it.
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("search", "Search orchestration panicked", map[string]interface{}{
				"panic": fmt.Sprintf("%v", r),
				"query": query,
			})
			s.telemetryService.LogError(ctx, "ORCHESTRATION_PANIC", fmt.Sprintf("%v", r), query, opts.UserId, opts.SessionId)
			response = &dto.SearchResponse{
				Response:  "I'm having trouble processing your search right now. Please try again.",
				Results:   []store.RankedProduct{},
				Query:     query,
				Error:     "ORCHESTRATION_ERROR",
				RequestId: opts.RequestId,
			}
		}
	}()

	if cached, hit := s.cacheService.GetCachedResponse(ctx, opts.UserId, query); hit {
		s.logger.Info("search", "Cache hit", map[string]interface{}{
			"query":   query,
			"user_id": opts.UserId,
		})
		cached.RequestId = opts.RequestId
		return cached
	}

	var history []store.Turn
	conversationAware := false
	effectiveQuery := query
	if opts.EnableConversation && opts.SessionId != "" {
		history = s.conversationService.GetHistory(opts.SessionId)
		if resolved, changed := conversation.ResolveReferences(query, history); changed {
			effectiveQuery = resolved
			conversationAware = true
			s.logger.Info("search", "Resolved conversational reference", map[string]interface{}{
				"original": query,
				"resolved": resolved,
			})
		}
	}

	preferences := store.DefaultPreferences()
	personalizationApplied := false
	if opts.EnablePersonalization && opts.UserId != "" {
		loaded, err := s.personalizationService.GetPreferences(ctx, opts.UserId)
		if err != nil {
			s.logger.Warn("search", "Failed to load preferences, using defaults", map[string]interface{}{
				"user_id": opts.UserId,
				"error":   err.Error(),
			})
		} else {
			preferences = loaded
			personalizationApplied = len(preferences.PreferredBrands) > 0
		}
	}

	initial := pipeline.SearchState{
		Query:               effectiveQuery,
		ConversationHistory: history,
		Metadata: map[string]interface{}{
			"query_timestamp":         start,
			"query_length":            len(query),
			"conversation_aware":      conversationAware,
			"personalization_applied": personalizationApplied,
		},
	}

	final := s.engine.Invoke(ctx, initial)

	results := final.RankedResults
	if personalizationApplied && len(results) > 0 {
		results = personalization.BoostPreferredBrands(results, preferences.PreferredBrands)
		final.Metadata["personalization_brand_boost"] = true
	}

	if opts.EnableConversation && opts.SessionId != "" && len(results) > 0 {
		turn := conversation.BuildTurn(query, final.Response, results)
		s.conversationService.RecordTurn(opts.SessionId, turn)
	}

	// Whatever happened upstream, the user gets a sentence back.
	responseText := final.Response
	if responseText == "" {
		responseText = emptyResponseFallback
		if final.Err == "" {
			final.Err = "EMPTY_RESPONSE"
		}
	}
	if results == nil {
		results = []store.RankedProduct{}
	}

	executionTime := time.Since(start).Seconds()
	s.telemetryService.LogSearch(ctx, query, final.Intent, executionTime, opts.UserId, opts.SessionId, opts.RequestId, final.Err)
	s.logger.Info("search", "Search completed", map[string]interface{}{
		"query":          query,
		"intent":         final.Intent,
		"result_count":   len(results),
		"execution_time": executionTime,
		"error":          final.Err,
	})

	response = &dto.SearchResponse{
		Response:          responseText,
		Intent:            final.Intent,
		Results:           results,
		Query:             query,
		EnhancedQuery:     final.EnhancedQuery,
		ConversationAware: conversationAware,
		Error:             final.Err,
		RequestId:         opts.RequestId,
	}

	s.cacheService.StoreResponse(ctx, opts.UserId, query, response)
	return response
}
