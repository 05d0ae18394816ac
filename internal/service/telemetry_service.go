package service

import (
	"context"
	"fmt"
	"time"

	"intent-search-be/internal/entity"
	"intent-search-be/internal/repository/specification"
	"intent-search-be/internal/repository/unitofwork"
	"intent-search-be/pkg/events"
	"intent-search-be/pkg/monitoring"
	pktNats "intent-search-be/pkg/nats"

	"github.com/google/uuid"
)

type ITelemetryService interface {
	LogSearch(ctx context.Context, query, intent string, executionTime float64, userId, sessionId, requestId, searchError string)
	LogError(ctx context.Context, errorType, errorMessage, query, userId, sessionId string)
	LogFeedback(ctx context.Context, requestId string, rating int, userId, sessionId, feedbackText, selectedProductId string) error
	GetSystemHealth() map[string]interface{}
	GetPerformanceReport() map[string]interface{}
	GetRecentErrors(ctx context.Context, limit int) ([]*entity.SearchEvent, error)
	GetFeedbackStatistics(ctx context.Context) (map[string]interface{}, error)
}

type telemetryService struct {
	monitor        *monitoring.SearchSystemMonitor
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewTelemetryService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) ITelemetryService {
	return &telemetryService{
		monitor:        monitoring.NewSearchSystemMonitor(),
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (s *telemetryService) LogSearch(ctx context.Context, query, intent string, executionTime float64, userId, sessionId, requestId, searchError string) {
	s.monitor.LogSearch(intent, executionTime, searchError != "")

	event := &entity.SearchEvent{
		Id:            uuid.New(),
		EventType:     entity.SearchEventTypeSearch,
		RequestId:     requestId,
		Query:         query,
		Intent:        intent,
		ExecutionTime: executionTime,
		UserId:        userId,
		SessionId:     sessionId,
		Error:         searchError,
		CreatedAt:     time.Now(),
	}
	s.persist(ctx, event)

	s.publish(ctx, events.EventSearchExecuted, map[string]interface{}{
		"request_id":     requestId,
		"query":          query,
		"intent":         intent,
		"execution_time": executionTime,
		"user_id":        userId,
		"session_id":     sessionId,
		"error":          searchError,
	})
}

func (s *telemetryService) LogError(ctx context.Context, errorType, errorMessage, query, userId, sessionId string) {
	event := &entity.SearchEvent{
		Id:        uuid.New(),
		EventType: entity.SearchEventTypeError,
		Query:     query,
		UserId:    userId,
		SessionId: sessionId,
		Error:     fmt.Sprintf("%s: %s", errorType, errorMessage),
		CreatedAt: time.Now(),
	}
	s.persist(ctx, event)

	s.publish(ctx, events.EventSearchError, map[string]interface{}{
		"error_type":    errorType,
		"error_message": errorMessage,
		"query":         query,
		"user_id":       userId,
		"session_id":    sessionId,
	})
}

func (s *telemetryService) LogFeedback(ctx context.Context, requestId string, rating int, userId, sessionId, feedbackText, selectedProductId string) error {
	event := &entity.SearchEvent{
		Id:                uuid.New(),
		EventType:         entity.SearchEventTypeFeedback,
		RequestId:         requestId,
		Rating:            rating,
		UserId:            userId,
		SessionId:         sessionId,
		FeedbackText:      feedbackText,
		SelectedProductId: selectedProductId,
		CreatedAt:         time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SearchEventRepository().Create(ctx, event); err != nil {
		return err
	}

	s.publish(ctx, events.EventSearchFeedback, map[string]interface{}{
		"request_id": requestId,
		"rating":     rating,
		"user_id":    userId,
		"session_id": sessionId,
	})
	return nil
}

func (s *telemetryService) GetSystemHealth() map[string]interface{} {
	return s.monitor.GetSystemHealth()
}

func (s *telemetryService) GetPerformanceReport() map[string]interface{} {
	return s.monitor.GetPerformanceReport()
}

func (s *telemetryService) GetRecentErrors(ctx context.Context, limit int) ([]*entity.SearchEvent, error) {
	if limit <= 0 {
		limit = 10
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SearchEventRepository().FindAll(ctx,
		specification.ByEventType{EventType: entity.SearchEventTypeError},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)
}

func (s *telemetryService) GetFeedbackStatistics(ctx context.Context) (map[string]interface{}, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	feedback, err := uow.SearchEventRepository().FindAll(ctx,
		specification.ByEventType{EventType: entity.SearchEventTypeFeedback},
	)
	if err != nil {
		return nil, err
	}

	if len(feedback) == 0 {
		return map[string]interface{}{
			"count":               0,
			"average_rating":      0.0,
			"rating_distribution": map[int]int{},
		}, nil
	}

	sum := 0
	distribution := make(map[int]int)
	for _, event := range feedback {
		sum += event.Rating
		distribution[event.Rating]++
	}

	return map[string]interface{}{
		"count":               len(feedback),
		"average_rating":      float64(sum) / float64(len(feedback)),
		"rating_distribution": distribution,
	}, nil
}

// persist writes the event best-effort; telemetry never fails a search.
func (s *telemetryService) persist(ctx context.Context, event *entity.SearchEvent) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SearchEventRepository().Create(ctx, event); err != nil {
		fmt.Printf("[WARN] Failed to persist %s event: %v\n", event.EventType, err)
	}
}

func (s *telemetryService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}
