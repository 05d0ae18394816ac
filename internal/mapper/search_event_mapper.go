package mapper

import (
	"intent-search-be/internal/entity"
	"intent-search-be/internal/model"
)

type SearchEventMapper struct{}

func NewSearchEventMapper() *SearchEventMapper {
	return &SearchEventMapper{}
}

func (m *SearchEventMapper) ToEntity(e *model.SearchEvent) *entity.SearchEvent {
	if e == nil {
		return nil
	}

	return &entity.SearchEvent{
		Id:                e.Id,
		EventType:         e.EventType,
		RequestId:         e.RequestId,
		Query:             e.Query,
		Intent:            e.Intent,
		ExecutionTime:     e.ExecutionTime,
		UserId:            e.UserId,
		SessionId:         e.SessionId,
		Error:             e.Error,
		Rating:            e.Rating,
		FeedbackText:      e.FeedbackText,
		SelectedProductId: e.SelectedProductId,
		CreatedAt:         e.CreatedAt,
	}
}

func (m *SearchEventMapper) ToModel(e *entity.SearchEvent) *model.SearchEvent {
	if e == nil {
		return nil
	}

	return &model.SearchEvent{
		Id:                e.Id,
		EventType:         e.EventType,
		RequestId:         e.RequestId,
		Query:             e.Query,
		Intent:            e.Intent,
		ExecutionTime:     e.ExecutionTime,
		UserId:            e.UserId,
		SessionId:         e.SessionId,
		Error:             e.Error,
		Rating:            e.Rating,
		FeedbackText:      e.FeedbackText,
		SelectedProductId: e.SelectedProductId,
		CreatedAt:         e.CreatedAt,
	}
}

func (m *SearchEventMapper) ToEntities(events []*model.SearchEvent) []*entity.SearchEvent {
	entities := make([]*entity.SearchEvent, len(events))
	for i, e := range events {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
