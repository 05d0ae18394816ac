package service

import (
	"intent-search-be/internal/repository/memory"
	"intent-search-be/pkg/conversation"
	"intent-search-be/pkg/store"
)

type IConversationService interface {
	GetHistory(sessionId string) []store.Turn
	RecordTurn(sessionId string, turn store.Turn)
	ClearSession(sessionId string)
}

type conversationService struct {
	repo         *memory.ConversationRepository
	historyLimit int
}

func NewConversationService(repo *memory.ConversationRepository, historyLimit int) IConversationService {
	return &conversationService{
		repo:         repo,
		historyLimit: historyLimit,
	}
}

func (s *conversationService) GetHistory(sessionId string) []store.Turn {
	return s.repo.GetHistory(sessionId)
}

func (s *conversationService) RecordTurn(sessionId string, turn store.Turn) {
	history := s.repo.GetHistory(sessionId)
	history = conversation.AppendTurn(history, turn, s.historyLimit)
	s.repo.SaveHistory(sessionId, history)
}

func (s *conversationService) ClearSession(sessionId string) {
	s.repo.Clear(sessionId)
}
