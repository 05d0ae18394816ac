package memory

import (
	"time"

	"intent-search-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type ConversationRepository struct {
	cache        *cache.Cache
	historyLimit int
}

func NewConversationRepository(historyLimit int) *ConversationRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	if historyLimit <= 0 {
		historyLimit = 10
	}
	return &ConversationRepository{
		cache:        c,
		historyLimit: historyLimit,
	}
}

func (r *ConversationRepository) GetHistory(sessionId string) []store.Turn {
	if x, found := r.cache.Get(sessionId); found {
		return x.([]store.Turn)
	}
	return nil
}

// SaveHistory stores the session history, keeping only the most recent turns.
// Saving also resets the session's expiration window.
func (r *ConversationRepository) SaveHistory(sessionId string, history []store.Turn) {
	if len(history) > r.historyLimit {
		history = history[len(history)-r.historyLimit:]
	}
	r.cache.Set(sessionId, history, cache.DefaultExpiration)
}

func (r *ConversationRepository) Clear(sessionId string) {
	r.cache.Delete(sessionId)
}
