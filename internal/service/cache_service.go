package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"intent-search-be/internal/dto"

	"github.com/redis/go-redis/v9"
)

type ICacheService interface {
	GetCachedResponse(ctx context.Context, userId, query string) (*dto.SearchResponse, bool)
	StoreResponse(ctx context.Context, userId, query string, response *dto.SearchResponse)
}

type cacheService struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCacheService returns a redis-backed response cache. A nil client
// disables caching, every lookup misses.
func NewCacheService(rdb *redis.Client, ttl time.Duration) ICacheService {
	return &cacheService{
		rdb: rdb,
		ttl: ttl,
	}
}

func (s *cacheService) GetCachedResponse(ctx context.Context, userId, query string) (*dto.SearchResponse, bool) {
	if s.rdb == nil {
		return nil, false
	}

	raw, err := s.rdb.Get(ctx, s.cacheKey(userId, query)).Result()
	if err != nil {
		return nil, false // miss or redis down, either way we search
	}

	var cached dto.SearchResponse
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, false
	}
	return &cached, true
}

func (s *cacheService) StoreResponse(ctx context.Context, userId, query string, response *dto.SearchResponse) {
	if s.rdb == nil || response == nil {
		return
	}
	// Never cache degraded responses
	if response.Error != "" {
		return
	}

	raw, err := json.Marshal(response)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, s.cacheKey(userId, query), raw, s.ttl).Err(); err != nil {
		fmt.Printf("[WARN] Failed to store search response in cache: %v\n", err)
	}
}

func (s *cacheService) cacheKey(userId, query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	sum := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("search:%s:%s", userId, hex.EncodeToString(sum[:16]))
}
