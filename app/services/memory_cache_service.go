package services

import (
	"context"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/listing-geo/app/models"
	"go.uber.org/zap"
)

// MemoryCacheService cache L1 in-memory dùng LRU
type MemoryCacheService struct {
	cache  *lru.Cache[string, *models.ValidationOutcome]
	logger *zap.Logger

	hits   int64
	misses int64
}

// NewMemoryCacheService tạo cache LRU với sức chứa cho trước
func NewMemoryCacheService(size int, logger *zap.Logger) (*MemoryCacheService, error) {
	cache, err := lru.New[string, *models.ValidationOutcome](size)
	if err != nil {
		return nil, fmt.Errorf("không thể tạo LRU cache: %w", err)
	}
	return &MemoryCacheService{cache: cache, logger: logger}, nil
}

// Get lấy outcome từ cache
func (m *MemoryCacheService) Get(_ context.Context, key string) (*models.ValidationOutcome, bool, error) {
	if out, found := m.cache.Get(key); found {
		atomic.AddInt64(&m.hits, 1)
		return out, true, nil
	}
	atomic.AddInt64(&m.misses, 1)
	return nil, false, nil
}

// Set ghi outcome vào cache
func (m *MemoryCacheService) Set(_ context.Context, key string, outcome *models.ValidationOutcome) error {
	m.cache.Add(key, outcome)
	return nil
}

// Invalidate xóa toàn bộ cache
func (m *MemoryCacheService) Invalidate(_ context.Context) error {
	m.cache.Purge()
	m.logger.Info("Đã purge L1 cache")
	return nil
}

// Stats số liệu hit/miss hiện tại
func (m *MemoryCacheService) Stats() CacheStats {
	return CacheStats{
		Hits:   atomic.LoadInt64(&m.hits),
		Misses: atomic.LoadInt64(&m.misses),
		Size:   m.cache.Len(),
	}
}
