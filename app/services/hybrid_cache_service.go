package services

import (
	"context"

	"github.com/listing-geo/app/models"
	"go.uber.org/zap"
)

// HybridCacheService ghép L1 in-memory với L2 Redis: đọc L1 trước,
// miss thì xuống L2 và promote ngược lên. L2 lỗi chỉ log warning —
// cache là tối ưu, không phải điều kiện đúng đắn.
type HybridCacheService struct {
	l1     ICacheService
	l2     ICacheService
	logger *zap.Logger
}

// NewHybridCacheService tạo hybrid cache; l2 có thể nil khi Redis không bật
func NewHybridCacheService(l1, l2 ICacheService, logger *zap.Logger) *HybridCacheService {
	return &HybridCacheService{l1: l1, l2: l2, logger: logger}
}

// Get đọc L1 → L2, promote khi L2 hit
func (h *HybridCacheService) Get(ctx context.Context, key string) (*models.ValidationOutcome, bool, error) {
	if out, found, err := h.l1.Get(ctx, key); err == nil && found {
		return out, true, nil
	}

	if h.l2 == nil {
		return nil, false, nil
	}
	out, found, err := h.l2.Get(ctx, key)
	if err != nil {
		h.logger.Warn("Lỗi đọc L2 cache", zap.Error(err))
		return nil, false, nil
	}
	if found {
		_ = h.l1.Set(ctx, key, out)
		return out, true, nil
	}
	return nil, false, nil
}

// Set ghi cả hai tầng
func (h *HybridCacheService) Set(ctx context.Context, key string, outcome *models.ValidationOutcome) error {
	if err := h.l1.Set(ctx, key, outcome); err != nil {
		return err
	}
	if h.l2 != nil {
		if err := h.l2.Set(ctx, key, outcome); err != nil {
			h.logger.Warn("Lỗi ghi L2 cache", zap.Error(err))
		}
	}
	return nil
}

// Invalidate xóa cả hai tầng
func (h *HybridCacheService) Invalidate(ctx context.Context) error {
	if err := h.l1.Invalidate(ctx); err != nil {
		return err
	}
	if h.l2 != nil {
		if err := h.l2.Invalidate(ctx); err != nil {
			h.logger.Warn("Lỗi invalidate L2 cache", zap.Error(err))
		}
	}
	return nil
}

// Stats gộp số liệu L1 (L2 chỉ advisory)
func (h *HybridCacheService) Stats() CacheStats {
	return h.l1.Stats()
}
