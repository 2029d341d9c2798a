package services

import (
	"context"

	"github.com/listing-geo/app/models"
)

// ICacheService cache kết quả validate theo key (listing id hoặc
// fingerprint của input free-text). Miss không phải là lỗi.
type ICacheService interface {
	Get(ctx context.Context, key string) (*models.ValidationOutcome, bool, error)
	Set(ctx context.Context, key string, outcome *models.ValidationOutcome) error
	Invalidate(ctx context.Context) error
	Stats() CacheStats
}

// CacheStats số liệu hit/miss để expose qua endpoint admin
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}
