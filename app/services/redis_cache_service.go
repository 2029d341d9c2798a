package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/listing-geo/app/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	redisKeyPrefix = "geo:outcome:"
	redisTTL       = 24 * time.Hour
)

// RedisCacheService cache L2 qua Redis, bật theo config. Lỗi hạ tầng
// Redis được đẩy lên caller; hybrid cache sẽ hạ cấp về L1.
type RedisCacheService struct {
	client *redis.Client
	logger *zap.Logger

	hits   int64
	misses int64
}

// NewRedisCacheService kết nối Redis từ URL dạng redis://host:port
func NewRedisCacheService(redisURL string, logger *zap.Logger) (*RedisCacheService, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("REDIS_URL không hợp lệ: %w", err)
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("không ping được Redis: %w", err)
	}

	logger.Info("Đã kết nối Redis cache", zap.String("addr", opts.Addr))
	return &RedisCacheService{client: client, logger: logger}, nil
}

// Get lấy outcome theo key
func (r *RedisCacheService) Get(ctx context.Context, key string) (*models.ValidationOutcome, bool, error) {
	b, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err == redis.Nil {
		atomic.AddInt64(&r.misses, 1)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var out models.ValidationOutcome
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, false, fmt.Errorf("payload cache hỏng: %w", err)
	}
	atomic.AddInt64(&r.hits, 1)
	return &out, true, nil
}

// Set ghi outcome với TTL mặc định
func (r *RedisCacheService) Set(ctx context.Context, key string, outcome *models.ValidationOutcome) error {
	b, err := json.Marshal(outcome)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisKeyPrefix+key, b, redisTTL).Err()
}

// Invalidate xóa mọi key thuộc prefix của service
func (r *RedisCacheService) Invalidate(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Stats số liệu hit/miss phía client (không đếm size từ Redis)
func (r *RedisCacheService) Stats() CacheStats {
	return CacheStats{
		Hits:   atomic.LoadInt64(&r.hits),
		Misses: atomic.LoadInt64(&r.misses),
	}
}
