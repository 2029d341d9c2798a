package responses

import (
	"github.com/listing-geo/app/models"
	"github.com/listing-geo/internal/search"
)

// ErrorResponse lỗi chuẩn của API
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SearchResponse kết quả search listing
type SearchResponse struct {
	Count            int              `json:"count"`
	Results          []models.Listing `json:"results"`
	ProcessingTimeMs int64            `json:"processing_time_ms"`
}

// StatsResponse thống kê trên tập đã lọc
type StatsResponse struct {
	Field string       `json:"field"`
	Stats search.Stats `json:"stats"`
}

// ValidateResponse kết quả validate một bản ghi
type ValidateResponse struct {
	Result           *models.ValidationOutcome `json:"result"`
	CacheHit         bool                      `json:"cache_hit"`
	ProcessingTimeMs int64                     `json:"processing_time_ms"`
}

// CatalogResponse danh sách đơn vị hành chính
type CatalogResponse struct {
	Count int                `json:"count"`
	Units []models.AdminUnit `json:"units"`
}

// HealthResponse trạng thái service
type HealthResponse struct {
	Status         string `json:"status"`
	CatalogVersion string `json:"catalog_version"`
	Listings       int    `json:"listings"`
}
