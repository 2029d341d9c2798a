package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/listing-geo/app/models"
	"github.com/listing-geo/app/requests"
	"github.com/listing-geo/app/responses"
	"github.com/listing-geo/app/services"
	"github.com/listing-geo/internal/catalog"
	"github.com/listing-geo/internal/geo"
	"github.com/listing-geo/internal/store"
	"go.uber.org/zap"
)

// ValidateController expose pipeline validate và danh mục hành chính
type ValidateController struct {
	validation *services.ValidationService
	cache      services.ICacheService
	catalog    *catalog.Catalog
	store      *store.Store
	logger     *zap.Logger
}

// NewValidateController tạo mới ValidateController
func NewValidateController(vs *services.ValidationService, cache services.ICacheService, c *catalog.Catalog, st *store.Store, logger *zap.Logger) *ValidateController {
	return &ValidateController{validation: vs, cache: cache, catalog: c, store: st, logger: logger}
}

// Validate POST /v1/validate — validate một bản ghi vị trí free-text
func (vc *ValidateController) Validate(c *gin.Context) {
	var req requests.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	start := time.Now()
	cacheKey := cacheKeyFor(&req)

	if req.UseCache {
		if cached, found, err := vc.cache.Get(c.Request.Context(), cacheKey); err == nil && found {
			c.JSON(http.StatusOK, responses.ValidateResponse{
				Result:           cached,
				CacheHit:         true,
				ProcessingTimeMs: time.Since(start).Milliseconds(),
			})
			return
		}
	}

	l := models.Listing{
		ID:        req.ID,
		Province:  req.Province,
		District:  req.District,
		Ward:      req.Ward,
		Latitude:  geo.ParseCoord(req.Latitude),
		Longitude: geo.ParseCoord(req.Longitude),
	}
	outcome := vc.validation.ValidateListing(&l)

	if req.UseCache {
		_ = vc.cache.Set(c.Request.Context(), cacheKey, outcome)
	}

	c.JSON(http.StatusOK, responses.ValidateResponse{
		Result:           outcome,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	})
}

// Provinces GET /v1/catalog/provinces
func (vc *ValidateController) Provinces(c *gin.Context) {
	units := vc.catalog.ListProvinces()
	c.JSON(http.StatusOK, responses.CatalogResponse{Count: len(units), Units: units})
}

// Districts GET /v1/catalog/districts?province=...
func (vc *ValidateController) Districts(c *gin.Context) {
	units := vc.catalog.ListDistricts(c.Query("province"))
	c.JSON(http.StatusOK, responses.CatalogResponse{Count: len(units), Units: units})
}

// Wards GET /v1/catalog/wards?district=...
func (vc *ValidateController) Wards(c *gin.Context) {
	units := vc.catalog.ListWards(c.Query("district"))
	c.JSON(http.StatusOK, responses.CatalogResponse{Count: len(units), Units: units})
}

// CacheStats GET /v1/admin/cache/stats
func (vc *ValidateController) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, vc.cache.Stats())
}

// InvalidateCache POST /v1/admin/cache/invalidate
func (vc *ValidateController) InvalidateCache(c *gin.Context) {
	if err := vc.cache.Invalidate(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "CACHE_ERROR",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HealthCheck GET /health — trạng thái service và dataset đang phục vụ
func (vc *ValidateController) HealthCheck(c *gin.Context) {
	listings, err := vc.store.Listings()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, responses.HealthResponse{
			Status:         "degraded",
			CatalogVersion: vc.catalog.Version,
		})
		return
	}
	c.JSON(http.StatusOK, responses.HealthResponse{
		Status:         "ok",
		CatalogVersion: vc.catalog.Version,
		Listings:       len(listings),
	})
}

// cacheKeyFor key cache: listing ID nếu có, không thì fingerprint đủ
// mọi input ảnh hưởng tới outcome (gồm cả tọa độ)
func cacheKeyFor(req *requests.ValidateRequest) string {
	if req.ID != "" {
		return req.ID
	}
	return strings.Join([]string{
		req.Province,
		req.District,
		req.Ward,
		fmt.Sprintf("%v", req.Latitude),
		fmt.Sprintf("%v", req.Longitude),
	}, "\x1f")
}
