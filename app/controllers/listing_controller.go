package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/listing-geo/app/responses"
	"github.com/listing-geo/internal/search"
	"go.uber.org/zap"
)

const defaultSearchLimit = 50

// ListingController expose search/stats/top trên search engine
type ListingController struct {
	engine *search.Engine
	logger *zap.Logger
}

// NewListingController tạo mới ListingController
func NewListingController(engine *search.Engine, logger *zap.Logger) *ListingController {
	return &ListingController{engine: engine, logger: logger}
}

// Search GET /v1/listings/search — filter từ query params, mọi trường optional
func (lc *ListingController) Search(c *gin.Context) {
	start := time.Now()

	var f search.Filters
	if err := c.ShouldBindQuery(&f); err != nil {
		// filter rác không phải lỗi — bỏ qua các trường không bind được
		lc.logger.Debug("Bỏ qua filter không hợp lệ", zap.Error(err))
	}

	limit := defaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	results, err := lc.engine.Search(f, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "SEARCH_ERROR",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SearchResponse{
		Count:            len(results),
		Results:          results,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	})
}

// Stats GET /v1/listings/stats?field=price — thống kê trên tập đã lọc
func (lc *ListingController) Stats(c *gin.Context) {
	var f search.Filters
	_ = c.ShouldBindQuery(&f)

	field := c.DefaultQuery("field", "price")
	stats, err := lc.engine.StatsBy(field, f)
	if err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_FIELD",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.StatsResponse{Field: field, Stats: stats})
}

// Top GET /v1/listings/top?sortBy=price&order=desc&limit=10
func (lc *ListingController) Top(c *gin.Context) {
	var f search.Filters
	_ = c.ShouldBindQuery(&f)

	sortBy := c.DefaultQuery("sortBy", "potentialScore")
	order := c.DefaultQuery("order", "desc")
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	results, err := lc.engine.TopListings(sortBy, order, limit, f)
	if err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_FIELD",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SearchResponse{
		Count:   len(results),
		Results: results,
	})
}
