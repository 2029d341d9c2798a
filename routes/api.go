package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/listing-geo/app/controllers"
)

// SetupAPIRoutes thiết lập tất cả API routes
func SetupAPIRoutes(router *gin.Engine, listingController *controllers.ListingController, validateController *controllers.ValidateController) {
	// API v1 group
	v1 := router.Group("/v1")
	{
		// Listing search routes
		listings := v1.Group("/listings")
		{
			listings.GET("/search", listingController.Search)
			listings.GET("/stats", listingController.Stats)
			listings.GET("/top", listingController.Top)
		}

		// Validation routes
		v1.POST("/validate", validateController.Validate)

		// Catalog routes
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/provinces", validateController.Provinces)
			catalog.GET("/districts", validateController.Districts)
			catalog.GET("/wards", validateController.Wards)
		}

		// Admin routes
		admin := v1.Group("/admin")
		{
			admin.GET("/cache/stats", validateController.CacheStats)
			admin.POST("/cache/invalidate", validateController.InvalidateCache)
		}

		// Health check route
		v1.GET("/health", validateController.HealthCheck)
	}
}

// SetupHealthRoutes thiết lập health check routes
func SetupHealthRoutes(router *gin.Engine, validateController *controllers.ValidateController) {
	// Root health check
	router.GET("/health", validateController.HealthCheck)

	// Readiness check
	router.GET("/ready", validateController.HealthCheck)

	// Liveness check
	router.GET("/live", validateController.HealthCheck)
}

// SetupAllRoutes thiết lập tất cả routes
func SetupAllRoutes(router *gin.Engine, listingController *controllers.ListingController, validateController *controllers.ValidateController) {
	// Thiết lập middleware
	setupMiddleware(router)

	// Thiết lập các loại routes
	SetupHealthRoutes(router, validateController)
	SetupAPIRoutes(router, listingController, validateController)

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

// setupMiddleware thiết lập middleware cho router
func setupMiddleware(router *gin.Engine) {
	// Recovery middleware
	router.Use(gin.Recovery())

	// Logger middleware
	router.Use(gin.Logger())
}
