package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/listing-geo/app/config"
	"github.com/listing-geo/app/controllers"
	"github.com/listing-geo/app/services"
	"github.com/listing-geo/internal/catalog"
	"github.com/listing-geo/internal/geo"
	"github.com/listing-geo/internal/matcher"
	"github.com/listing-geo/internal/search"
	"github.com/listing-geo/internal/store"
	"github.com/listing-geo/routes"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	config.LoadServerConfig()

	// 2. Khởi tạo logger
	logger := initLogger()
	defer logger.Sync()

	logger.Info("Starting Listing Geo Service")

	// 3. Load geo rules và catalog hành chính
	rules, err := config.LoadGeoRules(viper.GetString("data.geo_rules"))
	if err != nil {
		logger.Fatal("Failed to load geo rules", zap.Error(err))
	}

	cat, err := catalog.Load(viper.GetString("data.catalog"), logger)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}

	// 4. Khởi tạo components
	unitMatcher := matcher.NewMatcher(cat, logger)
	coordValidator := geo.NewValidator(rules.Bounds)
	listingStore := store.NewStore(viper.GetString("data.listings"), logger)
	if err := listingStore.EnsureLoaded(); err != nil {
		logger.Fatal("Failed to load listings", zap.Error(err))
	}

	// 5. Khởi tạo cache services (memory L1 + Redis L2 nếu cấu hình)
	l1Size := viper.GetInt("cache.l1_size")
	memoryCache, err := services.NewMemoryCacheService(l1Size, logger)
	if err != nil {
		logger.Fatal("Failed to initialize memory cache", zap.Error(err))
	}

	var l2 services.ICacheService
	if redisURL := viper.GetString("cache.redis_url"); redisURL != "" {
		redisCache, err := services.NewRedisCacheService(redisURL, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Redis cache", zap.Error(err))
		}
		l2 = redisCache
	}
	cacheService := services.NewHybridCacheService(memoryCache, l2, logger)

	// 6. Khởi tạo services
	searchEngine := search.NewEngine(listingStore, logger)
	validationService := services.NewValidationService(unitMatcher, coordValidator, logger)

	// 7. Khởi tạo controllers
	listingController := controllers.NewListingController(searchEngine, logger)
	validateController := controllers.NewValidateController(validationService, cacheService, cat, listingStore, logger)

	// 8. Khởi tạo Gin router
	router := gin.New()

	// 9. Thiết lập routes
	routes.SetupAllRoutes(router, listingController, validateController)

	// 10. Khởi động server
	port := viper.GetString("app.port")
	logger.Info("Listing Geo Service starting", zap.String("port", port))

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// initLogger khởi tạo structured logger
func initLogger() *zap.Logger {
	env := viper.GetString("app.env")
	if v := os.Getenv("APP_ENV"); v != "" {
		env = v
	}

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}

	return logger
}
