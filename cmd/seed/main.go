package main

import (
	"flag"
	"log"
	"time"

	"github.com/listing-geo/app/config"
	"github.com/listing-geo/app/services"
	"github.com/listing-geo/internal/catalog"
	"github.com/listing-geo/internal/geo"
	"github.com/listing-geo/internal/matcher"
	"github.com/listing-geo/internal/search"
	"github.com/listing-geo/internal/store"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// seed validate dataset rồi đẩy listing (với tên hành chính chuẩn và
// tọa độ đã sửa) vào Meilisearch.
func main() {
	var (
		catalogPath = flag.String("catalog", "data/catalog.json", "đường dẫn file catalog hành chính")
		datasetPath = flag.String("dataset", "data/listings.json", "đường dẫn file dataset listing")
	)
	flag.Parse()

	config.LoadServerConfig()

	logger, err := zap.NewDevelopmentConfig().Build()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}
	defer logger.Sync()

	cat, err := catalog.Load(*catalogPath, logger)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}

	listingStore := store.NewStore(*datasetPath, logger)
	listings, err := listingStore.Listings()
	if err != nil {
		logger.Fatal("Failed to load listings", zap.Error(err))
	}

	unitMatcher := matcher.NewMatcher(cat, logger)
	coordValidator := geo.NewValidator(geo.VietnamBounds)
	validationService := services.NewValidationService(unitMatcher, coordValidator, logger)
	outcomes := validationService.ValidateAll(listings)

	indexer, err := search.NewMeiliIndexer(search.MeiliConfig{
		Host:      viper.GetString("meilisearch.url"),
		APIKey:    viper.GetString("meilisearch.master_key"),
		IndexName: viper.GetString("meilisearch.index"),
		Timeout:   30 * time.Second,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize Meilisearch", zap.Error(err))
	}

	if err := indexer.BuildIndexes(); err != nil {
		logger.Fatal("Failed to build Meilisearch indexes", zap.Error(err))
	}

	if err := indexer.SeedListings(listings, outcomes); err != nil {
		logger.Fatal("Failed to seed listings", zap.Error(err))
	}

	logger.Info("Seed hoàn tất",
		zap.Int("listings", len(listings)),
		zap.String("index", viper.GetString("meilisearch.index")))
}
