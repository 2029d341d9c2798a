package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/listing-geo/app/config"
	"github.com/listing-geo/app/models"
	"github.com/listing-geo/app/services"
	"github.com/listing-geo/internal/catalog"
	"github.com/listing-geo/internal/geo"
	"github.com/listing-geo/internal/matcher"
	"github.com/listing-geo/internal/report"
	"github.com/listing-geo/internal/store"
	"go.uber.org/zap"
)

func main() {
	var (
		catalogPath   = flag.String("catalog", "data/catalog.json", "đường dẫn file catalog hành chính")
		datasetPath   = flag.String("dataset", "data/listings.json", "đường dẫn file dataset listing")
		geoRulesPath  = flag.String("geo-rules", "", "file yaml geo rules (rỗng = mặc định)")
		outDir        = flag.String("out", "reports", "thư mục ghi báo cáo")
		fixDuplicates = flag.Bool("fix-duplicates", false, "jitter các nhóm tọa độ trùng và ghi dataset đã sửa")
		archiveURL    = flag.String("archive", "", "MongoDB URL để lưu báo cáo (rỗng = không lưu)")
	)
	flag.Parse()

	logger := initLogger()
	defer logger.Sync()

	rules, err := config.LoadGeoRules(*geoRulesPath)
	if err != nil {
		logger.Fatal("Failed to load geo rules", zap.Error(err))
	}

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
	coordValidator := geo.NewValidator(rules.Bounds)
	validationService := services.NewValidationService(unitMatcher, coordValidator, logger)

	outcomes := validationService.ValidateAll(listings)

	builder := report.NewBuilder(cat.Version, *datasetPath, rules.PreviewCap, logger)
	r := builder.Build(listings, outcomes)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Fatal("Failed to create output dir", zap.Error(err))
	}

	jsonPath := filepath.Join(*outDir, "report.json")
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		logger.Fatal("Failed to marshal report", zap.Error(err))
	}
	if err := os.WriteFile(jsonPath, b, 0o644); err != nil {
		logger.Fatal("Failed to write report.json", zap.Error(err))
	}

	mdPath := filepath.Join(*outDir, "report.md")
	if err := os.WriteFile(mdPath, []byte(report.RenderMarkdown(r)), 0o644); err != nil {
		logger.Fatal("Failed to write report.md", zap.Error(err))
	}

	if *fixDuplicates {
		if err := writeFixedDataset(listings, *outDir, logger); err != nil {
			logger.Fatal("Failed to write fixed dataset", zap.Error(err))
		}
	}

	if *archiveURL != "" {
		archiveReport(*archiveURL, r, logger)
	}

	printSummary(r, jsonPath, mdPath)

	if r.HasBuildFailure() {
		os.Exit(1)
	}
}

// writeFixedDataset jitter các nhóm trùng tọa độ và ghi dataset đã sửa
func writeFixedDataset(listings []models.Listing, outDir string, logger *zap.Logger) error {
	jitterer := geo.NewJitterer(rand.New(rand.NewSource(time.Now().UnixNano())))
	moved := jitterer.Apply(listings)
	for i := range listings {
		if p, ok := moved[listings[i].ID]; ok {
			listings[i].Latitude = p.Lat
			listings[i].Longitude = p.Lon
		}
	}

	fixedPath := filepath.Join(outDir, "listings_fixed.json")
	b, err := json.MarshalIndent(listings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	if err := os.WriteFile(fixedPath, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fixedPath, err)
	}

	logger.Info("Đã jitter tọa độ trùng",
		zap.Int("moved", len(moved)),
		zap.String("path", fixedPath))
	return nil
}

// archiveReport lưu báo cáo vào MongoDB, lỗi chỉ log chứ không fail run
func archiveReport(url string, r *models.ValidationReport, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	archive, err := report.NewArchive(ctx, url, "listing_geo", logger)
	if err != nil {
		logger.Warn("Không kết nối được archive", zap.Error(err))
		return
	}
	defer archive.Close(context.Background())

	// so với lần chạy trước để thấy dataset đang tốt lên hay xấu đi
	if prev, err := archive.Latest(ctx); err != nil {
		logger.Warn("Không đọc được báo cáo trước đó", zap.Error(err))
	} else if prev != nil {
		logger.Info("So với lần audit trước",
			zap.Time("prev_generated_at", prev.GeneratedAt),
			zap.Int("prev_invalid", prev.InvalidTotal),
			zap.Int("invalid", r.InvalidTotal),
			zap.Int("prev_duplicate_groups", len(prev.DuplicateGroups)),
			zap.Int("duplicate_groups", len(r.DuplicateGroups)))
	}

	if err := archive.Save(ctx, r); err != nil {
		logger.Warn("Không lưu được báo cáo vào archive", zap.Error(err))
		return
	}
	logger.Info("Đã lưu báo cáo vào archive")
}

func printSummary(r *models.ValidationReport, jsonPath, mdPath string) {
	fmt.Printf("Tổng listing:        %d\n", r.TotalRecords)
	fmt.Printf("Tọa độ hợp lệ:       %d (swap: %d, ngoài thành phố: %d)\n",
		r.Coords.Valid, r.SwappedCount, r.OutsideCityCount)
	fmt.Printf("Tọa độ lỗi:          %d\n", r.Coords.Invalid)
	fmt.Printf("Tỉnh/thành lỗi:      %d\n", r.Province.Invalid)
	fmt.Printf("Nhóm tọa độ trùng:   %d (%d listing)\n", len(r.DuplicateGroups), r.DuplicateAffected)
	fmt.Printf("Báo cáo:             %s, %s\n", jsonPath, mdPath)
}

func initLogger() *zap.Logger {
	logger, err := zap.NewDevelopmentConfig().Build()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}
	return logger
}
