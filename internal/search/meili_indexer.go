package search

import (
	"errors"
	"fmt"
	"time"

	"github.com/listing-geo/app/models"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

// MeiliIndexer đẩy listing đã validate vào Meilisearch làm search index
// ngoài (full-text, typo-tolerant). Engine in-memory vẫn là nguồn chính
// cho filter/stats; Meilisearch phục vụ free-text search phía frontend.
type MeiliIndexer struct {
	client    meilisearch.ServiceManager
	logger    *zap.Logger
	indexName string
	timeout   time.Duration
}

// MeiliConfig cấu hình cho Meilisearch
type MeiliConfig struct {
	Host      string
	APIKey    string
	IndexName string
	Timeout   time.Duration
}

// NewMeiliIndexer tạo mới MeiliIndexer với Meilisearch client
func NewMeiliIndexer(config MeiliConfig, logger *zap.Logger) (*MeiliIndexer, error) {
	client := meilisearch.New(config.Host, meilisearch.WithAPIKey(config.APIKey))

	// Test connection
	if _, err := client.Health(); err != nil {
		return nil, fmt.Errorf("không thể kết nối Meilisearch: %w", err)
	}

	return &MeiliIndexer{
		client:    client,
		logger:    logger,
		indexName: config.IndexName,
		timeout:   config.Timeout,
	}, nil
}

// BuildIndexes cấu hình index settings cho listing
func (mi *MeiliIndexer) BuildIndexes() error {
	index := mi.client.Index(mi.indexName)

	searchableAttrs := []string{"title", "address", "province", "district", "ward"}
	filterableAttrs := []string{"province", "district", "ward", "type", "price", "area", "potential_score"}
	sortableAttrs := []string{"price", "area", "potential_score", "views"}
	rankingRules := []string{"words", "typo", "proximity", "attribute", "sort", "exactness"}
	stopWords := []string{"cua", "va", "tai", "o", "trong"}
	synonyms := map[string][]string{
		"tp":     {"thanh pho"},
		"hcm":    {"ho chi minh", "sai gon"},
		"q":      {"quan"},
		"p":      {"phuong"},
		"tp hcm": {"thanh pho ho chi minh", "tphcm"},
	}

	task, err := index.UpdateSettings(&meilisearch.Settings{
		SearchableAttributes: searchableAttrs,
		FilterableAttributes: filterableAttrs,
		SortableAttributes:   sortableAttrs,
		RankingRules:         rankingRules,
		StopWords:            stopWords,
		Synonyms:             synonyms,
		TypoTolerance: &meilisearch.TypoTolerance{
			Enabled: true,
			MinWordSizeForTypos: meilisearch.MinWordSizeForTypos{
				OneTypo:  3,
				TwoTypos: 7,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("lỗi cấu hình index: %w", err)
	}

	mi.logger.Info("Đã cấu hình index Meilisearch thành công", zap.Int64("task_uid", task.TaskUID))
	return nil
}

// SeedListings nạp listing vào Meilisearch. Outcome (nếu có, khớp theo
// thứ tự) được dùng để thay tên tỉnh/quận/phường bằng tên chuẩn và tọa
// độ bằng tọa độ đã sửa.
func (mi *MeiliIndexer) SeedListings(listings []models.Listing, outcomes []*models.ValidationOutcome) error {
	if len(listings) == 0 {
		return errors.New("không có dữ liệu để seed")
	}

	index := mi.client.Index(mi.indexName)

	var documents []map[string]interface{}
	for i := range listings {
		l := &listings[i]
		doc := map[string]interface{}{
			"id":              l.ID,
			"title":           l.Title,
			"address":         l.Address,
			"province":        l.Province,
			"district":        l.District,
			"ward":            l.Ward,
			"latitude":        l.Latitude,
			"longitude":       l.Longitude,
			"type":            l.Type,
			"area":            l.Area,
			"price":           l.Price,
			"views":           l.Views,
			"potential_score": l.PotentialScore(),
		}
		if i < len(outcomes) && outcomes[i] != nil {
			o := outcomes[i]
			if o.Province != nil {
				doc["province"] = o.Province.Name
			}
			if o.District != nil {
				doc["district"] = o.District.Name
			}
			if o.Ward != nil {
				doc["ward"] = o.Ward.Name
			}
			if o.CorrectedLat != nil && o.CorrectedLon != nil {
				doc["latitude"] = *o.CorrectedLat
				doc["longitude"] = *o.CorrectedLon
			}
		}
		documents = append(documents, doc)
	}

	// Batch insert (chunks of 1000)
	batchSize := 1000
	for i := 0; i < len(documents); i += batchSize {
		end := i + batchSize
		if end > len(documents) {
			end = len(documents)
		}

		task, err := index.AddDocuments(documents[i:end], "id")
		if err != nil {
			return fmt.Errorf("lỗi thêm documents batch %d-%d: %w", i, end, err)
		}

		mi.logger.Info("Đã thêm batch documents",
			zap.Int("from", i),
			zap.Int("to", end),
			zap.Int64("task_uid", task.TaskUID))
	}

	mi.logger.Info("Đã seed data thành công", zap.Int("total_documents", len(documents)))
	return nil
}
