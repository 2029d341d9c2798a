package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/listing-geo/app/models"
	"github.com/listing-geo/internal/geo"
	"go.uber.org/zap"
)

// Store cache in-memory của dataset listing. Load một lần khi truy cập
// đầu tiên (sync.Once) và bất biến cho tới hết đời process — store được
// construct một lần ở đầu process và inject vào consumer, không dùng
// singleton ngầm mức package.
type Store struct {
	path   string
	logger *zap.Logger

	once     sync.Once
	loadErr  error
	listings []models.Listing
}

// rawListing shadow lat/lon để chấp nhận cả số lẫn chuỗi trong dataset;
// giá trị không parse được giữ NaN cho validator gắn INVALID_COORDS.
type rawListing struct {
	models.Listing
	Latitude  any `json:"latitude"`
	Longitude any `json:"longitude"`
}

// NewStore tạo store cho một file dataset; chưa load gì cho tới EnsureLoaded
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// EnsureLoaded load dataset nếu chưa load; gọi lặp lại là no-op.
// File thiếu là fatal với caller — không có hoạt động nào có nghĩa
// khi thiếu dataset.
func (s *Store) EnsureLoaded() error {
	s.once.Do(func() {
		b, err := os.ReadFile(s.path)
		if err != nil {
			s.loadErr = fmt.Errorf("không đọc được dataset %s: %w", s.path, err)
			return
		}

		var raw []rawListing
		if err := json.Unmarshal(b, &raw); err != nil {
			s.loadErr = fmt.Errorf("dataset %s không phải JSON hợp lệ: %w", s.path, err)
			return
		}

		s.listings = make([]models.Listing, len(raw))
		for i, r := range raw {
			l := r.Listing
			l.Latitude = geo.ParseCoord(r.Latitude)
			l.Longitude = geo.ParseCoord(r.Longitude)
			s.listings[i] = l
		}

		s.logger.Info("Đã load dataset listing",
			zap.String("path", s.path),
			zap.Int("count", len(s.listings)))
	})
	return s.loadErr
}

// Listings trả về toàn bộ listing; slice trả về là read-only theo quy ước
func (s *Store) Listings() ([]models.Listing, error) {
	if err := s.EnsureLoaded(); err != nil {
		return nil, err
	}
	return s.listings, nil
}

// FromListings store dựng sẵn từ memory, dùng cho test
func FromListings(listings []models.Listing, logger *zap.Logger) *Store {
	s := &Store{logger: logger, listings: listings}
	s.once.Do(func() {})
	return s
}
