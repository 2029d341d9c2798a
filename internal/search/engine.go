package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/listing-geo/app/models"
	"github.com/listing-geo/internal/normalizer"
	"github.com/listing-geo/internal/store"
	"go.uber.org/zap"
)

// Filters bộ lọc tìm kiếm, mọi trường đều optional và AND với nhau.
// Giá trị do user nhập tùy ý không bao giờ gây lỗi — filter không khớp
// chỉ đơn giản loại listing ra.
type Filters struct {
	Province string `json:"province,omitempty" form:"province"`
	District string `json:"district,omitempty" form:"district"`
	Ward     string `json:"ward,omitempty" form:"ward"`
	Type     string `json:"type,omitempty" form:"type"`

	MinPrice          *float64 `json:"minPrice,omitempty" form:"minPrice"`
	MaxPrice          *float64 `json:"maxPrice,omitempty" form:"maxPrice"`
	MinArea           *float64 `json:"minArea,omitempty" form:"minArea"`
	MaxArea           *float64 `json:"maxArea,omitempty" form:"maxArea"`
	MinPotentialScore *float64 `json:"minPotentialScore,omitempty" form:"minPotentialScore"`
}

// Stats thống kê count/min/max/avg trên tập đã lọc
type Stats struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
	Total float64 `json:"total"`
}

// Engine search/filter trên listing store, dùng chung cho API search
// và batch audit.
type Engine struct {
	store  *store.Store
	logger *zap.Logger
}

// NewEngine tạo engine trên một store đã inject
func NewEngine(s *store.Store, logger *zap.Logger) *Engine {
	return &Engine{store: s, logger: logger}
}

// Search lọc listing theo filters và cắt còn limit phần tử. Kết quả sắp
// theo điểm tiềm năng giảm dần (thiếu = 0), hòa thì views giảm dần, hòa
// nữa giữ thứ tự input — ổn định và deterministic. limit <= 0 trả rỗng.
func (e *Engine) Search(f Filters, limit int) ([]models.Listing, error) {
	if limit <= 0 {
		return []models.Listing{}, nil
	}

	listings, err := e.store.Listings()
	if err != nil {
		return nil, err
	}

	matched := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if e.matches(&l, &f) {
			matched = append(matched, l)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		si, sj := matched[i].PotentialScore(), matched[j].PotentialScore()
		if si != sj {
			return si > sj
		}
		return matched[i].Views > matched[j].Views
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// StatsBy tính thống kê cho price hoặc area trên tập đã lọc.
// Tập rỗng trả về toàn zero, không bao giờ NaN hay chia cho 0.
func (e *Engine) StatsBy(field string, f Filters) (Stats, error) {
	getter, err := fieldGetter(field)
	if err != nil {
		return Stats{}, err
	}

	matched, err := e.Search(f, int(^uint(0)>>1))
	if err != nil {
		return Stats{}, err
	}
	if len(matched) == 0 {
		return Stats{}, nil
	}

	s := Stats{Count: len(matched), Min: getter(&matched[0]), Max: getter(&matched[0])}
	for i := range matched {
		v := getter(&matched[i])
		s.Total += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Avg = s.Total / float64(s.Count)
	return s, nil
}

// TopListings lọc rồi sắp lại theo trường yêu cầu (price, area,
// potentialScore, views), order "asc" hoặc "desc" (mặc định desc),
// trường số thiếu coi như 0.
func (e *Engine) TopListings(sortBy, order string, limit int, f Filters) ([]models.Listing, error) {
	getter, err := fieldGetter(sortBy)
	if err != nil {
		return nil, err
	}

	matched, err := e.Search(f, int(^uint(0)>>1))
	if err != nil {
		return nil, err
	}

	asc := strings.EqualFold(order, "asc")
	sort.SliceStable(matched, func(i, j int) bool {
		vi, vj := getter(&matched[i]), getter(&matched[j])
		if asc {
			return vi < vj
		}
		return vi > vj
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (e *Engine) matches(l *models.Listing, f *Filters) bool {
	if f.Province != "" && !provinceContains(l.Province, f.Province) {
		return false
	}
	if f.District != "" && !strings.Contains(normalizer.AsciiFold(l.District), normalizer.AsciiFold(f.District)) {
		return false
	}
	if f.Ward != "" && !strings.Contains(normalizer.AsciiFold(l.Ward), normalizer.AsciiFold(f.Ward)) {
		return false
	}
	if f.Type != "" && !strings.EqualFold(l.Type, f.Type) {
		return false
	}
	if f.MinPrice != nil && l.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && l.Price > *f.MaxPrice {
		return false
	}
	if f.MinArea != nil && l.Area < *f.MinArea {
		return false
	}
	if f.MaxArea != nil && l.Area > *f.MaxArea {
		return false
	}
	if f.MinPotentialScore != nil && l.PotentialScore() < *f.MinPotentialScore {
		return false
	}
	return true
}

// provinceContains so khớp tỉnh/thành kiểu lỏng: strip "thành phố"/"tỉnh"
// hai phía rồi xét containment hai chiều — cố ý lỏng hơn Matcher để chịu
// được tên gõ dở dang của user.
func provinceContains(have, want string) bool {
	h := stripCityPrefix(normalizer.AsciiFold(have))
	w := stripCityPrefix(normalizer.AsciiFold(want))
	if h == "" || w == "" {
		return false
	}
	return strings.Contains(h, w) || strings.Contains(w, h)
}

func stripCityPrefix(s string) string {
	for _, p := range []string{"thanh pho ", "tinh "} {
		if strings.HasPrefix(s, p) {
			return strings.TrimSpace(s[len(p):])
		}
	}
	return s
}

func fieldGetter(field string) (func(*models.Listing) float64, error) {
	switch field {
	case "price":
		return func(l *models.Listing) float64 { return l.Price }, nil
	case "area":
		return func(l *models.Listing) float64 { return l.Area }, nil
	case "potentialScore":
		return func(l *models.Listing) float64 { return l.PotentialScore() }, nil
	case "views":
		return func(l *models.Listing) float64 { return float64(l.Views) }, nil
	default:
		return nil, fmt.Errorf("trường không hỗ trợ: %q", field)
	}
}
