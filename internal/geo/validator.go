package geo

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/golang/geo/s2"
	"github.com/listing-geo/app/models"
)

const earthRadiusKm = 6371.0

// Bounds khung tọa độ quốc gia (xấp xỉ lãnh thổ Việt Nam)
type Bounds struct {
	MinLat float64 `yaml:"min_lat"`
	MaxLat float64 `yaml:"max_lat"`
	MinLon float64 `yaml:"min_lon"`
	MaxLon float64 `yaml:"max_lon"`
}

// VietnamBounds biên mặc định: lat [8, 24], lon [102, 110]
var VietnamBounds = Bounds{MinLat: 8.0, MaxLat: 24.0, MinLon: 102.0, MaxLon: 110.0}

func (b Bounds) containsLat(lat float64) bool { return lat >= b.MinLat && lat <= b.MaxLat }
func (b Bounds) containsLon(lon float64) bool { return lon >= b.MinLon && lon <= b.MaxLon }

// CoordResult kết quả validate một cặp tọa độ
type CoordResult struct {
	Valid        bool
	CorrectedLat *float64 // nil khi INVALID_COORDS
	CorrectedLon *float64
	Swapped      bool
	Errors       []string
	Warnings     []string

	// Khoảng cách tới tâm tỉnh (km), advisory, 0 khi không có tỉnh
	CenterDistanceKm float64
}

// Validator kiểm tra tọa độ theo biên quốc gia và bbox tỉnh/thành
type Validator struct {
	bounds Bounds
}

// NewValidator tạo validator với biên quốc gia cho trước
func NewValidator(bounds Bounds) *Validator {
	return &Validator{bounds: bounds}
}

// Validate kiểm tra cặp (lat, lon) đã parse. NaN/Inf coi như không parse
// được → INVALID_COORDS. Phát hiện đảo trục: cặp gốc ngoài biên nhưng cặp
// đảo nằm trong biên thì sửa lại và ghi cảnh báo COORDS_SWAPPED. Sau sửa,
// trượt biên là lỗi cứng. Lọt ra ngoài bbox tỉnh chỉ là cảnh báo vì bbox
// thành phố là xấp xỉ.
func (v *Validator) Validate(lat, lon float64, province *models.AdminUnit) CoordResult {
	var r CoordResult

	if !isFinite(lat) || !isFinite(lon) {
		r.Errors = append(r.Errors, models.ErrInvalidCoords)
		return r
	}

	cLat, cLon := lat, lon
	if !v.bounds.containsLat(cLat) || !v.bounds.containsLon(cLon) {
		if v.bounds.containsLat(lon) && v.bounds.containsLon(lat) {
			cLat, cLon = lon, lat
			r.Swapped = true
			r.Warnings = append(r.Warnings, models.WarnCoordsSwapped)
		}
	}

	if !v.bounds.containsLat(cLat) {
		r.Errors = append(r.Errors, models.ErrLatOutOfBounds)
	}
	if !v.bounds.containsLon(cLon) {
		r.Errors = append(r.Errors, models.ErrLonOutOfBounds)
	}

	r.CorrectedLat = &cLat
	r.CorrectedLon = &cLon
	r.Valid = len(r.Errors) == 0

	if r.Valid && province != nil {
		if !province.BBox.IsZero() && !province.BBox.Contains(cLat, cLon) {
			r.Warnings = append(r.Warnings, models.WarnCoordsOutsideCity)
		}
		r.CenterDistanceKm = DistanceKm(cLat, cLon, province.Center.Lat, province.Center.Lon)
	}

	return r
}

// ParseCoord ép một giá trị JSON bất kỳ về float64; không parse được
// trả về NaN để Validate gắn INVALID_COORDS thay vì đẩy lỗi lên caller.
func ParseCoord(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(x, 64); err == nil {
			return f
		}
	}
	return math.NaN()
}

// DistanceKm khoảng cách great-circle giữa hai điểm
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	a := s2.LatLngFromDegrees(lat1, lon1)
	b := s2.LatLngFromDegrees(lat2, lon2)
	return a.Distance(b).Radians() * earthRadiusKm
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
