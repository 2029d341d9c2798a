package geo

import (
	"math"
	"testing"

	"github.com/listing-geo/app/models"
)

func TestValidate_SwapDetection(t *testing.T) {
	v := NewValidator(VietnamBounds)

	// Hà Nội với hai trục bị đảo
	r := v.Validate(105.85, 21.03, nil)

	if !r.Swapped {
		t.Fatal("expected swapped=true")
	}
	if !r.Valid {
		t.Errorf("swap là cảnh báo, không phải lỗi cứng; errors=%v", r.Errors)
	}
	if r.CorrectedLat == nil || math.Abs(*r.CorrectedLat-21.03) > 1e-9 {
		t.Errorf("corrected lat = %v, want 21.03", r.CorrectedLat)
	}
	if r.CorrectedLon == nil || math.Abs(*r.CorrectedLon-105.85) > 1e-9 {
		t.Errorf("corrected lon = %v, want 105.85", r.CorrectedLon)
	}
	if !hasCode(r.Warnings, models.WarnCoordsSwapped) {
		t.Errorf("warnings = %v, want COORDS_SWAPPED", r.Warnings)
	}
}

func TestValidate_OutOfBounds(t *testing.T) {
	v := NewValidator(VietnamBounds)

	r := v.Validate(50.0, 105.85, nil)
	if r.Valid {
		t.Error("lat=50 phải fail")
	}
	if !hasCode(r.Errors, models.ErrLatOutOfBounds) {
		t.Errorf("errors = %v, want LAT_OUT_OF_BOUNDS", r.Errors)
	}

	r = v.Validate(21.0, 150.0, nil)
	if !hasCode(r.Errors, models.ErrLonOutOfBounds) {
		t.Errorf("errors = %v, want LON_OUT_OF_BOUNDS", r.Errors)
	}
}

func TestValidate_InvalidCoords(t *testing.T) {
	v := NewValidator(VietnamBounds)

	r := v.Validate(math.NaN(), 105.0, nil)
	if r.Valid || !hasCode(r.Errors, models.ErrInvalidCoords) {
		t.Errorf("NaN phải cho INVALID_COORDS, got %+v", r)
	}
	if r.CorrectedLat != nil || r.CorrectedLon != nil {
		t.Error("INVALID_COORDS không được có corrected coords")
	}
}

func TestValidate_CityBounds(t *testing.T) {
	v := NewValidator(VietnamBounds)
	hanoi := &models.AdminUnit{
		Name:   "Thành phố Hà Nội",
		Level:  models.LevelProvince,
		Center: models.Point{Lat: 21.03, Lon: 105.85},
		BBox:   models.BBox{105.3, 20.5, 106.0, 21.4},
	}

	// điểm trong bbox: không có cảnh báo
	r := v.Validate(21.04, 105.83, hanoi)
	if !r.Valid || hasCode(r.Warnings, models.WarnCoordsOutsideCity) {
		t.Errorf("điểm trong bbox không được cảnh báo: %+v", r)
	}

	// điểm hợp lệ quốc gia nhưng ngoài bbox Hà Nội: cảnh báo, vẫn valid
	r = v.Validate(10.78, 106.70, hanoi)
	if !r.Valid {
		t.Error("ngoài bbox thành phố vẫn phải valid")
	}
	if !hasCode(r.Warnings, models.WarnCoordsOutsideCity) {
		t.Errorf("warnings = %v, want COORDS_OUTSIDE_CITY", r.Warnings)
	}
	if r.CenterDistanceKm < 1000 {
		t.Errorf("HCM cách Hà Nội > 1000km, got %.0f", r.CenterDistanceKm)
	}
}

func TestParseCoord(t *testing.T) {
	if got := ParseCoord("21.03"); math.Abs(got-21.03) > 1e-9 {
		t.Errorf("ParseCoord string = %v", got)
	}
	if got := ParseCoord(105.85); got != 105.85 {
		t.Errorf("ParseCoord float = %v", got)
	}
	if got := ParseCoord("abc"); !math.IsNaN(got) {
		t.Errorf("ParseCoord(abc) = %v, want NaN", got)
	}
	if got := ParseCoord(nil); !math.IsNaN(got) {
		t.Errorf("ParseCoord(nil) = %v, want NaN", got)
	}
}

func hasCode(codes []string, want string) bool {
	for _, c := range codes {
		if c == want {
			return true
		}
	}
	return false
}
