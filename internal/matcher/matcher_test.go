package matcher

import (
	"testing"

	"github.com/listing-geo/app/models"
	"github.com/listing-geo/internal/catalog"
	"go.uber.org/zap"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	units := []models.AdminUnit{
		{
			Code: "01", Name: "Thành phố Hà Nội", Level: models.LevelProvince,
			Aliases: []string{"Hà Nội", "HN"},
			Center:  models.Point{Lat: 21.03, Lon: 105.85},
			BBox:    models.BBox{105.3, 20.5, 106.0, 21.4},
		},
		{
			Code: "79", Name: "Thành phố Hồ Chí Minh", Level: models.LevelProvince,
			Aliases: []string{"TP HCM", "TPHCM", "Sài Gòn", "HCM"},
			Center:  models.Point{Lat: 10.78, Lon: 106.70},
			BBox:    models.BBox{106.3, 10.3, 107.1, 11.2},
		},
		{
			Code: "001", Name: "Quận Ba Đình", Level: models.LevelDistrict, Parent: "Thành phố Hà Nội",
			Center: models.Point{Lat: 21.04, Lon: 105.83},
			BBox:   models.BBox{105.80, 21.02, 105.86, 21.06},
		},
		{
			Code: "760", Name: "Quận 1", Level: models.LevelDistrict, Parent: "Thành phố Hồ Chí Minh",
			Center: models.Point{Lat: 10.776, Lon: 106.700},
			BBox:   models.BBox{106.69, 10.76, 106.71, 10.79},
		},
		{
			Code: "005", Name: "Quận Cầu Giấy", Level: models.LevelDistrict, Parent: "Thành phố Hà Nội",
			Center: models.Point{Lat: 21.03, Lon: 105.79},
			BBox:   models.BBox{105.76, 21.01, 105.82, 21.06},
		},
		{
			Code: "00001", Name: "Phường Phúc Xá", Level: models.LevelWard, Parent: "Quận Ba Đình",
			Center: models.Point{Lat: 21.05, Lon: 105.85},
			BBox:   models.BBox{105.84, 21.04, 105.86, 21.06},
		},
		{
			Code: "26734", Name: "Phường Bến Nghé", Level: models.LevelWard, Parent: "Quận 1",
			Center: models.Point{Lat: 10.78, Lon: 106.70},
			BBox:   models.BBox{106.69, 10.77, 106.71, 10.79},
		},
	}
	c, err := catalog.FromUnits("test", units, zap.NewNop())
	if err != nil {
		t.Fatalf("build test catalog: %v", err)
	}
	return c
}

func TestFindProvince(t *testing.T) {
	m := NewMatcher(testCatalog(t), zap.NewNop())

	testCases := []struct {
		name     string
		input    string
		expected string // code, rỗng nếu muốn nil
	}{
		{name: "Canonical name", input: "Thành phố Hà Nội", expected: "01"},
		{name: "No diacritics", input: "Ha Noi", expected: "01"},
		{name: "Alias", input: "HN", expected: "01"},
		{name: "Alias Sai Gon", input: "Sài Gòn", expected: "79"},
		{name: "Duplicated prefix", input: "Thành phố Thành phố Hà Nội", expected: "01"},
		{name: "Substring", input: "ha noi viet nam", expected: "01"},
		{name: "Unknown", input: "Tokyo", expected: ""},
		{name: "Empty", input: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := m.FindProvince(tc.input)
			if tc.expected == "" {
				if got != nil {
					t.Errorf("FindProvince(%q) = %q, want nil", tc.input, got.Name)
				}
				return
			}
			if got == nil || got.Code != tc.expected {
				t.Errorf("FindProvince(%q) = %v, want code %s", tc.input, got, tc.expected)
			}
		})
	}
}

// "Q1", "Q.1", "Quận 01" phải resolve về cùng quận với "Quận 1"
func TestFindDistrict_NumberedVariants(t *testing.T) {
	m := NewMatcher(testCatalog(t), zap.NewNop())

	for _, input := range []string{"Quận 1", "Q1", "Q.1", "Q 1", "Quận 01", "1"} {
		got := m.FindDistrict(input, "Hồ Chí Minh")
		if got == nil || got.Code != "760" {
			t.Errorf("FindDistrict(%q) = %v, want Quận 1", input, got)
		}
	}
}

func TestFindDistrict_AbbreviatedName(t *testing.T) {
	m := NewMatcher(testCatalog(t), zap.NewNop())

	got := m.FindDistrict("Q. Ba Dinh", "Ha Noi")
	if got == nil || got.Code != "001" {
		t.Errorf("FindDistrict(Q. Ba Dinh) = %v, want Quận Ba Đình", got)
	}

	got = m.FindDistrict("Quận Quận Cầu Giấy", "")
	if got == nil || got.Code != "005" {
		t.Errorf("FindDistrict với prefix lặp = %v, want Quận Cầu Giấy", got)
	}
}

func TestFindWard(t *testing.T) {
	m := NewMatcher(testCatalog(t), zap.NewNop())

	got := m.FindWard("P. Bến Nghé", "Quận 1", "Hồ Chí Minh")
	if got == nil || got.Code != "26734" {
		t.Errorf("FindWard(P. Bến Nghé) = %v, want Phường Bến Nghé", got)
	}

	if got := m.FindWard("Phường Không Tồn Tại", "", ""); got != nil {
		t.Errorf("FindWard cho phường lạ phải trả nil, got %v", got)
	}
}

// Tên phường trùng nhau giữa các tỉnh phải phân xử được bằng hint tỉnh
// ngay cả khi không có hint quận — ward nối với tỉnh qua quận cha.
func TestFindWard_ProvinceHintDisambiguates(t *testing.T) {
	units := []models.AdminUnit{
		{
			Code: "89", Name: "Tỉnh An Giang", Level: models.LevelProvince,
			Center: models.Point{Lat: 10.52, Lon: 105.12},
			BBox:   models.BBox{104.7, 10.1, 105.6, 10.96},
		},
		{
			Code: "27", Name: "Tỉnh Bắc Ninh", Level: models.LevelProvince,
			Center: models.Point{Lat: 21.18, Lon: 106.06},
			BBox:   models.BBox{105.9, 20.99, 106.3, 21.27},
		},
		{
			Code: "886", Name: "Huyện Châu Phú", Level: models.LevelDistrict, Parent: "Tỉnh An Giang",
			Center: models.Point{Lat: 10.57, Lon: 105.24},
			BBox:   models.BBox{105.1, 10.45, 105.35, 10.68},
		},
		{
			Code: "259", Name: "Thị xã Quế Võ", Level: models.LevelDistrict, Parent: "Tỉnh Bắc Ninh",
			Center: models.Point{Lat: 21.15, Lon: 106.16},
			BBox:   models.BBox{106.08, 21.07, 106.26, 21.21},
		},
		{
			Code: "WA", Name: "Phường Đông", Level: models.LevelWard, Parent: "Huyện Châu Phú",
			Center: models.Point{Lat: 10.58, Lon: 105.25},
			BBox:   models.BBox{105.2, 10.55, 105.3, 10.62},
		},
		{
			Code: "WB", Name: "Phường Đông", Level: models.LevelWard, Parent: "Thị xã Quế Võ",
			Center: models.Point{Lat: 21.14, Lon: 106.17},
			BBox:   models.BBox{106.12, 21.1, 106.22, 21.18},
		},
	}
	c, err := catalog.FromUnits("test", units, zap.NewNop())
	if err != nil {
		t.Fatalf("build test catalog: %v", err)
	}
	m := NewMatcher(c, zap.NewNop())

	// chỉ có hint tỉnh
	got := m.FindWard("Phường Đông", "", "Bắc Ninh")
	if got == nil || got.Code != "WB" {
		t.Errorf("FindWard với hint tỉnh Bắc Ninh = %v, want WB", got)
	}
	got = m.FindWard("Phường Đông", "", "An Giang")
	if got == nil || got.Code != "WA" {
		t.Errorf("FindWard với hint tỉnh An Giang = %v, want WA", got)
	}

	// hint quận vẫn thắng như trước
	got = m.FindWard("Phường Đông", "Quế Võ", "")
	if got == nil || got.Code != "WB" {
		t.Errorf("FindWard với hint quận Quế Võ = %v, want WB", got)
	}

	// không hint nào thì lấy theo thứ tự catalog, không panic
	if got := m.FindWard("Phường Đông", "", ""); got == nil {
		t.Error("FindWard không hint phải vẫn trả một ứng viên")
	}
}

func TestMatcher_NeverPanicsOnGarbage(t *testing.T) {
	m := NewMatcher(testCatalog(t), zap.NewNop())
	for _, s := range []string{"", "   ", "!!!", "123abc??", "quận", "q."} {
		_ = m.FindProvince(s)
		_ = m.FindDistrict(s, s)
		_ = m.FindWard(s, s, s)
	}
}

func TestSuggestClosest(t *testing.T) {
	m := NewMatcher(testCatalog(t), zap.NewNop())

	sug := m.SuggestClosest("Ha Nio", models.LevelProvince)
	if sug == nil || sug.Unit.Code != "01" {
		t.Errorf("SuggestClosest(Ha Nio) = %v, want Hà Nội", sug)
	}

	if sug := m.SuggestClosest("xyzqwk", models.LevelProvince); sug != nil && sug.Score >= 0.9 {
		t.Errorf("SuggestClosest cho chuỗi rác không được trả điểm cao: %v", sug)
	}
}
