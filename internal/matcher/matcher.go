package matcher

import (
	"math"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/listing-geo/app/models"
	"github.com/listing-geo/internal/catalog"
	"github.com/listing-geo/internal/normalizer"
	"github.com/xrash/smetrics"
	"go.uber.org/zap"
)

const defaultCacheSize = 4096

// Matcher tra cứu free-text tỉnh/quận/phường về đơn vị chính tắc trong
// catalog. Thứ tự chiến lược: exact → alias → numbered-unit → substring;
// dừng ở chiến lược đầu tiên có kết quả. Không bao giờ trả lỗi cho input
// không match được — chỉ trả nil.
type Matcher struct {
	catalog *catalog.Catalog
	cache   *lru.Cache[string, *models.AdminUnit]
	logger  *zap.Logger
}

// NewMatcher tạo mới Matcher với memo cache LRU cho các query đã resolve
func NewMatcher(c *catalog.Catalog, logger *zap.Logger) *Matcher {
	cache, err := lru.New[string, *models.AdminUnit](defaultCacheSize)
	if err != nil {
		// chỉ xảy ra khi size <= 0
		logger.Warn("Không tạo được LRU cache cho matcher", zap.Error(err))
	}
	return &Matcher{catalog: c, cache: cache, logger: logger}
}

// FindProvince resolve free-text tỉnh/thành về đơn vị chính tắc, nil nếu không match
func (m *Matcher) FindProvince(text string) *models.AdminUnit {
	q := normalizer.Normalize(normalizer.RemoveDuplicatePrefix(text))
	if q == "" {
		return nil
	}
	return m.lookup("p|"+q, q, m.catalog.ListProvinces(), "", "")
}

// FindDistrict resolve quận/huyện; provinceHint (nếu có) dùng để lọc khi
// nhiều ứng viên cùng match.
func (m *Matcher) FindDistrict(text, provinceHint string) *models.AdminUnit {
	q := normalizer.NormalizeDistrict(normalizer.RemoveDuplicatePrefix(text))
	if q == "" {
		return nil
	}
	hint := normalizer.Normalize(provinceHint)
	return m.lookup("d|"+q+"|"+hint, q, m.catalog.Districts(), hint, "")
}

// FindWard resolve phường/xã; districtHint lọc theo quận cha, provinceHint
// lọc theo tỉnh ông bà (tên phường trùng nhau giữa các tỉnh rất phổ biến).
func (m *Matcher) FindWard(text, districtHint, provinceHint string) *models.AdminUnit {
	q := normalizer.Normalize(normalizer.RemoveDuplicatePrefix(text))
	if q == "" {
		return nil
	}
	dHint := normalizer.NormalizeDistrict(districtHint)
	pHint := normalizer.Normalize(provinceHint)
	return m.lookup("w|"+q+"|"+dHint+"|"+pHint, q, m.catalog.Wards(), dHint, pHint)
}

// lookup chạy chuỗi chiến lược match trên danh sách ứng viên một cấp
func (m *Matcher) lookup(cacheKey, q string, units []models.AdminUnit, parentHint, provinceHint string) *models.AdminUnit {
	if m.cache != nil {
		if hit, ok := m.cache.Get(cacheKey); ok {
			return hit
		}
	}

	result := m.match(q, units, parentHint, provinceHint)

	if m.cache != nil {
		m.cache.Add(cacheKey, result)
	}
	return result
}

// match gom ứng viên theo từng chiến lược; chiến lược đầu tiên có kết
// quả thắng, nhiều ứng viên cùng match thì phân xử bằng hint.
func (m *Matcher) match(q string, units []models.AdminUnit, parentHint, provinceHint string) *models.AdminUnit {
	// 1. Exact theo tên chính tắc đã chuẩn hóa
	var cands []*models.AdminUnit
	for i := range units {
		if unitKey(&units[i]) == q {
			cands = append(cands, &units[i])
		}
	}
	if len(cands) > 0 {
		return m.disambiguate(cands, parentHint, provinceHint)
	}

	// 2. Exact theo alias đã chuẩn hóa
	for i := range units {
		for _, alias := range units[i].Aliases {
			if normalizer.Normalize(alias) == q {
				cands = append(cands, &units[i])
				break
			}
		}
	}
	if len(cands) > 0 {
		return m.disambiguate(cands, parentHint, provinceHint)
	}

	// 3. Numbered-unit: "Quận 01" == "Quận 1" — sau khi strip tiền tố
	// hai vế đều còn lại chuỗi số, so sánh theo giá trị
	if qNum, ok := digitsValue(q); ok {
		for i := range units {
			if uNum, ok := digitsValue(unitKey(&units[i])); ok && uNum == qNum {
				cands = append(cands, &units[i])
			}
		}
		if len(cands) > 0 {
			return m.disambiguate(cands, parentHint, provinceHint)
		}
	}

	// 4. Substring hai chiều trên dạng đã strip tiền tố
	for i := range units {
		key := unitKey(&units[i])
		if key == "" {
			continue
		}
		if strings.Contains(q, key) || strings.Contains(key, q) {
			cands = append(cands, &units[i])
		}
	}
	if len(cands) == 0 {
		return nil
	}
	return m.disambiguate(cands, parentHint, provinceHint)
}

// disambiguate chọn một ứng viên khi nhiều đơn vị cùng match: lọc theo
// hint cha trực tiếp trước, rồi theo hint tỉnh qua quận cha (với phường),
// cuối cùng lấy ứng viên đầu theo thứ tự catalog. Hint không khớp ai thì
// bỏ qua thay vì trả nil — hint là free-text, có thể chính nó sai.
func (m *Matcher) disambiguate(cands []*models.AdminUnit, parentHint, provinceHint string) *models.AdminUnit {
	if len(cands) > 1 && parentHint != "" {
		filtered := make([]*models.AdminUnit, 0, len(cands))
		for _, s := range cands {
			if normalizer.NormalizeDistrict(s.Parent) == parentHint || normalizer.Normalize(s.Parent) == parentHint {
				filtered = append(filtered, s)
			}
		}
		if len(filtered) > 0 {
			cands = filtered
		}
	}
	if len(cands) > 1 && provinceHint != "" {
		filtered := make([]*models.AdminUnit, 0, len(cands))
		for _, s := range cands {
			if m.districtInProvince(s.Parent, provinceHint) {
				filtered = append(filtered, s)
			}
		}
		if len(filtered) > 0 {
			cands = filtered
		}
	}
	return cands[0]
}

// districtInProvince kiểm tra quận/huyện (theo tên) có thuộc tỉnh đã
// chuẩn hóa không — nối phường với hint tỉnh qua đơn vị cha của nó
func (m *Matcher) districtInProvince(districtName, provinceHint string) bool {
	key := normalizer.NormalizeDistrict(districtName)
	districts := m.catalog.Districts()
	for i := range districts {
		if unitKey(&districts[i]) == key && normalizer.Normalize(districts[i].Parent) == provinceHint {
			return true
		}
	}
	return false
}

// unitKey key so sánh của một đơn vị: tên chính tắc qua normalizer
// (biến thể district cho cấp quận/huyện)
func unitKey(u *models.AdminUnit) string {
	if u.IsDistrict() {
		return normalizer.NormalizeDistrict(u.Name)
	}
	return normalizer.Normalize(u.Name)
}

// digitsValue parse chuỗi toàn chữ số ("01" → 1); ok=false nếu không phải số
func digitsValue(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Suggestion gợi ý fuzzy cho các giá trị không resolve được, chỉ mang
// tính advisory trong báo cáo audit — không bao giờ dùng để tự resolve.
type Suggestion struct {
	Unit  *models.AdminUnit
	Score float64
}

// SuggestClosest tìm đơn vị gần nhất theo Jaro-Winkler và Levenshtein,
// trả nil nếu điểm tốt nhất dưới ngưỡng 0.6.
func (m *Matcher) SuggestClosest(text string, level int) *Suggestion {
	q := normalizer.Normalize(normalizer.RemoveDuplicatePrefix(text))
	if q == "" {
		return nil
	}

	var units []models.AdminUnit
	switch level {
	case models.LevelProvince:
		units = m.catalog.ListProvinces()
	case models.LevelDistrict:
		units = m.catalog.Districts()
	case models.LevelWard:
		units = m.catalog.Wards()
	default:
		return nil
	}

	best := &Suggestion{}
	for i := range units {
		key := unitKey(&units[i])
		score := smetrics.JaroWinkler(q, key, 0.7, 4)

		levDist := levenshtein.ComputeDistance(q, key)
		maxLen := math.Max(float64(len(q)), float64(len(key)))
		if maxLen > 0 {
			if levScore := 1.0 - float64(levDist)/maxLen; levScore > score {
				score = levScore
			}
		}

		if score > best.Score {
			best.Unit = &units[i]
			best.Score = score
		}
	}

	if best.Unit == nil || best.Score < 0.6 {
		return nil
	}
	return best
}
