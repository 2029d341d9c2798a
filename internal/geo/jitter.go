package geo

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/listing-geo/app/models"
)

// Bán kính jitter: 0.0002–0.0003 độ (~20–30 m)
const (
	JitterRadiusMin = 0.0002
	JitterRadiusMax = 0.0003
)

// CoordKey key nhóm trùng: tọa độ làm tròn 6 chữ số thập phân (~0.11 m)
func CoordKey(lat, lon float64) string {
	return fmt.Sprintf("%.6f,%.6f", lat, lon)
}

// FindDuplicates gom listing theo tọa độ làm tròn và trả về mọi nhóm có
// hơn một thành viên, theo thứ tự xuất hiện trong input. Tọa độ không
// parse được bị bỏ qua — chúng đã mang lỗi INVALID_COORDS riêng.
func FindDuplicates(listings []models.Listing) []models.DuplicateGroup {
	byKey := make(map[string][]string)
	var order []string

	for _, l := range listings {
		if !isFinite(l.Latitude) || !isFinite(l.Longitude) {
			continue
		}
		key := CoordKey(l.Latitude, l.Longitude)
		if _, seen := byKey[key]; !seen {
			order = append(order, key)
		}
		byKey[key] = append(byKey[key], l.ID)
	}

	var groups []models.DuplicateGroup
	for _, key := range order {
		ids := byKey[key]
		if len(ids) > 1 {
			groups = append(groups, models.DuplicateGroup{
				CoordKey: key,
				IDs:      ids,
				Size:     len(ids),
			})
		}
	}
	return groups
}

// Jitterer sinh offset tách các điểm trùng tọa độ trên bản đồ. RNG được
// inject để test chạy với seed cố định; production dùng rand mặc định.
type Jitterer struct {
	rng *rand.Rand
}

// NewJitterer tạo Jitterer với nguồn ngẫu nhiên cho trước
func NewJitterer(rng *rand.Rand) *Jitterer {
	return &Jitterer{rng: rng}
}

// JitterGroup gán cho thành viên i trong nhóm N điểm trùng một offset
// (r·cos(2πi/N), r·sin(2πi/N)) với r rút riêng cho từng listing trong
// dải [JitterRadiusMin, JitterRadiusMax) — các điểm giãn đều trên một
// vòng tròn quanh vị trí chung thay vì chồng lên nhau. Không yêu cầu
// determinism giữa các lần chạy.
func (j *Jitterer) JitterGroup(baseLat, baseLon float64, n int) []models.Point {
	out := make([]models.Point, n)
	for i := 0; i < n; i++ {
		r := JitterRadiusMin + j.rng.Float64()*(JitterRadiusMax-JitterRadiusMin)
		angle := 2 * math.Pi * float64(i) / float64(n)
		out[i] = models.Point{
			Lat: baseLat + r*math.Cos(angle),
			Lon: baseLon + r*math.Sin(angle),
		}
	}
	return out
}

// Apply chạy pass sửa trùng trên toàn bộ tập listing: trả về map
// listingID → tọa độ mới cho mọi thành viên của một nhóm trùng.
// Chỉ pass corrective offline gọi hàm này, không bao giờ chạy ngầm.
func (j *Jitterer) Apply(listings []models.Listing) map[string]models.Point {
	groups := FindDuplicates(listings)
	byID := make(map[string]models.Listing, len(listings))
	for _, l := range listings {
		byID[l.ID] = l
	}

	corrected := make(map[string]models.Point)
	for _, g := range groups {
		base := byID[g.IDs[0]]
		points := j.JitterGroup(base.Latitude, base.Longitude, g.Size)
		for i, id := range g.IDs {
			corrected[id] = points[i]
		}
	}
	return corrected
}
