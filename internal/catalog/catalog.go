package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/listing-geo/app/models"
	"github.com/listing-geo/internal/normalizer"
	"go.uber.org/zap"
)

// catalogFile schema trên đĩa: tỉnh → quận → phường, mỗi đơn vị
// mang đủ aliases/center/bbox.
type catalogFile struct {
	Version     string       `json:"version"`
	GeneratedAt time.Time    `json:"generated_at"`
	Source      string       `json:"source"`
	Provinces   []unitRecord `json:"provinces"`
}

type unitRecord struct {
	Code    string       `json:"code"`
	Name    string       `json:"name"`
	Aliases []string     `json:"aliases,omitempty"`
	Center  models.Point `json:"center"`
	BBox    models.BBox  `json:"bbox"`

	Districts []unitRecord `json:"districts,omitempty"`
	Wards     []unitRecord `json:"wards,omitempty"`
}

// Catalog index in-memory trên danh mục hành chính chính tắc.
// Read-only sau khi Load, không có thao tác mutation.
type Catalog struct {
	Version     string
	GeneratedAt time.Time
	Source      string

	provinces []models.AdminUnit
	districts []models.AdminUnit
	wards     []models.AdminUnit

	logger *zap.Logger
}

// Load đọc danh mục từ file JSON và build index. File thiếu hoặc hỏng
// là lỗi fatal với caller — không có hoạt động nào có nghĩa khi thiếu
// danh mục.
func Load(path string, logger *zap.Logger) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("không đọc được catalog %s: %w", path, err)
	}

	var cf catalogFile
	if err := json.Unmarshal(b, &cf); err != nil {
		return nil, fmt.Errorf("catalog %s không phải JSON hợp lệ: %w", path, err)
	}

	c := &Catalog{
		Version:     cf.Version,
		GeneratedAt: cf.GeneratedAt,
		Source:      cf.Source,
		logger:      logger,
	}

	for _, p := range cf.Provinces {
		province := toUnit(p, models.LevelProvince, "")
		c.provinces = append(c.provinces, province)
		for _, d := range p.Districts {
			district := toUnit(d, models.LevelDistrict, p.Name)
			c.districts = append(c.districts, district)
			for _, w := range d.Wards {
				c.wards = append(c.wards, toUnit(w, models.LevelWard, d.Name))
			}
		}
	}

	if err := c.checkInvariants(); err != nil {
		return nil, err
	}

	logger.Info("Đã load catalog",
		zap.String("version", c.Version),
		zap.Int("provinces", len(c.provinces)),
		zap.Int("districts", len(c.districts)),
		zap.Int("wards", len(c.wards)))

	return c, nil
}

// FromUnits build catalog trực tiếp từ danh sách đơn vị (dùng cho test
// và seed tool). Invariants vẫn được kiểm tra như Load.
func FromUnits(version string, units []models.AdminUnit, logger *zap.Logger) (*Catalog, error) {
	c := &Catalog{Version: version, logger: logger}
	for _, u := range units {
		switch u.Level {
		case models.LevelProvince:
			c.provinces = append(c.provinces, u)
		case models.LevelDistrict:
			c.districts = append(c.districts, u)
		case models.LevelWard:
			c.wards = append(c.wards, u)
		default:
			return nil, fmt.Errorf("đơn vị %q có level không hợp lệ: %d", u.Name, u.Level)
		}
	}
	if err := c.checkInvariants(); err != nil {
		return nil, err
	}
	return c, nil
}

func toUnit(r unitRecord, level int, parent string) models.AdminUnit {
	return models.AdminUnit{
		Code:    r.Code,
		Name:    r.Name,
		Aliases: r.Aliases,
		Level:   level,
		Parent:  parent,
		Center:  r.Center,
		BBox:    r.BBox,
	}
}

// checkInvariants: cha của district/ward phải tồn tại, bbox phải chứa center
func (c *Catalog) checkInvariants() error {
	provinceByKey := make(map[string]bool, len(c.provinces))
	for _, p := range c.provinces {
		provinceByKey[normalizer.Normalize(p.Name)] = true
	}
	districtByKey := make(map[string]bool, len(c.districts))
	for _, d := range c.districts {
		districtByKey[normalizer.Normalize(d.Name)] = true
		if !provinceByKey[normalizer.Normalize(d.Parent)] {
			return fmt.Errorf("district %q trỏ tới province %q không có trong catalog", d.Name, d.Parent)
		}
	}
	for _, w := range c.wards {
		if !districtByKey[normalizer.Normalize(w.Parent)] {
			return fmt.Errorf("ward %q trỏ tới district %q không có trong catalog", w.Name, w.Parent)
		}
	}
	for _, u := range c.all() {
		if !u.BBox.IsZero() && !u.BBox.Contains(u.Center.Lat, u.Center.Lon) {
			return fmt.Errorf("bbox của %q không chứa center", u.Name)
		}
	}
	return nil
}

func (c *Catalog) all() []models.AdminUnit {
	out := make([]models.AdminUnit, 0, len(c.provinces)+len(c.districts)+len(c.wards))
	out = append(out, c.provinces...)
	out = append(out, c.districts...)
	out = append(out, c.wards...)
	return out
}

// ListProvinces trả về toàn bộ tỉnh/thành
func (c *Catalog) ListProvinces() []models.AdminUnit {
	return c.provinces
}

// ListDistricts lọc quận/huyện theo tên tỉnh (so sánh tên đã chuẩn hóa)
func (c *Catalog) ListDistricts(provinceName string) []models.AdminUnit {
	key := normalizer.Normalize(provinceName)
	var out []models.AdminUnit
	for _, d := range c.districts {
		if normalizer.Normalize(d.Parent) == key {
			out = append(out, d)
		}
	}
	return out
}

// ListWards lọc phường/xã theo tên quận/huyện
func (c *Catalog) ListWards(districtName string) []models.AdminUnit {
	key := normalizer.NormalizeDistrict(districtName)
	var out []models.AdminUnit
	for _, w := range c.wards {
		if normalizer.NormalizeDistrict(w.Parent) == key {
			out = append(out, w)
		}
	}
	return out
}

// Districts toàn bộ quận/huyện, dùng cho matcher
func (c *Catalog) Districts() []models.AdminUnit { return c.districts }

// Wards toàn bộ phường/xã, dùng cho matcher
func (c *Catalog) Wards() []models.AdminUnit { return c.wards }
