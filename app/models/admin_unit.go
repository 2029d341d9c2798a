package models

// Level của đơn vị hành chính
const (
	LevelProvince = 1
	LevelDistrict = 2
	LevelWard     = 3
)

// Point tọa độ trung tâm của một đơn vị hành chính
type Point struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// BBox bounding box theo thứ tự [minLon, minLat, maxLon, maxLat]
type BBox [4]float64

// MinLon trả về cạnh tây
func (b BBox) MinLon() float64 { return b[0] }

// MinLat trả về cạnh nam
func (b BBox) MinLat() float64 { return b[1] }

// MaxLon trả về cạnh đông
func (b BBox) MaxLon() float64 { return b[2] }

// MaxLat trả về cạnh bắc
func (b BBox) MaxLat() float64 { return b[3] }

// Contains kiểm tra điểm có nằm trong box không (biên tính là trong)
func (b BBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat() && lat <= b.MaxLat() &&
		lon >= b.MinLon() && lon <= b.MaxLon()
}

// IsZero box chưa được khai báo
func (b BBox) IsZero() bool {
	return b[0] == 0 && b[1] == 0 && b[2] == 0 && b[3] == 0
}

// AdminUnit đại diện cho đơn vị hành chính (tỉnh, quận, phường)
type AdminUnit struct {
	Code    string   `json:"code"`              // ID ổn định, unique trong cùng level
	Name    string   `json:"name"`              // Tên chính tắc, gồm cả tiền tố ("Quận 1", "Thành phố Hà Nội")
	Aliases []string `json:"aliases,omitempty"` // Các cách viết khác phải resolve về đơn vị này
	Level   int      `json:"level"`             // 1=province, 2=district, 3=ward
	Parent  string   `json:"parent,omitempty"`  // Tên đơn vị cha (ward→district, district→province)
	Center  Point    `json:"center"`
	BBox    BBox     `json:"bbox"`
}

// IsProvince đơn vị cấp tỉnh/thành phố trực thuộc trung ương
func (au *AdminUnit) IsProvince() bool { return au.Level == LevelProvince }

// IsDistrict đơn vị cấp quận/huyện/thị xã
func (au *AdminUnit) IsDistrict() bool { return au.Level == LevelDistrict }

// IsWard đơn vị cấp phường/xã/thị trấn
func (au *AdminUnit) IsWard() bool { return au.Level == LevelWard }
