package models

import "time"

// FieldCounts đếm valid/invalid/normalized cho một trường
type FieldCounts struct {
	Valid      int `json:"valid"`
	Invalid    int `json:"invalid"`
	Normalized int `json:"normalized"`
}

// ProvinceBreakdown thống kê theo tỉnh đã resolve (hoặc "UNKNOWN")
type ProvinceBreakdown struct {
	Total    int `json:"total"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// InvalidRecord một record lỗi trong phần preview của báo cáo
type InvalidRecord struct {
	ID       string   `json:"id"`
	Province string   `json:"province"`
	District string   `json:"district"`
	Ward     string   `json:"ward"`
	Lat      float64  `json:"lat"`
	Lon      float64  `json:"lon"`
	Errors   []string `json:"errors"`
}

// DuplicateGroup nhóm listing trùng tọa độ (làm tròn 6 chữ số)
type DuplicateGroup struct {
	CoordKey string   `json:"coord_key"`
	IDs      []string `json:"ids"`
	Size     int      `json:"size"`
}

// ValidationReport artifact audit của batch validation
type ValidationReport struct {
	GeneratedAt    time.Time `json:"generated_at"`
	CatalogVersion string    `json:"catalog_version"`
	DatasetPath    string    `json:"dataset_path"`

	TotalRecords int `json:"total_records"`
	CleanRecords int `json:"clean_records"` // không có lỗi cứng nào

	Province FieldCounts `json:"province"`
	District FieldCounts `json:"district"`
	Ward     FieldCounts `json:"ward"`
	Coords   FieldCounts `json:"coords"`

	SwappedCount     int `json:"swapped_count"`
	OutsideCityCount int `json:"outside_city_count"`

	DuplicateGroups   []DuplicateGroup `json:"duplicate_groups"`
	DuplicateAffected int              `json:"duplicate_affected"`

	ByProvince map[string]*ProvinceBreakdown `json:"by_province"`

	// Preview bị giới hạn; InvalidTotal luôn là tổng thật
	InvalidTotal   int             `json:"invalid_total"`
	InvalidRecords []InvalidRecord `json:"invalid_records"`
}

// HasBuildFailure báo cáo có lỗi cứng về tọa độ hoặc tỉnh không.
// Quận/phường lệch danh mục chỉ là advisory, không fail build.
func (r *ValidationReport) HasBuildFailure() bool {
	return r.Coords.Invalid > 0 || r.Province.Invalid > 0
}
