package models

// Mã lỗi cứng — record fail validation, batch audit fail build
const (
	ErrInvalidCoords   = "INVALID_COORDS"
	ErrLatOutOfBounds  = "LAT_OUT_OF_BOUNDS"
	ErrLonOutOfBounds  = "LON_OUT_OF_BOUNDS"
	ErrInvalidProvince = "INVALID_PROVINCE"
)

// Mã cảnh báo — ghi nhận, không fail
const (
	WarnProvinceNormalized = "PROVINCE_NORMALIZED"
	WarnCoordsSwapped      = "COORDS_SWAPPED"
	WarnCoordsOutsideCity  = "COORDS_OUTSIDE_CITY"
	WarnDistrictNotInList  = "DISTRICT_NOT_IN_LIST"
	WarnWardNotInList      = "WARD_NOT_IN_LIST"
)

// ValidationOutcome kết quả validate một listing; ephemeral, chỉ dùng để
// tổng hợp báo cáo, không ghi ngược vào Listing.
type ValidationOutcome struct {
	ListingID string `json:"listing_id"`

	// Đơn vị hành chính đã resolve (nil nếu không resolve được)
	Province *AdminUnit `json:"province,omitempty"`
	District *AdminUnit `json:"district,omitempty"`
	Ward     *AdminUnit `json:"ward,omitempty"`

	// Tọa độ sau khi sửa (nil nếu INVALID_COORDS)
	CorrectedLat *float64 `json:"corrected_lat,omitempty"`
	CorrectedLon *float64 `json:"corrected_lon,omitempty"`
	Swapped      bool     `json:"swapped,omitempty"`

	// Khoảng cách tới tâm tỉnh (km), advisory, chỉ khi resolve được tỉnh
	CenterDistanceKm float64 `json:"center_distance_km,omitempty"`

	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`

	// Key của nhóm tọa độ trùng, rỗng nếu không trùng
	DuplicateKey string `json:"duplicate_key,omitempty"`
}

// HasHardError listing có lỗi cứng không
func (o *ValidationOutcome) HasHardError() bool { return len(o.Errors) > 0 }

// HasError kiểm tra một mã lỗi cụ thể
func (o *ValidationOutcome) HasError(code string) bool {
	for _, e := range o.Errors {
		if e == code {
			return true
		}
	}
	return false
}

// HasWarning kiểm tra một mã cảnh báo cụ thể
func (o *ValidationOutcome) HasWarning(code string) bool {
	for _, w := range o.Warnings {
		if w == code {
			return true
		}
	}
	return false
}
