package requests

// ValidateRequest validate một bản ghi vị trí free-text. Lat/lon nhận
// cả số lẫn chuỗi — giá trị không parse được sẽ ra INVALID_COORDS chứ
// không phải lỗi 400.
type ValidateRequest struct {
	ID        string `json:"id,omitempty"`
	Province  string `json:"province"`
	District  string `json:"district,omitempty"`
	Ward      string `json:"ward,omitempty"`
	Latitude  any    `json:"latitude"`
	Longitude any    `json:"longitude"`
	UseCache  bool   `json:"use_cache,omitempty"`
}
