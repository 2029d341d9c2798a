package models

// AIScores điểm đánh giá AI gắn kèm listing (không thuộc geo core)
type AIScores struct {
	PotentialScore float64 `json:"potentialScore,omitempty"`
	RiskScore      float64 `json:"riskScore,omitempty"`
	Summary        string  `json:"summary,omitempty"`
}

// Listing một mặt bằng cho thuê trong dataset
type Listing struct {
	ID       string `json:"id"`
	Title    string `json:"title,omitempty"`
	Address  string `json:"address,omitempty"`
	Province string `json:"province"` // free-text, có thể sai chính tả / viết tắt
	District string `json:"district"`
	Ward     string `json:"ward"`

	// Tọa độ báo cáo: có thể bị đảo trục, ngoài biên, hoặc trùng hàng loạt
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	Type     string   `json:"type,omitempty"`     // loại mặt bằng (nhà phố, shophouse, ...)
	Area     float64  `json:"area,omitempty"`     // m2
	Price    float64  `json:"price,omitempty"`    // triệu/tháng
	Frontage float64  `json:"frontage,omitempty"` // mặt tiền (m)
	Floors   int      `json:"floors,omitempty"`
	Views    int      `json:"views,omitempty"`
	AI       AIScores `json:"ai,omitempty"`
}

// PotentialScore điểm tiềm năng, thiếu thì coi như 0
func (l *Listing) PotentialScore() float64 { return l.AI.PotentialScore }
