package services

import (
	"github.com/listing-geo/app/models"
	"github.com/listing-geo/internal/geo"
	"github.com/listing-geo/internal/matcher"
	"go.uber.org/zap"
)

// ValidationService chạy pipeline validate cho từng listing: resolve
// tỉnh/quận/phường qua Matcher, kiểm tra tọa độ qua geo.Validator.
// Từng listing độc lập với nhau; bước gom nhóm tọa độ trùng là điểm
// đồng bộ duy nhất cần full pass (xem ValidateAll).
type ValidationService struct {
	matcher   *matcher.Matcher
	validator *geo.Validator
	logger    *zap.Logger
}

// NewValidationService tạo mới ValidationService
func NewValidationService(m *matcher.Matcher, v *geo.Validator, logger *zap.Logger) *ValidationService {
	return &ValidationService{matcher: m, validator: v, logger: logger}
}

// ValidateListing validate một listing đơn lẻ. Không bao giờ trả lỗi cho
// dữ liệu xấu — mọi vấn đề nằm trong Errors/Warnings của outcome.
func (vs *ValidationService) ValidateListing(l *models.Listing) *models.ValidationOutcome {
	out := &models.ValidationOutcome{ListingID: l.ID}

	// 1. Resolve tỉnh/thành — không resolve được là lỗi cứng
	province := vs.matcher.FindProvince(l.Province)
	if province == nil {
		out.Errors = append(out.Errors, models.ErrInvalidProvince)
	} else {
		out.Province = province
		if l.Province != province.Name {
			out.Warnings = append(out.Warnings, models.WarnProvinceNormalized)
		}
	}

	// 2. Quận/huyện và phường/xã — lệch danh mục chỉ là advisory
	district := vs.matcher.FindDistrict(l.District, l.Province)
	if district == nil {
		out.Warnings = append(out.Warnings, models.WarnDistrictNotInList)
	} else {
		out.District = district
	}

	districtHint := l.District
	if district != nil {
		districtHint = district.Name
	}
	ward := vs.matcher.FindWard(l.Ward, districtHint, l.Province)
	if ward == nil {
		out.Warnings = append(out.Warnings, models.WarnWardNotInList)
	} else {
		out.Ward = ward
	}

	// 3. Tọa độ, với bbox tỉnh đã resolve làm hint
	coord := vs.validator.Validate(l.Latitude, l.Longitude, province)
	out.CorrectedLat = coord.CorrectedLat
	out.CorrectedLon = coord.CorrectedLon
	out.Swapped = coord.Swapped
	out.CenterDistanceKm = coord.CenterDistanceKm
	out.Errors = append(out.Errors, coord.Errors...)
	out.Warnings = append(out.Warnings, coord.Warnings...)

	return out
}

// ValidateAll validate cả tập listing rồi chạy pass gom nhóm tọa độ
// trùng trên toàn tập, gán DuplicateKey cho các thành viên.
func (vs *ValidationService) ValidateAll(listings []models.Listing) []*models.ValidationOutcome {
	outcomes := make([]*models.ValidationOutcome, len(listings))
	for i := range listings {
		outcomes[i] = vs.ValidateListing(&listings[i])
	}

	// điểm đồng bộ: nhóm trùng chỉ tính được sau khi đã qua hết tập
	groups := geo.FindDuplicates(listings)
	keyByID := make(map[string]string)
	for _, g := range groups {
		for _, id := range g.IDs {
			keyByID[id] = g.CoordKey
		}
	}
	for _, o := range outcomes {
		o.DuplicateKey = keyByID[o.ListingID]
	}

	vs.logger.Info("Đã validate xong dataset",
		zap.Int("listings", len(listings)),
		zap.Int("duplicate_groups", len(groups)))

	return outcomes
}
