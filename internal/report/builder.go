package report

import (
	"time"

	"github.com/listing-geo/app/models"
	"github.com/listing-geo/internal/geo"
	"go.uber.org/zap"
)

// DefaultPreviewCap số record lỗi tối đa trong phần preview của báo cáo;
// tổng thật luôn được ghi kèm bên cạnh danh sách đã cắt.
const DefaultPreviewCap = 20

// Builder tổng hợp outcome từng listing thành artifact audit
type Builder struct {
	catalogVersion string
	datasetPath    string
	previewCap     int
	logger         *zap.Logger
}

// NewBuilder tạo builder cho một lần chạy audit
func NewBuilder(catalogVersion, datasetPath string, previewCap int, logger *zap.Logger) *Builder {
	if previewCap <= 0 {
		previewCap = DefaultPreviewCap
	}
	return &Builder{
		catalogVersion: catalogVersion,
		datasetPath:    datasetPath,
		previewCap:     previewCap,
		logger:         logger,
	}
}

// Build gộp outcome theo từng record thành báo cáo tổng
func (b *Builder) Build(listings []models.Listing, outcomes []*models.ValidationOutcome) *models.ValidationReport {
	r := &models.ValidationReport{
		GeneratedAt:    time.Now().UTC(),
		CatalogVersion: b.catalogVersion,
		DatasetPath:    b.datasetPath,
		TotalRecords:   len(listings),
		ByProvince:     make(map[string]*models.ProvinceBreakdown),
	}

	byID := make(map[string]*models.Listing, len(listings))
	for i := range listings {
		byID[listings[i].ID] = &listings[i]
	}

	for _, o := range outcomes {
		if !o.HasHardError() {
			r.CleanRecords++
		}

		countField(&r.Province, o.Province != nil, o.HasWarning(models.WarnProvinceNormalized))
		countField(&r.District, o.District != nil, o.District != nil && listingName(byID, o.ListingID, "district") != o.District.Name)
		countField(&r.Ward, o.Ward != nil, o.Ward != nil && listingName(byID, o.ListingID, "ward") != o.Ward.Name)

		coordsValid := !o.HasError(models.ErrInvalidCoords) &&
			!o.HasError(models.ErrLatOutOfBounds) &&
			!o.HasError(models.ErrLonOutOfBounds)
		countField(&r.Coords, coordsValid, o.Swapped)

		if o.Swapped {
			r.SwappedCount++
		}
		if o.HasWarning(models.WarnCoordsOutsideCity) {
			r.OutsideCityCount++
		}

		key := "UNKNOWN"
		if o.Province != nil {
			key = o.Province.Name
		}
		bd := r.ByProvince[key]
		if bd == nil {
			bd = &models.ProvinceBreakdown{}
			r.ByProvince[key] = bd
		}
		bd.Total++
		bd.Errors += len(o.Errors)
		bd.Warnings += len(o.Warnings)

		if o.HasHardError() {
			r.InvalidTotal++
			if len(r.InvalidRecords) < b.previewCap {
				l := byID[o.ListingID]
				rec := models.InvalidRecord{ID: o.ListingID, Errors: o.Errors}
				if l != nil {
					rec.Province = l.Province
					rec.District = l.District
					rec.Ward = l.Ward
					rec.Lat = l.Latitude
					rec.Lon = l.Longitude
				}
				r.InvalidRecords = append(r.InvalidRecords, rec)
			}
		}
	}

	r.DuplicateGroups = geo.FindDuplicates(listings)
	for _, g := range r.DuplicateGroups {
		r.DuplicateAffected += g.Size
	}

	b.logger.Info("Đã build báo cáo audit",
		zap.Int("total", r.TotalRecords),
		zap.Int("clean", r.CleanRecords),
		zap.Int("invalid", r.InvalidTotal),
		zap.Int("duplicate_groups", len(r.DuplicateGroups)))

	return r
}

func countField(fc *models.FieldCounts, valid, normalized bool) {
	if valid {
		fc.Valid++
	} else {
		fc.Invalid++
	}
	if normalized {
		fc.Normalized++
	}
}

func listingName(byID map[string]*models.Listing, id, field string) string {
	l := byID[id]
	if l == nil {
		return ""
	}
	switch field {
	case "district":
		return l.District
	case "ward":
		return l.Ward
	}
	return ""
}
