package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/listing-geo/app/models"
)

// RenderMarkdown xuất báo cáo ra Markdown cho reviewer. Cấu trúc heading
// và cột bảng là contract bán ổn định với downstream, không phải output
// byte-for-byte.
func RenderMarkdown(r *models.ValidationReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Báo cáo validate dataset mặt bằng\n\n")
	fmt.Fprintf(&b, "- Thời điểm: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- Catalog: %s\n", r.CatalogVersion)
	fmt.Fprintf(&b, "- Dataset: %s\n\n", r.DatasetPath)

	fmt.Fprintf(&b, "## Tổng quan\n\n")
	fmt.Fprintf(&b, "| Chỉ số | Giá trị |\n|---|---|\n")
	fmt.Fprintf(&b, "| Tổng số record | %d |\n", r.TotalRecords)
	fmt.Fprintf(&b, "| Record sạch (không lỗi cứng) | %d |\n", r.CleanRecords)
	fmt.Fprintf(&b, "| Record lỗi | %d |\n\n", r.InvalidTotal)

	fmt.Fprintf(&b, "## Theo trường\n\n")
	fmt.Fprintf(&b, "| Trường | Valid | Invalid | Normalized |\n|---|---|---|---|\n")
	writeFieldRow(&b, "Tỉnh/Thành", r.Province)
	writeFieldRow(&b, "Quận/Huyện", r.District)
	writeFieldRow(&b, "Phường/Xã", r.Ward)
	writeFieldRow(&b, "Tọa độ", r.Coords)
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Tọa độ\n\n")
	fmt.Fprintf(&b, "| Kiểm tra | Số lượng |\n|---|---|\n")
	fmt.Fprintf(&b, "| Đảo trục đã sửa | %d |\n", r.SwappedCount)
	fmt.Fprintf(&b, "| Ngoài bbox thành phố (advisory) | %d |\n\n", r.OutsideCityCount)

	fmt.Fprintf(&b, "## Tọa độ trùng\n\n")
	fmt.Fprintf(&b, "Nhóm trùng: %d — record bị ảnh hưởng: %d\n\n", len(r.DuplicateGroups), r.DuplicateAffected)
	if len(r.DuplicateGroups) > 0 {
		fmt.Fprintf(&b, "| Tọa độ | Số listing |\n|---|---|\n")
		for _, g := range r.DuplicateGroups {
			fmt.Fprintf(&b, "| %s | %d |\n", g.CoordKey, g.Size)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Theo tỉnh/thành\n\n")
	fmt.Fprintf(&b, "| Tỉnh/Thành | Record | Lỗi | Cảnh báo |\n|---|---|---|---|\n")
	for _, name := range sortedProvinceKeys(r.ByProvince) {
		bd := r.ByProvince[name]
		fmt.Fprintf(&b, "| %s | %d | %d | %d |\n", name, bd.Total, bd.Errors, bd.Warnings)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Record lỗi (hiển thị %d / %d)\n\n", len(r.InvalidRecords), r.InvalidTotal)
	if len(r.InvalidRecords) > 0 {
		fmt.Fprintf(&b, "| ID | Tỉnh | Quận | Phường | Lat | Lon | Lỗi |\n|---|---|---|---|---|---|---|\n")
		for _, rec := range r.InvalidRecords {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %v | %v | %s |\n",
				rec.ID, rec.Province, rec.District, rec.Ward, rec.Lat, rec.Lon,
				strings.Join(rec.Errors, ", "))
		}
	}

	return b.String()
}

func writeFieldRow(b *strings.Builder, label string, fc models.FieldCounts) {
	fmt.Fprintf(b, "| %s | %d | %d | %d |\n", label, fc.Valid, fc.Invalid, fc.Normalized)
}

func sortedProvinceKeys(m map[string]*models.ProvinceBreakdown) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
