package normalizer

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripDiacritics loại bỏ dấu tiếng Việt một cách an toàn qua NFD.
// Chữ "đ"/"Đ" không phải combining mark nên được map riêng sang "d"/"D".
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	out, _, _ := transform.String(t, s)
	out = strings.ReplaceAll(out, "đ", "d")
	out = strings.ReplaceAll(out, "Đ", "D")
	return out
}

// isMn kiểm tra xem rune có phải là diacritic mark không
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// Fold bỏ dấu và chuyển về lowercase — dạng fold chuẩn của core
func Fold(s string) string {
	return strings.ToLower(StripDiacritics(s))
}

// AsciiFold fold thô về ASCII qua unidecode, dùng cho so khớp
// substring lỏng phía search (chấp nhận cả ký tự ngoài bảng tiếng Việt).
func AsciiFold(s string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(s)))
}
