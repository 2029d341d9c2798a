package normalizer

import (
	"regexp"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

// reDistrictShorthand "Q1", "Q.1", "Q 1" → "Quận 1"
var reDistrictShorthand = regexp.MustCompile(`^(?i)q\.?\s*(\d+)$`)

// adminPrefixes các tiền tố hành chính, xếp dài trước ngắn để strip đúng
// ("thi xa" phải thử trước "xa").
var adminPrefixes = []string{
	"thanh pho",
	"thi tran",
	"thi xa",
	"phuong",
	"huyen",
	"quan",
	"tinh",
	"xa",
}

// Normalize chuẩn hóa tên đơn vị hành chính về key so sánh:
// bỏ dấu + lowercase, strip một tiền tố hành chính ở đầu, gọn khoảng trắng.
// Input rỗng trả về chuỗi rỗng, không bao giờ panic. Hàm idempotent:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(name string) string {
	if name == "" {
		return ""
	}
	s := Fold(name)
	s = strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
	s = stripLeadingPrefix(s)
	return strings.TrimSpace(s)
}

// NormalizeDistrict biến thể cho quận/huyện: mở rộng viết tắt "Q<số>"
// thành "Quận <số>" trước khi chuẩn hóa, để "Q1", "Q.1", "Q 1" đều
// match "Quận 1".
func NormalizeDistrict(name string) string {
	trimmed := strings.TrimSpace(name)
	if m := reDistrictShorthand.FindStringSubmatch(trimmed); m != nil {
		trimmed = "Quận " + m[1]
	}
	return Normalize(trimmed)
}

// RemoveDuplicatePrefix gộp tiền tố hành chính bị lặp ở đầu chuỗi
// ("Quận Quận 1" → "Quận 1"). Chạy trước Normalize; phần còn lại giữ
// nguyên dấu và hoa thường.
func RemoveDuplicatePrefix(name string) string {
	words := strings.Fields(name)
	for {
		n := leadingPrefixLen(words)
		if n == 0 {
			return strings.Join(words, " ")
		}
		// tiền tố xuất hiện lại ngay sau chính nó thì bỏ một lần
		if leadingPrefixLenAt(words, n) == n && sameFolded(words[:n], words[n:2*n]) {
			words = words[n:]
			continue
		}
		return strings.Join(words, " ")
	}
}

// stripLeadingPrefix bỏ đúng một tiền tố ở đầu chuỗi đã fold
func stripLeadingPrefix(s string) string {
	for _, p := range adminPrefixes {
		if strings.HasPrefix(s, p+" ") {
			return s[len(p)+1:]
		}
	}
	return s
}

// leadingPrefixLen số từ của tiền tố hành chính đứng đầu words (0 nếu không có)
func leadingPrefixLen(words []string) int {
	return leadingPrefixLenAt(words, 0)
}

func leadingPrefixLenAt(words []string, at int) int {
	for _, p := range adminPrefixes {
		pw := strings.Fields(p)
		if len(words)-at < len(pw) {
			continue
		}
		ok := true
		for i, w := range pw {
			if Fold(words[at+i]) != w {
				ok = false
				break
			}
		}
		if ok {
			return len(pw)
		}
	}
	return 0
}

func sameFolded(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if Fold(a[i]) != Fold(b[i]) {
			return false
		}
	}
	return true
}
