package normalizer

import "testing"

func TestNormalize_PrefixStripping(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Thanh pho prefix", input: "Thành phố Hà Nội", expected: "ha noi"},
		{name: "No prefix", input: "Hà Nội", expected: "ha noi"},
		{name: "Already normalized", input: "ha noi", expected: "ha noi"},
		{name: "Tinh prefix", input: "Tỉnh Tiền Giang", expected: "tien giang"},
		{name: "Quan numbered", input: "Quận 1", expected: "1"},
		{name: "Thi xa before xa", input: "Thị xã Gò Công", expected: "go cong"},
		{name: "Xa prefix", input: "Xã Tân Hiệp", expected: "tan hiep"},
		{name: "Phuong prefix", input: "Phường Bến Nghé", expected: "ben nghe"},
		{name: "Thi tran prefix", input: "Thị trấn Châu Thành", expected: "chau thanh"},
		{name: "Dong Da with dj", input: "Quận Đống Đa", expected: "dong da"},
		{name: "Mixed case prefix", input: "THÀNH PHỐ Đà Nẵng", expected: "da nang"},
		{name: "Extra spaces", input: "  Quận   Ba Đình  ", expected: "ba dinh"},
		{name: "Empty", input: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.input)
			if got != tc.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

// Normalize phải idempotent: chạy hai lần cho cùng kết quả
func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Thành phố Hà Nội",
		"Quận 1",
		"Q.3",
		"Phường Đa Kao",
		"thi xa go cong",
		"",
		"   ",
		"Đường 3/2",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestNormalizeDistrict_Shorthand(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Q1", "1"},
		{"Q.1", "1"},
		{"Q 1", "1"},
		{"q.10", "10"},
		{"Quận 1", "1"},
		{"Quận Ba Đình", "ba dinh"},
		{"Huyện Châu Thành", "chau thanh"},
	}
	for _, tc := range testCases {
		if got := NormalizeDistrict(tc.input); got != tc.expected {
			t.Errorf("NormalizeDistrict(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestRemoveDuplicatePrefix(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Quận Quận 1", "Quận 1"},
		{"Quận 1", "Quận 1"},
		{"Thành phố Thành phố Hà Nội", "Thành phố Hà Nội"},
		{"Phường Phường Phường 2", "Phường 2"},
		{"Huyện Châu Thành", "Huyện Châu Thành"},
		{"", ""},
	}
	for _, tc := range testCases {
		if got := RemoveDuplicatePrefix(tc.input); got != tc.expected {
			t.Errorf("RemoveDuplicatePrefix(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestStripDiacritics_DMapping(t *testing.T) {
	if got := StripDiacritics("Đống Đa đường"); got != "Dong Da duong" {
		t.Errorf("StripDiacritics = %q, want %q", got, "Dong Da duong")
	}
}

func TestAsciiFold(t *testing.T) {
	if got := AsciiFold(" Hồ Chí Minh "); got != "ho chi minh" {
		t.Errorf("AsciiFold = %q", got)
	}
}
