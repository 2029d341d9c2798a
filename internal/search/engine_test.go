package search

import (
	"reflect"
	"testing"

	"github.com/listing-geo/app/models"
	"github.com/listing-geo/internal/store"
	"go.uber.org/zap"
)

func fptr(f float64) *float64 { return &f }

func testEngine(t *testing.T) *Engine {
	t.Helper()
	listings := []models.Listing{
		{ID: "1", Province: "Thành phố Hà Nội", District: "Quận Ba Đình", Ward: "Phường Phúc Xá",
			Type: "nhà phố", Price: 60, Area: 80, Views: 120, AI: models.AIScores{PotentialScore: 8.5}},
		{ID: "2", Province: "Hà Nội", District: "Quận Cầu Giấy", Ward: "Phường Dịch Vọng",
			Type: "shophouse", Price: 90, Area: 120, Views: 300, AI: models.AIScores{PotentialScore: 8.5}},
		{ID: "3", Province: "Thành phố Hồ Chí Minh", District: "Quận 1", Ward: "Phường Bến Nghé",
			Type: "nhà phố", Price: 150, Area: 60, Views: 50, AI: models.AIScores{PotentialScore: 9.2}},
		{ID: "4", Province: "Hồ Chí Minh", District: "Quận 1", Ward: "Phường Đa Kao",
			Type: "kiot", Price: 40, Area: 25, Views: 10},
	}
	return NewEngine(store.FromListings(listings, zap.NewNop()), zap.NewNop())
}

func ids(listings []models.Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}

func TestSearch_Ordering(t *testing.T) {
	e := testEngine(t)

	got, err := e.Search(Filters{}, 100)
	if err != nil {
		t.Fatal(err)
	}
	// score desc, hòa điểm (1 vs 2, cùng 8.5) thì views desc, 4 cuối vì score 0
	want := []string{"3", "2", "1", "4"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("thứ tự = %v, want %v", ids(got), want)
	}

	// gọi lần hai cho đúng thứ tự hệt lần đầu
	again, _ := e.Search(Filters{}, 100)
	if !reflect.DeepEqual(ids(again), want) {
		t.Errorf("search không deterministic: %v", ids(again))
	}
}

func TestSearch_ProvinceLoose(t *testing.T) {
	e := testEngine(t)

	testCases := []struct {
		name     string
		province string
		want     []string
	}{
		{name: "Full canonical", province: "Thành phố Hà Nội", want: []string{"2", "1"}},
		{name: "Partial no diacritics", province: "ha noi", want: []string{"2", "1"}},
		{name: "Tinh prefix from user", province: "TP Hồ Chí Minh", want: []string{"3", "4"}},
		{name: "Nonexistent", province: "Nonexistent", want: []string{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := e.Search(Filters{Province: tc.province}, 100)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(ids(got), tc.want) {
				t.Errorf("ids = %v, want %v", ids(got), tc.want)
			}
		})
	}
}

func TestSearch_PriceRangeInclusive(t *testing.T) {
	e := testEngine(t)

	got, err := e.Search(Filters{MinPrice: fptr(50), MaxPrice: fptr(100)}, 100)
	if err != nil {
		t.Fatal(err)
	}
	for _, l := range got {
		if l.Price < 50 || l.Price > 100 {
			t.Errorf("listing %s có price %v ngoài [50,100]", l.ID, l.Price)
		}
	}
	if len(got) != 2 {
		t.Errorf("expected 2 listing trong [50,100], got %d", len(got))
	}

	// biên phải inclusive
	exact, _ := e.Search(Filters{MinPrice: fptr(60), MaxPrice: fptr(60)}, 100)
	if len(exact) != 1 || exact[0].ID != "1" {
		t.Errorf("biên inclusive hỏng: %v", ids(exact))
	}
}

func TestSearch_LimitZero(t *testing.T) {
	e := testEngine(t)
	got, err := e.Search(Filters{}, 0)
	if err != nil || len(got) != 0 {
		t.Errorf("limit=0 phải trả rỗng không lỗi, got %v, %v", ids(got), err)
	}
	got, err = e.Search(Filters{}, -5)
	if err != nil || len(got) != 0 {
		t.Errorf("limit âm phải trả rỗng không lỗi, got %v, %v", ids(got), err)
	}
}

func TestSearch_TypeAndDistrict(t *testing.T) {
	e := testEngine(t)

	got, _ := e.Search(Filters{Type: "NHÀ PHỐ"}, 100)
	if !reflect.DeepEqual(ids(got), []string{"3", "1"}) {
		t.Errorf("type case-insensitive hỏng: %v", ids(got))
	}

	got, _ = e.Search(Filters{District: "cau giay"}, 100)
	if !reflect.DeepEqual(ids(got), []string{"2"}) {
		t.Errorf("district substring hỏng: %v", ids(got))
	}
}

func TestStatsBy(t *testing.T) {
	e := testEngine(t)

	s, err := e.StatsBy("price", Filters{Province: "ha noi"})
	if err != nil {
		t.Fatal(err)
	}
	if s.Count != 2 || s.Min != 60 || s.Max != 90 || s.Avg != 75 || s.Total != 150 {
		t.Errorf("stats = %+v", s)
	}
}

func TestStatsBy_EmptySet(t *testing.T) {
	e := testEngine(t)

	s, err := e.StatsBy("price", Filters{Province: "Nonexistent"})
	if err != nil {
		t.Fatal(err)
	}
	if s.Count != 0 || s.Min != 0 || s.Max != 0 || s.Avg != 0 || s.Total != 0 {
		t.Errorf("tập rỗng phải toàn zero, got %+v", s)
	}
}

func TestTopListings(t *testing.T) {
	e := testEngine(t)

	got, err := e.TopListings("price", "desc", 2, Filters{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ids(got), []string{"3", "2"}) {
		t.Errorf("top price desc = %v", ids(got))
	}

	got, _ = e.TopListings("area", "asc", 10, Filters{})
	if !reflect.DeepEqual(ids(got), []string{"4", "3", "1", "2"}) {
		t.Errorf("top area asc = %v", ids(got))
	}

	if _, err := e.TopListings("bogus", "desc", 5, Filters{}); err == nil {
		t.Error("trường lạ phải trả lỗi")
	}
}
