package config

import (
	"fmt"
	"os"

	"github.com/listing-geo/internal/geo"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// GeoRules cấu hình rule địa lý đọc từ file yaml (biên quốc gia, cap
// preview báo cáo). Biên mặc định là envelope Việt Nam.
type GeoRules struct {
	Bounds     geo.Bounds `yaml:"bounds"`
	PreviewCap int        `yaml:"preview_cap"`
}

// LoadGeoRules đọc rules từ file yaml; path rỗng hoặc file thiếu thì
// dùng mặc định
func LoadGeoRules(path string) (GeoRules, error) {
	rules := GeoRules{Bounds: geo.VietnamBounds, PreviewCap: 20}
	if path == "" {
		return rules, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return rules, nil
		}
		return rules, fmt.Errorf("không đọc được geo rules %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &rules); err != nil {
		return rules, fmt.Errorf("geo rules %s không hợp lệ: %w", path, err)
	}
	if rules.PreviewCap <= 0 {
		rules.PreviewCap = 20
	}
	return rules, nil
}

// LoadServerConfig thiết lập viper cho server: defaults + file config
// (nếu có) + env override
func LoadServerConfig() {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("data.catalog", "data/catalog.json")
	viper.SetDefault("data.listings", "data/listings.json")
	viper.SetDefault("data.geo_rules", "config/geo_rules.yaml")
	viper.SetDefault("cache.l1_size", 10000)
	viper.SetDefault("cache.redis_url", "") // rỗng = không bật L2
	viper.SetDefault("meilisearch.url", "http://localhost:7700")
	viper.SetDefault("meilisearch.master_key", "")
	viper.SetDefault("meilisearch.index", "listings")

	viper.AutomaticEnv()

	// file config là tùy chọn, thiếu thì chạy với defaults
	_ = viper.ReadInConfig()
}
