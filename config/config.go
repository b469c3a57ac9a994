// Package config loads the recommendation core's configuration through a
// layered koanf stack, grounded in the teacher's services/config.go: default
// map, then a JSON file overlay, then environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the environment-variable prefix read into the config tree,
// mirroring the teacher's "suasor_" convention.
const envPrefix = "MEDIAPICK_"

// Config is the recommendation core's runtime configuration.
type Config struct {
	Catalog CatalogConfig `koanf:"catalog"`
	Cache   CacheConfig   `koanf:"cache"`
	Store   StoreConfig   `koanf:"store"`
}

// CatalogConfig configures the rate-limited external-catalog adapter.
type CatalogConfig struct {
	APIKey       string        `koanf:"api_key"`
	MinSpacing   time.Duration `koanf:"min_spacing"`
	Burst        int           `koanf:"burst"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	RetryWait    time.Duration `koanf:"retry_wait"`
}

// CacheConfig configures the TTLCache and the per-call-class TTLs the
// CachedAdapter applies to Discover, GetDetails/GetWatchProviders, and
// GetVideos results.
type CacheConfig struct {
	MaxSize       int           `koanf:"max_size"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
	DiscoverTTL   time.Duration `koanf:"discover_ttl"`
	DetailsTTL    time.Duration `koanf:"details_ttl"`
	VideosTTL     time.Duration `koanf:"videos_ttl"`
}

// StoreConfig configures persistent storage for profiles, history, and weights.
type StoreConfig struct {
	DSN string `koanf:"dsn"`
}

var defaults = map[string]interface{}{
	"catalog.min_spacing":     "100ms",
	"catalog.burst":           1,
	"catalog.request_timeout": "10s",
	"catalog.retry_wait":      "1s",
	"cache.max_size":          10000,
	"cache.sweep_interval":    "5m",
	"cache.discover_ttl":      "5m",
	"cache.details_ttl":       "24h",
	"cache.videos_ttl":        "168h",
	"store.dsn":               "file::memory:?cache=shared",
}

// Load builds a Config by layering defaults, an optional JSON file at path,
// and environment variables prefixed MEDIAPICK_.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	_ = godotenv.Load()

	if path != "" {
		if err := k.Load(file.Provider(path), kjson.Parser()); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyReplacer), nil); err != nil {
		return nil, fmt.Errorf("load config env: %w", err)
	}

	cfg := &Config{}
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func envKeyReplacer(s string) string {
	out := make([]rune, 0, len(s))
	trimmed := s[len(envPrefix):]
	for _, r := range trimmed {
		switch {
		case r == '_':
			out = append(out, '.')
		case r >= 'A' && r <= 'Z':
			out = append(out, r-'A'+'a')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
