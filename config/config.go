// Package config loads tacalc settings from TA_-prefixed environment
// variables and the optional YAML indicator-set file.
package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"

	"github.com/NeaByteLab/Trading-Lib-sub003/internal/indicator"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/source"
)

// Prefix is prepended to every environment variable name.
const Prefix = "TA_"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Logging / observability
	LogLevel    string `env:"LOG_LEVEL, default=info"`
	ServiceName string `env:"SERVICE_NAME, default=tacalc"`
	MetricsAddr string `env:"METRICS_ADDR"` // empty disables the metrics server

	// Bar sources
	SQLitePath string      `env:"SQLITE_PATH, default=data/bars.db"`
	Redis      RedisConfig `env:", prefix=REDIS_"`

	// Indicator set: INDICATOR_FILE wins over INDICATORS when both are set.
	Indicators    string `env:"INDICATORS"`
	IndicatorFile string `env:"INDICATOR_FILE"`
	// DefaultSource, when set, replaces each indicator's own default source.
	DefaultSource string `env:"DEFAULT_SOURCE"`
}

// RedisConfig holds the Redis connection used by the stream bar loader.
type RedisConfig struct {
	Addr     string `env:"ADDR, default=localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB, default=0"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l, applying Prefix to every key.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.PrefixLookuper(Prefix, l),
	}); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.DefaultSource != "" {
		src, err := source.Parse(cfg.DefaultSource)
		if err != nil {
			return nil, fmt.Errorf("%sDEFAULT_SOURCE: %w", Prefix, err)
		}
		cfg.DefaultSource = string(src)
	}
	return &cfg, nil
}

// Specs returns the configured indicator set. When DefaultSource is set,
// specs without an explicit source get it; otherwise each indicator keeps
// its own default (hlc3 for cci, close for most).
func (c *Config) Specs() ([]indicator.Spec, error) {
	var specs []indicator.Spec
	if c.IndicatorFile != "" {
		var err error
		if specs, err = LoadIndicatorFile(c.IndicatorFile); err != nil {
			return nil, err
		}
	} else {
		specs = indicator.ParseSpecs(c.Indicators)
	}
	for i := range specs {
		if c.DefaultSource != "" && specs[i].Config.Source == "" {
			specs[i].Config.Source = c.DefaultSource
		}
	}
	return specs, nil
}

// fileEntry is one item of the indicator-set file. Keys it does not name
// are ignored.
type fileEntry struct {
	Type             string `yaml:"type"`
	Name             string `yaml:"name,omitempty"`
	indicator.Config `yaml:",inline"`
}

// LoadIndicatorFile reads a YAML indicator-set file.
func LoadIndicatorFile(path string) ([]indicator.Spec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read indicator file: %w", err)
	}
	specs, err := ParseIndicatorFile(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return specs, nil
}

// ParseIndicatorFile decodes a YAML list such as
//
//	- type: rsi
//	  length: 14
//	- type: macd
//	  name: macd_fast
//	  params: {fastLength: 6, slowLength: 13}
func ParseIndicatorFile(raw []byte) ([]indicator.Spec, error) {
	var entries []fileEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse indicator file: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("parse indicator file: no indicators listed")
	}

	specs := make([]indicator.Spec, 0, len(entries))
	for i, e := range entries {
		typ := strings.ToLower(strings.TrimSpace(e.Type))
		if typ == "" {
			return nil, fmt.Errorf("indicator file entry %d: missing type", i)
		}
		specs = append(specs, indicator.Spec{Type: typ, Name: e.Name, Config: e.Config})
	}
	return specs, nil
}
