// Package config loads quotation builder settings using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"quotebuilder/services"
)

// EnvPrefix is the prefix of environment variable overrides, e.g.
// QB_QUOTE_TAX=12 or QB_EXPORT_PAGE_SIZE=Letter.
const EnvPrefix = "QB_"

// Config is the root configuration structure.
type Config struct {
	Quote   QuoteConfig   `koanf:"quote"   validate:"required"`
	Company CompanyConfig `koanf:"company"`
	Export  ExportConfig  `koanf:"export"  validate:"required"`
	Counter CounterConfig `koanf:"counter" validate:"required"`
}

// QuoteConfig holds the defaults a new quotation starts with.
type QuoteConfig struct {
	Currency string  `koanf:"currency" validate:"required"`
	Discount float64 `koanf:"discount" validate:"min=0,max=100"`
	Handling float64 `koanf:"handling" validate:"min=0,max=100"`
	Tax      float64 `koanf:"tax"      validate:"min=0,max=100"`
	Terms    string  `koanf:"terms"`
}

// CompanyConfig is printed at the top of exports.
type CompanyConfig struct {
	Name string `koanf:"name"`
}

// ExportConfig holds the default PDF layout.
type ExportConfig struct {
	PageSize    string `koanf:"page_size"   validate:"required,oneof=A3 A4 A5 Letter Legal"`
	Orientation string `koanf:"orientation" validate:"required,oneof=portrait landscape"`
}

// CounterConfig names the settings key holding the last issued document number.
type CounterConfig struct {
	Key string `koanf:"key" validate:"required"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"quote.currency": "₹",
		"quote.discount": float64(services.DefaultDiscountPercent),
		"quote.handling": float64(services.DefaultHandlingPercent),
		"quote.tax":      float64(services.DefaultTaxPercent),
		"quote.terms":    services.DefaultTerms,

		"company.name": "",

		"export.page_size":   "A4",
		"export.orientation": "portrait",

		"counter.key": services.DocNumberCounterKey,
	}
}

// Default returns the configuration built from defaults alone, ignoring
// files and the environment.
func Default() *Config {
	k := koanf.New(".")
	var cfg Config
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err == nil {
		_ = k.Unmarshal("", &cfg)
	}
	return &cfg
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (QB_ prefix)
//  2. YAML file at path, when path is set and the file exists
//  3. Default values
//
// The result is validated before it is returned.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if err := loadFileIfExists(k, path); err != nil {
			return nil, fmt.Errorf("loading config file %q: %w", path, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps QB_EXPORT_PAGE_SIZE to export.page_size: the first
// underscore separates the section, the rest belong to the key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(s, "_", ".", 1)
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return k.Load(file.Provider(path), yaml.Parser())
}
