// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package engine

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// Config seeds a new Engine. Translations, if given, is added to the
// catalog up front via Catalog.Add, keyed by locale; callers may also seed
// incrementally afterward with AddTranslations or Catalog.LoadPO.
type Config struct {
	// Locale is the engine's default request locale. Defaults to "en".
	Locale string `yaml:"locale"`
	// DefaultLocale is consulted after Locale (and its base language) when
	// a key is missing from the request locale's catalog. Defaults to "en".
	DefaultLocale string `yaml:"defaultLocale"`
	// Translations seeds the catalog: locale -> (flat or nested) template
	// tree, as accepted by Catalog.Add.
	Translations map[string]map[string]any `yaml:"translations"`
}

// ParseConfig decodes raw as a Config, the same shape Init accepts
// directly - following the teacher's configs/config.go convention of
// decoding a YAML document straight into a tagged struct.
func ParseConfig(raw []byte) (Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("engine: decode config: %w", err)
	}

	return cfg, nil
}

// InitFromYAML decodes raw via ParseConfig and constructs an Engine from it.
func InitFromYAML(raw []byte) (*Engine, error) {
	cfg, err := ParseConfig(raw)
	if err != nil {
		return nil, err
	}

	return Init(cfg)
}
