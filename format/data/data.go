// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package data loads the embedded per-base-language calendar and duration unit
name table consulted by package format, the same way i18n/setup.go loads
"i18n/tags/data/tag_translations.yaml" via goccy/go-yaml.
*/
package data

import (
	"embed"
	"fmt"
	"sync"

	"github.com/goccy/go-yaml"
)

//go:embed locales.yaml
var localesFS embed.FS

// UnitNames gives the singular ("one") and plural ("other") names for a
// duration unit in one locale.
type UnitNames struct {
	One   string `yaml:"one"`
	Other string `yaml:"other"`
}

// Locale holds the calendar/number conventions for one base language.
type Locale struct {
	Months           []string             `yaml:"months"`
	Weekdays         []string             `yaml:"weekdays"`
	DateTemplate     string               `yaml:"dateTemplate"`
	TimeTemplate     string               `yaml:"timeTemplate"`
	DatetimeTemplate string               `yaml:"datetimeTemplate"`
	Hour12           bool                 `yaml:"hour12"`
	DecimalSeparator string               `yaml:"decimalSeparator"`
	CurrencyPrefix   bool                 `yaml:"currencyPrefix"`
	Units            map[string]UnitNames `yaml:"units"`
}

var (
	once   sync.Once
	loaded map[string]Locale
	loadErr error
)

// Locales returns the full base-language -> Locale table, loading and
// caching it on first call.
func Locales() (map[string]Locale, error) {
	once.Do(func() {
		raw, err := localesFS.ReadFile("locales.yaml")
		if err != nil {
			loadErr = fmt.Errorf("format/data: read locales.yaml: %w", err)

			return
		}

		var table map[string]Locale
		if err := yaml.Unmarshal(raw, &table); err != nil {
			loadErr = fmt.Errorf("format/data: decode locales.yaml: %w", err)

			return
		}

		loaded = table
	})

	return loaded, loadErr
}

// For returns the Locale data for base, falling back to "en" when base is
// not present in the table.
func For(base string) Locale {
	table, err := Locales()
	if err != nil || table == nil {
		return Locale{}
	}

	if l, ok := table[base]; ok {
		return l
	}

	return table["en"]
}
