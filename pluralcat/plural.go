// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package pluralcat resolves the CLDR-style plural category for a (locale,
count) pair. It implements the category rules by hand rather than relying on
golang.org/x/text/feature/plural, whose exported surface is still marked
experimental and not safe to pin a library API to.
*/
package pluralcat

import (
	"math"

	"github.com/brightlocale/i18ntree/localetag"
)

// Category is one of the plural category tags a (locale, count) pair can
// resolve to.
type Category string

// The plural categories named in spec.md's GLOSSARY.
const (
	Zero  Category = "zero"
	One   Category = "one"
	Two   Category = "two"
	Few   Category = "few"
	Many  Category = "many"
	Other Category = "other"
)

// Resolve returns the plural category for n under locale. locale may carry a
// region (e.g. "en-US"); only the base language subtag is consulted, per
// spec.md §4.5 ("Region suffix of the locale is ignored").
func Resolve(locale string, n float64) Category {
	base := localetag.Base(locale)

	n = math.Abs(n)

	switch base {
	case "ar":
		return arabicForm(n)
	case "ru", "uk", "be", "sr", "hr", "bs":
		return slavicForm(n)
	case "pl":
		return polishForm(n)
	case "cs", "sk":
		return czechForm(n)
	case "lt":
		return lithuanianForm(n)
	case "lv":
		return latvianForm(n)
	case "ja", "ko", "zh", "th", "vi", "id", "ms", "km", "lo", "my":
		// No number distinction: every count is "other".
		return Other
	case "fr", "pt", "hy", "ff", "kab":
		return frenchForm(n)
	default:
		return germanicForm(n)
	}
}

func isInt(n float64) bool {
	return n == math.Trunc(n)
}

// germanicForm implements the common English-like rule: one is singular,
// everything else (including zero and fractions) is plural.
func germanicForm(n float64) Category {
	if n == 1 {
		return One
	}

	return Other
}

// frenchForm: 0 and 1 are singular (the "n < 2" rule used by French,
// Portuguese, Armenian, and relatives), everything else is plural.
func frenchForm(n float64) Category {
	if n < 2 {
		return One
	}

	return Other
}

// arabicForm implements the six-way Arabic rule.
func arabicForm(n float64) Category {
	if !isInt(n) {
		return Other
	}

	i := int64(n)

	switch {
	case i == 0:
		return Zero
	case i == 1:
		return One
	case i == 2:
		return Two
	case i%100 >= 3 && i%100 <= 10:
		return Few
	case i%100 >= 11 && i%100 <= 99:
		return Many
	default:
		return Other
	}
}

// slavicForm implements the Russian/Ukrainian/Serbian three-way rule
// (one/few/many/other) based on the last one and two digits.
func slavicForm(n float64) Category {
	if !isInt(n) {
		return Other
	}

	i := int64(n)
	mod10 := i % 10
	mod100 := i % 100

	switch {
	case mod10 == 1 && mod100 != 11:
		return One
	case mod10 >= 2 && mod10 <= 4 && (mod100 < 12 || mod100 > 14):
		return Few
	default:
		return Many
	}
}

// polishForm implements Polish's one/few/many/other rule.
func polishForm(n float64) Category {
	if !isInt(n) {
		return Other
	}

	i := int64(n)

	switch {
	case i == 1:
		return One
	case i%10 >= 2 && i%10 <= 4 && (i%100 < 12 || i%100 > 14):
		return Few
	default:
		return Many
	}
}

// czechForm implements Czech/Slovak's one/few/other rule, with a distinct
// "many" for non-integers.
func czechForm(n float64) Category {
	switch {
	case n == 1:
		return One
	case isInt(n) && n >= 2 && n <= 4:
		return Few
	case !isInt(n):
		return Many
	default:
		return Other
	}
}

// lithuanianForm implements Lithuanian's one/few/many/other rule.
func lithuanianForm(n float64) Category {
	if !isInt(n) {
		return Many
	}

	i := int64(n)
	mod10 := i % 10
	mod100 := i % 100

	switch {
	case mod10 == 1 && (mod100 < 11 || mod100 > 19):
		return One
	case mod10 >= 2 && mod10 <= 9 && (mod100 < 11 || mod100 > 19):
		return Few
	default:
		return Other
	}
}

// latvianForm implements Latvian's zero/one/other rule.
func latvianForm(n float64) Category {
	if !isInt(n) {
		return Other
	}

	i := int64(n)
	mod10 := i % 10
	mod100 := i % 100

	switch {
	case mod10 == 0 || (mod100 >= 11 && mod100 <= 19):
		return Zero
	case mod10 == 1 && mod100 != 11:
		return One
	default:
		return Other
	}
}
