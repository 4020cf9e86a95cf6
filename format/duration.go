// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package format

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/brightlocale/i18ntree/format/data"
	"github.com/brightlocale/i18ntree/localetag"
	"github.com/brightlocale/i18ntree/pluralcat"
)

var errDurationValueRequired = errors.New("format: duration placeholder requires a numeric value in milliseconds")

// unitSpec is one of the canonical duration units, ordered largest to
// smallest, with its length in milliseconds. Month and year use the
// Gregorian average length, since durations aren't anchored to a calendar
// date.
type unitSpec struct {
	name string
	ms   float64
}

var allDurationUnits = []unitSpec{
	{"year", 365.25 * 24 * 3600 * 1000},
	{"month", 30.44 * 24 * 3600 * 1000},
	{"week", 7 * 24 * 3600 * 1000},
	{"day", 24 * 3600 * 1000},
	{"hour", 3600 * 1000},
	{"minute", 60 * 1000},
	{"second", 1000},
	{"millisecond", 1},
}

// durationComponent is one rendered "<amount> <unit>" piece.
type durationComponent struct {
	unit   string
	amount float64
}

// FormatDuration renders a humanized elapsed time from a millisecond count.
// Options (in the placeholder payload): precision (largest-N units),
// units (restrict the emitted unit set), round (round to whole units).
func FormatDuration(ctx Context, value any) (string, error) {
	payload, ok := value.(map[string]any)
	if !ok {
		payload = map[string]any{"value": value}
	}

	ms, ok := asFloat(payload["value"])
	if !ok {
		return "", errDurationValueRequired
	}

	selected := selectDurationUnits(payload["units"])
	round := asBool(payload["round"])
	precision, hasPrecision := asInt(payload["precision"])

	components := decomposeDuration(ms, selected, round)

	components = trimLeadingZeros(components)

	if hasPrecision && precision > 0 && precision < len(components) {
		components = components[:precision]
	}

	l := data.For(localetag.Base(ctx.Locale))

	parts := make([]string, 0, len(components))

	for _, c := range components {
		category := pluralcat.Resolve(ctx.Locale, c.amount)
		names := l.Units[c.unit]

		name := names.Other
		if category == pluralcat.One {
			name = names.One
		}

		if name == "" {
			name = c.unit
		}

		parts = append(parts, fmt.Sprintf("%s %s", formatAmount(c.amount, round, l), name))
	}

	return strings.Join(parts, ", "), nil
}

// selectDurationUnits resolves the "units" payload field into an ordered
// subset of allDurationUnits. An empty or absent list means "all units".
func selectDurationUnits(v any) []unitSpec {
	raw, ok := v.([]any)
	if !ok || len(raw) == 0 {
		return allDurationUnits
	}

	wanted := make(map[string]bool, len(raw))

	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			continue
		}

		wanted[normalizeUnitName(s)] = true
	}

	if len(wanted) == 0 {
		return allDurationUnits
	}

	out := make([]unitSpec, 0, len(wanted))

	for _, u := range allDurationUnits {
		if wanted[u.name] {
			out = append(out, u)
		}
	}

	if len(out) == 0 {
		return allDurationUnits
	}

	return out
}

// normalizeUnitName accepts either the singular or plural English unit name
// and returns the canonical singular.
func normalizeUnitName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, "s")

	return s
}

// decomposeDuration splits ms across the selected units, largest first. All
// but the last selected unit take the integer count of whole units
// remaining; the last takes either the rounded whole count (round=true) or
// the exact fractional remainder (round=false).
func decomposeDuration(ms float64, units []unitSpec, round bool) []durationComponent {
	out := make([]durationComponent, 0, len(units))
	remaining := ms

	for i, u := range units {
		isLast := i == len(units)-1

		if isLast {
			amount := remaining / u.ms
			if round {
				amount = math.Round(amount)
			}

			out = append(out, durationComponent{unit: u.name, amount: amount})

			continue
		}

		count := math.Floor(remaining / u.ms)
		remaining -= count * u.ms
		out = append(out, durationComponent{unit: u.name, amount: count})
	}

	return out
}

// trimLeadingZeros drops leading zero-valued components, always keeping at
// least the last one so a zero duration still renders something.
func trimLeadingZeros(components []durationComponent) []durationComponent {
	for len(components) > 1 && components[0].amount == 0 {
		components = components[1:]
	}

	return components
}

// formatAmount renders a duration component's numeric amount. Whole numbers
// are rendered without a decimal point; fractional amounts (only possible
// when round=false) use the locale's decimal separator.
func formatAmount(amount float64, round bool, l data.Locale) string {
	if round || amount == math.Trunc(amount) {
		return strconv.FormatFloat(amount, 'f', 0, 64)
	}

	s := strconv.FormatFloat(amount, 'f', -1, 64)

	sep := l.DecimalSeparator
	if sep == "" {
		sep = "."
	}

	return strings.Replace(s, ".", sep, 1)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func asInt(v any) (int, bool) {
	f, ok := asFloat(v)
	if !ok {
		return 0, false
	}

	return int(f), true
}

func asBool(v any) bool {
	b, _ := v.(bool)

	return b
}
