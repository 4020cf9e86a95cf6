// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/brightlocale/i18ntree/format/data"
)

var errUnparseableDateValue = errors.New("format: unparseable date-like placeholder value")

// resolveDateValue extracts a time.Time and an optional timezone override
// from a date-like placeholder per spec.md §3: either a bare scalar (ISO8601
// string, epoch milliseconds, or a time.Time) or a
// {value, timezone?} mapping.
func resolveDateValue(v any) (time.Time, string, error) {
	switch t := v.(type) {
	case map[string]any:
		tz, _ := t["timezone"].(string)

		inner, ok := t["value"]
		if !ok {
			return time.Time{}, "", fmt.Errorf("%w: missing value field", errUnparseableDateValue)
		}

		tm, err := parseTimeScalar(inner)

		return tm, tz, err
	default:
		tm, err := parseTimeScalar(v)

		return tm, "", err
	}
}

// parseTimeScalar accepts a time.Time, an ISO 8601 string, or an epoch
// timestamp in milliseconds (matching FormatDuration's unit).
func parseTimeScalar(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		if tm, err := time.Parse(time.RFC3339, t); err == nil {
			return tm, nil
		}

		if tm, err := time.Parse("2006-01-02T15:04:05", t); err == nil {
			return tm, nil
		}

		if tm, err := time.Parse("2006-01-02", t); err == nil {
			return tm, nil
		}

		return time.Time{}, fmt.Errorf("%w: %q", errUnparseableDateValue, t)
	case float64:
		return time.UnixMilli(int64(t)).UTC(), nil
	case int64:
		return time.UnixMilli(t).UTC(), nil
	case int:
		return time.UnixMilli(int64(t)).UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %T", errUnparseableDateValue, v)
	}
}

// effectiveLocation picks the zone to render in: the placeholder's own
// timezone override, else the engine-level timezone from ctx, else the
// value's own zone.
func effectiveLocation(ctx Context, override string, own *time.Location) (*time.Location, error) {
	if override != "" {
		loc, err := time.LoadLocation(override)
		if err != nil {
			return nil, fmt.Errorf("format: invalid timezone %q: %w", override, err)
		}

		return loc, nil
	}

	if ctx.Timezone != nil {
		return ctx.Timezone, nil
	}

	if own != nil {
		return own, nil
	}

	return time.UTC, nil
}

// monthName returns the locale month name for tm's calendar month.
func monthName(l data.Locale, month time.Month) string {
	idx := int(month)
	if idx < 1 || idx > len(l.Months) {
		return ""
	}

	return l.Months[idx-1]
}

// weekdayName returns the locale weekday name for tm's calendar weekday.
// time.Sunday == 0, matching the weekdays table's ordering.
func weekdayName(l data.Locale, day time.Weekday) string {
	idx := int(day)
	if idx < 0 || idx >= len(l.Weekdays) {
		return ""
	}

	return l.Weekdays[idx]
}

// shortTime renders tm's hour:minute, 12-hour with an AM/PM suffix when
// l.Hour12 is set, otherwise zero-padded 24-hour.
func shortTime(tm time.Time, l data.Locale) string {
	if l.Hour12 {
		hour := tm.Hour() % 12
		if hour == 0 {
			hour = 12
		}

		suffix := "AM"
		if tm.Hour() >= 12 {
			suffix = "PM"
		}

		return fmt.Sprintf("%d:%02d %s", hour, tm.Minute(), suffix)
	}

	return fmt.Sprintf("%02d:%02d", tm.Hour(), tm.Minute())
}

// applyCalendarTemplate substitutes {day}/{month}/{year}/{weekday}/{time}
// tokens in tmpl.
func applyCalendarTemplate(tmpl string, tm time.Time, l data.Locale) string {
	out := tmpl
	out = strings.ReplaceAll(out, "{day}", strconv.Itoa(tm.Day()))
	out = strings.ReplaceAll(out, "{month}", monthName(l, tm.Month()))
	out = strings.ReplaceAll(out, "{year}", strconv.Itoa(tm.Year()))
	out = strings.ReplaceAll(out, "{weekday}", weekdayName(l, tm.Weekday()))
	out = strings.ReplaceAll(out, "{time}", shortTime(tm, l))

	return out
}
