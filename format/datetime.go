// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package format

import (
	"github.com/brightlocale/i18ntree/format/data"
	"github.com/brightlocale/i18ntree/localetag"
)

// FormatDatetime renders full weekday + date + short time, e.g. "mercredi
// 3 février 2016 04:05" (fr), respecting DST transitions for the effective
// zone (time.Time.In handles this for us; we only pick the zone).
func FormatDatetime(ctx Context, value any) (string, error) {
	tm, tzOverride, err := resolveDateValue(value)
	if err != nil {
		return "", err
	}

	loc, err := effectiveLocation(ctx, tzOverride, tm.Location())
	if err != nil {
		return "", err
	}

	tm = tm.In(loc)

	l := data.For(localetag.Base(ctx.Locale))

	tmpl := l.DatetimeTemplate
	if tmpl == "" {
		tmpl = "{weekday} {day} {month} {year} {time}"
	}

	return applyCalendarTemplate(tmpl, tm, l), nil
}
