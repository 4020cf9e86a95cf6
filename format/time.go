// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package format

import (
	"github.com/brightlocale/i18ntree/format/data"
	"github.com/brightlocale/i18ntree/localetag"
)

// FormatTime renders a short time, e.g. "4:05 PM" (en) or "Son las 04:05"
// (es), localized to ctx.Locale and the effective timezone. In every 24-hour
// locale the hour is zero-padded to two digits; an unpadded hour is not
// available.
func FormatTime(ctx Context, value any) (string, error) {
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

	tmpl := l.TimeTemplate
	if tmpl == "" {
		tmpl = "{time}"
	}

	return applyCalendarTemplate(tmpl, tm, l), nil
}
