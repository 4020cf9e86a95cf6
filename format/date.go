// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package format

import (
	"github.com/brightlocale/i18ntree/format/data"
	"github.com/brightlocale/i18ntree/localetag"
)

// FormatDate renders a full long-form date, e.g. "3 February 2016" (en) or
// "30 octobre 2016" (fr), localized to ctx.Locale and in the placeholder's
// timezone if given, else ctx.Timezone, else the value's own zone.
func FormatDate(ctx Context, value any) (string, error) {
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

	tmpl := l.DateTemplate
	if tmpl == "" {
		tmpl = "{day} {month} {year}"
	}

	return applyCalendarTemplate(tmpl, tm, l), nil
}
