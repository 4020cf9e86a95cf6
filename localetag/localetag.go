// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package localetag resolves the base language subtag of a locale string
(stripping region, script, and variant), the single shared notion of
"which language family does this locale belong to" consulted by catalog
fallback, plural category selection, and calendar data lookup.
*/
package localetag

import "golang.org/x/text/language"

// Base returns locale's base language subtag, ignoring any region, script,
// or variant - "en-US" and "en-GB" both yield "en". An unparseable locale
// string is returned unchanged, so callers can still use it as a map key
// even when it isn't a well-formed BCP 47 tag.
func Base(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return locale
	}

	base, _ := tag.Base()

	return base.String()
}
