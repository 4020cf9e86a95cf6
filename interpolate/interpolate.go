// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package interpolate substitutes "{{name}}" and "{{name, format}}" markers,
and "$t(other-key)" references, inside a template string. It has no
knowledge of the catalog or engine; callers supply a FormatFunc for typed
placeholder rendering and a RefFunc for resolving $t() references, following
the named-placeholder substitution shape used throughout the i18n corpus
(e.g. other_examples' gokit/i18nx namedSprintf, adapted from "%{name}" to
"{{name}}"/"{{name, format}}").
*/
package interpolate

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholderPattern matches "{{name}}" or "{{name, format}}". Names may
// contain dots; a dotted name is looked up as one literal key in the
// placeholders map, not traversed into nested values.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*(?:,\s*([A-Za-z0-9_]+)\s*)?\}\}`)

// refPattern matches "$t(key)" reference markers.
var refPattern = regexp.MustCompile(`\$t\(([^)]+)\)`)

// FormatFunc renders a typed placeholder value using a named formatter. It
// reports ok=false when the formatter name is unknown, in which case the
// caller falls back to the placeholder's raw stringified value.
type FormatFunc func(format string, value any) (string, bool)

// RefFunc resolves a "$t(key)" reference to its fully rendered string. It
// reports ok=false when the key cannot be resolved at all.
type RefFunc func(key string) (string, bool)

// Run substitutes every "{{name}}"/"{{name, format}}" marker in tmpl using
// placeholders, then resolves any "$t(key)" references against resolveRef.
// format may be nil, in which case every "{{name, format}}" marker emits the
// raw placeholder value, as if the format were unknown.
func Run(tmpl string, placeholders map[string]any, format FormatFunc, resolveRef RefFunc) string {
	out := placeholderPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		sub := placeholderPattern.FindStringSubmatch(match)
		name, formatName := sub[1], sub[2]

		value, present := placeholders[name]

		if formatName != "" && format != nil {
			if present {
				if rendered, ok := format(formatName, value); ok {
					return rendered
				}
			}
		}

		if !present || value == nil {
			return ""
		}

		return stringify(value)
	})

	if resolveRef != nil {
		out = refPattern.ReplaceAllStringFunc(out, func(match string) string {
			sub := refPattern.FindStringSubmatch(match)
			key := strings.TrimSpace(sub[1])

			if resolved, ok := resolveRef(key); ok {
				return resolved
			}

			return match
		})
	}

	return out
}

// stringify renders a scalar placeholder value as text. It does not HTML
// escape: spec.md §4.4 requires literal markup to pass through verbatim.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
