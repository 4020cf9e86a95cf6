// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18ntree

// Canonicalizable is an opaque value that can produce a plain structural
// form of itself for the walker to recurse into. Types such as database
// rows, time wrappers, or other domain objects that aren't already a
// map[string]any/[]any/scalar implement this to participate in a walk.
//
// ToCanonical must return a value built only from scalars, []any, and
// map[string]any (optionally containing further Canonicalizable values);
// returning the receiver itself, or a cyclic structure, causes Walk to
// recurse forever.
type Canonicalizable interface {
	ToCanonical() any
}

// isPlainMap reports whether v is a string-keyed map, the shape a
// translation node and ordinary structural mappings both take.
func isPlainMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)

	return m, ok
}

// isSequence reports whether v is an ordered sequence.
func isSequence(v any) ([]any, bool) {
	s, ok := v.([]any)

	return s, ok
}
