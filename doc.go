// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package i18ntree walks an arbitrary structured value and returns a
structurally identical copy in which every embedded translation node has
been resolved to a locale-specific string.

# Quick start

	eng, err := engine.Init(engine.Config{Locale: "en"})
	if err != nil {
		log.Fatal(err)
	}

	eng.AddTranslations("en", map[string]any{"howdy": "Howdy"})

	out, err := eng.Translate(context.Background(), map[string]any{
		"greeting": i18ntree.BuildTranslateNode("howdy", nil, nil),
	}, "en", nil)

Input values are scalars, ordered sequences ([]any), string-keyed mappings
(map[string]any), or opaque values that implement [Canonicalizable]. A
translation node is a mapping with exactly one top-level key "@translate";
see [IsTranslationNode] for the full grammar.

# Missing translations

A node whose key cannot be resolved in any consulted locale, and which
carries no fallback template, is left untranslated as its raw key string.
A node that fails schema validation is returned unchanged, deep-equal to
the input.

# Formatting

Placeholders may be typed payloads consumed by the formatter registry in
package format: date, time, datetime, duration, and currency. See package
format for details.
*/
package i18ntree
