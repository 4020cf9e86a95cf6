// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18ntree

// TranslateKey is the single recognized top-level key of a translation node.
const TranslateKey = "@translate"

// Node is the parsed, validated content of an "@translate" object.
type Node struct {
	Key          string
	Quantity     *float64
	HasQuantity  bool
	Placeholders map[string]any
	Fallback     string
	HasFallback  bool
}

// IsTranslationNode reports whether v is a plain mapping with exactly one
// top-level key "@translate", whose value is itself a plain mapping
// constrained to {key (required, non-empty string), quantity (number),
// placeholders (mapping), fallback (string)}. Any other shape - an extra
// top-level key, an extra inner key, or a wrongly typed field - is rejected.
//
// Rejected nodes are ordinary mappings as far as Walk is concerned: they
// are walked into like any other map[string]any, not substituted.
func IsTranslationNode(v any) bool {
	_, ok := parseNode(v)

	return ok
}

// parseNode validates and extracts a Node from v. It returns ok=false for
// anything that isn't a well-formed "@translate" object.
func parseNode(v any) (Node, bool) {
	outer, ok := isPlainMap(v)
	if !ok || len(outer) != 1 {
		return Node{}, false
	}

	raw, ok := outer[TranslateKey]
	if !ok {
		return Node{}, false
	}

	inner, ok := isPlainMap(raw)
	if !ok {
		return Node{}, false
	}

	var node Node

	for k, val := range inner {
		switch k {
		case "key":
			s, ok := val.(string)
			if !ok || s == "" {
				return Node{}, false
			}

			node.Key = s
		case "quantity":
			n, ok := asNumber(val)
			if !ok {
				return Node{}, false
			}

			node.Quantity = &n
			node.HasQuantity = true
		case "placeholders":
			m, ok := isPlainMap(val)
			if !ok {
				return Node{}, false
			}

			node.Placeholders = m
		case "fallback":
			s, ok := val.(string)
			if !ok {
				return Node{}, false
			}

			node.Fallback = s
			node.HasFallback = true
		default:
			return Node{}, false
		}
	}

	if node.Key == "" {
		return Node{}, false
	}

	if node.Placeholders == nil {
		node.Placeholders = map[string]any{}
	}

	return node, true
}

// asNumber accepts any of the numeric kinds a decoded JSON/YAML document may
// produce and normalizes to float64. Strings are deliberately rejected: the
// test corpus expects {"quantity": "3"} to invalidate the node.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// BuildTranslateNodeOptions carries the optional fields of a translation node.
type BuildTranslateNodeOptions struct {
	Fallback string
	Quantity *float64
}

// BuildTranslateNode constructs the canonical wire form of a translation
// node: {"@translate": {"key": key, ...}}. The result satisfies
// IsTranslationNode whenever key is non-empty; key itself is not validated,
// so an empty key yields a node that IsTranslationNode rejects.
func BuildTranslateNode(key string, placeholders map[string]any, opts *BuildTranslateNodeOptions) map[string]any {
	inner := map[string]any{"key": key}

	if len(placeholders) > 0 {
		inner["placeholders"] = placeholders
	}

	if opts != nil {
		if opts.Quantity != nil {
			inner["quantity"] = *opts.Quantity
		}

		if opts.Fallback != "" {
			inner["fallback"] = opts.Fallback
		}
	}

	return map[string]any{TranslateKey: inner}
}
