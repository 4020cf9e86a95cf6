// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package catalog is an in-memory store of templates keyed by (locale,
dotted-key-path). It supports deep-merge additions, existence checks, plain
lookup, and plural-aware lookup with the legacy "_plural" suffix fallback.
*/
package catalog

import (
	"io/fs"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/leonelquinteros/gotext"
)

// Catalog is a concurrency-safe store of locale -> (nested template tree).
// The zero value is ready to use.
type Catalog struct {
	mu   sync.RWMutex
	tree map[string]map[string]any // locale -> nested template tree
}

// New returns an empty, ready-to-use Catalog.
func New() *Catalog {
	return &Catalog{tree: make(map[string]map[string]any)}
}

// Add deep-merges templates into the catalog for locale. templates may be a
// flat map (dotted keys as literal top-level map keys) or a nested map; Lookup
// finds a dotted key in either form, trying the literal top-level key first
// and then traversing nested maps segment by segment.
func (c *Catalog) Add(locale string, templates map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tree == nil {
		c.tree = make(map[string]map[string]any)
	}

	existing, ok := c.tree[locale]
	if !ok {
		existing = make(map[string]any)
		c.tree[locale] = existing
	}

	deepMerge(existing, templates)
}

// deepMerge merges src into dst in place. Maps are merged recursively;
// any other value in src overwrites the corresponding entry in dst.
func deepMerge(dst, src map[string]any) {
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]any)
		if !srcIsMap {
			dst[k] = v
			continue
		}

		dstMap, dstIsMap := dst[k].(map[string]any)
		if !dstIsMap {
			dstMap = make(map[string]any)
			dst[k] = dstMap
		}

		deepMerge(dstMap, srcMap)
	}
}

// Exists reports whether locale has a template stored at key.
func (c *Catalog) Exists(locale, key string) bool {
	_, ok := c.Lookup(locale, key)

	return ok
}

// Lookup traverses the nested template tree for locale using the
// dot-separated segments of key and returns the string found there, if any.
func (c *Catalog) Lookup(locale, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tree, ok := c.tree[locale]
	if !ok {
		return "", false
	}

	return lookupPath(tree, key)
}

func lookupPath(tree map[string]any, key string) (string, bool) {
	if s, ok := tree[key].(string); ok {
		return s, true
	}

	parts := strings.Split(key, ".")
	current := tree

	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return "", false
		}

		if i == len(parts)-1 {
			s, ok := val.(string)

			return s, ok
		}

		next, ok := val.(map[string]any)
		if !ok {
			return "", false
		}

		current = next
	}

	return "", false
}

// LookupWithPlural resolves key for locale under plural rules. It tries, in
// order: the exact quantity suffix "<key>_<N>" (an integer quantity, e.g.
// "plural-dog_3"), then the category suffix "<key>_<category>" (e.g.
// "plural-dog_few"), then the legacy "<key>_plural" suffix, then the bare
// key. An exact-quantity entry overrides its category for that one count -
// the same precedence ICU MessageFormat gives "=N" over a plural category -
// so a catalog can carve out one quantity's wording without redefining the
// whole category. quantity is nil when the node carried no "quantity" field.
func (c *Catalog) LookupWithPlural(locale, key, category string, quantity *float64) (string, bool) {
	if quantity != nil {
		if n := *quantity; n == math.Trunc(n) {
			if s, ok := c.Lookup(locale, key+"_"+strconv.FormatInt(int64(n), 10)); ok {
				return s, true
			}
		}
	}

	if category != "" {
		if s, ok := c.Lookup(locale, key+"_"+category); ok {
			return s, true
		}
	}

	if s, ok := c.Lookup(locale, key+"_plural"); ok {
		return s, true
	}

	return c.Lookup(locale, key)
}

// Locales returns the sorted list of locales that currently have at least
// one entry in the catalog.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.tree))
	for locale := range c.tree {
		out = append(out, locale)
	}

	sort.Strings(out)

	return out
}

// LoadPO parses a gettext .po file found at path within fsys and adds its
// msgid -> msgstr entries to the catalog under locale, keyed by msgid. This
// is a bulk-seeding path alongside Add, for deployments that already ship
// translations as gettext catalogues.
func (c *Catalog) LoadPO(locale string, fsys fs.FS, path string) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return err
	}

	po := gotext.NewPo()
	po.Parse(data)

	translations := po.GetTranslations()

	flat := make(map[string]any, len(translations))

	for msgid, tr := range translations {
		if tr == nil {
			continue
		}

		if trimmed := tr.Get(); trimmed != "" {
			flat[msgid] = trimmed
		}
	}

	c.Add(locale, flat)

	return nil
}
