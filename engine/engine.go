// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package engine orchestrates catalog lookup, locale fallback, plural
selection, and placeholder interpolation for a single translation node, and
wires package i18ntree's tree walker and package loader's batched fetch into
a request-level Translate call.
*/
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/brightlocale/i18ntree"
	"github.com/brightlocale/i18ntree/catalog"
	"github.com/brightlocale/i18ntree/format"
	"github.com/brightlocale/i18ntree/interpolate"
	"github.com/brightlocale/i18ntree/localetag"
	"github.com/brightlocale/i18ntree/pluralcat"
)

// Loader is the capability an Engine needs from a batched remote loader:
// absorb a catalog load for keys across locales, writing hits directly into
// cat. See package loader for the concrete, cache-fronted implementation.
type Loader interface {
	Load(ctx context.Context, cat *catalog.Catalog, locales []string, keys []string) error
}

// Engine holds the shared, long-lived translation state: the catalog,
// formatter registry, and optional loader are shared across every clone;
// locale, timezone, and logger are independently mutable per clone.
type Engine struct {
	locale        string
	defaultLocale string
	timezone      *time.Location
	logger        zerolog.Logger

	catalog     *catalog.Catalog
	formatters  *format.Registry
	loader      Loader
	missingOnce *sync.Map
}

// Init constructs a ready-to-use Engine. An empty Config.Locale/DefaultLocale
// default to "en".
func Init(cfg Config) (*Engine, error) {
	locale := cfg.Locale
	if locale == "" {
		locale = "en"
	}

	defaultLocale := cfg.DefaultLocale
	if defaultLocale == "" {
		defaultLocale = "en"
	}

	e := &Engine{
		locale:        locale,
		defaultLocale: defaultLocale,
		catalog:       catalog.New(),
		formatters:    format.NewRegistry(),
		logger:        log.With().Str("component", "i18ntree").Logger(),
		missingOnce:   &sync.Map{},
	}

	for locale, templates := range cfg.Translations {
		e.catalog.Add(locale, templates)
	}

	return e, nil
}

// AddTranslations deep-merges templates into the catalog for locale and
// returns e, for chaining.
func (e *Engine) AddTranslations(locale string, templates map[string]any) *Engine {
	e.catalog.Add(locale, templates)

	return e
}

// SetLogger replaces the engine's logger.
func (e *Engine) SetLogger(logger zerolog.Logger) {
	e.logger = logger
}

// SetLocale replaces the engine's default request locale.
func (e *Engine) SetLocale(locale string) {
	e.locale = locale
}

// SetTimezone replaces the engine's default timezone. tz may be nil.
func (e *Engine) SetTimezone(tz *time.Location) {
	e.timezone = tz
}

// SetLoader installs the batched remote loader consulted by Translate. A nil
// loader (the default) means Translate resolves only against whatever the
// catalog already holds.
func (e *Engine) SetLoader(l Loader) {
	e.loader = l
}

// Languages returns the sorted list of locales that currently have at least
// one entry in the catalog.
func (e *Engine) Languages() []string {
	return e.catalog.Locales()
}

// Clone returns a new Engine sharing this one's catalog, formatter registry,
// loader, and missing-key dedup set, but with an independently mutable
// locale, timezone, and logger. Translate clones the engine on every call so
// concurrent requests never race on locale/timezone.
func (e *Engine) Clone() *Engine {
	clone := *e

	return &clone
}

// Locales returns the consulted locale list for a lookup: the request
// locale, its base language (if region-qualified), then the default locale,
// deduplicated, request locale first. This is the engine's resolution to
// spec.md's documented open question on region-qualified catalog fallback:
// a catalog stored only under "en-GB" is never consulted for a request
// locale of "en-US" - only the shared "en" base and the configured default
// are used as fallbacks.
func (e *Engine) Locales() []string {
	out := make([]string, 0, 3)
	seen := make(map[string]bool, 3)

	add := func(l string) {
		if l == "" || seen[l] {
			return
		}

		seen[l] = true
		out = append(out, l)
	}

	add(e.locale)
	add(localetag.Base(e.locale))
	add(e.defaultLocale)

	return out
}

// Translate clones e, binds it to locale and timezone, and runs
// i18ntree.Translate against value. locale is optional; an empty string
// keeps the clone's current default locale. timezone always replaces the
// clone's timezone, so a nil timezone discards one set with SetTimezone.
func (e *Engine) Translate(ctx context.Context, value any, locale string, timezone *time.Location) (any, error) {
	clone := e.Clone()

	if locale != "" {
		clone.locale = locale
	}

	clone.timezone = timezone

	var loadKeys i18ntree.KeyLoader
	if e.loader != nil {
		loadKeys = i18ntree.KeyLoaderFunc(func(ctx context.Context, locales, keys []string) error {
			return e.loader.Load(ctx, e.catalog, locales, keys)
		})
	}

	return i18ntree.Translate(ctx, clone, loadKeys, value)
}

// ResolveNode implements i18ntree.Resolver: it resolves a single parsed
// translation node to its final value, per spec.md §4.6.
func (e *Engine) ResolveNode(node i18ntree.Node) any {
	placeholders := make(map[string]any, len(node.Placeholders)+1)

	for k, v := range node.Placeholders {
		placeholders[k] = v
	}

	var category pluralcat.Category

	if node.HasQuantity {
		placeholders["count"] = *node.Quantity
		category = pluralcat.Resolve(e.locale, *node.Quantity)
	}

	template, found := e.lookupTemplate(node.Key, string(category), node.Quantity)

	if !found {
		if node.HasFallback {
			template = node.Fallback
		} else {
			e.logMissing(node.Key)

			return node.Key
		}
	}

	rendered, err := e.render(template, placeholders)
	if err != nil {
		e.logger.Error().Err(err).Str("key", node.Key).Msg("formatter failed while resolving translation node")

		return withError(node, err)
	}

	return rendered
}

// lookupTemplate tries LookupWithPlural across the consulted locale list,
// first hit wins.
func (e *Engine) lookupTemplate(key, category string, quantity *float64) (string, bool) {
	for _, locale := range e.Locales() {
		if s, ok := e.catalog.LookupWithPlural(locale, key, category, quantity); ok {
			return s, true
		}
	}

	return "", false
}

// render interpolates tmpl against placeholders, dispatching "{{name,
// format}}" markers to the formatter registry and "$t(key)" references back
// through ResolveNode. A formatter failure aborts the whole render: the
// first error encountered is returned rather than embedding a partial
// result, since spec.md §4.6 replaces the entire resolution with an error
// marker on formatter failure.
func (e *Engine) render(tmpl string, placeholders map[string]any) (string, error) {
	var formatErr error

	formatFn := func(name string, value any) (string, bool) {
		fn, ok := e.formatters.Lookup(name)
		if !ok {
			return "", false
		}

		out, err := fn(format.Context{Locale: e.locale, Timezone: e.timezone}, value)
		if err != nil {
			formatErr = err

			return "", false
		}

		return out, true
	}

	refFn := func(key string) (string, bool) {
		resolved := e.ResolveNode(i18ntree.Node{Key: key})

		s, ok := resolved.(string)

		return s, ok
	}

	rendered := interpolate.Run(tmpl, placeholders, formatFn, refFn)
	if formatErr != nil {
		return "", formatErr
	}

	return rendered, nil
}

// logMissing warns once per (locale, key) pair that a key had no catalog
// entry and no fallback.
func (e *Engine) logMissing(key string) {
	id := e.locale + "\x00" + key

	if _, loaded := e.missingOnce.LoadOrStore(id, struct{}{}); !loaded {
		e.logger.Warn().Str("locale", e.locale).Str("key", key).Msg("missing translation key")
	}
}

// withError rebuilds the wire form of node, augmented with an "error"
// property carrying err's message, per spec.md §7's formatter-failure
// surface.
func withError(node i18ntree.Node, err error) map[string]any {
	opts := &i18ntree.BuildTranslateNodeOptions{}
	if node.HasFallback {
		opts.Fallback = node.Fallback
	}

	if node.HasQuantity {
		opts.Quantity = node.Quantity
	}

	wire := i18ntree.BuildTranslateNode(node.Key, node.Placeholders, opts)
	wire["error"] = err.Error()

	return wire
}
