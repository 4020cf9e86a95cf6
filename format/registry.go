// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package format renders typed placeholder values under a target locale and
optional timezone: date, time, datetime, duration, and currency. Formatters
are registered by name in a Registry; an unknown name is the caller's
responsibility to treat as a no-op (spec.md §4.5).
*/
package format

import "time"

// Context carries the locale and optional timezone a Formatter renders
// under. Timezone is the engine-level zone, nil when the engine has none. A
// timezone in the placeholder payload overrides it; with neither, date-like
// formatters use the value's own zone.
type Context struct {
	Locale   string
	Timezone *time.Location
}

// Formatter renders value as text under ctx. An error corresponds to
// spec.md §7's "Formatter failure" case (e.g. currency with no code); the
// caller (package engine) is responsible for turning that into the
// structured error-node marker.
type Formatter func(ctx Context, value any) (string, error)

// Registry is a named set of Formatters.
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry returns a Registry pre-populated with the standard
// date/time/datetime/duration/currency formatters.
func NewRegistry() *Registry {
	r := &Registry{formatters: make(map[string]Formatter, 8)}

	r.Register("date", FormatDate)
	r.Register("time", FormatTime)
	r.Register("datetime", FormatDatetime)
	r.Register("duration", FormatDuration)
	r.Register("currency", FormatCurrency)

	return r
}

// Register installs fn under name, replacing any existing formatter.
func (r *Registry) Register(name string, fn Formatter) {
	r.formatters[name] = fn
}

// Lookup returns the formatter registered under name, if any.
func (r *Registry) Lookup(name string) (Formatter, bool) {
	fn, ok := r.formatters[name]

	return fn, ok
}
