// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package loader is the two-tier bridge between an engine's catalog and a
remote key/value template store: a cache-first read, a single batched fetch
for whatever the cache missed, write-through on fetch, and graceful
degradation (a warning, never a user-visible error) when the remote is slow,
absent, or failing.
*/
package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/brightlocale/i18ntree/cache"
	"github.com/brightlocale/i18ntree/catalog"
)

// HashFieldsGetter is the opaque remote capability the loader consults:
// a per-key hash of locale -> template, read by field (locale). A nil
// entry in the returned slice means that field had no value; the slice is
// ordered identically to the requested fields.
type HashFieldsGetter interface {
	HashFieldsGet(ctx context.Context, key string, fields ...string) ([]*string, error)
}

// Disconnecter is implemented by a HashFieldsGetter that owns a connection
// lifecycle Disconnect should tear down. Remotes that manage their own
// lifecycle elsewhere simply don't implement it.
type Disconnecter interface {
	Disconnect() error
}

// Config constructs a Loader. Remote may be nil, in which case Load always
// resolves from cache alone. Cache, if nil, is constructed from MaxEntries/
// TTL/Compress. RateLimit <= 0 means unlimited remote calls.
type Config struct {
	Remote     HashFieldsGetter
	Cache      *cache.Cache
	MaxEntries int
	TTL        time.Duration
	Compress   bool
	Logger     zerolog.Logger
	RateLimit  rate.Limit
	Burst      int
}

// YAMLConfig is the YAML-decodable subset of Config: the data fields a
// config file can actually describe. Remote (a live remote client), Cache
// (a live cache instance), and Logger aren't things a config document can
// express, so InitFromYAML takes those in directly alongside the decoded
// bytes rather than pretending they come from YAML too.
type YAMLConfig struct {
	MaxEntries int           `yaml:"maxEntries"`
	TTL        time.Duration `yaml:"ttl"`
	Compress   bool          `yaml:"compress"`
	RateLimit  float64       `yaml:"rateLimit"`
	Burst      int           `yaml:"burst"`
}

// InitFromYAML decodes raw as a YAMLConfig and constructs a Loader, wiring
// remote and logger in directly.
func InitFromYAML(raw []byte, remote HashFieldsGetter, logger zerolog.Logger) (*Loader, error) {
	var y YAMLConfig

	if err := yaml.Unmarshal(raw, &y); err != nil {
		return nil, fmt.Errorf("loader: decode config: %w", err)
	}

	return Init(Config{
		Remote:     remote,
		MaxEntries: y.MaxEntries,
		TTL:        y.TTL,
		Compress:   y.Compress,
		Logger:     logger,
		RateLimit:  rate.Limit(y.RateLimit),
		Burst:      y.Burst,
	})
}

// Loader is the concrete, cache-fronted implementation of engine.Loader.
type Loader struct {
	remote  HashFieldsGetter
	cache   *cache.Cache
	logger  zerolog.Logger
	limiter *rate.Limiter
}

// Init constructs a ready-to-use Loader.
func Init(cfg Config) (*Loader, error) {
	c := cfg.Cache
	if c == nil {
		var err error

		c, err = cache.New(cfg.MaxEntries, cfg.TTL, cfg.Compress)
		if err != nil {
			return nil, err
		}
	}

	l := &Loader{remote: cfg.Remote, cache: c, logger: cfg.Logger}

	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}

		l.limiter = rate.NewLimiter(cfg.RateLimit, burst)
	}

	return l, nil
}

// Disconnect tears down the remote's connection lifecycle, if it exposes
// one. It is a no-op for a nil or non-Disconnecter remote.
func (l *Loader) Disconnect() error {
	if d, ok := l.remote.(Disconnecter); ok {
		return d.Disconnect()
	}

	return nil
}

// Load resolves keys across locales: a cache-first read, a single batched
// fetch (fanned out, one remote call per key still missing from cache) for
// whatever the cache missed, write-through of fresh hits, and a merge of
// everything assembled into cat. Remote and rate-limiter failures are
// logged as warnings and otherwise swallowed, including a cancelled or
// expired ctx: Load always returns nil, since a degraded catalog is never a
// caller-visible error (spec.md §7).
func (l *Loader) Load(ctx context.Context, cat *catalog.Catalog, locales []string, keys []string) error {
	assembled := make(map[string]map[string]string)

	var unknown []string

	for _, key := range keys {
		hits, ok := l.cache.Get(key, locales...)
		if !ok {
			unknown = append(unknown, key)

			continue
		}

		for locale, tmpl := range hits {
			assembleInto(assembled, locale, key, tmpl)
		}
	}

	writeCatalog := func() {
		for locale, keyMap := range assembled {
			templates := make(map[string]any, len(keyMap))
			for k, v := range keyMap {
				templates[k] = v
			}

			cat.Add(locale, templates)
		}
	}

	if l.remote == nil || len(unknown) == 0 {
		writeCatalog()

		return nil
	}

	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			l.logger.Warn().Err(err).Msg("loader: rate limiter wait failed, proceeding with cache-only result")
			writeCatalog()

			return nil
		}
	}

	results := make([][]*string, len(unknown))

	g, gctx := errgroup.WithContext(ctx)

	for i, key := range unknown {
		i, key := i, key

		g.Go(func() error {
			fields, err := l.remote.HashFieldsGet(gctx, key, locales...)
			if err != nil {
				return err
			}

			results[i] = fields

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		l.logger.Warn().Err(err).Msg("loader: remote fetch failed, proceeding with cache-only result")
		writeCatalog()

		return nil
	}

	for i, key := range unknown {
		fields := results[i]
		hits := make(map[string]string, len(locales))

		for j, locale := range locales {
			if j >= len(fields) || fields[j] == nil || *fields[j] == "" {
				continue
			}

			tmpl := *fields[j]
			hits[locale] = tmpl
			assembleInto(assembled, locale, key, tmpl)
		}

		if len(hits) > 0 {
			l.cache.Set(key, hits)
		}
	}

	writeCatalog()

	return nil
}

func assembleInto(assembled map[string]map[string]string, locale, key, tmpl string) {
	keyMap, ok := assembled[locale]
	if !ok {
		keyMap = make(map[string]string)
		assembled[locale] = keyMap
	}

	keyMap[key] = tmpl
}
