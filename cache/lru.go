// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package cache is a thread-safe, fixed-capacity least-recently-used cache
from a loader key to a map[locale]template, with a per-entry TTL on top of
the teacher's lrucache eviction model. Writes are merge-semantic: setting
new locales for an existing key adds them alongside, rather than replacing,
any locales already cached. Values may optionally be stored zstd-compressed,
transparently decompressed on Get.
*/
package cache

import (
	"container/list"
	"errors"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

// ErrInvalidSize reports a non-positive cache size. New does not return it:
// it substitutes DefaultMaxEntries for a non-positive maxEntries instead.
var ErrInvalidSize = errors.New("cache: must provide a positive size")

// Defaults match spec.md §4.7.
const (
	DefaultMaxEntries = 500
	DefaultTTL        = time.Hour
)

// Cache is a fixed-capacity, TTL-bounded LRU cache of key -> map[locale]template.
// The zero value is not ready for use; construct with New.
type Cache struct {
	maxEntries int
	ttl        time.Duration

	mu        sync.Mutex
	evictList *list.List
	items     map[string]*list.Element

	compress bool
	enc      *zstd.Encoder
	dec      *zstd.Decoder
}

// entry is one cached key's templates, keyed by locale.
type entry struct {
	key       string
	templates map[string]storedTemplate
	expiresAt time.Time
}

// storedTemplate holds one locale's template, possibly zstd-compressed.
type storedTemplate struct {
	data       []byte
	compressed bool
}

// New constructs a Cache. maxEntries <= 0 uses DefaultMaxEntries; ttl <= 0
// uses DefaultTTL. When compress is true, templates are stored
// zstd-compressed whenever that reduces their size.
func New(maxEntries int, ttl time.Duration, compress bool) (*Cache, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c := &Cache{
		maxEntries: maxEntries,
		ttl:        ttl,
		evictList:  list.New(),
		items:      make(map[string]*list.Element),
		compress:   compress,
	}

	if compress {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}

		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, err
		}

		c.enc = enc
		c.dec = dec
	}

	return c, nil
}

// Get returns the cached templates for key, filtered to locales if any are
// given (an empty locales list returns every cached locale for key). The
// second result is false if key is absent, expired, or every cached locale
// was filtered out.
func (c *Cache) Get(key string, locales ...string) (map[string]string, bool) {
	c.mu.Lock()

	el, ok := c.items[key]
	if !ok {
		c.mu.Unlock()

		return nil, false
	}

	ent, _ := el.Value.(*entry)
	if time.Now().After(ent.expiresAt) {
		c.removeElement(el)
		c.mu.Unlock()

		return nil, false
	}

	c.evictList.MoveToFront(el)

	wanted := make(map[string]bool, len(locales))
	for _, l := range locales {
		wanted[l] = true
	}

	out := make(map[string]string, len(ent.templates))

	for locale, st := range ent.templates {
		if len(wanted) > 0 && !wanted[locale] {
			continue
		}

		out[locale] = c.decode(st)
	}

	c.mu.Unlock()

	if len(out) == 0 {
		return nil, false
	}

	return out, true
}

// Set merges templates into the entry for key, adding new locales and
// overwriting existing ones, refreshing the entry's TTL and recency. If the
// cache is at capacity after inserting a brand-new key, the least recently
// used entry is evicted.
func (c *Cache) Set(key string, templates map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		ent, _ := el.Value.(*entry)
		for locale, tmpl := range templates {
			ent.templates[locale] = c.encode(tmpl)
		}

		ent.expiresAt = time.Now().Add(c.ttl)
		c.evictList.MoveToFront(el)

		return
	}

	ent := &entry{
		key:       key,
		templates: make(map[string]storedTemplate, len(templates)),
		expiresAt: time.Now().Add(c.ttl),
	}

	for locale, tmpl := range templates {
		ent.templates[locale] = c.encode(tmpl)
	}

	c.items[key] = c.evictList.PushFront(ent)

	if c.evictList.Len() > c.maxEntries {
		c.removeOldest()
	}
}

// Len returns the current number of cached keys, including any not yet
// expired but due for lazy eviction on their next Get.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.evictList.Len()
}

func (c *Cache) removeOldest() {
	if el := c.evictList.Back(); el != nil {
		c.removeElement(el)
	}
}

func (c *Cache) removeElement(el *list.Element) {
	c.evictList.Remove(el)

	if ent, ok := el.Value.(*entry); ok {
		delete(c.items, ent.key)
	}
}

// encode optionally zstd-compresses tmpl, keeping the compressed form only
// when it is actually smaller.
func (c *Cache) encode(tmpl string) storedTemplate {
	if !c.compress || len(tmpl) == 0 {
		return storedTemplate{data: []byte(tmpl)}
	}

	compressed := c.enc.EncodeAll([]byte(tmpl), nil)
	if len(compressed) < len(tmpl) {
		return storedTemplate{data: compressed, compressed: true}
	}

	return storedTemplate{data: []byte(tmpl)}
}

// decode reverses encode. A decompression failure (which should be
// extremely rare) yields an empty string rather than a panic.
func (c *Cache) decode(st storedTemplate) string {
	if !st.compressed {
		return string(st.data)
	}

	decoded, err := c.dec.DecodeAll(st.data, nil)
	if err != nil {
		return ""
	}

	return string(decoded)
}
