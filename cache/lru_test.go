// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	c, err := New(0, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestSetAndGet(t *testing.T) {
	t.Parallel()

	c, err := New(10, time.Hour, false)
	require.NoError(t, err)

	c.Set("greeting", map[string]string{"en": "Hello"})

	got, ok := c.Get("greeting")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"en": "Hello"}, got)
}

func TestGetMissingKey(t *testing.T) {
	t.Parallel()

	c, err := New(10, time.Hour, false)
	require.NoError(t, err)

	_, ok := c.Get("nope")
	assert.False(t, ok)
}

func TestSetMergesLocales(t *testing.T) {
	t.Parallel()

	c, err := New(10, time.Hour, false)
	require.NoError(t, err)

	c.Set("greeting", map[string]string{"en": "Hello"})
	c.Set("greeting", map[string]string{"fr": "Bonjour"})

	got, ok := c.Get("greeting")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"en": "Hello", "fr": "Bonjour"}, got)
}

func TestGetFiltersLocales(t *testing.T) {
	t.Parallel()

	c, err := New(10, time.Hour, false)
	require.NoError(t, err)

	c.Set("greeting", map[string]string{"en": "Hello", "fr": "Bonjour"})

	got, ok := c.Get("greeting", "fr")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"fr": "Bonjour"}, got)
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c, err := New(2, time.Hour, false)
	require.NoError(t, err)

	c.Set("a", map[string]string{"en": "A"})
	c.Set("b", map[string]string{"en": "B"})

	// Touch "a" so "b" becomes the least recently used.
	_, _ = c.Get("a")

	c.Set("c", map[string]string{"en": "C"})

	_, ok := c.Get("b")
	assert.False(t, ok, "b should have been evicted")

	_, ok = c.Get("a")
	assert.True(t, ok)

	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestEntryExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	c, err := New(10, time.Millisecond, false)
	require.NoError(t, err)

	c.Set("greeting", map[string]string{"en": "Hello"})
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get("greeting")
	assert.False(t, ok)
}

func TestCompressionRoundTrips(t *testing.T) {
	t.Parallel()

	c, err := New(10, time.Hour, true)
	require.NoError(t, err)

	long := ""
	for range 200 {
		long += "hello world "
	}

	c.Set("k", map[string]string{"en": long})

	got, ok := c.Get("k", "en")
	require.True(t, ok)
	assert.Equal(t, long, got["en"])
}
