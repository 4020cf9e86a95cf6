// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndLookup(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add("en", map[string]any{"howdy": "Howdy"})

	got, ok := c.Lookup("en", "howdy")
	require.True(t, ok)
	assert.Equal(t, "Howdy", got)

	_, ok = c.Lookup("fr", "howdy")
	assert.False(t, ok)
}

func TestAddDeepMerge(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add("en", map[string]any{
		"nested": map[string]any{"a": "A"},
	})
	c.Add("en", map[string]any{
		"nested": map[string]any{"b": "B"},
	})

	a, ok := c.Lookup("en", "nested.a")
	require.True(t, ok)
	assert.Equal(t, "A", a)

	b, ok := c.Lookup("en", "nested.b")
	require.True(t, ok)
	assert.Equal(t, "B", b)
}

func TestDottedKeyFlatAndNested(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add("en", map[string]any{"hello": map[string]any{"world": "Hello World"}})
	c.Add("fr", map[string]any{"hello.world": "Bonjour le monde"})

	got, ok := c.Lookup("en", "hello.world")
	require.True(t, ok)
	assert.Equal(t, "Hello World", got)

	got, ok = c.Lookup("fr", "hello.world")
	require.True(t, ok)
	assert.Equal(t, "Bonjour le monde", got)
}

func TestExists(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add("en", map[string]any{"a": "A"})

	assert.True(t, c.Exists("en", "a"))
	assert.False(t, c.Exists("en", "b"))
}

func TestLookupWithPluralExactQuantityThenLegacyThenBare(t *testing.T) {
	t.Parallel()

	three := 3.0

	c := New()
	c.Add("ar", map[string]any{"plural-dog_3": "few dogs"})

	got, ok := c.LookupWithPlural("ar", "plural-dog", "few", &three)
	require.True(t, ok)
	assert.Equal(t, "few dogs", got, "spec.md's scenario 3: ar.plural-dog_3 must resolve for quantity 3 / category few")

	c2 := New()
	c2.Add("en", map[string]any{"items_plural": "items"})

	got2, ok := c2.LookupWithPlural("en", "items", "other", nil)
	require.True(t, ok)
	assert.Equal(t, "items", got2)

	c3 := New()
	c3.Add("en", map[string]any{"items": "item(s)"})

	got3, ok := c3.LookupWithPlural("en", "items", "other", nil)
	require.True(t, ok)
	assert.Equal(t, "item(s)", got3)
}

func TestLookupWithPluralExactQuantityOverridesCategory(t *testing.T) {
	t.Parallel()

	three := 3.0

	c := New()
	c.Add("ar", map[string]any{
		"plural-dog_3":   "three dogs exactly",
		"plural-dog_few": "a few dogs",
	})

	got, ok := c.LookupWithPlural("ar", "plural-dog", "few", &three)
	require.True(t, ok)
	assert.Equal(t, "three dogs exactly", got, "an exact-quantity entry must win over its own category")
}

func TestLookupWithPluralFractionalQuantitySkipsExactSuffix(t *testing.T) {
	t.Parallel()

	half := 1.5

	c := New()
	c.Add("en", map[string]any{"items_other": "items"})

	got, ok := c.LookupWithPlural("en", "items", "other", &half)
	require.True(t, ok)
	assert.Equal(t, "items", got, "a non-integer quantity has no exact suffix to try, falls through to category")
}

func TestLocalesSorted(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add("fr", map[string]any{"a": "A"})
	c.Add("en", map[string]any{"a": "A"})

	assert.Equal(t, []string{"en", "fr"}, c.Locales())
}
