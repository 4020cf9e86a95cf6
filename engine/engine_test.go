// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightlocale/i18ntree"
)

func TestTranslateSimpleLookup(t *testing.T) {
	t.Parallel()

	eng, err := Init(Config{Locale: "en"})
	require.NoError(t, err)

	eng.AddTranslations("en", map[string]any{"howdy": "Howdy"})

	out, err := eng.Translate(context.Background(), i18ntree.BuildTranslateNode("howdy", nil, nil), "en", nil)
	require.NoError(t, err)
	assert.Equal(t, "Howdy", out)
}

func TestTranslatePlaceholderAndFallback(t *testing.T) {
	t.Parallel()

	eng, err := Init(Config{Locale: "en"})
	require.NoError(t, err)

	node := i18ntree.BuildTranslateNode("good-bye-john",
		map[string]any{"john": "John"},
		&i18ntree.BuildTranslateNodeOptions{Fallback: "Good bye {{john}}"},
	)

	out, err := eng.Translate(context.Background(), node, "en", nil)
	require.NoError(t, err)
	assert.Equal(t, "Good bye John", out)
}

func TestTranslatePluralArabicFew(t *testing.T) {
	t.Parallel()

	eng, err := Init(Config{Locale: "ar"})
	require.NoError(t, err)

	// Spec scenario 3's literal catalog seed: an exact-quantity suffix, not
	// the "few" category suffix - ar.plural-dog_3 must still resolve for
	// quantity 3, since Resolve("ar", 3) also lands on category "few".
	eng.AddTranslations("ar", map[string]any{"plural-dog_3": "few dogs"})

	quantity := 3.0
	node := i18ntree.BuildTranslateNode("plural-dog", nil, &i18ntree.BuildTranslateNodeOptions{Quantity: &quantity})

	out, err := eng.Translate(context.Background(), node, "ar", nil)
	require.NoError(t, err)
	assert.Equal(t, "few dogs", out)
}

func TestTranslateMissingKeyNoFallbackReturnsRawKey(t *testing.T) {
	t.Parallel()

	eng, err := Init(Config{Locale: "en"})
	require.NoError(t, err)

	node := i18ntree.BuildTranslateNode("hello-john", map[string]any{"john": "John"}, nil)

	out, err := eng.Translate(context.Background(), node, "en", nil)
	require.NoError(t, err)
	assert.Equal(t, "hello-john", out)
}

func TestTranslateDurationWithUnits(t *testing.T) {
	t.Parallel()

	eng, err := Init(Config{Locale: "en"})
	require.NoError(t, err)

	node := i18ntree.BuildTranslateNode("x",
		map[string]any{"d": map[string]any{"value": float64(7205000), "units": []any{"minutes", "seconds"}}},
		&i18ntree.BuildTranslateNodeOptions{Fallback: "Dans {{d, duration}}"},
	)

	out, err := eng.Translate(context.Background(), node, "fr-FR", nil)
	require.NoError(t, err)
	assert.Equal(t, "Dans 120 minutes, 5 secondes", out)
}

func TestTranslateCurrencyWithoutCodeProducesErrorNode(t *testing.T) {
	t.Parallel()

	eng, err := Init(Config{Locale: "en"})
	require.NoError(t, err)

	node := i18ntree.BuildTranslateNode("p",
		map[string]any{"a": map[string]any{"value": 12.34}},
		&i18ntree.BuildTranslateNodeOptions{Fallback: "{{a, currency}}"},
	)

	out, err := eng.Translate(context.Background(), node, "en", nil)
	require.NoError(t, err)

	wire, ok := out.(map[string]any)
	require.True(t, ok, "formatter failure must produce a mapping, not a string")
	assert.Contains(t, wire, i18ntree.TranslateKey)

	errMsg, ok := wire["error"].(string)
	require.True(t, ok)
	assert.Contains(t, errMsg, "Currency code is required")
}

func TestTranslateRegionFallsBackToBaseLanguage(t *testing.T) {
	t.Parallel()

	eng, err := Init(Config{Locale: "en"})
	require.NoError(t, err)

	eng.AddTranslations("en", map[string]any{"howdy": "Howdy"})

	out, err := eng.Translate(context.Background(), i18ntree.BuildTranslateNode("howdy", nil, nil), "en-GB", nil)
	require.NoError(t, err)
	assert.Equal(t, "Howdy", out)
}

func TestCloneLocaleIndependentFromShared(t *testing.T) {
	t.Parallel()

	eng, err := Init(Config{Locale: "en"})
	require.NoError(t, err)

	clone := eng.Clone()
	clone.SetLocale("fr")

	assert.Equal(t, "en", eng.locale)
	assert.Equal(t, "fr", clone.locale)
}

func TestLanguagesReflectsCatalog(t *testing.T) {
	t.Parallel()

	eng, err := Init(Config{Locale: "en"})
	require.NoError(t, err)

	eng.AddTranslations("en", map[string]any{"howdy": "Howdy"})
	eng.AddTranslations("fr", map[string]any{"howdy": "Bonjour"})

	assert.Equal(t, []string{"en", "fr"}, eng.Languages())
}

func TestInitFromYAMLDecodesConfig(t *testing.T) {
	t.Parallel()

	raw := []byte(`
locale: fr
defaultLocale: en
translations:
  fr:
    howdy: Bonjour
`)

	eng, err := InitFromYAML(raw)
	require.NoError(t, err)
	assert.Equal(t, "fr", eng.locale)
	assert.Equal(t, "en", eng.defaultLocale)

	out, err := eng.Translate(context.Background(), i18ntree.BuildTranslateNode("howdy", nil, nil), "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", out)
}

func TestParseConfigRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := ParseConfig([]byte("locale: [unterminated"))
	assert.Error(t, err)
}
