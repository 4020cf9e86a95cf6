// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDurationRestrictedUnitsFrench(t *testing.T) {
	t.Parallel()

	value := map[string]any{
		"value": float64(7205000),
		"units": []any{"minutes", "seconds"},
	}

	out, err := FormatDuration(Context{Locale: "fr-FR"}, value)
	require.NoError(t, err)
	assert.Equal(t, "120 minutes, 5 secondes", out)
}

func TestFormatDurationIgnoresRegionSuffix(t *testing.T) {
	t.Parallel()

	value := map[string]any{"value": float64(90000), "units": []any{"minute", "second"}}

	us, err := FormatDuration(Context{Locale: "en-US"}, value)
	require.NoError(t, err)

	gb, err := FormatDuration(Context{Locale: "en-GB"}, value)
	require.NoError(t, err)

	assert.Equal(t, us, gb)
	assert.Equal(t, "1 minute, 30 seconds", us)
}

func TestFormatDurationPrecisionCapsToLargestUnit(t *testing.T) {
	t.Parallel()

	value := map[string]any{
		"value":     float64(3661000),
		"units":     []any{"hour", "minute", "second"},
		"precision": float64(1),
	}

	out, err := FormatDuration(Context{Locale: "en"}, value)
	require.NoError(t, err)
	assert.Equal(t, "1 hour", out)
}

func TestFormatDurationRoundedSingleUnit(t *testing.T) {
	t.Parallel()

	value := map[string]any{
		"value": float64(1500),
		"units": []any{"second"},
		"round": true,
	}

	out, err := FormatDuration(Context{Locale: "en"}, value)
	require.NoError(t, err)
	assert.Equal(t, "2 seconds", out)
}

func TestFormatDurationUnroundedUsesLocaleDecimalSeparator(t *testing.T) {
	t.Parallel()

	value := map[string]any{
		"value": float64(1500),
		"units": []any{"second"},
	}

	en, err := FormatDuration(Context{Locale: "en"}, value)
	require.NoError(t, err)
	assert.Equal(t, "1.5 seconds", en)

	fr, err := FormatDuration(Context{Locale: "fr"}, value)
	require.NoError(t, err)
	assert.Equal(t, "1,5 seconde", fr, "the hand-rolled French rule treats n<2 as singular, fractions included")
}

func TestFormatDurationMissingValueErrors(t *testing.T) {
	t.Parallel()

	_, err := FormatDuration(Context{Locale: "en"}, map[string]any{"units": []any{"second"}})
	assert.Error(t, err)
}
