// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18ntree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkScalarPassesThrough(t *testing.T) {
	t.Parallel()

	for _, v := range []any{nil, 42, "plain string", true, 3.14} {
		wr := Walk(v)
		assert.Equal(t, v, wr.Skeleton)
		assert.Empty(t, wr.Pending)
		assert.Empty(t, wr.Keys)
	}
}

func TestWalkCollectsNestedNode(t *testing.T) {
	t.Parallel()

	v := map[string]any{
		"nested": map[string]any{
			"object": map[string]any{
				"@translate": map[string]any{"key": "howdy"},
			},
		},
	}

	wr := Walk(v)

	require.Len(t, wr.Pending, 1)
	assert.Equal(t, []string{"howdy"}, wr.Keys)
	assert.Equal(t, "howdy", wr.Pending[0].Node.Key)

	wr.Pending[0].Set("Howdy")

	expected := map[string]any{"nested": map[string]any{"object": "Howdy"}}
	assert.Equal(t, expected, wr.Skeleton)
}

func TestWalkCollectsNodeInsideSequence(t *testing.T) {
	t.Parallel()

	v := []any{
		"plain",
		map[string]any{"@translate": map[string]any{"key": "howdy"}},
	}

	wr := Walk(v)

	require.Len(t, wr.Pending, 1)
	wr.Pending[0].Set("Howdy")

	assert.Equal(t, []any{"plain", "Howdy"}, wr.Skeleton)
}

func TestWalkTopLevelNode(t *testing.T) {
	t.Parallel()

	v := map[string]any{"@translate": map[string]any{"key": "howdy"}}

	wr := Walk(v)

	require.Len(t, wr.Pending, 1)
	assert.Equal(t, v, wr.Skeleton, "unresolved skeleton must be deep-equal to the input")

	wr.Pending[0].Set("Howdy")
	assert.Equal(t, "Howdy", wr.Skeleton)
}

func TestWalkLeavesInvalidNodeUnchanged(t *testing.T) {
	t.Parallel()

	v := map[string]any{
		"@translate": map[string]any{"key": "howdy"},
		"extra":      "renders it invalid",
	}

	wr := Walk(v)

	assert.Empty(t, wr.Pending)
	assert.Empty(t, wr.Keys)
	assert.Equal(t, v, wr.Skeleton)
}

type canonicalDate struct {
	iso string
}

func (c canonicalDate) ToCanonical() any {
	return c.iso
}

func TestWalkUsesCanonicalizable(t *testing.T) {
	t.Parallel()

	v := map[string]any{"when": canonicalDate{iso: "2016-02-03"}}

	wr := Walk(v)

	assert.Equal(t, map[string]any{"when": "2016-02-03"}, wr.Skeleton)
}

func TestWalkDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	v := map[string]any{
		"greeting": map[string]any{"@translate": map[string]any{"key": "howdy"}},
	}

	wr := Walk(v)
	wr.Pending[0].Set("Howdy")

	assert.Equal(t, "howdy", v["greeting"].(map[string]any)["@translate"].(map[string]any)["key"])
}

func TestWalkDoesNotRecurseIntoResolvedOutput(t *testing.T) {
	t.Parallel()

	// A formatter/engine could in principle resolve a node to a value that
	// itself looks like a translation node; Walk must never see it, since
	// resolution happens strictly after the walk completes.
	v := map[string]any{"@translate": map[string]any{"key": "howdy"}}

	wr := Walk(v)
	wr.Pending[0].Set(map[string]any{"@translate": map[string]any{"key": "should-not-be-walked"}})

	assert.Equal(t, "should-not-be-walked", wr.Skeleton.(map[string]any)["@translate"].(map[string]any)["key"])
}
