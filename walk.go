// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18ntree

import "sync"

// Pending is one recognized translation node discovered during Walk,
// awaiting resolution once the caller has had a chance to batch-load any
// catalog entries the walk's collected keys might need.
type Pending struct {
	Node Node
	// Set splices a resolved value into the exact position the node
	// occupied in the Skeleton. Safe to call from any goroutine; each
	// Pending owns a disjoint position (a distinct map key, slice index, or
	// the top-level result itself).
	Set func(value any)
}

// WalkResult is the output of Walk: a skeleton of the input with
// translation nodes left as their original, unresolved map value; the
// pending resolutions keyed to their position in that skeleton; and the
// flat list of collected keys, in walk order, for a caller to hand to a
// batched loader before calling Set on each Pending.
type WalkResult struct {
	Skeleton any
	Pending  []Pending
	Keys     []string
}

// Walk deep-clones v, recognizing "@translate" nodes per IsTranslationNode.
// It never mutates v. A recognized node is left in the skeleton as-is (so a
// caller that resolves nothing gets back something deep-equal to the
// input) and recorded as a Pending entry. Walk does not recurse into a
// node once it is recognized as a translation node; it is terminal until
// its Pending.Set is called.
//
// An opaque value exposing Canonicalizable is replaced by its canonical
// form and walked again. A plain map or ordered sequence is shallow-copied
// and each element walked. Anything else - scalars, nil, opaque leaves
// without a canonical form - passes through unchanged.
func Walk(v any) *WalkResult {
	w := &walker{}
	res := &WalkResult{}

	w.walkInto(v, func(resolved any) { res.Skeleton = resolved })

	res.Pending = w.pending
	res.Keys = w.keys

	return res
}

type walker struct {
	// mu serializes Pending.Set calls, which may write into the same map.
	mu      sync.Mutex
	pending []Pending
	keys    []string
}

// walkInto walks v, invoking set exactly once with the value that belongs
// at v's position in the skeleton - either immediately (for everything but
// a recognized translation node) or later, via a registered Pending, once
// the caller resolves it.
func (w *walker) walkInto(v any, set func(any)) {
	if node, ok := parseNode(v); ok {
		w.pending = append(w.pending, Pending{Node: node, Set: func(resolved any) {
			w.mu.Lock()
			defer w.mu.Unlock()

			set(resolved)
		}})
		w.keys = append(w.keys, node.Key)
		set(v)

		return
	}

	if m, ok := isPlainMap(v); ok {
		out := make(map[string]any, len(m))

		for k, val := range m {
			k := k

			w.walkInto(val, func(resolved any) { out[k] = resolved })
		}

		set(out)

		return
	}

	if s, ok := isSequence(v); ok {
		out := make([]any, len(s))

		for i, val := range s {
			i := i

			w.walkInto(val, func(resolved any) { out[i] = resolved })
		}

		set(out)

		return
	}

	if c, ok := v.(Canonicalizable); ok {
		w.walkInto(c.ToCanonical(), set)

		return
	}

	set(v)
}
