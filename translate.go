// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18ntree

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Resolver resolves a single parsed translation Node to its final value:
// a string on a catalog or fallback hit, the bare key on a clean miss, or
// (on formatter failure) the original node augmented with an "error"
// property. Engine implements Resolver.
type Resolver interface {
	ResolveNode(node Node) any
	// Locales returns the consulted locale list, request locale first,
	// used to scope a batched catalog load.
	Locales() []string
}

// KeyLoader absorbs a batched catalog load for a set of keys across a set
// of locales before resolution proceeds. Implementations must not return
// an error for a remote failure - the loader design degrades silently,
// logging instead (see package loader) - reserving the error return for
// genuine configuration faults.
type KeyLoader interface {
	Load(ctx context.Context, locales []string, keys []string) error
}

// KeyLoaderFunc adapts a plain function to KeyLoader.
type KeyLoaderFunc func(ctx context.Context, locales []string, keys []string) error

// Load calls f.
func (f KeyLoaderFunc) Load(ctx context.Context, locales []string, keys []string) error {
	return f(ctx, locales, keys)
}

// Translate runs the full per-request pipeline: walk v into a skeleton plus
// pending resolutions, let loader absorb a batched catalog load for the
// keys the walk collected, then resolve every pending node concurrently
// against the now-settled catalog and splice the results into the
// skeleton. v is never mutated; the returned value is a fresh skeleton.
//
// loader may be nil, in which case resolution proceeds against whatever
// the resolver's catalog already holds.
func Translate(ctx context.Context, resolver Resolver, loader KeyLoader, v any) (any, error) {
	wr := Walk(v)

	if loader != nil && len(wr.Keys) > 0 {
		if err := loader.Load(ctx, resolver.Locales(), wr.Keys); err != nil {
			return nil, err
		}
	}

	g, _ := errgroup.WithContext(ctx)

	for _, p := range wr.Pending {
		p := p

		g.Go(func() error {
			p.Set(resolver.ResolveNode(p.Node))

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return wr.Skeleton, nil
}
