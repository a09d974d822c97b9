// Package parallel shards pointwise evaluations over blocks of an energy
// grid. Evaluations at different energies are independent, so each block
// runs on its own goroutine and the results are stitched back by offset.
//
// Short grids are evaluated in one call; the split only pays off once the
// grid holds more than Options.Threshold energies.
package parallel

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/resonances/xs"
)

const (
	// DefaultThreshold is the grid length above which Map splits.
	DefaultThreshold = 1000

	// DefaultBlocks is the number of blocks a long grid is split into.
	DefaultBlocks = 8
)

// Options configures Map.
type Options struct {
	// Threshold is the largest grid evaluated in a single call.
	Threshold int
	// Blocks is the number of concurrent blocks; 1 disables splitting.
	Blocks int
}

// DefaultOptions returns Options{Threshold: 1000, Blocks: 8}.
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold, Blocks: DefaultBlocks}
}

// Mode tells Map how to assemble block results of type T.
type Mode[T any] struct {
	// New returns an empty result.
	New func() T
	// Put copies a block result into dst at an energy offset; dst spans n
	// energies.
	Put func(dst, src T, offset, n int)
}

// CrossSections assembles xs.Set results.
func CrossSections() Mode[xs.Set] {
	return Mode[xs.Set]{
		New: func() xs.Set { return xs.Set{} },
		Put: func(dst, src xs.Set, offset, n int) { dst.Put(src, offset, n) },
	}
}

// Legendre assembles xs.Legendre results; blocks may differ in order.
func Legendre() Mode[xs.Legendre] {
	return Mode[xs.Legendre]{
		New: func() xs.Legendre { return xs.Legendre{} },
		Put: func(dst, src xs.Legendre, offset, n int) { dst.Put(src, offset, n) },
	}
}

// Map evaluates fn over energies, splitting grids longer than
// opts.Threshold into opts.Blocks contiguous blocks run concurrently. The
// first failing block cancels the others and its error is returned.
func Map[T any](ctx context.Context, energies []float64, mode Mode[T], opts Options, fn func(context.Context, []float64) (T, error)) (T, error) {
	n := len(energies)
	blocks := min(opts.Blocks, n)
	if n <= opts.Threshold || blocks <= 1 {
		return fn(ctx, energies)
	}

	size := (n + blocks - 1) / blocks
	results := make([]T, 0, blocks)
	offsets := make([]int, 0, blocks)
	for lo := 0; lo < n; lo += size {
		var zero T
		results = append(results, zero)
		offsets = append(offsets, lo)
	}

	g, gctx := errgroup.WithContext(ctx)
	for b, lo := range offsets {
		b, lo := b, lo
		hi := min(lo+size, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			part, err := fn(gctx, energies[lo:hi])
			if err != nil {
				return fmt.Errorf("block [%d, %d): %w", lo, hi, err)
			}
			results[b] = part

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var zero T
		return zero, fmt.Errorf("Map: %w", err)
	}

	out := mode.New()
	for b, part := range results {
		mode.Put(out, part, offsets[b], n)
	}

	return out, nil
}
