// Package parallel provides the data-parallel execution substrate for the
// simulation kernels: a chunked parallel-for over the amplitude index space.
// Error propagation rides on errgroup, so the first body error (or a
// context cancellation) aborts the remaining chunks.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultSequentialThreshold is the index-space size below which For runs
// the body sequentially. Spawning goroutines for tiny buffers costs more
// than the loop itself.
const DefaultSequentialThreshold = 1 << 12

// minChunk is the smallest index range assigned to one worker. Chunks
// smaller than this defeat cache locality and inflate scheduling overhead.
const minChunk = 1 << 10

// For executes body(lo, hi) over contiguous sub-ranges covering [0, n).
// Ranges are disjoint, so the body may write freely to per-index output
// slots without synchronization; it must not read cells of its own output
// range from another chunk.
//
// Below threshold (or with a single CPU) the whole range runs on the
// calling goroutine. Above it, the range is split across runtime.NumCPU()
// workers via errgroup; ctx cancellation aborts remaining chunks at chunk
// granularity and the first body error wins.
//
// Parameters:
//   - ctx: The context for cancellation between chunks.
//   - n: The exclusive upper bound of the index range.
//   - threshold: The minimum n for parallel dispatch; <= 0 selects
//     DefaultSequentialThreshold.
//   - body: The function invoked with each [lo, hi) sub-range.
//
// Returns:
//   - error: The first error returned by any body invocation, or ctx.Err().
func For(ctx context.Context, n, threshold int, body func(lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	if threshold <= 0 {
		threshold = DefaultSequentialThreshold
	}

	workers := runtime.NumCPU()
	if n < threshold || workers <= 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		return body(0, n)
	}

	chunk := (n + workers - 1) / workers
	if chunk < minChunk {
		chunk = minChunk
	}

	g, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		lo, hi := lo, hi
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return body(lo, hi)
		})
	}
	return g.Wait()
}
