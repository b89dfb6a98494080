package dynamo

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelFor calls fn on contiguous sub-ranges covering [0, n), at most
// GOMAXPROCS at a time. No range is shorter than minChunk, except the last,
// so small inputs stay on the calling goroutine.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	procs := runtime.GOMAXPROCS(0)
	if n <= 0 {
		return
	}
	if procs < 2 || n <= minChunk {
		fn(0, n)
		return
	}

	size := max((n+procs-1)/procs, minChunk, 1)

	var g errgroup.Group
	g.SetLimit(procs)
	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}
