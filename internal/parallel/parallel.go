// Package parallel splits independent row or cell work across goroutines.
//
// Usage:
//
//	parallel.For(height, func(start, end int) {
//	    for y := start; y < end; y++ {
//	        processRow(y)
//	    }
//	})
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minChunk keeps tiny images on the calling goroutine.
const minChunk = 16

// chunksPerWorker caps how many ranges each worker is handed.
const chunksPerWorker = 4

// For calls fn over contiguous, disjoint ranges covering [0, n) and returns
// when all of them are done. fn must only write state owned by its range.
func For(n int, fn func(start, end int)) {
	ForWorkers(runtime.GOMAXPROCS(0), n, fn)
}

// ForWorkers is For with at most workers ranges running at once. workers <= 0
// uses GOMAXPROCS.
func ForWorkers(workers, n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunks := (n + minChunk - 1) / minChunk
	if workers > chunks {
		workers = chunks
	}
	if workers <= 1 {
		fn(0, n)
		return
	}
	if chunks > workers*chunksPerWorker {
		chunks = workers * chunksPerWorker
	}

	size := (n + chunks - 1) / chunks
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += size {
		start, end := start, min(start+size, n)
		// Go blocks while workers ranges are in flight
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	g.Wait() // ranges never fail
}
