// Package core holds the parallel batch helpers used to run independent
// simulations side by side.
package core

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"dungeonfx/internal/mathutil"
)

// ParallelMap executes a function in parallel for each item and collects
// results in input order.
func ParallelMap[T any, R any](items []T, fn func(T) R) []R {
	return ParallelMapWithContext(context.Background(), items, fn)
}

// ParallelMapWithContext executes fn in parallel with cancellation support.
// Items not reached before ctx is done keep the zero result.
func ParallelMapWithContext[T any, R any](ctx context.Context, items []T, fn func(T) R) []R {
	if len(items) == 0 {
		return nil
	}

	numWorkers := mathutil.IntMin(runtime.NumCPU(), len(items))
	chunkSize := mathutil.IntMax(1, (len(items)+numWorkers-1)/numWorkers)

	results := make([]R, len(items))
	var wg sync.WaitGroup

	for i := 0; i < len(items); i += chunkSize {
		start := i
		end := mathutil.IntMin(i+chunkSize, len(items))

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for j := start; j < end; j++ {
				select {
				case <-ctx.Done():
					return
				default:
					results[j] = fn(items[j])
				}
			}
		}(start, end)
	}

	wg.Wait()
	return results
}

// SafeCounter is a lock-free counter shared by parallel workers.
type SafeCounter struct {
	value atomic.Int64
}

// Increment atomically increments the counter and returns the new value
func (c *SafeCounter) Increment() int64 {
	return c.value.Add(1)
}

// Get atomically gets the counter value
func (c *SafeCounter) Get() int64 {
	return c.value.Load()
}
