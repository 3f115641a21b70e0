// SPDX-License-Identifier: MIT

package nmf

import "sync"

// columnResult aggregates what the column tasks report back.
type columnResult struct {
	maxIters   int
	degenerate int
}

// runColumns executes task(y) for every column y in [0, n) on a fixed pool of
// workers fed by a queue of column indices, then blocks until every task has
// returned. Each task owns its column exclusively; the pool itself shares
// nothing but the queue and the final aggregate.
//
// Complexity: O(n) dispatch plus the cost of the tasks.
func runColumns(workers, n int, task func(y int) (iters, degenerate int)) columnResult {
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	cols := make(chan int, n)
	for y := 0; y < n; y++ {
		cols <- y
	}
	close(cols)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		agg columnResult
	)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			var local columnResult
			for y := range cols {
				it, deg := task(y)
				if it > local.maxIters {
					local.maxIters = it
				}
				local.degenerate += deg
			}
			mu.Lock()
			if local.maxIters > agg.maxIters {
				agg.maxIters = local.maxIters
			}
			agg.degenerate += local.degenerate
			mu.Unlock()
		}()
	}
	wg.Wait() // barrier: V is settled before the next UpdateU

	return agg
}
