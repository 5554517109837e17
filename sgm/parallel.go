// SPDX-License-Identifier: MIT

package sgm

import "sync"

// splitRange divides [0, n) into at most workers contiguous blocks; the
// last block takes the remainder.
func splitRange(n, workers int) [][2]int {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	blocks := make([][2]int, 0, workers)
	step := n / max(workers, 1)
	start := 0
	for i := 0; i < workers; i++ {
		end := start + step
		if i == workers-1 {
			end = n
		}
		blocks = append(blocks, [2]int{start, end})
		start = end
	}

	return blocks
}

// parallelFor runs fn over the blocks of [0, n) and waits for all of them.
// fn receives its block index, usable as a worker-local scratch slot.
func parallelFor(n, workers int, fn func(worker, lo, hi int)) {
	if n <= 0 {
		return
	}
	blocks := splitRange(n, workers)
	if len(blocks) == 1 {
		fn(0, 0, n)
		return
	}

	var wg sync.WaitGroup
	for i, b := range blocks {
		wg.Add(1)
		go func(worker, lo, hi int) {
			defer wg.Done()
			fn(worker, lo, hi)
		}(i, b[0], b[1])
	}
	wg.Wait()
}
