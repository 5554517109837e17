// SPDX-License-Identifier: MIT

package sgm

import (
	"fmt"

	"github.com/katalvlaran/sgmstereo/tensor"
)

// Aggregator sums the SGM path costs of every enabled direction.
type Aggregator struct {
	minDisparity int
	penalty1     int32
	penalty2     int32
	paths        int
	workers      int

	cost       *tensor.Cost
	aggregated *tensor.Cost
	disp       int // disparities of the current tensor
	starts     []point
	spaces     []workspace
}

// NewAggregator returns an Aggregator with P1=1, P2=2, 8 paths and one
// worker.
func NewAggregator() *Aggregator {
	return &Aggregator{
		penalty1:   1,
		penalty2:   2,
		paths:      8,
		workers:    1,
		aggregated: &tensor.Cost{},
	}
}

// Configure sets the minimum disparity of the tensors passed to Process.
func (a *Aggregator) Configure(minDisparity int) error {
	if minDisparity < 0 {
		return fmt.Errorf("Aggregator.Configure(%d): %w", minDisparity, ErrDisparityRange)
	}
	a.minDisparity = minDisparity

	return nil
}

// SetPenalties sets P1 (disparity change of one) and P2 (larger changes).
// P2 must leave the configured paths below uint16 saturation.
func (a *Aggregator) SetPenalties(p1, p2 int) error {
	if err := validatePenalties(p1, p2); err != nil {
		return fmt.Errorf("Aggregator.SetPenalties: %w", err)
	}
	if err := validateSaturation(a.paths, p2); err != nil {
		return fmt.Errorf("Aggregator.SetPenalties: %w", err)
	}
	a.penalty1, a.penalty2 = int32(p1), int32(p2)

	return nil
}

// SetPathsConsidered sets how many directions are aggregated (1..16).
func (a *Aggregator) SetPathsConsidered(n int) error {
	if err := validatePaths(n); err != nil {
		return fmt.Errorf("Aggregator.SetPathsConsidered: %w", err)
	}
	if err := validateSaturation(n, int(a.penalty2)); err != nil {
		return fmt.Errorf("Aggregator.SetPathsConsidered: %w", err)
	}
	a.paths = n

	return nil
}

// SetWorkers sets the number of goroutines; values < 1 mean 1.
func (a *Aggregator) SetWorkers(n int) { a.workers = max(n, 1) }

// Aggregated returns the tensor filled by the last Process call. It is
// reused by the next call.
func (a *Aggregator) Aggregated() *tensor.Cost { return a.aggregated }

// Process aggregates cost into Aggregated(), which takes cost's shape and
// starts from zero. Columns below the minimum disparity stay zero.
//
// Implementation:
//   - Stage 1: reset the output and size one workspace per worker.
//   - Stage 2: for every enabled direction, enumerate the path starts and
//     score the paths in parallel blocks.
//
// Complexity: O(paths·W·H·D) time, O(workers·max(W,H)·D) scratch.
func (a *Aggregator) Process(cost *tensor.Cost) error {
	if cost == nil {
		return fmt.Errorf("Aggregator.Process: %w", ErrNilImage)
	}
	if err := a.aggregated.Reshape(cost.Rows(), cost.Cols(), cost.Disparities()); err != nil {
		return fmt.Errorf("Aggregator.Process: %w", err)
	}
	a.aggregated.Fill(0)
	a.cost = cost
	a.disp = cost.Disparities()
	defer func() { a.cost = nil }()

	r := region{x0: a.minDisparity, x1: cost.Cols(), rows: cost.Rows()}
	if r.empty() {
		return nil
	}

	if len(a.spaces) < a.workers {
		a.spaces = make([]workspace, a.workers)
	}
	scratch := max(cost.Cols(), cost.Rows()) * a.disp
	for i := range a.spaces {
		a.spaces[i].ensure(scratch)
	}

	for _, dir := range activeDirections(a.paths) {
		a.starts = r.starts(dir, a.starts[:0])
		parallelFor(len(a.starts), a.workers, func(worker, lo, hi int) {
			ws := &a.spaces[worker]
			for _, p := range a.starts[lo:hi] {
				a.scorePath(r, p, dir, ws.lr)
			}
		})
	}

	return nil
}

// localRange returns how many disparities column x supports.
func (a *Aggregator) localRange(x int) int {
	return min(x-a.minDisparity+1, a.disp)
}

// scorePath runs the recurrence from p along dir and adds the result into
// the aggregated tensor.
func (a *Aggregator) scorePath(r region, p point, dir direction, lr []int32) {
	n := r.pathLength(p, dir)
	D := a.disp

	x, y := p.x, p.y
	nr := a.localRange(x)
	cell := a.cost.Cell(y, x)
	for d := 0; d < nr; d++ {
		lr[d] = int32(cell[d])
	}

	prevRange := nr
	for i := 1; i < n; i++ {
		x, y = x+dir.dx, y+dir.dy
		nr = a.localRange(x)
		prev := lr[(i-1)*D : (i-1)*D+prevRange]
		cur := lr[i*D : i*D+nr]
		a.step(a.cost.Cell(y, x)[:nr], prev, cur)
		prevRange = nr
	}

	x, y = p.x, p.y
	agg := a.aggregated
	for i := 0; i < n; i++ {
		nr = a.localRange(x)
		base := agg.Index(y, x, 0)
		row := lr[i*D : i*D+nr]
		for d, v := range row {
			agg.AddSaturating(base+d, v)
		}
		x, y = x+dir.dx, y+dir.dy
	}
}

// step computes cur from the raw costs c and the previous path vector prev.
// Neighbour terms outside prev are skipped. len(c) == len(cur).
func (a *Aggregator) step(c []uint16, prev, cur []int32) {
	minPrev := prev[0]
	for _, v := range prev[1:] {
		if v < minPrev {
			minPrev = v
		}
	}
	p1 := a.penalty1
	jump := minPrev + a.penalty2

	// inner disparities have all three neighbours in prev
	inner := min(len(cur), len(prev)-1)
	for d := 1; d < inner; d++ {
		v := prev[d]
		if t := prev[d-1] + p1; t < v {
			v = t
		}
		if t := prev[d+1] + p1; t < v {
			v = t
		}
		if jump < v {
			v = jump
		}
		cur[d] = int32(c[d]) + v - minPrev
	}

	cur[0] = a.borderStep(c, prev, 0, minPrev, jump)
	for d := max(inner, 1); d < len(cur); d++ {
		cur[d] = a.borderStep(c, prev, d, minPrev, jump)
	}
}

func (a *Aggregator) borderStep(c []uint16, prev []int32, d int, minPrev, jump int32) int32 {
	v := jump
	np := len(prev)
	if d < np && prev[d] < v {
		v = prev[d]
	}
	if d-1 >= 0 && d-1 < np {
		if t := prev[d-1] + a.penalty1; t < v {
			v = t
		}
	}
	if d+1 < np {
		if t := prev[d+1] + a.penalty1; t < v {
			v = t
		}
	}

	return int32(c[d]) + v - minPrev
}
