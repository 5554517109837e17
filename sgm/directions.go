// SPDX-License-Identifier: MIT

package sgm

import "math"

// direction is one aggregation path step. It is enabled when the
// configured path count is at least minPaths.
type direction struct {
	dx, dy   int
	minPaths int
}

// directions lists every path in the order it is aggregated.
var directions = []direction{
	{1, 0, 1},
	{-1, 0, 2},
	{0, 1, 4}, {0, -1, 4},
	{1, 1, 8}, {-1, -1, 8}, {-1, 1, 8}, {1, -1, 8},
	{1, 2, 16}, {2, 1, 16}, {2, -1, 16}, {1, -2, 16},
	{-1, -2, 16}, {-2, -1, 16}, {-2, 1, 16}, {-1, 2, 16},
}

// activeDirections returns the directions enabled for paths.
func activeDirections(paths int) []direction {
	out := make([]direction, 0, len(directions))
	for _, d := range directions {
		if paths >= d.minPaths {
			out = append(out, d)
		}
	}

	return out
}

type point struct{ x, y int }

// region is the effective image area x ∈ [x0, x1), y ∈ [0, rows).
type region struct {
	x0, x1, rows int
}

func (r region) empty() bool { return r.x0 >= r.x1 || r.rows <= 0 }

func (r region) contains(x, y int) bool {
	return x >= r.x0 && x < r.x1 && y >= 0 && y < r.rows
}

// band returns the coordinates t ∈ [lo, hi) whose predecessor t-step falls
// outside [lo, hi). step == 0 yields an empty band.
func band(step, lo, hi int) (int, int) {
	switch {
	case step > 0:
		return lo, min(lo+step, hi)
	case step < 0:
		return max(hi+step, lo), hi
	default:
		return lo, lo
	}
}

// starts appends to dst every pixel whose predecessor along dir lies
// outside r: the x-band over all rows, then the y-band over the remaining
// columns.
func (r region) starts(dir direction, dst []point) []point {
	bx0, bx1 := band(dir.dx, r.x0, r.x1)
	for x := bx0; x < bx1; x++ {
		for y := 0; y < r.rows; y++ {
			dst = append(dst, point{x, y})
		}
	}
	by0, by1 := band(dir.dy, 0, r.rows)
	for y := by0; y < by1; y++ {
		for x := r.x0; x < r.x1; x++ {
			if x >= bx0 && x < bx1 {
				continue
			}
			dst = append(dst, point{x, y})
		}
	}

	return dst
}

// pathLength returns how many pixels a path from p along dir visits
// before leaving r.
func (r region) pathLength(p point, dir direction) int {
	return min(axisSteps(p.x, dir.dx, r.x0, r.x1), axisSteps(p.y, dir.dy, 0, r.rows))
}

func axisSteps(t, step, lo, hi int) int {
	switch {
	case step > 0:
		return (hi-1-t)/step + 1
	case step < 0:
		return (t-lo)/(-step) + 1
	default:
		return math.MaxInt
	}
}
