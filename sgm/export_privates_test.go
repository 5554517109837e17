// SPDX-License-Identifier: MIT

package sgm

// White-box bridge for sgm_test.

// Direction mirrors direction for tests.
type Direction struct{ DX, DY, MinPaths int }

// ActiveDirectionsForTest lists the enabled directions for paths.
func ActiveDirectionsForTest(paths int) []Direction {
	var out []Direction
	for _, d := range activeDirections(paths) {
		out = append(out, Direction{d.dx, d.dy, d.minPaths})
	}

	return out
}

// PathCoverageForTest walks every path of (dx, dy) over the region
// x ∈ [x0, x1), y ∈ [0, rows) and returns how often each pixel was visited,
// indexed [y*(x1-x0) + x-x0].
func PathCoverageForTest(x0, x1, rows, dx, dy int) []int {
	r := region{x0: x0, x1: x1, rows: rows}
	dir := direction{dx: dx, dy: dy}
	w := x1 - x0
	visits := make([]int, w*rows)
	for _, p := range r.starts(dir, nil) {
		n := r.pathLength(p, dir)
		x, y := p.x, p.y
		for i := 0; i < n; i++ {
			visits[y*w+x-x0]++
			x, y = x+dx, y+dy
		}
	}

	return visits
}

// SplitRangeForTest exposes splitRange.
var SplitRangeForTest = splitRange
