// SPDX-License-Identifier: MIT

package speckle

import (
	"fmt"
	"image"
)

// Connectivity selects neighbour connectivity: orthogonal (Conn4) or
// including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 adds NE, SE, SW, NW.
	Conn8
)

var (
	offsets4 = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	offsets8 = [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
)

// Filler labels regions with a breadth-first search and fills the small
// ones. Buffers are kept between calls; a Filler is not safe for
// concurrent use.
type Filler struct {
	offsets [][2]int
	seen    []bool
	queue   []int
	filled  int
}

// NewFiller returns a Filler using conn connectivity. Unknown values
// fall back to Conn4.
func NewFiller(conn Connectivity) *Filler {
	f := &Filler{offsets: offsets4}
	if conn == Conn8 {
		f.offsets = offsets8
	}

	return f
}

// TotalFilled returns the number of pixels overwritten by the last call.
func (f *Filler) TotalFilled() int { return f.filled }

// Process fills every region of at most maxArea pixels with fill.
// Neighbours join a region when their values differ by at most tol.
//
// Implementation:
//   - Stage 1: validate parameters and reset the visited flags.
//   - Stage 2: for each unvisited valid pixel, collect its region with a
//     queue-based BFS.
//   - Stage 3: overwrite the region when it is small enough.
//
// Returns the number of pixels filled.
func (f *Filler) Process(disp *image.Gray, maxArea, tol int, fill uint8) (int, error) {
	if disp == nil {
		return 0, ErrNilImage
	}
	if maxArea < 0 || tol < 0 {
		return 0, fmt.Errorf("Filler.Process(maxArea=%d, tol=%d): %w", maxArea, tol, ErrBadParameter)
	}
	f.filled = 0
	w, h := disp.Rect.Dx(), disp.Rect.Dy()
	if maxArea == 0 || w == 0 || h == 0 {
		return 0, nil
	}

	n := w * h
	if cap(f.seen) < n {
		f.seen = make([]bool, n)
	}
	f.seen = f.seen[:n]
	clear(f.seen)

	at := func(i int) uint8 { return disp.Pix[(i/w)*disp.Stride+i%w] }

	for i0 := 0; i0 < n; i0++ {
		if f.seen[i0] || at(i0) == fill {
			continue
		}
		f.seen[i0] = true
		f.queue = append(f.queue[:0], i0)
		for qi := 0; qi < len(f.queue); qi++ {
			u := f.queue[qi]
			ux, uy := u%w, u/w
			uv := int(at(u))
			for _, d := range f.offsets {
				vx, vy := ux+d[0], uy+d[1]
				if vx < 0 || vx >= w || vy < 0 || vy >= h {
					continue
				}
				vi := vy*w + vx
				if f.seen[vi] {
					continue
				}
				vv := at(vi)
				if vv == fill || absInt(int(vv)-uv) > tol {
					continue
				}
				f.seen[vi] = true
				f.queue = append(f.queue, vi)
			}
		}
		if len(f.queue) > maxArea {
			continue
		}
		for _, u := range f.queue {
			disp.Pix[(u/w)*disp.Stride+u%w] = fill
		}
		f.filled += len(f.queue)
	}

	return f.filled, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
