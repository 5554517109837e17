// SPDX-License-Identifier: MIT

package tensor

import (
	"fmt"
	"math"
	"strings"
)

// Cost is a (rows × cols × disparities) tensor of unsigned 16-bit costs.
//   - rows, cols and disparities hold the shape.
//   - data holds rows*cols*disparities cells, disparity-contiguous.
//
// The zero value is an empty tensor; call Reshape before use.
type Cost struct {
	rows, cols, disparities int
	data                    []uint16
}

var _ fmt.Stringer = (*Cost)(nil)

// NewCost allocates a zeroed tensor of the given shape.
// Returns ErrInvalidDimensions when any axis is non-positive.
// Complexity: O(rows*cols*disparities).
func NewCost(rows, cols, disparities int) (*Cost, error) {
	if rows <= 0 || cols <= 0 || disparities <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Cost{
		rows:        rows,
		cols:        cols,
		disparities: disparities,
		data:        make([]uint16, rows*cols*disparities),
	}, nil
}

// Reshape changes the shape of the tensor, reusing the backing slice when
// its capacity suffices. Cell contents are unspecified afterwards.
//
// Implementation:
//   - Stage 1: validate every axis is > 0.
//   - Stage 2: grow the backing slice only when capacity is short.
//
// Complexity: O(1) on reuse, O(n) on growth.
func (t *Cost) Reshape(rows, cols, disparities int) error {
	if rows <= 0 || cols <= 0 || disparities <= 0 {
		return fmt.Errorf("Cost.Reshape(%d,%d,%d): %w", rows, cols, disparities, ErrInvalidDimensions)
	}
	n := rows * cols * disparities
	if cap(t.data) < n {
		t.data = make([]uint16, n)
	} else {
		t.data = t.data[:n]
	}
	t.rows, t.cols, t.disparities = rows, cols, disparities

	return nil
}

// Rows returns the number of image rows.
func (t *Cost) Rows() int { return t.rows }

// Cols returns the number of image columns.
func (t *Cost) Cols() int { return t.cols }

// Disparities returns the length of the disparity axis.
func (t *Cost) Disparities() int { return t.disparities }

// SameShape reports whether t and o have identical shapes.
func (t *Cost) SameShape(o *Cost) bool {
	return t.rows == o.rows && t.cols == o.cols && t.disparities == o.disparities
}

// Index returns the flat offset of (row, col, d) without bounds checks.
// Hot loops use it together with Data.
func (t *Cost) Index(row, col, d int) int {
	return (row*t.cols+col)*t.disparities + d
}

// Data exposes the flat backing slice. Mutations are visible in t.
func (t *Cost) Data() []uint16 { return t.data }

// Cell returns the disparity vector at (row, col) as a sub-slice of the
// backing storage. No bounds checks beyond the slice expression.
func (t *Cost) Cell(row, col int) []uint16 {
	i := (row*t.cols + col) * t.disparities

	return t.data[i : i+t.disparities : i+t.disparities]
}

func (t *Cost) inBounds(row, col, d int) bool {
	return row >= 0 && row < t.rows && col >= 0 && col < t.cols && d >= 0 && d < t.disparities
}

// At returns the cost at (row, col, d) or ErrOutOfRange.
// Complexity: O(1).
func (t *Cost) At(row, col, d int) (uint16, error) {
	if !t.inBounds(row, col, d) {
		return 0, costErrorf("At", row, col, d, ErrOutOfRange)
	}

	return t.data[t.Index(row, col, d)], nil
}

// Set writes v at (row, col, d) or returns ErrOutOfRange.
// Complexity: O(1).
func (t *Cost) Set(row, col, d int, v uint16) error {
	if !t.inBounds(row, col, d) {
		return costErrorf("Set", row, col, d, ErrOutOfRange)
	}
	t.data[t.Index(row, col, d)] = v

	return nil
}

// Fill assigns v to every cell.
func (t *Cost) Fill(v uint16) {
	if v == 0 {
		clear(t.data)
		return
	}
	for i := range t.data {
		t.data[i] = v
	}
}

// Clone returns a deep copy of t.
func (t *Cost) Clone() *Cost {
	out := &Cost{rows: t.rows, cols: t.cols, disparities: t.disparities}
	out.data = make([]uint16, len(t.data))
	copy(out.data, t.data)

	return out
}

// Equal reports whether t and o have the same shape and identical cells.
func (t *Cost) Equal(o *Cost) bool {
	if !t.SameShape(o) {
		return false
	}
	for i, v := range t.data {
		if o.data[i] != v {
			return false
		}
	}

	return true
}

// AddSaturating adds v into the cell at flat offset i, clamping at
// math.MaxUint16 instead of wrapping.
func (t *Cost) AddSaturating(i int, v int32) {
	s := int32(t.data[i]) + v
	if s > math.MaxUint16 {
		s = math.MaxUint16
	}
	t.data[i] = uint16(s)
}

// String prints one "[...]" line per (row, col) cell; meant for debugging
// small tensors.
func (t *Cost) String() string {
	var sb strings.Builder
	for r := 0; r < t.rows; r++ {
		for c := 0; c < t.cols; c++ {
			fmt.Fprintf(&sb, "(%d,%d) %v\n", r, c, t.Cell(r, c))
		}
	}

	return sb.String()
}
