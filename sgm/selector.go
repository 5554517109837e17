// SPDX-License-Identifier: MIT

package sgm

import (
	"fmt"
	"image"

	"github.com/katalvlaran/sgmstereo/gray"
	"github.com/katalvlaran/sgmstereo/tensor"
)

// Selector turns an aggregated cost tensor into a disparity map by
// winner-take-all with optional cost and left/right consistency checks.
type Selector struct {
	minDisparity   int
	disparityRange int
	tolerance      int
	maxError       int
}

// NewSelector returns a Selector with right-to-left tolerance 1 and no
// cost limit. Configure must be called before Select.
func NewSelector() *Selector {
	return &Selector{tolerance: 1, maxError: -1}
}

// Configure sets the disparity window. disparityRange must be in [1, 255].
func (s *Selector) Configure(minDisparity, disparityRange int) error {
	if err := validateDisparity(minDisparity, disparityRange); err != nil {
		return fmt.Errorf("Selector.Configure: %w", err)
	}
	s.minDisparity, s.disparityRange = minDisparity, disparityRange

	return nil
}

// SetRightToLeftTolerance sets the consistency tolerance; < 0 disables it.
func (s *Selector) SetRightToLeftTolerance(tol int) { s.tolerance = tol }

// SetMaxError sets the cost limit; aggregated cost >= maxError is invalid.
// A negative value disables it.
func (s *Selector) SetMaxError(maxError int) { s.maxError = maxError }

// InvalidDisparity returns the value written for rejected pixels.
func (s *Selector) InvalidDisparity() int { return s.disparityRange }

func (s *Selector) localRange(x int) int {
	return min(x-s.minDisparity+1, s.disparityRange)
}

func (s *Selector) check(aggregated *tensor.Cost, disparity *image.Gray) error {
	if aggregated == nil || disparity == nil {
		return ErrNilImage
	}
	if s.disparityRange == 0 {
		return ErrNotConfigured
	}
	if aggregated.Disparities() != s.disparityRange {
		return fmt.Errorf("tensor has %d disparities, want %d: %w",
			aggregated.Disparities(), s.disparityRange, ErrShapeMismatch)
	}

	return nil
}

// Select reshapes disparity to the tensor's (cols × rows) and fills it.
//
// Implementation:
//   - Stage 1: columns below the minimum disparity are invalid.
//   - Stage 2: arg-min over the local range; the first minimum wins.
//   - Stage 3: reject costs >= maxError when enabled.
//   - Stage 4: when tolerance >= 0, find the best left match of the
//     implied right column and reject when it is more than tolerance away.
//
// Complexity: O(W*H*D).
func (s *Selector) Select(aggregated *tensor.Cost, disparity *image.Gray) error {
	if err := s.check(aggregated, disparity); err != nil {
		return fmt.Errorf("Selector.Select: %w", err)
	}
	cols, rows := aggregated.Cols(), aggregated.Rows()
	gray.ReshapeGray(disparity, cols, rows)
	invalid := uint8(s.disparityRange)

	for y := 0; y < rows; y++ {
		out := disparity.Pix[y*cols : (y+1)*cols]
		for x := range out {
			if x < s.minDisparity {
				out[x] = invalid
				continue
			}
			d, c := argMin(aggregated.Cell(y, x)[:s.localRange(x)])
			if s.maxError >= 0 && int(c) >= s.maxError {
				out[x] = invalid
				continue
			}
			if s.tolerance >= 0 && !s.consistent(aggregated, y, x, d) {
				out[x] = invalid
				continue
			}
			out[x] = uint8(d)
		}
	}

	return nil
}

// consistent checks the right pixel xr = x-min-d: among the left pixels
// xr+min+d' that could match it, the cheapest must have |d'-d| <= tolerance.
func (s *Selector) consistent(aggregated *tensor.Cost, y, x, d int) bool {
	xr := x - s.minDisparity - d
	n := min(s.disparityRange, aggregated.Cols()-xr-s.minDisparity)
	best, bestCost := 0, ^uint16(0)
	for k := 0; k < n; k++ {
		c := aggregated.Cell(y, xr+s.minDisparity+k)[k]
		if c < bestCost {
			best, bestCost = k, c
		}
	}
	diff := best - d
	if diff < 0 {
		diff = -diff
	}

	return diff <= s.tolerance
}

// argMin returns the index and value of the first minimum of v.
func argMin(v []uint16) (int, uint16) {
	best, bestCost := 0, v[0]
	for i := 1; i < len(v); i++ {
		if v[i] < bestCost {
			best, bestCost = i, v[i]
		}
	}

	return best, bestCost
}
