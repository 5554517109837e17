// SPDX-License-Identifier: MIT

package sgm

import (
	"fmt"

	"github.com/katalvlaran/sgmstereo/gray"
	"github.com/katalvlaran/sgmstereo/mutualinfo"
	"github.com/katalvlaran/sgmstereo/tensor"
)

// PixelCost scores the match between a left and a right intensity.
// Results above MaxCost are clamped by the cost volume.
type PixelCost interface {
	CostScaled(left, right uint16) uint16
}

var (
	_ PixelCost = (*mutualinfo.Model)(nil)
	_ PixelCost = AbsoluteDifference{}
)

// AbsoluteDifference is the cost |left - right|.
type AbsoluteDifference struct{}

// CostScaled implements PixelCost.
func (AbsoluteDifference) CostScaled(left, right uint16) uint16 {
	if left > right {
		return left - right
	}

	return right - left
}

// CostVolume fills a raw cost tensor from a rectified image pair.
// Cell [y][x][d] holds cost(left(x,y), right(x-min-d,y)) clamped to
// MaxCost, or MaxCost when the right column is outside the image.
type CostVolume struct {
	cost           PixelCost
	minDisparity   int
	disparityRange int
	workers        int
}

// NewCostVolume returns a CostVolume using cost. Configure must be called
// before Process.
func NewCostVolume(cost PixelCost) *CostVolume {
	return &CostVolume{cost: cost, workers: 1}
}

// Configure sets the disparity window [min, min+range).
func (cv *CostVolume) Configure(minDisparity, disparityRange int) error {
	if err := validateDisparity(minDisparity, disparityRange); err != nil {
		return fmt.Errorf("CostVolume.Configure: %w", err)
	}
	cv.minDisparity, cv.disparityRange = minDisparity, disparityRange

	return nil
}

// SetCost replaces the pixel cost.
func (cv *CostVolume) SetCost(cost PixelCost) { cv.cost = cost }

// SetWorkers sets the number of goroutines; values < 1 mean 1.
func (cv *CostVolume) SetWorkers(n int) { cv.workers = max(n, 1) }

// Process reshapes out to (height, width, range) and fills it.
//
// Implementation:
//   - Stage 1: validate inputs and configuration.
//   - Stage 2: rows in parallel; for each pixel walk the right row leftwards
//     from column x-min, one step per disparity.
//
// Complexity: O(W*H*D).
func (cv *CostVolume) Process(left, right *gray.Plane, out *tensor.Cost) error {
	if left == nil || right == nil || out == nil || cv.cost == nil {
		return fmt.Errorf("CostVolume.Process: %w", ErrNilImage)
	}
	if cv.disparityRange == 0 {
		return fmt.Errorf("CostVolume.Process: %w", ErrNotConfigured)
	}
	if !left.SameShape(right) {
		return fmt.Errorf("CostVolume.Process: left %dx%d, right %dx%d: %w",
			left.Width, left.Height, right.Width, right.Height, ErrShapeMismatch)
	}
	if err := out.Reshape(left.Height, left.Width, cv.disparityRange); err != nil {
		return fmt.Errorf("CostVolume.Process: %w", err)
	}

	parallelFor(left.Height, cv.workers, func(_, lo, hi int) {
		for y := lo; y < hi; y++ {
			cv.processRow(left.Row(y), right.Row(y), out, y)
		}
	})

	return nil
}

func (cv *CostVolume) processRow(lrow, rrow []uint16, out *tensor.Cost, y int) {
	for x, lv := range lrow {
		cell := out.Cell(y, x)
		xr := x - cv.minDisparity
		d := 0
		for ; d < len(cell) && xr >= 0; d, xr = d+1, xr-1 {
			c := cv.cost.CostScaled(lv, rrow[xr])
			if c > MaxCost {
				c = MaxCost
			}
			cell[d] = c
		}
		for ; d < len(cell); d++ {
			cell[d] = MaxCost
		}
	}
}
