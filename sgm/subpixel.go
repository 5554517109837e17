// SPDX-License-Identifier: MIT

package sgm

import (
	"fmt"
	"image"

	"github.com/katalvlaran/sgmstereo/tensor"
)

// SubpixelMap holds float disparities, row-major, Width*Height values.
// Invalid pixels hold the selector's invalid value.
type SubpixelMap struct {
	Width, Height int
	Pix           []float32
}

// At returns the value at (x, y). Coordinates are not checked.
func (m *SubpixelMap) At(x, y int) float32 { return m.Pix[y*m.Width+x] }

func (m *SubpixelMap) reshape(width, height int) {
	n := width * height
	if cap(m.Pix) < n {
		m.Pix = make([]float32, n)
	}
	m.Pix = m.Pix[:n]
	m.Width, m.Height = width, height
}

// Subpixel refines disparity with a parabola through the aggregated costs
// at d-1, d, d+1:
//
//	d' = d + (c₋ - c₊) / (2(c₋ - 2c₀ + c₊))
//
// The offset is clamped to [-1, 1]. The integer value is kept when d is at
// either end of the local range, when the fit is flat or concave, and when
// d' leaves [0, localRange-1).
func (s *Selector) Subpixel(aggregated *tensor.Cost, disparity *image.Gray, out *SubpixelMap) error {
	if err := s.check(aggregated, disparity); err != nil {
		return fmt.Errorf("Selector.Subpixel: %w", err)
	}
	if out == nil {
		return fmt.Errorf("Selector.Subpixel: %w", ErrNilImage)
	}
	cols, rows := aggregated.Cols(), aggregated.Rows()
	if disparity.Rect.Dx() != cols || disparity.Rect.Dy() != rows {
		return fmt.Errorf("Selector.Subpixel: disparity %v, tensor %dx%d: %w",
			disparity.Rect.Size(), cols, rows, ErrShapeMismatch)
	}
	out.reshape(cols, rows)

	invalid := s.disparityRange
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			d := int(disparity.GrayAt(disparity.Rect.Min.X+x, disparity.Rect.Min.Y+y).Y)
			i := y*cols + x
			if d >= invalid || x < s.minDisparity {
				out.Pix[i] = float32(invalid)
				continue
			}
			out.Pix[i] = refine(aggregated.Cell(y, x), d, s.localRange(x))
		}
	}

	return nil
}

func refine(cell []uint16, d, localRange int) float32 {
	if d <= 0 || d >= localRange-1 {
		return float32(d)
	}
	cm, c0, cp := float64(cell[d-1]), float64(cell[d]), float64(cell[d+1])
	den := 2 * (cm - 2*c0 + cp)
	if den <= 0 {
		return float32(d)
	}
	off := (cm - cp) / den
	off = max(-1, min(1, off))
	v := float64(d) + off
	if v < 0 || v >= float64(localRange-1) {
		return float32(d)
	}

	return float32(v)
}
