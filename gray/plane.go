// SPDX-License-Identifier: MIT

package gray

import (
	"fmt"
	"image"
	"image/color"
)

// Plane is a row-major single-channel image of uint16 samples.
// Sample (x, y) lives at Pix[Offset + y*Stride + x].
type Plane struct {
	Width, Height int
	Stride        int
	Offset        int
	Pix           []uint16
}

// NewPlane allocates a zeroed, contiguous plane.
// Returns ErrInvalidDimensions when width or height is non-positive.
func NewPlane(width, height int) (*Plane, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("NewPlane(%d,%d): %w", width, height, ErrInvalidDimensions)
	}

	return &Plane{
		Width:  width,
		Height: height,
		Stride: width,
		Pix:    make([]uint16, width*height),
	}, nil
}

// At returns the sample at (x, y). Coordinates are not checked.
func (p *Plane) At(x, y int) uint16 {
	return p.Pix[p.Offset+y*p.Stride+x]
}

// Set writes v at (x, y). Coordinates are not checked.
func (p *Plane) Set(x, y int, v uint16) {
	p.Pix[p.Offset+y*p.Stride+x] = v
}

// Row returns row y as a Width-long sub-slice of Pix.
func (p *Plane) Row(y int) []uint16 {
	i := p.Offset + y*p.Stride

	return p.Pix[i : i+p.Width : i+p.Width]
}

// IsSubImage reports whether p is a view into a larger buffer.
func (p *Plane) IsSubImage() bool {
	return p.Offset != 0 || p.Stride != p.Width
}

// SameShape reports whether p and o have the same width and height.
func (p *Plane) SameShape(o *Plane) bool {
	return p.Width == o.Width && p.Height == o.Height
}

// SubImage returns a view of the rectangle r, which must lie inside p.
// The view shares Pix with p.
func (p *Plane) SubImage(r image.Rectangle) (*Plane, error) {
	if r.Empty() {
		return nil, fmt.Errorf("Plane.SubImage(%v): %w", r, ErrEmptyImage)
	}
	if !r.In(image.Rect(0, 0, p.Width, p.Height)) {
		return nil, fmt.Errorf("Plane.SubImage(%v): %w", r, ErrOutOfRange)
	}

	return &Plane{
		Width:  r.Dx(),
		Height: r.Dy(),
		Stride: p.Stride,
		Offset: p.Offset + r.Min.Y*p.Stride + r.Min.X,
		Pix:    p.Pix,
	}, nil
}

// Clone returns a contiguous deep copy of p, views included.
func (p *Plane) Clone() *Plane {
	out := &Plane{Width: p.Width, Height: p.Height, Stride: p.Width}
	out.Pix = make([]uint16, p.Width*p.Height)
	for y := 0; y < p.Height; y++ {
		copy(out.Pix[y*p.Width:(y+1)*p.Width], p.Row(y))
	}

	return out
}

// MaxValue returns the largest sample in p.
// Complexity: O(Width*Height).
func (p *Plane) MaxValue() uint16 {
	var m uint16
	for y := 0; y < p.Height; y++ {
		for _, v := range p.Row(y) {
			if v > m {
				m = v
			}
		}
	}

	return m
}

// ToGray16 copies p into a new *image.Gray16 anchored at the origin.
func (p *Plane) ToGray16() *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, p.Width, p.Height))
	for y := 0; y < p.Height; y++ {
		for x, v := range p.Row(y) {
			img.SetGray16(x, y, color.Gray16{Y: v})
		}
	}

	return img
}
