// SPDX-License-Identifier: MIT

package pyramid

import (
	"fmt"
	"image"

	"github.com/katalvlaran/sgmstereo/gray"
	"github.com/nfnt/resize"
	xdraw "golang.org/x/image/draw"
)

// Downsampler produces a half-resolution copy of a plane.
// The result must be (src.Width/2) × (src.Height/2) and contiguous.
type Downsampler interface {
	Downsample(src *gray.Plane) (*gray.Plane, error)
}

// Resize halves planes with github.com/nfnt/resize.
type Resize struct {
	Interp resize.InterpolationFunction
}

// Downsample implements Downsampler.
func (r Resize) Downsample(src *gray.Plane) (*gray.Plane, error) {
	w, h, err := halfSize(src)
	if err != nil {
		return nil, fmt.Errorf("Resize.Downsample: %w", err)
	}
	out := resize.Resize(uint(w), uint(h), src.ToGray16(), r.Interp)

	return fromScaled(out, w, h)
}

// Draw halves planes with a golang.org/x/image/draw Scaler.
type Draw struct {
	Scaler xdraw.Scaler
}

// Downsample implements Downsampler. A nil Scaler means nearest neighbor.
func (d Draw) Downsample(src *gray.Plane) (*gray.Plane, error) {
	w, h, err := halfSize(src)
	if err != nil {
		return nil, fmt.Errorf("Draw.Downsample: %w", err)
	}
	s := d.Scaler
	if s == nil {
		s = xdraw.NearestNeighbor
	}
	in := src.ToGray16()
	dst := image.NewGray16(image.Rect(0, 0, w, h))
	s.Scale(dst, dst.Bounds(), in, in.Bounds(), xdraw.Src, nil)

	return fromScaled(dst, w, h)
}

// DefaultDownsampler returns Draw with x/image nearest neighbor, which
// keeps source pixel (2x+1, 2y+1) for an even source size. Coarse levels
// then hold the same intensity distribution as the input.
//
// nfnt's resize.NearestNeighbor is not a substitute: at 2x it averages
// pairs of taps.
func DefaultDownsampler() Downsampler {
	return Draw{}
}

func halfSize(src *gray.Plane) (int, int, error) {
	if src == nil {
		return 0, 0, ErrNilImage
	}
	if src.Width < 2 || src.Height < 2 {
		return 0, 0, ErrTooSmall
	}

	return src.Width / 2, src.Height / 2, nil
}

func fromScaled(img image.Image, w, h int) (*gray.Plane, error) {
	p, err := gray.FromImage(img)
	if err != nil {
		return nil, err
	}
	if p.Width != w || p.Height != h {
		return nil, fmt.Errorf("pyramid: scaler produced %dx%d, want %dx%d", p.Width, p.Height, w, h)
	}

	return p, nil
}
