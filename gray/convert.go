// SPDX-License-Identifier: MIT

package gray

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// FromImage converts img into a contiguous Plane anchored at (0, 0).
//
// Implementation:
//   - Stage 1: reject nil and empty images.
//   - Stage 2: copy *image.Gray and *image.Gray16 sample by sample.
//   - Stage 3: draw every other image type onto an *image.Gray first.
//
// Complexity: O(W*H).
func FromImage(img image.Image) (*Plane, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyImage
	}
	w, h := b.Dx(), b.Dy()

	p, err := NewPlane(w, h)
	if err != nil {
		return nil, err
	}

	switch src := img.(type) {
	case *image.Gray:
		copyGray(p, src)
	case *image.Gray16:
		copyGray16(p, src)
	default:
		g := image.NewGray(image.Rect(0, 0, w, h))
		xdraw.Draw(g, g.Bounds(), img, b.Min, xdraw.Src)
		copyGray(p, g)
	}

	return p, nil
}

func copyGray(dst *Plane, src *image.Gray) {
	b := src.Bounds()
	for y := 0; y < dst.Height; y++ {
		i := src.PixOffset(b.Min.X, b.Min.Y+y)
		row := dst.Row(y)
		for x := range row {
			row[x] = uint16(src.Pix[i+x])
		}
	}
}

func copyGray16(dst *Plane, src *image.Gray16) {
	b := src.Bounds()
	for y := 0; y < dst.Height; y++ {
		i := src.PixOffset(b.Min.X, b.Min.Y+y)
		row := dst.Row(y)
		for x := range row {
			row[x] = uint16(src.Pix[i+2*x])<<8 | uint16(src.Pix[i+2*x+1])
		}
	}
}
