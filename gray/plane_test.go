// SPDX-License-Identifier: MIT

package gray_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/katalvlaran/sgmstereo/gray"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlaneInvalid(t *testing.T) {
	_, err := gray.NewPlane(0, 3)
	require.ErrorIs(t, err, gray.ErrInvalidDimensions)
	_, err = gray.NewPlane(3, -1)
	require.ErrorIs(t, err, gray.ErrInvalidDimensions)
}

func TestPlaneSubImageSharesStorage(t *testing.T) {
	p, err := gray.NewPlane(4, 3)
	require.NoError(t, err)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			p.Set(x, y, uint16(y*10+x))
		}
	}
	assert.False(t, p.IsSubImage())

	v, err := p.SubImage(image.Rect(1, 1, 3, 3))
	require.NoError(t, err)
	assert.True(t, v.IsSubImage())
	assert.Equal(t, 2, v.Width)
	assert.Equal(t, 2, v.Height)
	assert.Equal(t, uint16(11), v.At(0, 0))
	assert.Equal(t, []uint16{21, 22}, v.Row(1))

	v.Set(0, 0, 99)
	assert.Equal(t, uint16(99), p.At(1, 1))

	c := v.Clone()
	assert.False(t, c.IsSubImage())
	assert.Equal(t, []uint16{99, 12, 21, 22}, c.Pix)
}

func TestPlaneSubImageErrors(t *testing.T) {
	p, err := gray.NewPlane(4, 4)
	require.NoError(t, err)

	_, err = p.SubImage(image.Rect(2, 2, 2, 3))
	require.ErrorIs(t, err, gray.ErrEmptyImage)
	_, err = p.SubImage(image.Rect(2, 2, 5, 3))
	require.ErrorIs(t, err, gray.ErrOutOfRange)
}

func TestPlaneMaxValueAndToGray16(t *testing.T) {
	p, err := gray.NewPlane(2, 2)
	require.NoError(t, err)
	p.Set(1, 1, 4000)
	p.Set(0, 1, 7)

	assert.Equal(t, uint16(4000), p.MaxValue())
	g := p.ToGray16()
	assert.Equal(t, color.Gray16{Y: 4000}, g.Gray16At(1, 1))
	assert.Equal(t, color.Gray16{Y: 7}, g.Gray16At(0, 1))
}

func TestFromImageGray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 2))
	src.SetGray(2, 1, color.Gray{Y: 200})

	p, err := gray.FromImage(src)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Width)
	assert.Equal(t, 2, p.Height)
	assert.Equal(t, uint16(200), p.At(2, 1))
	assert.False(t, p.IsSubImage())
}

func TestFromImageGraySubImage(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 5, 5))
	src.SetGray(3, 2, color.Gray{Y: 77})
	sub := src.SubImage(image.Rect(2, 1, 5, 4)).(*image.Gray)

	p, err := gray.FromImage(sub)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Width)
	assert.Equal(t, uint16(77), p.At(1, 1))
}

func TestFromImageGray16(t *testing.T) {
	src := image.NewGray16(image.Rect(0, 0, 2, 2))
	src.SetGray16(1, 0, color.Gray16{Y: 0x1234})

	p, err := gray.FromImage(src)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), p.At(1, 0))
}

func TestFromImageRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	src.Set(1, 0, color.RGBA{A: 255})

	p, err := gray.FromImage(src)
	require.NoError(t, err)
	assert.Equal(t, uint16(255), p.At(0, 0))
	assert.Equal(t, uint16(0), p.At(1, 0))
}

func TestFromImageErrors(t *testing.T) {
	_, err := gray.FromImage(nil)
	require.ErrorIs(t, err, gray.ErrNilImage)
	_, err = gray.FromImage(image.NewGray(image.Rect(0, 0, 0, 4)))
	require.ErrorIs(t, err, gray.ErrEmptyImage)
}

func TestReshapeGray(t *testing.T) {
	d := gray.NewDisparity(8, 8)
	before := &d.Pix[0]

	d = gray.ReshapeGray(d, 4, 2)
	assert.Equal(t, image.Rect(0, 0, 4, 2), d.Bounds())
	assert.Equal(t, 4, d.Stride)
	assert.Len(t, d.Pix, 8)
	assert.Same(t, before, &d.Pix[0])
	assert.False(t, gray.IsSubGray(d))

	d = gray.ReshapeGray(nil, 3, 3)
	assert.Len(t, d.Pix, 9)
}

func TestIsSubGray(t *testing.T) {
	d := gray.NewDisparity(6, 6)
	assert.False(t, gray.IsSubGray(d))
	assert.True(t, gray.IsSubGray(d.SubImage(image.Rect(0, 0, 3, 6)).(*image.Gray)))
	assert.True(t, gray.IsSubGray(d.SubImage(image.Rect(1, 1, 6, 6)).(*image.Gray)))
}
