// SPDX-License-Identifier: MIT

package speckle_test

import (
	"image"
	"testing"

	"github.com/katalvlaran/sgmstereo/speckle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const invalid = 64

// grayFromRows builds an image.Gray from row-major values.
func grayFromRows(rows [][]uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		copy(img.Pix[y*img.Stride:], row)
	}

	return img
}

func TestFillerRemovesSmallRegion(t *testing.T) {
	img := grayFromRows([][]uint8{
		{10, 10, 10, 10, 10},
		{10, 40, 40, 10, 10},
		{10, 40, 10, 10, 10},
		{10, 10, 10, 10, 10},
	})
	f := speckle.NewFiller(speckle.Conn4)
	n, err := f.Process(img, 3, 1, invalid)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, f.TotalFilled())

	want := grayFromRows([][]uint8{
		{10, 10, 10, 10, 10},
		{10, invalid, invalid, 10, 10},
		{10, invalid, 10, 10, 10},
		{10, 10, 10, 10, 10},
	})
	assert.Equal(t, want.Pix, img.Pix)
}

func TestFillerToleranceChainsValues(t *testing.T) {
	// A smooth ramp is one region even though its ends differ by 4.
	img := grayFromRows([][]uint8{{1, 2, 3, 4, 5}})
	n, err := speckle.NewFiller(speckle.Conn4).Process(img, 4, 1, invalid)
	require.NoError(t, err)
	assert.Zero(t, n)

	// With tol 0 every pixel is its own region of area 1.
	n, err = speckle.NewFiller(speckle.Conn4).Process(img, 1, 0, invalid)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []uint8{invalid, invalid, invalid, invalid, invalid}, img.Pix)
}

func TestFillerConnectivity(t *testing.T) {
	rows := [][]uint8{
		{20, 0, 0},
		{0, 20, 0},
		{0, 0, 20},
	}
	// Conn4: the three 20s are isolated; the zeros form two regions of 3.
	img := grayFromRows(rows)
	n, err := speckle.NewFiller(speckle.Conn4).Process(img, 1, 0, invalid)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Conn8: the diagonal is one region of 3, the zeros one region of 6.
	img = grayFromRows(rows)
	n, err = speckle.NewFiller(speckle.Conn8).Process(img, 1, 0, invalid)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFillerSkipsInvalidPixels(t *testing.T) {
	img := grayFromRows([][]uint8{
		{invalid, 7, invalid},
		{invalid, invalid, invalid},
	})
	n, err := speckle.NewFiller(speckle.Conn8).Process(img, 1, 100, invalid)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "invalid pixels never join a region")
}

func TestFillerDisabledAndErrors(t *testing.T) {
	img := grayFromRows([][]uint8{{1, 9, 1}})
	f := speckle.NewFiller(speckle.Conn4)

	n, err := f.Process(img, 0, 0, invalid)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, []uint8{1, 9, 1}, img.Pix)

	_, err = f.Process(nil, 1, 1, invalid)
	require.ErrorIs(t, err, speckle.ErrNilImage)
	_, err = f.Process(img, -1, 1, invalid)
	require.ErrorIs(t, err, speckle.ErrBadParameter)
	_, err = f.Process(img, 1, -1, invalid)
	require.ErrorIs(t, err, speckle.ErrBadParameter)
}

func TestFillerSubImage(t *testing.T) {
	base := grayFromRows([][]uint8{
		{5, 5, 5, 5},
		{5, 30, 5, 5},
		{5, 5, 5, 5},
	})
	sub := base.SubImage(image.Rect(1, 1, 3, 3)).(*image.Gray)
	n, err := speckle.NewFiller(speckle.Conn4).Process(sub, 1, 0, invalid)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, uint8(invalid), base.GrayAt(1, 1).Y)
	assert.Equal(t, uint8(5), base.GrayAt(0, 1).Y, "outside the view")
}

func TestFillerReuse(t *testing.T) {
	f := speckle.NewFiller(speckle.Conn4)
	big := grayFromRows([][]uint8{{1, 1, 1, 9}, {1, 1, 1, 1}})
	n, err := f.Process(big, 1, 0, invalid)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	small := grayFromRows([][]uint8{{3, 3}})
	n, err = f.Process(small, 1, 0, invalid)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, f.TotalFilled())
}
