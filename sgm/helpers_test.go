// SPDX-License-Identifier: MIT

package sgm_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/sgmstereo/gray"
	"github.com/katalvlaran/sgmstereo/tensor"
	"github.com/stretchr/testify/require"
)

func newPlane(t testing.TB, w, h int) *gray.Plane {
	t.Helper()
	p, err := gray.NewPlane(w, h)
	require.NoError(t, err)

	return p
}

func noisePlane(t testing.TB, w, h int, seed int64) *gray.Plane {
	t.Helper()
	p := newPlane(t, w, h)
	rng := rand.New(rand.NewSource(seed))
	for i := range p.Pix {
		p.Pix[i] = uint16(rng.Intn(256))
	}

	return p
}

func constPlane(t testing.TB, w, h int, v uint16) *gray.Plane {
	t.Helper()
	p := newPlane(t, w, h)
	for i := range p.Pix {
		p.Pix[i] = v
	}

	return p
}

// shiftedPair returns left noise and a right image with right(x) = left(x+k);
// the k rightmost columns of right are fresh noise.
func shiftedPair(t testing.TB, w, h, k int, seed int64) (*gray.Plane, *gray.Plane) {
	t.Helper()
	left := noisePlane(t, w, h, seed)
	right := noisePlane(t, w, h, seed+1)
	for y := 0; y < h; y++ {
		for x := 0; x+k < w; x++ {
			right.Set(x, y, left.At(x+k, y))
		}
	}

	return left, right
}

func randomCost(t testing.TB, rows, cols, d int, seed int64, maxValue int) *tensor.Cost {
	t.Helper()
	c, err := tensor.NewCost(rows, cols, d)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(seed))
	for i := range c.Data() {
		c.Data()[i] = uint16(rng.Intn(maxValue))
	}

	return c
}

func filledCost(t testing.TB, rows, cols, d int, v uint16) *tensor.Cost {
	t.Helper()
	c, err := tensor.NewCost(rows, cols, d)
	require.NoError(t, err)
	c.Fill(v)

	return c
}
