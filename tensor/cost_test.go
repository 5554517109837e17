// SPDX-License-Identifier: MIT

// Package tensor_test contains unit tests for the Cost tensor.
package tensor_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/sgmstereo/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewCostInvalidDimensions ensures NewCost rejects non-positive axes.
func TestNewCostInvalidDimensions(t *testing.T) {
	_, err := tensor.NewCost(0, 4, 4)
	require.ErrorIs(t, err, tensor.ErrInvalidDimensions)

	_, err = tensor.NewCost(4, 0, 4)
	require.ErrorIs(t, err, tensor.ErrInvalidDimensions)

	_, err = tensor.NewCost(4, 4, -1)
	require.ErrorIs(t, err, tensor.ErrInvalidDimensions)
}

// TestCostShape verifies the accessors report the requested shape.
func TestCostShape(t *testing.T) {
	c, err := tensor.NewCost(3, 5, 7)
	require.NoError(t, err)

	assert.Equal(t, 3, c.Rows())
	assert.Equal(t, 5, c.Cols())
	assert.Equal(t, 7, c.Disparities())
	assert.Len(t, c.Data(), 3*5*7)
}

// TestCostLayoutIsDisparityContiguous checks the documented index formula.
func TestCostLayoutIsDisparityContiguous(t *testing.T) {
	c, err := tensor.NewCost(2, 3, 4)
	require.NoError(t, err)

	assert.Equal(t, 0, c.Index(0, 0, 0))
	assert.Equal(t, 1, c.Index(0, 0, 1))
	assert.Equal(t, 4, c.Index(0, 1, 0))
	assert.Equal(t, 12, c.Index(1, 0, 0))

	require.NoError(t, c.Set(1, 2, 3, 99))
	assert.Equal(t, uint16(99), c.Data()[c.Index(1, 2, 3)])
	assert.Equal(t, uint16(99), c.Cell(1, 2)[3])
}

// TestCostAtSetOutOfRange ensures At/Set return ErrOutOfRange rather than panicking.
func TestCostAtSetOutOfRange(t *testing.T) {
	c, err := tensor.NewCost(2, 2, 2)
	require.NoError(t, err)

	_, err = c.At(-1, 0, 0)
	require.ErrorIs(t, err, tensor.ErrOutOfRange)
	_, err = c.At(0, 2, 0)
	require.ErrorIs(t, err, tensor.ErrOutOfRange)
	err = c.Set(0, 0, 2, 1)
	require.ErrorIs(t, err, tensor.ErrOutOfRange)
}

// TestCostReshapeReusesCapacity verifies that shrinking keeps the backing array.
func TestCostReshapeReusesCapacity(t *testing.T) {
	c, err := tensor.NewCost(4, 4, 4)
	require.NoError(t, err)
	before := &c.Data()[0]

	require.NoError(t, c.Reshape(2, 3, 4))
	assert.Equal(t, 2, c.Rows())
	assert.Equal(t, 3, c.Cols())
	assert.Len(t, c.Data(), 24)
	assert.Same(t, before, &c.Data()[0], "smaller shape must reuse storage")

	require.NoError(t, c.Reshape(8, 8, 8))
	assert.Len(t, c.Data(), 512)

	require.ErrorIs(t, c.Reshape(1, 0, 1), tensor.ErrInvalidDimensions)
}

// TestCostZeroValueReshape verifies the zero value becomes usable after Reshape.
func TestCostZeroValueReshape(t *testing.T) {
	var c tensor.Cost
	require.NoError(t, c.Reshape(1, 2, 3))
	c.Fill(7)
	for _, v := range c.Data() {
		assert.Equal(t, uint16(7), v)
	}
	c.Fill(0)
	for _, v := range c.Data() {
		assert.Zero(t, v)
	}
}

// TestCostCloneEqual verifies Clone independence and Equal semantics.
func TestCostCloneEqual(t *testing.T) {
	c, err := tensor.NewCost(2, 2, 3)
	require.NoError(t, err)
	require.NoError(t, c.Set(1, 1, 2, 42))

	cp := c.Clone()
	assert.True(t, c.Equal(cp))

	require.NoError(t, cp.Set(0, 0, 0, 1))
	assert.False(t, c.Equal(cp))

	other, err := tensor.NewCost(2, 3, 2)
	require.NoError(t, err)
	assert.False(t, c.Equal(other), "different shapes are never equal")
}

// TestCostAddSaturating verifies saturation at the uint16 ceiling.
func TestCostAddSaturating(t *testing.T) {
	c, err := tensor.NewCost(1, 1, 2)
	require.NoError(t, err)

	c.AddSaturating(0, 100)
	c.AddSaturating(0, 23)
	assert.Equal(t, uint16(123), c.Data()[0])

	c.AddSaturating(1, math.MaxUint16-5)
	c.AddSaturating(1, 100)
	assert.Equal(t, uint16(math.MaxUint16), c.Data()[1])
}

// TestCostString checks the debug output lists every cell.
func TestCostString(t *testing.T) {
	c, err := tensor.NewCost(1, 2, 2)
	require.NoError(t, err)
	require.NoError(t, c.Set(0, 1, 1, 5))

	assert.Equal(t, "(0,0) [0 0]\n(0,1) [0 5]\n", c.String())
}
