// SPDX-License-Identifier: MIT

package tensor

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates that a requested shape has a non-positive axis.
	ErrInvalidDimensions = errors.New("tensor: dimensions must be > 0")

	// ErrOutOfRange indicates that a (row, col, d) index lies outside the tensor.
	ErrOutOfRange = errors.New("tensor: index out of range")

	// ErrNilTensor indicates that a nil *Cost was passed where a tensor is required.
	ErrNilTensor = errors.New("tensor: nil tensor")
)

// costErrorf wraps err with the method name and the offending coordinates.
func costErrorf(method string, row, col, d int, err error) error {
	return fmt.Errorf("Cost.%s(%d,%d,%d): %w", method, row, col, d, err)
}
