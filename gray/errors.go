// SPDX-License-Identifier: MIT

package gray

import "errors"

var (
	// ErrEmptyImage is returned when a source image has no pixels.
	ErrEmptyImage = errors.New("gray: empty image")

	// ErrInvalidDimensions is returned for non-positive width or height.
	ErrInvalidDimensions = errors.New("gray: invalid dimensions")

	// ErrOutOfRange indicates a coordinate or rectangle outside the plane.
	ErrOutOfRange = errors.New("gray: index out of range")

	// ErrNilImage indicates a nil image argument.
	ErrNilImage = errors.New("gray: nil image")
)
