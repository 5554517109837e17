// SPDX-License-Identifier: MIT

package speckle

import "errors"

var (
	// ErrNilImage indicates a nil disparity map.
	ErrNilImage = errors.New("speckle: nil image")
	// ErrBadParameter indicates a negative area or tolerance.
	ErrBadParameter = errors.New("speckle: maxArea and tolerance must be >= 0")
)
