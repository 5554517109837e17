// SPDX-License-Identifier: MIT

package mutualinfo

import "errors"

var (
	// ErrShapeMismatch is returned when left, right and disparity differ in size.
	ErrShapeMismatch = errors.New("mutualinfo: image shapes differ")

	// ErrSubImage is returned when an input is a view into a larger buffer.
	ErrSubImage = errors.New("mutualinfo: sub-images are not supported")

	// ErrNilImage is returned for nil image arguments.
	ErrNilImage = errors.New("mutualinfo: nil image")

	// ErrHistogramConfig is returned for an invalid intensity range or bin count.
	ErrHistogramConfig = errors.New("mutualinfo: invalid histogram configuration")

	// ErrSmoothingRadius is returned for a negative smoothing radius.
	ErrSmoothingRadius = errors.New("mutualinfo: smoothing radius must be >= 0")

	// ErrMaxCost is returned when maxCost is outside [1, 65535].
	ErrMaxCost = errors.New("mutualinfo: maxCost must be in [1, 65535]")
)
