// SPDX-License-Identifier: MIT

package sgm

import "errors"

var (
	// ErrShapeMismatch indicates that images or tensors have incompatible shapes.
	ErrShapeMismatch = errors.New("sgm: shape mismatch")

	// ErrDisparityRange indicates a negative minimum disparity or a range
	// outside [1, 255].
	ErrDisparityRange = errors.New("sgm: invalid disparity range")

	// ErrPenalty indicates penalties violating 0 <= P1 <= P2.
	ErrPenalty = errors.New("sgm: penalties must satisfy 0 <= P1 <= P2")

	// ErrPathsConsidered indicates a path count outside [1, 16].
	ErrPathsConsidered = errors.New("sgm: paths considered must be in [1, 16]")

	// ErrBadConfig indicates any other invalid Config field.
	ErrBadConfig = errors.New("sgm: invalid configuration")

	// ErrPyramidMismatch indicates left and right pyramids of different depth.
	ErrPyramidMismatch = errors.New("sgm: pyramid level counts differ")

	// ErrNilImage indicates a nil image, tensor or map argument.
	ErrNilImage = errors.New("sgm: nil input")

	// ErrNotConfigured indicates Process was called before Configure.
	ErrNotConfigured = errors.New("sgm: component not configured")
)
