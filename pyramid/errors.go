// SPDX-License-Identifier: MIT

package pyramid

import "errors"

var (
	// ErrNilImage is returned when Build receives a nil source plane.
	ErrNilImage = errors.New("pyramid: nil image")

	// ErrMinWidth is returned for a non-positive minimum width.
	ErrMinWidth = errors.New("pyramid: minimum width must be >= 1")

	// ErrTooSmall is returned when a Downsampler is asked to halve an image
	// narrower or shorter than two pixels.
	ErrTooSmall = errors.New("pyramid: image too small to downsample")

	// ErrNilDownsampler is returned when Build receives a nil Downsampler.
	ErrNilDownsampler = errors.New("pyramid: nil downsampler")
)
