// SPDX-License-Identifier: MIT

// Package pyramid builds half-resolution image pyramids for the
// coarse-to-fine stereo driver.
//
// Level 0 is the input image. Each further level halves width and height
// (integer division) through a Downsampler until the next level would be
// narrower than the requested minimum width.
//
// Two Downsampler implementations are provided:
//
//	Resize  github.com/nfnt/resize, any of its interpolation functions
//	Draw    golang.org/x/image/draw, any draw.Scaler
//
// DefaultDownsampler returns nearest-neighbor Draw, which samples input
// pixels without averaging them.
package pyramid
