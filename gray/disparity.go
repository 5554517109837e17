// SPDX-License-Identifier: MIT

package gray

import "image"

// NewDisparity allocates a zeroed disparity map of the given size.
func NewDisparity(width, height int) *image.Gray {
	return image.NewGray(image.Rect(0, 0, width, height))
}

// ReshapeGray resizes img to width×height anchored at the origin, reusing
// its buffer when the capacity suffices. A nil img allocates a new map.
// Pixel contents are unspecified afterwards.
func ReshapeGray(img *image.Gray, width, height int) *image.Gray {
	if img == nil {
		return NewDisparity(width, height)
	}
	n := width * height
	if cap(img.Pix) < n {
		img.Pix = make([]uint8, n)
	} else {
		img.Pix = img.Pix[:n]
	}
	img.Stride = width
	img.Rect = image.Rect(0, 0, width, height)

	return img
}

// IsSubGray reports whether img is a view with a non-zero origin or a
// stride wider than its width.
func IsSubGray(img *image.Gray) bool {
	return img.Rect.Min != (image.Point{}) || img.Stride != img.Rect.Dx()
}
