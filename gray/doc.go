// SPDX-License-Identifier: MIT

// Package gray holds the image-side value types of sgmstereo.
//
// Plane is a single-channel intensity image with uint16 samples. Both 8-bit
// and 16-bit sources fit into it, so the rest of the pipeline works on one
// sample type. A Plane may be a view into a larger Plane (SubImage); views
// share storage with their parent and report IsSubImage() == true.
//
// Disparity maps are plain *image.Gray values. The helpers in disparity.go
// reshape them in place and detect views, because the mutual information
// estimator requires contiguous buffers.
//
// Conversion:
//
//	*image.Gray    copied row by row, values 0..255
//	*image.Gray16  copied row by row, values 0..65535
//	anything else  drawn onto an *image.Gray with x/image/draw (8-bit luma)
package gray
