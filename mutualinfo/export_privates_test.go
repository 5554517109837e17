// SPDX-License-Identifier: MIT

package mutualinfo

// White-box bridge for mutualinfo_test.
var (
	ExportedGaussianKernel = gaussianKernel
	ExportedBlur1D         = blur1D
	ExportedBlur2D         = blur2D
)
