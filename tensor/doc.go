// SPDX-License-Identifier: MIT

// Package tensor provides the 3-D cost volume used by the stereo matchers.
//
// What & Why:
//
//	Semi-global matching scores every pixel against every candidate
//	disparity. The scores form a tensor indexed (row, col, disparity).
//	Cost stores it as one flat uint16 slice with the disparity axis
//	contiguous, so the inner loops of cost construction, path aggregation
//	and winner-take-all selection all walk memory with unit stride.
//
// Layout:
//
//	offset(row, col, d) = (row*cols + col)*disparities + d
//
// Complexity:
//
//	At/Set/Index are O(1). Reshape is O(1) when capacity suffices and
//	O(rows*cols*disparities) otherwise. Fill and Clone are linear.
package tensor
