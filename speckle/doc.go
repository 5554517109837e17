// SPDX-License-Identifier: MIT

// Package speckle removes small isolated regions ("speckles") from
// disparity maps.
//
// A region is a connected set of valid pixels in which neighbouring values
// differ by at most a similarity tolerance. Regions with at most maxArea
// pixels are overwritten with the fill value, which is normally the
// invalid disparity. Fill-valued pixels never join a region.
//
// Connectivity is orthogonal (Conn4) or includes diagonals (Conn8).
//
// Complexity: O(W*H*d) time with d = 4 or 8, O(W*H) memory reused between
// calls.
package speckle
