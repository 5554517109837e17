// SPDX-License-Identifier: MIT

// Package mutualinfo estimates a mutual information matching cost from a
// stereo pair and a disparity estimate.
//
// A Model owns a joint intensity histogram and three entropy tables derived
// from it (joint, left marginal, right marginal). The cost of matching a
// left intensity L with a right intensity R is the negative pointwise mutual
// information
//
//	cost(L, R) = hJ[L,R] - hL[L] - hR[R]
//
// where every h is a Parzen-smoothed, log-probability table scaled by -1/n
// (n = number of valid correspondences). Low cost means the pair co-occurs
// often, which makes the cost robust to radiometric differences between
// the two cameras.
//
// Lifecycle for one stereo pair:
//
//  1. ConfigureHistogram / ConfigureSmoothing (optional; defaults 255/256, radius 1)
//  2. RandomHistogram or DiagonalHistogram     seeds the lookup table once
//  3. per pyramid level, coarse to fine:
//     CostScaled is read by the cost volume builder,
//     then Process + PrecomputeScaledCost refine the tables.
//
// The tables are never reset in the middle of a pyramid sweep. A Model is
// not safe for concurrent mutation; concurrent CostScaled reads are fine.
//
// gonum/floats performs the vector scaling and range search, gonum/stat the
// Shannon mutual information diagnostic.
package mutualinfo
