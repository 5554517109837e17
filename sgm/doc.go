// SPDX-License-Identifier: MIT

// Package sgm implements Semi-Global Matching (SGM) stereo with a
// hierarchical mutual information cost (HMI).
//
// 🚀 Pipeline
//
//	CostVolume  (left, right)      -> raw cost tensor C[y][x][d]
//	Aggregator  C                  -> aggregated S[y][x][d] = Σ_r L_r
//	Selector    S                  -> 8-bit disparity map (+ sub-pixel map)
//	StereoHMI   pyramid, coarse→fine, refining a mutualinfo.Model per level,
//	            then the optional speckle filter on the finest map
//
// Disparities are local: d ∈ [0, DisparityRange) stands for the image
// disparity DisparityMin+d. A left pixel at column x matches the right pixel
// at column x-DisparityMin-d. Columns x < DisparityMin have no candidates
// and are always invalid. The invalid value in the disparity map equals
// DisparityRange, so DisparityRange must be < 256.
//
// ✨ Path aggregation
//
// Each enabled direction r contributes
//
//	L_r(p,d) = C(p,d) + min(L_r(p-r,d), L_r(p-r,d±1)+P1, min_k L_r(p-r,k)+P2) - min_k L_r(p-r,k)
//
// with the first pixel of a path copying C. Directions are enabled in
// groups by PathsConsidered: 1 → (1,0); 2 adds (-1,0); 4 adds the vertical
// pair; 8 the diagonals; 16 the eight knight moves (±1,±2),(±2,±1).
// A pixel starts a path when its predecessor lies outside the image, so
// every pixel lies on exactly one path per direction. Paths of one direction
// are split into blocks and scored in parallel, each worker with its own
// scratch buffer; directions run one after another.
//
// Tensor conventions: raw costs are clamped to MaxCost and cells whose right
// column leaves the image hold MaxCost; the aggregation never reads those
// cells and excludes out-of-range neighbour terms instead. Aggregated sums
// saturate at 65535.
//
// ⚙️ Usage
//
//	cfg := sgm.DefaultConfig()
//	cfg.DisparityRange = 96
//	s, err := sgm.NewStereoHMI(cfg, sgm.WithLogger(logger))
//	if err != nil { ... }
//	if err := s.Process(left, right); err != nil { ... }
//	disparity := s.Disparity() // *image.Gray, invalid == 96
//
// Components are not safe for concurrent Process calls on one instance.
package sgm
