// SPDX-License-Identifier: MIT

// Package sgmstereo computes dense disparity maps from rectified stereo
// pairs with Semi-Global Matching and a hierarchical mutual information
// matching cost.
//
// What is in the module?
//
//	• Cost tensors: (rows × cols × disparities) uint16 volumes
//	• Gray planes: 16-bit images with sub-image views
//	• Pyramids: repeated half-resolution downsampling
//	• Mutual information: Parzen-smoothed entropy cost tables
//	• SGM: cost volume, multi-path aggregation, WTA selection,
//	  left-right check and sub-pixel refinement
//
// Layout:
//
//	tensor/      Cost, the 3-D cost container
//	gray/        Plane, image conversion, disparity maps
//	pyramid/     Downsampler implementations and Build
//	mutualinfo/  Model: histogram, entropy and scaled cost table
//	sgm/         CostVolume, Aggregator, Selector, StereoHMI, Config
//	cmd/sgmstereo  command line front end
//
// Quick example:
//
//	s, err := sgm.NewStereoHMI(sgm.DefaultConfig())
//	if err != nil { ... }
//	if err := s.Process(left, right); err != nil { ... }
//	disparity := s.Disparity() // value == range means invalid
//
//	go install github.com/katalvlaran/sgmstereo/cmd/sgmstereo@latest
package sgmstereo
