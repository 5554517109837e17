// SPDX-License-Identifier: MIT

package sgm

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/sgmstereo/mutualinfo"
)

// MaxCost is the largest raw matching cost stored in a cost tensor.
const MaxCost = 2047

// MaxDisparityRange is the largest disparity range whose invalid value
// still fits into an 8-bit disparity map.
const MaxDisparityRange = 255

// SeedMode selects how the mutual information model is seeded for the
// coarsest pyramid level.
type SeedMode int

const (
	// SeedRandom fills the cost table with deterministic noise.
	SeedRandom SeedMode = iota

	// SeedDiagonal assumes equal intensities in both images.
	SeedDiagonal
)

// String returns "random" or "diagonal".
func (m SeedMode) String() string {
	switch m {
	case SeedRandom:
		return "random"
	case SeedDiagonal:
		return "diagonal"
	default:
		return fmt.Sprintf("SeedMode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m SeedMode) MarshalText() ([]byte, error) {
	if m != SeedRandom && m != SeedDiagonal {
		return nil, fmt.Errorf("SeedMode.MarshalText(%d): %w", int(m), ErrBadConfig)
	}

	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler; matching is
// case-insensitive.
func (m *SeedMode) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "random":
		*m = SeedRandom
	case "diagonal":
		*m = SeedDiagonal
	default:
		return fmt.Errorf("SeedMode.UnmarshalText(%q): %w", b, ErrBadConfig)
	}

	return nil
}

// Config holds every tunable of the stereo pipeline.
//
// Fields:
//   - DisparityMin, DisparityRange: search window [min, min+range).
//   - Penalty1, Penalty2: smoothness penalties, 0 <= P1 <= P2, and
//     PathsConsidered*(MaxCost+P2) <= 65535 so the aggregated sum of a
//     cell cannot saturate (P2 <= 2048 with 16 paths, 6144 with 8).
//   - PathsConsidered: 1..16 path directions (2, 4, 8, 16 are the usual values).
//   - RightToLeftTolerance: consistency tolerance in pixels; < 0 disables it.
//   - MaxError: aggregated cost >= MaxError is invalid; < 0 disables it.
//   - MinWidth: the pyramid stops before a level narrower than this.
//   - MaxIntensity, IntensityBins: mutual information histogram layout;
//     IntensityBins <= min(MaxIntensity+1, mutualinfo.MaxBins).
//   - SmoothingRadius: Parzen window radius of the entropy estimate.
//   - Seed, SeedMode: seeding of the coarsest level.
//   - ExtraIterations: additional refine/estimate rounds at the finest level.
//   - SpeckleMaxArea, SpeckleSimilarity: regions of at most SpeckleMaxArea
//     pixels whose neighbours differ by <= SpeckleSimilarity are marked
//     invalid in the finest map; 0 area disables the filter.
//   - Subpixel: compute a sub-pixel disparity map.
//   - Workers: goroutines used by the cost volume and the aggregation.
type Config struct {
	DisparityMin         int      `json:"disparityMin"`
	DisparityRange       int      `json:"disparityRange"`
	Penalty1             int      `json:"penalty1"`
	Penalty2             int      `json:"penalty2"`
	PathsConsidered      int      `json:"pathsConsidered"`
	RightToLeftTolerance int      `json:"rightToLeftTolerance"`
	MaxError             int      `json:"maxError"`
	MinWidth             int      `json:"minWidth"`
	MaxIntensity         int      `json:"maxIntensity"`
	IntensityBins        int      `json:"intensityBins"`
	SmoothingRadius      int      `json:"smoothingRadius"`
	Seed                 int64    `json:"seed"`
	SeedMode             SeedMode `json:"seedMode"`
	ExtraIterations      int      `json:"extraIterations"`
	SpeckleMaxArea       int      `json:"speckleMaxArea"`
	SpeckleSimilarity    int      `json:"speckleSimilarity"`
	Subpixel             bool     `json:"subpixel"`
	Workers              int      `json:"workers"`
}

// DefaultConfig returns the defaults for 8-bit images.
func DefaultConfig() Config {
	return Config{
		DisparityMin:         0,
		DisparityRange:       64,
		Penalty1:             1,
		Penalty2:             2,
		PathsConsidered:      8,
		RightToLeftTolerance: 1,
		MaxError:             -1,
		MinWidth:             50,
		MaxIntensity:         255,
		IntensityBins:        256,
		SmoothingRadius:      1,
		Seed:                 0,
		SeedMode:             SeedRandom,
		ExtraIterations:      0,
		SpeckleMaxArea:       0,
		SpeckleSimilarity:    1,
		Subpixel:             false,
		Workers:              1,
	}
}

// Validate checks every field and returns the first violation wrapped in
// one of ErrDisparityRange, ErrPenalty, ErrPathsConsidered or ErrBadConfig.
func (c Config) Validate() error {
	if err := validateDisparity(c.DisparityMin, c.DisparityRange); err != nil {
		return fmt.Errorf("Config.Validate: %w", err)
	}
	if err := validatePenalties(c.Penalty1, c.Penalty2); err != nil {
		return fmt.Errorf("Config.Validate: %w", err)
	}
	if err := validatePaths(c.PathsConsidered); err != nil {
		return fmt.Errorf("Config.Validate: %w", err)
	}
	if err := validateSaturation(c.PathsConsidered, c.Penalty2); err != nil {
		return fmt.Errorf("Config.Validate: %w", err)
	}

	switch {
	case c.MinWidth < 1:
		return fmt.Errorf("Config.Validate: minWidth %d: %w", c.MinWidth, ErrBadConfig)
	case c.MaxIntensity < 1 || c.MaxIntensity > math.MaxUint16:
		return fmt.Errorf("Config.Validate: maxIntensity %d: %w", c.MaxIntensity, ErrBadConfig)
	case c.IntensityBins < 2 || c.IntensityBins > c.MaxIntensity+1 || c.IntensityBins > mutualinfo.MaxBins:
		return fmt.Errorf("Config.Validate: intensityBins %d: %w", c.IntensityBins, ErrBadConfig)
	case c.SmoothingRadius < 0:
		return fmt.Errorf("Config.Validate: smoothingRadius %d: %w", c.SmoothingRadius, ErrBadConfig)
	case c.SeedMode != SeedRandom && c.SeedMode != SeedDiagonal:
		return fmt.Errorf("Config.Validate: seedMode %d: %w", int(c.SeedMode), ErrBadConfig)
	case c.ExtraIterations < 0:
		return fmt.Errorf("Config.Validate: extraIterations %d: %w", c.ExtraIterations, ErrBadConfig)
	case c.SpeckleMaxArea < 0 || c.SpeckleSimilarity < 0:
		return fmt.Errorf("Config.Validate: speckle %d/%d: %w", c.SpeckleMaxArea, c.SpeckleSimilarity, ErrBadConfig)
	case c.Workers < 1:
		return fmt.Errorf("Config.Validate: workers %d: %w", c.Workers, ErrBadConfig)
	}

	return nil
}

func validateDisparity(minDisparity, disparityRange int) error {
	if minDisparity < 0 || disparityRange < 1 || disparityRange > MaxDisparityRange {
		return fmt.Errorf("min %d, range %d: %w", minDisparity, disparityRange, ErrDisparityRange)
	}

	return nil
}

func validatePenalties(p1, p2 int) error {
	if p1 < 0 || p2 < p1 || p2 > math.MaxUint16 {
		return fmt.Errorf("P1 %d, P2 %d: %w", p1, p2, ErrPenalty)
	}

	return nil
}

// validateSaturation rejects P2 values for which the sum of paths path
// costs, each at most MaxCost+p2, could overflow a uint16 cell.
func validateSaturation(paths, p2 int) error {
	if paths*(MaxCost+p2) > math.MaxUint16 {
		return fmt.Errorf("%d paths with P2 %d exceed %d: %w", paths, p2, math.MaxUint16, ErrPenalty)
	}

	return nil
}

func validatePaths(n int) error {
	if n < 1 || n > 16 {
		return fmt.Errorf("%d: %w", n, ErrPathsConsidered)
	}

	return nil
}
