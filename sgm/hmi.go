// SPDX-License-Identifier: MIT

package sgm

import (
	"fmt"
	"image"

	"github.com/edaniels/golog"
	"github.com/katalvlaran/sgmstereo/gray"
	"github.com/katalvlaran/sgmstereo/mutualinfo"
	"github.com/katalvlaran/sgmstereo/pyramid"
	"github.com/katalvlaran/sgmstereo/speckle"
	"github.com/katalvlaran/sgmstereo/tensor"
)

// StereoHMI computes SGM disparity with a mutual information cost that is
// bootstrapped coarse to fine over an image pyramid.
//
// Per stereo pair:
//  1. build left and right pyramids down to Config.MinWidth;
//  2. seed the model (SeedRandom or SeedDiagonal);
//  3. for every level, coarsest first: cost volume, aggregation, selection
//     with the window (min>>k, ceil(range/2^k));
//  4. below the finest level, refine the model from the level's disparity;
//  5. at the finest level, run ExtraIterations more refine/estimate rounds,
//     the optional speckle filter and the optional sub-pixel pass.
//
// Only the finest disparity map is kept.
type StereoHMI struct {
	cfg         Config
	logger      golog.Logger
	downsampler pyramid.Downsampler
	pixelCost   PixelCost

	model      *mutualinfo.Model
	costVolume *CostVolume
	aggregator *Aggregator
	selector   *Selector
	speckles   *speckle.Filler

	cost      *tensor.Cost
	disparity *image.Gray
	subpixel  *SubpixelMap
	levels    int
}

// NewStereoHMI validates cfg and wires the pipeline components.
func NewStereoHMI(cfg Config, opts ...Option) (*StereoHMI, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("NewStereoHMI: %w", err)
	}

	s := &StereoHMI{
		cfg:         cfg,
		logger:      nopLogger(),
		downsampler: pyramid.DefaultDownsampler(),
		model:       mutualinfo.NewModel(),
		aggregator:  NewAggregator(),
		selector:    NewSelector(),
		speckles:    speckle.NewFiller(speckle.Conn4),
		cost:        &tensor.Cost{},
		disparity:   &image.Gray{},
		subpixel:    &SubpixelMap{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.model.ConfigureHistogram(cfg.MaxIntensity, cfg.IntensityBins); err != nil {
		return nil, fmt.Errorf("NewStereoHMI: %w", err)
	}
	if err := s.model.ConfigureSmoothing(cfg.SmoothingRadius); err != nil {
		return nil, fmt.Errorf("NewStereoHMI: %w", err)
	}
	if err := s.aggregator.SetPathsConsidered(cfg.PathsConsidered); err != nil {
		return nil, fmt.Errorf("NewStereoHMI: %w", err)
	}
	if err := s.aggregator.SetPenalties(cfg.Penalty1, cfg.Penalty2); err != nil {
		return nil, fmt.Errorf("NewStereoHMI: %w", err)
	}
	s.aggregator.SetWorkers(cfg.Workers)
	s.selector.SetRightToLeftTolerance(cfg.RightToLeftTolerance)
	s.selector.SetMaxError(cfg.MaxError)

	cost := s.pixelCost
	if cost == nil {
		cost = s.model
	}
	s.costVolume = NewCostVolume(cost)
	s.costVolume.SetWorkers(cfg.Workers)

	return s, nil
}

// Config returns the configuration in use.
func (s *StereoHMI) Config() Config { return s.cfg }

// Disparity returns the finest disparity map of the last Process call.
// Values are local disparities in [0, DisparityRange) or DisparityRange
// for invalid pixels. The map is reused by the next call.
func (s *StereoHMI) Disparity() *image.Gray { return s.disparity }

// Subpixel returns the sub-pixel map of the last Process call, or nil when
// Config.Subpixel is off.
func (s *StereoHMI) Subpixel() *SubpixelMap {
	if !s.cfg.Subpixel {
		return nil
	}

	return s.subpixel
}

// Model exposes the mutual information model refined by the last call.
func (s *StereoHMI) Model() *mutualinfo.Model { return s.model }

// Levels returns the number of pyramid levels used by the last call.
func (s *StereoHMI) Levels() int { return s.levels }

// InvalidDisparity returns the invalid value of the finest disparity map.
func (s *StereoHMI) InvalidDisparity() int { return s.cfg.DisparityRange }

// levelWindow returns the disparity window at pyramid level k.
func (s *StereoHMI) levelWindow(k int) (int, int) {
	scale := 1 << k

	return s.cfg.DisparityMin >> k, max(1, (s.cfg.DisparityRange+scale-1)/scale)
}

// Process computes the disparity of left relative to right.
//
// Errors: ErrNilImage, ErrShapeMismatch (before any work),
// ErrPyramidMismatch, and anything a downsampler returns.
func (s *StereoHMI) Process(left, right *gray.Plane) error {
	if left == nil || right == nil {
		return fmt.Errorf("StereoHMI.Process: %w", ErrNilImage)
	}
	if !left.SameShape(right) {
		return fmt.Errorf("StereoHMI.Process: left %dx%d, right %dx%d: %w",
			left.Width, left.Height, right.Width, right.Height, ErrShapeMismatch)
	}
	if left.IsSubImage() {
		left = left.Clone()
	}
	if right.IsSubImage() {
		right = right.Clone()
	}

	pl, err := pyramid.Build(left, s.cfg.MinWidth, s.downsampler)
	if err != nil {
		return fmt.Errorf("StereoHMI.Process: left pyramid: %w", err)
	}
	pr, err := pyramid.Build(right, s.cfg.MinWidth, s.downsampler)
	if err != nil {
		return fmt.Errorf("StereoHMI.Process: right pyramid: %w", err)
	}
	if pl.Len() != pr.Len() {
		return fmt.Errorf("StereoHMI.Process: %d vs %d levels: %w", pl.Len(), pr.Len(), ErrPyramidMismatch)
	}
	s.levels = pl.Len()

	if err := s.seed(); err != nil {
		return fmt.Errorf("StereoHMI.Process: %w", err)
	}

	for k := s.levels - 1; k >= 0; k-- {
		lmin, lrange := s.levelWindow(k)
		l, r := pl.Level(k), pr.Level(k)
		if err := s.estimate(l, r, lmin, lrange); err != nil {
			return fmt.Errorf("StereoHMI.Process: level %d: %w", k, err)
		}
		if k > 0 {
			if err := s.refine(l, r, lmin); err != nil {
				return fmt.Errorf("StereoHMI.Process: level %d: %w", k, err)
			}
		}
		s.logLevel(k, l, lrange)
	}

	for i := 0; i < s.cfg.ExtraIterations; i++ {
		if err := s.refine(left, right, s.cfg.DisparityMin); err != nil {
			return fmt.Errorf("StereoHMI.Process: iteration %d: %w", i, err)
		}
		if err := s.estimate(left, right, s.cfg.DisparityMin, s.cfg.DisparityRange); err != nil {
			return fmt.Errorf("StereoHMI.Process: iteration %d: %w", i, err)
		}
		s.logger.Debugw("extra iteration", "iteration", i, "mi", s.model.MutualInformation())
	}

	if s.cfg.SpeckleMaxArea > 0 {
		n, err := s.speckles.Process(s.disparity, s.cfg.SpeckleMaxArea, s.cfg.SpeckleSimilarity, uint8(s.cfg.DisparityRange))
		if err != nil {
			return fmt.Errorf("StereoHMI.Process: %w", err)
		}
		s.logger.Debugw("speckles filled", "pixels", n)
	}

	if s.cfg.Subpixel {
		if err := s.selector.Subpixel(s.aggregator.Aggregated(), s.disparity, s.subpixel); err != nil {
			return fmt.Errorf("StereoHMI.Process: %w", err)
		}
	}

	return nil
}

func (s *StereoHMI) seed() error {
	if s.cfg.SeedMode == SeedDiagonal {
		return s.model.DiagonalHistogram(1, MaxCost)
	}

	return s.model.RandomHistogram(s.cfg.Seed, MaxCost)
}

// estimate runs cost volume, aggregation and selection on one level.
func (s *StereoHMI) estimate(left, right *gray.Plane, minDisparity, disparityRange int) error {
	if err := s.costVolume.Configure(minDisparity, disparityRange); err != nil {
		return err
	}
	if err := s.costVolume.Process(left, right, s.cost); err != nil {
		return err
	}
	if err := s.aggregator.Configure(minDisparity); err != nil {
		return err
	}
	if err := s.aggregator.Process(s.cost); err != nil {
		return err
	}
	if err := s.selector.Configure(minDisparity, disparityRange); err != nil {
		return err
	}

	return s.selector.Select(s.aggregator.Aggregated(), s.disparity)
}

// refine updates the model from the current disparity map.
func (s *StereoHMI) refine(left, right *gray.Plane, minDisparity int) error {
	if err := s.model.Process(left, right, minDisparity, s.disparity, s.selector.InvalidDisparity()); err != nil {
		return err
	}

	return s.model.PrecomputeScaledCost(MaxCost)
}

func (s *StereoHMI) logLevel(k int, l *gray.Plane, lrange int) {
	valid := 0
	for _, v := range s.disparity.Pix {
		if int(v) < lrange {
			valid++
		}
	}
	s.logger.Debugw("level done",
		"level", k,
		"width", l.Width,
		"height", l.Height,
		"range", lrange,
		"valid", valid,
		"samples", s.model.Samples(),
		"mi", s.model.MutualInformation(),
	)
}
