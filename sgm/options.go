// SPDX-License-Identifier: MIT

package sgm

import (
	"github.com/edaniels/golog"
	"github.com/katalvlaran/sgmstereo/pyramid"
	"go.uber.org/zap"
)

// Option customizes a StereoHMI. Options panic only on nil arguments.
type Option func(*StereoHMI)

const (
	panicNilLogger      = "sgm: WithLogger: logger must not be nil"
	panicNilDownsampler = "sgm: WithDownsampler: downsampler must not be nil"
	panicNilPixelCost   = "sgm: WithPixelCost: cost must not be nil"
)

// WithLogger sets the logger used for per-level progress (Debug level).
// The default logger discards everything.
func WithLogger(logger golog.Logger) Option {
	if logger == nil {
		panic(panicNilLogger)
	}

	return func(s *StereoHMI) { s.logger = logger }
}

// WithDownsampler replaces the pyramid downsampler
// (default: pyramid.DefaultDownsampler()).
func WithDownsampler(ds pyramid.Downsampler) Option {
	if ds == nil {
		panic(panicNilDownsampler)
	}

	return func(s *StereoHMI) { s.downsampler = ds }
}

// WithPixelCost makes the cost volume use cost instead of the mutual
// information model. The model is still refined at every level, so
// Model() keeps reporting its statistics.
func WithPixelCost(cost PixelCost) Option {
	if cost == nil {
		panic(panicNilPixelCost)
	}

	return func(s *StereoHMI) { s.pixelCost = cost }
}

func nopLogger() golog.Logger {
	return zap.NewNop().Sugar()
}
