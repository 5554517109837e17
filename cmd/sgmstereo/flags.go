// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/katalvlaran/sgmstereo/sgm"
)

var errUsage = errors.New("usage: sgmstereo -left <image> -right <image> [-out disparity.png] [flags]")

// options is the parsed command line.
type options struct {
	left        string
	right       string
	out         string
	subpixelOut string
	configPath  string
	downsampler string
	stretch     bool
	debug       bool

	cfg sgm.Config
}

// configFlags maps a flag name to the copy of its value into a config.
var configFlags = map[string]func(dst, src *sgm.Config){
	"min":              func(d, s *sgm.Config) { d.DisparityMin = s.DisparityMin },
	"range":            func(d, s *sgm.Config) { d.DisparityRange = s.DisparityRange },
	"p1":               func(d, s *sgm.Config) { d.Penalty1 = s.Penalty1 },
	"p2":               func(d, s *sgm.Config) { d.Penalty2 = s.Penalty2 },
	"paths":            func(d, s *sgm.Config) { d.PathsConsidered = s.PathsConsidered },
	"tolerance":        func(d, s *sgm.Config) { d.RightToLeftTolerance = s.RightToLeftTolerance },
	"max-error":        func(d, s *sgm.Config) { d.MaxError = s.MaxError },
	"min-width":        func(d, s *sgm.Config) { d.MinWidth = s.MinWidth },
	"max-intensity":    func(d, s *sgm.Config) { d.MaxIntensity = s.MaxIntensity },
	"bins":             func(d, s *sgm.Config) { d.IntensityBins = s.IntensityBins },
	"smoothing":        func(d, s *sgm.Config) { d.SmoothingRadius = s.SmoothingRadius },
	"seed":             func(d, s *sgm.Config) { d.Seed = s.Seed },
	"seed-mode":        func(d, s *sgm.Config) { d.SeedMode = s.SeedMode },
	"extra-iterations": func(d, s *sgm.Config) { d.ExtraIterations = s.ExtraIterations },
	"speckle-area":     func(d, s *sgm.Config) { d.SpeckleMaxArea = s.SpeckleMaxArea },
	"speckle-sim":      func(d, s *sgm.Config) { d.SpeckleSimilarity = s.SpeckleSimilarity },
	"subpixel":         func(d, s *sgm.Config) { d.Subpixel = s.Subpixel },
	"workers":          func(d, s *sgm.Config) { d.Workers = s.Workers },
}

// parseFlags builds options from args. Precedence, lowest first: defaults,
// the -config JSON file, explicitly set flags.
func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("sgmstereo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.StringVar(&o.left, "left", "", "left rectified image (PNG/JPEG/BMP/TIFF/WEBP)")
	fs.StringVar(&o.right, "right", "", "right rectified image")
	fs.StringVar(&o.out, "out", "disparity.png", "output 8-bit disparity PNG")
	fs.StringVar(&o.subpixelOut, "subpixel-out", "", "optional 16-bit PNG of disparity*256 (enables -subpixel)")
	fs.StringVar(&o.configPath, "config", "", "JSON config file; explicit flags override it")
	fs.StringVar(&o.downsampler, "downsampler", "nearest", "pyramid downsampler: nearest|resize|bilinear|draw")
	fs.BoolVar(&o.stretch, "stretch", false, "stretch valid disparities to 0..255 in -out; invalid pixels become 0")
	fs.BoolVar(&o.debug, "debug", false, "log every pyramid level")

	def := sgm.DefaultConfig()
	def.Workers = runtime.GOMAXPROCS(0)
	f := def
	fs.IntVar(&f.DisparityMin, "min", def.DisparityMin, "minimum disparity")
	fs.IntVar(&f.DisparityRange, "range", def.DisparityRange, "number of disparities searched (1..255)")
	fs.IntVar(&f.Penalty1, "p1", def.Penalty1, "penalty for a disparity change of one")
	fs.IntVar(&f.Penalty2, "p2", def.Penalty2, "penalty for larger disparity changes")
	fs.IntVar(&f.PathsConsidered, "paths", def.PathsConsidered, "aggregation paths (1..16)")
	fs.IntVar(&f.RightToLeftTolerance, "tolerance", def.RightToLeftTolerance, "left-right consistency tolerance; <0 disables")
	fs.IntVar(&f.MaxError, "max-error", def.MaxError, "aggregated cost rejection threshold; <0 disables")
	fs.IntVar(&f.MinWidth, "min-width", def.MinWidth, "narrowest pyramid level")
	fs.IntVar(&f.MaxIntensity, "max-intensity", def.MaxIntensity, "largest input intensity")
	fs.IntVar(&f.IntensityBins, "bins", def.IntensityBins, "mutual information histogram bins")
	fs.IntVar(&f.SmoothingRadius, "smoothing", def.SmoothingRadius, "entropy smoothing radius")
	fs.Int64Var(&f.Seed, "seed", def.Seed, "seed of the random initial cost")
	fs.TextVar(&f.SeedMode, "seed-mode", def.SeedMode, "initial cost: random|diagonal")
	fs.IntVar(&f.ExtraIterations, "extra-iterations", def.ExtraIterations, "refinement rounds at full resolution")
	fs.IntVar(&f.SpeckleMaxArea, "speckle-area", def.SpeckleMaxArea, "invalidate regions of at most this many pixels; 0 disables")
	fs.IntVar(&f.SpeckleSimilarity, "speckle-sim", def.SpeckleSimilarity, "disparity difference joining a speckle region")
	fs.BoolVar(&f.Subpixel, "subpixel", def.Subpixel, "compute sub-pixel disparity")
	fs.IntVar(&f.Workers, "workers", def.Workers, "worker goroutines")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if o.left == "" || o.right == "" {
		fs.Usage()
		return nil, errUsage
	}

	o.cfg = def
	if o.configPath != "" {
		if err := loadConfig(o.configPath, &o.cfg); err != nil {
			return nil, err
		}
	}
	fs.Visit(func(fl *flag.Flag) {
		if apply, ok := configFlags[fl.Name]; ok {
			apply(&o.cfg, &f)
		}
	})
	if o.subpixelOut != "" {
		o.cfg.Subpixel = true
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}

	return o, nil
}

// loadConfig decodes a JSON config file over cfg. Unknown keys are errors.
func loadConfig(path string, cfg *sgm.Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}

	return nil
}
