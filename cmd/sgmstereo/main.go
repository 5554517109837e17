// SPDX-License-Identifier: MIT

// Command sgmstereo computes a disparity map from a rectified stereo pair
// with hierarchical mutual information SGM.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"
	"os"
	"time"

	"github.com/edaniels/golog"
	"github.com/katalvlaran/sgmstereo/gray"
	"github.com/katalvlaran/sgmstereo/pyramid"
	"github.com/katalvlaran/sgmstereo/sgm"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

func main() {
	o, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := golog.NewDevelopmentLogger("sgmstereo")
	if o.debug {
		logger = golog.NewDebugLogger("sgmstereo")
	}
	if err := run(o, logger); err != nil {
		logger.Errorw("sgmstereo failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(o *options, logger golog.Logger) error {
	left, err := loadPlane(o.left, o.cfg.MaxIntensity)
	if err != nil {
		return fmt.Errorf("left image: %w", err)
	}
	right, err := loadPlane(o.right, o.cfg.MaxIntensity)
	if err != nil {
		return fmt.Errorf("right image: %w", err)
	}
	ds, err := downsamplerByName(o.downsampler)
	if err != nil {
		return err
	}

	s, err := sgm.NewStereoHMI(o.cfg, sgm.WithLogger(logger), sgm.WithDownsampler(ds))
	if err != nil {
		return err
	}
	start := time.Now()
	if err := s.Process(left, right); err != nil {
		return err
	}
	logger.Infow("disparity computed",
		"width", left.Width,
		"height", left.Height,
		"levels", s.Levels(),
		"mi", s.Model().MutualInformation(),
		"elapsed", time.Since(start),
	)

	disp := s.Disparity()
	if o.stretch {
		disp = stretch(disp, s.InvalidDisparity())
	}
	if err := savePNG(o.out, disp); err != nil {
		return fmt.Errorf("write %s: %w", o.out, err)
	}
	if o.subpixelOut != "" {
		if err := savePNG(o.subpixelOut, subpixelImage(s.Subpixel())); err != nil {
			return fmt.Errorf("write %s: %w", o.subpixelOut, err)
		}
	}

	return nil
}

func downsamplerByName(name string) (pyramid.Downsampler, error) {
	switch name {
	case "nearest":
		return pyramid.DefaultDownsampler(), nil
	case "resize":
		return pyramid.Resize{Interp: resize.NearestNeighbor}, nil
	case "bilinear":
		return pyramid.Resize{Interp: resize.Bilinear}, nil
	case "draw":
		return pyramid.Draw{Scaler: xdraw.ApproxBiLinear}, nil
	default:
		return nil, fmt.Errorf("unknown downsampler %q", name)
	}
}

// loadPlane decodes path into a gray plane. 16-bit images are rescaled
// when their samples exceed maxIntensity.
func loadPlane(path string, maxIntensity int) (*gray.Plane, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	p, err := gray.FromImage(img)
	if err != nil {
		return nil, err
	}
	if _, wide := img.(*image.Gray16); wide && maxIntensity < math.MaxUint16 {
		for i, v := range p.Pix {
			p.Pix[i] = uint16(int(v) * maxIntensity / math.MaxUint16)
		}
	}

	return p, nil
}

// stretch maps [0, invalid) onto 0..255 and invalid pixels onto 0.
func stretch(disp *image.Gray, invalid int) *image.Gray {
	out := image.NewGray(disp.Rect)
	for i, v := range disp.Pix {
		if int(v) >= invalid || invalid < 2 {
			continue
		}
		out.Pix[i] = uint8(int(v) * 255 / (invalid - 1))
	}

	return out
}

// subpixelImage encodes disparities as round(d*256) in 16 bits.
func subpixelImage(m *sgm.SubpixelMap) *image.Gray16 {
	out := image.NewGray16(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			v := math.Round(float64(m.At(x, y)) * 256)
			v = math.Min(math.Max(v, 0), math.MaxUint16)
			i := out.PixOffset(x, y)
			out.Pix[i] = uint8(uint16(v) >> 8)
			out.Pix[i+1] = uint8(uint16(v))
		}
	}

	return out
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
