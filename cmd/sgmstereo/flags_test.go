// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"flag"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/sgmstereo/pyramid"
	"github.com/katalvlaran/sgmstereo/sgm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	return p
}

func TestParseFlagsDefaults(t *testing.T) {
	o, err := parseFlags([]string{"-left", "l.png", "-right", "r.png"}, &bytes.Buffer{})
	require.NoError(t, err)

	want := sgm.DefaultConfig()
	want.Workers = o.cfg.Workers
	assert.Equal(t, want, o.cfg)
	assert.Equal(t, "disparity.png", o.out)
	assert.Equal(t, "nearest", o.downsampler)
	assert.Positive(t, o.cfg.Workers)
}

func TestParseFlagsConfigFilePrecedence(t *testing.T) {
	cfgPath := writeFile(t, "cfg.json", `{"disparityRange": 32, "penalty2": 40, "seedMode": "diagonal"}`)
	o, err := parseFlags([]string{
		"-left", "l.png", "-right", "r.png",
		"-config", cfgPath,
		"-p2", "60",
		"-paths", "16",
	}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, 32, o.cfg.DisparityRange, "from file")
	assert.Equal(t, sgm.SeedDiagonal, o.cfg.SeedMode, "from file")
	assert.Equal(t, 60, o.cfg.Penalty2, "flag overrides file")
	assert.Equal(t, 16, o.cfg.PathsConsidered, "flag only")
	assert.Equal(t, 1, o.cfg.Penalty1, "default")
}

func TestParseFlagsSubpixelOut(t *testing.T) {
	o, err := parseFlags([]string{"-left", "l", "-right", "r", "-subpixel-out", "s.png"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.True(t, o.cfg.Subpixel)
}

func TestParseFlagsErrors(t *testing.T) {
	var stderr bytes.Buffer

	_, err := parseFlags([]string{"-left", "l.png"}, &stderr)
	require.ErrorIs(t, err, errUsage)

	_, err = parseFlags([]string{"-left", "l", "-right", "r", "-range", "0"}, &stderr)
	require.ErrorIs(t, err, sgm.ErrDisparityRange)

	_, err = parseFlags([]string{"-left", "l", "-right", "r", "-seed-mode", "sideways"}, &stderr)
	require.Error(t, err)

	_, err = parseFlags([]string{"-h"}, &stderr)
	require.ErrorIs(t, err, flag.ErrHelp)

	bad := writeFile(t, "bad.json", `{"disparityRange": 8, "colour": true}`)
	_, err = parseFlags([]string{"-left", "l", "-right", "r", "-config", bad}, &stderr)
	require.Error(t, err)

	_, err = parseFlags([]string{"-left", "l", "-right", "r", "-config", filepath.Join(t.TempDir(), "missing.json")}, &stderr)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDownsamplerByName(t *testing.T) {
	for _, name := range []string{"nearest", "resize", "bilinear", "draw"} {
		ds, err := downsamplerByName(name)
		require.NoError(t, err, name)
		assert.NotNil(t, ds, name)
	}
	ds, err := downsamplerByName("nearest")
	require.NoError(t, err)
	assert.Equal(t, pyramid.DefaultDownsampler(), ds)

	_, err = downsamplerByName("lanczos9")
	require.Error(t, err)
}

func TestStretch(t *testing.T) {
	disp := image.NewGray(image.Rect(0, 0, 3, 1))
	disp.Pix = []uint8{0, 4, 8}
	out := stretch(disp, 8)
	assert.Equal(t, []uint8{0, 4 * 255 / 7, 0}, out.Pix)
}

func TestSubpixelImage(t *testing.T) {
	m := &sgm.SubpixelMap{Width: 2, Height: 1, Pix: []float32{1.5, -1}}
	img := subpixelImage(m)
	assert.Equal(t, uint16(384), img.Gray16At(0, 0).Y)
	assert.Equal(t, uint16(0), img.Gray16At(1, 0).Y)
}
