// SPDX-License-Identifier: MIT

package mutualinfo

import (
	"fmt"
	"image"
	"math"

	"github.com/katalvlaran/sgmstereo/gray"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Defaults for 8-bit images.
const (
	DefaultMaxIntensity    = 255
	DefaultBins            = 256
	DefaultSmoothingRadius = 1

	// MaxBins bounds the histogram size; bins*bins tables are allocated.
	MaxBins = 4096
)

// Eps is added to every smoothed probability before taking the logarithm.
// It equals float32 machine epsilon.
const Eps = 1.1920929e-7

// Model is the mutual information cost model. Construct it with NewModel.
type Model struct {
	maxIntensity int
	bins         int
	binOf        []int // intensity -> bin, len maxIntensity+1

	kernel []float64

	histJoint    []int32   // bins*bins, [L*bins+R]
	entropyJoint []float64 // bins*bins, [L*bins+R]
	entropyLeft  []float64 // bins
	entropyRight []float64 // bins
	scaled       []uint16  // bins*bins lookup table, [L*bins+R]
	work         []float64 // bins*bins scratch

	samples int
	mi      float64
}

// NewModel returns a Model configured for 8-bit intensities, 256 bins and a
// smoothing radius of 1. All tables start at zero.
func NewModel() *Model {
	m := &Model{}
	if err := m.ConfigureHistogram(DefaultMaxIntensity, DefaultBins); err != nil {
		panic(err) // defaults are valid
	}
	if err := m.ConfigureSmoothing(DefaultSmoothingRadius); err != nil {
		panic(err)
	}

	return m
}

// ConfigureHistogram sets the largest intensity value and the number of
// histogram bins, then reallocates every table (zeroed).
// Intensity v maps to bin v*bins/(maxIntensity+1).
// Requires 1 <= maxIntensity <= 65535 and 2 <= bins <= min(maxIntensity+1, MaxBins).
func (m *Model) ConfigureHistogram(maxIntensity, bins int) error {
	if maxIntensity < 1 || maxIntensity > math.MaxUint16 || bins < 2 || bins > maxIntensity+1 || bins > MaxBins {
		return fmt.Errorf("Model.ConfigureHistogram(%d,%d): %w", maxIntensity, bins, ErrHistogramConfig)
	}
	m.maxIntensity, m.bins = maxIntensity, bins

	m.binOf = make([]int, maxIntensity+1)
	for v := range m.binOf {
		m.binOf[v] = v * bins / (maxIntensity + 1)
	}

	n := bins * bins
	m.histJoint = make([]int32, n)
	m.entropyJoint = make([]float64, n)
	m.entropyLeft = make([]float64, bins)
	m.entropyRight = make([]float64, bins)
	m.scaled = make([]uint16, n)
	m.work = make([]float64, n)
	m.samples, m.mi = 0, 0

	return nil
}

// ConfigureSmoothing sets the radius of the Gaussian Parzen window.
// Radius 0 disables smoothing.
func (m *Model) ConfigureSmoothing(radius int) error {
	if radius < 0 {
		return fmt.Errorf("Model.ConfigureSmoothing(%d): %w", radius, ErrSmoothingRadius)
	}
	m.kernel = gaussianKernel(radius)

	return nil
}

// Bins returns the number of histogram bins per axis.
func (m *Model) Bins() int { return m.bins }

// MaxIntensity returns the largest representable intensity.
func (m *Model) MaxIntensity() int { return m.maxIntensity }

// Samples returns the number of correspondences counted by the last
// Process call; 0 after seeding.
func (m *Model) Samples() int { return m.samples }

// MutualInformation returns H(L) + H(R) - H(L,R) in nats, computed on the
// unsmoothed joint distribution of the last Process call.
func (m *Model) MutualInformation() float64 { return m.mi }

// bin maps an intensity to its histogram bin; values above the configured
// maximum fall into the last bin.
func (m *Model) bin(v uint16) int {
	if int(v) > m.maxIntensity {
		return m.bins - 1
	}

	return m.binOf[v]
}

// RawCost returns hJ[L,R] - hL[L] - hR[R] for the given intensities.
func (m *Model) RawCost(left, right uint16) float64 {
	l, r := m.bin(left), m.bin(right)

	return m.entropyJoint[l*m.bins+r] - m.entropyLeft[l] - m.entropyRight[r]
}

// CostScaled returns the integer cost from the lookup table built by
// PrecomputeScaledCost or one of the seeding methods.
func (m *Model) CostScaled(left, right uint16) uint16 {
	return m.scaled[m.bin(left)*m.bins+m.bin(right)]
}

// RandomHistogram seeds the model with uniform noise in [0, maxCost) and
// copies it into the lookup table. The marginal entropies are zeroed so
// RawCost reports the same noise. seed==0 uses a fixed default seed.
func (m *Model) RandomHistogram(seed int64, maxCost int) error {
	if err := checkMaxCost(maxCost); err != nil {
		return fmt.Errorf("Model.RandomHistogram: %w", err)
	}
	rng := rngFromSeed(seed)
	for i := range m.entropyJoint {
		v := rng.Intn(maxCost)
		m.entropyJoint[i] = float64(v)
		m.scaled[i] = uint16(v)
	}
	m.resetStatistics()

	return nil
}

// DiagonalHistogram seeds the lookup table with a prior that right
// intensity ≈ scaleLeftToRight * left intensity: maxCost/20 on that line,
// maxCost/3 everywhere else.
func (m *Model) DiagonalHistogram(scaleLeftToRight float64, maxCost int) error {
	if err := checkMaxCost(maxCost); err != nil {
		return fmt.Errorf("Model.DiagonalHistogram: %w", err)
	}
	low, high := uint16(maxCost/20), uint16(maxCost/3)
	for l := 0; l < m.bins; l++ {
		match := int(math.Round(math.Min(float64(m.bins-1), math.Max(0, float64(l)*scaleLeftToRight))))
		for r := 0; r < m.bins; r++ {
			v := high
			if r == match {
				v = low
			}
			m.scaled[l*m.bins+r] = v
			m.entropyJoint[l*m.bins+r] = float64(v)
		}
	}
	m.resetStatistics()

	return nil
}

func (m *Model) resetStatistics() {
	clear(m.histJoint)
	clear(m.entropyLeft)
	clear(m.entropyRight)
	m.samples, m.mi = 0, 0
}

// Process rebuilds the entropy tables from the correspondences implied by
// disparity: left pixel (x, y) pairs with right pixel (x-minDisparity-d, y)
// where d = disparity(x, y). Pixels with d >= invalid and pairs whose right
// column leaves the image are skipped. When no pair remains the tables are
// left untouched.
//
// Implementation:
//   - Stage 1: validate shapes and reject views.
//   - Stage 2: joint histogram over binned intensities.
//   - Stage 3: joint and marginal probabilities.
//   - Stage 4: H = -(1/n)·G*log(G*P + Eps), separable 2-D for the joint
//     table, 1-D for each marginal.
//
// PrecomputeScaledCost must be called afterwards to refresh CostScaled.
//
// Complexity: O(W*H + bins²·(2r+1)).
func (m *Model) Process(left, right *gray.Plane, minDisparity int, disparity *image.Gray, invalid int) error {
	if left == nil || right == nil || disparity == nil {
		return fmt.Errorf("Model.Process: %w", ErrNilImage)
	}
	if !left.SameShape(right) || disparity.Rect.Dx() != left.Width || disparity.Rect.Dy() != left.Height {
		return fmt.Errorf("Model.Process: left %dx%d, right %dx%d, disparity %v: %w",
			left.Width, left.Height, right.Width, right.Height, disparity.Rect.Size(), ErrShapeMismatch)
	}
	if left.IsSubImage() || right.IsSubImage() || gray.IsSubGray(disparity) {
		return fmt.Errorf("Model.Process: %w", ErrSubImage)
	}

	n := m.computeJointHistogram(left, right, minDisparity, disparity, invalid)
	m.samples = n
	if n == 0 {
		return nil
	}
	m.computeProbabilities(n)
	m.mi = stat.Entropy(m.entropyLeft) + stat.Entropy(m.entropyRight) - stat.Entropy(m.entropyJoint)
	m.computeEntropy(n)

	return nil
}

func (m *Model) computeJointHistogram(left, right *gray.Plane, minDisparity int, disparity *image.Gray, invalid int) int {
	clear(m.histJoint)
	w := left.Width
	n := 0
	for y := 0; y < left.Height; y++ {
		lrow, rrow := left.Row(y), right.Row(y)
		drow := disparity.Pix[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			d := int(drow[x])
			if d >= invalid {
				continue
			}
			xr := x - minDisparity - d
			if xr < 0 || xr >= w {
				continue
			}
			m.histJoint[m.bin(lrow[x])*m.bins+m.bin(rrow[xr])]++
			n++
		}
	}

	return n
}

// computeProbabilities stores P(L,R) in entropyJoint and the marginals in
// entropyLeft / entropyRight.
func (m *Model) computeProbabilities(n int) {
	for i, c := range m.histJoint {
		m.entropyJoint[i] = float64(c)
	}
	floats.Scale(1/float64(n), m.entropyJoint)

	clear(m.entropyRight)
	for l := 0; l < m.bins; l++ {
		row := m.entropyJoint[l*m.bins : (l+1)*m.bins]
		m.entropyLeft[l] = floats.Sum(row)
		floats.Add(m.entropyRight, row)
	}
}

func (m *Model) computeEntropy(n int) {
	scale := -1 / float64(n)

	blur2D(m.entropyJoint, m.work, m.bins, m.kernel)
	logEps(m.entropyJoint, Eps)
	blur2D(m.entropyJoint, m.work, m.bins, m.kernel)
	floats.Scale(scale, m.entropyJoint)

	for _, h := range [][]float64{m.entropyLeft, m.entropyRight} {
		blur1D(h, m.work, m.kernel)
		logEps(h, Eps)
		blur1D(h, m.work, m.kernel)
		floats.Scale(scale, h)
	}
}

// PrecomputeScaledCost maps RawCost over every bin pair linearly onto
// [0, maxCost] and stores the result in the lookup table. A constant raw
// table yields an all-zero lookup table.
// Complexity: O(bins²).
func (m *Model) PrecomputeScaledCost(maxCost int) error {
	if err := checkMaxCost(maxCost); err != nil {
		return fmt.Errorf("Model.PrecomputeScaledCost: %w", err)
	}
	raw := m.work
	for l := 0; l < m.bins; l++ {
		for r := 0; r < m.bins; r++ {
			raw[l*m.bins+r] = m.entropyJoint[l*m.bins+r] - m.entropyLeft[l] - m.entropyRight[r]
		}
	}
	lo, hi := floats.Min(raw), floats.Max(raw)
	span := hi - lo
	if !(span > 0) {
		clear(m.scaled)
		return nil
	}
	for i, v := range raw {
		m.scaled[i] = uint16(float64(maxCost) * (v - lo) / span)
	}

	return nil
}

func checkMaxCost(maxCost int) error {
	if maxCost < 1 || maxCost > math.MaxUint16 {
		return ErrMaxCost
	}

	return nil
}
