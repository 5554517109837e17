// SPDX-License-Identifier: MIT

package mutualinfo

import "math"

// gaussianKernel returns a normalized kernel of length 2*radius+1 with
// sigma = (2*radius+1)/5.
func gaussianKernel(radius int) []float64 {
	sigma := float64(2*radius+1) / 5
	k := make([]float64, 2*radius+1)
	var sum float64
	for i := -radius; i <= radius; i++ {
		w := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		k[i+radius] = w
		sum += w
	}
	for i := range k {
		k[i] /= sum
	}

	return k
}

// convolve1D writes into dst the convolution of the n samples src[off],
// src[off+step], ... with kernel. Near the borders only the in-range taps
// contribute and the result is divided by their weight sum.
func convolve1D(dst, src []float64, off, step, n int, kernel []float64) {
	r := len(kernel) / 2
	for i := 0; i < n; i++ {
		var acc, wsum float64
		lo, hi := max(i-r, 0), min(i+r, n-1)
		for j := lo; j <= hi; j++ {
			w := kernel[j-i+r]
			acc += w * src[off+j*step]
			wsum += w
		}
		dst[off+i*step] = acc / wsum
	}
}

// blur1D smooths v in place using work as scratch (len(work) >= len(v)).
func blur1D(v, work, kernel []float64) {
	convolve1D(work, v, 0, 1, len(v), kernel)
	copy(v, work[:len(v)])
}

// blur2D smooths the size×size table m in place: horizontal pass into
// work, vertical pass back into m.
func blur2D(m, work []float64, size int, kernel []float64) {
	for row := 0; row < size; row++ {
		convolve1D(work, m, row*size, 1, size, kernel)
	}
	for col := 0; col < size; col++ {
		convolve1D(m, work, col, size, size, kernel)
	}
}

// logEps applies log(v+eps) to every element.
func logEps(v []float64, eps float64) {
	for i, x := range v {
		v[i] = math.Log(x + eps)
	}
}
