// SPDX-License-Identifier: MIT

package sgm

// workspace is the path scratch of one aggregation worker. Row i of lr
// holds L(p_i, ·) for the i-th pixel of the current path.
type workspace struct {
	lr []int32
}

// ensure grows lr to at least n values.
func (w *workspace) ensure(n int) {
	if cap(w.lr) < n {
		w.lr = make([]int32, n)
	}
	w.lr = w.lr[:n]
}
