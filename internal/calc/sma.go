package calc

import "github.com/NeaByteLab/Trading-Lib-sub003/internal/mathx"

// SMA is the arithmetic mean of the trailing length values.
// O(N): the window keeps a running sum.
func SMA(data []float64, length int) []float64 {
	out := mathx.NaNs(len(data))
	if length < 1 || len(data) < length {
		return out
	}
	w := newWindow(length)
	for i, v := range data {
		w.push(v)
		if w.ready() {
			out[i] = w.sum / float64(length)
		}
	}
	return out
}

// Sum is the rolling sum of the trailing length values.
func Sum(data []float64, length int) []float64 {
	out := mathx.NaNs(len(data))
	if length < 1 || len(data) < length {
		return out
	}
	w := newWindow(length)
	for i, v := range data {
		w.push(v)
		if w.ready() {
			out[i] = w.sum
		}
	}
	return out
}
