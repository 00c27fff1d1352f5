// Package calc implements the rolling-window primitives the indicators are
// built from.
//
// Every primitive takes a series and a window length and returns a new series
// of the same length as its first argument. Positions where the window cannot
// be filled yet are NaN, and if the input is shorter than the window every
// position is NaN. A window that contains a NaN produces NaN. Inputs are never
// mutated. A length below 1 is not an error here: the result is all NaN and the
// indicator layer rejects such lengths before calling in.
package calc

import (
	"math"

	"github.com/NeaByteLab/Trading-Lib-sub003/internal/mathx"
)

// window is a circular buffer with a running sum over the trailing period
// values. NaN entries are counted instead of summed so a single bad bar only
// invalidates the windows it falls into.
type window struct {
	period int
	buf    []float64
	idx    int
	count  int
	sum    float64
	nan    int
}

func newWindow(period int) *window {
	return &window{period: period, buf: make([]float64, period)}
}

func (w *window) push(v float64) {
	if w.count >= w.period {
		old := w.buf[w.idx]
		if math.IsNaN(old) {
			w.nan--
		} else {
			w.sum -= old
		}
	}
	w.buf[w.idx] = v
	if math.IsNaN(v) {
		w.nan++
	} else {
		w.sum += v
	}
	w.idx = (w.idx + 1) % w.period
	w.count++
}

// ready reports whether the window is full and free of NaN.
func (w *window) ready() bool {
	return w.count >= w.period && w.nan == 0
}

// rolling runs fn over each full trailing window of data.
func rolling(data []float64, length int, fn func(win []float64) float64) []float64 {
	out := mathx.NaNs(len(data))
	if length < 1 || len(data) < length {
		return out
	}
	for i := length - 1; i < len(data); i++ {
		win := data[i-length+1 : i+1]
		if mathx.CountNaN(win) > 0 {
			continue
		}
		out[i] = fn(win)
	}
	return out
}
