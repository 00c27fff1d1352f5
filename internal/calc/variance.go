package calc

import (
	"math"

	"github.com/NeaByteLab/Trading-Lib-sub003/internal/mathx"
)

// Variance is the population variance (denominator length) of the trailing
// window. Each window is evaluated with a two-pass mean/deviation sum so large
// price levels do not cancel out.
func Variance(data []float64, length int) []float64 {
	return rolling(data, length, windowVariance)
}

// StdDev is √Variance. Negative rounding residue is clamped to zero and NaN
// passes through unchanged.
func StdDev(data []float64, length int) []float64 {
	out := Variance(data, length)
	for i, v := range out {
		if math.IsNaN(v) {
			continue
		}
		if v < 0 {
			v = 0
		}
		out[i] = math.Sqrt(v)
	}
	return out
}

// MeanDeviation is the mean absolute deviation from the window mean.
func MeanDeviation(data []float64, length int) []float64 {
	return rolling(data, length, func(win []float64) float64 {
		mean := mathx.Mean(win)
		dev := 0.0
		for _, v := range win {
			dev += math.Abs(v - mean)
		}
		return dev / float64(len(win))
	})
}

func windowVariance(win []float64) float64 {
	mean := mathx.Mean(win)
	ss := 0.0
	for _, v := range win {
		d := v - mean
		ss += d * d
	}
	return ss / float64(len(win))
}
