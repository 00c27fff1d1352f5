package calc

import "github.com/NeaByteLab/Trading-Lib-sub003/internal/mathx"

// Momentum is x(i) − x(i−length) for i ≥ length.
func Momentum(data []float64, length int) []float64 {
	return lagged(data, length, func(cur, prev float64) float64 {
		return cur - prev
	})
}

// Change is the single-lag difference used by RSI-style gain/loss splits.
// It is Momentum under another name.
func Change(data []float64, length int) []float64 {
	return Momentum(data, length)
}

// ROC is the percent change (x(i) − x(i−length)) / x(i−length) × 100.
// A zero base follows IEEE division and yields ±Inf or NaN.
func ROC(data []float64, length int) []float64 {
	return lagged(data, length, func(cur, prev float64) float64 {
		return (cur - prev) / prev * 100
	})
}

func lagged(data []float64, length int, fn func(cur, prev float64) float64) []float64 {
	out := mathx.NaNs(len(data))
	if length < 1 {
		return out
	}
	for i := length; i < len(data); i++ {
		out[i] = fn(data[i], data[i-length])
	}
	return out
}
