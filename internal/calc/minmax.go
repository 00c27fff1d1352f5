package calc

import "github.com/NeaByteLab/Trading-Lib-sub003/internal/mathx"

// Highest is the maximum of the trailing window.
func Highest(data []float64, length int) []float64 {
	return rolling(data, length, func(win []float64) float64 {
		return mathx.MaxOf(win...)
	})
}

// Lowest is the minimum of the trailing window.
func Lowest(data []float64, length int) []float64 {
	return rolling(data, length, func(win []float64) float64 {
		return mathx.MinOf(win...)
	})
}
