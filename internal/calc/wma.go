package calc

import (
	"math"

	"github.com/NeaByteLab/Trading-Lib-sub003/internal/mathx"
)

// WMA is the linearly weighted mean of the trailing window with weights
// 1..length from oldest to newest, normalised by length·(length+1)/2.
func WMA(data []float64, length int) []float64 {
	norm := float64(length*(length+1)) / 2
	return rolling(data, length, func(win []float64) float64 {
		num := 0.0
		for j, v := range win {
			num += float64(j+1) * v
		}
		return num / norm
	})
}

// HullLengths returns the half and root window sizes Hull MA uses for length.
func HullLengths(length int) (half, root int) {
	half = length / 2
	if half < 1 {
		half = 1
	}
	root = int(math.Round(math.Sqrt(float64(length))))
	if root < 1 {
		root = 1
	}
	return half, root
}

// HMA is the Hull moving average:
//
//	WMA(2·WMA(x, length/2) − WMA(x, length), round(√length))
//
// The warm-up is the full-window WMA warm-up extended by the root window.
func HMA(data []float64, length int) []float64 {
	if length < 1 || len(data) < length {
		return mathx.NaNs(len(data))
	}
	half, root := HullLengths(length)
	raw := mathx.Sub(mathx.Scale(WMA(data, half), 2), WMA(data, length))
	return WMA(raw, root)
}
