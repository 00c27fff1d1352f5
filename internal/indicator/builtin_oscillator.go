package indicator

import (
	"math"

	"github.com/NeaByteLab/Trading-Lib-sub003/internal/calc"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/mathx"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/source"
)

// series adapts a plain window primitive to a SeriesFunc.
func series(fn func([]float64, int) []float64) SeriesFunc {
	return func(src []float64, length int, _ ...int) Output {
		return Output{Values: fn(src, length)}
	}
}

func oscillators() []Descriptor {
	return []Descriptor{
		{Name: "sma", Description: "Simple moving average", Shape: Oscillator, DefaultLength: 20, Series: series(calc.SMA)},
		{Name: "ema", Description: "Exponential moving average", Shape: Oscillator, DefaultLength: 20, Series: series(calc.EMA)},
		{Name: "wma", Description: "Linearly weighted moving average", Shape: Oscillator, DefaultLength: 20, Series: series(calc.WMA)},
		{Name: "hma", Description: "Hull moving average", Shape: Oscillator, DefaultLength: 9, Series: series(calc.HMA)},
		{Name: "rma", Description: "Wilder's smoothed moving average", Shape: Oscillator, DefaultLength: 14, Series: series(calc.RMA)},
		{Name: "rsi", Description: "Relative strength index (Wilder)", Shape: Oscillator, DefaultLength: 14, Series: rsi},
		{Name: "mom", Description: "Momentum: x - x[length]", Shape: Oscillator, DefaultLength: 10, Series: series(calc.Momentum)},
		{Name: "roc", Description: "Rate of change in percent", Shape: Oscillator, DefaultLength: 9, Series: series(calc.ROC)},
		{Name: "stdev", Description: "Rolling population standard deviation", Shape: Oscillator, DefaultLength: 20, Series: series(calc.StdDev)},
		{Name: "variance", Description: "Rolling population variance", Shape: Oscillator, DefaultLength: 20, Series: series(calc.Variance)},
		{Name: "highest", Description: "Highest value over the window", Shape: Oscillator, DefaultLength: 20, Series: series(calc.Highest)},
		{Name: "lowest", Description: "Lowest value over the window", Shape: Oscillator, DefaultLength: 20, Series: series(calc.Lowest)},
		{Name: "cci", Description: "Commodity channel index", Shape: Oscillator, DefaultLength: 20, DefaultSource: source.HLC3, Series: cci},
		{
			Name:          "tsi",
			Description:   "True strength index, double-smoothed momentum ratio x100",
			Shape:         Oscillator,
			DefaultLength: 25,
			Params:        []Param{{Name: "shortLength", Default: 13}},
			Series:        tsi,
		},
	}
}

// rsi = 100 - 100/(1 + RMA(gain)/RMA(loss)); a flat loss average pins it at
// 100 and a flat gain average at 0.
func rsi(src []float64, length int, _ ...int) Output {
	ch := calc.Change(src, 1)
	gain := mathx.Map(ch, func(v float64) float64 { return math.Max(v, 0) })
	loss := mathx.Map(ch, func(v float64) float64 { return math.Max(-v, 0) })
	up, down := calc.RMA(gain, length), calc.RMA(loss, length)

	out := mathx.NaNs(len(src))
	for i := range out {
		u, d := up[i], down[i]
		switch {
		case math.IsNaN(u) || math.IsNaN(d):
		case d == 0:
			out[i] = 100
		case u == 0:
			out[i] = 0
		default:
			out[i] = 100 - 100/(1+u/d)
		}
	}
	return Output{Values: out}
}

// cci = (x - SMA(x)) / (0.015 · meanDeviation(x)); a flat window reads 0.
func cci(src []float64, length int, _ ...int) Output {
	num := mathx.Sub(src, calc.SMA(src, length))
	dev := mathx.Scale(calc.MeanDeviation(src, length), 0.015)
	out := make([]float64, len(src))
	for i := range out {
		out[i] = mathx.SafeDiv(num[i], dev[i], 0)
	}
	return Output{Values: out}
}

// tsi uses length as the long smoothing and extra[0] as the short one.
func tsi(src []float64, length int, extra ...int) Output {
	short := extra[0]
	m := calc.Change(src, 1)
	num := calc.EMA(calc.EMA(m, length), short)
	den := calc.EMA(calc.EMA(mathx.Abs(m), length), short)
	return Output{Values: mathx.Scale(mathx.Div(num, den), 100)}
}
