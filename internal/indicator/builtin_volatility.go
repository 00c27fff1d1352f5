package indicator

import (
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/calc"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/mathx"
)

func volatilities() []Descriptor {
	return []Descriptor{
		{Name: "bb", Description: "Bollinger bands: SMA basis ± multiplier·stdev", Shape: Volatility, DefaultLength: 20, DefaultMultiplier: 2, Bands: bollinger},
		{Name: "bbw", Description: "Bollinger band width: (upper-lower)/basis", Shape: Volatility, DefaultLength: 20, DefaultMultiplier: 2, Bands: bollingerWidth},
		{Name: "envelope", Description: "Moving average envelope at ± multiplier percent", Shape: Volatility, DefaultLength: 20, DefaultMultiplier: 2.5, Bands: envelope},
	}
}

func bands(basis, offset []float64) Output {
	return Output{
		Values: basis,
		Series: map[string][]float64{
			"upper": mathx.Add(basis, offset),
			"lower": mathx.Sub(basis, offset),
		},
	}
}

func bollinger(src []float64, length int, mult float64, _ ...int) Output {
	return bands(calc.SMA(src, length), mathx.Scale(calc.StdDev(src, length), mult))
}

func bollingerWidth(src []float64, length int, mult float64, _ ...int) Output {
	bb := bollinger(src, length, mult)
	width := mathx.Div(mathx.Sub(bb.Series["upper"], bb.Series["lower"]), bb.Values)
	return Output{Values: width}
}

func envelope(src []float64, length int, mult float64, _ ...int) Output {
	basis := calc.SMA(src, length)
	return bands(basis, mathx.Scale(basis, mult/100))
}
