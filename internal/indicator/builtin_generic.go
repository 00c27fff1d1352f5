package indicator

import (
	"math"

	"github.com/NeaByteLab/Trading-Lib-sub003/internal/calc"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/mathx"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/model"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/source"
)

func generics() []Descriptor {
	return []Descriptor{
		{Name: "tr", Description: "True range", Shape: Generic, Compute: trueRange},
		{Name: "atr", Description: "Average true range (Wilder)", Shape: Generic, DefaultLength: 14, Compute: atr},
		{Name: "natr", Description: "ATR as a percentage of close", Shape: Generic, DefaultLength: 14, Compute: natr},
		{Name: "keltner", Description: "Keltner channel: EMA basis ± multiplier·EMA(true range)", Shape: Generic, DefaultLength: 20, DefaultMultiplier: 1.5, Compute: keltner},
		{Name: "donchian", Description: "Donchian channel midline with upper/lower bands", Shape: Generic, DefaultLength: 20, Compute: donchian},
		{
			Name:          "stoch",
			Description:   "Stochastic %K with %D signal",
			Shape:         Generic,
			DefaultLength: 14,
			Params:        []Param{{Name: "smoothK", Default: 1}, {Name: "smoothD", Default: 3}},
			Compute:       stochastic,
		},
		{Name: "willr", Description: "Williams %R", Shape: Generic, DefaultLength: 14, Compute: williamsR},
		{Name: "obv", Description: "On-balance volume", Shape: Generic, Compute: obv, Validate: requireVolume},
		{Name: "vwma", Description: "Volume-weighted moving average", Shape: Generic, DefaultLength: 20, Compute: vwma, Validate: requireVolume},
		{
			Name:        "apo",
			Description: "Absolute price oscillator: EMA(fast) - EMA(slow)",
			Shape:       Generic,
			Params:      []Param{{Name: "fastLength", Default: 12}, {Name: "slowLength", Default: 26}},
			Compute:     apo,
		},
		{
			Name:        "macd",
			Description: "MACD line with signal and histogram",
			Shape:       Generic,
			Params: []Param{
				{Name: "fastLength", Default: 12},
				{Name: "slowLength", Default: 26},
				{Name: "signalLength", Default: 9},
			},
			Compute: macd,
		},
	}
}

func requireVolume(data model.Data, _ Args) error {
	md, err := source.RequireMarket(data)
	if err != nil {
		return err
	}
	return source.RequireVolume(md)
}

func trueRange(data model.Data, _ Args) (Output, error) {
	md, err := source.RequireMarket(data)
	if err != nil {
		return Output{}, err
	}
	return Output{Values: calc.TrueRange(md.High, md.Low, md.Close)}, nil
}

func atrSeries(md *model.MarketData, length int) []float64 {
	return calc.RMA(calc.TrueRange(md.High, md.Low, md.Close), length)
}

// atr is Wilder's smoothing of the true range.
func atr(data model.Data, args Args) (Output, error) {
	md, err := source.RequireMarket(data)
	if err != nil {
		return Output{}, err
	}
	return Output{Values: atrSeries(md, args.Length)}, nil
}

func natr(data model.Data, args Args) (Output, error) {
	md, err := source.RequireMarket(data)
	if err != nil {
		return Output{}, err
	}
	return Output{Values: mathx.Scale(mathx.Div(atrSeries(md, args.Length), md.Close), 100)}, nil
}

func keltner(data model.Data, args Args) (Output, error) {
	md, err := source.RequireMarket(data)
	if err != nil {
		return Output{}, err
	}
	src, err := source.Extract(md, args.Source)
	if err != nil {
		return Output{}, err
	}
	span := calc.EMA(calc.TrueRange(md.High, md.Low, md.Close), args.Length)
	return bands(calc.EMA(src, args.Length), mathx.Scale(span, args.Multiplier)), nil
}

func donchian(data model.Data, args Args) (Output, error) {
	md, err := source.RequireMarket(data)
	if err != nil {
		return Output{}, err
	}
	upper := calc.Highest(md.High, args.Length)
	lower := calc.Lowest(md.Low, args.Length)
	return Output{
		Values: mathx.Scale(mathx.Add(upper, lower), 0.5),
		Series: map[string][]float64{"upper": upper, "lower": lower},
	}, nil
}

// stochastic: raw %K = 100·(close - LL)/(HH - LL), %K = SMA(raw, smoothK),
// %D = SMA(%K, smoothD).
func stochastic(data model.Data, args Args) (Output, error) {
	md, err := source.RequireMarket(data)
	if err != nil {
		return Output{}, err
	}
	hh := calc.Highest(md.High, args.Length)
	ll := calc.Lowest(md.Low, args.Length)
	raw := mathx.Scale(mathx.Div(mathx.Sub(md.Close, ll), mathx.Sub(hh, ll)), 100)
	k := calc.SMA(raw, args.Param("smoothK"))
	d := calc.SMA(k, args.Param("smoothD"))
	return Output{Values: k, Series: map[string][]float64{"d": d}}, nil
}

func williamsR(data model.Data, args Args) (Output, error) {
	md, err := source.RequireMarket(data)
	if err != nil {
		return Output{}, err
	}
	hh := calc.Highest(md.High, args.Length)
	ll := calc.Lowest(md.Low, args.Length)
	return Output{Values: mathx.Scale(mathx.Div(mathx.Sub(hh, md.Close), mathx.Sub(hh, ll)), -100)}, nil
}

// obv accumulates volume signed by the close-to-close direction, starting
// from zero on the first bar.
func obv(data model.Data, _ Args) (Output, error) {
	md, err := source.RequireMarket(data)
	if err != nil {
		return Output{}, err
	}
	out := make([]float64, md.Len())
	for i := 1; i < len(out); i++ {
		switch {
		case md.Close[i] > md.Close[i-1]:
			out[i] = out[i-1] + md.Volume[i]
		case md.Close[i] < md.Close[i-1]:
			out[i] = out[i-1] - md.Volume[i]
		case math.IsNaN(md.Close[i]) || math.IsNaN(md.Close[i-1]):
			out[i] = math.NaN()
		default:
			out[i] = out[i-1]
		}
	}
	return Output{Values: out}, nil
}

// vwma = SMA(src·volume) / SMA(volume).
func vwma(data model.Data, args Args) (Output, error) {
	md, err := source.RequireMarket(data)
	if err != nil {
		return Output{}, err
	}
	src, err := source.Extract(md, args.Source)
	if err != nil {
		return Output{}, err
	}
	num := calc.SMA(mathx.Mul(src, md.Volume), args.Length)
	return Output{Values: mathx.Div(num, calc.SMA(md.Volume, args.Length))}, nil
}

func apo(data model.Data, args Args) (Output, error) {
	src, err := source.Extract(data, args.Source)
	if err != nil {
		return Output{}, err
	}
	return Output{Values: mathx.Sub(
		calc.EMA(src, args.Param("fastLength")),
		calc.EMA(src, args.Param("slowLength")),
	)}, nil
}

func macd(data model.Data, args Args) (Output, error) {
	line, err := apo(data, args)
	if err != nil {
		return Output{}, err
	}
	signal := calc.EMA(line.Values, args.Param("signalLength"))
	return Output{
		Values: line.Values,
		Series: map[string][]float64{
			"signal":    signal,
			"histogram": mathx.Sub(line.Values, signal),
		},
	}, nil
}
