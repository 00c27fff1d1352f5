// Package model defines the market data shapes the indicators consume.
package model

// Data is anything an indicator can be calculated over: a full OHLCV set or
// a bare series.
type Data interface {
	Len() int
}

// MarketData holds parallel OHLC arrays plus optional volume and timestamps.
// All present arrays must have the same length; index i is the same bar in
// every array.
type MarketData struct {
	Open      []float64 `json:"open"`
	High      []float64 `json:"high"`
	Low       []float64 `json:"low"`
	Close     []float64 `json:"close"`
	Volume    []float64 `json:"volume,omitempty"`
	Timestamp []int64   `json:"timestamp,omitempty"`
}

// Len returns the number of bars, taken from Close. A nil receiver has none.
func (m *MarketData) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Close)
}

// HasVolume reports whether a volume array is present.
func (m *MarketData) HasVolume() bool { return m != nil && m.Volume != nil }

// HL2 is (high+low)/2.
func (m *MarketData) HL2() []float64 {
	out := make([]float64, m.Len())
	for i := range out {
		out[i] = (m.High[i] + m.Low[i]) / 2
	}
	return out
}

// HLC3 is the typical price (high+low+close)/3.
func (m *MarketData) HLC3() []float64 {
	out := make([]float64, m.Len())
	for i := range out {
		out[i] = (m.High[i] + m.Low[i] + m.Close[i]) / 3
	}
	return out
}

// OHLC4 is (open+high+low+close)/4.
func (m *MarketData) OHLC4() []float64 {
	out := make([]float64, m.Len())
	for i := range out {
		out[i] = (m.Open[i] + m.High[i] + m.Low[i] + m.Close[i]) / 4
	}
	return out
}

// HLCC4 is the weighted close (high+low+2·close)/4.
func (m *MarketData) HLCC4() []float64 {
	out := make([]float64, m.Len())
	for i := range out {
		out[i] = (m.High[i] + m.Low[i] + 2*m.Close[i]) / 4
	}
	return out
}

// Series is a bare numeric sequence passed where MarketData is accepted.
type Series []float64

// Len returns the number of values.
func (s Series) Len() int { return len(s) }
