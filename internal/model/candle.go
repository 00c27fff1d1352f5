package model

import (
	"encoding/json"
	"time"
)

// Candle is one OHLCV bar as it is stored or streamed.
// Volume is optional: a nil Volume means the feed does not report it.
type Candle struct {
	Symbol    string    `json:"symbol"`
	Timeframe string    `json:"tf"`
	TS        time.Time `json:"ts"` // bar open time (UTC)
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    *float64  `json:"volume,omitempty"`
}

// Key returns "symbol:timeframe".
func (c *Candle) Key() string {
	return c.Symbol + ":" + c.Timeframe
}

// JSON returns the JSON-encoded candle (ignoring errors for hot-path usage).
func (c *Candle) JSON() []byte {
	b, _ := json.Marshal(c)
	return b
}

// FromCandles turns a slice of bars into parallel arrays. Volume is carried
// only when every bar reports it; a partial volume column would break the
// equal-length invariant.
func FromCandles(candles []Candle) *MarketData {
	n := len(candles)
	md := &MarketData{
		Open:      make([]float64, n),
		High:      make([]float64, n),
		Low:       make([]float64, n),
		Close:     make([]float64, n),
		Timestamp: make([]int64, n),
	}
	withVolume := n > 0
	for i, c := range candles {
		md.Open[i] = c.Open
		md.High[i] = c.High
		md.Low[i] = c.Low
		md.Close[i] = c.Close
		md.Timestamp[i] = c.TS.Unix()
		if c.Volume == nil {
			withVolume = false
		}
	}
	if withVolume {
		md.Volume = make([]float64, n)
		for i, c := range candles {
			md.Volume[i] = *c.Volume
		}
	}
	return md
}
