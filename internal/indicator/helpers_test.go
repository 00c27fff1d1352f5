package indicator

import (
	"math"
	"testing"

	"github.com/NeaByteLab/Trading-Lib-sub003/internal/model"
)

var nan = math.NaN()

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.6f, want %.6f (tol=%.6f, diff=%.6f)", label, got, want, tol, math.Abs(got-want))
	}
}

// assertSeries compares two series position by position; NaN only matches NaN.
func assertSeries(t *testing.T, label string, got, want []float64, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: len=%d, want %d", label, len(got), len(want))
	}
	for i := range want {
		switch {
		case math.IsNaN(want[i]) && !math.IsNaN(got[i]):
			t.Errorf("%s[%d]: got %.6f, want NaN", label, i, got[i])
		case !math.IsNaN(want[i]) && math.IsNaN(got[i]):
			t.Errorf("%s[%d]: got NaN, want %.6f", label, i, want[i])
		case !math.IsNaN(want[i]):
			assertClose(t, label, got[i], want[i], tol)
		}
	}
}

// bars builds MarketData from high/low/close with open = close.
func bars(high, low, close []float64) *model.MarketData {
	open := make([]float64, len(close))
	copy(open, close)
	return &model.MarketData{Open: open, High: high, Low: low, Close: close}
}

// walk is a deterministic wavy OHLC series of n bars.
func walk(n int) *model.MarketData {
	md := &model.MarketData{
		Open:   make([]float64, n),
		High:   make([]float64, n),
		Low:    make([]float64, n),
		Close:  make([]float64, n),
		Volume: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		c := 100 + 5*math.Sin(float64(i)/3) + float64(i)*0.1
		md.Open[i] = c - 0.3
		md.Close[i] = c
		md.High[i] = c + 1 + math.Abs(math.Cos(float64(i)))
		md.Low[i] = c - 1 - math.Abs(math.Sin(float64(i)))
		md.Volume[i] = 1000 + float64(i%7)*100
	}
	return md
}
