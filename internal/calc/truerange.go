package calc

import (
	"math"

	"github.com/NeaByteLab/Trading-Lib-sub003/internal/mathx"
)

// TrueRange is max(h−l, |h−prevClose|, |l−prevClose|). The first bar has no
// previous close and uses h−l. The output follows len(high); bars missing
// from low or close are NaN.
func TrueRange(high, low, close []float64) []float64 {
	out := mathx.NaNs(len(high))
	for i := range high {
		if i >= len(low) || i >= len(close) {
			continue
		}
		hl := high[i] - low[i]
		if i == 0 {
			out[i] = hl
			continue
		}
		prev := close[i-1]
		out[i] = mathx.MaxOf(hl, math.Abs(high[i]-prev), math.Abs(low[i]-prev))
	}
	return out
}
