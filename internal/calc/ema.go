package calc

import (
	"math"

	"github.com/NeaByteLab/Trading-Lib-sub003/internal/mathx"
)

// smoother carries an SMA-seeded recurrence forward one value at a time.
// The seed is the mean of the first period consecutive non-NaN values; until
// then no output is produced. After seeding, a NaN input yields NaN and leaves
// the state untouched.
type smoother struct {
	period  int
	step    func(prev, x float64) float64
	count   int
	sum     float64
	current float64
	seeded  bool
}

func (s *smoother) update(x float64) (float64, bool) {
	if math.IsNaN(x) {
		if !s.seeded {
			// seed needs consecutive values
			s.count = 0
			s.sum = 0
		}
		return x, false
	}
	if !s.seeded {
		s.count++
		s.sum += x
		if s.count == s.period {
			s.current = s.sum / float64(s.period)
			s.seeded = true
			return s.current, true
		}
		return 0, false
	}
	s.current = s.step(s.current, x)
	return s.current, true
}

func runSmoother(data []float64, s *smoother) []float64 {
	out := mathx.NaNs(len(data))
	if s.period < 1 || len(data) < s.period {
		return out
	}
	for i, x := range data {
		if v, ok := s.update(x); ok {
			out[i] = v
		}
	}
	return out
}

// EMAAlpha returns the EMA smoothing factor 2/(length+1).
func EMAAlpha(length int) float64 {
	return 2.0 / float64(length+1)
}

// EMA is the exponential moving average:
//
//	EMA(i) = α·x(i) + (1−α)·EMA(i−1), α = 2/(length+1)
//
// seeded with the SMA of the first length values at index length−1.
func EMA(data []float64, length int) []float64 {
	alpha := EMAAlpha(length)
	return runSmoother(data, &smoother{
		period: length,
		step: func(prev, x float64) float64 {
			return alpha*x + (1-alpha)*prev
		},
	})
}

// RMA is Wilder's smoothing, EMA with α = 1/length:
//
//	RMA(i) = (RMA(i−1)·(length−1) + x(i)) / length
//
// seeded with the SMA of the first length values.
func RMA(data []float64, length int) []float64 {
	p := float64(length)
	return runSmoother(data, &smoother{
		period: length,
		step: func(prev, x float64) float64 {
			return (prev*(p-1) + x) / p
		},
	})
}
