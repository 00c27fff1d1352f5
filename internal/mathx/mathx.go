// Package mathx holds the stateless array helpers every calculation builds on.
//
// Nothing here allocates state between calls and nothing mutates its inputs.
// Elementwise helpers return a slice as long as their first argument; positions
// the second argument does not cover come back as NaN.
package mathx

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Number is any built-in integer or float type.
type Number interface {
	constraints.Integer | constraints.Float
}

// ToFloat64 converts a numeric slice into a fresh []float64.
func ToFloat64[T Number](xs []T) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = float64(v)
	}
	return out
}

// Sum adds every element. NaN elements propagate.
func Sum[T Number](xs []T) T {
	var s T
	for _, v := range xs {
		s += v
	}
	return s
}

// Mean returns the arithmetic mean, or NaN for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return Sum(xs) / float64(len(xs))
}

// MaxOf returns the largest of its arguments. NaN wins if present, matching
// how a NaN bar poisons any comparison-based statistic downstream.
func MaxOf(vals ...float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if math.IsNaN(v) {
			return v
		}
		if v > m {
			m = v
		}
	}
	return m
}

// MinOf returns the smallest of its arguments; NaN wins if present.
func MinOf(vals ...float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if math.IsNaN(v) {
			return v
		}
		if v < m {
			m = v
		}
	}
	return m
}

// SafeDiv divides a by b and returns fallback when b is zero.
// Only ratio-style indicators that define a value for a flat denominator use
// it; plain percent-change keeps IEEE semantics.
func SafeDiv(a, b, fallback float64) float64 {
	if b == 0 {
		return fallback
	}
	return a / b
}

// NaNs returns a slice of n NaN values.
func NaNs(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// Clone copies xs.
func Clone(xs []float64) []float64 {
	out := make([]float64, len(xs))
	copy(out, xs)
	return out
}

// Abs returns |x| elementwise.
func Abs(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = math.Abs(v)
	}
	return out
}

// Add returns a+b elementwise.
func Add(a, b []float64) []float64 {
	return zip(a, b, func(x, y float64) float64 { return x + y })
}

// Sub returns a-b elementwise.
func Sub(a, b []float64) []float64 {
	return zip(a, b, func(x, y float64) float64 { return x - y })
}

// Mul returns a*b elementwise.
func Mul(a, b []float64) []float64 {
	return zip(a, b, func(x, y float64) float64 { return x * y })
}

// Div returns a/b elementwise with IEEE division semantics.
func Div(a, b []float64) []float64 {
	return zip(a, b, func(x, y float64) float64 { return x / y })
}

// Scale returns k*x elementwise.
func Scale(xs []float64, k float64) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = v * k
	}
	return out
}

// Map applies fn to every element.
func Map(xs []float64, fn func(float64) float64) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = fn(v)
	}
	return out
}

// CountNaN returns the number of NaN elements.
func CountNaN(xs []float64) int {
	n := 0
	for _, v := range xs {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}

// FirstValid returns the index of the first non-NaN element, or len(xs).
func FirstValid(xs []float64) int {
	for i, v := range xs {
		if !math.IsNaN(v) {
			return i
		}
	}
	return len(xs)
}

func zip(a, b []float64, fn func(x, y float64) float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		if i >= len(b) {
			out[i] = math.NaN()
			continue
		}
		out[i] = fn(a[i], b[i])
	}
	return out
}
