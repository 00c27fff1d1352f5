// Package indicator provides the indicator contract, the shapes that share
// validation and result packaging, the factory that builds indicators from a
// calculation function, and the built-in indicator set.
//
// Every indicator runs the same sequence: validate input and parameters,
// extract the working series, compute, and wrap the values together with the
// parameters that produced them. Validation failures are returned before any
// computation starts; numeric edge cases show up as NaN or ±Inf in the values.
package indicator

import (
	"errors"
	"math"

	"github.com/NeaByteLab/Trading-Lib-sub003/internal/model"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/source"
)

var (
	// ErrNotImplemented is returned by indicators that exist by name only.
	ErrNotImplemented = errors.New("indicator not implemented")

	// ErrUnknownIndicator is returned when a registry lookup misses.
	ErrUnknownIndicator = errors.New("unknown indicator")

	// ErrInvalidDescriptor is returned by Make for an unusable descriptor.
	ErrInvalidDescriptor = errors.New("invalid indicator descriptor")
)

// Indicator is the interface for all technical indicators.
type Indicator interface {
	// Name returns the registry name (e.g. "rsi").
	Name() string

	// Description is a one-line human description.
	Description() string

	// Descriptor returns the shape, defaults and bounds the indicator was built from.
	Descriptor() Descriptor

	// ValidateInput checks data and cfg without computing anything.
	ValidateInput(data model.Data, cfg Config) error

	// Calculate validates, computes and returns values aligned to the input.
	Calculate(data model.Data, cfg Config) (Result, error)
}

// Result is an indicator's output: one value per input bar plus metadata.
type Result struct {
	Values   []float64
	Metadata Metadata
}

// Metadata records the parameters a Result was computed with and any
// auxiliary series (bands, signal lines, %D).
type Metadata struct {
	Length     int
	Source     source.Tag
	Multiplier float64
	Params     map[string]int
	Series     map[string][]float64
}

// Aux returns the auxiliary series called name, or nil.
func (r Result) Aux(name string) []float64 {
	return r.Metadata.Series[name]
}

// Last returns the final value, or NaN for an empty result.
func (r Result) Last() float64 {
	if len(r.Values) == 0 {
		return math.NaN()
	}
	return r.Values[len(r.Values)-1]
}

// ErrorKind classifies err for metrics and logs. It extends source.Kind with
// the indicator-level failures.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrNotImplemented):
		return "not_implemented"
	case errors.Is(err, ErrUnknownIndicator):
		return "unknown_indicator"
	default:
		return source.Kind(err)
	}
}
