package indicator

import (
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/model"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/source"
)

// Shape is the structural contract an indicator follows.
type Shape int

const (
	// Generic indicators validate only what they declare and compute from
	// the full input.
	Generic Shape = iota
	// Oscillator indicators run one series function over the selected source.
	Oscillator
	// Volatility indicators are oscillators that also take a multiplier.
	Volatility
)

func (s Shape) String() string {
	switch s {
	case Generic:
		return "generic"
	case Oscillator:
		return "oscillator"
	case Volatility:
		return "volatility"
	default:
		return "unknown"
	}
}

// Output is what a calculation function returns: the main series plus any
// auxiliary series, all aligned to the input.
type Output struct {
	Values []float64
	Series map[string][]float64
}

// SeriesFunc is the single computation step of an oscillator-shaped
// indicator. extra holds the declared Params in declaration order.
type SeriesFunc func(src []float64, length int, extra ...int) Output

// BandFunc is the computation step of a volatility-shaped indicator.
type BandFunc func(src []float64, length int, multiplier float64, extra ...int) Output

// ComputeFunc is the computation step of a generic indicator.
type ComputeFunc func(data model.Data, args Args) (Output, error)

// ValidateFunc is an extra validation hook run after the shape checks.
type ValidateFunc func(data model.Data, args Args) error

// Param declares an indicator-specific positive integer option.
type Param struct {
	Name    string
	Default int
}

// Descriptor fully describes an indicator. Exactly one of Series, Bands or
// Compute is set, matching Shape.
type Descriptor struct {
	Name        string
	Description string
	Shape       Shape

	// DefaultLength of 0 marks an indicator that takes no length.
	DefaultLength int
	MinLength     int
	MaxLength     int // 0 = unbounded

	// DefaultMultiplier of 0 marks an indicator that takes no multiplier.
	DefaultMultiplier float64

	DefaultSource source.Tag
	Params        []Param

	Series   SeriesFunc
	Bands    BandFunc
	Compute  ComputeFunc
	Validate ValidateFunc
}

func (d Descriptor) takesLength() bool { return d.DefaultLength > 0 }

func (d Descriptor) takesMultiplier() bool {
	return d.Shape == Volatility || d.DefaultMultiplier > 0
}
