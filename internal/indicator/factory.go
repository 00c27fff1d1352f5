package indicator

import (
	"fmt"
	"strings"

	"github.com/NeaByteLab/Trading-Lib-sub003/internal/model"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/source"
)

// handle is the one implementation behind every factory-built indicator.
type handle struct {
	d Descriptor
}

// Make builds an indicator from a descriptor.
func Make(d Descriptor) (Indicator, error) {
	d.Name = strings.ToLower(strings.TrimSpace(d.Name))
	if d.Name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidDescriptor)
	}
	switch d.Shape {
	case Oscillator:
		if d.Series == nil {
			return nil, fmt.Errorf("%w: %s: oscillator needs a series function", ErrInvalidDescriptor, d.Name)
		}
		if !d.takesLength() {
			return nil, fmt.Errorf("%w: %s: oscillator needs a default length", ErrInvalidDescriptor, d.Name)
		}
	case Volatility:
		if d.Bands == nil {
			return nil, fmt.Errorf("%w: %s: volatility needs a band function", ErrInvalidDescriptor, d.Name)
		}
		if !d.takesLength() || d.DefaultMultiplier <= 0 {
			return nil, fmt.Errorf("%w: %s: volatility needs a default length and multiplier", ErrInvalidDescriptor, d.Name)
		}
	case Generic:
		if d.Compute == nil {
			return nil, fmt.Errorf("%w: %s: generic needs a compute function", ErrInvalidDescriptor, d.Name)
		}
	default:
		return nil, fmt.Errorf("%w: %s: unknown shape %d", ErrInvalidDescriptor, d.Name, d.Shape)
	}
	if d.MinLength < 1 {
		d.MinLength = 1
	}
	if d.takesLength() {
		if err := source.ValidateLength(d.DefaultLength, d.MinLength, d.MaxLength); err != nil {
			return nil, fmt.Errorf("%w: %s: default length: %v", ErrInvalidDescriptor, d.Name, err)
		}
	}
	if d.DefaultSource == "" {
		d.DefaultSource = source.Default
	}
	for _, p := range d.Params {
		if p.Name == "" || p.Default < 1 {
			return nil, fmt.Errorf("%w: %s: param %q needs a positive default", ErrInvalidDescriptor, d.Name, p.Name)
		}
	}
	return &handle{d: d}, nil
}

// MustMake is Make for package-level built-ins; it panics on a bad descriptor.
func MustMake(d Descriptor) Indicator {
	ind, err := Make(d)
	if err != nil {
		panic(err)
	}
	return ind
}

// NewOscillator builds an oscillator-shaped indicator from a series function
// and its default length.
func NewOscillator(name, description string, fn SeriesFunc, defaultLength int, params ...Param) (Indicator, error) {
	return Make(Descriptor{
		Name:          name,
		Description:   description,
		Shape:         Oscillator,
		DefaultLength: defaultLength,
		Params:        params,
		Series:        fn,
	})
}

// NewVolatility builds a volatility-shaped indicator from a band function.
func NewVolatility(name, description string, fn BandFunc, defaultLength int, defaultMultiplier float64, params ...Param) (Indicator, error) {
	return Make(Descriptor{
		Name:              name,
		Description:       description,
		Shape:             Volatility,
		DefaultLength:     defaultLength,
		DefaultMultiplier: defaultMultiplier,
		Params:            params,
		Bands:             fn,
	})
}

func (h *handle) Name() string           { return h.d.Name }
func (h *handle) Description() string    { return h.d.Description }
func (h *handle) Descriptor() Descriptor { return h.d }

// resolve merges cfg over the descriptor defaults and validates the result.
func (h *handle) resolve(cfg Config) (Args, error) {
	d := h.d
	args := Args{
		Source: source.Normalize(cfg.Source),
		Params: make(map[string]int, len(d.Params)),
	}
	if cfg.Source == "" {
		args.Source = d.DefaultSource
	}
	if d.takesLength() {
		args.Length = cfg.LengthOr(d.DefaultLength)
		if err := source.ValidateLength(args.Length, d.MinLength, d.MaxLength); err != nil {
			return Args{}, err
		}
	}
	if d.takesMultiplier() {
		args.Multiplier = cfg.MultiplierOr(d.DefaultMultiplier)
		if err := source.ValidateMultiplier(args.Multiplier); err != nil {
			return Args{}, err
		}
	}
	for _, p := range d.Params {
		v, err := cfg.IntParam(p.Name, p.Default)
		if err != nil {
			return Args{}, err
		}
		args.Params[p.Name] = v
	}
	return args, nil
}

func (h *handle) extras(args Args) []int {
	out := make([]int, len(h.d.Params))
	for i, p := range h.d.Params {
		out[i] = args.Params[p.Name]
	}
	return out
}

func (h *handle) validate(data model.Data, cfg Config) (Args, error) {
	if err := source.ValidateData(data); err != nil {
		return Args{}, err
	}
	args, err := h.resolve(cfg)
	if err != nil {
		return Args{}, err
	}
	if h.d.Validate != nil {
		if err := h.d.Validate(data, args); err != nil {
			return Args{}, err
		}
	}
	return args, nil
}

// ValidateInput implements Indicator.
func (h *handle) ValidateInput(data model.Data, cfg Config) error {
	if _, err := h.validate(data, cfg); err != nil {
		return fmt.Errorf("%s: %w", h.d.Name, err)
	}
	return nil
}

// Calculate implements Indicator.
func (h *handle) Calculate(data model.Data, cfg Config) (Result, error) {
	args, err := h.validate(data, cfg)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", h.d.Name, err)
	}

	var out Output
	switch h.d.Shape {
	case Oscillator, Volatility:
		src, err := source.Extract(data, args.Source)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", h.d.Name, err)
		}
		if h.d.Shape == Oscillator {
			out = h.d.Series(src, args.Length, h.extras(args)...)
		} else {
			out = h.d.Bands(src, args.Length, args.Multiplier, h.extras(args)...)
		}
	default:
		out, err = h.d.Compute(data, args)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", h.d.Name, err)
		}
	}

	if len(out.Values) != data.Len() {
		return Result{}, fmt.Errorf("%s: %w: result has %d values for %d bars",
			h.d.Name, source.ErrLengthMismatch, len(out.Values), data.Len())
	}

	meta := Metadata{
		Length:     args.Length,
		Source:     args.Source,
		Multiplier: args.Multiplier,
		Series:     out.Series,
	}
	if len(args.Params) > 0 {
		meta.Params = args.Params
	}
	return Result{Values: out.Values, Metadata: meta}, nil
}

// stub is an indicator registered by name whose calculation does not exist.
type stub struct {
	name        string
	description string
}

// NotImplemented returns an indicator that fails every call with
// ErrNotImplemented.
func NotImplemented(name, description string) Indicator {
	return &stub{name: strings.ToLower(name), description: description}
}

func (s *stub) Name() string        { return s.name }
func (s *stub) Description() string { return s.description }

func (s *stub) Descriptor() Descriptor {
	return Descriptor{Name: s.name, Description: s.description, Shape: Generic}
}

func (s *stub) ValidateInput(model.Data, Config) error {
	return fmt.Errorf("%s: %w", s.name, ErrNotImplemented)
}

func (s *stub) Calculate(model.Data, Config) (Result, error) {
	return Result{}, fmt.Errorf("%s: %w", s.name, ErrNotImplemented)
}
