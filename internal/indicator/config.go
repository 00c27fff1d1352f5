package indicator

import (
	"fmt"
	"math"

	"github.com/NeaByteLab/Trading-Lib-sub003/internal/source"
)

// Config carries the recognised options for one calculation. Zero values mean
// "use the indicator default". Params holds indicator-specific integer
// options such as fastLength; keys an indicator does not declare are ignored.
type Config struct {
	Length     int                `yaml:"length,omitempty"`
	Source     string             `yaml:"source,omitempty"`
	Multiplier float64            `yaml:"multiplier,omitempty"`
	Params     map[string]float64 `yaml:"params,omitempty"`
}

// LengthOr returns the configured length or def when unset.
func (c Config) LengthOr(def int) int {
	if c.Length == 0 {
		return def
	}
	return c.Length
}

// MultiplierOr returns the configured multiplier or def when unset.
func (c Config) MultiplierOr(def float64) float64 {
	if c.Multiplier == 0 {
		return def
	}
	return c.Multiplier
}

// IntParam returns the named parameter as a positive integer, or def when
// the key is absent.
func (c Config) IntParam(name string, def int) (int, error) {
	v, ok := c.Params[name]
	if !ok {
		return def, nil
	}
	if math.IsNaN(v) || v != math.Trunc(v) || v < 1 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s=%v must be a positive integer", source.ErrInvalidParam, name, v)
	}
	return int(v), nil
}

// With returns a copy of c with Params[name] set to v.
func (c Config) With(name string, v float64) Config {
	params := make(map[string]float64, len(c.Params)+1)
	for k, pv := range c.Params {
		params[k] = pv
	}
	params[name] = v
	c.Params = params
	return c
}

// Args are the resolved, validated parameters handed to a calculation.
type Args struct {
	Length     int
	Source     source.Tag
	Multiplier float64
	Params     map[string]int
}

// Param returns the resolved integer parameter name.
func (a Args) Param(name string) int {
	return a.Params[name]
}
