// Package source selects the working series an indicator runs on and
// validates market data and parameters before any computation starts.
package source

import (
	"fmt"
	"strings"

	"github.com/NeaByteLab/Trading-Lib-sub003/internal/mathx"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/model"
)

// Tag names a price series derived from MarketData.
type Tag string

const (
	Open   Tag = "open"
	High   Tag = "high"
	Low    Tag = "low"
	Close  Tag = "close"
	HL2    Tag = "hl2"
	HLC3   Tag = "hlc3"
	OHLC4  Tag = "ohlc4"
	HLCC4  Tag = "hlcc4"
	Volume Tag = "volume"
)

// Default is the source used when none is configured.
const Default = Close

var aliases = map[string]Tag{
	"open":     Open,
	"high":     High,
	"low":      Low,
	"close":    Close,
	"hl2":      HL2,
	"median":   HL2,
	"hlc3":     HLC3,
	"typical":  HLC3,
	"ohlc4":    OHLC4,
	"hlcc4":    HLCC4,
	"weighted": HLCC4,
	"volume":   Volume,
}

// Tags lists every canonical tag.
func Tags() []Tag {
	return []Tag{Open, High, Low, Close, HL2, HLC3, OHLC4, HLCC4, Volume}
}

// Parse resolves a tag name or alias, case-insensitively. An empty name is
// the default source. Unknown names fail with ErrUnknownSource.
func Parse(name string) (Tag, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Default, nil
	}
	if t, ok := aliases[name]; ok {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSource, name)
}

// Normalize resolves a tag like Parse but falls back to close for anything it
// does not recognise. Configuration paths rely on this lenient behaviour.
func Normalize(name string) Tag {
	t, err := Parse(name)
	if err != nil {
		return Default
	}
	return t
}

// Extract returns a copy of the series named by tag. A bare Series is
// returned as-is whatever the tag. Asking MarketData for volume it does not
// carry fails with ErrMissingField.
func Extract(data model.Data, tag Tag) ([]float64, error) {
	switch d := data.(type) {
	case nil:
		return nil, ErrEmptyInput
	case model.Series:
		return mathx.Clone(d), nil
	case *model.MarketData:
		if d == nil {
			return nil, ErrEmptyInput
		}
		return extractMarket(d, Normalize(string(tag)))
	default:
		return nil, fmt.Errorf("%w: unsupported data type %T", ErrMissingField, data)
	}
}

func extractMarket(md *model.MarketData, tag Tag) ([]float64, error) {
	switch tag {
	case Open:
		return mathx.Clone(md.Open), nil
	case High:
		return mathx.Clone(md.High), nil
	case Low:
		return mathx.Clone(md.Low), nil
	case HL2:
		return md.HL2(), nil
	case HLC3:
		return md.HLC3(), nil
	case OHLC4:
		return md.OHLC4(), nil
	case HLCC4:
		return md.HLCC4(), nil
	case Volume:
		if !md.HasVolume() {
			return nil, fmt.Errorf("source %s: %w: market data has no volume", tag, ErrMissingField)
		}
		return mathx.Clone(md.Volume), nil
	default:
		return mathx.Clone(md.Close), nil
	}
}
