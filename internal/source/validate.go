package source

import (
	"fmt"
	"math"

	"github.com/NeaByteLab/Trading-Lib-sub003/internal/model"
)

// ValidateData checks that data is non-empty and, for MarketData, that every
// present array has the same length as close.
func ValidateData(data model.Data) error {
	switch d := data.(type) {
	case nil:
		return ErrEmptyInput
	case model.Series:
		if len(d) == 0 {
			return ErrEmptyInput
		}
		return nil
	case *model.MarketData:
		return ValidateMarket(d)
	default:
		return fmt.Errorf("%w: unsupported data type %T", ErrMissingField, data)
	}
}

// ValidateMarket enforces the MarketData shape invariant. Open, high, low and
// close are required; volume and timestamp are checked only when present.
func ValidateMarket(md *model.MarketData) error {
	if md == nil || len(md.Close) == 0 {
		return fmt.Errorf("market data: %w", ErrEmptyInput)
	}
	n := len(md.Close)
	for _, f := range []struct {
		name string
		size int
	}{
		{"open", len(md.Open)},
		{"high", len(md.High)},
		{"low", len(md.Low)},
	} {
		if f.size == 0 {
			return fmt.Errorf("market data %s: %w", f.name, ErrMissingField)
		}
		if f.size != n {
			return fmt.Errorf("market data %s: %w: %d != close %d", f.name, ErrLengthMismatch, f.size, n)
		}
	}
	if md.Volume != nil && len(md.Volume) != n {
		return fmt.Errorf("market data volume: %w: %d != close %d", ErrLengthMismatch, len(md.Volume), n)
	}
	if md.Timestamp != nil && len(md.Timestamp) != n {
		return fmt.Errorf("market data timestamp: %w: %d != close %d", ErrLengthMismatch, len(md.Timestamp), n)
	}
	return nil
}

// RequireMarket returns data as MarketData, failing for bare series that
// cannot supply high/low/close.
func RequireMarket(data model.Data) (*model.MarketData, error) {
	md, ok := data.(*model.MarketData)
	if !ok || md == nil {
		return nil, fmt.Errorf("%w: OHLC market data required", ErrMissingField)
	}
	if err := ValidateMarket(md); err != nil {
		return nil, err
	}
	return md, nil
}

// RequireVolume fails unless md carries a volume array.
func RequireVolume(md *model.MarketData) error {
	if !md.HasVolume() {
		return fmt.Errorf("volume: %w", ErrMissingField)
	}
	return nil
}

// ValidateLength checks 1 ≤ min ≤ length and, when max > 0, length ≤ max.
func ValidateLength(length, min, max int) error {
	if min < 1 {
		min = 1
	}
	if length < min {
		return fmt.Errorf("%w: %d is below minimum %d", ErrInvalidLength, length, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%w: %d exceeds maximum %d", ErrInvalidLength, length, max)
	}
	return nil
}

// ValidateMultiplier requires a finite, strictly positive multiplier.
func ValidateMultiplier(m float64) error {
	if math.IsNaN(m) || math.IsInf(m, 0) || m <= 0 {
		return fmt.Errorf("%w: %v must be a positive number", ErrInvalidMultiplier, m)
	}
	return nil
}

// ValidatePositiveInt checks an integer-valued indicator parameter.
func ValidatePositiveInt(name string, v int) error {
	if v < 1 {
		return fmt.Errorf("%w: %s=%d must be a positive integer", ErrInvalidParam, name, v)
	}
	return nil
}
