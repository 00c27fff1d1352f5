package source

import "errors"

// Validation failures. Callers wrap these with context and classify them with
// errors.Is; numeric edge cases never produce an error.
var (
	// Shape and invariant violations.
	ErrEmptyInput     = errors.New("empty input")
	ErrLengthMismatch = errors.New("array length mismatch")

	// A field the calculation needs is absent (e.g. volume).
	ErrMissingField = errors.New("required field missing")

	// Parameter range violations.
	ErrInvalidLength     = errors.New("invalid length")
	ErrInvalidMultiplier = errors.New("invalid multiplier")
	ErrInvalidParam      = errors.New("invalid parameter")
	ErrUnknownSource     = errors.New("unknown source")
)

// Error kinds, used as metric labels.
const (
	KindShape        = "shape"
	KindMissingField = "missing_field"
	KindParameter    = "parameter"
	KindOther        = "other"
)

// Kind maps an error onto its taxonomy class.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrEmptyInput), errors.Is(err, ErrLengthMismatch):
		return KindShape
	case errors.Is(err, ErrMissingField):
		return KindMissingField
	case errors.Is(err, ErrInvalidLength), errors.Is(err, ErrInvalidMultiplier),
		errors.Is(err, ErrInvalidParam), errors.Is(err, ErrUnknownSource):
		return KindParameter
	default:
		return KindOther
	}
}
