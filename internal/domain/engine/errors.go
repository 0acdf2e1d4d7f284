package engine

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput marks semantic validation failures on simulation inputs.
// Wrapped messages name the offending field; callers match with errors.Is.
// Validation always runs before any RNG value is consumed, so a failed call
// has no observable side effects.
var ErrInvalidInput = errors.New("invalid simulation input")

func requirePositive(field string, v float64) error {
	if math.IsNaN(v) || v <= 0 {
		return fmt.Errorf("%w: %s must be greater than zero", ErrInvalidInput, field)
	}
	return nil
}

func requireNonNegative(field string, v float64) error {
	if math.IsNaN(v) || v < 0 {
		return fmt.Errorf("%w: %s must be zero or greater", ErrInvalidInput, field)
	}
	return nil
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
