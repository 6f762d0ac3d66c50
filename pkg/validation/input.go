package validation

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is matched by every InvalidInputError through errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports an input record that violates an engine invariant.
// No field of a result accompanying this error may be trusted.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidInput) succeed.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Invalid builds an InvalidInputError with a formatted reason.
func Invalid(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// First returns the first non-nil error, letting engines list their checks in order.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Finite rejects NaN and infinities.
func Finite(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Invalid(field, "must be a finite number")
	}
	return nil
}

// Positive requires value > 0.
func Positive(field string, value float64) error {
	if err := Finite(field, value); err != nil {
		return err
	}
	if value <= 0 {
		return Invalid(field, "must be greater than zero, got %g", value)
	}
	return nil
}

// NonNegative requires value >= 0.
func NonNegative(field string, value float64) error {
	if err := Finite(field, value); err != nil {
		return err
	}
	if value < 0 {
		return Invalid(field, "must not be negative, got %g", value)
	}
	return nil
}

// AtMost requires value <= limit.
func AtMost(field string, value, limit float64) error {
	if value > limit {
		return Invalid(field, "must be at most %g, got %g", limit, value)
	}
	return nil
}

// Between requires min <= value <= max.
func Between(field string, value, min, max float64) error {
	if err := Finite(field, value); err != nil {
		return err
	}
	if value < min || value > max {
		return Invalid(field, "must be between %g and %g, got %g", min, max, value)
	}
	return nil
}

// Less requires a < b, naming both fields in the failure.
func Less(fieldA string, a float64, fieldB string, b float64) error {
	if a >= b {
		return Invalid(fieldA, "(%g) must be less than %s (%g)", a, fieldB, b)
	}
	return nil
}
