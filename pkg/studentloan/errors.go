package studentloan

import (
	"errors"
	"fmt"
)

// ErrInsufficientPayment is matched by InsufficientPaymentError through errors.Is.
var ErrInsufficientPayment = errors.New("insufficient payment")

// InsufficientPaymentError reports a monthly payment that does not exceed the
// first month's interest, so the loan would never be repaid.
type InsufficientPaymentError struct {
	Payment        float64
	MinimumPayment float64
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("insufficient payment: %.2f does not cover the first month's interest; minimum payment is %.2f",
		e.Payment, e.MinimumPayment)
}

// Is makes errors.Is(err, ErrInsufficientPayment) succeed.
func (e *InsufficientPaymentError) Is(target error) bool {
	return target == ErrInsufficientPayment
}

// AsInsufficientPayment extracts an InsufficientPaymentError from err's chain.
func AsInsufficientPayment(err error) (*InsufficientPaymentError, bool) {
	var insufficient *InsufficientPaymentError
	if errors.As(err, &insufficient) {
		return insufficient, true
	}
	return nil, false
}
