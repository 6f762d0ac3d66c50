// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/finance-calculators/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Every currency field of a result is passed through Round before it leaves an engine.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// RoundUp rounds a value up to the next whole cent.
func RoundUp(val float64) float64 {
	return math.Ceil(Round(val*constants.DecimalPrecision)) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// IsPositive checks if a value is positive (greater than tolerance)
func IsPositive(val float64) bool {
	return val > constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// PercentToDecimal converts a percentage such as 6.5 into 0.065.
func PercentToDecimal(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * PercentToDecimal(percentage)
}

// MonthlyRate converts an annual percentage rate into a monthly decimal rate.
func MonthlyRate(annualPercent float64) float64 {
	return annualPercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// Growth returns (1+rate)^periods.
func Growth(rate, periods float64) float64 {
	return math.Pow(1+rate, periods)
}

// FutureValueAnnuity returns the future value of an ordinary annuity paying
// payment each period for periods at the periodic rate. A zero rate
// degenerates to payment*periods.
func FutureValueAnnuity(payment, rate, periods float64) float64 {
	if rate == 0 {
		return payment * periods
	}
	return payment * (Growth(rate, periods) - 1) / rate
}

// PresentValueAnnuity returns the present value of an ordinary annuity.
func PresentValueAnnuity(payment, rate, periods float64) float64 {
	if math.Abs(rate) < constants.RealReturnEpsilon {
		return payment * periods
	}
	return payment * (1 - math.Pow(1+rate, -periods)) / rate
}

// SinkingFundPayment is the inverse of FutureValueAnnuity: the periodic
// payment that accumulates to target after periods.
func SinkingFundPayment(target, rate, periods float64) float64 {
	if periods <= 0 {
		return 0
	}
	if rate == 0 {
		return target / periods
	}
	return target * rate / (Growth(rate, periods) - 1)
}
