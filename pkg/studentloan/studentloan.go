// Package studentloan estimates student loan payoff: a simple fixed payment,
// a comparison of repayment with and without extra payments, and a projection
// of the balance built up while still in school.
package studentloan

import (
	"fmt"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/events"
	"github.com/iwvelando/finance-calculators/pkg/loans"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
)

// SimpleInputs describes a loan repaid with a fixed payment over TermYears.
type SimpleInputs struct {
	Balance    float64
	TermYears  int
	AnnualRate float64
}

// SimpleResult is the fixed payment and its totals.
type SimpleResult struct {
	MonthlyPayment float64
	TotalPaid      float64
	TotalInterest  float64
}

// Validate checks the inputs against the engine invariants.
func (in SimpleInputs) Validate() error {
	return validation.First(
		validation.Positive("balance", in.Balance),
		validation.Positive("termYears", float64(in.TermYears)),
		validation.AtMost("termYears", float64(in.TermYears), constants.MaxLoanTermYears),
		validation.Positive("annualRate", in.AnnualRate),
	)
}

// CalculateSimple computes the standard fixed payment in a single pass.
func CalculateSimple(in SimpleInputs) (SimpleResult, error) {
	if err := in.Validate(); err != nil {
		return SimpleResult{}, err
	}
	months := in.TermYears * constants.MonthsPerYear
	payment := loans.CalculateMonthlyPayment(in.Balance, in.AnnualRate, months)
	total := payment * float64(months)
	return SimpleResult{
		MonthlyPayment: mathutil.Round(payment),
		TotalPaid:      mathutil.Round(total),
		TotalInterest:  mathutil.Round(total - in.Balance),
	}, nil
}

// RepaymentInputs describes a loan with a chosen monthly payment and optional
// extra payments. ExtraYearly is paid every twelfth month and ExtraOneTime in
// the first month.
type RepaymentInputs struct {
	Balance        float64
	MonthlyPayment float64
	AnnualRate     float64
	ExtraMonthly   float64
	ExtraYearly    float64
	ExtraOneTime   float64
	StartDate      time.Time
}

// PayoffSummary describes one simulated payoff.
type PayoffSummary struct {
	Months        int
	TotalInterest float64
	TotalPaid     float64
	PayoffDate    time.Time
	PaidOff       bool
}

// RepaymentResult compares the payoff without and with the extra payments.
type RepaymentResult struct {
	Original      PayoffSummary
	Accelerated   PayoffSummary
	MonthsSaved   int
	InterestSaved float64
	Schedule      []loans.Period
}

// Validate checks the inputs against the engine invariants.
func (in RepaymentInputs) Validate() error {
	return validation.First(
		validation.Positive("balance", in.Balance),
		validation.Positive("monthlyPayment", in.MonthlyPayment),
		validation.Positive("annualRate", in.AnnualRate),
		validation.NonNegative("extraMonthly", in.ExtraMonthly),
		validation.NonNegative("extraYearly", in.ExtraYearly),
		validation.NonNegative("extraOneTime", in.ExtraOneTime),
	)
}

// MinimumPayment is the first month's interest rounded up to the cent.
func (in RepaymentInputs) MinimumPayment() float64 {
	return mathutil.RoundUp(loans.CalculateInterestPayment(in.Balance, in.AnnualRate))
}

// CalculateRepayment runs the comparison without logging.
func CalculateRepayment(in RepaymentInputs) (RepaymentResult, error) {
	return CalculateRepaymentWithLogger(nil, in)
}

// CalculateRepaymentWithLogger simulates the original and the accelerated
// payoff. A payment that does not exceed the first month's interest fails
// with InsufficientPaymentError before any simulation runs.
func CalculateRepaymentWithLogger(logger *zap.Logger, in RepaymentInputs) (RepaymentResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := in.Validate(); err != nil {
		return RepaymentResult{}, err
	}
	if in.MonthlyPayment <= loans.CalculateInterestPayment(in.Balance, in.AnnualRate) {
		return RepaymentResult{}, &InsufficientPaymentError{
			Payment:        in.MonthlyPayment,
			MinimumPayment: in.MinimumPayment(),
		}
	}

	simulator := loans.NewSimulator(logger)
	start := datetime.DefaultMonth(in.StartDate)
	base := loans.SimulationConfig{
		Principal:  in.Balance,
		AnnualRate: in.AnnualRate,
		Payment:    in.MonthlyPayment,
		StartDate:  start,
		MaxPeriods: constants.MaxRepaymentMonths,
	}

	original := base
	original.Name = "student loan"
	originalSchedule, err := simulator.Simulate(original)
	if err != nil {
		return RepaymentResult{}, fmt.Errorf("failed to simulate original payoff: %w", err)
	}

	accelerated := base
	accelerated.Name = "student loan with extras"
	extras, err := repaymentExtras(in, start)
	if err != nil {
		return RepaymentResult{}, err
	}
	accelerated.Extra = func(_ int, date time.Time, _ float64) float64 {
		return in.ExtraMonthly + events.AmountForDate(extras, date)
	}
	acceleratedSchedule, err := simulator.Simulate(accelerated)
	if err != nil {
		return RepaymentResult{}, fmt.Errorf("failed to simulate accelerated payoff: %w", err)
	}

	result := RepaymentResult{
		Original:    summarize(originalSchedule.Totals),
		Accelerated: summarize(acceleratedSchedule.Totals),
		Schedule:    acceleratedSchedule.Rounded(),
	}
	result.MonthsSaved = result.Original.Months - result.Accelerated.Months
	result.InterestSaved = mathutil.Round(originalSchedule.Totals.TotalInterest - acceleratedSchedule.Totals.TotalInterest)

	logger.Debug("student loan repayment compared",
		zap.String("op", "studentloan.CalculateRepayment"),
		zap.Int("originalMonths", result.Original.Months),
		zap.Int("acceleratedMonths", result.Accelerated.Months),
		zap.Float64("interestSaved", result.InterestSaved),
	)
	return result, nil
}

func summarize(totals loans.Totals) PayoffSummary {
	return PayoffSummary{
		Months:        totals.Periods,
		TotalInterest: mathutil.Round(totals.TotalInterest),
		TotalPaid:     mathutil.Round(totals.TotalPaid),
		PayoffDate:    totals.PayoffDate,
		PaidOff:       totals.PaidOff,
	}
}

// repaymentExtras places the one-time extra in the first month and the yearly
// extra in every twelfth month of the repayment window.
func repaymentExtras(in RepaymentInputs, start time.Time) ([]events.Event, error) {
	yearly, err := events.NewRecurring("yearly extra", in.ExtraYearly,
		datetime.OffsetMonths(start, constants.MonthsPerYear-1),
		datetime.OffsetMonths(start, constants.MaxRepaymentMonths-1),
		constants.MonthsPerYear)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule yearly extras: %w", err)
	}
	return []events.Event{events.NewOneTime("one-time extra", in.ExtraOneTime, start), yearly}, nil
}
