// Package amortization computes fixed-payment loan schedules with an optional
// flat extra monthly payment.
package amortization

import (
	"fmt"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/loans"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
)

// Inputs holds the loan parameters. AnnualRate is a percentage.
type Inputs struct {
	Principal    float64
	AnnualRate   float64
	TermYears    int
	TermMonths   int
	StartDate    time.Time
	ExtraMonthly float64
}

// TotalMonths is the nominal term in months.
func (in Inputs) TotalMonths() int {
	return in.TermYears*constants.MonthsPerYear + in.TermMonths
}

// Result is the amortization summary plus its schedule.
type Result struct {
	MonthlyPayment   float64
	TotalInterest    float64
	TotalPrincipal   float64
	TotalPaid        float64
	NumberOfPayments int
	PayoffDate       time.Time
	// InterestSaved and MonthsSaved compare against the same loan without
	// the extra payment; both are zero when ExtraMonthly is zero.
	InterestSaved float64
	MonthsSaved   int
	Schedule      []loans.Period
	YearSummaries []loans.YearSummary
}

// Validate checks the inputs against the engine invariants.
func (in Inputs) Validate() error {
	return validation.First(
		validation.Positive("principal", in.Principal),
		validation.Positive("annualRate", in.AnnualRate),
		validation.NonNegative("termYears", float64(in.TermYears)),
		validation.NonNegative("termMonths", float64(in.TermMonths)),
		validation.Positive("term", float64(in.TotalMonths())),
		validation.AtMost("term", float64(in.TotalMonths()), constants.MaxLoanTermYears*constants.MonthsPerYear),
		validation.NonNegative("extraMonthly", in.ExtraMonthly),
	)
}

// Calculate runs the amortization without logging.
func Calculate(in Inputs) (Result, error) {
	return CalculateWithLogger(nil, in)
}

// CalculateWithLogger runs the amortization and emits debug entries to logger.
func CalculateWithLogger(logger *zap.Logger, in Inputs) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	n := in.TotalMonths()
	payment := loans.CalculateMonthlyPayment(in.Principal, in.AnnualRate, n)
	simulator := loans.NewSimulator(logger)
	start := datetime.DefaultMonth(in.StartDate)

	extra := in.ExtraMonthly
	schedule, err := simulator.Simulate(loans.SimulationConfig{
		Name:       "amortization",
		Principal:  in.Principal,
		AnnualRate: in.AnnualRate,
		Payment:    payment,
		StartDate:  start,
		MaxPeriods: constants.SafetyCapMultiplier * n,
		Extra: func(int, time.Time, float64) float64 {
			return extra
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to simulate amortization schedule: %w", err)
	}

	result := Result{
		MonthlyPayment:   mathutil.Round(payment),
		TotalInterest:    mathutil.Round(schedule.Totals.TotalInterest),
		TotalPrincipal:   mathutil.Round(schedule.Totals.TotalPrincipal),
		TotalPaid:        mathutil.Round(schedule.Totals.TotalPaid),
		NumberOfPayments: schedule.Totals.Periods,
		PayoffDate:       schedule.Totals.PayoffDate,
		Schedule:         schedule.Rounded(),
		YearSummaries:    loans.SummarizeByYear(schedule.Periods),
	}

	if in.ExtraMonthly > 0 {
		baseline, err := simulator.Simulate(loans.SimulationConfig{
			Name:       "amortization baseline",
			Principal:  in.Principal,
			AnnualRate: in.AnnualRate,
			Payment:    payment,
			StartDate:  start,
			MaxPeriods: constants.SafetyCapMultiplier * n,
		})
		if err != nil {
			return Result{}, fmt.Errorf("failed to simulate baseline schedule: %w", err)
		}
		result.InterestSaved = mathutil.Round(baseline.Totals.TotalInterest - schedule.Totals.TotalInterest)
		result.MonthsSaved = baseline.Totals.Periods - schedule.Totals.Periods
	}

	logger.Debug("amortization computed",
		zap.String("op", "amortization.Calculate"),
		zap.Float64("monthlyPayment", result.MonthlyPayment),
		zap.Int("payments", result.NumberOfPayments),
		zap.Float64("totalInterest", result.TotalInterest),
	)

	return result, nil
}
