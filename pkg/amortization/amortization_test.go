package amortization

import (
	"errors"
	"testing"

	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func start() Inputs {
	return Inputs{StartDate: datetime.MustParseTime(datetime.DateTimeLayout, "2025-01")}
}

func TestCalculate_FifteenYearExample(t *testing.T) {
	in := start()
	in.Principal = 200000
	in.AnnualRate = 6
	in.TermYears = 15

	result, err := Calculate(in)
	require.NoError(t, err)

	assert.InDelta(t, 1687.71, result.MonthlyPayment, 0.001)
	assert.InDelta(t, 103788, result.TotalInterest, 1.0)
	assert.Equal(t, 180, result.NumberOfPayments)
	assert.Len(t, result.Schedule, 180)
	assert.Equal(t, "2039-12", datetime.Format(result.PayoffDate))
	assert.Zero(t, result.InterestSaved)
	assert.Zero(t, result.MonthsSaved)
	assert.Len(t, result.YearSummaries, 15)
}

func TestCalculate_TotalPrincipalEqualsLoan(t *testing.T) {
	cases := []Inputs{
		{Principal: 200000, AnnualRate: 6, TermYears: 15},
		{Principal: 350000, AnnualRate: 7.25, TermYears: 30},
		{Principal: 18000, AnnualRate: 4.9, TermYears: 5, TermMonths: 6, ExtraMonthly: 75},
		{Principal: 950, AnnualRate: 21, TermMonths: 11},
	}

	for _, in := range cases {
		in.StartDate = start().StartDate
		result, err := Calculate(in)
		require.NoError(t, err)

		assert.InDelta(t, in.Principal, result.TotalPrincipal, 0.01, "principal for %+v", in)
		assert.InDelta(t, result.TotalPaid, result.TotalInterest+result.TotalPrincipal, 0.01)

		last := result.Schedule[len(result.Schedule)-1]
		assert.Zero(t, last.Balance, "final balance must be clamped to zero")

		previous := in.Principal
		for _, period := range result.Schedule {
			assert.LessOrEqual(t, period.Balance, previous, "balance must not increase at period %d", period.Number)
			assert.InDelta(t, period.TotalPayment, period.Interest+period.Principal+period.Extra, 0.011)
			previous = period.Balance
		}
	}
}

func TestCalculate_ExtraPaymentEndsEarly(t *testing.T) {
	in := start()
	in.Principal = 200000
	in.AnnualRate = 6
	in.TermYears = 15
	in.ExtraMonthly = 500

	result, err := CalculateWithLogger(zap.NewNop(), in)
	require.NoError(t, err)

	assert.Less(t, result.NumberOfPayments, 180)
	assert.Greater(t, result.InterestSaved, 0.0)
	assert.Equal(t, 180-result.NumberOfPayments, result.MonthsSaved)
	assert.InDelta(t, 200000, result.TotalPrincipal, 0.01)

	covered := 0
	for _, summary := range result.YearSummaries {
		covered += summary.Payments
	}
	assert.Equal(t, result.NumberOfPayments, covered, "year summaries only cover emitted periods")
}

func TestCalculate_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   Inputs
	}{
		{"Zero principal", Inputs{Principal: 0, AnnualRate: 5, TermYears: 10}},
		{"Negative principal", Inputs{Principal: -100, AnnualRate: 5, TermYears: 10}},
		{"Zero rate", Inputs{Principal: 1000, AnnualRate: 0, TermYears: 10}},
		{"Negative rate", Inputs{Principal: 1000, AnnualRate: -1, TermYears: 10}},
		{"Zero term", Inputs{Principal: 1000, AnnualRate: 5}},
		{"Negative months", Inputs{Principal: 1000, AnnualRate: 5, TermYears: 1, TermMonths: -3}},
		{"Term too long", Inputs{Principal: 1000, AnnualRate: 5, TermYears: 51}},
		{"Negative extra", Inputs{Principal: 1000, AnnualRate: 5, TermYears: 1, ExtraMonthly: -10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Calculate(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, validation.ErrInvalidInput), "expected invalid input, got %v", err)
			assert.Empty(t, result.Schedule)
		})
	}
}

func TestCalculate_DefaultsStartDate(t *testing.T) {
	result, err := Calculate(Inputs{Principal: 1000, AnnualRate: 5, TermMonths: 12})
	require.NoError(t, err)
	assert.False(t, result.Schedule[0].Date.IsZero())
	assert.Equal(t, 1, result.Schedule[0].Date.Day())
}
