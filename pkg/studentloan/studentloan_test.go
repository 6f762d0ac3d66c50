package studentloan

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCalculateSimple(t *testing.T) {
	result, err := CalculateSimple(SimpleInputs{Balance: 30000, TermYears: 10, AnnualRate: 6.8})
	require.NoError(t, err)

	assert.InDelta(t, 345.24, result.MonthlyPayment, 0.05)
	assert.InDelta(t, result.MonthlyPayment*120, result.TotalPaid, 1.0)
	assert.InDelta(t, result.TotalPaid-30000, result.TotalInterest, 0.01)
}

func TestCalculateSimple_InvalidInput(t *testing.T) {
	for _, in := range []SimpleInputs{
		{Balance: 0, TermYears: 10, AnnualRate: 5},
		{Balance: 1000, TermYears: 0, AnnualRate: 5},
		{Balance: 1000, TermYears: 10, AnnualRate: 0},
		{Balance: 1000, TermYears: 60, AnnualRate: 5},
	} {
		_, err := CalculateSimple(in)
		assert.True(t, errors.Is(err, validation.ErrInvalidInput), "%+v: expected invalid input, got %v", in, err)
	}
}

func repaymentInputs() RepaymentInputs {
	return RepaymentInputs{
		Balance:        30000,
		MonthlyPayment: 350,
		AnnualRate:     6.8,
		StartDate:      datetime.MustParseTime(datetime.DateTimeLayout, "2025-09"),
	}
}

func TestCalculateRepayment_ExtraMonthlyShortensPayoff(t *testing.T) {
	in := repaymentInputs()
	in.ExtraMonthly = 150

	result, err := CalculateRepaymentWithLogger(zap.NewNop(), in)
	require.NoError(t, err)

	assert.True(t, result.Original.PaidOff)
	assert.True(t, result.Accelerated.PaidOff)
	assert.Less(t, result.Accelerated.Months, result.Original.Months)
	assert.Greater(t, result.InterestSaved, 0.0)
	assert.Equal(t, result.Original.Months-result.Accelerated.Months, result.MonthsSaved)
	assert.Len(t, result.Schedule, result.Accelerated.Months)
	assert.Zero(t, result.Schedule[len(result.Schedule)-1].Balance)
	assert.True(t, result.Accelerated.PayoffDate.Before(result.Original.PayoffDate))
}

func TestCalculateRepayment_NoExtrasMatchesOriginal(t *testing.T) {
	result, err := CalculateRepayment(repaymentInputs())
	require.NoError(t, err)

	assert.Equal(t, result.Original.Months, result.Accelerated.Months)
	assert.Equal(t, result.Original.TotalInterest, result.Accelerated.TotalInterest)
	assert.Equal(t, result.Original.TotalPaid, result.Accelerated.TotalPaid)
	assert.Zero(t, result.MonthsSaved)
	assert.Zero(t, result.InterestSaved)
}

func TestCalculateRepayment_ExtraTiming(t *testing.T) {
	in := repaymentInputs()
	in.ExtraYearly = 1000
	in.ExtraOneTime = 2500

	result, err := CalculateRepayment(in)
	require.NoError(t, err)

	assert.Equal(t, 2500.0, result.Schedule[0].Extra, "one-time extra lands in the first month")
	for _, period := range result.Schedule[1:] {
		if period.Number%12 == 0 && period.Balance > 0 {
			assert.Equal(t, 1000.0, period.Extra, "yearly extra at period %d", period.Number)
		} else if period.Number%12 != 0 {
			assert.Zero(t, period.Extra, "no extra at period %d", period.Number)
		}
	}
	assert.Greater(t, result.MonthsSaved, 0)
}

func TestCalculateRepayment_InsufficientPayment(t *testing.T) {
	in := repaymentInputs()
	in.MonthlyPayment = 150

	result, err := CalculateRepayment(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientPayment))
	assert.False(t, errors.Is(err, validation.ErrInvalidInput))

	var insufficient *InsufficientPaymentError
	require.True(t, errors.As(err, &insufficient))
	assert.InDelta(t, 170, insufficient.MinimumPayment, 0.01)
	assert.Equal(t, 150.0, insufficient.Payment)
	assert.Empty(t, result.Schedule)
}

func TestCalculateRepayment_MinimumPaymentRoundsUp(t *testing.T) {
	in := RepaymentInputs{Balance: 10000, MonthlyPayment: 10, AnnualRate: 5}

	_, err := CalculateRepayment(in)
	var insufficient *InsufficientPaymentError
	require.True(t, errors.As(err, &insufficient))
	// 10000 * 5% / 12 = 41.666...
	assert.Equal(t, 41.67, insufficient.MinimumPayment)
	assert.Contains(t, err.Error(), "41.67")
}

func TestCalculateRepayment_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RepaymentInputs)
	}{
		{"Zero balance", func(in *RepaymentInputs) { in.Balance = 0 }},
		{"Zero payment", func(in *RepaymentInputs) { in.MonthlyPayment = 0 }},
		{"Zero rate", func(in *RepaymentInputs) { in.AnnualRate = 0 }},
		{"Negative extra monthly", func(in *RepaymentInputs) { in.ExtraMonthly = -1 }},
		{"Negative extra yearly", func(in *RepaymentInputs) { in.ExtraYearly = -1 }},
		{"Negative one-time", func(in *RepaymentInputs) { in.ExtraOneTime = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := repaymentInputs()
			tt.mutate(&in)
			_, err := CalculateRepayment(in)
			assert.True(t, errors.Is(err, validation.ErrInvalidInput), "expected invalid input, got %v", err)
		})
	}
}

func TestCalculateProjection_CapitalizesInSchool(t *testing.T) {
	result, err := CalculateProjection(ProjectionInputs{
		YearsToGraduate:    1,
		AnnualLoanAmount:   1000,
		RepaymentTermYears: 10,
		AnnualRate:         12,
	})
	require.NoError(t, err)

	expected := 1000 * math.Pow(1.01, 12)
	assert.Equal(t, 1000.0, result.TotalBorrowed)
	assert.InDelta(t, expected, result.BalanceAtGraduation, 0.01)
	assert.InDelta(t, expected, result.BalanceAtRepayment, 0.01)
	assert.InDelta(t, expected-1000, result.CapitalizedInterest, 0.01)
	assert.Zero(t, result.InterestPaidInSchool)
}

func TestCalculateProjection_PayingInterestInSchool(t *testing.T) {
	result, err := CalculateProjection(ProjectionInputs{
		YearsToGraduate:     1,
		AnnualLoanAmount:    12000,
		RepaymentTermYears:  10,
		AnnualRate:          12,
		PayInterestInSchool: true,
	})
	require.NoError(t, err)

	assert.Zero(t, result.CapitalizedInterest)
	assert.InDelta(t, 1440, result.InterestPaidInSchool, 0.01)
	assert.Equal(t, 12000.0, result.BalanceAtGraduation)
	assert.Equal(t, 12000.0, result.BalanceAtRepayment)
	assert.InDelta(t, result.TotalRepaid+1440, result.TotalCost, 0.01)
	assert.InDelta(t, result.TotalCost-12000, result.TotalInterest, 0.01)
}

func TestCalculateProjection_DrawsAndGracePeriod(t *testing.T) {
	in := ProjectionInputs{
		YearsToGraduate:    4,
		AnnualLoanAmount:   10000,
		CurrentBalance:     5000,
		RepaymentTermYears: 10,
		GracePeriodMonths:  6,
		AnnualRate:         6,
	}
	result, err := CalculateProjection(in)
	require.NoError(t, err)

	assert.Equal(t, 45000.0, result.TotalBorrowed)
	assert.Greater(t, result.BalanceAtGraduation, 45000.0)
	assert.InDelta(t, result.BalanceAtGraduation*math.Pow(1.005, 6), result.BalanceAtRepayment, 0.02)
	assert.InDelta(t, result.BalanceAtRepayment-45000, result.CapitalizedInterest, 0.02)

	in.PayInterestInSchool = true
	paying, err := CalculateProjection(in)
	require.NoError(t, err)
	assert.Equal(t, 45000.0, paying.BalanceAtGraduation)
	// Grace-period interest still capitalizes.
	assert.Greater(t, paying.CapitalizedInterest, 0.0)
	assert.Less(t, paying.MonthlyPayment, result.MonthlyPayment)
}

func TestCalculateProjection_AlreadyGraduated(t *testing.T) {
	result, err := CalculateProjection(ProjectionInputs{
		AnnualLoanAmount:   10000,
		CurrentBalance:     8000,
		RepaymentTermYears: 10,
		AnnualRate:         6,
	})
	require.NoError(t, err)

	assert.Equal(t, 8000.0, result.TotalBorrowed, "no draws without school years left")
	assert.Equal(t, 8000.0, result.BalanceAtGraduation)
	assert.Zero(t, result.CapitalizedInterest)
}

func TestCalculateProjection_InvalidInput(t *testing.T) {
	valid := ProjectionInputs{YearsToGraduate: 2, AnnualLoanAmount: 5000, RepaymentTermYears: 10, AnnualRate: 5}

	tests := []struct {
		name   string
		mutate func(*ProjectionInputs)
	}{
		{"Negative years", func(in *ProjectionInputs) { in.YearsToGraduate = -1 }},
		{"Negative draw", func(in *ProjectionInputs) { in.AnnualLoanAmount = -1 }},
		{"Nothing borrowed", func(in *ProjectionInputs) { in.AnnualLoanAmount = 0 }},
		{"Zero term", func(in *ProjectionInputs) { in.RepaymentTermYears = 0 }},
		{"Grace period too long", func(in *ProjectionInputs) { in.GracePeriodMonths = 61 }},
		{"Zero rate", func(in *ProjectionInputs) { in.AnnualRate = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := CalculateProjection(in)
			assert.True(t, errors.Is(err, validation.ErrInvalidInput), "expected invalid input, got %v", err)
		})
	}
}
