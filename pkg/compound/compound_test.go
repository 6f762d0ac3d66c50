package compound

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/finance-calculators/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_MonthlyCompoundingExample(t *testing.T) {
	result, err := Calculate(Inputs{
		Principal:   10000,
		AnnualRate:  7,
		Duration:    10,
		Compounding: Monthly,
	})
	require.NoError(t, err)

	assert.InDelta(t, 20096.61, result.FutureValue, 0.01)
	assert.Equal(t, result.FutureValue, result.PrincipalFutureValue)
	assert.Zero(t, result.ContributionFutureValue)
	assert.Zero(t, result.TotalContributions)
	assert.InDelta(t, 10096.61, result.TotalInterest, 0.01)
	assert.InDelta(t, 7.23, result.EffectiveAnnualRate, 0.001)
	assert.InDelta(t, 7000, result.SimpleInterest, 0.001)
	assert.InDelta(t, 17000, result.SimpleFutureValue, 0.001)
	assert.InDelta(t, 3096.61, result.CompoundAdvantage, 0.01)
	assert.Len(t, result.YearlyBreakdown, 10)
}

func TestCalculate_CompoundingFrequencyIsMonotonic(t *testing.T) {
	ordered := []Frequency{Annually, Semiannually, Quarterly, Monthly, Biweekly, Weekly, Daily, Continuous}

	previous := 0.0
	for _, frequency := range ordered {
		result, err := Calculate(Inputs{Principal: 10000, AnnualRate: 7, Duration: 10, Compounding: frequency})
		require.NoError(t, err)
		assert.Greater(t, result.FutureValue, previous, "%s should beat the less frequent compounding", frequency)
		previous = result.FutureValue
	}

	continuous, err := Calculate(Inputs{Principal: 10000, AnnualRate: 7, Duration: 10, Compounding: Continuous})
	require.NoError(t, err)
	assert.InDelta(t, 10000*math.Exp(0.7), continuous.FutureValue, 0.01)
	assert.InDelta(t, 7.25, continuous.EffectiveAnnualRate, 0.001)
}

func TestCalculate_ContributionsMatchingFrequency(t *testing.T) {
	result, err := Calculate(Inputs{
		AnnualRate:            5,
		Duration:              10,
		Compounding:           Monthly,
		Contribution:          100,
		ContributionFrequency: Monthly,
	})
	require.NoError(t, err)

	i := 0.05 / 12
	expected := 100 * (math.Pow(1+i, 120) - 1) / i
	assert.InDelta(t, expected, result.ContributionFutureValue, 0.01)
	assert.InDelta(t, 12000, result.TotalContributions, 0.001)
	assert.InDelta(t, result.FutureValue-12000, result.TotalInterest, 0.011)
}

func TestCalculate_BeginningTimingEarnsMore(t *testing.T) {
	in := Inputs{
		Principal:             5000,
		AnnualRate:            6,
		Duration:              20,
		Compounding:           Quarterly,
		Contribution:          250,
		ContributionFrequency: Monthly,
	}
	end, err := Calculate(in)
	require.NoError(t, err)

	in.ContributionTiming = Beginning
	beginning, err := Calculate(in)
	require.NoError(t, err)

	assert.Greater(t, beginning.FutureValue, end.FutureValue)
	assert.Equal(t, end.TotalContributions, beginning.TotalContributions)
}

func TestCalculate_ZeroRateDegeneratesToContributionCount(t *testing.T) {
	result, err := Calculate(Inputs{
		Principal:             1000,
		Duration:              2,
		Compounding:           Monthly,
		Contribution:          100,
		ContributionFrequency: Monthly,
		ContributionTiming:    Beginning,
	})
	require.NoError(t, err)

	assert.InDelta(t, 2400, result.ContributionFutureValue, 0.001)
	assert.InDelta(t, 3400, result.FutureValue, 0.001)
	assert.Zero(t, result.TotalInterest)
	assert.Zero(t, result.EffectiveAnnualRate)
}

func TestCalculate_FractionalYearBreakdown(t *testing.T) {
	result, err := Calculate(Inputs{
		Principal:             2000,
		AnnualRate:            4,
		Duration:              30,
		DurationUnit:          Months,
		Compounding:           Daily,
		Contribution:          50,
		ContributionFrequency: Monthly,
	})
	require.NoError(t, err)

	require.Len(t, result.YearlyBreakdown, 3)
	assert.Equal(t, []float64{1, 2, 2.5}, []float64{
		result.YearlyBreakdown[0].Year,
		result.YearlyBreakdown[1].Year,
		result.YearlyBreakdown[2].Year,
	})
	last := result.YearlyBreakdown[2]
	assert.Equal(t, result.FutureValue, last.Balance)
	assert.InDelta(t, 1500, last.TotalContributions, 0.001)

	for i := 1; i < len(result.YearlyBreakdown); i++ {
		assert.Greater(t, result.YearlyBreakdown[i].Balance, result.YearlyBreakdown[i-1].Balance)
	}
}

func TestCalculate_DurationUnitsConvertToYears(t *testing.T) {
	base := Inputs{Principal: 1000, AnnualRate: 5, Compounding: Annually}

	years := base
	years.Duration = 1
	months := base
	months.Duration, months.DurationUnit = 12, Months
	weeks := base
	weeks.Duration, weeks.DurationUnit = 52, Weeks
	days := base
	days.Duration, days.DurationUnit = 365, Days

	expected, err := Calculate(years)
	require.NoError(t, err)
	for _, in := range []Inputs{months, weeks, days} {
		result, err := Calculate(in)
		require.NoError(t, err)
		assert.InDelta(t, expected.FutureValue, result.FutureValue, 0.001, "unit %s", in.DurationUnit)
	}
}

func TestCalculate_InvalidInput(t *testing.T) {
	valid := Inputs{Principal: 1000, AnnualRate: 5, Duration: 10, Compounding: Monthly}

	tests := []struct {
		name   string
		mutate func(*Inputs)
	}{
		{"Negative principal", func(in *Inputs) { in.Principal = -1 }},
		{"Nothing invested", func(in *Inputs) { in.Principal = 0 }},
		{"Negative rate", func(in *Inputs) { in.AnnualRate = -0.5 }},
		{"Zero duration", func(in *Inputs) { in.Duration = 0 }},
		{"Duration too long", func(in *Inputs) { in.Duration = 101 }},
		{"Unknown compounding", func(in *Inputs) { in.Compounding = 0 }},
		{"Negative contribution", func(in *Inputs) { in.Contribution = -5 }},
		{"Continuous contributions", func(in *Inputs) {
			in.Contribution = 10
			in.ContributionFrequency = Continuous
		}},
		{"Missing contribution frequency", func(in *Inputs) { in.Contribution = 10 }},
		{"Unknown duration unit", func(in *Inputs) { in.DurationUnit = DurationUnit(9) }},
		{"Unknown contribution timing", func(in *Inputs) { in.ContributionTiming = Timing(5) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := Calculate(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, validation.ErrInvalidInput), "expected invalid input, got %v", err)
		})
	}
}

func TestParseEnums(t *testing.T) {
	frequency, err := ParseFrequency(" Quarterly ")
	require.NoError(t, err)
	assert.Equal(t, Quarterly, frequency)
	assert.Equal(t, 4, frequency.PeriodsPerYear())
	assert.Zero(t, Continuous.PeriodsPerYear())

	_, err = ParseFrequency("hourly")
	assert.Error(t, err)

	timing, err := ParseTiming("beginning")
	require.NoError(t, err)
	assert.Equal(t, Beginning, timing)
	timing, err = ParseTiming("")
	require.NoError(t, err)
	assert.Equal(t, End, timing)
	_, err = ParseTiming("middle")
	assert.Error(t, err)

	unit, err := ParseDurationUnit("weeks")
	require.NoError(t, err)
	assert.Equal(t, Weeks, unit)
	_, err = ParseDurationUnit("fortnights")
	assert.Error(t, err)
}
