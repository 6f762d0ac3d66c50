// Package compound projects the future value of a deposit under discrete or
// continuous compounding, with optional periodic contributions.
package compound

import (
	"math"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
)

// Inputs describes one projection. AnnualRate is a percentage; Duration is
// expressed in DurationUnit.
type Inputs struct {
	Principal             float64
	AnnualRate            float64
	Duration              float64
	DurationUnit          DurationUnit
	Compounding           Frequency
	Contribution          float64
	ContributionFrequency Frequency
	ContributionTiming    Timing
}

// YearBalance is the projected position at the end of a year, or at the end
// of the final fractional year.
type YearBalance struct {
	Year               float64
	Balance            float64
	TotalContributions float64
	TotalInterest      float64
}

// Result holds the projection. EffectiveAnnualRate is a percentage.
type Result struct {
	FutureValue             float64
	PrincipalFutureValue    float64
	ContributionFutureValue float64
	TotalContributions      float64
	TotalInterest           float64
	EffectiveAnnualRate     float64
	SimpleInterest          float64
	SimpleFutureValue       float64
	CompoundAdvantage       float64
	YearlyBreakdown         []YearBalance
}

// Years is the duration converted to years.
func (in Inputs) Years() float64 {
	return in.DurationUnit.ToYears(in.Duration)
}

// Validate checks the inputs against the engine invariants.
func (in Inputs) Validate() error {
	err := validation.First(
		validation.NonNegative("principal", in.Principal),
		validation.NonNegative("contribution", in.Contribution),
		validation.NonNegative("annualRate", in.AnnualRate),
		validation.Positive("duration", in.Duration),
		validation.AtMost("duration", in.Years(), constants.MaxCompoundYears),
	)
	if err != nil {
		return err
	}
	if in.Principal+in.Contribution <= 0 {
		return validation.Invalid("principal", "or contribution must be greater than zero")
	}
	if !in.Compounding.Valid() {
		return validation.Invalid("compounding", "must be a known frequency")
	}
	if !in.DurationUnit.Valid() {
		return validation.Invalid("durationUnit", "must be years, months, weeks or days")
	}
	if !in.ContributionTiming.Valid() {
		return validation.Invalid("contributionTiming", "must be beginning or end")
	}
	if in.Contribution > 0 {
		if !in.ContributionFrequency.Valid() || in.ContributionFrequency == Continuous {
			return validation.Invalid("contributionFrequency", "must be a discrete frequency")
		}
	}
	return nil
}

// Calculate runs the projection without logging.
func Calculate(in Inputs) (Result, error) {
	return CalculateWithLogger(nil, in)
}

// CalculateWithLogger runs the projection and emits a debug entry to logger.
func CalculateWithLogger(logger *zap.Logger, in Inputs) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	years := in.Years()
	rate := mathutil.PercentToDecimal(in.AnnualRate)
	final := in.position(rate, years)

	simple := in.Principal * rate * years
	result := Result{
		FutureValue:             mathutil.Round(final.principalValue + final.contributionValue),
		PrincipalFutureValue:    mathutil.Round(final.principalValue),
		ContributionFutureValue: mathutil.Round(final.contributionValue),
		TotalContributions:      mathutil.Round(final.contributed),
		TotalInterest:           mathutil.Round(final.interest()),
		EffectiveAnnualRate:     mathutil.Round(in.effectiveAnnualRate(rate) * constants.PercentageMultiplier),
		SimpleInterest:          mathutil.Round(simple),
		SimpleFutureValue:       mathutil.Round(in.Principal + simple),
		CompoundAdvantage:       mathutil.Round(final.principalValue - (in.Principal + simple)),
		YearlyBreakdown:         in.breakdown(rate, years),
	}

	logger.Debug("compound projection computed",
		zap.String("op", "compound.Calculate"),
		zap.String("compounding", in.Compounding.String()),
		zap.Float64("years", years),
		zap.Float64("futureValue", result.FutureValue),
	)

	return result, nil
}

type position struct {
	principal         float64
	principalValue    float64
	contributionValue float64
	contributed       float64
}

func (p position) interest() float64 {
	return p.principalValue + p.contributionValue - p.principal - p.contributed
}

// position projects the deposit and contributions to year t.
func (in Inputs) position(rate, t float64) position {
	p := position{principal: in.Principal, principalValue: in.principalGrowth(rate, t) * in.Principal}
	if in.Contribution <= 0 {
		return p
	}

	m := float64(in.ContributionFrequency.PeriodsPerYear())
	k := math.Floor(m*t + 1e-9)
	i := in.contributionRate(rate, m)
	value := mathutil.FutureValueAnnuity(in.Contribution, i, k)
	if in.ContributionTiming == Beginning {
		value *= 1 + i
	}
	p.contributionValue = value
	p.contributed = in.Contribution * k
	return p
}

func (in Inputs) principalGrowth(rate, t float64) float64 {
	if in.Compounding == Continuous {
		return math.Exp(rate * t)
	}
	n := float64(in.Compounding.PeriodsPerYear())
	return math.Pow(1+rate/n, n*t)
}

// contributionRate is the periodic rate equivalent to the compounding over
// one contribution period; it reduces to rate/m when both frequencies match.
func (in Inputs) contributionRate(rate, m float64) float64 {
	if in.Compounding == Continuous {
		return math.Exp(rate/m) - 1
	}
	n := float64(in.Compounding.PeriodsPerYear())
	return math.Pow(1+rate/n, n/m) - 1
}

func (in Inputs) effectiveAnnualRate(rate float64) float64 {
	return in.principalGrowth(rate, 1) - 1
}

func (in Inputs) breakdown(rate, years float64) []YearBalance {
	var marks []float64
	for year := 1.0; year <= years+1e-9; year++ {
		marks = append(marks, year)
	}
	if len(marks) == 0 || years-marks[len(marks)-1] > 1e-9 {
		marks = append(marks, years)
	}

	breakdown := make([]YearBalance, 0, len(marks))
	for _, mark := range marks {
		p := in.position(rate, mark)
		breakdown = append(breakdown, YearBalance{
			Year:               math.Round(mark*100) / 100,
			Balance:            mathutil.Round(p.principalValue + p.contributionValue),
			TotalContributions: mathutil.Round(p.contributed),
			TotalInterest:      mathutil.Round(p.interest()),
		})
	}
	return breakdown
}
