package retirement

import (
	"fmt"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

// Mode selects the retirement calculation.
type Mode int

const (
	Needs Mode = iota + 1
	SavingsPlan
	WithdrawalAmount
	MoneyDuration
)

var modeNames = map[Mode]string{
	Needs:            "needs",
	SavingsPlan:      "savings-plan",
	WithdrawalAmount: "withdrawal-amount",
	MoneyDuration:    "money-duration",
}

// ParseMode maps a configuration value onto a Mode.
func ParseMode(value string) (Mode, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for mode, name := range modeNames {
		if name == normalized {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown retirement mode %q", value)
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Inputs holds the shared retirement assumptions plus the parameters of the
// selected mode. Growth, return, inflation, replacement and contribution
// rates are percentages.
type Inputs struct {
	Mode              Mode
	CurrentAge        int
	RetirementAge     int
	LifeExpectancy    int
	CurrentIncome     float64
	IncomeGrowth      float64
	IncomeReplacement float64
	InvestmentReturn  float64
	Inflation         float64
	CurrentSavings    float64
	ContributionRate  float64

	SavingsTarget       float64
	MonthlyContribution float64
	MonthlyWithdrawal   float64
}

// YearsToRetirement is the accumulation horizon.
func (in Inputs) YearsToRetirement() int {
	return in.RetirementAge - in.CurrentAge
}

// YearsInRetirement is the distribution horizon.
func (in Inputs) YearsInRetirement() int {
	return in.LifeExpectancy - in.RetirementAge
}

// Validate checks the inputs against the engine invariants.
func (in Inputs) Validate() error {
	if _, ok := modeNames[in.Mode]; !ok {
		return validation.Invalid("mode", "must be one of needs, savings-plan, withdrawal-amount, money-duration")
	}

	err := validation.First(
		validation.Between("currentAge", float64(in.CurrentAge), 0, constants.MaxAge),
		validation.Between("retirementAge", float64(in.RetirementAge), 0, constants.MaxAge),
		validation.Between("lifeExpectancy", float64(in.LifeExpectancy), 0, constants.MaxAge),
		validation.Less("currentAge", float64(in.CurrentAge), "retirementAge", float64(in.RetirementAge)),
		validation.Less("retirementAge", float64(in.RetirementAge), "lifeExpectancy", float64(in.LifeExpectancy)),
		aboveMinusHundred("incomeGrowth", in.IncomeGrowth),
		aboveMinusHundred("investmentReturn", in.InvestmentReturn),
		aboveMinusHundred("inflation", in.Inflation),
		validation.NonNegative("incomeReplacement", in.IncomeReplacement),
		validation.NonNegative("contributionRate", in.ContributionRate),
		validation.NonNegative("currentIncome", in.CurrentIncome),
		validation.NonNegative("currentSavings", in.CurrentSavings),
		validation.NonNegative("savingsTarget", in.SavingsTarget),
		validation.NonNegative("monthlyContribution", in.MonthlyContribution),
		validation.NonNegative("monthlyWithdrawal", in.MonthlyWithdrawal),
	)
	if err != nil {
		return err
	}

	switch in.Mode {
	case Needs:
		return validation.Positive("currentIncome", in.CurrentIncome)
	case SavingsPlan:
		return validation.Positive("savingsTarget", in.SavingsTarget)
	case MoneyDuration:
		return validation.First(
			validation.Positive("monthlyWithdrawal", in.MonthlyWithdrawal),
			validation.Positive("currentSavings", in.CurrentSavings),
		)
	}
	return nil
}

func aboveMinusHundred(field string, percent float64) error {
	if err := validation.Finite(field, percent); err != nil {
		return err
	}
	if percent <= -constants.PercentageMultiplier {
		return validation.Invalid(field, "must be greater than -100%%, got %g", percent)
	}
	return nil
}
