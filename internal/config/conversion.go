package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/amortization"
	"github.com/iwvelando/finance-calculators/pkg/compound"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/mortgage"
	"github.com/iwvelando/finance-calculators/pkg/retirement"
	"github.com/iwvelando/finance-calculators/pkg/studentloan"
)

// ErrMissingSection is returned when a calculation lacks the section its type requires.
var ErrMissingSection = errors.New("missing calculation section")

func (c Calculation) missing(section string) error {
	return fmt.Errorf("calculation %q of type %s: %w %q", c.Name, c.Type, ErrMissingSection, section)
}

// parseStartDate leaves an empty date as the zero time so the engines apply
// their current-month default.
func parseStartDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return datetime.ParseMonth(value, time.Time{})
}

// AmortizationInputs converts the amortization section into engine inputs.
func (c Calculation) AmortizationInputs() (amortization.Inputs, error) {
	section := c.Amortization
	if section == nil {
		return amortization.Inputs{}, c.missing("amortization")
	}
	start, err := parseStartDate(section.StartDate)
	if err != nil {
		return amortization.Inputs{}, fmt.Errorf("calculation %q: %w", c.Name, err)
	}
	return amortization.Inputs{
		Principal:    section.Principal,
		AnnualRate:   section.InterestRate,
		TermYears:    section.TermYears,
		TermMonths:   section.TermMonths,
		StartDate:    start,
		ExtraMonthly: section.ExtraMonthly,
	}, nil
}

// CompoundInputs converts the compound section into engine inputs. Compounding
// defaults to monthly and contributions default to the compounding frequency
// (monthly when compounding is continuous).
func (c Calculation) CompoundInputs() (compound.Inputs, error) {
	section := c.Compound
	if section == nil {
		return compound.Inputs{}, c.missing("compound")
	}

	unit, err := compound.ParseDurationUnit(section.DurationUnit)
	if err != nil {
		return compound.Inputs{}, fmt.Errorf("calculation %q: %w", c.Name, err)
	}

	compounding := compound.Monthly
	if section.Compounding != "" {
		if compounding, err = compound.ParseFrequency(section.Compounding); err != nil {
			return compound.Inputs{}, fmt.Errorf("calculation %q: %w", c.Name, err)
		}
	}

	contributionFrequency := compounding
	if contributionFrequency == compound.Continuous {
		contributionFrequency = compound.Monthly
	}
	if section.ContributionFrequency != "" {
		if contributionFrequency, err = compound.ParseFrequency(section.ContributionFrequency); err != nil {
			return compound.Inputs{}, fmt.Errorf("calculation %q: %w", c.Name, err)
		}
	}

	timing, err := compound.ParseTiming(section.ContributionTiming)
	if err != nil {
		return compound.Inputs{}, fmt.Errorf("calculation %q: %w", c.Name, err)
	}

	return compound.Inputs{
		Principal:             section.Principal,
		AnnualRate:            section.InterestRate,
		Duration:              section.Duration,
		DurationUnit:          unit,
		Compounding:           compounding,
		Contribution:          section.Contribution,
		ContributionFrequency: contributionFrequency,
		ContributionTiming:    timing,
	}, nil
}

// MortgageInputs converts the mortgage section into engine inputs. The first
// one-time payment fills Inputs.OneTime and the rest MultipleOneTime.
func (c Calculation) MortgageInputs() (mortgage.Inputs, error) {
	section := c.Mortgage
	if section == nil {
		return mortgage.Inputs{}, c.missing("mortgage")
	}

	downPaymentType, err := mortgage.ParseDownPaymentType(section.DownPaymentType)
	if err != nil {
		return mortgage.Inputs{}, fmt.Errorf("calculation %q: %w", c.Name, err)
	}
	start, err := parseStartDate(section.StartDate)
	if err != nil {
		return mortgage.Inputs{}, fmt.Errorf("calculation %q: %w", c.Name, err)
	}

	in := mortgage.Inputs{
		HomePrice:        section.HomePrice,
		DownPayment:      section.DownPayment,
		DownPaymentType:  downPaymentType,
		AnnualRate:       section.InterestRate,
		TermYears:        section.TermYears,
		PropertyTaxRate:  section.PropertyTaxRate,
		AnnualInsurance:  section.AnnualInsurance,
		PMIRate:          section.PMIRate,
		MonthlyHOA:       section.MonthlyHOA,
		AnnualOtherCosts: section.AnnualOtherCosts,
		StartDate:        start,
		ExtraMonthly:     section.ExtraMonthly,
		ExtraYearly:      section.ExtraYearly,
		Escalation: mortgage.Escalation{
			PropertyTax: section.Escalation.PropertyTax,
			Insurance:   section.Escalation.Insurance,
			HOA:         section.Escalation.HOA,
			Other:       section.Escalation.Other,
		},
	}
	for i, extra := range section.OneTime {
		payment := mortgage.ExtraPayment{Amount: extra.Amount, Month: extra.Month, Year: extra.Year}
		if i == 0 {
			in.OneTime = payment
			continue
		}
		in.MultipleOneTime = append(in.MultipleOneTime, payment)
	}
	return in, nil
}

// RetirementInputs converts the retirement section into engine inputs.
func (c Calculation) RetirementInputs() (retirement.Inputs, error) {
	section := c.Retirement
	if section == nil {
		return retirement.Inputs{}, c.missing("retirement")
	}
	mode, err := retirement.ParseMode(section.Mode)
	if err != nil {
		return retirement.Inputs{}, fmt.Errorf("calculation %q: %w", c.Name, err)
	}
	return retirement.Inputs{
		Mode:                mode,
		CurrentAge:          section.CurrentAge,
		RetirementAge:       section.RetirementAge,
		LifeExpectancy:      section.LifeExpectancy,
		CurrentIncome:       section.CurrentIncome,
		IncomeGrowth:        section.IncomeGrowth,
		IncomeReplacement:   section.IncomeReplacement,
		InvestmentReturn:    section.InvestmentReturn,
		Inflation:           section.Inflation,
		CurrentSavings:      section.CurrentSavings,
		ContributionRate:    section.ContributionRate,
		SavingsTarget:       section.SavingsTarget,
		MonthlyContribution: section.MonthlyContribution,
		MonthlyWithdrawal:   section.MonthlyWithdrawal,
	}, nil
}

// StudentLoanSimpleInputs converts the studentLoan section for the simple calculator.
func (c Calculation) StudentLoanSimpleInputs() (studentloan.SimpleInputs, error) {
	section := c.StudentLoan
	if section == nil {
		return studentloan.SimpleInputs{}, c.missing("studentLoan")
	}
	return studentloan.SimpleInputs{
		Balance:    section.Balance,
		TermYears:  section.TermYears,
		AnnualRate: section.InterestRate,
	}, nil
}

// StudentLoanRepaymentInputs converts the studentLoan section for the repayment calculator.
func (c Calculation) StudentLoanRepaymentInputs() (studentloan.RepaymentInputs, error) {
	section := c.StudentLoan
	if section == nil {
		return studentloan.RepaymentInputs{}, c.missing("studentLoan")
	}
	start, err := parseStartDate(section.StartDate)
	if err != nil {
		return studentloan.RepaymentInputs{}, fmt.Errorf("calculation %q: %w", c.Name, err)
	}
	return studentloan.RepaymentInputs{
		Balance:        section.Balance,
		MonthlyPayment: section.MonthlyPayment,
		AnnualRate:     section.InterestRate,
		ExtraMonthly:   section.ExtraMonthly,
		ExtraYearly:    section.ExtraYearly,
		ExtraOneTime:   section.ExtraOneTime,
		StartDate:      start,
	}, nil
}

// StudentLoanProjectionInputs converts the studentLoan section for the
// borrowing projection.
func (c Calculation) StudentLoanProjectionInputs() (studentloan.ProjectionInputs, error) {
	section := c.StudentLoan
	if section == nil {
		return studentloan.ProjectionInputs{}, c.missing("studentLoan")
	}
	return studentloan.ProjectionInputs{
		YearsToGraduate:     section.YearsToGraduate,
		AnnualLoanAmount:    section.AnnualLoanAmount,
		CurrentBalance:      section.CurrentBalance,
		RepaymentTermYears:  section.RepaymentTermYears,
		GracePeriodMonths:   section.GracePeriodMonths,
		AnnualRate:          section.InterestRate,
		PayInterestInSchool: section.PayInterestInSchool,
	}, nil
}
