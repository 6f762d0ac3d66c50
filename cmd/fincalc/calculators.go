package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/spf13/cobra"
)

// single runs one calculation defined by flags through the same path as a
// configuration file.
func single(cmd *cobra.Command, opts *cliOptions, calc config.Calculation) error {
	conf, err := config.LoadEnvironment()
	if err != nil {
		return err
	}
	if calc.Name == "" {
		calc.Name = calc.Type
	}
	conf.Calculations = []config.Calculation{calc}
	return execute(cmd, opts, conf, true)
}

func amortizationCmd(opts *cliOptions) *cobra.Command {
	var name string
	section := &config.AmortizationConfig{}

	cmd := &cobra.Command{
		Use:   "amortization",
		Short: "Monthly payment and amortization schedule of a fixed-rate loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return single(cmd, opts, config.Calculation{Name: name, Type: constants.CalculationAmortization, Amortization: section})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "calculation name")
	flags.Float64Var(&section.Principal, "principal", 0, "loan principal")
	flags.Float64Var(&section.InterestRate, "rate", 0, "annual interest rate in percent")
	flags.IntVar(&section.TermYears, "years", 0, "term in years")
	flags.IntVar(&section.TermMonths, "months", 0, "additional term in months")
	flags.StringVar(&section.StartDate, "start", "", "first payment month (YYYY-MM), defaults to the current month")
	flags.Float64Var(&section.ExtraMonthly, "extra-monthly", 0, "extra principal paid every month")
	return cmd
}

func compoundCmd(opts *cliOptions) *cobra.Command {
	var name string
	section := &config.CompoundConfig{}

	cmd := &cobra.Command{
		Use:   "compound",
		Short: "Future value of a principal with optional periodic contributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return single(cmd, opts, config.Calculation{Name: name, Type: constants.CalculationCompound, Compound: section})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "calculation name")
	flags.Float64Var(&section.Principal, "principal", 0, "initial principal")
	flags.Float64Var(&section.InterestRate, "rate", 0, "annual interest rate in percent")
	flags.Float64Var(&section.Duration, "duration", 0, "investment horizon")
	flags.StringVar(&section.DurationUnit, "unit", "years", "duration unit: years, months, weeks, days")
	flags.StringVar(&section.Compounding, "compounding", "monthly", "compounding frequency: annually, semiannually, quarterly, monthly, biweekly, weekly, daily, continuous")
	flags.Float64Var(&section.Contribution, "contribution", 0, "periodic contribution")
	flags.StringVar(&section.ContributionFrequency, "contribution-frequency", "", "contribution frequency, defaults to the compounding frequency")
	flags.StringVar(&section.ContributionTiming, "timing", "end", "contribution timing: end, beginning")
	return cmd
}

func mortgageCmd(opts *cliOptions) *cobra.Command {
	var name string
	var oneTime []string
	section := &config.MortgageConfig{}

	cmd := &cobra.Command{
		Use:   "mortgage",
		Short: "Full monthly housing cost including taxes, insurance, PMI and extra payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payments, err := parseOneTimePayments(oneTime)
			if err != nil {
				return err
			}
			section.OneTime = payments
			return single(cmd, opts, config.Calculation{Name: name, Type: constants.CalculationMortgage, Mortgage: section})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "calculation name")
	flags.Float64Var(&section.HomePrice, "price", 0, "home price")
	flags.Float64Var(&section.DownPayment, "down", 20, "down payment, in percent or dollars per --down-type")
	flags.StringVar(&section.DownPaymentType, "down-type", "percent", "down payment type: percent, amount")
	flags.Float64Var(&section.InterestRate, "rate", 0, "annual interest rate in percent")
	flags.IntVar(&section.TermYears, "years", 30, "term in years")
	flags.Float64Var(&section.PropertyTaxRate, "property-tax", 0, "annual property tax as a percent of the home price")
	flags.Float64Var(&section.AnnualInsurance, "insurance", 0, "annual homeowners insurance")
	flags.Float64Var(&section.PMIRate, "pmi", 0, "annual PMI rate in percent of the loan amount")
	flags.Float64Var(&section.MonthlyHOA, "hoa", 0, "monthly HOA dues")
	flags.Float64Var(&section.AnnualOtherCosts, "other-costs", 0, "other annual housing costs")
	flags.StringVar(&section.StartDate, "start", "", "first payment month (YYYY-MM), defaults to the current month")
	flags.Float64Var(&section.ExtraMonthly, "extra-monthly", 0, "extra principal paid every month")
	flags.Float64Var(&section.ExtraYearly, "extra-yearly", 0, "extra principal paid every January after the first year")
	flags.StringSliceVar(&oneTime, "one-time", nil, "one-time extra payment as AMOUNT@YYYY-MM, repeatable")
	flags.Float64Var(&section.Escalation.PropertyTax, "tax-escalation", 0, "yearly property tax increase in percent")
	flags.Float64Var(&section.Escalation.Insurance, "insurance-escalation", 0, "yearly insurance increase in percent")
	flags.Float64Var(&section.Escalation.HOA, "hoa-escalation", 0, "yearly HOA increase in percent")
	flags.Float64Var(&section.Escalation.Other, "other-escalation", 0, "yearly other cost increase in percent")
	return cmd
}

// parseOneTimePayments reads AMOUNT@YYYY-MM values.
func parseOneTimePayments(values []string) ([]config.ExtraPaymentConfig, error) {
	payments := make([]config.ExtraPaymentConfig, 0, len(values))
	for _, value := range values {
		amountText, dateText, ok := strings.Cut(value, "@")
		if !ok {
			return nil, fmt.Errorf("invalid one-time payment %q, expected AMOUNT@YYYY-MM", value)
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(amountText), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid one-time payment amount %q: %w", amountText, err)
		}
		date, err := datetime.ParseMonth(strings.TrimSpace(dateText), time.Time{})
		if err != nil {
			return nil, err
		}
		payments = append(payments, config.ExtraPaymentConfig{Amount: amount, Month: int(date.Month()), Year: date.Year()})
	}
	return payments, nil
}

func retirementCmd(opts *cliOptions) *cobra.Command {
	var name string
	section := &config.RetirementConfig{}

	cmd := &cobra.Command{
		Use:   "retirement",
		Short: "Retirement needs, savings plan, sustainable withdrawal or money duration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return single(cmd, opts, config.Calculation{Name: name, Type: constants.CalculationRetirement, Retirement: section})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "calculation name")
	flags.StringVar(&section.Mode, "mode", "needs", "mode: needs, savings-plan, withdrawal-amount, money-duration")
	flags.IntVar(&section.CurrentAge, "age", 0, "current age")
	flags.IntVar(&section.RetirementAge, "retirement-age", 65, "retirement age")
	flags.IntVar(&section.LifeExpectancy, "life-expectancy", 90, "life expectancy")
	flags.Float64Var(&section.CurrentIncome, "income", 0, "current annual income")
	flags.Float64Var(&section.IncomeGrowth, "income-growth", 0, "yearly income growth in percent")
	flags.Float64Var(&section.IncomeReplacement, "replacement", 80, "share of final income needed in retirement, in percent")
	flags.Float64Var(&section.InvestmentReturn, "return", 6, "annual investment return in percent")
	flags.Float64Var(&section.Inflation, "inflation", 0, "annual inflation in percent")
	flags.Float64Var(&section.CurrentSavings, "savings", 0, "current retirement savings")
	flags.Float64Var(&section.ContributionRate, "contribution-rate", 0, "share of income saved, in percent")
	flags.Float64Var(&section.SavingsTarget, "target", 0, "savings target at retirement (savings-plan)")
	flags.Float64Var(&section.MonthlyContribution, "monthly-contribution", 0, "monthly contribution (withdrawal-amount)")
	flags.Float64Var(&section.MonthlyWithdrawal, "monthly-withdrawal", 0, "monthly withdrawal (money-duration)")
	return cmd
}

func studentLoanCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "student-loan",
		Short: "Student loan payment, repayment and borrowing projection calculators",
	}
	cmd.AddCommand(studentLoanSimpleCmd(opts), studentLoanRepaymentCmd(opts), studentLoanProjectionCmd(opts))
	return cmd
}

func studentLoanSimpleCmd(opts *cliOptions) *cobra.Command {
	var name string
	section := &config.StudentLoanConfig{}

	cmd := &cobra.Command{
		Use:   "simple",
		Short: "Monthly payment to repay a balance over a term",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return single(cmd, opts, config.Calculation{Name: name, Type: constants.CalculationStudentLoanSimple, StudentLoan: section})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "calculation name")
	flags.Float64Var(&section.Balance, "balance", 0, "loan balance")
	flags.IntVar(&section.TermYears, "years", 10, "repayment term in years")
	flags.Float64Var(&section.InterestRate, "rate", 0, "annual interest rate in percent")
	return cmd
}

func studentLoanRepaymentCmd(opts *cliOptions) *cobra.Command {
	var name string
	section := &config.StudentLoanConfig{}

	cmd := &cobra.Command{
		Use:   "repayment",
		Short: "Payoff time and interest for a fixed payment with optional extra payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return single(cmd, opts, config.Calculation{Name: name, Type: constants.CalculationStudentLoanRepayment, StudentLoan: section})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "calculation name")
	flags.Float64Var(&section.Balance, "balance", 0, "loan balance")
	flags.Float64Var(&section.MonthlyPayment, "payment", 0, "monthly payment")
	flags.Float64Var(&section.InterestRate, "rate", 0, "annual interest rate in percent")
	flags.Float64Var(&section.ExtraMonthly, "extra-monthly", 0, "extra principal paid every month")
	flags.Float64Var(&section.ExtraYearly, "extra-yearly", 0, "extra principal paid every twelfth payment")
	flags.Float64Var(&section.ExtraOneTime, "extra-one-time", 0, "extra principal paid with the first payment")
	flags.StringVar(&section.StartDate, "start", "", "first payment month (YYYY-MM), defaults to the current month")
	return cmd
}

func studentLoanProjectionCmd(opts *cliOptions) *cobra.Command {
	var name string
	section := &config.StudentLoanConfig{}

	cmd := &cobra.Command{
		Use:   "projection",
		Short: "Balance at graduation and the resulting repayment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return single(cmd, opts, config.Calculation{Name: name, Type: constants.CalculationStudentLoanProjection, StudentLoan: section})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "calculation name")
	flags.IntVar(&section.YearsToGraduate, "years-to-graduate", 4, "years of school remaining")
	flags.Float64Var(&section.AnnualLoanAmount, "annual-amount", 0, "amount borrowed each school year")
	flags.Float64Var(&section.CurrentBalance, "current-balance", 0, "balance already borrowed")
	flags.IntVar(&section.RepaymentTermYears, "term", 10, "repayment term in years")
	flags.IntVar(&section.GracePeriodMonths, "grace", 6, "grace period in months after graduation")
	flags.Float64Var(&section.InterestRate, "rate", 0, "annual interest rate in percent")
	flags.BoolVar(&section.PayInterestInSchool, "pay-interest", false, "pay interest while in school instead of capitalizing it")
	return cmd
}
