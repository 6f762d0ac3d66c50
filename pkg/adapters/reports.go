// Package adapters converts engine results into output reports.
package adapters

import (
	"strconv"

	"github.com/iwvelando/finance-calculators/pkg/amortization"
	"github.com/iwvelando/finance-calculators/pkg/compound"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/loans"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/mortgage"
	"github.com/iwvelando/finance-calculators/pkg/optimization"
	"github.com/iwvelando/finance-calculators/pkg/output"
	"github.com/iwvelando/finance-calculators/pkg/retirement"
	"github.com/iwvelando/finance-calculators/pkg/studentloan"
)

// Options selects the optional tables of a report.
type Options struct {
	// Schedule adds the full per-period schedule where the engine produces one.
	Schedule bool
}

func field(label string, value output.Value) output.Field {
	return output.Field{Label: label, Value: value}
}

func year(y int) output.Value {
	return output.Text(strconv.Itoa(y))
}

// AmortizationReport renders an amortization result.
func AmortizationReport(name string, result amortization.Result, opts Options) output.Report {
	report := output.Report{
		Name: name,
		Type: constants.CalculationAmortization,
		Summary: []output.Field{
			field("Monthly payment", output.Currency(result.MonthlyPayment)),
			field("Number of payments", output.Integer(result.NumberOfPayments)),
			field("Payoff date", output.Text(datetime.Format(result.PayoffDate))),
			field("Total principal", output.Currency(result.TotalPrincipal)),
			field("Total interest", output.Currency(result.TotalInterest)),
			field("Total paid", output.Currency(result.TotalPaid)),
		},
		Tables: []output.Table{yearSummaryTable(result.YearSummaries)},
	}
	if mathutil.IsPositive(result.InterestSaved) || result.MonthsSaved > 0 {
		report.Summary = append(report.Summary,
			field("Interest saved", output.Currency(result.InterestSaved)),
			field("Months saved", output.Integer(result.MonthsSaved)),
		)
	}
	if opts.Schedule {
		report.Tables = append(report.Tables, scheduleTable(result.Schedule))
	}
	return report
}

// CompoundReport renders a compound interest projection.
func CompoundReport(name string, result compound.Result) output.Report {
	rows := make([][]output.Value, 0, len(result.YearlyBreakdown))
	for _, y := range result.YearlyBreakdown {
		rows = append(rows, []output.Value{
			output.Number(y.Year),
			output.Currency(y.Balance),
			output.Currency(y.TotalContributions),
			output.Currency(y.TotalInterest),
		})
	}

	return output.Report{
		Name: name,
		Type: constants.CalculationCompound,
		Summary: []output.Field{
			field("Future value", output.Currency(result.FutureValue)),
			field("Principal future value", output.Currency(result.PrincipalFutureValue)),
			field("Contribution future value", output.Currency(result.ContributionFutureValue)),
			field("Total contributions", output.Currency(result.TotalContributions)),
			field("Total interest", output.Currency(result.TotalInterest)),
			field("Effective annual rate", output.Percent(result.EffectiveAnnualRate)),
			field("Simple interest", output.Currency(result.SimpleInterest)),
			field("Simple future value", output.Currency(result.SimpleFutureValue)),
			field("Compound advantage", output.Currency(result.CompoundAdvantage)),
		},
		Tables: []output.Table{{
			Title:   "Yearly breakdown",
			Headers: []string{"Year", "Balance", "Contributions", "Interest"},
			Rows:    rows,
		}},
	}
}

// MortgageReport renders a mortgage simulation.
func MortgageReport(name string, result mortgage.Result, opts Options) output.Report {
	m := result.Monthly
	report := output.Report{
		Name: name,
		Type: constants.CalculationMortgage,
		Summary: []output.Field{
			field("Loan amount", output.Currency(result.LoanAmount)),
			field("Down payment", output.Currency(result.DownPaymentAmount)),
			field("Loan to value", output.Percent(result.LoanToValue)),
			field("Principal and interest", output.Currency(m.PrincipalAndInterest)),
			field("Property tax", output.Currency(m.PropertyTax)),
			field("Insurance", output.Currency(m.Insurance)),
			field("PMI", output.Currency(m.PMI)),
			field("HOA", output.Currency(m.HOA)),
			field("Other costs", output.Currency(m.Other)),
			field("Total monthly payment", output.Currency(m.TotalMonthly)),
			field("Payoff months", output.Integer(result.PayoffMonths)),
			field("Payoff date", output.Text(datetime.Format(result.PayoffDate))),
			field("PMI removal date", output.Text(datetime.Format(result.PMIRemovalDate))),
			field("Total interest", output.Currency(result.TotalInterest)),
			field("Total principal and interest", output.Currency(result.TotalPrincipalAndInterest)),
			field("Total PMI", output.Currency(result.TotalPMI)),
			field("Total escalating costs", output.Currency(result.TotalEscalatingCosts)),
			field("Estimated yearly impact", output.Currency(result.EstimatedYearlyImpact)),
			field("Estimated one-time impact", output.Currency(result.EstimatedOneTimeImpact)),
			field("Total payments", output.Currency(result.TotalPayments)),
			field("Interest saved", output.Currency(result.InterestSaved)),
			field("Months saved", output.Integer(result.MonthsSaved)),
		},
		Tables: []output.Table{yearSummaryTable(result.YearSummaries)},
	}

	if opts.Schedule {
		rows := make([][]output.Value, 0, len(result.Schedule))
		for _, p := range result.Schedule {
			rows = append(rows, []output.Value{
				output.Integer(p.Number),
				output.Text(datetime.Format(p.Date)),
				output.Currency(p.Interest),
				output.Currency(p.Principal),
				output.Currency(p.Extra),
				output.Currency(p.PropertyTax),
				output.Currency(p.Insurance),
				output.Currency(p.PMI),
				output.Currency(p.HOA),
				output.Currency(p.Other),
				output.Currency(p.TotalMonthly),
				output.Currency(p.Balance),
			})
		}
		report.Tables = append(report.Tables, output.Table{
			Title: "Schedule",
			Headers: []string{"#", "Date", "Interest", "Principal", "Extra", "Tax", "Insurance",
				"PMI", "HOA", "Other", "Total", "Balance"},
			Rows: rows,
		})
	}
	return report
}

// RetirementReport renders the outcome of the selected retirement mode.
func RetirementReport(name string, result retirement.Result) output.Report {
	report := output.Report{
		Name:    name,
		Type:    constants.CalculationRetirement,
		Summary: []output.Field{field("Mode", output.Text(result.Mode.String()))},
	}

	switch {
	case result.Needs != nil:
		n := result.Needs
		report.Summary = append(report.Summary,
			field("Income at retirement", output.Currency(n.IncomeAtRetirement)),
			field("Annual income needed", output.Currency(n.AnnualIncomeNeeded)),
			field("Real return", output.Percent(n.RealReturn)),
			field("Total needed", output.Currency(n.TotalNeeded)),
			field("Savings future value", output.Currency(n.SavingsFutureValue)),
			field("Contributions future value", output.Currency(n.ContributionsFutureValue)),
			field("Projected savings", output.Currency(n.ProjectedSavings)),
			field("Shortfall", output.Currency(n.Shortfall)),
			field("Surplus", output.Currency(n.Surplus)),
			field("Additional monthly contribution", output.Currency(n.AdditionalMonthlyContribution)),
		)
	case result.SavingsPlan != nil:
		s := result.SavingsPlan
		report.Summary = append(report.Summary,
			field("Savings target", output.Currency(s.SavingsTarget)),
			field("Savings future value", output.Currency(s.SavingsFutureValue)),
			field("Gap", output.Currency(s.Gap)),
			field("Required monthly contribution", output.Currency(s.RequiredMonthlyContribution)),
			field("Total contributions", output.Currency(s.TotalContributions)),
			field("Projected balance", output.Currency(s.ProjectedBalance)),
		)
	case result.Withdrawal != nil:
		w := result.Withdrawal
		report.Summary = append(report.Summary,
			field("Balance at retirement", output.Currency(w.BalanceAtRetirement)),
			field("Real balance at retirement", output.Currency(w.RealBalanceAtRetirement)),
			field("Withdrawal rate", output.Percent(w.WithdrawalRate)),
			field("Annual withdrawal", output.Currency(w.AnnualWithdrawal)),
			field("Monthly withdrawal", output.Currency(w.MonthlyWithdrawal)),
			field("Real annual withdrawal", output.Currency(w.RealAnnualWithdrawal)),
		)
	case result.Duration != nil:
		d := result.Duration
		report.Summary = append(report.Summary,
			field("Months", output.Integer(d.Months)),
			field("Years", output.Integer(d.Years)),
			field("Remainder months", output.Integer(d.RemainderMonths)),
			field("Depleted", output.Text(strconv.FormatBool(d.Depleted))),
			field("Final balance", output.Currency(d.FinalBalance)),
			field("Total withdrawn", output.Currency(d.TotalWithdrawn)),
			field("Total growth", output.Currency(d.TotalGrowth)),
		)
	}

	report.Summary = append(report.Summary,
		field("Projected contributions", output.Currency(result.Totals.Contributions)),
		field("Projected withdrawals", output.Currency(result.Totals.Withdrawals)),
		field("Projected interest", output.Currency(result.Totals.Interest)),
	)

	rows := make([][]output.Value, 0, len(result.Projection))
	for _, p := range result.Projection {
		rows = append(rows, []output.Value{
			output.Integer(p.Age),
			output.Integer(p.Year),
			output.Currency(p.Contribution),
			output.Currency(p.Withdrawal),
			output.Currency(p.Interest),
			output.Currency(p.Balance),
			output.Currency(p.RealBalance),
			output.Currency(p.MonthlyIncome),
		})
	}
	report.Tables = []output.Table{{
		Title:   "Projection",
		Headers: []string{"Age", "Year", "Contribution", "Withdrawal", "Interest", "Balance", "Real balance", "Monthly income"},
		Rows:    rows,
	}}
	return report
}

// StudentLoanSimpleReport renders a simple student loan payoff.
func StudentLoanSimpleReport(name string, result studentloan.SimpleResult) output.Report {
	return output.Report{
		Name: name,
		Type: constants.CalculationStudentLoanSimple,
		Summary: []output.Field{
			field("Monthly payment", output.Currency(result.MonthlyPayment)),
			field("Total paid", output.Currency(result.TotalPaid)),
			field("Total interest", output.Currency(result.TotalInterest)),
		},
	}
}

// StudentLoanRepaymentReport renders the original versus accelerated payoff.
func StudentLoanRepaymentReport(name string, result studentloan.RepaymentResult, opts Options) output.Report {
	report := output.Report{
		Name: name,
		Type: constants.CalculationStudentLoanRepayment,
		Summary: []output.Field{
			field("Original months", output.Integer(result.Original.Months)),
			field("Original total interest", output.Currency(result.Original.TotalInterest)),
			field("Original total paid", output.Currency(result.Original.TotalPaid)),
			field("Original payoff date", output.Text(datetime.Format(result.Original.PayoffDate))),
			field("Accelerated months", output.Integer(result.Accelerated.Months)),
			field("Accelerated total interest", output.Currency(result.Accelerated.TotalInterest)),
			field("Accelerated total paid", output.Currency(result.Accelerated.TotalPaid)),
			field("Accelerated payoff date", output.Text(datetime.Format(result.Accelerated.PayoffDate))),
			field("Months saved", output.Integer(result.MonthsSaved)),
			field("Interest saved", output.Currency(result.InterestSaved)),
		},
	}
	if opts.Schedule {
		report.Tables = append(report.Tables, scheduleTable(result.Schedule))
	}
	return report
}

// StudentLoanProjectionReport renders an in-school projection.
func StudentLoanProjectionReport(name string, result studentloan.ProjectionResult) output.Report {
	return output.Report{
		Name: name,
		Type: constants.CalculationStudentLoanProjection,
		Summary: []output.Field{
			field("Total borrowed", output.Currency(result.TotalBorrowed)),
			field("Balance at graduation", output.Currency(result.BalanceAtGraduation)),
			field("Balance at repayment", output.Currency(result.BalanceAtRepayment)),
			field("Capitalized interest", output.Currency(result.CapitalizedInterest)),
			field("Interest paid in school", output.Currency(result.InterestPaidInSchool)),
			field("Monthly payment", output.Currency(result.MonthlyPayment)),
			field("Total repaid", output.Currency(result.TotalRepaid)),
			field("Total cost", output.Currency(result.TotalCost)),
			field("Total interest", output.Currency(result.TotalInterest)),
		},
	}
}

// WithOptimization adds a payoff-target search outcome to a report. Notes of a
// search that did not converge become warnings.
func WithOptimization(report output.Report, summary optimization.Summary) output.Report {
	converged := "yes"
	if !summary.Converged {
		converged = "no"
		report.Warnings = append(report.Warnings, summary.Notes...)
	}
	report.Summary = append(report.Summary,
		field("Target payoff date", output.Text(summary.TargetDate)),
		field("Original extra monthly", output.Currency(summary.Original)),
		field("Optimized extra monthly", output.Currency(summary.Value)),
		field("Optimized payoff date", output.Text(summary.PayoffDate)),
		field("Optimizer converged", output.Text(converged)),
	)
	return report
}

// ErrorReport renders a failed calculation. An insufficient student loan
// payment also reports the minimum payment.
func ErrorReport(name, calculationType string, err error) output.Report {
	report := output.Report{Name: name, Type: calculationType, Error: err.Error()}
	if insufficient, ok := studentloan.AsInsufficientPayment(err); ok {
		report.Summary = []output.Field{field("Minimum payment", output.Currency(insufficient.MinimumPayment))}
	}
	return report
}

func yearSummaryTable(summaries []loans.YearSummary) output.Table {
	rows := make([][]output.Value, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []output.Value{
			year(s.Year),
			output.Integer(s.Payments),
			output.Currency(s.Interest),
			output.Currency(s.Principal),
			output.Currency(s.Extra),
			output.Currency(s.TotalPaid),
			output.Currency(s.EndingBalance),
		})
	}
	return output.Table{
		Title:   "Yearly summary",
		Headers: []string{"Year", "Payments", "Interest", "Principal", "Extra", "Total paid", "Ending balance"},
		Rows:    rows,
	}
}

func scheduleTable(periods []loans.Period) output.Table {
	rows := make([][]output.Value, 0, len(periods))
	for _, p := range periods {
		rows = append(rows, []output.Value{
			output.Integer(p.Number),
			output.Text(datetime.Format(p.Date)),
			output.Currency(p.Payment),
			output.Currency(p.Interest),
			output.Currency(p.Principal),
			output.Currency(p.Extra),
			output.Currency(p.TotalPayment),
			output.Currency(p.Balance),
		})
	}
	return output.Table{
		Title:   "Schedule",
		Headers: []string{"#", "Date", "Payment", "Interest", "Principal", "Extra", "Total", "Balance"},
		Rows:    rows,
	}
}
