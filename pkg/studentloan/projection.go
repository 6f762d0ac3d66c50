package studentloan

import (
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/loans"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
)

// ProjectionInputs describes borrowing while in school. AnnualLoanAmount is
// drawn at the start of every school year on top of CurrentBalance.
type ProjectionInputs struct {
	YearsToGraduate     int
	AnnualLoanAmount    float64
	CurrentBalance      float64
	RepaymentTermYears  int
	GracePeriodMonths   int
	AnnualRate          float64
	PayInterestInSchool bool
}

// ProjectionResult is the estimated balance at repayment and its cost.
type ProjectionResult struct {
	TotalBorrowed        float64
	BalanceAtGraduation  float64
	BalanceAtRepayment   float64
	CapitalizedInterest  float64
	InterestPaidInSchool float64
	MonthlyPayment       float64
	TotalRepaid          float64
	TotalCost            float64
	TotalInterest        float64
}

// TotalBorrowed is the current balance plus every yearly draw: one at month
// zero and one at each following 12-month boundary before graduation.
func (in ProjectionInputs) TotalBorrowed() float64 {
	return in.CurrentBalance + in.AnnualLoanAmount*float64(in.YearsToGraduate)
}

// Validate checks the inputs against the engine invariants.
func (in ProjectionInputs) Validate() error {
	err := validation.First(
		validation.NonNegative("yearsToGraduate", float64(in.YearsToGraduate)),
		validation.NonNegative("annualLoanAmount", in.AnnualLoanAmount),
		validation.NonNegative("currentBalance", in.CurrentBalance),
		validation.Positive("repaymentTermYears", float64(in.RepaymentTermYears)),
		validation.AtMost("repaymentTermYears", float64(in.RepaymentTermYears), constants.MaxLoanTermYears),
		validation.Between("gracePeriodMonths", float64(in.GracePeriodMonths), 0, constants.MaxGracePeriodMonths),
		validation.Positive("annualRate", in.AnnualRate),
	)
	if err != nil {
		return err
	}
	return validation.Positive("totalBorrowed", in.TotalBorrowed())
}

// CalculateProjection runs the projection without logging.
func CalculateProjection(in ProjectionInputs) (ProjectionResult, error) {
	return CalculateProjectionWithLogger(nil, in)
}

// CalculateProjectionWithLogger accrues interest month by month through school
// and the grace period, then amortizes the balance over the repayment term.
func CalculateProjectionWithLogger(logger *zap.Logger, in ProjectionInputs) (ProjectionResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := in.Validate(); err != nil {
		return ProjectionResult{}, err
	}

	rate := mathutil.MonthlyRate(in.AnnualRate)
	balance := in.CurrentBalance
	var capitalized, paidInSchool float64

	schoolMonths := in.YearsToGraduate * constants.MonthsPerYear
	for month := 0; month < schoolMonths; month++ {
		if month%constants.MonthsPerYear == 0 {
			balance += in.AnnualLoanAmount
		}
		interest := balance * rate
		if in.PayInterestInSchool {
			paidInSchool += interest
		} else {
			balance += interest
			capitalized += interest
		}
	}
	atGraduation := balance

	for month := 0; month < in.GracePeriodMonths; month++ {
		interest := balance * rate
		balance += interest
		capitalized += interest
	}

	months := in.RepaymentTermYears * constants.MonthsPerYear
	payment := loans.CalculateMonthlyPayment(balance, in.AnnualRate, months)
	repaid := payment * float64(months)
	borrowed := in.TotalBorrowed()

	result := ProjectionResult{
		TotalBorrowed:        mathutil.Round(borrowed),
		BalanceAtGraduation:  mathutil.Round(atGraduation),
		BalanceAtRepayment:   mathutil.Round(balance),
		CapitalizedInterest:  mathutil.Round(capitalized),
		InterestPaidInSchool: mathutil.Round(paidInSchool),
		MonthlyPayment:       mathutil.Round(payment),
		TotalRepaid:          mathutil.Round(repaid),
		TotalCost:            mathutil.Round(repaid + paidInSchool),
		TotalInterest:        mathutil.Round(repaid + paidInSchool - borrowed),
	}

	logger.Debug("student loan projection computed",
		zap.String("op", "studentloan.CalculateProjection"),
		zap.Float64("balanceAtRepayment", result.BalanceAtRepayment),
		zap.Float64("monthlyPayment", result.MonthlyPayment),
	)
	return result, nil
}
