// Package retirement answers four retirement questions: how much is needed,
// what monthly saving reaches a target, what a portfolio can pay out, and how
// long savings last under a fixed withdrawal.
package retirement

import (
	"fmt"
	"math"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/finance"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// NeedsResult is the outcome of the needs mode. RealReturn is a percentage.
type NeedsResult struct {
	IncomeAtRetirement            float64
	AnnualIncomeNeeded            float64
	RealReturn                    float64
	TotalNeeded                   float64
	SavingsFutureValue            float64
	ContributionsFutureValue      float64
	ProjectedSavings              float64
	Shortfall                     float64
	Surplus                       float64
	AdditionalMonthlyContribution float64
}

// SavingsPlanResult is the outcome of the savings-plan mode.
type SavingsPlanResult struct {
	SavingsTarget               float64
	SavingsFutureValue          float64
	Gap                         float64
	RequiredMonthlyContribution float64
	TotalContributions          float64
	ProjectedBalance            float64
}

// WithdrawalResult is the outcome of the withdrawal-amount mode.
// WithdrawalRate is a percentage.
type WithdrawalResult struct {
	BalanceAtRetirement     float64
	RealBalanceAtRetirement float64
	WithdrawalRate          float64
	AnnualWithdrawal        float64
	MonthlyWithdrawal       float64
	RealAnnualWithdrawal    float64
}

// DurationResult is the outcome of the money-duration mode.
type DurationResult struct {
	Months          int
	Years           int
	RemainderMonths int
	Depleted        bool
	FinalBalance    float64
	TotalWithdrawn  float64
	TotalGrowth     float64
}

// YearProjection is one year of the charting projection. Year counts years
// from now; Age is the age at the end of that year.
type YearProjection struct {
	Age           int
	Year          int
	Contribution  float64
	Withdrawal    float64
	Interest      float64
	Balance       float64
	RealBalance   float64
	MonthlyIncome float64
}

// ProjectionTotals folds the projection.
type ProjectionTotals struct {
	Contributions float64
	Withdrawals   float64
	Interest      float64
}

// Result carries the outcome of exactly one mode plus the shared projection.
type Result struct {
	Mode        Mode
	Needs       *NeedsResult
	SavingsPlan *SavingsPlanResult
	Withdrawal  *WithdrawalResult
	Duration    *DurationResult
	Projection  []YearProjection
	Totals      ProjectionTotals
}

// Calculate runs the selected mode without logging.
func Calculate(in Inputs) (Result, error) {
	return CalculateWithLogger(nil, in)
}

// CalculateWithLogger runs the selected mode and emits debug entries to logger.
func CalculateWithLogger(logger *zap.Logger, in Inputs) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	calc := calculator{in: in, logger: logger, projector: finance.NewProjector(logger)}
	result := Result{Mode: in.Mode}

	var err error
	switch in.Mode {
	case Needs:
		err = calc.needs(&result)
	case SavingsPlan:
		err = calc.savingsPlan(&result)
	case WithdrawalAmount:
		err = calc.withdrawalAmount(&result)
	case MoneyDuration:
		err = calc.moneyDuration(&result)
	}
	if err != nil {
		return Result{}, fmt.Errorf("retirement %s: %w", in.Mode, err)
	}

	result.Totals = fold(result.Projection)
	logger.Debug("retirement computed",
		zap.String("op", "retirement.Calculate"),
		zap.String("mode", in.Mode.String()),
		zap.Int("projectedYears", len(result.Projection)),
	)
	return result, nil
}

type calculator struct {
	in        Inputs
	logger    *zap.Logger
	projector *finance.Projector
}

func (c calculator) returnRate() float64 {
	return mathutil.PercentToDecimal(c.in.InvestmentReturn)
}

func (c calculator) monthlyReturn() float64 {
	return mathutil.MonthlyRate(c.in.InvestmentReturn)
}

func (c calculator) months() float64 {
	return float64(c.in.YearsToRetirement() * constants.MonthsPerYear)
}

func (c calculator) needs(result *Result) error {
	in := c.in
	years := in.YearsToRetirement()
	growth := mathutil.PercentToDecimal(in.IncomeGrowth)
	ret := c.returnRate()
	inflation := mathutil.PercentToDecimal(in.Inflation)

	incomeAtRetirement := in.CurrentIncome * mathutil.Growth(growth, float64(years))
	annualNeed := mathutil.ApplyPercentage(incomeAtRetirement, in.IncomeReplacement)
	realReturn := (1+ret)/(1+inflation) - 1
	totalNeeded := mathutil.PresentValueAnnuity(annualNeed, realReturn, float64(in.YearsInRetirement()))

	savingsFV := in.CurrentSavings * mathutil.Growth(ret, float64(years))
	contributionsFV := 0.0
	for year := 0; year < years; year++ {
		contribution := mathutil.ApplyPercentage(in.CurrentIncome*mathutil.Growth(growth, float64(year)), in.ContributionRate)
		contributionsFV += contribution * mathutil.Growth(ret, float64(years-1-year))
	}
	projected := savingsFV + contributionsFV

	shortfall := math.Max(0, totalNeeded-projected)
	needs := &NeedsResult{
		IncomeAtRetirement:       mathutil.Round(incomeAtRetirement),
		AnnualIncomeNeeded:       mathutil.Round(annualNeed),
		RealReturn:               mathutil.Round(realReturn * constants.PercentageMultiplier),
		TotalNeeded:              mathutil.Round(totalNeeded),
		SavingsFutureValue:       mathutil.Round(savingsFV),
		ContributionsFutureValue: mathutil.Round(contributionsFV),
		ProjectedSavings:         mathutil.Round(projected),
		Shortfall:                mathutil.Round(shortfall),
		Surplus:                  mathutil.Round(math.Max(0, projected-totalNeeded)),
	}
	if shortfall > 0 {
		needs.AdditionalMonthlyContribution = mathutil.Round(
			mathutil.SinkingFundPayment(shortfall, c.monthlyReturn(), c.months()))
	}
	result.Needs = needs

	// The chart steps yearly, the same model as the summary figures.
	projection, err := c.project(0, []finance.Phase{
		{
			Name:               "accumulation",
			Years:              years,
			Cadence:            finance.Yearly,
			Contribution:       mathutil.ApplyPercentage(in.CurrentIncome, in.ContributionRate),
			ContributionGrowth: in.IncomeGrowth,
		},
		{
			Name:             "distribution",
			Years:            in.YearsInRetirement(),
			Cadence:          finance.Yearly,
			Withdrawal:       annualNeed,
			WithdrawalGrowth: in.Inflation,
		},
	})
	result.Projection = projection
	return err
}

func (c calculator) savingsPlan(result *Result) error {
	in := c.in
	rate := c.monthlyReturn()
	n := c.months()

	savingsFV := in.CurrentSavings * mathutil.Growth(rate, n)
	gap := math.Max(0, in.SavingsTarget-savingsFV)
	required := mathutil.SinkingFundPayment(gap, rate, n)
	projected := savingsFV + mathutil.FutureValueAnnuity(required, rate, n)

	result.SavingsPlan = &SavingsPlanResult{
		SavingsTarget:               mathutil.Round(in.SavingsTarget),
		SavingsFutureValue:          mathutil.Round(savingsFV),
		Gap:                         mathutil.Round(gap),
		RequiredMonthlyContribution: mathutil.Round(required),
		TotalContributions:          mathutil.Round(required * n),
		ProjectedBalance:            mathutil.Round(projected),
	}

	projection, err := c.project(0, []finance.Phase{
		{
			Name:         "accumulation",
			Years:        in.YearsToRetirement(),
			Contribution: required,
		},
		{
			Name:       "distribution",
			Years:      in.YearsInRetirement(),
			Withdrawal: projected * constants.SafeWithdrawalRate / constants.MonthsPerYear,
		},
	})
	result.Projection = projection
	return err
}

func (c calculator) withdrawalAmount(result *Result) error {
	in := c.in
	years := in.YearsToRetirement()

	account := &finance.Account{Name: "retirement", Balance: in.CurrentSavings, AnnualReturn: in.InvestmentReturn}
	accumulation, err := c.projector.Project(account, []finance.Phase{{
		Name:         "accumulation",
		Years:        years,
		Contribution: in.MonthlyContribution,
	}})
	if err != nil {
		return err
	}
	balance := account.Balance

	rate := math.Max(0, math.Min(constants.SafeWithdrawalRate, c.returnRate()))
	annual := balance * rate
	deflator := mathutil.Growth(mathutil.PercentToDecimal(in.Inflation), float64(years))

	result.Withdrawal = &WithdrawalResult{
		BalanceAtRetirement:     mathutil.Round(balance),
		RealBalanceAtRetirement: mathutil.Round(balance / deflator),
		WithdrawalRate:          mathutil.Round(rate * constants.PercentageMultiplier),
		AnnualWithdrawal:        mathutil.Round(annual),
		MonthlyWithdrawal:       mathutil.Round(annual / constants.MonthsPerYear),
		RealAnnualWithdrawal:    mathutil.Round(annual / deflator),
	}

	distribution, err := c.projector.Project(account, []finance.Phase{{
		Name:       "distribution",
		Years:      in.YearsInRetirement(),
		Withdrawal: annual / constants.MonthsPerYear,
	}})
	if err != nil {
		return err
	}
	for i := range distribution {
		distribution[i].Index += len(accumulation)
	}
	result.Projection = c.rows(0, append(accumulation, distribution...))
	return nil
}

func (c calculator) moneyDuration(result *Result) error {
	in := c.in
	processor := finance.NewAccountProcessor(c.logger)
	account := &finance.Account{Name: "savings", Balance: in.CurrentSavings, AnnualReturn: in.InvestmentReturn}

	duration := &DurationResult{}
	for duration.Months < constants.MaxRepaymentMonths {
		change := processor.Step(account, 0, in.MonthlyWithdrawal)
		duration.Months++
		duration.TotalWithdrawn += change.Withdrawal
		duration.TotalGrowth += change.Growth
		if change.Depleted || mathutil.IsZero(account.Balance) {
			duration.Depleted = true
			break
		}
	}
	if !duration.Depleted {
		c.logger.Debug("savings outlast the duration cap",
			zap.String("op", "retirement.moneyDuration"),
			zap.Int("months", duration.Months),
			zap.Float64("balance", account.Balance),
		)
	}
	duration.Years = duration.Months / constants.MonthsPerYear
	duration.RemainderMonths = duration.Months % constants.MonthsPerYear
	duration.FinalBalance = mathutil.Round(account.Balance)
	duration.TotalWithdrawn = mathutil.Round(duration.TotalWithdrawn)
	duration.TotalGrowth = mathutil.Round(duration.TotalGrowth)
	result.Duration = duration

	projection, err := c.project(in.YearsToRetirement(), []finance.Phase{{
		Name:       "distribution",
		Years:      in.YearsInRetirement(),
		Withdrawal: in.MonthlyWithdrawal,
	}})
	result.Projection = projection
	return err
}

// project runs the phases from the current savings; offset shifts the year
// numbering for projections that begin at retirement.
func (c calculator) project(offset int, phases []finance.Phase) ([]YearProjection, error) {
	account := &finance.Account{Name: "retirement", Balance: c.in.CurrentSavings, AnnualReturn: c.in.InvestmentReturn}
	years, err := c.projector.Project(account, phases)
	if err != nil {
		return nil, err
	}
	return c.rows(offset, years), nil
}

func (c calculator) rows(offset int, years []finance.YearChange) []YearProjection {
	inflation := mathutil.PercentToDecimal(c.in.Inflation)
	rows := make([]YearProjection, 0, len(years))
	for _, change := range years {
		year := offset + change.Index
		rows = append(rows, YearProjection{
			Age:           c.in.CurrentAge + year,
			Year:          year,
			Contribution:  mathutil.Round(change.Contribution),
			Withdrawal:    mathutil.Round(change.Withdrawal),
			Interest:      mathutil.Round(change.Growth),
			Balance:       mathutil.Round(change.Balance),
			RealBalance:   mathutil.Round(change.Balance / mathutil.Growth(inflation, float64(year))),
			MonthlyIncome: mathutil.Round(change.Balance * constants.SafeWithdrawalRate / constants.MonthsPerYear),
		})
	}
	return rows
}

// fold sums the rounded projection rows in decimal arithmetic.
func fold(rows []YearProjection) ProjectionTotals {
	var contributions, withdrawals, interest decimal.Decimal
	for _, row := range rows {
		contributions = contributions.Add(decimal.NewFromFloat(row.Contribution))
		withdrawals = withdrawals.Add(decimal.NewFromFloat(row.Withdrawal))
		interest = interest.Add(decimal.NewFromFloat(row.Interest))
	}
	return ProjectionTotals{
		Contributions: contributions.InexactFloat64(),
		Withdrawals:   withdrawals.InexactFloat64(),
		Interest:      interest.InexactFloat64(),
	}
}
