// Package mortgage decomposes a home loan payment into principal and
// interest, escrow costs, PMI and HOA dues, and simulates the loan with
// extra payments and yearly cost escalation.
package mortgage

import (
	"fmt"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/events"
	"github.com/iwvelando/finance-calculators/pkg/loans"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"go.uber.org/zap"
)

// Breakdown is one month of housing cost.
type Breakdown struct {
	PrincipalAndInterest float64
	PropertyTax          float64
	Insurance            float64
	PMI                  float64
	HOA                  float64
	Other                float64
	TotalMonthly         float64
}

// Period is a loan period together with the costs charged in its month.
type Period struct {
	loans.Period
	PropertyTax  float64
	Insurance    float64
	PMI          float64
	HOA          float64
	Other        float64
	TotalMonthly float64
}

// Result summarizes the simulated mortgage.
type Result struct {
	Monthly           Breakdown
	LoanAmount        float64
	DownPaymentAmount float64
	LoanToValue       float64 // percent

	TotalInterest             float64
	TotalPrincipalAndInterest float64
	TotalPMI                  float64
	TotalEscalatingCosts      float64
	EstimatedYearlyImpact     float64
	EstimatedOneTimeImpact    float64
	TotalPayments             float64

	PayoffMonths   int
	PayoffDate     time.Time
	PMIRemovalDate time.Time
	InterestSaved  float64
	MonthsSaved    int

	Schedule      []Period
	YearSummaries []loans.YearSummary
}

// costs tracks the recurring monthly costs as they escalate.
type costs struct {
	propertyTax float64
	insurance   float64
	hoa         float64
	other       float64
	escalation  Escalation
}

func newCosts(in Inputs) *costs {
	return &costs{
		propertyTax: mathutil.ApplyPercentage(in.HomePrice, in.PropertyTaxRate) / constants.MonthsPerYear,
		insurance:   in.AnnualInsurance / constants.MonthsPerYear,
		hoa:         in.MonthlyHOA,
		other:       in.AnnualOtherCosts / constants.MonthsPerYear,
		escalation:  in.Escalation.Capped(),
	}
}

func (c *costs) escalate() {
	c.propertyTax *= 1 + mathutil.PercentToDecimal(c.escalation.PropertyTax)
	c.insurance *= 1 + mathutil.PercentToDecimal(c.escalation.Insurance)
	c.hoa *= 1 + mathutil.PercentToDecimal(c.escalation.HOA)
	c.other *= 1 + mathutil.PercentToDecimal(c.escalation.Other)
}

func (c *costs) total() float64 {
	return c.propertyTax + c.insurance + c.hoa + c.other
}

// januaries is the recurring yearly extra: it fires every January after the
// first calendar year of the loan through termEnd. Cost escalation keys off
// the same months.
func januaries(in Inputs, start, termEnd time.Time) (events.Event, error) {
	first := time.Date(start.Year()+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	if termEnd.Before(first) {
		return events.Event{Name: "yearly extra", Amount: in.ExtraYearly}, nil
	}
	return events.NewRecurring("yearly extra", in.ExtraYearly, first, termEnd, constants.MonthsPerYear)
}

// Calculate runs the mortgage simulation without logging.
func Calculate(in Inputs) (Result, error) {
	return CalculateWithLogger(nil, in)
}

// CalculateWithLogger runs the mortgage simulation and emits debug entries to
// logger.
func CalculateWithLogger(logger *zap.Logger, in Inputs) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	start := datetime.DefaultMonth(in.StartDate)
	loanAmount := in.LoanAmount()
	n := in.TermMonths()
	payment := loans.CalculateMonthlyPayment(loanAmount, in.AnnualRate, n)
	monthlyPMI := mathutil.ApplyPercentage(loanAmount, in.PMIRate) / constants.MonthsPerYear
	termEnd := datetime.OffsetMonths(start, n-1)
	oneTime := oneTimeEvents(in)
	yearly, err := januaries(in, start, termEnd)
	if err != nil {
		return Result{}, fmt.Errorf("failed to schedule yearly extras: %w", err)
	}
	extras := append([]events.Event{yearly}, oneTime...)

	result := Result{
		LoanAmount:        mathutil.Round(loanAmount),
		DownPaymentAmount: mathutil.Round(in.DownPaymentValue()),
		LoanToValue:       mathutil.Round(loanAmount / in.HomePrice * constants.PercentageMultiplier),
	}

	tracker := newCosts(in)
	first := Breakdown{
		PrincipalAndInterest: payment,
		PropertyTax:          tracker.propertyTax,
		Insurance:            tracker.insurance,
		HOA:                  tracker.hoa,
		Other:                tracker.other,
	}
	if loanAmount/in.HomePrice > constants.PMILoanToValueCutoff {
		first.PMI = monthlyPMI
	}
	first.TotalMonthly = first.PrincipalAndInterest + first.PMI + tracker.total()
	result.Monthly = first.rounded()

	pmiActive := first.PMI > 0
	var schedule []Period
	var totalPMI, totalCosts float64

	simulator := loans.NewSimulator(logger)
	simulated, err := simulator.Simulate(loans.SimulationConfig{
		Name:       "mortgage",
		Principal:  loanAmount,
		AnnualRate: in.AnnualRate,
		Payment:    payment,
		StartDate:  start,
		MaxPeriods: constants.SafetyCapMultiplier * n,
		Extra: func(_ int, date time.Time, _ float64) float64 {
			return in.ExtraMonthly + events.AmountForDate(extras, date)
		},
		OnPeriod: func(period loans.Period) {
			if yearly.OccursOn(period.Date) {
				tracker.escalate()
				logger.Debug(fmt.Sprintf("%s: escalated recurring costs to %.2f per month",
					datetime.Format(period.Date), tracker.total()),
					zap.String("op", "mortgage.Calculate"),
				)
			}

			pmi := 0.0
			// PMI is judged on the balance after this month's principal and extras.
			if pmiActive && period.Balance/in.HomePrice > constants.PMILoanToValueCutoff {
				pmi = monthlyPMI
			} else if pmiActive {
				pmiActive = false
				result.PMIRemovalDate = period.Date
				logger.Debug(fmt.Sprintf("%s: loan-to-value reached %.0f%%, PMI removed",
					datetime.Format(period.Date), constants.PMILoanToValueCutoff*constants.PercentageMultiplier),
					zap.String("op", "mortgage.Calculate"),
				)
			}

			totalPMI += pmi
			totalCosts += tracker.total()
			schedule = append(schedule, Period{
				Period:       period,
				PropertyTax:  tracker.propertyTax,
				Insurance:    tracker.insurance,
				PMI:          pmi,
				HOA:          tracker.hoa,
				Other:        tracker.other,
				TotalMonthly: period.TotalPayment + pmi + tracker.total(),
			})
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to simulate mortgage schedule: %w", err)
	}

	totals := simulated.Totals
	result.TotalInterest = mathutil.Round(totals.TotalInterest)
	result.TotalPrincipalAndInterest = mathutil.Round(totals.TotalPaid)
	result.TotalPMI = mathutil.Round(totalPMI)
	result.TotalEscalatingCosts = mathutil.Round(totalCosts)
	result.PayoffMonths = totals.Periods
	result.PayoffDate = totals.PayoffDate

	if totals.PaidOff && totals.Periods < n {
		result.EstimatedYearlyImpact = mathutil.Round(events.AmountBetween([]events.Event{yearly}, totals.PayoffDate, termEnd))
		result.EstimatedOneTimeImpact = mathutil.Round(events.AmountBetween(oneTime, totals.PayoffDate, termEnd))
	}
	result.TotalPayments = mathutil.Round(totals.TotalPaid + totalPMI + totalCosts +
		result.EstimatedYearlyImpact + result.EstimatedOneTimeImpact)

	if in.HasExtras() {
		baseline, err := simulator.Simulate(loans.SimulationConfig{
			Name:       "mortgage baseline",
			Principal:  loanAmount,
			AnnualRate: in.AnnualRate,
			Payment:    payment,
			StartDate:  start,
			MaxPeriods: constants.SafetyCapMultiplier * n,
		})
		if err != nil {
			return Result{}, fmt.Errorf("failed to simulate baseline schedule: %w", err)
		}
		result.InterestSaved = mathutil.Round(baseline.Totals.TotalInterest - totals.TotalInterest)
		result.MonthsSaved = baseline.Totals.Periods - totals.Periods
	}

	result.Schedule = make([]Period, len(schedule))
	for i, period := range schedule {
		result.Schedule[i] = period.rounded()
	}
	result.YearSummaries = loans.SummarizeByYear(simulated.Periods)

	logger.Debug("mortgage computed",
		zap.String("op", "mortgage.Calculate"),
		zap.Float64("loanAmount", result.LoanAmount),
		zap.Float64("totalMonthly", result.Monthly.TotalMonthly),
		zap.Int("payoffMonths", result.PayoffMonths),
		zap.Float64("totalPayments", result.TotalPayments),
	)

	return result, nil
}

// oneTimeEvents turns the configured one-time payments into dated events.
func oneTimeEvents(in Inputs) []events.Event {
	var list []events.Event
	for i, payment := range in.OneTimePayments() {
		list = append(list, events.NewOneTime(fmt.Sprintf("one-time payment %d", i+1), payment.Amount, payment.Date()))
	}
	return list
}

func (b Breakdown) rounded() Breakdown {
	return Breakdown{
		PrincipalAndInterest: mathutil.Round(b.PrincipalAndInterest),
		PropertyTax:          mathutil.Round(b.PropertyTax),
		Insurance:            mathutil.Round(b.Insurance),
		PMI:                  mathutil.Round(b.PMI),
		HOA:                  mathutil.Round(b.HOA),
		Other:                mathutil.Round(b.Other),
		TotalMonthly:         mathutil.Round(b.TotalMonthly),
	}
}

func (p Period) rounded() Period {
	p.Period = p.Period.Rounded()
	p.PropertyTax = mathutil.Round(p.PropertyTax)
	p.Insurance = mathutil.Round(p.Insurance)
	p.PMI = mathutil.Round(p.PMI)
	p.HOA = mathutil.Round(p.HOA)
	p.Other = mathutil.Round(p.Other)
	p.TotalMonthly = mathutil.Round(p.TotalMonthly)
	return p
}
