// Package loans provides the bounded amortization simulator shared by the
// amortization, mortgage and student-loan engines.
package loans

import (
	"fmt"
	"math"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"go.uber.org/zap"
)

// Period holds the values for a given payment. Amounts are kept at full
// precision; use Rounded for the published form.
type Period struct {
	Number              int
	Date                time.Time
	StartingBalance     float64
	Payment             float64
	Interest            float64
	Principal           float64
	Extra               float64
	TotalPayment        float64
	Balance             float64
	CumulativeInterest  float64
	CumulativePrincipal float64
}

// Rounded returns the period with every currency field rounded to cents.
func (p Period) Rounded() Period {
	p.StartingBalance = mathutil.Round(p.StartingBalance)
	p.Payment = mathutil.Round(p.Payment)
	p.Interest = mathutil.Round(p.Interest)
	p.Principal = mathutil.Round(p.Principal)
	p.Extra = mathutil.Round(p.Extra)
	p.TotalPayment = mathutil.Round(p.TotalPayment)
	p.Balance = mathutil.Round(p.Balance)
	p.CumulativeInterest = mathutil.Round(p.CumulativeInterest)
	p.CumulativePrincipal = mathutil.Round(p.CumulativePrincipal)
	return p
}

// Totals is the fold over a schedule.
type Totals struct {
	Periods        int
	TotalInterest  float64
	TotalPrincipal float64
	TotalExtra     float64
	TotalPaid      float64
	PaidOff        bool
	PayoffDate     time.Time
}

// Schedule is the ordered output of a simulation.
type Schedule struct {
	Periods []Period
	Totals  Totals
}

// ExtraFunc returns the extra principal due in a period before clamping.
type ExtraFunc func(number int, date time.Time, balance float64) float64

// PeriodHook observes each finished period, e.g. to attach escrow costs.
type PeriodHook func(period Period)

// SimulationConfig parameterizes one simulation run.
type SimulationConfig struct {
	Name       string
	Principal  float64
	AnnualRate float64 // percent
	Payment    float64 // scheduled principal and interest
	StartDate  time.Time
	MaxPeriods int
	Extra      ExtraFunc
	OnPeriod   PeriodHook
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(principal, annualInterestRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	periodicInterestRate := mathutil.MonthlyRate(annualInterestRate)
	power := math.Pow(1.00+periodicInterestRate, float64(termMonths))
	return principal * periodicInterestRate * power / (power - 1.00)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * mathutil.MonthlyRate(annualInterestRate)
}

// Simulator runs month-by-month amortization with pluggable extra payments.
type Simulator struct {
	logger *zap.Logger
}

// NewSimulator creates a new simulator instance
func NewSimulator(logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{logger: logger}
}

// Simulate amortizes cfg.Principal until the balance drops to a cent or
// cfg.MaxPeriods periods have been emitted.
func (s *Simulator) Simulate(cfg SimulationConfig) (Schedule, error) {
	if cfg.MaxPeriods <= 0 {
		return Schedule{}, fmt.Errorf("loan %s: max periods must be positive, got %d", cfg.Name, cfg.MaxPeriods)
	}
	if cfg.Principal <= 0 {
		return Schedule{}, fmt.Errorf("loan %s: principal must be positive, got %.2f", cfg.Name, cfg.Principal)
	}

	schedule := Schedule{Periods: make([]Period, 0, min(cfg.MaxPeriods, constants.MaxRepaymentMonths))}
	balance := cfg.Principal
	var cumulativeInterest, cumulativePrincipal float64

	for number := 1; number <= cfg.MaxPeriods; number++ {
		date := datetime.OffsetMonths(cfg.StartDate, number-1)

		interest := CalculateInterestPayment(balance, cfg.AnnualRate)
		principal := cfg.Payment - interest
		if principal < 0 {
			// Payment does not cover interest; nothing amortizes and the
			// shortfall is not capitalized.
			principal = 0
		}

		extra := 0.0
		if cfg.Extra != nil {
			extra = math.Max(0, cfg.Extra(number, date, balance))
		}

		if principal+extra > balance {
			// The final payment retires the balance as plain principal.
			principal = balance
			extra = 0
		}

		period := Period{
			Number:          number,
			Date:            date,
			StartingBalance: balance,
			Payment:         interest + principal,
			Interest:        interest,
			Principal:       principal,
			Extra:           extra,
		}

		balance -= principal + extra
		if balance <= constants.PayoffThreshold {
			// Fold the sub-cent residual into the final principal so the
			// schedule repays exactly the original amount.
			period.Principal += balance
			period.Payment += balance
			balance = 0
		}

		period.TotalPayment = period.Interest + period.Principal + period.Extra
		period.Balance = balance
		cumulativeInterest += period.Interest
		cumulativePrincipal += period.Principal + period.Extra
		period.CumulativeInterest = cumulativeInterest
		period.CumulativePrincipal = cumulativePrincipal

		if cfg.OnPeriod != nil {
			cfg.OnPeriod(period)
		}
		schedule.Periods = append(schedule.Periods, period)

		if period.Extra > 0 {
			s.logger.Debug(fmt.Sprintf("%s: applying extra principal payment %.2f for loan %s",
				datetime.Format(date), period.Extra, cfg.Name),
				zap.String("op", "loans.Simulate"),
			)
		}

		if balance == 0 {
			schedule.Totals.PaidOff = true
			schedule.Totals.PayoffDate = date
			break
		}
	}

	if !schedule.Totals.PaidOff {
		s.logger.Debug("simulation reached safety cap before payoff",
			zap.String("op", "loans.Simulate"),
			zap.String("loan", cfg.Name),
			zap.Int("maxPeriods", cfg.MaxPeriods),
			zap.Float64("remainingBalance", balance),
		)
	}

	schedule.Totals.Periods = len(schedule.Periods)
	schedule.Totals.TotalInterest = cumulativeInterest
	schedule.Totals.TotalPrincipal = cumulativePrincipal
	for _, period := range schedule.Periods {
		schedule.Totals.TotalExtra += period.Extra
	}
	schedule.Totals.TotalPaid = cumulativeInterest + cumulativePrincipal

	return schedule, nil
}

// Rounded returns a copy of the periods with currency fields rounded.
func (s Schedule) Rounded() []Period {
	rounded := make([]Period, len(s.Periods))
	for i, period := range s.Periods {
		rounded[i] = period.Rounded()
	}
	return rounded
}
