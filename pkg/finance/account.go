package finance

import (
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"go.uber.org/zap"
)

// Account is a single investment balance with an annual return percentage.
type Account struct {
	Name         string
	Balance      float64
	AnnualReturn float64
}

// AccountChange captures the computed deltas for a single account over one
// or more months.
type AccountChange struct {
	Contribution float64
	Withdrawal   float64
	Growth       float64
	NetChange    float64
	// Depleted is set when a withdrawal emptied the account.
	Depleted bool
}

func (c *AccountChange) add(other AccountChange) {
	c.Contribution += other.Contribution
	c.Withdrawal += other.Withdrawal
	c.Growth += other.Growth
	c.NetChange += other.NetChange
	c.Depleted = c.Depleted || other.Depleted
}

// AccountProcessor handles monthly account computations.
type AccountProcessor struct {
	logger *zap.Logger
}

// NewAccountProcessor creates a processor for account calculations.
func NewAccountProcessor(logger *zap.Logger) *AccountProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountProcessor{logger: logger}
}

// Step advances the account by one month. The month's return is applied
// before the contribution; withdrawals are taken last and never exceed the
// balance.
func (ap *AccountProcessor) Step(account *Account, contribution, withdrawal float64) AccountChange {
	return ap.step(account, contribution, withdrawal, mathutil.MonthlyRate(account.AnnualReturn))
}

// StepYear advances the account by one year at its full annual return, with
// the contribution deposited at year end.
func (ap *AccountProcessor) StepYear(account *Account, contribution, withdrawal float64) AccountChange {
	return ap.step(account, contribution, withdrawal, mathutil.PercentToDecimal(account.AnnualReturn))
}

func (ap *AccountProcessor) step(account *Account, contribution, withdrawal, rate float64) AccountChange {
	previous := account.Balance
	growth := account.Balance * rate
	account.Balance += growth + contribution

	depleted := false
	if withdrawal >= account.Balance && withdrawal > 0 {
		ap.logger.Debug("withdrawal exhausts account",
			zap.String("op", "finance.step"),
			zap.String("account", account.Name),
			zap.Float64("requested", withdrawal),
			zap.Float64("available", account.Balance),
		)
		withdrawal = max(account.Balance, 0)
		depleted = true
	}
	account.Balance -= withdrawal

	return AccountChange{
		Contribution: contribution,
		Withdrawal:   withdrawal,
		Growth:       growth,
		NetChange:    account.Balance - previous,
		Depleted:     depleted,
	}
}

// StepMonths applies Step for the given number of months with constant flows
// and returns the aggregated change.
func (ap *AccountProcessor) StepMonths(account *Account, months int, contribution, withdrawal float64) AccountChange {
	var total AccountChange
	for month := 0; month < months; month++ {
		total.add(ap.Step(account, contribution, withdrawal))
	}
	return total
}
