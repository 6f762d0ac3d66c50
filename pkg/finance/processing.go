// Package finance steps investment accounts month by month and rolls the
// months up into yearly projections.
package finance

import (
	"fmt"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"go.uber.org/zap"
)

// Cadence is how often a phase steps the account.
type Cadence int

const (
	// Monthly compounds each month and applies the flows every month.
	Monthly Cadence = iota
	// Yearly compounds once a year and applies the flows at year end.
	Yearly
)

// Phase is a run of whole years. Contribution and Withdrawal are the amounts
// applied at each step of the cadence; both are raised by their growth
// percentage at the start of every year after the first.
type Phase struct {
	Name               string
	Years              int
	Cadence            Cadence
	Contribution       float64
	ContributionGrowth float64
	Withdrawal         float64
	WithdrawalGrowth   float64
}

// YearChange is the aggregated account movement over one projected year.
type YearChange struct {
	// Index counts projected years from 1 across all phases.
	Index int
	Phase string
	AccountChange
	Balance float64
}

// Projector coordinates phases of account activity.
type Projector struct {
	processor *AccountProcessor
	logger    *zap.Logger
}

// NewProjector creates a new projector.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewProjector(logger *zap.Logger) *Projector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Projector{
		processor: NewAccountProcessor(logger),
		logger:    logger,
	}
}

// Project runs the phases in order against account and returns one entry per
// projected year.
func (p *Projector) Project(account *Account, phases []Phase) ([]YearChange, error) {
	if account == nil {
		return nil, fmt.Errorf("account cannot be nil")
	}

	var years []YearChange
	for _, phase := range phases {
		if phase.Cadence != Monthly && phase.Cadence != Yearly {
			return nil, fmt.Errorf("phase %s: unknown cadence %d", phase.Name, phase.Cadence)
		}
		if phase.Years < 0 {
			return nil, fmt.Errorf("phase %s: years must not be negative, got %d", phase.Name, phase.Years)
		}

		contribution := phase.Contribution
		withdrawal := phase.Withdrawal
		for year := 0; year < phase.Years; year++ {
			if year > 0 {
				contribution *= 1 + phase.ContributionGrowth/constants.PercentageMultiplier
				withdrawal *= 1 + phase.WithdrawalGrowth/constants.PercentageMultiplier
			}
			var change AccountChange
			if phase.Cadence == Yearly {
				change = p.processor.StepYear(account, contribution, withdrawal)
			} else {
				change = p.processor.StepMonths(account, constants.MonthsPerYear, contribution, withdrawal)
			}
			years = append(years, YearChange{
				Index:         len(years) + 1,
				Phase:         phase.Name,
				AccountChange: change,
				Balance:       account.Balance,
			})
		}

		p.logger.Debug("projected phase",
			zap.String("op", "finance.Project"),
			zap.String("account", account.Name),
			zap.String("phase", phase.Name),
			zap.Int("years", phase.Years),
			zap.Float64("balance", account.Balance),
		)
	}
	return years, nil
}
