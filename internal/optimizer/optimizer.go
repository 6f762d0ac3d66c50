// Package optimizer searches for the smallest extra monthly payment that pays
// a loan off by a target month.
package optimizer

import (
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/pkg/amortization"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	formatutil "github.com/iwvelando/finance-calculators/pkg/format"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/mortgage"
	"github.com/iwvelando/finance-calculators/pkg/optimization"
	"github.com/iwvelando/finance-calculators/pkg/studentloan"
	"go.uber.org/zap"
)

// FieldExtraMonthly is the only field the optimizer adjusts.
const FieldExtraMonthly = "extraMonthly"

const maxIterations = 64

// ErrUnsupportedType is returned for calculations without a payoff date.
var ErrUnsupportedType = errors.New("optimizer does not support calculation type")

// payoffFunc reports the payoff month for a given extra monthly payment.
type payoffFunc func(extra float64) (time.Time, error)

// target is a calculation prepared for searching.
type target struct {
	payoff   payoffFunc
	original float64
	balance  float64
	apply    func(extra float64) config.Calculation
}

type Runner struct {
	logger *zap.Logger
}

// NewRunner constructs a Runner.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger}
}

// Supports reports whether calculationType has an adjustable payoff date.
func Supports(calculationType string) bool {
	switch calculationType {
	case constants.CalculationAmortization, constants.CalculationMortgage, constants.CalculationStudentLoanRepayment:
		return true
	}
	return false
}

// Optimize finds the smallest extra monthly payment, to the cent, within the
// configured bounds that pays calc off no later than its target month. It
// returns calc with that payment applied. When even the upper bound misses the
// target, the upper bound is applied and the summary is not converged.
func (r *Runner) Optimize(calc config.Calculation) (optimization.Summary, config.Calculation, error) {
	cfg := calc.Optimizer
	if cfg == nil {
		return optimization.Summary{}, calc, fmt.Errorf("optimizer configuration missing for calculation %s", calc.Name)
	}
	targetDate, err := time.Parse(config.DateTimeLayout, cfg.TargetPayoffDate)
	if err != nil {
		return optimization.Summary{}, calc, fmt.Errorf("calculation %q: invalid target payoff date %q: %w", calc.Name, cfg.TargetPayoffDate, err)
	}

	t, err := newTarget(calc)
	if err != nil {
		return optimization.Summary{}, calc, err
	}

	minVal := cfg.MinExtraMonthly
	maxVal := cfg.MaxExtraMonthly
	if maxVal <= 0 {
		maxVal = t.balance
	}
	if minVal < 0 || minVal > maxVal {
		return optimization.Summary{}, calc, fmt.Errorf("calculation %q: invalid optimizer bounds %.2f to %.2f", calc.Name, minVal, maxVal)
	}

	summary := optimization.Summary{
		Calculation:     calc.Name,
		Field:           FieldExtraMonthly,
		Original:        t.original,
		OriginalDisplay: formatutil.Currency(t.original),
		TargetDate:      datetime.Format(targetDate),
	}

	meets := func(extra float64) (bool, time.Time, error) {
		payoff, err := t.payoff(extra)
		if err != nil {
			return false, time.Time{}, err
		}
		return !payoff.After(targetDate), payoff, nil
	}

	lowerOK, lowerPayoff, err := meets(minVal)
	if err != nil {
		return optimization.Summary{}, calc, err
	}
	value, payoff := minVal, lowerPayoff

	switch {
	case lowerOK:
		summary.Converged = true
		summary.Notes = append(summary.Notes, "target already met at the lower bound")
	default:
		upperOK, upperPayoff, err := meets(maxVal)
		if err != nil {
			return optimization.Summary{}, calc, err
		}
		if !upperOK {
			value, payoff = maxVal, upperPayoff
			summary.Notes = append(summary.Notes, fmt.Sprintf("unable to pay off by %s within bounds %s to %s",
				datetime.Format(targetDate), formatutil.Currency(minVal), formatutil.Currency(maxVal)))
			break
		}

		lo, hi := minVal, maxVal
		value, payoff = hi, upperPayoff
		for summary.Iterations < maxIterations && !mathutil.WithinTolerance(hi, lo, constants.CurrencyTolerance) {
			summary.Iterations++
			mid := (lo + hi) / 2
			ok, midPayoff, err := meets(mid)
			if err != nil {
				return optimization.Summary{}, calc, err
			}
			if ok {
				hi, value, payoff = mid, mid, midPayoff
			} else {
				lo = mid
			}
		}

		// Snap up to whole cents, re-checking that rounding kept the target.
		rounded := mathutil.RoundUp(value)
		if ok, roundedPayoff, err := meets(rounded); err == nil && ok {
			value, payoff = rounded, roundedPayoff
		}
		summary.Converged = true
	}

	summary.Value = value
	summary.ValueDisplay = formatutil.Currency(value)
	summary.PayoffDate = datetime.Format(payoff)

	r.logger.Info("optimizer adjusted extra monthly payment",
		zap.String("op", "optimizer.Optimize"),
		zap.String("calculation", calc.Name),
		zap.Float64("original", summary.Original),
		zap.Float64("optimized", summary.Value),
		zap.String("target", summary.TargetDate),
		zap.String("payoff", summary.PayoffDate),
		zap.Int("iterations", summary.Iterations),
		zap.Bool("converged", summary.Converged),
	)

	return summary, t.apply(value), nil
}

func newTarget(calc config.Calculation) (target, error) {
	switch calc.Type {
	case constants.CalculationAmortization:
		in, err := calc.AmortizationInputs()
		if err != nil {
			return target{}, err
		}
		return target{
			original: in.ExtraMonthly,
			balance:  in.Principal,
			payoff: func(extra float64) (time.Time, error) {
				in.ExtraMonthly = extra
				result, err := amortization.Calculate(in)
				return result.PayoffDate, err
			},
			apply: func(extra float64) config.Calculation {
				section := *calc.Amortization
				section.ExtraMonthly = extra
				calc.Amortization = &section
				return calc
			},
		}, nil

	case constants.CalculationMortgage:
		in, err := calc.MortgageInputs()
		if err != nil {
			return target{}, err
		}
		return target{
			original: in.ExtraMonthly,
			balance:  in.LoanAmount(),
			payoff: func(extra float64) (time.Time, error) {
				in.ExtraMonthly = extra
				result, err := mortgage.Calculate(in)
				return result.PayoffDate, err
			},
			apply: func(extra float64) config.Calculation {
				section := *calc.Mortgage
				section.ExtraMonthly = extra
				calc.Mortgage = &section
				return calc
			},
		}, nil

	case constants.CalculationStudentLoanRepayment:
		in, err := calc.StudentLoanRepaymentInputs()
		if err != nil {
			return target{}, err
		}
		return target{
			original: in.ExtraMonthly,
			balance:  in.Balance,
			payoff: func(extra float64) (time.Time, error) {
				in.ExtraMonthly = extra
				result, err := studentloan.CalculateRepayment(in)
				return result.Accelerated.PayoffDate, err
			},
			apply: func(extra float64) config.Calculation {
				section := *calc.StudentLoan
				section.ExtraMonthly = extra
				calc.StudentLoan = &section
				return calc
			},
		}, nil
	}
	return target{}, fmt.Errorf("calculation %q: %w %q", calc.Name, ErrUnsupportedType, calc.Type)
}
