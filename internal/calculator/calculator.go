// Package calculator runs the calculations of a configuration and collects
// their reports.
package calculator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/internal/optimizer"
	"github.com/iwvelando/finance-calculators/pkg/adapters"
	"github.com/iwvelando/finance-calculators/pkg/amortization"
	"github.com/iwvelando/finance-calculators/pkg/compound"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mortgage"
	"github.com/iwvelando/finance-calculators/pkg/optimization"
	"github.com/iwvelando/finance-calculators/pkg/output"
	"github.com/iwvelando/finance-calculators/pkg/retirement"
	"github.com/iwvelando/finance-calculators/pkg/studentloan"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
)

// ErrUnknownType is returned for a calculation type no calculator handles.
var ErrUnknownType = errors.New("unknown calculation type")

// Options controls report rendering.
type Options = adapters.Options

// ConfigError marks a calculation that could not be converted into engine
// inputs. It aborts a run, unlike an engine error.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

type runFunc func(logger *zap.Logger, calc config.Calculation, opts Options) (output.Report, error)

var runners = map[string]runFunc{
	constants.CalculationAmortization:          runAmortization,
	constants.CalculationCompound:              runCompound,
	constants.CalculationMortgage:              runMortgage,
	constants.CalculationRetirement:            runRetirement,
	constants.CalculationStudentLoanSimple:     runStudentLoanSimple,
	constants.CalculationStudentLoanRepayment:  runStudentLoanRepayment,
	constants.CalculationStudentLoanProjection: runStudentLoanProjection,
}

// Types lists the supported calculation types.
func Types() []string {
	return []string{
		constants.CalculationAmortization,
		constants.CalculationCompound,
		constants.CalculationMortgage,
		constants.CalculationRetirement,
		constants.CalculationStudentLoanSimple,
		constants.CalculationStudentLoanRepayment,
		constants.CalculationStudentLoanProjection,
	}
}

// Run processes every active calculation in order. A calculation whose engine
// rejects its inputs yields a report carrying the error so the others still
// render; configuration errors abort the run.
func Run(logger *zap.Logger, conf *config.Configuration, opts Options) ([]output.Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf == nil {
		return nil, errors.New("nil configuration")
	}

	reports := make([]output.Report, 0, len(conf.Calculations))
	for _, calc := range conf.Calculations {
		if !calc.IsActive() {
			logger.Debug(fmt.Sprintf("skipping calculation %s because it is inactive", calc.Name),
				zap.String("op", "calculator.Run"),
			)
			continue
		}

		run, ok := runners[calc.Type]
		if !ok {
			return reports, &ConfigError{Err: fmt.Errorf("calculation %q: %w %q (expected one of %s)",
				calc.Name, ErrUnknownType, calc.Type, strings.Join(Types(), ", "))}
		}

		var summary *optimization.Summary
		if calc.Optimizer != nil {
			optimized, adjusted, err := optimize(logger, calc)
			if err != nil {
				var configErr *ConfigError
				if errors.As(err, &configErr) {
					return reports, err
				}
				reports = append(reports, adapters.ErrorReport(calc.Name, calc.Type, err))
				continue
			}
			summary, calc = &optimized, adjusted
		}

		report, err := run(logger, calc, opts)
		var configErr *ConfigError
		if errors.As(err, &configErr) {
			return reports, err
		}
		if err != nil {
			logger.Warn("calculation failed",
				zap.String("op", "calculator.Run"),
				zap.String("calculation", calc.Name),
				zap.Error(err),
			)
			report = adapters.ErrorReport(calc.Name, calc.Type, err)
		} else if summary != nil {
			report = adapters.WithOptimization(report, *summary)
		}
		report.Warnings = append(report.Warnings, calc.Warnings()...)

		logger.Debug("calculation complete",
			zap.String("op", "calculator.Run"),
			zap.String("calculation", calc.Name),
			zap.String("type", calc.Type),
		)
		reports = append(reports, report)
	}
	return reports, nil
}

// optimize runs the payoff-target search. Input rejections by an engine are
// returned as is; everything else is a configuration error.
func optimize(logger *zap.Logger, calc config.Calculation) (optimization.Summary, config.Calculation, error) {
	if !optimizer.Supports(calc.Type) {
		return optimization.Summary{}, calc, &ConfigError{Err: fmt.Errorf("calculation %q: %w %q", calc.Name, optimizer.ErrUnsupportedType, calc.Type)}
	}
	summary, adjusted, err := optimizer.NewRunner(logger).Optimize(calc)
	if err != nil {
		if errors.Is(err, validation.ErrInvalidInput) || errors.Is(err, studentloan.ErrInsufficientPayment) {
			return summary, calc, err
		}
		return summary, calc, &ConfigError{Err: err}
	}
	return summary, adjusted, nil
}

func runAmortization(logger *zap.Logger, calc config.Calculation, opts Options) (output.Report, error) {
	in, err := calc.AmortizationInputs()
	if err != nil {
		return output.Report{}, &ConfigError{Err: err}
	}
	result, err := amortization.CalculateWithLogger(logger, in)
	if err != nil {
		return output.Report{}, err
	}
	return adapters.AmortizationReport(calc.Name, result, opts), nil
}

func runCompound(logger *zap.Logger, calc config.Calculation, _ Options) (output.Report, error) {
	in, err := calc.CompoundInputs()
	if err != nil {
		return output.Report{}, &ConfigError{Err: err}
	}
	result, err := compound.CalculateWithLogger(logger, in)
	if err != nil {
		return output.Report{}, err
	}
	return adapters.CompoundReport(calc.Name, result), nil
}

func runMortgage(logger *zap.Logger, calc config.Calculation, opts Options) (output.Report, error) {
	in, err := calc.MortgageInputs()
	if err != nil {
		return output.Report{}, &ConfigError{Err: err}
	}
	result, err := mortgage.CalculateWithLogger(logger, in)
	if err != nil {
		return output.Report{}, err
	}
	return adapters.MortgageReport(calc.Name, result, opts), nil
}

func runRetirement(logger *zap.Logger, calc config.Calculation, _ Options) (output.Report, error) {
	in, err := calc.RetirementInputs()
	if err != nil {
		return output.Report{}, &ConfigError{Err: err}
	}
	result, err := retirement.CalculateWithLogger(logger, in)
	if err != nil {
		return output.Report{}, err
	}
	return adapters.RetirementReport(calc.Name, result), nil
}

func runStudentLoanSimple(_ *zap.Logger, calc config.Calculation, _ Options) (output.Report, error) {
	in, err := calc.StudentLoanSimpleInputs()
	if err != nil {
		return output.Report{}, &ConfigError{Err: err}
	}
	result, err := studentloan.CalculateSimple(in)
	if err != nil {
		return output.Report{}, err
	}
	return adapters.StudentLoanSimpleReport(calc.Name, result), nil
}

func runStudentLoanRepayment(logger *zap.Logger, calc config.Calculation, opts Options) (output.Report, error) {
	in, err := calc.StudentLoanRepaymentInputs()
	if err != nil {
		return output.Report{}, &ConfigError{Err: err}
	}
	result, err := studentloan.CalculateRepaymentWithLogger(logger, in)
	if err != nil {
		return output.Report{}, err
	}
	return adapters.StudentLoanRepaymentReport(calc.Name, result, opts), nil
}

func runStudentLoanProjection(logger *zap.Logger, calc config.Calculation, _ Options) (output.Report, error) {
	in, err := calc.StudentLoanProjectionInputs()
	if err != nil {
		return output.Report{}, &ConfigError{Err: err}
	}
	result, err := studentloan.CalculateProjectionWithLogger(logger, in)
	if err != nil {
		return output.Report{}, err
	}
	return adapters.StudentLoanProjectionReport(calc.Name, result), nil
}
