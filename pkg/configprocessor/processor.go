// Package configprocessor provides shared configuration processing utilities.
package configprocessor

import (
	"fmt"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
)

// LongTermYears is the loan term above which a warning is raised.
const LongTermYears = 30

// RateInfo is a named yearly escalation percentage.
type RateInfo struct {
	Name    string
	Percent float64
}

// ExtraPaymentInfo is the month of a scheduled one-time payment.
type ExtraPaymentInfo struct {
	Year  int
	Month int
}

// CalculationInfo represents the parts of a calculation the processor inspects.
// DownPaymentPercent is negative when it does not apply.
type CalculationInfo struct {
	Name               string
	Type               string
	Active             bool
	StartDate          string
	TermMonths         int
	DownPaymentPercent float64
	PMIRate            float64
	Escalations        []RateInfo
	ExtraPayments      []ExtraPaymentInfo
}

// Processor handles configuration processing and validation
type Processor struct {
	now func() time.Time
}

// NewProcessor creates a new configuration processor
func NewProcessor() *Processor {
	return &Processor{now: time.Now}
}

// ValidateConfiguration validates the calculations and returns warnings. None
// of the warnings stop a run.
func (p *Processor) ValidateConfiguration(calculations []CalculationInfo) []string {
	var warnings []string
	seen := make(map[string]bool)

	for _, calc := range calculations {
		if seen[calc.Name] {
			warnings = append(warnings, fmt.Sprintf("Calculation name '%s' is used more than once", calc.Name))
		}
		seen[calc.Name] = true

		if !calc.Active {
			warnings = append(warnings, fmt.Sprintf("Calculation '%s' is inactive and will be skipped", calc.Name))
			continue
		}

		for _, rate := range calc.Escalations {
			if rate.Percent > constants.MaxAnnualEscalation {
				warnings = append(warnings, fmt.Sprintf("Calculation '%s' %s escalation %.2f%% exceeds the %.0f%% cap and will be capped",
					calc.Name, rate.Name, rate.Percent, constants.MaxAnnualEscalation))
			}
		}

		if calc.PMIRate > 0 && calc.DownPaymentPercent >= (1-constants.PMILoanToValueCutoff)*constants.PercentageMultiplier {
			warnings = append(warnings, fmt.Sprintf("Calculation '%s' sets a PMI rate but the down payment is %.2f%%, so PMI will not be charged",
				calc.Name, calc.DownPaymentPercent))
		}

		if calc.TermMonths > LongTermYears*constants.MonthsPerYear {
			warnings = append(warnings, fmt.Sprintf("Calculation '%s' has a term of %d months, longer than %d years",
				calc.Name, calc.TermMonths, LongTermYears))
		}

		warnings = append(warnings, p.extraPaymentWarnings(calc)...)
	}

	return warnings
}

func (p *Processor) extraPaymentWarnings(calc CalculationInfo) []string {
	if len(calc.ExtraPayments) == 0 || calc.TermMonths <= 0 {
		return nil
	}

	start := datetime.MonthStart(p.now())
	if calc.StartDate != "" {
		parsed, err := datetime.ParseMonth(calc.StartDate, start)
		if err != nil {
			return []string{fmt.Sprintf("Calculation '%s' has an invalid start date: %v", calc.Name, err)}
		}
		start = parsed
	}
	end := datetime.OffsetMonths(start, calc.TermMonths-1)

	var warnings []string
	for _, extra := range calc.ExtraPayments {
		date := time.Date(extra.Year, time.Month(extra.Month), 1, 0, 0, 0, 0, time.UTC)
		if offset := datetime.MonthsBetween(start, date); offset < 0 || offset >= calc.TermMonths {
			warnings = append(warnings, fmt.Sprintf("Calculation '%s' extra payment %04d-%02d falls outside the loan term (%s to %s)",
				calc.Name, extra.Year, extra.Month, datetime.Format(start), datetime.Format(end)))
		}
	}
	return warnings
}
