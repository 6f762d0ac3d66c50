// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/finance-calculators/pkg/output"
)

// FindResult finds a report by calculation name in the results slice.
// Returns a pointer to the report if found, nil otherwise.
func FindResult(results []output.Report, name string) *output.Report {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// SummaryNumber returns the numeric value of a summary field, or false when
// the report is nil or has no such field.
func SummaryNumber(report *output.Report, label string) (float64, bool) {
	if report == nil {
		return 0, false
	}
	value, ok := report.Lookup(label)
	if !ok {
		return 0, false
	}
	return value.Number, true
}
