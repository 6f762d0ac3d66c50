package loans

import (
	"github.com/shopspring/decimal"
)

// YearSummary buckets a schedule by the calendar year of each period.
type YearSummary struct {
	Year          int
	Payments      int
	Interest      float64
	Principal     float64
	Extra         float64
	TotalPaid     float64
	EndingBalance float64
}

type yearAccumulator struct {
	year      int
	payments  int
	interest  decimal.Decimal
	principal decimal.Decimal
	extra     decimal.Decimal
	balance   decimal.Decimal
}

// SummarizeByYear folds periods into calendar-year buckets. The fold runs on
// cent-rounded amounts in decimal arithmetic so that the yearly figures add
// up exactly to the rounded per-period figures. Principal includes extra
// payments; Extra is reported separately as well.
func SummarizeByYear(periods []Period) []YearSummary {
	var accumulators []*yearAccumulator
	var current *yearAccumulator

	for _, period := range periods {
		rounded := period.Rounded()
		year := period.Date.Year()
		if current == nil || current.year != year {
			current = &yearAccumulator{year: year}
			accumulators = append(accumulators, current)
		}
		current.payments++
		current.interest = current.interest.Add(decimal.NewFromFloat(rounded.Interest))
		current.principal = current.principal.
			Add(decimal.NewFromFloat(rounded.Principal)).
			Add(decimal.NewFromFloat(rounded.Extra))
		current.extra = current.extra.Add(decimal.NewFromFloat(rounded.Extra))
		current.balance = decimal.NewFromFloat(rounded.Balance)
	}

	summaries := make([]YearSummary, 0, len(accumulators))
	for _, acc := range accumulators {
		summaries = append(summaries, YearSummary{
			Year:          acc.year,
			Payments:      acc.payments,
			Interest:      acc.interest.InexactFloat64(),
			Principal:     acc.principal.InexactFloat64(),
			Extra:         acc.extra.InexactFloat64(),
			TotalPaid:     acc.interest.Add(acc.principal).InexactFloat64(),
			EndingBalance: acc.balance.InexactFloat64(),
		})
	}
	return summaries
}
