// Package format renders currency, percentage and count values for display.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := NumericCurrency(math.Abs(amount))
	if amount < 0 && formatted != "0.00" {
		return "-$" + formatted
	}
	return "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	return printer.Sprintf("%.2f", roundCents(amount))
}

// Percent renders a percentage value with two decimals (e.g., "6.80%").
func Percent(value float64) string {
	return printer.Sprintf("%.2f%%", roundCents(value))
}

// Integer renders a whole number with separators (e.g., "1,200").
func Integer(value int) string {
	return printer.Sprintf("%d", value)
}

// Duration renders a month count as years and months (e.g., "12y 4m").
func Duration(months int) string {
	return printer.Sprintf("%dy %dm", months/12, months%12)
}

// roundCents avoids printing "-0.00" for values that round to zero.
func roundCents(value float64) float64 {
	rounded := math.Round(value*100) / 100
	if rounded == 0 {
		return 0
	}
	return rounded
}
