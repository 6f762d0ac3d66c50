package output

import (
	"encoding/json"

	"github.com/iwvelando/finance-calculators/pkg/format"
	"github.com/shopspring/decimal"
)

// Kind describes how a Value is rendered.
type Kind int

const (
	KindText Kind = iota
	KindCurrency
	KindPercent
	KindInteger
	KindNumber
)

// Value is one rendered cell or summary figure.
type Value struct {
	Kind   Kind
	Number float64
	Text   string
}

// Currency wraps a dollar amount.
func Currency(amount float64) Value { return Value{Kind: KindCurrency, Number: amount} }

// Percent wraps a percentage such as 6.8 for 6.80%.
func Percent(percent float64) Value { return Value{Kind: KindPercent, Number: percent} }

// Integer wraps a count.
func Integer(n int) Value { return Value{Kind: KindInteger, Number: float64(n)} }

// Number wraps a plain decimal such as a fractional year.
func Number(v float64) Value { return Value{Kind: KindNumber, Number: v} }

// Text wraps a string such as a date or a label.
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// Pretty renders the value for terminal display.
func (v Value) Pretty() string {
	switch v.Kind {
	case KindCurrency:
		return format.Currency(v.Number)
	case KindPercent:
		return format.Percent(v.Number)
	case KindInteger:
		return format.Integer(int(v.Number))
	case KindNumber:
		return decimal.NewFromFloat(v.Number).String()
	default:
		return v.Text
	}
}

// Plain renders the value for machine consumption: no symbols or separators,
// currency and percentages fixed at two decimals.
func (v Value) Plain() string {
	switch v.Kind {
	case KindCurrency, KindPercent:
		return decimal.NewFromFloat(v.Number).StringFixed(2)
	case KindInteger:
		return decimal.NewFromFloat(v.Number).StringFixed(0)
	case KindNumber:
		return decimal.NewFromFloat(v.Number).String()
	default:
		return v.Text
	}
}

// MarshalJSON emits numbers for numeric kinds and strings otherwise.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Kind == KindText {
		return json.Marshal(v.Text)
	}
	return []byte(v.Plain()), nil
}

// MarshalYAML emits numbers for numeric kinds and strings otherwise.
func (v Value) MarshalYAML() (interface{}, error) {
	switch v.Kind {
	case KindText:
		return v.Text, nil
	case KindInteger:
		return int(v.Number), nil
	default:
		return decimal.NewFromFloat(v.Number).Round(2).InexactFloat64(), nil
	}
}

// Field is a labelled summary figure.
type Field struct {
	Label string `json:"label" yaml:"label"`
	Value Value  `json:"value" yaml:"value"`
}

// Table is a titled grid such as an amortization schedule.
type Table struct {
	Title   string    `json:"title" yaml:"title"`
	Headers []string  `json:"headers" yaml:"headers"`
	Rows    [][]Value `json:"rows" yaml:"rows"`
}

// Report is the rendered outcome of one calculation. When Error is set the
// calculation failed and Summary holds at most the failure details.
type Report struct {
	Name     string   `json:"name" yaml:"name"`
	Type     string   `json:"type" yaml:"type"`
	Summary  []Field  `json:"summary,omitempty" yaml:"summary,omitempty"`
	Tables   []Table  `json:"tables,omitempty" yaml:"tables,omitempty"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Error    string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// Lookup returns the summary value with the given label.
func (r Report) Lookup(label string) (Value, bool) {
	for _, field := range r.Summary {
		if field.Label == label {
			return field.Value, true
		}
	}
	return Value{}, false
}
