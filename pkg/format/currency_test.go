package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "$0.00"},
		{5.5, "$5.50"},
		{1234.56, "$1,234.56"},
		{103788.46, "$103,788.46"},
		{1234567.891, "$1,234,567.89"},
		{-1234.56, "-$1,234.56"},
		{-0.001, "$0.00"},
	}

	for _, tt := range tests {
		if got := Currency(tt.amount); got != tt.expected {
			t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
		}
	}
}

func TestNumericCurrency(t *testing.T) {
	if got := NumericCurrency(-98765.4); got != "-98,765.40" {
		t.Errorf("NumericCurrency() = %q, expected %q", got, "-98,765.40")
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{6.8, "6.80%"},
		{0, "0.00%"},
		{7.229, "7.23%"},
	}

	for _, tt := range tests {
		if got := Percent(tt.value); got != tt.expected {
			t.Errorf("Percent(%v) = %q, expected %q", tt.value, got, tt.expected)
		}
	}
}

func TestIntegerAndDuration(t *testing.T) {
	if got := Integer(12000); got != "12,000" {
		t.Errorf("Integer() = %q, expected %q", got, "12,000")
	}
	if got := Duration(148); got != "12y 4m" {
		t.Errorf("Duration() = %q, expected %q", got, "12y 4m")
	}
}
