package validation

import (
	"errors"
	"math"
	"testing"
)

func TestInputChecks(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"Positive accepts positive", Positive("principal", 1), false},
		{"Positive rejects zero", Positive("principal", 0), true},
		{"Positive rejects negative", Positive("principal", -5), true},
		{"Positive rejects NaN", Positive("principal", math.NaN()), true},
		{"NonNegative accepts zero", NonNegative("extra", 0), false},
		{"NonNegative rejects negative", NonNegative("extra", -0.01), true},
		{"NonNegative rejects infinity", NonNegative("extra", math.Inf(1)), true},
		{"AtMost accepts limit", AtMost("term", 50, 50), false},
		{"AtMost rejects above limit", AtMost("term", 51, 50), true},
		{"Between accepts inside", Between("month", 6, 1, 12), false},
		{"Between rejects outside", Between("month", 13, 1, 12), true},
		{"Less accepts ordered", Less("currentAge", 30, "retirementAge", 65), false},
		{"Less rejects equal", Less("currentAge", 65, "retirementAge", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if (tt.err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", tt.err, tt.wantErr)
			}
			if tt.err != nil && !errors.Is(tt.err, ErrInvalidInput) {
				t.Errorf("expected error to match ErrInvalidInput, got %v", tt.err)
			}
		})
	}
}

func TestInvalidInputErrorMessage(t *testing.T) {
	err := Positive("principal", -1)

	var inputErr *InvalidInputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected *InvalidInputError, got %T", err)
	}
	if inputErr.Field != "principal" {
		t.Errorf("Field = %q, expected principal", inputErr.Field)
	}
	if got := err.Error(); got != "invalid input: principal must be greater than zero, got -1" {
		t.Errorf("Error() = %q", got)
	}

	bare := &InvalidInputError{Reason: "no calculation selected"}
	if got := bare.Error(); got != "invalid input: no calculation selected" {
		t.Errorf("Error() = %q", got)
	}
}

func TestFirst(t *testing.T) {
	first := Invalid("a", "broken")
	second := Invalid("b", "broken")

	if err := First(nil, first, second); err != first {
		t.Errorf("First() = %v, expected the first failure", err)
	}
	if err := First(nil, nil); err != nil {
		t.Errorf("First() = %v, expected nil", err)
	}
}
