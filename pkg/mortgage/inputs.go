package mortgage

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

// DownPaymentType selects how Inputs.DownPayment is interpreted.
type DownPaymentType int

const (
	DownPaymentPercent DownPaymentType = iota
	DownPaymentAmount
)

// ParseDownPaymentType accepts "percent" (the default) or "amount".
func ParseDownPaymentType(value string) (DownPaymentType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "percent", "percentage":
		return DownPaymentPercent, nil
	case "amount", "dollar", "dollars":
		return DownPaymentAmount, nil
	default:
		return DownPaymentPercent, fmt.Errorf("unknown down payment type %q", value)
	}
}

// Valid reports whether t is DownPaymentPercent or DownPaymentAmount.
func (t DownPaymentType) Valid() bool {
	return t == DownPaymentPercent || t == DownPaymentAmount
}

func (t DownPaymentType) String() string {
	if t == DownPaymentAmount {
		return "amount"
	}
	return "percent"
}

// ExtraPayment is a one-time principal payment made in Month (1-12) of Year.
type ExtraPayment struct {
	Amount float64
	Month  int
	Year   int
}

// Date is the first day of the payment month.
func (p ExtraPayment) Date() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// Escalation holds the yearly percentage increase of each recurring cost.
type Escalation struct {
	PropertyTax float64
	Insurance   float64
	HOA         float64
	Other       float64
}

// Capped clamps every rate to the annual escalation ceiling.
func (e Escalation) Capped() Escalation {
	return Escalation{
		PropertyTax: min(e.PropertyTax, constants.MaxAnnualEscalation),
		Insurance:   min(e.Insurance, constants.MaxAnnualEscalation),
		HOA:         min(e.HOA, constants.MaxAnnualEscalation),
		Other:       min(e.Other, constants.MaxAnnualEscalation),
	}
}

// Inputs describes a home purchase. Rates are percentages: AnnualRate and
// PMIRate per year of the loan amount, PropertyTaxRate per year of the home
// price.
type Inputs struct {
	HomePrice        float64
	DownPayment      float64
	DownPaymentType  DownPaymentType
	AnnualRate       float64
	TermYears        int
	PropertyTaxRate  float64
	AnnualInsurance  float64
	PMIRate          float64
	MonthlyHOA       float64
	AnnualOtherCosts float64
	StartDate        time.Time

	ExtraMonthly    float64
	ExtraYearly     float64
	OneTime         ExtraPayment
	MultipleOneTime []ExtraPayment

	Escalation Escalation
}

// DownPaymentValue is the down payment in dollars.
func (in Inputs) DownPaymentValue() float64 {
	if in.DownPaymentType == DownPaymentPercent {
		return in.HomePrice * in.DownPayment / constants.PercentageMultiplier
	}
	return in.DownPayment
}

// LoanAmount is the home price less the down payment.
func (in Inputs) LoanAmount() float64 {
	return in.HomePrice - in.DownPaymentValue()
}

// TermMonths is the nominal term in months.
func (in Inputs) TermMonths() int {
	return in.TermYears * constants.MonthsPerYear
}

// OneTimePayments lists every configured one-time payment with a positive amount.
func (in Inputs) OneTimePayments() []ExtraPayment {
	var payments []ExtraPayment
	for _, payment := range append([]ExtraPayment{in.OneTime}, in.MultipleOneTime...) {
		if payment.Amount > 0 {
			payments = append(payments, payment)
		}
	}
	return payments
}

// HasExtras reports whether any extra principal payment is configured.
func (in Inputs) HasExtras() bool {
	return in.ExtraMonthly > 0 || in.ExtraYearly > 0 || len(in.OneTimePayments()) > 0
}

// Validate checks the inputs against the engine invariants.
func (in Inputs) Validate() error {
	err := validation.First(
		validation.Positive("homePrice", in.HomePrice),
		validation.NonNegative("downPayment", in.DownPayment),
		validation.NonNegative("annualRate", in.AnnualRate),
		validation.Positive("termYears", float64(in.TermYears)),
		validation.AtMost("termYears", float64(in.TermYears), constants.MaxLoanTermYears),
		validation.NonNegative("propertyTaxRate", in.PropertyTaxRate),
		validation.NonNegative("annualInsurance", in.AnnualInsurance),
		validation.NonNegative("pmiRate", in.PMIRate),
		validation.NonNegative("monthlyHOA", in.MonthlyHOA),
		validation.NonNegative("annualOtherCosts", in.AnnualOtherCosts),
		validation.NonNegative("extraMonthly", in.ExtraMonthly),
		validation.NonNegative("extraYearly", in.ExtraYearly),
		validation.NonNegative("escalation.propertyTax", in.Escalation.PropertyTax),
		validation.NonNegative("escalation.insurance", in.Escalation.Insurance),
		validation.NonNegative("escalation.hoa", in.Escalation.HOA),
		validation.NonNegative("escalation.other", in.Escalation.Other),
	)
	if err != nil {
		return err
	}

	if !in.DownPaymentType.Valid() {
		return validation.Invalid("downPaymentType", "must be percent or amount")
	}
	if in.DownPaymentType == DownPaymentPercent {
		if err := validation.Less("downPayment", in.DownPayment, "100 percent", constants.PercentageMultiplier); err != nil {
			return err
		}
	}
	if err := validation.Less("downPayment", in.DownPaymentValue(), "homePrice", in.HomePrice); err != nil {
		return err
	}

	for i, payment := range append([]ExtraPayment{in.OneTime}, in.MultipleOneTime...) {
		field := "oneTime"
		if i > 0 {
			field = fmt.Sprintf("multipleOneTime[%d]", i-1)
		}
		if err := validation.NonNegative(field+".amount", payment.Amount); err != nil {
			return err
		}
		if payment.Amount == 0 {
			continue
		}
		if err := validation.Between(field+".month", float64(payment.Month), 1, constants.MonthsPerYear); err != nil {
			return err
		}
		if err := validation.Positive(field+".year", float64(payment.Year)); err != nil {
			return err
		}
	}
	return nil
}
