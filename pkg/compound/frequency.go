package compound

import (
	"fmt"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
)

// Frequency is how often interest compounds or contributions are made.
type Frequency int

const (
	Annually Frequency = iota + 1
	Semiannually
	Quarterly
	Monthly
	Biweekly
	Weekly
	Daily
	Continuous
)

var frequencyNames = map[Frequency]string{
	Annually:     "annually",
	Semiannually: "semiannually",
	Quarterly:    "quarterly",
	Monthly:      "monthly",
	Biweekly:     "biweekly",
	Weekly:       "weekly",
	Daily:        "daily",
	Continuous:   "continuous",
}

var periodsPerYear = map[Frequency]int{
	Annually:     1,
	Semiannually: 2,
	Quarterly:    4,
	Monthly:      12,
	Biweekly:     26,
	Weekly:       52,
	Daily:        365,
}

// ParseFrequency maps a configuration value onto a Frequency.
func ParseFrequency(value string) (Frequency, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for frequency, name := range frequencyNames {
		if name == normalized {
			return frequency, nil
		}
	}
	return 0, fmt.Errorf("unknown frequency %q", value)
}

func (f Frequency) String() string {
	if name, ok := frequencyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Frequency(%d)", int(f))
}

// PeriodsPerYear is zero for continuous compounding.
func (f Frequency) PeriodsPerYear() int {
	return periodsPerYear[f]
}

// Valid reports whether f is one of the declared frequencies.
func (f Frequency) Valid() bool {
	_, ok := frequencyNames[f]
	return ok
}

// Timing places contributions at the start or the end of each period.
type Timing int

const (
	End Timing = iota
	Beginning
)

// ParseTiming accepts "end" (ordinary annuity, also the default for an empty
// value) and "beginning" (annuity due).
func ParseTiming(value string) (Timing, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "end":
		return End, nil
	case "beginning", "start":
		return Beginning, nil
	default:
		return End, fmt.Errorf("unknown contribution timing %q", value)
	}
}

// Valid reports whether t is End or Beginning.
func (t Timing) Valid() bool {
	return t == End || t == Beginning
}

func (t Timing) String() string {
	if t == Beginning {
		return "beginning"
	}
	return "end"
}

// DurationUnit is the unit Inputs.Duration is expressed in.
type DurationUnit int

const (
	Years DurationUnit = iota
	Months
	Weeks
	Days
)

// ParseDurationUnit accepts years, months, weeks or days. Empty means years.
func ParseDurationUnit(value string) (DurationUnit, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "years", "year":
		return Years, nil
	case "months", "month":
		return Months, nil
	case "weeks", "week":
		return Weeks, nil
	case "days", "day":
		return Days, nil
	default:
		return Years, fmt.Errorf("unknown duration unit %q", value)
	}
}

// Valid reports whether u is one of the declared units.
func (u DurationUnit) Valid() bool {
	return u >= Years && u <= Days
}

func (u DurationUnit) String() string {
	switch u {
	case Months:
		return "months"
	case Weeks:
		return "weeks"
	case Days:
		return "days"
	default:
		return "years"
	}
}

// ToYears converts a duration in this unit to years.
func (u DurationUnit) ToYears(duration float64) float64 {
	switch u {
	case Months:
		return duration / constants.MonthsPerYear
	case Weeks:
		return duration / constants.WeeksPerYear
	case Days:
		return duration / constants.DaysPerYear
	default:
		return duration
	}
}
