// Package constants provides shared constants for the finance-calculators application.
package constants

// DateTimeLayout is the format expected in config files for start dates and
// one-time payments, and is also the output date format.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// WeeksPerYear is used when converting week-based durations to years
	WeeksPerYear = 52

	// DaysPerYear is used when converting day-based durations to years
	DaysPerYear = 365

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Simulation limits
const (
	// PayoffThreshold is the balance at or below which a loan is considered paid off.
	PayoffThreshold = 0.01

	// SafetyCapMultiplier bounds schedule simulations at this multiple of the nominal term.
	SafetyCapMultiplier = 2

	// MaxRepaymentMonths caps the student-loan and retirement depletion loops (50 years).
	MaxRepaymentMonths = 600

	// MaxLoanTermYears is the longest amortization term accepted.
	MaxLoanTermYears = 50

	// MaxCompoundYears is the longest compound-interest horizon accepted.
	MaxCompoundYears = 100

	// MaxAge bounds the ages accepted by the retirement engine.
	MaxAge = 120

	// MaxGracePeriodMonths bounds the student-loan grace period.
	MaxGracePeriodMonths = 60
)

// Mortgage constants
const (
	// PMILoanToValueCutoff is the loan-to-value ratio at or below which PMI is dropped.
	PMILoanToValueCutoff = 0.80

	// MaxAnnualEscalation caps the yearly percentage increase of recurring housing costs.
	MaxAnnualEscalation = 20.0
)

// Retirement constants
const (
	// SafeWithdrawalRate is the 4% rule expressed as a fraction.
	SafeWithdrawalRate = 0.04

	// RealReturnEpsilon is the magnitude under which a real return is treated as zero.
	RealReturnEpsilon = 1e-9
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "calculations.yaml"

	// EnvPrefix is the prefix for environment overrides read by viper.
	EnvPrefix = "FINCALC"
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Calculation types accepted in configuration files and reported in output.
const (
	CalculationAmortization          = "amortization"
	CalculationCompound              = "compound"
	CalculationMortgage              = "mortgage"
	CalculationRetirement            = "retirement"
	CalculationStudentLoanSimple     = "student-loan-simple"
	CalculationStudentLoanRepayment  = "student-loan-repayment"
	CalculationStudentLoanProjection = "student-loan-projection"
)
