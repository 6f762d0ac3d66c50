// Package config defines the data structures related to the calculation file
// and includes functions for loading and validating it.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/configprocessor"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DateTimeLayout is the format expected in config files for start dates.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds all calculations to run plus logging and output settings.
type Configuration struct {
	Logging      LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Output       OutputConfig  `mapstructure:"output" yaml:"output"`
	Calculations []Calculation `mapstructure:"calculations" yaml:"calculations"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file path, defaults to stdout
}

// OutputConfig holds output formatting configuration
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv, json, yaml
}

// Calculation is one named run of a calculator. Only the section matching
// Type is consulted.
type Calculation struct {
	Name         string              `mapstructure:"name" yaml:"name"`
	Type         string              `mapstructure:"type" yaml:"type"`
	Active       *bool               `mapstructure:"active" yaml:"active,omitempty"`
	Amortization *AmortizationConfig `mapstructure:"amortization" yaml:"amortization,omitempty"`
	Compound     *CompoundConfig     `mapstructure:"compound" yaml:"compound,omitempty"`
	Mortgage     *MortgageConfig     `mapstructure:"mortgage" yaml:"mortgage,omitempty"`
	Retirement   *RetirementConfig   `mapstructure:"retirement" yaml:"retirement,omitempty"`
	StudentLoan  *StudentLoanConfig  `mapstructure:"studentLoan" yaml:"studentLoan,omitempty"`
	Optimizer    *OptimizerConfig    `mapstructure:"optimizer" yaml:"optimizer,omitempty"`
}

// OptimizerConfig asks for the smallest extra monthly payment that pays the
// loan off by TargetPayoffDate. MaxExtraMonthly defaults to the loan balance.
type OptimizerConfig struct {
	TargetPayoffDate string  `mapstructure:"targetPayoffDate" yaml:"targetPayoffDate"`
	MinExtraMonthly  float64 `mapstructure:"minExtraMonthly" yaml:"minExtraMonthly,omitempty"`
	MaxExtraMonthly  float64 `mapstructure:"maxExtraMonthly" yaml:"maxExtraMonthly,omitempty"`
}

// IsActive reports whether the calculation should run; calculations are
// active unless explicitly disabled.
func (c Calculation) IsActive() bool {
	return c.Active == nil || *c.Active
}

// AmortizationConfig configures a plain loan schedule.
type AmortizationConfig struct {
	Principal    float64 `mapstructure:"principal" yaml:"principal"`
	InterestRate float64 `mapstructure:"interestRate" yaml:"interestRate"`
	TermYears    int     `mapstructure:"termYears" yaml:"termYears,omitempty"`
	TermMonths   int     `mapstructure:"termMonths" yaml:"termMonths,omitempty"`
	StartDate    string  `mapstructure:"startDate" yaml:"startDate,omitempty"`
	ExtraMonthly float64 `mapstructure:"extraMonthly" yaml:"extraMonthly,omitempty"`
}

// CompoundConfig configures a compound-interest projection.
type CompoundConfig struct {
	Principal             float64 `mapstructure:"principal" yaml:"principal"`
	InterestRate          float64 `mapstructure:"interestRate" yaml:"interestRate"`
	Duration              float64 `mapstructure:"duration" yaml:"duration"`
	DurationUnit          string  `mapstructure:"durationUnit" yaml:"durationUnit,omitempty"`
	Compounding           string  `mapstructure:"compounding" yaml:"compounding,omitempty"`
	Contribution          float64 `mapstructure:"contribution" yaml:"contribution,omitempty"`
	ContributionFrequency string  `mapstructure:"contributionFrequency" yaml:"contributionFrequency,omitempty"`
	ContributionTiming    string  `mapstructure:"contributionTiming" yaml:"contributionTiming,omitempty"`
}

// ExtraPaymentConfig is a one-time mortgage prepayment.
type ExtraPaymentConfig struct {
	Amount float64 `mapstructure:"amount" yaml:"amount"`
	Month  int     `mapstructure:"month" yaml:"month"`
	Year   int     `mapstructure:"year" yaml:"year"`
}

// EscalationConfig holds yearly percentage increases of recurring housing costs.
type EscalationConfig struct {
	PropertyTax float64 `mapstructure:"propertyTax" yaml:"propertyTax,omitempty"`
	Insurance   float64 `mapstructure:"insurance" yaml:"insurance,omitempty"`
	HOA         float64 `mapstructure:"hoa" yaml:"hoa,omitempty"`
	Other       float64 `mapstructure:"other" yaml:"other,omitempty"`
}

// MortgageConfig configures a full housing-cost mortgage.
type MortgageConfig struct {
	HomePrice        float64              `mapstructure:"homePrice" yaml:"homePrice"`
	DownPayment      float64              `mapstructure:"downPayment" yaml:"downPayment"`
	DownPaymentType  string               `mapstructure:"downPaymentType" yaml:"downPaymentType,omitempty"`
	InterestRate     float64              `mapstructure:"interestRate" yaml:"interestRate"`
	TermYears        int                  `mapstructure:"termYears" yaml:"termYears"`
	PropertyTaxRate  float64              `mapstructure:"propertyTaxRate" yaml:"propertyTaxRate,omitempty"`
	AnnualInsurance  float64              `mapstructure:"annualInsurance" yaml:"annualInsurance,omitempty"`
	PMIRate          float64              `mapstructure:"pmiRate" yaml:"pmiRate,omitempty"`
	MonthlyHOA       float64              `mapstructure:"monthlyHOA" yaml:"monthlyHOA,omitempty"`
	AnnualOtherCosts float64              `mapstructure:"annualOtherCosts" yaml:"annualOtherCosts,omitempty"`
	StartDate        string               `mapstructure:"startDate" yaml:"startDate,omitempty"`
	ExtraMonthly     float64              `mapstructure:"extraMonthly" yaml:"extraMonthly,omitempty"`
	ExtraYearly      float64              `mapstructure:"extraYearly" yaml:"extraYearly,omitempty"`
	OneTime          []ExtraPaymentConfig `mapstructure:"oneTime" yaml:"oneTime,omitempty"`
	Escalation       EscalationConfig     `mapstructure:"escalation" yaml:"escalation,omitempty"`
}

// RetirementConfig configures one of the retirement planning modes.
type RetirementConfig struct {
	Mode                string  `mapstructure:"mode" yaml:"mode"`
	CurrentAge          int     `mapstructure:"currentAge" yaml:"currentAge"`
	RetirementAge       int     `mapstructure:"retirementAge" yaml:"retirementAge"`
	LifeExpectancy      int     `mapstructure:"lifeExpectancy" yaml:"lifeExpectancy"`
	CurrentIncome       float64 `mapstructure:"currentIncome" yaml:"currentIncome,omitempty"`
	IncomeGrowth        float64 `mapstructure:"incomeGrowth" yaml:"incomeGrowth,omitempty"`
	IncomeReplacement   float64 `mapstructure:"incomeReplacement" yaml:"incomeReplacement,omitempty"`
	InvestmentReturn    float64 `mapstructure:"investmentReturn" yaml:"investmentReturn"`
	Inflation           float64 `mapstructure:"inflation" yaml:"inflation,omitempty"`
	CurrentSavings      float64 `mapstructure:"currentSavings" yaml:"currentSavings,omitempty"`
	ContributionRate    float64 `mapstructure:"contributionRate" yaml:"contributionRate,omitempty"`
	SavingsTarget       float64 `mapstructure:"savingsTarget" yaml:"savingsTarget,omitempty"`
	MonthlyContribution float64 `mapstructure:"monthlyContribution" yaml:"monthlyContribution,omitempty"`
	MonthlyWithdrawal   float64 `mapstructure:"monthlyWithdrawal" yaml:"monthlyWithdrawal,omitempty"`
}

// StudentLoanConfig covers the simple, repayment and projection calculators;
// each reads only the fields it needs.
type StudentLoanConfig struct {
	Balance        float64 `mapstructure:"balance" yaml:"balance,omitempty"`
	InterestRate   float64 `mapstructure:"interestRate" yaml:"interestRate"`
	TermYears      int     `mapstructure:"termYears" yaml:"termYears,omitempty"`
	MonthlyPayment float64 `mapstructure:"monthlyPayment" yaml:"monthlyPayment,omitempty"`
	ExtraMonthly   float64 `mapstructure:"extraMonthly" yaml:"extraMonthly,omitempty"`
	ExtraYearly    float64 `mapstructure:"extraYearly" yaml:"extraYearly,omitempty"`
	ExtraOneTime   float64 `mapstructure:"extraOneTime" yaml:"extraOneTime,omitempty"`
	StartDate      string  `mapstructure:"startDate" yaml:"startDate,omitempty"`

	YearsToGraduate     int     `mapstructure:"yearsToGraduate" yaml:"yearsToGraduate,omitempty"`
	AnnualLoanAmount    float64 `mapstructure:"annualLoanAmount" yaml:"annualLoanAmount,omitempty"`
	CurrentBalance      float64 `mapstructure:"currentBalance" yaml:"currentBalance,omitempty"`
	RepaymentTermYears  int     `mapstructure:"repaymentTermYears" yaml:"repaymentTermYears,omitempty"`
	GracePeriodMonths   int     `mapstructure:"gracePeriodMonths" yaml:"gracePeriodMonths,omitempty"`
	PayInterestInSchool bool    `mapstructure:"payInterestInSchool" yaml:"payInterestInSchool,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there into a Configuration struct.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}
	return decode(v)
}

// LoadEnvironment builds an empty configuration carrying only the FINCALC_*
// environment overrides, for calculations defined outside a file.
func LoadEnvironment() (*Configuration, error) {
	return decode(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	// Scalars read through Get honour FINCALC_* environment overrides.
	if level := v.GetString("logging.level"); level != "" {
		configuration.Logging.Level = level
	}
	if format := v.GetString("output.format"); format != "" {
		configuration.Output.Format = format
	}
	return &configuration, nil
}

// ExportYAML renders the configuration back to YAML.
func (c *Configuration) ExportYAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to export configuration: %w", err)
	}
	return out, nil
}

// ValidateConfiguration checks for configuration issues and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	infos := make([]configprocessor.CalculationInfo, 0, len(c.Calculations))
	for _, calc := range c.Calculations {
		infos = append(infos, calc.info())
	}
	return configprocessor.NewProcessor().ValidateConfiguration(infos)
}

func (c Calculation) info() configprocessor.CalculationInfo {
	info := configprocessor.CalculationInfo{
		Name:               c.Name,
		Type:               c.Type,
		Active:             c.IsActive(),
		DownPaymentPercent: -1,
	}

	switch {
	case c.Type == constants.CalculationAmortization && c.Amortization != nil:
		info.StartDate = c.Amortization.StartDate
		info.TermMonths = c.Amortization.TermYears*constants.MonthsPerYear + c.Amortization.TermMonths
	case c.Type == constants.CalculationMortgage && c.Mortgage != nil:
		m := c.Mortgage
		info.StartDate = m.StartDate
		info.TermMonths = m.TermYears * constants.MonthsPerYear
		info.PMIRate = m.PMIRate
		if m.HomePrice > 0 {
			if in, err := c.MortgageInputs(); err == nil {
				info.DownPaymentPercent = in.DownPaymentValue() / m.HomePrice * constants.PercentageMultiplier
			}
		}
		info.Escalations = []configprocessor.RateInfo{
			{Name: "property tax", Percent: m.Escalation.PropertyTax},
			{Name: "insurance", Percent: m.Escalation.Insurance},
			{Name: "HOA", Percent: m.Escalation.HOA},
			{Name: "other costs", Percent: m.Escalation.Other},
		}
		for _, extra := range m.OneTime {
			if extra.Amount > 0 {
				info.ExtraPayments = append(info.ExtraPayments, configprocessor.ExtraPaymentInfo{Year: extra.Year, Month: extra.Month})
			}
		}
	case c.Type == constants.CalculationStudentLoanSimple && c.StudentLoan != nil:
		info.TermMonths = c.StudentLoan.TermYears * constants.MonthsPerYear
	case c.Type == constants.CalculationStudentLoanProjection && c.StudentLoan != nil:
		info.TermMonths = c.StudentLoan.RepaymentTermYears * constants.MonthsPerYear
	}
	return info
}

// Warnings returns the configuration warnings that apply to this calculation alone.
func (c Calculation) Warnings() []string {
	if !c.IsActive() {
		return nil
	}
	return configprocessor.NewProcessor().ValidateConfiguration([]configprocessor.CalculationInfo{c.info()})
}
