package loans

import (
	"math"
	"testing"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"go.uber.org/zap"
)

func startMonth() time.Time {
	return datetime.MustParseTime(datetime.DateTimeLayout, "2025-01")
}

func TestCalculateMonthlyPayment(t *testing.T) {
	tests := []struct {
		name               string
		principal          float64
		annualInterestRate float64
		termMonths         int
		expectedRange      []float64 // [min, max] expected range
	}{
		{
			name:               "Standard 30-year mortgage",
			principal:          240000,
			annualInterestRate: 6.0,
			termMonths:         360,
			expectedRange:      []float64{1438, 1440}, // Around $1438.92
		},
		{
			name:               "15-year loan",
			principal:          200000,
			annualInterestRate: 6.0,
			termMonths:         180,
			expectedRange:      []float64{1687.70, 1687.72},
		},
		{
			name:               "Zero interest loan",
			principal:          10000,
			annualInterestRate: 0.0,
			termMonths:         60,
			expectedRange:      []float64{166.66, 166.67},
		},
		{
			name:               "High interest loan",
			principal:          10000,
			annualInterestRate: 18.0,
			termMonths:         36,
			expectedRange:      []float64{360, 380}, // Around $361.52
		},
		{
			name:               "Zero term",
			principal:          10000,
			annualInterestRate: 5.0,
			termMonths:         0,
			expectedRange:      []float64{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMonthlyPayment(tt.principal, tt.annualInterestRate, tt.termMonths)

			if result < tt.expectedRange[0] || result > tt.expectedRange[1] {
				t.Errorf("CalculateMonthlyPayment() = %.2f, expected range [%.2f, %.2f]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestCalculateInterestPayment(t *testing.T) {
	tests := []struct {
		name               string
		remainingPrincipal float64
		annualInterestRate float64
		expected           float64
	}{
		{
			name:               "Standard mortgage interest",
			remainingPrincipal: 200000,
			annualInterestRate: 6.0,
			expected:           1000.0, // 200000 * 0.06 / 12
		},
		{
			name:               "Student loan first month",
			remainingPrincipal: 30000,
			annualInterestRate: 6.8,
			expected:           170.0,
		},
		{
			name:               "Zero interest",
			remainingPrincipal: 10000,
			annualInterestRate: 0.0,
			expected:           0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateInterestPayment(tt.remainingPrincipal, tt.annualInterestRate)

			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("CalculateInterestPayment() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestSimulatorScheduleInvariants(t *testing.T) {
	simulator := NewSimulator(zap.NewNop())

	tests := []struct {
		name      string
		principal float64
		rate      float64
		term      int
		extra     float64
	}{
		{"15-year no extra", 200000, 6.0, 180, 0},
		{"30-year with extra", 300000, 6.5, 360, 250},
		{"Short loan large extra", 5000, 9.0, 24, 2000},
		{"Zero interest", 12000, 0, 12, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extra := tt.extra
			schedule, err := simulator.Simulate(SimulationConfig{
				Name:       tt.name,
				Principal:  tt.principal,
				AnnualRate: tt.rate,
				Payment:    CalculateMonthlyPayment(tt.principal, tt.rate, tt.term),
				StartDate:  startMonth(),
				MaxPeriods: 2 * tt.term,
				Extra: func(int, time.Time, float64) float64 {
					return extra
				},
			})
			if err != nil {
				t.Fatalf("Simulate() error = %v", err)
			}

			if !schedule.Totals.PaidOff {
				t.Fatalf("expected loan to be paid off")
			}
			if tt.extra == 0 && schedule.Totals.Periods != tt.term {
				t.Errorf("expected %d periods, got %d", tt.term, schedule.Totals.Periods)
			}
			if tt.extra > 0 && schedule.Totals.Periods >= tt.term {
				t.Errorf("expected extra payments to shorten the term, got %d periods", schedule.Totals.Periods)
			}

			previous := tt.principal
			for _, period := range schedule.Periods {
				if period.Balance > previous {
					t.Fatalf("period %d balance increased from %.2f to %.2f", period.Number, previous, period.Balance)
				}
				sum := period.Interest + period.Principal + period.Extra
				if math.Abs(sum-period.TotalPayment) > 1e-6 {
					t.Fatalf("period %d components %.2f do not match total %.2f", period.Number, sum, period.TotalPayment)
				}
				previous = period.Balance
			}

			last := schedule.Periods[len(schedule.Periods)-1]
			if last.Balance != 0 {
				t.Errorf("final balance = %v, expected exactly 0", last.Balance)
			}
			if math.Abs(schedule.Totals.TotalPrincipal-tt.principal) > 0.01 {
				t.Errorf("total principal = %.2f, expected %.2f", schedule.Totals.TotalPrincipal, tt.principal)
			}
			if math.Abs(schedule.Totals.TotalInterest+schedule.Totals.TotalPrincipal-schedule.Totals.TotalPaid) > 0.01 {
				t.Errorf("interest + principal != total paid")
			}
			if !datetime.SameMonth(schedule.Totals.PayoffDate, last.Date) {
				t.Errorf("payoff date %s does not match last period %s",
					datetime.Format(schedule.Totals.PayoffDate), datetime.Format(last.Date))
			}
		})
	}
}

func TestSimulatorClampsOverpayment(t *testing.T) {
	simulator := NewSimulator(zap.NewNop())

	schedule, err := simulator.Simulate(SimulationConfig{
		Name:       "overpay",
		Principal:  1000,
		AnnualRate: 12,
		Payment:    CalculateMonthlyPayment(1000, 12, 12),
		StartDate:  startMonth(),
		MaxPeriods: 24,
		Extra: func(number int, _ time.Time, _ float64) float64 {
			if number == 2 {
				return 5000
			}
			return 0
		},
	})
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}

	if len(schedule.Periods) != 2 {
		t.Fatalf("expected payoff in period 2, got %d periods", len(schedule.Periods))
	}
	final := schedule.Periods[1]
	if final.Extra != 0 {
		t.Errorf("expected overpaying extra to be zeroed, got %.2f", final.Extra)
	}
	if math.Abs(final.Principal-final.StartingBalance) > 1e-9 {
		t.Errorf("expected principal clamped to balance %.2f, got %.2f", final.StartingBalance, final.Principal)
	}
}

func TestSimulatorSafetyCap(t *testing.T) {
	simulator := NewSimulator(zap.NewNop())

	// Payment below the monthly interest never amortizes.
	schedule, err := simulator.Simulate(SimulationConfig{
		Name:       "underwater",
		Principal:  30000,
		AnnualRate: 6.8,
		Payment:    150,
		StartDate:  startMonth(),
		MaxPeriods: 600,
	})
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}

	if schedule.Totals.PaidOff {
		t.Errorf("expected the loan to remain unpaid")
	}
	if schedule.Totals.Periods != 600 {
		t.Errorf("expected the cap of 600 periods, got %d", schedule.Totals.Periods)
	}
	last := schedule.Periods[len(schedule.Periods)-1]
	if last.Balance != 30000 {
		t.Errorf("expected balance to stay at 30000, got %.2f", last.Balance)
	}
}

func TestSimulatorRejectsBadConfig(t *testing.T) {
	simulator := NewSimulator(nil)

	if _, err := simulator.Simulate(SimulationConfig{Principal: 1000, MaxPeriods: 0}); err == nil {
		t.Errorf("expected error for zero max periods")
	}
	if _, err := simulator.Simulate(SimulationConfig{Principal: 0, MaxPeriods: 12}); err == nil {
		t.Errorf("expected error for zero principal")
	}
}

func TestSimulatorPeriodHook(t *testing.T) {
	simulator := NewSimulator(zap.NewNop())

	var seen []int
	_, err := simulator.Simulate(SimulationConfig{
		Name:       "hook",
		Principal:  1200,
		AnnualRate: 0,
		Payment:    100,
		StartDate:  startMonth(),
		MaxPeriods: 24,
		OnPeriod: func(period Period) {
			seen = append(seen, period.Number)
		},
	})
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	if len(seen) != 12 || seen[0] != 1 || seen[11] != 12 {
		t.Errorf("hook saw periods %v, expected 1..12", seen)
	}
}
