package integration

import (
	"os"
	"testing"
	"time"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/internal/config"
	"go.uber.org/zap"
)

// TestRunner is a simple test runner for debugging
func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

// TestBasicFunctionality tests basic functionality works
func TestBasicFunctionality(t *testing.T) {
	reports := runExample(t)
	if len(reports) == 0 {
		t.Fatalf("Expected reports but got none")
	}
	t.Logf("Successfully generated %d reports", len(reports))
}

// TestPerformance tests performance characteristics
func TestPerformance(t *testing.T) {
	logger := zap.NewNop()

	start := time.Now()
	conf, err := config.LoadConfiguration(testConfigPath)
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	loadTime := time.Since(start)

	const runs = 50
	start = time.Now()
	for i := 0; i < runs; i++ {
		if _, err := calculator.Run(logger, conf, calculator.Options{Schedule: true}); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
	}
	runTime := time.Since(start)

	t.Logf("Performance metrics:")
	t.Logf("  Config loading: %v", loadTime)
	t.Logf("  %d full runs: %v (%v per run)", runs, runTime, runTime/runs)

	if loadTime > time.Second {
		t.Errorf("Config loading took too long: %v", loadTime)
	}
	if runTime/runs > 500*time.Millisecond {
		t.Errorf("A full run took too long: %v", runTime/runs)
	}
}
