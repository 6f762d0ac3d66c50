// Package optimization provides shared data structures for optimization results.
package optimization

// Summary captures the result of a single payoff-target search.
type Summary struct {
	Calculation     string   `json:"calculation"`
	Field           string   `json:"field"`
	Original        float64  `json:"original"`
	Value           float64  `json:"value"`
	TargetDate      string   `json:"targetDate"`
	PayoffDate      string   `json:"payoffDate"`
	Iterations      int      `json:"iterations"`
	Converged       bool     `json:"converged"`
	Notes           []string `json:"notes,omitempty"`
	OriginalDisplay string   `json:"originalDisplay,omitempty"`
	ValueDisplay    string   `json:"valueDisplay,omitempty"`
}
