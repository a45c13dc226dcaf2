package breakeven

import (
	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/rgehrsitz/coltax/internal/regime"
	"github.com/shopspring/decimal"
)

// Constraints bound the gross search
type Constraints struct {
	MinGross *decimal.Decimal `json:"min_gross,omitempty"`
	MaxGross *decimal.Decimal `json:"max_gross,omitempty"`
}

// Request asks for the gross monthly amount that leaves a target monthly net
type Request struct {
	Model       regime.Model
	TargetNet   decimal.Decimal
	Options     domain.CalcOptions
	Constraints Constraints
}

// Result is the gross found for one regime
type Result struct {
	Regime          domain.RegimeKind   `json:"regime"`
	TargetNet       decimal.Decimal     `json:"target_net"`
	Gross           decimal.Decimal     `json:"gross"`
	Achieved        domain.RegimeResult `json:"achieved"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergence_info"`
}

// MultiResult holds one solved gross per regime and the cheapest for the payer
type MultiResult struct {
	TargetNet       decimal.Decimal `json:"target_net"`
	Results         []Result        `json:"results"`
	Cheapest        *Result         `json:"cheapest,omitempty"`
	Recommendations []string        `json:"recommendations"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	Tolerance     decimal.Decimal // acceptable distance from the target net
	Resolution    decimal.Decimal // stop once the gross bracket is this narrow
	MaxIterations int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1), // 1 COP
		Resolution:    decimal.RequireFromString("0.01"),
		MaxIterations: 100,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.MinGross != nil && c.MinGross.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_gross cannot be negative",
		}
	}
	if c.MaxGross != nil && !c.MaxGross.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "max_gross must be positive",
		}
	}
	if c.MinGross != nil && c.MaxGross != nil && c.MinGross.GreaterThanOrEqual(*c.MaxGross) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_gross must be below max_gross",
		}
	}
	return nil
}

// BreakEvenError represents errors from the net-to-gross solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
