package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver finds the gross amount that yields a target monthly net.
//
// Net is not monotone in gross: it drops where the transport subsidy is lost,
// where the solidarity fund starts and at every withholding rounding step. All
// of those jumps are downward, so a bisection that keeps net(lo) < target ≤
// net(hi) always closes on a continuous crossing.
type Solver struct {
	Options SolverOptions
}

// NewSolver creates a new net-to-gross solver
func NewSolver(options SolverOptions) *Solver {
	return &Solver{Options: options}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultSolverOptions())
}

// Solve runs the bisection for one regime model
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if req.Model == nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "regime model is required"}
	}
	if err := domain.RequirePositive("net to gross", "target net", req.TargetNet); err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "invalid target", Cause: err}
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}

	opts := s.Options
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultSolverOptions().MaxIterations
	}
	if !opts.Resolution.IsPositive() {
		opts.Resolution = DefaultSolverOptions().Resolution
	}
	if opts.Tolerance.IsNegative() {
		opts.Tolerance = decimal.Zero
	}

	lo := decimal.Zero
	if req.Constraints.MinGross != nil {
		lo = *req.Constraints.MinGross
	}
	iterations := 0

	// net(lo) must be below the target or lo is already the answer
	if lo.IsPositive() {
		r, err := s.evaluate(req, lo)
		if err != nil {
			return nil, err
		}
		iterations++
		if r.MonthlyNet.GreaterThanOrEqual(req.TargetNet) {
			return s.result(req, lo, r, iterations, opts, "minimum gross already meets the target"), nil
		}
	}

	hi, hiResult, n, err := s.bracket(ctx, req, lo, opts)
	iterations += n
	if err != nil {
		return nil, err
	}

	two := decimal.NewFromInt(2)
	for iterations < opts.MaxIterations && hi.Sub(lo).GreaterThan(opts.Resolution) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		iterations++

		mid := lo.Add(hi).Div(two).Round(2)
		if !mid.GreaterThan(lo) || !mid.LessThan(hi) {
			break
		}
		r, err := s.evaluate(req, mid)
		if err != nil {
			return nil, err
		}
		if r.MonthlyNet.LessThan(req.TargetNet) {
			lo = mid
		} else {
			hi, hiResult = mid, r
		}
	}

	return s.result(req, hi, hiResult, iterations, opts, ""), nil
}

// bracket grows an upper bound until its net reaches the target
func (s *Solver) bracket(ctx context.Context, req Request, lo decimal.Decimal, opts SolverOptions) (decimal.Decimal, domain.RegimeResult, int, error) {
	hi := decimal.Max(req.TargetNet, lo.Add(opts.Resolution))
	if req.Constraints.MaxGross != nil {
		hi = decimal.Min(hi, *req.Constraints.MaxGross)
	}

	two := decimal.NewFromInt(2)
	for n := 1; n <= opts.MaxIterations; n++ {
		if err := ctx.Err(); err != nil {
			return decimal.Zero, domain.RegimeResult{}, n, err
		}
		r, err := s.evaluate(req, hi)
		if err != nil {
			return decimal.Zero, domain.RegimeResult{}, n, err
		}
		if r.MonthlyNet.GreaterThanOrEqual(req.TargetNet) {
			return hi, r, n, nil
		}
		if req.Constraints.MaxGross != nil && hi.GreaterThanOrEqual(*req.Constraints.MaxGross) {
			return decimal.Zero, domain.RegimeResult{}, n, &BreakEvenError{
				Operation: "solve",
				Message:   fmt.Sprintf("target net %s is not reachable below max gross %s", req.TargetNet.StringFixed(0), req.Constraints.MaxGross.StringFixed(0)),
			}
		}
		hi = hi.Mul(two)
		if req.Constraints.MaxGross != nil {
			hi = decimal.Min(hi, *req.Constraints.MaxGross)
		}
	}
	return decimal.Zero, domain.RegimeResult{}, opts.MaxIterations, &BreakEvenError{
		Operation: "solve",
		Message:   fmt.Sprintf("could not bracket target net %s in %d iterations", req.TargetNet.StringFixed(0), opts.MaxIterations),
	}
}

// evaluate runs the model at a gross; invalid input counts as zero net
func (s *Solver) evaluate(req Request, gross decimal.Decimal) (domain.RegimeResult, error) {
	r, err := req.Model.CostOf(gross, req.Options)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) && !gross.IsPositive() {
			return domain.RegimeResult{}, nil
		}
		return domain.RegimeResult{}, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("failed to evaluate %s at %s", req.Model.Kind(), gross.StringFixed(2)),
			Cause:     err,
		}
	}
	return r, nil
}

func (s *Solver) result(req Request, gross decimal.Decimal, r domain.RegimeResult, iterations int, opts SolverOptions, info string) *Result {
	miss := r.MonthlyNet.Sub(req.TargetNet).Abs()
	res := &Result{
		Regime:     req.Model.Kind(),
		TargetNet:  req.TargetNet,
		Gross:      gross,
		Achieved:   r,
		Iterations: iterations,
		Success:    miss.LessThanOrEqual(opts.Tolerance),
	}

	switch {
	case info != "":
		res.ConvergenceInfo = info
	case res.Success:
		res.ConvergenceInfo = fmt.Sprintf("Converged to target net within %s COP", opts.Tolerance.String())
	default:
		res.ConvergenceInfo = fmt.Sprintf("Closest net %s misses the target by %s", r.MonthlyNet.StringFixed(0), miss.StringFixed(0))
	}
	if !r.Applicable && r.Reason != "" {
		res.ConvergenceInfo += "; " + r.Reason
	}
	return res
}
