package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/rgehrsitz/coltax/internal/regime"
	"github.com/shopspring/decimal"
)

// SolveAll finds, for every model, the gross that leaves the same monthly net and
// picks the regime that costs the payer least to deliver it
func (s *Solver) SolveAll(
	ctx context.Context,
	models []regime.Model,
	targetNet decimal.Decimal,
	options domain.CalcOptions,
	constraints Constraints,
) (*MultiResult, error) {

	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	multi := &MultiResult{
		TargetNet: targetNet,
		Results:   make([]Result, 0, len(models)),
	}

	for _, model := range models {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		res, err := s.Solve(ctx, Request{
			Model:       model,
			TargetNet:   targetNet,
			Options:     options,
			Constraints: constraints,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to solve %s: %w", model.Kind(), err)
		}
		multi.Results = append(multi.Results, *res)
	}

	for i := range multi.Results {
		r := &multi.Results[i]
		if !r.Success || !r.Achieved.Applicable {
			continue
		}
		if multi.Cheapest == nil || r.Achieved.MonthlyCost.LessThan(multi.Cheapest.Achieved.MonthlyCost) {
			multi.Cheapest = r
		}
	}

	multi.Recommendations = generateRecommendations(multi)
	return multi, nil
}

// generateRecommendations summarizes the multi-regime solve
func generateRecommendations(multi *MultiResult) []string {
	var recommendations []string

	if multi.Cheapest == nil {
		return append(recommendations, "No applicable regime reaches the target net")
	}

	recommendations = append(recommendations,
		fmt.Sprintf("Cheapest for the payer: %s at %s a month (gross %s)",
			multi.Cheapest.Regime.Label(),
			multi.Cheapest.Achieved.MonthlyCost.StringFixed(0),
			multi.Cheapest.Gross.StringFixed(0)))

	for _, r := range multi.Results {
		if r.Regime == multi.Cheapest.Regime {
			continue
		}
		switch {
		case !r.Achieved.Applicable:
			recommendations = append(recommendations,
				fmt.Sprintf("%s not applicable: %s", r.Regime.Label(), r.Achieved.Reason))
		case !r.Success:
			recommendations = append(recommendations,
				fmt.Sprintf("%s: %s", r.Regime.Label(), r.ConvergenceInfo))
		default:
			extra := r.Achieved.MonthlyCost.Sub(multi.Cheapest.Achieved.MonthlyCost)
			recommendations = append(recommendations,
				fmt.Sprintf("%s costs %s more a month", r.Regime.Label(), extra.StringFixed(0)))
		}
	}
	return recommendations
}
