package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/coltax/internal/calculation"
	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/rgehrsitz/coltax/internal/regime"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Mode says how the compared amount is interpreted
type Mode string

const (
	// ModeBudget treats the amount as the payer's monthly budget (inverse solve)
	ModeBudget Mode = "budget"
	// ModeGross treats the amount as the same monthly gross for every regime
	ModeGross Mode = "gross"
)

// CompareEngine runs a set of regime models on one amount and ranks them
type CompareEngine struct {
	Models            []regime.Model
	MetricsCalculator *MetricsCalculator
	Logger            zerolog.Logger
	Year              int
}

// NewCompareEngine creates a comparison over every regime of the engine's year
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	ce := NewCompareEngineWithModels(regime.All(calcEngine)...)
	ce.Year = calcEngine.Year.Year
	ce.Logger = calcEngine.Logger
	return ce
}

// NewCompareEngineWithModels creates a comparison over explicit models
func NewCompareEngineWithModels(models ...regime.Model) *CompareEngine {
	return &CompareEngine{
		Models:            models,
		MetricsCalculator: NewMetricsCalculator(),
		Logger:            zerolog.Nop(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Amount  decimal.Decimal
	Mode    Mode
	Goal    Goal
	Options domain.CalcOptions
}

// Compare solves every model for the amount and returns the ranked set
func (ce *CompareEngine) Compare(ctx context.Context, options CompareOptions) (*ComparisonSet, error) {
	if err := domain.RequirePositive("compare", "amount", options.Amount); err != nil {
		return nil, err
	}
	if len(ce.Models) == 0 {
		return nil, fmt.Errorf("no regime models to compare")
	}
	if options.Mode == "" {
		options.Mode = ModeBudget
	}
	if options.Goal == "" {
		options.Goal = GoalMaximizeNet
	}

	results := make([]domain.RegimeResult, 0, len(ce.Models))
	for _, model := range ce.Models {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var (
			result domain.RegimeResult
			err    error
		)
		switch options.Mode {
		case ModeGross:
			result, err = model.CostOf(options.Amount, options.Options)
		case ModeBudget:
			result, err = model.InverseSolve(options.Amount, options.Options)
		default:
			return nil, fmt.Errorf("unknown comparison mode %q", options.Mode)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to calculate %s: %w", model.Kind(), err)
		}

		ce.Logger.Debug().
			Str("regime", string(result.Regime)).
			Bool("applicable", result.Applicable).
			Str("gross", result.Gross.StringFixed(0)).
			Str("annual_net", result.AnnualNet.StringFixed(0)).
			Str("annual_tax", result.AnnualTax.StringFixed(0)).
			Msg("regime solved")
		results = append(results, result)
	}

	ranked, excluded := Rank(results, options.Goal)
	if len(ranked) > 0 {
		best := ranked[0]
		for i := range ranked {
			ranked[i] = ce.MetricsCalculator.CalculateComparison(ranked[i], best)
		}
	}

	compSet := &ComparisonSet{
		Year:          ce.Year,
		Amount:        options.Amount,
		Mode:          options.Mode,
		Goal:          options.Goal,
		Pensioner:     options.Options.Pensioner,
		ActivityGroup: options.Options.ActivityGroup,
		Ranked:        ranked,
		NotApplicable: excluded,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	if best := compSet.Best(); best != nil {
		ce.Logger.Info().
			Str("best", string(best.Result.Regime)).
			Str("goal", string(options.Goal)).
			Int("excluded", len(excluded)).
			Msg("comparison ranked")
	}
	return compSet, nil
}
