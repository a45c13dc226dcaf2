package regime

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/coltax/internal/calculation"
	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/shopspring/decimal"
)

// Simple is the unified small-business tax (régimen SIMPLE). There is no
// depuración: one progressive schedule per business-activity group is applied to
// annual gross turnover. The worker still pays independent social security.
type Simple struct {
	engine *calculation.Engine
}

// NewSimple creates the SIMPLE regime model
func NewSimple(engine *calculation.Engine) *Simple {
	return &Simple{engine: engine}
}

// Kind implements Model
func (m *Simple) Kind() domain.RegimeKind { return domain.RegimeSimple }

// Schedule returns the table for a business-activity group
func (m *Simple) Schedule(group string) (*domain.BracketSchedule, error) {
	schedule, ok := m.engine.Year.Simple[group]
	if !ok {
		return nil, &domain.InvalidInputError{
			Operation: "simple",
			Field:     "activity group",
			Reason:    "is not a known SIMPLE group",
			Value:     fmt.Sprintf("%q (known: %v)", group, m.engine.Year.SimpleGroups()),
		}
	}
	return schedule, nil
}

// AnnualTax evaluates the group schedule on an annual turnover, rounded like any
// declared tax
func (m *Simple) AnnualTax(group string, turnover decimal.Decimal) (decimal.Decimal, error) {
	schedule, err := m.Schedule(group)
	if err != nil {
		return decimal.Zero, err
	}
	ty := m.engine.Year
	return calculation.RoundToUnit(calculation.EvaluateCurrency(schedule, turnover, ty.UVT), ty.RoundingUnit), nil
}

// CostOf computes the result for a monthly turnover. Advances are bimonthly, so
// the monthly net provisions one twelfth of the annual tax and no withholding.
func (m *Simple) CostOf(turnover decimal.Decimal, opts domain.CalcOptions) (domain.RegimeResult, error) {
	if err := domain.RequirePositive("simple cost", "turnover", turnover); err != nil {
		return domain.RegimeResult{}, err
	}

	ty := m.engine.Year
	annual := turnover.Mul(twelve)
	if _, ok := ty.Simple[opts.ActivityGroup]; !ok {
		// not applicable rather than an error so the rest of a comparison still ranks
		r := domain.RegimeResult{
			Regime:      domain.RegimeSimple,
			Gross:       turnover,
			MonthlyCost: turnover,
			AnnualGross: annual,
			Reason: fmt.Sprintf("unknown activity group %q (known: %s)",
				opts.ActivityGroup, strings.Join(ty.SimpleGroups(), ", ")),
		}
		return r, nil
	}
	tax, err := m.AnnualTax(opts.ActivityGroup, annual)
	if err != nil {
		return domain.RegimeResult{}, err
	}

	c := calculation.ContractorContributions(ty.Params, turnover, opts.Pensioner)
	r := domain.RegimeResult{
		Regime:              domain.RegimeSimple,
		Applicable:          true,
		Gross:               turnover,
		MonthlyCost:         turnover,
		WorkerContributions: c.Total(),
		AnnualGross:         annual,
		AnnualContributions: c.Total().Mul(twelve),
		AnnualTax:           tax,
		Base: domain.TaxableBase{
			Gross:                 annual,
			NetAfterContributions: annual,
			TaxableBase:           annual,
		},
		Notes: []string{"activity group " + opts.ActivityGroup},
	}
	r.MonthlyNet = floorZero(turnover.Sub(r.WorkerContributions).Sub(tax.Div(twelve)))

	if ceiling := ty.FromUnits(ty.Params.Simple.TurnoverCeilingUnits); annual.GreaterThan(ceiling) {
		r.Applicable = false
		r.Reason = fmt.Sprintf("annual turnover %s exceeds the SIMPLE ceiling of %s",
			annual.StringFixed(0), ceiling.StringFixed(0))
	}

	m.engine.Logger.Debug().
		Str("group", opts.ActivityGroup).
		Str("turnover", annual.StringFixed(0)).
		Str("tax", tax.StringFixed(0)).
		Msg("simple tax")

	finish(&r)
	return r, nil
}

// InverseSolve is the identity: the whole budget is turnover
func (m *Simple) InverseSolve(budget decimal.Decimal, opts domain.CalcOptions) (domain.RegimeResult, error) {
	if err := domain.RequirePositive("simple inverse", "budget", budget); err != nil {
		return domain.RegimeResult{}, err
	}
	return m.CostOf(budget.Round(grossPlaces), opts)
}
