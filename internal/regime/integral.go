package regime

import (
	"fmt"

	"github.com/rgehrsitz/coltax/internal/calculation"
	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/shopspring/decimal"
)

// Integral is the integral salary contract. Contributions are computed on a
// fixed share of the salary; the rest is deemed to include every fringe benefit.
type Integral struct {
	engine *calculation.Engine
}

// NewIntegral creates the integral salary model
func NewIntegral(engine *calculation.Engine) *Integral {
	return &Integral{engine: engine}
}

// Kind implements Model
func (m *Integral) Kind() domain.RegimeKind { return domain.RegimeIntegral }

// CostOf computes the result for a monthly integral salary. Salaries below the
// legal floor are computed but flagged not applicable.
func (m *Integral) CostOf(salary decimal.Decimal, opts domain.CalcOptions) (domain.RegimeResult, error) {
	if err := domain.RequirePositive("integral cost", "salary", salary); err != nil {
		return domain.RegimeResult{}, err
	}

	p := m.engine.Params()
	base := salary.Mul(p.Integral.ContributionBaseFactor)

	r := domain.RegimeResult{
		Regime:                domain.RegimeIntegral,
		Applicable:            true,
		Gross:                 salary,
		EmployerContributions: calculation.EmployerContributions(p, base, opts.Pensioner),
	}
	r.MonthlyCost = salary.Add(r.EmployerContributions)

	c := calculation.EmployeeContributions(p, base, opts.Pensioner)
	r.WorkerContributions = c.Total()

	if err := withholdingYear(m.engine, &r, salary, salary, decimal.Zero, c, opts, false); err != nil {
		return domain.RegimeResult{}, fmt.Errorf("integral salary: %w", err)
	}
	r.MonthlyNet = floorZero(salary.Sub(r.WorkerContributions).Sub(r.MonthlyWithholding))

	if floor := p.IntegralFloor(); salary.LessThan(floor) {
		r.Applicable = false
		r.Reason = fmt.Sprintf("salary %s is below the integral salary floor of %s",
			salary.StringFixed(0), floor.StringFixed(0))
	}
	finish(&r)
	return r, nil
}

// InverseSolve finds the integral salary whose cost equals the budget
func (m *Integral) InverseSolve(budget decimal.Decimal, opts domain.CalcOptions) (domain.RegimeResult, error) {
	if err := domain.RequirePositive("integral inverse", "budget", budget); err != nil {
		return domain.RegimeResult{}, err
	}

	p := m.engine.Params()
	factor := decimal.NewFromInt(1).Add(p.Integral.ContributionBaseFactor.Mul(p.Employer.Total(opts.Pensioner)))
	return m.CostOf(budget.Div(factor).Round(grossPlaces), opts)
}
