package regime

import (
	"fmt"

	"github.com/rgehrsitz/coltax/internal/calculation"
	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/shopspring/decimal"
)

// Employment is the ordinary employment contract: full employer contribution
// stack, statutory fringe accrual and transport subsidy up to the threshold.
type Employment struct {
	engine *calculation.Engine
}

// NewEmployment creates the employment contract model
func NewEmployment(engine *calculation.Engine) *Employment {
	return &Employment{engine: engine}
}

// Kind implements Model
func (m *Employment) Kind() domain.RegimeKind { return domain.RegimeEmployment }

// CostOf computes the payer cost and worker net for a monthly base salary
func (m *Employment) CostOf(salary decimal.Decimal, opts domain.CalcOptions) (domain.RegimeResult, error) {
	if err := domain.RequirePositive("employment cost", "salary", salary); err != nil {
		return domain.RegimeResult{}, err
	}

	p := m.engine.Params()
	subsidy := decimal.Zero
	if p.SubsidyEligible(salary) {
		subsidy = p.TransportSubsidy
	}

	r := domain.RegimeResult{
		Regime:                domain.RegimeEmployment,
		Applicable:            true,
		Gross:                 salary,
		TransportSubsidy:      subsidy,
		EmployerContributions: calculation.EmployerContributions(p, salary, opts.Pensioner),
		FringeAccrual:         salary.Mul(p.Fringe.Total()).Add(subsidy.Mul(p.Fringe.OnSubsidy())),
	}
	r.MonthlyCost = salary.Add(subsidy).Add(r.EmployerContributions).Add(r.FringeAccrual)

	c := calculation.EmployeeContributions(p, salary, opts.Pensioner)
	r.WorkerContributions = c.Total()

	if err := withholdingYear(m.engine, &r, salary.Add(subsidy), salary, subsidy, c, opts, true); err != nil {
		return domain.RegimeResult{}, fmt.Errorf("employment: %w", err)
	}
	r.MonthlyNet = floorZero(salary.Add(subsidy).Sub(r.WorkerContributions).Sub(r.MonthlyWithholding))

	if subsidy.IsPositive() {
		r.Notes = append(r.Notes, "transport subsidy paid: salary at or below "+p.SubsidyThreshold().StringFixed(0))
	}
	if opts.Pensioner {
		r.Notes = append(r.Notes, "pensioner: no pension contributions")
	}
	if c.Solidarity.IsPositive() {
		r.Notes = append(r.Notes, "pension solidarity fund applies")
	}
	finish(&r)
	return r, nil
}

// InverseSolve finds the salary whose total monthly cost equals the budget
func (m *Employment) InverseSolve(budget decimal.Decimal, opts domain.CalcOptions) (domain.RegimeResult, error) {
	if err := domain.RequirePositive("employment inverse", "budget", budget); err != nil {
		return domain.RegimeResult{}, err
	}

	sol := SolveSubsidy(m.engine.Params(), budget, opts.Pensioner)
	m.engine.Logger.Debug().
		Str("budget", budget.StringFixed(0)).
		Str("salary", sol.Salary.StringFixed(2)).
		Str("branch", string(sol.Branch)).
		Msg("employment subsidy branch")

	if sol.Branch == BranchUncovered {
		return domain.RegimeResult{
			Regime:      domain.RegimeEmployment,
			Applicable:  false,
			Reason:      "budget does not cover the transport subsidy owed at this salary",
			MonthlyCost: budget,
		}, nil
	}
	return m.CostOf(sol.Salary, opts)
}
