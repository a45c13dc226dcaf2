package regime

import (
	"fmt"

	"github.com/rgehrsitz/coltax/internal/calculation"
	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/shopspring/decimal"
)

// Contractor is the independent service contract. The payer's cost is the
// honorarium itself; the worker pays every contribution on a flat share of it.
type Contractor struct {
	engine *calculation.Engine
}

// NewContractor creates the independent contractor model
func NewContractor(engine *calculation.Engine) *Contractor {
	return &Contractor{engine: engine}
}

// Kind implements Model
func (m *Contractor) Kind() domain.RegimeKind { return domain.RegimeContractor }

// CostOf computes the result for a monthly honorarium
func (m *Contractor) CostOf(honorarium decimal.Decimal, opts domain.CalcOptions) (domain.RegimeResult, error) {
	if err := domain.RequirePositive("contractor cost", "honorarium", honorarium); err != nil {
		return domain.RegimeResult{}, err
	}

	p := m.engine.Params()
	r := domain.RegimeResult{
		Regime:      domain.RegimeContractor,
		Applicable:  true,
		Gross:       honorarium,
		MonthlyCost: honorarium,
	}

	// occupational risk lowers the worker's net but is not a depuración item
	c := calculation.ContractorContributions(p, honorarium, opts.Pensioner)
	r.WorkerContributions = c.Total()

	if err := withholdingYear(m.engine, &r, honorarium, honorarium, decimal.Zero, c, opts, false); err != nil {
		return domain.RegimeResult{}, fmt.Errorf("contractor: %w", err)
	}
	r.MonthlyNet = floorZero(honorarium.Sub(r.WorkerContributions).Sub(r.MonthlyWithholding))

	r.VATLiability = m.VAT(r.AnnualGross)
	if r.VATLiability.IsPositive() {
		r.Notes = append(r.Notes, "annual income above the VAT threshold: VAT is charged to the client on top of the honorarium")
	}
	finish(&r)
	return r, nil
}

// VAT returns the VAT to register on an annual gross, zero at or below the threshold
func (m *Contractor) VAT(annualGross decimal.Decimal) decimal.Decimal {
	ty := m.engine.Year
	cp := ty.Params.Contractor
	if annualGross.LessThanOrEqual(ty.FromUnits(cp.VATThresholdUnits)) {
		return decimal.Zero
	}
	return annualGross.Mul(cp.VATRate)
}

// InverseSolve is the identity: the whole budget is the honorarium
func (m *Contractor) InverseSolve(budget decimal.Decimal, opts domain.CalcOptions) (domain.RegimeResult, error) {
	if err := domain.RequirePositive("contractor inverse", "budget", budget); err != nil {
		return domain.RegimeResult{}, err
	}
	return m.CostOf(budget.Round(grossPlaces), opts)
}
