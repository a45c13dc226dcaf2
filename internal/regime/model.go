package regime

//go:generate mockgen -destination=mocks/mock_model.go -package=mocks -source=model.go Model

import (
	"github.com/rgehrsitz/coltax/internal/calculation"
	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/shopspring/decimal"
)

// Model is one legally distinct way of paying a worker. CostOf goes from a gross
// monthly amount to payer cost and worker net; InverseSolve goes from a monthly
// payer budget back to the gross that exhausts it.
//
// A result outside the regime's legal range is returned with Applicable=false and
// a Reason; only malformed input produces an error.
type Model interface {
	Kind() domain.RegimeKind
	CostOf(gross decimal.Decimal, opts domain.CalcOptions) (domain.RegimeResult, error)
	InverseSolve(budget decimal.Decimal, opts domain.CalcOptions) (domain.RegimeResult, error)
}

// All returns every model for the engine's tax year, in display order
func All(engine *calculation.Engine) []Model {
	return []Model{
		NewEmployment(engine),
		NewIntegral(engine),
		NewContractor(engine),
		NewSimple(engine),
	}
}

// ByKind looks up a single model
func ByKind(engine *calculation.Engine, kind domain.RegimeKind) (Model, bool) {
	for _, m := range All(engine) {
		if m.Kind() == kind {
			return m, true
		}
	}
	return nil, false
}

// Order is the tie-break rank of a regime in comparisons
func Order(kind domain.RegimeKind) int {
	switch kind {
	case domain.RegimeEmployment:
		return 0
	case domain.RegimeIntegral:
		return 1
	case domain.RegimeContractor:
		return 2
	case domain.RegimeSimple:
		return 3
	default:
		return 4
	}
}

var twelve = decimal.NewFromInt(12)

// grossPlaces is the precision of solved gross amounts (centavos)
const grossPlaces int32 = 2

// withholdingYear runs Procedure 1 on a month and reconciles twelve identical
// months. The annual figures of the result are filled from the reconciliation.
func withholdingYear(e *calculation.Engine, r *domain.RegimeResult, taxableGross, salary, subsidy decimal.Decimal, c calculation.Contributions, opts domain.CalcOptions, accruesFringe bool) error {
	wh, err := e.Withhold(taxableGross, c.Mandatory(), opts.Deductions)
	if err != nil {
		return err
	}

	rec, err := e.Reconcile(calculation.AnnualInput{
		Months:        calculation.UniformYear(salary, subsidy, c.Mandatory(), wh.Withholding),
		Deductions:    opts.Deductions,
		AccruesFringe: accruesFringe,
	})
	if err != nil {
		return err
	}

	r.MonthlyWithholding = wh.Withholding
	r.Base = wh.Base
	r.Reconciliation = &rec
	r.AnnualGross = rec.AnnualGross
	r.AnnualContributions = c.Total().Mul(twelve)
	r.AnnualTax = rec.AnnualTax
	if wh.Base.LimitApplied {
		r.Notes = append(r.Notes, "deductions and exempt income limited by the "+string(wh.Base.LimitType)+" ceiling")
	}
	return nil
}

// finish derives the annual net and effective rate
func finish(r *domain.RegimeResult) {
	r.AnnualNet = floorZero(r.AnnualGross.Sub(r.AnnualContributions).Sub(r.AnnualTax))
	r.EffectiveRate = calculation.Ratio(r.AnnualTax, r.AnnualGross)
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
