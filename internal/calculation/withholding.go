package calculation

import (
	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/shopspring/decimal"
)

// Withhold runs withholding Procedure 1 for one month.
//
// gross is salary plus any eligible transport subsidy (or the honorarium for a
// contractor); contributions are the worker-side mandatory contributions already
// computed for the regime.
func (e *Engine) Withhold(gross, contributions decimal.Decimal, ded domain.Deductions) (domain.Withholding, error) {
	if err := domain.RequirePositive("withholding", "gross", gross); err != nil {
		return domain.Withholding{}, err
	}

	ty := e.Year
	base := Depurate(gross, contributions, ded, ty.MonthlyCaps, ty.UVT)
	units := ty.ToUnits(base.TaxableBase)
	amount := RoundToUnit(Evaluate(ty.MonthlyWithholding, units).Mul(ty.UVT), ty.RoundingUnit)

	ev := e.Logger.Debug().
		Str("gross", gross.StringFixed(0)).
		Str("contributions", base.MandatoryContributions.StringFixed(0)).
		Str("deductions", base.CappedDeductions.StringFixed(0)).
		Str("exempt", base.ExemptPortion.StringFixed(0)).
		Str("taxable_base", base.TaxableBase.StringFixed(0)).
		Str("base_uvt", units.StringFixed(2)).
		Str("withholding", amount.StringFixed(0))
	if base.LimitApplied {
		ev = ev.Str("limit", string(base.LimitType))
	}
	ev.Msg("procedure 1")

	return domain.Withholding{
		Base:        base,
		BaseUnits:   units,
		Withholding: amount,
	}, nil
}
