package calculation

import (
	"fmt"

	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/shopspring/decimal"
)

// ANNUAL RECONCILIATION NOTE:
//
// The annual tax is computed on the annual base with the annual cap set and the
// annual schedule. It does not in general equal the sum of twelve monthly
// withholdings even when every month is identical: the monthly procedure never sees
// the realized fringe benefits, and caps are applied to different bases. The delta
// is the legal "saldo a pagar" / "saldo a favor" and is reported as is.

// AnnualInput is a worker's year as seen by the reconciliation
type AnnualInput struct {
	Months        []domain.MonthInput
	Deductions    domain.Deductions // monthly amounts; scaled by the months supplied
	AccruesFringe bool
}

// UniformYear builds twelve identical full months
func UniformYear(salary, subsidy, contributions, withholding decimal.Decimal) []domain.MonthInput {
	months := make([]domain.MonthInput, monthsPerYear)
	for i := range months {
		months[i] = domain.MonthInput{
			Salary:          salary,
			Subsidy:         subsidy,
			DaysWorked:      daysPerMonth,
			Contributions:   contributions,
			WithholdingPaid: withholding,
		}
	}
	return months
}

// Reconcile aggregates the year, re-runs the depuración at annual scale and nets
// out the withholding already paid.
func (e *Engine) Reconcile(in AnnualInput) (domain.Reconciliation, error) {
	if len(in.Months) == 0 || len(in.Months) > monthsPerYear {
		return domain.Reconciliation{}, &domain.InvalidInputError{
			Operation: "reconcile",
			Field:     "months",
			Reason:    "must cover 1 to 12 months",
			Value:     fmt.Sprintf("%d entries", len(in.Months)),
		}
	}

	ty := e.Year
	var rec domain.Reconciliation
	contributions := decimal.Zero

	for _, m := range in.Months {
		rec.Salaries = rec.Salaries.Add(paidInMonth(floorZero(m.Salary), m.DaysWorked))
		rec.Subsidies = rec.Subsidies.Add(paidInMonth(floorZero(m.Subsidy), m.DaysWorked))
		contributions = contributions.Add(floorZero(m.Contributions))
		rec.WithholdingPaid = rec.WithholdingPaid.Add(floorZero(m.WithholdingPaid))
	}

	if in.AccruesFringe {
		fb := RealizedFringe(in.Months, ty.Params.Fringe.SeveranceInterest)
		rec.ServiceBonus = fb.ServiceBonus
		rec.Severance = fb.Severance
		rec.SeveranceInterest = fb.SeveranceInterest
	}

	rec.AnnualGross = rec.Salaries.
		Add(rec.Subsidies).
		Add(rec.ServiceBonus).
		Add(rec.Severance).
		Add(rec.SeveranceInterest)

	if err := domain.RequirePositive("reconcile", "annual gross", rec.AnnualGross); err != nil {
		return domain.Reconciliation{}, err
	}

	ded := in.Deductions.Scale(decimal.NewFromInt(int64(len(in.Months))))
	rec.Base = Depurate(rec.AnnualGross, contributions, ded, ty.AnnualCaps, ty.UVT)
	rec.AnnualTax = RoundToUnit(EvaluateCurrency(ty.AnnualIncomeTax, rec.Base.TaxableBase, ty.UVT), ty.RoundingUnit)
	rec.Delta = rec.AnnualTax.Sub(rec.WithholdingPaid)

	switch rec.Delta.Sign() {
	case 1:
		rec.Outcome = domain.OutcomeAdditionalOwed
	case -1:
		rec.Outcome = domain.OutcomeBalanceInFavor
	default:
		rec.Outcome = domain.OutcomeSettled
	}

	e.Logger.Debug().
		Str("annual_gross", rec.AnnualGross.StringFixed(0)).
		Str("taxable_base", rec.Base.TaxableBase.StringFixed(0)).
		Str("annual_tax", rec.AnnualTax.StringFixed(0)).
		Str("withheld", rec.WithholdingPaid.StringFixed(0)).
		Str("outcome", string(rec.Outcome)).
		Msg("annual reconciliation")

	return rec, nil
}
