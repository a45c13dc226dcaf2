package calculation

import (
	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/shopspring/decimal"
)

// ApplyCap returns the smallest of the candidate and every rule's limit for base.
// The result is never negative and never above the candidate.
func ApplyCap(candidate, base, uvt decimal.Decimal, rules ...domain.CapRule) decimal.Decimal {
	capped := floorZero(candidate)
	for _, rule := range rules {
		capped = decimal.Min(capped, rule.Limit(base, uvt))
	}
	return capped
}

// Depurate runs the depuración from gross income down to the taxable base.
// The same steps serve the monthly procedure and the annual reconciliation; only
// the cap set differs.
func Depurate(gross, contributions decimal.Decimal, ded domain.Deductions, caps domain.CapSet, uvt decimal.Decimal) domain.TaxableBase {
	tb := domain.TaxableBase{
		Gross:                  floorZero(gross),
		MandatoryContributions: floorZero(contributions),
	}
	tb.NetAfterContributions = floorZero(tb.Gross.Sub(tb.MandatoryContributions))

	deductions := decimal.Zero
	if ded.HasDependents {
		candidate := tb.Gross.Mul(caps.DependentRate)
		deductions = deductions.Add(ApplyCap(candidate, tb.Gross, uvt, caps.Dependents...))
	}
	deductions = deductions.
		Add(ApplyCap(ded.HousingInterest, tb.Gross, uvt, caps.HousingInterest...)).
		Add(ApplyCap(ded.PrepaidMedicine, tb.Gross, uvt, caps.PrepaidMedicine...)).
		Add(ApplyCap(ded.VoluntaryPension, tb.Gross, uvt, caps.VoluntaryPension...))
	tb.CappedDeductions = deductions

	exemptCandidate := floorZero(tb.NetAfterContributions.Sub(deductions)).Mul(caps.ExemptRate)
	tb.ExemptPortion = ApplyCap(exemptCandidate, tb.NetAfterContributions, uvt, caps.ExemptCap)

	// 40% / absolute global ceiling over deductions plus exempt income
	pctCeiling := tb.NetAfterContributions.Mul(caps.GlobalRate)
	absCeiling := caps.GlobalCap.Limit(tb.NetAfterContributions, uvt)
	ceiling := decimal.Min(pctCeiling, absCeiling)

	relief := deductions.Add(tb.ExemptPortion)
	tb.AppliedRelief = relief
	if relief.GreaterThan(ceiling) {
		tb.AppliedRelief = ceiling
		tb.LimitApplied = true
		if pctCeiling.LessThanOrEqual(absCeiling) {
			tb.LimitType = domain.LimitPercentage
		} else {
			tb.LimitType = domain.LimitAbsoluteCap
		}
	}

	tb.TaxableBase = floorZero(tb.NetAfterContributions.Sub(tb.AppliedRelief))
	return tb
}
