package calculation

import (
	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/shopspring/decimal"
)

// SCHEDULE EVALUATION:
//
// Every legal table (monthly withholding art. 383, annual income tax art. 241 and
// the SIMPLE regime groups) is a domain.BracketSchedule in UVT. There is exactly
// one evaluator for all of them. A boundary value belongs to the lower bracket, so
// the scan runs from the top and stops at the first bracket whose lower bound is
// strictly below the amount.

// Evaluate returns the tax due on amount (in UVT) under the schedule
func Evaluate(schedule *domain.BracketSchedule, amount decimal.Decimal) decimal.Decimal {
	if schedule == nil || !amount.IsPositive() {
		return decimal.Zero
	}

	for i := schedule.Len() - 1; i >= 0; i-- {
		b := schedule.Bracket(i)
		if amount.GreaterThan(b.From) {
			tax := b.Accumulated.Add(amount.Sub(b.From).Mul(b.Rate))
			return floorZero(tax)
		}
	}
	return decimal.Zero
}

// EvaluateCurrency converts a currency amount to UVT, evaluates, and converts back
func EvaluateCurrency(schedule *domain.BracketSchedule, amount, uvt decimal.Decimal) decimal.Decimal {
	if !uvt.IsPositive() {
		return decimal.Zero
	}
	return Evaluate(schedule, amount.Div(uvt)).Mul(uvt)
}

// MarginalRate returns the rate that applies to the next peso above amount (in UVT)
func MarginalRate(schedule *domain.BracketSchedule, amount decimal.Decimal) decimal.Decimal {
	if schedule == nil || schedule.Len() == 0 {
		return decimal.Zero
	}
	for i := schedule.Len() - 1; i >= 0; i-- {
		b := schedule.Bracket(i)
		if amount.GreaterThanOrEqual(b.From) {
			return b.Rate
		}
	}
	return schedule.Bracket(0).Rate
}

// RoundToUnit rounds a tax amount to the nearest multiple of unit (1,000 COP for
// withholding). A non-positive unit leaves the amount unchanged.
func RoundToUnit(amount, unit decimal.Decimal) decimal.Decimal {
	if !unit.IsPositive() {
		return amount
	}
	return amount.Div(unit).Round(0).Mul(unit)
}

// floorZero clamps negative intermediates to zero
func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ratio returns part/total, or zero when total is zero
func ratio(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total)
}

// Ratio is the exported form of ratio for callers computing shares of a total
func Ratio(part, total decimal.Decimal) decimal.Decimal {
	return ratio(part, total)
}
