package calculation

import (
	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	daysPerMonth      = 30
	daysPerYear       = 360
	monthsPerYear     = 12
	monthsPerSemester = 6
)

// FringeBenefits are the statutory benefits realized over a year
type FringeBenefits struct {
	ServiceBonus      decimal.Decimal
	Severance         decimal.Decimal
	SeveranceInterest decimal.Decimal
}

// Total sums the realized benefits
func (f FringeBenefits) Total() decimal.Decimal {
	return f.ServiceBonus.Add(f.Severance).Add(f.SeveranceInterest)
}

// Prorate applies the commercial-calendar rule amount × days / 360
func Prorate(amount decimal.Decimal, days int) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero
	}
	return amount.Mul(decimal.NewFromInt(int64(days))).Div(decimal.NewFromInt(daysPerYear))
}

// clampDays keeps a month's day count within the 30-day commercial month
func clampDays(days int) int {
	if days < 0 {
		return 0
	}
	if days > daysPerMonth {
		return daysPerMonth
	}
	return days
}

// RealizedFringe computes the service bonus per semester and the yearly severance
// and severance interest. Months are in calendar order: the first six form the
// first semester. The base of each benefit is the average monthly salary plus
// subsidy over the months actually worked in the period.
func RealizedFringe(months []domain.MonthInput, interestRate decimal.Decimal) FringeBenefits {
	var fb FringeBenefits

	for start := 0; start < len(months); start += monthsPerSemester {
		end := start + monthsPerSemester
		if end > len(months) {
			end = len(months)
		}
		avg, days := averageBase(months[start:end])
		fb.ServiceBonus = fb.ServiceBonus.Add(Prorate(avg, days))
	}

	avg, days := averageBase(months)
	fb.Severance = Prorate(avg, days)
	fb.SeveranceInterest = Prorate(fb.Severance.Mul(interestRate), days)
	return fb
}

// averageBase returns the average salary+subsidy over worked months and the
// number of days worked
func averageBase(months []domain.MonthInput) (decimal.Decimal, int) {
	total := decimal.Zero
	worked := 0
	days := 0
	for _, m := range months {
		d := clampDays(m.DaysWorked)
		if d == 0 {
			continue
		}
		total = total.Add(m.Salary).Add(m.Subsidy)
		worked++
		days += d
	}
	if worked == 0 {
		return decimal.Zero, 0
	}
	return total.Div(decimal.NewFromInt(int64(worked))), days
}

// paidInMonth is the part of a monthly rate earned for the days worked
func paidInMonth(rate decimal.Decimal, days int) decimal.Decimal {
	days = clampDays(days)
	if days == daysPerMonth {
		return rate
	}
	return rate.Mul(decimal.NewFromInt(int64(days))).Div(decimal.NewFromInt(daysPerMonth))
}
