package calculation

import (
	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/shopspring/decimal"
)

// Contributions is the social security charged to a worker for one month
type Contributions struct {
	Base             decimal.Decimal
	Health           decimal.Decimal
	Pension          decimal.Decimal
	Solidarity       decimal.Decimal
	OccupationalRisk decimal.Decimal
}

// Mandatory is the part that reduces the depuración (health, pension, solidarity)
func (c Contributions) Mandatory() decimal.Decimal {
	return c.Health.Add(c.Pension).Add(c.Solidarity)
}

// Total includes occupational risk, which contractors pay out of pocket
func (c Contributions) Total() decimal.Decimal {
	return c.Mandatory().Add(c.OccupationalRisk)
}

// EmployeeContributions computes worker-side contributions of an employee on a
// contribution base (salary, or 70% of an integral salary). Pensioners do not
// contribute to pension or the solidarity fund.
func EmployeeContributions(p domain.RegimeParameters, base decimal.Decimal, pensioner bool) Contributions {
	base = floorZero(base)
	c := Contributions{
		Base:   base,
		Health: base.Mul(p.Employee.Health),
	}
	if !pensioner {
		c.Pension = base.Mul(p.Employee.Pension)
		c.Solidarity = base.Mul(p.SolidarityRate(base))
	}
	return c
}

// EmployerContributions is the payer-side contribution stack on a base
func EmployerContributions(p domain.RegimeParameters, base decimal.Decimal, pensioner bool) decimal.Decimal {
	return floorZero(base).Mul(p.Employer.Total(pensioner))
}

// ContractorContributions computes the self-paid contributions of an independent
// worker on the flat share of gross income.
func ContractorContributions(p domain.RegimeParameters, gross decimal.Decimal, pensioner bool) Contributions {
	cp := p.Contractor
	base := floorZero(gross).Mul(cp.ContributionBaseFactor)
	c := Contributions{
		Base:             base,
		Health:           base.Mul(cp.Health),
		OccupationalRisk: base.Mul(cp.OccupationalRisk),
	}
	if !pensioner {
		c.Pension = base.Mul(cp.Pension)
		c.Solidarity = base.Mul(p.SolidarityRate(base))
	}
	return c
}
