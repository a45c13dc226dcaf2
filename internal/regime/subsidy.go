package regime

import (
	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/shopspring/decimal"
)

// SubsidyBranch records which closed form produced an employment salary
type SubsidyBranch string

const (
	BranchWithSubsidy    SubsidyBranch = "with_subsidy"
	BranchWithoutSubsidy SubsidyBranch = "without_subsidy"
	BranchUncovered      SubsidyBranch = "uncovered"
)

// SubsidySolution is the salary that spends a monthly employment budget
type SubsidySolution struct {
	Salary  decimal.Decimal
	Subsidy decimal.Decimal
	Branch  SubsidyBranch
}

// SolveSubsidy inverts the employment cost function
//
//	cost = salary × (1 + F) + subsidy × (1 + f)
//
// where F is the employer contribution factor plus every fringe accrual and f is
// the accrual factor whose base includes the subsidy. The subsidy is payable only
// while salary ≤ threshold, so the function has a single jump there and both
// sides are linear:
//
//  1. assume the subsidy and solve; keep it if salary ≤ threshold
//  2. otherwise solve without it; that salary is always above the threshold
//
// A budget that cannot even pay the subsidy's own cost yields BranchUncovered.
func SolveSubsidy(p domain.RegimeParameters, budget decimal.Decimal, pensioner bool) SubsidySolution {
	one := decimal.NewFromInt(1)
	salaryFactor := one.Add(p.Employer.Total(pensioner)).Add(p.Fringe.Total())
	subsidyCost := p.TransportSubsidy.Mul(one.Add(p.Fringe.OnSubsidy()))

	withSubsidy := budget.Sub(subsidyCost).Div(salaryFactor).Round(grossPlaces)
	if withSubsidy.IsPositive() && p.SubsidyEligible(withSubsidy) {
		return SubsidySolution{Salary: withSubsidy, Subsidy: p.TransportSubsidy, Branch: BranchWithSubsidy}
	}

	without := budget.Div(salaryFactor).Round(grossPlaces)
	if !p.SubsidyEligible(without) {
		return SubsidySolution{Salary: without, Branch: BranchWithoutSubsidy}
	}

	// without ≤ threshold here implies withSubsidy ≤ 0
	return SubsidySolution{Salary: without, Branch: BranchUncovered}
}
