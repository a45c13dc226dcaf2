package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CapKind distinguishes percentage caps from absolute (UVT-denominated) caps
type CapKind string

const (
	CapPercentage CapKind = "percentage"
	CapAbsolute   CapKind = "absolute"
)

// CapRule limits a deduction either to a share of a base or to a fixed number of UVT
type CapRule struct {
	Kind  CapKind         `yaml:"kind" json:"kind"`
	Rate  decimal.Decimal `yaml:"rate,omitempty" json:"rate,omitempty"`
	Units decimal.Decimal `yaml:"units,omitempty" json:"units,omitempty"`
}

// PercentageCap caps a candidate at base × rate
func PercentageCap(rate decimal.Decimal) CapRule {
	return CapRule{Kind: CapPercentage, Rate: rate}
}

// AbsoluteCap caps a candidate at units × UVT
func AbsoluteCap(units decimal.Decimal) CapRule {
	return CapRule{Kind: CapAbsolute, Units: units}
}

// Limit evaluates the rule against the base for the given UVT value
func (r CapRule) Limit(base, uvt decimal.Decimal) decimal.Decimal {
	var limit decimal.Decimal
	switch r.Kind {
	case CapPercentage:
		limit = base.Mul(r.Rate)
	case CapAbsolute:
		limit = r.Units.Mul(uvt)
	}
	if limit.IsNegative() {
		return decimal.Zero
	}
	return limit
}

// CapSet holds every cap used by the depuración at one time scale.
// The monthly and annual sets are loaded separately and never derived from each other.
type CapSet struct {
	DependentRate    decimal.Decimal `yaml:"dependent_rate" json:"dependent_rate"`
	Dependents       []CapRule       `yaml:"dependents" json:"dependents"`
	HousingInterest  []CapRule       `yaml:"housing_interest" json:"housing_interest"`
	PrepaidMedicine  []CapRule       `yaml:"prepaid_medicine" json:"prepaid_medicine"`
	VoluntaryPension []CapRule       `yaml:"voluntary_pension" json:"voluntary_pension"`
	ExemptRate       decimal.Decimal `yaml:"exempt_rate" json:"exempt_rate"`
	ExemptCap        CapRule         `yaml:"exempt_cap" json:"exempt_cap"`
	GlobalRate       decimal.Decimal `yaml:"global_rate" json:"global_rate"`
	GlobalCap        CapRule         `yaml:"global_cap" json:"global_cap"`
}

// EmployerRates are the payer-side contribution rates of an employment contract
type EmployerRates struct {
	Health           decimal.Decimal `yaml:"health" json:"health"`
	Pension          decimal.Decimal `yaml:"pension" json:"pension"`
	OccupationalRisk decimal.Decimal `yaml:"occupational_risk" json:"occupational_risk"`
	FamilyFund       decimal.Decimal `yaml:"family_fund" json:"family_fund"`
	ICBF             decimal.Decimal `yaml:"icbf" json:"icbf"`
	SENA             decimal.Decimal `yaml:"sena" json:"sena"`
}

// Total sums the employer rates, dropping pension for pensioners
func (r EmployerRates) Total(pensioner bool) decimal.Decimal {
	total := r.Health.Add(r.OccupationalRisk).Add(r.FamilyFund).Add(r.ICBF).Add(r.SENA)
	if !pensioner {
		total = total.Add(r.Pension)
	}
	return total
}

// EmployeeRates are the worker-side contribution rates of an employment contract
type EmployeeRates struct {
	Health  decimal.Decimal `yaml:"health" json:"health"`
	Pension decimal.Decimal `yaml:"pension" json:"pension"`
}

// FringeRates are the monthly accrual rates of statutory fringe benefits.
// SeveranceInterest is the annual interest rate paid on accrued severance.
type FringeRates struct {
	Severance         decimal.Decimal `yaml:"severance" json:"severance"`
	SeveranceInterest decimal.Decimal `yaml:"severance_interest" json:"severance_interest"`
	ServiceBonus      decimal.Decimal `yaml:"service_bonus" json:"service_bonus"`
	Vacation          decimal.Decimal `yaml:"vacation" json:"vacation"`
}

// OnSubsidy is the accrual factor whose base includes the transport subsidy
func (f FringeRates) OnSubsidy() decimal.Decimal {
	return f.Severance.Add(f.Severance.Mul(f.SeveranceInterest)).Add(f.ServiceBonus)
}

// Total is the full accrual factor on salary
func (f FringeRates) Total() decimal.Decimal {
	return f.OnSubsidy().Add(f.Vacation)
}

// SolidarityTier is a worker-side pension solidarity surcharge that starts at a
// multiple of the minimum wage
type SolidarityTier struct {
	FromMultiple decimal.Decimal `yaml:"from_multiple" json:"from_multiple"`
	Rate         decimal.Decimal `yaml:"rate" json:"rate"`
}

// IntegralParameters configure the integral salary contract
type IntegralParameters struct {
	FloorMultiple          decimal.Decimal `yaml:"floor_multiple" json:"floor_multiple"`
	ContributionBaseFactor decimal.Decimal `yaml:"contribution_base_factor" json:"contribution_base_factor"`
}

// ContractorParameters configure the independent contractor regime
type ContractorParameters struct {
	ContributionBaseFactor decimal.Decimal `yaml:"contribution_base_factor" json:"contribution_base_factor"`
	Health                 decimal.Decimal `yaml:"health" json:"health"`
	Pension                decimal.Decimal `yaml:"pension" json:"pension"`
	OccupationalRisk       decimal.Decimal `yaml:"occupational_risk" json:"occupational_risk"`
	VATThresholdUnits      decimal.Decimal `yaml:"vat_threshold_units" json:"vat_threshold_units"`
	VATRate                decimal.Decimal `yaml:"vat_rate" json:"vat_rate"`
}

// SimpleParameters configure the unified small-business tax
type SimpleParameters struct {
	TurnoverCeilingUnits decimal.Decimal `yaml:"turnover_ceiling_units" json:"turnover_ceiling_units"`
}

// RegimeParameters bundles the per-regime constants of one tax year
type RegimeParameters struct {
	MinimumWage              decimal.Decimal      `yaml:"minimum_wage" json:"minimum_wage"`
	TransportSubsidy         decimal.Decimal      `yaml:"transport_subsidy" json:"transport_subsidy"`
	SubsidyThresholdMultiple decimal.Decimal      `yaml:"subsidy_threshold_multiple" json:"subsidy_threshold_multiple"`
	Employer                 EmployerRates        `yaml:"employer" json:"employer"`
	Employee                 EmployeeRates        `yaml:"employee" json:"employee"`
	Fringe                   FringeRates          `yaml:"fringe" json:"fringe"`
	Solidarity               []SolidarityTier     `yaml:"solidarity" json:"solidarity"`
	Integral                 IntegralParameters   `yaml:"integral" json:"integral"`
	Contractor               ContractorParameters `yaml:"contractor" json:"contractor"`
	Simple                   SimpleParameters     `yaml:"simple" json:"simple"`
}

// SubsidyThreshold is the highest salary still eligible for the transport subsidy
func (p RegimeParameters) SubsidyThreshold() decimal.Decimal {
	return p.MinimumWage.Mul(p.SubsidyThresholdMultiple)
}

// SubsidyEligible reports whether a base salary receives the transport subsidy
func (p RegimeParameters) SubsidyEligible(salary decimal.Decimal) bool {
	return salary.LessThanOrEqual(p.SubsidyThreshold())
}

// IntegralFloor is the minimum integral salary
func (p RegimeParameters) IntegralFloor() decimal.Decimal {
	return p.MinimumWage.Mul(p.Integral.FloorMultiple)
}

// SolidarityRate returns the solidarity surcharge for a contribution base
func (p RegimeParameters) SolidarityRate(base decimal.Decimal) decimal.Decimal {
	if p.MinimumWage.IsZero() {
		return decimal.Zero
	}
	multiple := base.Div(p.MinimumWage)
	rate := decimal.Zero
	for _, tier := range p.Solidarity {
		if multiple.GreaterThanOrEqual(tier.FromMultiple) {
			rate = tier.Rate
		}
	}
	return rate
}

// TaxYear is the versioned configuration object for one year. It is built once,
// validated, and then shared read-only.
type TaxYear struct {
	Year               int
	UVT                decimal.Decimal
	RoundingUnit       decimal.Decimal
	MonthlyWithholding *BracketSchedule
	AnnualIncomeTax    *BracketSchedule
	Simple             map[string]*BracketSchedule
	MonthlyCaps        CapSet
	AnnualCaps         CapSet
	Params             RegimeParameters
}

// SimpleGroups lists the configured business-activity groups in sorted order
func (ty *TaxYear) SimpleGroups() []string {
	groups := make([]string, 0, len(ty.Simple))
	for g := range ty.Simple {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// ToUnits converts a currency amount into UVT
func (ty *TaxYear) ToUnits(amount decimal.Decimal) decimal.Decimal {
	if ty.UVT.IsZero() {
		return decimal.Zero
	}
	return amount.Div(ty.UVT)
}

// FromUnits converts UVT into currency
func (ty *TaxYear) FromUnits(units decimal.Decimal) decimal.Decimal {
	return units.Mul(ty.UVT)
}
