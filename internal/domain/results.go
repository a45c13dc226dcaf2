package domain

import (
	"github.com/shopspring/decimal"
)

// RegimeKind names a legally distinct way of structuring compensation
type RegimeKind string

const (
	RegimeEmployment RegimeKind = "employment"
	RegimeIntegral   RegimeKind = "integral_salary"
	RegimeContractor RegimeKind = "independent_contractor"
	RegimeSimple     RegimeKind = "simple"
)

// Label returns a display name for the regime
func (k RegimeKind) Label() string {
	switch k {
	case RegimeEmployment:
		return "Employment contract"
	case RegimeIntegral:
		return "Integral salary"
	case RegimeContractor:
		return "Independent contractor"
	case RegimeSimple:
		return "SIMPLE regime"
	default:
		return string(k)
	}
}

// LimitType records which global ceiling clamped deductions and exemptions
type LimitType string

const (
	LimitNone        LimitType = ""
	LimitPercentage  LimitType = "40%"
	LimitAbsoluteCap LimitType = "absolute-cap"
)

// Deductions are the optional worker deductions entered per month
type Deductions struct {
	HasDependents    bool            `yaml:"has_dependents" json:"hasDependents"`
	HousingInterest  decimal.Decimal `yaml:"housing_interest" json:"housingInterest"`
	PrepaidMedicine  decimal.Decimal `yaml:"prepaid_medicine" json:"prepaidMedicine"`
	VoluntaryPension decimal.Decimal `yaml:"voluntary_pension" json:"voluntaryPension"`
}

// Scale multiplies every amount, e.g. by 12 for an annual depuración
func (d Deductions) Scale(factor decimal.Decimal) Deductions {
	return Deductions{
		HasDependents:    d.HasDependents,
		HousingInterest:  d.HousingInterest.Mul(factor),
		PrepaidMedicine:  d.PrepaidMedicine.Mul(factor),
		VoluntaryPension: d.VoluntaryPension.Mul(factor),
	}
}

// CalcOptions are the per-request switches shared by every regime model
type CalcOptions struct {
	Pensioner     bool
	ActivityGroup string
	Deductions    Deductions
}

// TaxableBase is the depuración chain for one calculation. Each field is derived
// from the previous ones and never revisited.
type TaxableBase struct {
	Gross                  decimal.Decimal `json:"gross"`
	MandatoryContributions decimal.Decimal `json:"mandatoryContributions"`
	NetAfterContributions  decimal.Decimal `json:"netAfterContributions"`
	CappedDeductions       decimal.Decimal `json:"cappedDeductions"`
	ExemptPortion          decimal.Decimal `json:"exemptPortion"`
	AppliedRelief          decimal.Decimal `json:"appliedRelief"`
	TaxableBase            decimal.Decimal `json:"taxableBase"`
	LimitApplied           bool            `json:"limitApplied"`
	LimitType              LimitType       `json:"limitType,omitempty"`
}

// Withholding is the monthly Procedure 1 result
type Withholding struct {
	Base        TaxableBase     `json:"base"`
	BaseUnits   decimal.Decimal `json:"baseUnits"`
	Withholding decimal.Decimal `json:"withholding"`
}

// MonthInput is one month of pay fed to the annual reconciliation
type MonthInput struct {
	Salary          decimal.Decimal `json:"salary"`
	Subsidy         decimal.Decimal `json:"subsidy"`
	DaysWorked      int             `json:"daysWorked"`
	Contributions   decimal.Decimal `json:"contributions"`
	WithholdingPaid decimal.Decimal `json:"withholdingPaid"`
}

// ReconciliationOutcome tells the caller how to present the delta
type ReconciliationOutcome string

const (
	OutcomeAdditionalOwed ReconciliationOutcome = "additional_owed"
	OutcomeBalanceInFavor ReconciliationOutcome = "balance_in_favor"
	OutcomeSettled        ReconciliationOutcome = "settled"
)

// Reconciliation is the annual liability compared to the withholding already paid
type Reconciliation struct {
	Salaries          decimal.Decimal       `json:"salaries"`
	Subsidies         decimal.Decimal       `json:"subsidies"`
	ServiceBonus      decimal.Decimal       `json:"serviceBonus"`
	Severance         decimal.Decimal       `json:"severance"`
	SeveranceInterest decimal.Decimal       `json:"severanceInterest"`
	AnnualGross       decimal.Decimal       `json:"annualGross"`
	Base              TaxableBase           `json:"base"`
	AnnualTax         decimal.Decimal       `json:"annualTax"`
	WithholdingPaid   decimal.Decimal       `json:"withholdingPaid"`
	Delta             decimal.Decimal       `json:"delta"`
	Outcome           ReconciliationOutcome `json:"outcome"`
}

// RegimeResult is the outcome of one regime model for one amount
type RegimeResult struct {
	Regime     RegimeKind `json:"regime"`
	Applicable bool       `json:"applicable"`
	Reason     string     `json:"reason,omitempty"`

	Gross                 decimal.Decimal `json:"gross"`
	TransportSubsidy      decimal.Decimal `json:"transportSubsidy"`
	MonthlyCost           decimal.Decimal `json:"monthlyCost"`
	EmployerContributions decimal.Decimal `json:"employerContributions"`
	FringeAccrual         decimal.Decimal `json:"fringeAccrual"`
	WorkerContributions   decimal.Decimal `json:"workerContributions"`
	MonthlyWithholding    decimal.Decimal `json:"monthlyWithholding"`
	MonthlyNet            decimal.Decimal `json:"monthlyNet"`

	AnnualGross         decimal.Decimal `json:"annualGross"`
	AnnualContributions decimal.Decimal `json:"annualContributions"`
	AnnualTax           decimal.Decimal `json:"annualTax"`
	VATLiability        decimal.Decimal `json:"vatLiability"`
	AnnualNet           decimal.Decimal `json:"annualNet"`
	EffectiveRate       decimal.Decimal `json:"effectiveRate"`

	Base           TaxableBase     `json:"base"`
	Reconciliation *Reconciliation `json:"reconciliation,omitempty"`
	Notes          []string        `json:"notes,omitempty"`
}

// NotApplicable returns the typed error for a result flagged inapplicable, or nil
func (r RegimeResult) NotApplicable() error {
	if r.Applicable {
		return nil
	}
	return &NotApplicableError{Regime: r.Regime, Reason: r.Reason}
}

// TotalTax is the income-side tax burden used when ranking by tax.
// VAT is collected from the client and passed through, so it is excluded.
func (r RegimeResult) TotalTax() decimal.Decimal {
	return r.AnnualTax
}
