package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testParams() RegimeParameters {
	return RegimeParameters{
		MinimumWage:              dec("1423500"),
		TransportSubsidy:         dec("200000"),
		SubsidyThresholdMultiple: dec("2"),
		Employer: EmployerRates{
			Health:           dec("0.085"),
			Pension:          dec("0.12"),
			OccupationalRisk: dec("0.00522"),
			FamilyFund:       dec("0.04"),
			ICBF:             dec("0.03"),
			SENA:             dec("0.02"),
		},
		Fringe: FringeRates{
			Severance:         dec("0.0833"),
			SeveranceInterest: dec("0.12"),
			ServiceBonus:      dec("0.0833"),
			Vacation:          dec("0.0417"),
		},
		Solidarity: []SolidarityTier{
			{FromMultiple: dec("4"), Rate: dec("0.01")},
			{FromMultiple: dec("16"), Rate: dec("0.012")},
			{FromMultiple: dec("20"), Rate: dec("0.02")},
		},
		Integral: IntegralParameters{FloorMultiple: dec("13"), ContributionBaseFactor: dec("0.7")},
	}
}

func TestRegimeParameters_Factors(t *testing.T) {
	p := testParams()

	assert.True(t, p.Employer.Total(false).Equal(dec("0.30022")))
	assert.True(t, p.Employer.Total(true).Equal(dec("0.18022")))
	assert.True(t, p.Fringe.OnSubsidy().Equal(dec("0.176596")))
	assert.True(t, p.Fringe.Total().Equal(dec("0.218296")))
	assert.True(t, p.SubsidyThreshold().Equal(dec("2847000")))
	assert.True(t, p.IntegralFloor().Equal(dec("18505500")))
}

func TestRegimeParameters_SubsidyEligible(t *testing.T) {
	p := testParams()

	assert.True(t, p.SubsidyEligible(dec("1423500")))
	assert.True(t, p.SubsidyEligible(dec("2847000")))
	assert.False(t, p.SubsidyEligible(dec("2847000.01")))
}

func TestRegimeParameters_SolidarityRate(t *testing.T) {
	p := testParams()

	tests := []struct {
		base string
		want string
	}{
		{"5693999", "0"},
		{"5694000", "0.01"},
		{"22776000", "0.012"},
		{"28470000", "0.02"},
		{"90000000", "0.02"},
	}
	for _, tt := range tests {
		got := p.SolidarityRate(dec(tt.base))
		assert.True(t, got.Equal(dec(tt.want)), "base %s got %s want %s", tt.base, got, tt.want)
	}

	assert.True(t, RegimeParameters{}.SolidarityRate(dec("1")).IsZero())
}

func TestCapRule_Limit(t *testing.T) {
	uvt := dec("49799")

	assert.True(t, PercentageCap(dec("0.30")).Limit(dec("1000000"), uvt).Equal(dec("300000")))
	assert.True(t, AbsoluteCap(dec("100")).Limit(dec("1"), uvt).Equal(dec("4979900")))
	assert.True(t, PercentageCap(dec("0.30")).Limit(dec("-10"), uvt).IsZero())
	assert.True(t, CapRule{Kind: "bogus"}.Limit(dec("100"), uvt).IsZero())
}

func TestTaxYear_Units(t *testing.T) {
	ty := &TaxYear{UVT: dec("49799")}

	assert.True(t, ty.ToUnits(dec("4979900")).Equal(dec("100")))
	assert.True(t, ty.FromUnits(dec("95")).Equal(dec("4730905")))
	assert.True(t, (&TaxYear{}).ToUnits(dec("10")).IsZero())
}

func TestTaxYear_SimpleGroups(t *testing.T) {
	ty := &TaxYear{Simple: map[string]*BracketSchedule{
		"profesiones_liberales": nil,
		"comidas_transporte":    nil,
		"educacion_salud":       nil,
	}}
	assert.Equal(t, []string{"comidas_transporte", "educacion_salud", "profesiones_liberales"}, ty.SimpleGroups())
}

func TestDeductions_Scale(t *testing.T) {
	ded := Deductions{HasDependents: true, HousingInterest: dec("100"), PrepaidMedicine: dec("50")}
	got := ded.Scale(decimal.NewFromInt(12))

	assert.True(t, got.HasDependents)
	assert.True(t, got.HousingInterest.Equal(dec("1200")))
	assert.True(t, got.PrepaidMedicine.Equal(dec("600")))
	assert.True(t, got.VoluntaryPension.IsZero())
}

func TestRegimeResult_NotApplicable(t *testing.T) {
	ok := RegimeResult{Regime: RegimeSimple, Applicable: true, AnnualTax: dec("10")}
	assert.NoError(t, ok.NotApplicable())
	assert.True(t, ok.TotalTax().Equal(dec("10")))

	bad := RegimeResult{Regime: RegimeIntegral, Reason: "below floor"}
	assert.ErrorIs(t, bad.NotApplicable(), ErrNotApplicable)
	assert.Equal(t, "Integral salary", RegimeIntegral.Label())
	assert.Equal(t, "other", RegimeKind("other").Label())
}
