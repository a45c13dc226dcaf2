package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"8500000", "8500000"},
		{"8.500.000", "8500000"},
		{"8,500,000", "8500000"},
		{"8500000.50", "8500000.5"},
		{"8.500.000,50", "8500000.5"},
		{"$ 1.234,56", "1234.56"},
		{"  2_000_000 ", "2000000"},
		{"2500000.5", "2500000.5"},
		{"2.500.000,5", "2500000.5"},
		{"1.5", "1.5"},
		{"1,25", "1.25"},
		{"1.500", "1500"},
		{"12,000", "12000"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAmount("parse", "amount", tt.raw)
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestParseAmount_Rejects(t *testing.T) {
	for _, raw := range []string{"", "   ", "$", "abc", "0", "-5", "1.2.x",
		"2500000.", "2500000.5000", "12345.678", "1,234.567", "1.5.5", "8.50.000", "1,,000"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseAmount("parse", "amount", raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.False(t, errors.Is(err, ErrNotApplicable))
		})
	}
}

func TestAmountFromFloat(t *testing.T) {
	got, err := AmountFromFloat("form", "budget", 5000000.25)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("5000000.25")))

	for _, f := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := AmountFromFloat("form", "budget", f)
		assert.True(t, errors.Is(err, ErrInvalidInput), "value %v", f)
	}
}

func TestErrors(t *testing.T) {
	err := RequirePositive("withholding", "gross", dec("0"))
	require.Error(t, err)
	assert.Equal(t, "withholding: gross must be a positive amount, got 0", err.Error())
	assert.NoError(t, RequirePositive("withholding", "gross", dec("0.01")))

	withReason := &InvalidInputError{Operation: "reconcile", Field: "months", Value: "13 entries", Reason: "must cover 1 to 12 months"}
	assert.Equal(t, "reconcile: months must cover 1 to 12 months, got 13 entries", withReason.Error())
	assert.True(t, errors.Is(withReason, ErrInvalidInput))

	na := &NotApplicableError{Regime: RegimeIntegral, Reason: "below floor"}
	assert.True(t, errors.Is(na, ErrNotApplicable))
	assert.Equal(t, "integral_salary not applicable: below floor", na.Error())

	sched := &InvalidScheduleError{Schedule: "2025/simple", Reason: "no brackets defined"}
	assert.Contains(t, sched.Error(), `"2025/simple"`)
}
