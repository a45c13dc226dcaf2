package output

import (
	"context"
	"strings"
	"testing"

	"github.com/rgehrsitz/coltax/internal/calculation"
	"github.com/rgehrsitz/coltax/internal/compare"
	"github.com/rgehrsitz/coltax/internal/config"
	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comparison(t *testing.T, amount int64) *compare.ComparisonSet {
	t.Helper()
	ty, err := config.NewInputParser().LoadYear(2025)
	require.NoError(t, err)

	ce := compare.NewCompareEngine(calculation.NewEngine(ty))
	set, err := ce.Compare(context.Background(), compare.CompareOptions{
		Amount:  decimal.NewFromInt(amount),
		Mode:    compare.ModeBudget,
		Options: domain.CalcOptions{ActivityGroup: "profesiones_liberales"},
	})
	require.NoError(t, err)
	set.ParamsSource = "bundled 2025"
	return set
}

func TestFormatterFunc(t *testing.T) {
	f := FormatterFunc{ID: "x", F: func(*compare.ComparisonSet) ([]byte, error) { return []byte("ok"), nil }}
	assert.Equal(t, "x", f.Name())
	out, err := f.Format(nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(out))
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "table"},
		{"table", "table"},
		{"console", "table"},
		{"CSV", "csv"},
		{" json ", "json"},
		{"verbose", "verbose"},
		{"detailed", "verbose"},
		{"console-verbose", "verbose"},
		{"html", "html"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f := GetFormatterByName(tt.in)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.Name())
		})
	}
	assert.Nil(t, GetFormatterByName("xml"))
}

func TestAvailableNames(t *testing.T) {
	assert.Equal(t, []string{"csv", "html", "json", "table", "verbose"}, AvailableFormatterNames())
	assert.Equal(t, []string{"console", "console-verbose", "detailed"}, AvailableFormatAliases())
}

func TestRegistryMatchesCompareFormatters(t *testing.T) {
	set := comparison(t, 8_500_000)
	for _, name := range []string{"table", "csv", "json"} {
		t.Run(name, func(t *testing.T) {
			direct, err := compare.NewFormatter(name)
			require.NoError(t, err)
			want, err := direct.Format(set)
			require.NoError(t, err)

			got, err := GetFormatterByName(name).Format(set)
			require.NoError(t, err)
			assert.Equal(t, want, string(got))
		})
	}
}

func TestVerboseFormatter(t *testing.T) {
	set := comparison(t, 8_500_000)
	out, err := VerboseFormatter{}.Format(set)
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "DETAILED COMPENSATION ANALYSIS - TAX YEAR 2025")
	assert.Contains(t, s, "KEY ASSUMPTIONS:")
	assert.Contains(t, s, "Parameters: bundled 2025")
	assert.Contains(t, s, "#1 ")
	assert.Contains(t, s, "TAXABLE BASE:")
	assert.Contains(t, s, "Taxable base")
	assert.Contains(t, s, "NOT APPLICABLE")
	assert.Contains(t, s, "Integral salary: ")
	assert.Contains(t, s, "RECOMMENDATIONS")
	for _, cr := range set.Ranked {
		assert.Contains(t, s, cr.Label())
	}
}

func TestHTMLFormatter(t *testing.T) {
	set := comparison(t, 8_500_000)
	out, err := HTMLFormatter{}.Format(set)
	require.NoError(t, err)
	s := string(out)

	assert.True(t, strings.HasPrefix(s, "<!DOCTYPE html>"))
	assert.Contains(t, s, "tax year 2025")
	assert.Contains(t, s, `class="best"`)
	assert.Contains(t, s, "Not applicable")
	assert.Contains(t, s, compare.FormatCOP(set.Best().Result.AnnualNet))
	for _, a := range DefaultAssumptions {
		assert.Contains(t, s, a)
	}
}

func TestOutcomeLabel(t *testing.T) {
	assert.Equal(t, "additional tax owed", outcomeLabel(domain.OutcomeAdditionalOwed))
	assert.Equal(t, "balance in favor", outcomeLabel(domain.OutcomeBalanceInFavor))
	assert.Equal(t, "settled", outcomeLabel(domain.OutcomeSettled))
}
