package calculation

import (
	"testing"

	"github.com/rgehrsitz/coltax/internal/config"
	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func loadYear(t *testing.T) *domain.TaxYear {
	t.Helper()
	ty, err := config.NewInputParser().LoadYear(2025)
	require.NoError(t, err)
	return ty
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
