package compare

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/rgehrsitz/coltax/internal/calculation"
	"github.com/rgehrsitz/coltax/internal/config"
	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/rgehrsitz/coltax/internal/regime"
	"github.com/rgehrsitz/coltax/internal/regime/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func realEngine(t *testing.T) *CompareEngine {
	t.Helper()
	ty, err := config.NewInputParser().LoadYear(2025)
	require.NoError(t, err)
	return NewCompareEngine(calculation.NewEngine(ty))
}

func mockModel(ctrl *gomock.Controller, kind domain.RegimeKind, result domain.RegimeResult) *mocks.MockModel {
	m := mocks.NewMockModel(ctrl)
	m.EXPECT().Kind().Return(kind).AnyTimes()
	result.Regime = kind
	m.EXPECT().InverseSolve(gomock.Any(), gomock.Any()).Return(result, nil).AnyTimes()
	m.EXPECT().CostOf(gomock.Any(), gomock.Any()).Return(result, nil).AnyTimes()
	return m
}

func TestCompareEngine_RanksByGoal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	employment := mockModel(ctrl, domain.RegimeEmployment, domain.RegimeResult{
		Applicable: true, AnnualNet: decimal.NewFromInt(100), AnnualTax: decimal.NewFromInt(30),
	})
	integral := mockModel(ctrl, domain.RegimeIntegral, domain.RegimeResult{
		Applicable: false, Reason: "below floor",
	})
	contractor := mockModel(ctrl, domain.RegimeContractor, domain.RegimeResult{
		Applicable: true, AnnualNet: decimal.NewFromInt(120), AnnualTax: decimal.NewFromInt(40),
	})
	simple := mockModel(ctrl, domain.RegimeSimple, domain.RegimeResult{
		Applicable: true, AnnualNet: decimal.NewFromInt(110), AnnualTax: decimal.NewFromInt(10),
	})

	ce := NewCompareEngineWithModels(employment, integral, contractor, simple)

	tests := []struct {
		name string
		goal Goal
		want []domain.RegimeKind
	}{
		{"maximize net", GoalMaximizeNet, []domain.RegimeKind{domain.RegimeContractor, domain.RegimeSimple, domain.RegimeEmployment}},
		{"minimize tax", GoalMinimizeTax, []domain.RegimeKind{domain.RegimeSimple, domain.RegimeEmployment, domain.RegimeContractor}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := ce.Compare(context.Background(), CompareOptions{Amount: decimal.NewFromInt(1000), Goal: tt.goal})
			require.NoError(t, err)

			got := make([]domain.RegimeKind, 0, len(set.Ranked))
			for i, cr := range set.Ranked {
				got = append(got, cr.Result.Regime)
				assert.Equal(t, i+1, cr.Rank)
			}
			assert.Equal(t, tt.want, got)

			require.Len(t, set.NotApplicable, 1)
			assert.Equal(t, domain.RegimeIntegral, set.NotApplicable[0].Result.Regime)
			assert.Equal(t, 0, set.NotApplicable[0].Rank)
			assert.True(t, set.Ranked[0].NetDiffFromBest.IsZero())
		})
	}
}

func TestCompareEngine_TiesFollowRegimeOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	same := domain.RegimeResult{Applicable: true, AnnualNet: decimal.NewFromInt(500)}
	ce := NewCompareEngineWithModels(
		mockModel(ctrl, domain.RegimeSimple, same),
		mockModel(ctrl, domain.RegimeContractor, same),
		mockModel(ctrl, domain.RegimeEmployment, same),
	)

	set, err := ce.Compare(context.Background(), CompareOptions{Amount: decimal.NewFromInt(1)})
	require.NoError(t, err)
	require.Len(t, set.Ranked, 3)
	assert.Equal(t, domain.RegimeEmployment, set.Ranked[0].Result.Regime)
	assert.Equal(t, domain.RegimeContractor, set.Ranked[1].Result.Regime)
	assert.Equal(t, domain.RegimeSimple, set.Ranked[2].Result.Regime)
}

func TestCompareEngine_GrossModeUsesCostOf(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	amount := decimal.NewFromInt(9000000)
	opts := domain.CalcOptions{ActivityGroup: "educacion_salud"}

	m := mocks.NewMockModel(ctrl)
	m.EXPECT().Kind().Return(domain.RegimeSimple).AnyTimes()
	m.EXPECT().CostOf(amount, opts).Return(domain.RegimeResult{Regime: domain.RegimeSimple, Applicable: true}, nil).Times(1)

	ce := NewCompareEngineWithModels(m)
	set, err := ce.Compare(context.Background(), CompareOptions{Amount: amount, Mode: ModeGross, Options: opts})
	require.NoError(t, err)
	assert.Equal(t, ModeGross, set.Mode)
	assert.Equal(t, "educacion_salud", set.ActivityGroup)
}

func TestCompareEngine_UnknownGroupOnlyDropsSimple(t *testing.T) {
	ce := realEngine(t)

	for _, group := range []string{"", "mining"} {
		t.Run("group "+group, func(t *testing.T) {
			set, err := ce.Compare(context.Background(), CompareOptions{
				// far above the integral floor so only SIMPLE can drop out
				Amount:  decimal.NewFromInt(40_000_000),
				Options: domain.CalcOptions{ActivityGroup: group},
			})
			require.NoError(t, err)

			assert.Len(t, set.Ranked, 3)
			require.Len(t, set.NotApplicable, 1)
			simple := set.NotApplicable[0]
			assert.Equal(t, domain.RegimeSimple, simple.Result.Regime)
			assert.Contains(t, simple.Result.Reason, "unknown activity group")
		})
	}
}

func TestCompareEngine_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	failing := mocks.NewMockModel(ctrl)
	failing.EXPECT().Kind().Return(domain.RegimeSimple).AnyTimes()
	failing.EXPECT().InverseSolve(gomock.Any(), gomock.Any()).
		Return(domain.RegimeResult{}, &domain.InvalidInputError{Operation: "simple", Field: "activity group", Value: "x"})

	ce := NewCompareEngineWithModels(failing)

	t.Run("model error is wrapped", func(t *testing.T) {
		_, err := ce.Compare(context.Background(), CompareOptions{Amount: decimal.NewFromInt(10)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to calculate simple")
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("non-positive amount", func(t *testing.T) {
		_, err := ce.Compare(context.Background(), CompareOptions{Amount: decimal.Zero})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := ce.Compare(ctx, CompareOptions{Amount: decimal.NewFromInt(10)})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("no models", func(t *testing.T) {
		_, err := NewCompareEngineWithModels().Compare(context.Background(), CompareOptions{Amount: decimal.NewFromInt(10)})
		assert.Error(t, err)
	})
}

func TestCompare_HighBudgetEmploymentAndIntegralBothApply(t *testing.T) {
	ce := realEngine(t)
	opts := CompareOptions{
		Amount:  decimal.NewFromInt(40000000),
		Options: domain.CalcOptions{ActivityGroup: "profesiones_liberales"},
	}

	first, err := ce.Compare(context.Background(), opts)
	require.NoError(t, err)

	employment, ok := first.Find(domain.RegimeEmployment)
	require.True(t, ok)
	integral, ok := first.Find(domain.RegimeIntegral)
	require.True(t, ok)
	assert.True(t, employment.Result.Applicable)
	assert.True(t, integral.Result.Applicable)
	assert.NotZero(t, employment.Rank)
	assert.NotZero(t, integral.Rank)
	assert.Len(t, first.Ranked, 4)
	assert.Equal(t, 2025, first.Year)

	for i := 1; i < len(first.Ranked); i++ {
		assert.True(t, first.Ranked[i-1].Result.AnnualNet.GreaterThanOrEqual(first.Ranked[i].Result.AnnualNet))
	}

	for i := 0; i < 3; i++ {
		again, err := ce.Compare(context.Background(), opts)
		require.NoError(t, err)
		require.Len(t, again.Ranked, len(first.Ranked))
		for j := range first.Ranked {
			assert.Equal(t, first.Ranked[j].Result.Regime, again.Ranked[j].Result.Regime)
			assert.True(t, first.Ranked[j].Result.AnnualNet.Equal(again.Ranked[j].Result.AnnualNet))
		}
	}
}

func TestCompare_LowBudgetFlagsIntegral(t *testing.T) {
	ce := realEngine(t)
	set, err := ce.Compare(context.Background(), CompareOptions{
		Amount:  decimal.NewFromInt(3000000),
		Options: domain.CalcOptions{ActivityGroup: "tiendas_peluquerias"},
	})
	require.NoError(t, err)

	integral, ok := set.Find(domain.RegimeIntegral)
	require.True(t, ok)
	assert.False(t, integral.Result.Applicable)
	assert.Zero(t, integral.Rank)
	for _, cr := range set.Ranked {
		assert.NotEqual(t, domain.RegimeIntegral, cr.Result.Regime)
	}

	found := false
	for _, rec := range set.Recommendations {
		if integral.Label()+" not applicable: "+integral.Result.Reason == rec {
			found = true
		}
	}
	assert.True(t, found, "recommendations: %v", set.Recommendations)
}

func TestNewCompareEngine_UsesAllRegimes(t *testing.T) {
	ce := realEngine(t)
	require.Len(t, ce.Models, 4)
	for i, m := range ce.Models {
		assert.Equal(t, i, regime.Order(m.Kind()))
	}
}
