package breakeven

import (
	"context"
	"errors"
	"strings"
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

func testEngine(t *testing.T) *calculation.Engine {
	t.Helper()
	ty, err := config.NewInputParser().LoadYear(2025)
	require.NoError(t, err)
	return calculation.NewEngine(ty)
}

var opts = domain.CalcOptions{ActivityGroup: "comercio_servicios_tecnicos"}

func TestSolver_ReachesTargetForEveryRegime(t *testing.T) {
	engine := testEngine(t)
	solver := NewDefaultSolver()

	targets := []int64{1500000, 2600000, 4800000, 9000000, 25000000}
	for _, model := range regime.All(engine) {
		for _, target := range targets {
			model, target := model, target
			t.Run(string(model.Kind()), func(t *testing.T) {
				res, err := solver.Solve(context.Background(), Request{
					Model:     model,
					TargetNet: decimal.NewFromInt(target),
					Options:   opts,
				})
				require.NoError(t, err)
				assert.True(t, res.Success, "%s target %d: %s", model.Kind(), target, res.ConvergenceInfo)
				miss := res.Achieved.MonthlyNet.Sub(decimal.NewFromInt(target)).Abs()
				assert.True(t, miss.LessThanOrEqual(decimal.NewFromInt(1)), "missed by %s", miss)
				assert.True(t, res.Gross.Equal(res.Achieved.Gross))
				assert.LessOrEqual(t, res.Iterations, DefaultSolverOptions().MaxIterations)
			})
		}
	}
}

func TestSolver_MinGrossAlreadyMeetsTarget(t *testing.T) {
	engine := testEngine(t)
	minGross := decimal.NewFromInt(10000000)

	res, err := NewDefaultSolver().Solve(context.Background(), Request{
		Model:       regime.NewContractor(engine),
		TargetNet:   decimal.NewFromInt(1000000),
		Options:     opts,
		Constraints: Constraints{MinGross: &minGross},
	})
	require.NoError(t, err)
	assert.True(t, res.Gross.Equal(minGross))
	assert.Equal(t, 1, res.Iterations)
	assert.Contains(t, res.ConvergenceInfo, "minimum gross")
}

func TestSolver_UnreachableBelowMax(t *testing.T) {
	engine := testEngine(t)
	maxGross := decimal.NewFromInt(2000000)

	_, err := NewDefaultSolver().Solve(context.Background(), Request{
		Model:       regime.NewContractor(engine),
		TargetNet:   decimal.NewFromInt(5000000),
		Options:     opts,
		Constraints: Constraints{MaxGross: &maxGross},
	})
	require.Error(t, err)
	var be *BreakEvenError
	require.ErrorAs(t, err, &be)
	assert.Contains(t, be.Message, "not reachable")
}

func TestSolver_InvalidRequests(t *testing.T) {
	engine := testEngine(t)
	solver := NewDefaultSolver()

	_, err := solver.Solve(context.Background(), Request{TargetNet: decimal.NewFromInt(1)})
	assert.Error(t, err)

	_, err = solver.Solve(context.Background(), Request{Model: regime.NewEmployment(engine), TargetNet: decimal.Zero})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = solver.Solve(context.Background(), Request{
		Model:     regime.NewSimple(engine),
		TargetNet: decimal.NewFromInt(3000000),
		Options:   domain.CalcOptions{ActivityGroup: "unknown"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSolver_ModelFailureIsWrapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	model := mocks.NewMockModel(ctrl)
	model.EXPECT().Kind().Return(domain.RegimeContractor).AnyTimes()
	model.EXPECT().CostOf(gomock.Any(), gomock.Any()).Return(domain.RegimeResult{}, errors.New("boom"))

	_, err := NewDefaultSolver().Solve(context.Background(), Request{Model: model, TargetNet: decimal.NewFromInt(100)})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "boom"))
}

func TestSolver_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDefaultSolver().Solve(ctx, Request{
		Model:     regime.NewEmployment(testEngine(t)),
		TargetNet: decimal.NewFromInt(3000000),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolver_SolveAll(t *testing.T) {
	engine := testEngine(t)

	multi, err := NewDefaultSolver().SolveAll(context.Background(), regime.All(engine), decimal.NewFromInt(6000000), opts, Constraints{})
	require.NoError(t, err)
	require.Len(t, multi.Results, 4)
	require.NotNil(t, multi.Cheapest)

	for _, r := range multi.Results {
		if r.Success && r.Achieved.Applicable {
			assert.True(t, multi.Cheapest.Achieved.MonthlyCost.LessThanOrEqual(r.Achieved.MonthlyCost))
		}
	}
	assert.Contains(t, multi.Recommendations[0], "Cheapest for the payer")

	// a 6M net needs an integral salary well below its legal floor
	for _, r := range multi.Results {
		if r.Regime == domain.RegimeIntegral {
			assert.False(t, r.Achieved.Applicable)
		}
	}
}

func TestTableFormatter(t *testing.T) {
	engine := testEngine(t)
	multi, err := NewDefaultSolver().SolveAll(context.Background(), regime.All(engine), decimal.NewFromInt(4000000), opts, Constraints{})
	require.NoError(t, err)

	tf := &TableFormatter{}
	out := tf.FormatMulti(multi)
	assert.Contains(t, out, "NET-TO-GROSS BY REGIME")
	assert.Contains(t, out, "$4.000.000")
	assert.Contains(t, out, "Employment contract")

	single := tf.Format(&multi.Results[0])
	assert.Contains(t, single, "REQUIRED COMPENSATION")
	assert.Contains(t, single, "Converged")

	js, err := (&JSONFormatter{Pretty: true}).Format(multi)
	require.NoError(t, err)
	assert.Contains(t, js, "\"cheapest\"")
}
