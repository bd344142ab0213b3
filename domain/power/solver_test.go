package power

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lilyle-2211/game-analytics-dashboard/internal/errors"
)

func TestBonferroniAlpha(t *testing.T) {
	got, err := BonferroniAlpha(0.05, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.05, got, "single treatment leaves alpha unchanged")

	got, err = BonferroniAlpha(0.05, 4)
	require.NoError(t, err)
	assert.InDelta(t, 0.0125, got, 1e-15)

	_, err = BonferroniAlpha(0.05, 0)
	assert.Error(t, err)
	_, err = BonferroniAlpha(0.05, -2)
	assert.Error(t, err)
	_, err = BonferroniAlpha(1.2, 3)
	assert.Error(t, err)
}

func TestProportionEffectSize_CohensH(t *testing.T) {
	// proportion_effectsize(0.12, 0.10) from the reference library
	h := ProportionEffectSize(0.12, 0.10)
	assert.InDelta(t, 0.063982, h, 1e-5)

	// Antisymmetric and zero at equal rates
	assert.InDelta(t, -h, ProportionEffectSize(0.10, 0.12), 1e-12)
	assert.Zero(t, ProportionEffectSize(0.3, 0.3))
}

func TestSolveProportion_ReferenceScenario(t *testing.T) {
	res, err := SolveProportion(Input{
		Metric:          MetricProportion,
		Baseline:        0.10,
		MDE:             0.02,
		Alpha:           0.05,
		Power:           0.80,
		AllocationRatio: 1,
	})
	require.NoError(t, err)

	// NormalIndPower.solve_power with Cohen's h=0.063982 gives 3834.6
	// for the control group; ceil to 3835 on both sides at ratio 1.
	assert.Equal(t, 3835, res.ControlSize)
	assert.Equal(t, 3835, res.TreatmentSize)
	assert.Equal(t, 0.05, res.AdjustedAlpha)
	assert.InDelta(t, 0.063982, res.EffectSize, 1e-5)
}

func TestSolveProportion_RelativeMDE(t *testing.T) {
	abs, err := SolveProportion(Input{Baseline: 0.10, MDE: 0.02, Alpha: 0.05, Power: 0.80})
	require.NoError(t, err)

	// 20% relative lift on a 10% baseline is the same 2-point move
	rel, err := SolveProportion(Input{Baseline: 0.10, MDE: 0.20, RelativeMDE: true, Alpha: 0.05, Power: 0.80})
	require.NoError(t, err)

	assert.Equal(t, abs.ControlSize, rel.ControlSize)
}

func TestSolveProportion_AllocationRatio(t *testing.T) {
	res, err := SolveProportion(Input{
		Baseline:        0.10,
		MDE:             0.02,
		Alpha:           0.05,
		Power:           0.80,
		AllocationRatio: 2,
	})
	require.NoError(t, err)

	// Treatment gets twice the control; control shrinks vs the 1:1 case
	// but the treatment side pays for it.
	assert.Less(t, res.ControlSize, 3835)
	assert.Equal(t, int(2*res.ControlSize), res.TreatmentSize)
}

func TestSolveProportion_BonferroniAdjustment(t *testing.T) {
	base, err := SolveProportion(Input{Baseline: 0.15, MDE: 0.02, Alpha: 0.05, Power: 0.80})
	require.NoError(t, err)

	multi, err := SolveProportion(Input{Baseline: 0.15, MDE: 0.02, Alpha: 0.05, Power: 0.80, Treatments: 3})
	require.NoError(t, err)

	assert.InDelta(t, 0.05/3, multi.AdjustedAlpha, 1e-15)
	assert.Greater(t, multi.ControlSize, base.ControlSize,
		"tighter alpha must demand more samples")
}

func TestSolveProportion_InvalidInputs(t *testing.T) {
	cases := []struct {
		name string
		in   Input
	}{
		{"baseline above one", Input{Baseline: 1.5, MDE: 0.02, Alpha: 0.05, Power: 0.8}},
		{"baseline zero", Input{Baseline: 0, MDE: 0.02, Alpha: 0.05, Power: 0.8}},
		{"zero effect", Input{Baseline: 0.2, MDE: 0, Alpha: 0.05, Power: 0.8}},
		{"target above one", Input{Baseline: 0.95, MDE: 0.1, Alpha: 0.05, Power: 0.8}},
		{"alpha out of range", Input{Baseline: 0.2, MDE: 0.02, Alpha: 1.5, Power: 0.8}},
		{"power out of range", Input{Baseline: 0.2, MDE: 0.02, Alpha: 0.05, Power: 0}},
		{"negative ratio", Input{Baseline: 0.2, MDE: 0.02, Alpha: 0.05, Power: 0.8, AllocationRatio: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SolveProportion(tc.in)
			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
		})
	}
}

func TestSolveContinuous_ReferenceScenario(t *testing.T) {
	res, err := SolveContinuous(Input{
		Metric:          MetricContinuous,
		Baseline:        100,
		MDE:             2.0,
		StdDeviation:    10.0,
		Alpha:           0.05,
		Power:           0.80,
		AllocationRatio: 1,
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.2, res.EffectSize, 1e-12)
	// TTestIndPower.solve_power for d=0.2 gives 393.4 per group; ceil 394.
	assert.Equal(t, 394, res.ControlSize)
	assert.Equal(t, 394, res.TreatmentSize)
}

func TestSolveContinuous_PowerAtSolvedSize(t *testing.T) {
	d := 0.35
	res, err := SolveContinuous(Input{MDE: 3.5, StdDeviation: 10, Alpha: 0.05, Power: 0.9, Metric: MetricContinuous})
	require.NoError(t, err)

	// The solved integer size must actually reach the target power, and
	// one fewer user must not.
	achieved := ttestPower(d, 0.05, float64(res.ControlSize), 1)
	assert.GreaterOrEqual(t, achieved, 0.9)
	below := ttestPower(d, 0.05, float64(res.ControlSize-1), 1)
	assert.Less(t, below, 0.9)
}

func TestSolveContinuous_InvalidInputs(t *testing.T) {
	cases := []struct {
		name string
		in   Input
	}{
		{"zero std deviation", Input{Metric: MetricContinuous, MDE: 2, StdDeviation: 0, Alpha: 0.05, Power: 0.8}},
		{"negative std deviation", Input{Metric: MetricContinuous, MDE: 2, StdDeviation: -3, Alpha: 0.05, Power: 0.8}},
		{"zero mean difference", Input{Metric: MetricContinuous, MDE: 0, StdDeviation: 10, Alpha: 0.05, Power: 0.8}},
		{"power out of range", Input{Metric: MetricContinuous, MDE: 2, StdDeviation: 10, Alpha: 0.05, Power: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SolveContinuous(tc.in)
			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
		})
	}
}

func TestSolve_Dispatch(t *testing.T) {
	_, err := Solve(Input{Metric: "bogus", Baseline: 0.1, MDE: 0.02, Alpha: 0.05, Power: 0.8})
	require.Error(t, err)

	prop, err := Solve(Input{Baseline: 0.1, MDE: 0.02, Alpha: 0.05, Power: 0.8})
	require.NoError(t, err)
	assert.Equal(t, 3835, prop.ControlSize)

	cont, err := Solve(Input{Metric: MetricContinuous, MDE: 2, StdDeviation: 10, Alpha: 0.05, Power: 0.8})
	require.NoError(t, err)
	assert.Equal(t, 394, cont.ControlSize)
}

func TestSampleSize_Monotonicity(t *testing.T) {
	prev := 1 << 30
	for _, mde := range []float64{0.01, 0.02, 0.03, 0.05, 0.08} {
		res, err := SolveProportion(Input{Baseline: 0.10, MDE: mde, Alpha: 0.05, Power: 0.80})
		require.NoError(t, err)
		assert.Positive(t, res.ControlSize)
		assert.LessOrEqual(t, res.ControlSize, prev,
			"larger effect must not need more samples (mde=%g)", mde)
		prev = res.ControlSize
	}

	prev = 0
	for _, pow := range []float64{0.70, 0.80, 0.90, 0.95} {
		res, err := SolveContinuous(Input{Metric: MetricContinuous, MDE: 2, StdDeviation: 10, Alpha: 0.05, Power: pow})
		require.NoError(t, err)
		assert.Positive(t, res.ControlSize)
		assert.GreaterOrEqual(t, res.ControlSize, prev,
			"higher power must not need fewer samples (power=%g)", pow)
		prev = res.ControlSize
	}
}

func TestResult_TotalSample(t *testing.T) {
	res := Result{ControlSize: 1000, TreatmentSize: 500}
	assert.Equal(t, 1500, res.TotalSample(1))
	assert.Equal(t, 2500, res.TotalSample(3))
	assert.Equal(t, 1500, res.TotalSample(0))
}
