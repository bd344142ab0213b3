package power

import (
	"math"

	"github.com/lilyle-2211/game-analytics-dashboard/internal/errors"
)

// Effect-size convention for proportion metrics: Cohen's h via the
// arcsine transform, the same convention statsmodels'
// proportion_effectsize uses. Documented here because the alternative
// (raw rate difference over pooled variance) yields slightly different
// sizes and the two are easy to mix up.

var dists = NewDistributions()

// BonferroniAlpha adjusts a significance level for comparing one
// control against treatments groups. With a single treatment the level
// is returned unchanged; the solvers themselves never see the group
// count.
func BonferroniAlpha(alpha float64, treatments int) (float64, error) {
	if treatments < 1 {
		return 0, errors.InvalidInputf("treatment group count must be a positive integer, got %d", treatments)
	}
	if alpha <= 0 || alpha >= 1 {
		return 0, errors.InvalidInputf("significance level must be strictly between 0 and 1, got %g", alpha)
	}
	if treatments == 1 {
		return alpha, nil
	}
	return alpha / float64(treatments), nil
}

// ProportionEffectSize computes Cohen's h for two proportions
func ProportionEffectSize(p2, p1 float64) float64 {
	return 2*math.Asin(math.Sqrt(p2)) - 2*math.Asin(math.Sqrt(p1))
}

// Solve dispatches to the solver matching the input's metric kind
func Solve(in Input) (Result, error) {
	switch in.Metric {
	case MetricContinuous:
		return SolveContinuous(in)
	case MetricProportion, "":
		return SolveProportion(in)
	default:
		return Result{}, errors.InvalidInputf("unknown metric kind %q", in.Metric)
	}
}

// SolveProportion computes minimum per-group sample sizes for a
// two-sided two-proportion z-test at the input's significance level and
// power, honoring the allocation ratio. The baseline and the
// MDE-resolved target rate must both lie strictly inside (0,1) and must
// differ.
func SolveProportion(in Input) (Result, error) {
	in = in.normalized()
	if err := validateShared(in); err != nil {
		return Result{}, err
	}

	p1 := in.Baseline
	if p1 <= 0 || p1 >= 1 {
		return Result{}, errors.InvalidInputf("baseline rate must be strictly between 0 and 1, got %g", p1)
	}
	p2 := p1 + in.MDE
	if in.RelativeMDE {
		p2 = p1 * (1 + in.MDE)
	}
	if p2 <= 0 || p2 >= 1 {
		return Result{}, errors.InvalidInputf("target rate must be strictly between 0 and 1, got %g", p2)
	}
	if p2 == p1 {
		return Result{}, errors.InvalidInput("target rate equals baseline rate: zero effect has no finite sample size")
	}

	alpha, err := BonferroniAlpha(in.Alpha, in.Treatments)
	if err != nil {
		return Result{}, err
	}

	h := ProportionEffectSize(p2, p1)

	// Two-sided normal solve: the test statistic is N(h*sqrt(nEff), 1)
	// with nEff = n1*n2/(n1+n2), so nEff = ((z_{1-a/2}+z_{pow})/h)^2.
	zAlpha := dists.NormalQuantile(1 - alpha/2)
	zPower := dists.NormalQuantile(in.Power)
	nEff := math.Pow((zAlpha+zPower)/h, 2)

	r := in.AllocationRatio
	controlF := nEff * (1 + r) / r
	control := int(math.Ceil(controlF))
	treatment := int(math.Ceil(float64(control) * r))

	return Result{
		ControlSize:   maxInt(control, 1),
		TreatmentSize: maxInt(treatment, 1),
		AdjustedAlpha: alpha,
		EffectSize:    h,
	}, nil
}

// SolveContinuous computes minimum per-group sample sizes for a
// two-sided two-sample t-test. The standardized effect is Cohen's d,
// the mean difference divided by the standard deviation.
func SolveContinuous(in Input) (Result, error) {
	in = in.normalized()
	if err := validateShared(in); err != nil {
		return Result{}, err
	}
	if in.StdDeviation <= 0 {
		return Result{}, errors.InvalidInputf("standard deviation must be positive, got %g", in.StdDeviation)
	}
	if in.MDE == 0 {
		return Result{}, errors.InvalidInput("mean difference of zero has no finite sample size")
	}

	alpha, err := BonferroniAlpha(in.Alpha, in.Treatments)
	if err != nil {
		return Result{}, err
	}

	d := in.MDE / in.StdDeviation
	r := in.AllocationRatio

	controlF, err := solveTTestSize(math.Abs(d), alpha, in.Power, r)
	if err != nil {
		return Result{}, err
	}
	control := int(math.Ceil(controlF))
	treatment := int(math.Ceil(float64(control) * r))

	return Result{
		ControlSize:   maxInt(control, 1),
		TreatmentSize: maxInt(treatment, 1),
		AdjustedAlpha: alpha,
		EffectSize:    d,
	}, nil
}

// ttestPower computes the power of a two-sided two-sample t-test with
// control size n1 and treatment size n1*ratio, using the noncentral t
// distribution.
func ttestPower(d, alpha, n1, ratio float64) float64 {
	n2 := n1 * ratio
	df := n1 + n2 - 2
	if df < 1 {
		return 0
	}
	nc := d * math.Sqrt(n1*n2/(n1+n2))
	tCrit := dists.TQuantile(1-alpha/2, df)
	// Both rejection tails; the lower one is negligible but cheap to keep.
	return 1 - dists.NoncentralTCDF(tCrit, df, nc) + dists.NoncentralTCDF(-tCrit, df, nc)
}

// solveTTestSize finds the smallest real control-group size whose
// two-sample t-test power reaches the target, by bisection. This
// mirrors how statsmodels' solve_power root-finds on nobs1.
func solveTTestSize(d, alpha, target, ratio float64) (float64, error) {
	lo, hi := 2.0, 2.0
	const maxN = 1e9
	for ttestPower(d, alpha, hi, ratio) < target {
		hi *= 2
		if hi > maxN {
			return 0, errors.InvalidInput("effect size too small: required sample size exceeds solver bounds")
		}
	}
	for i := 0; i < 200 && hi-lo > 1e-8*hi; i++ {
		mid := (lo + hi) / 2
		if ttestPower(d, alpha, mid, ratio) < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi, nil
}

func validateShared(in Input) error {
	if in.Alpha <= 0 || in.Alpha >= 1 {
		return errors.InvalidInputf("significance level must be strictly between 0 and 1, got %g", in.Alpha)
	}
	if in.Power <= 0 || in.Power >= 1 {
		return errors.InvalidInputf("statistical power must be strictly between 0 and 1, got %g", in.Power)
	}
	if in.AllocationRatio <= 0 {
		return errors.InvalidInputf("allocation ratio must be positive, got %g", in.AllocationRatio)
	}
	if in.Treatments < 1 {
		return errors.InvalidInputf("treatment group count must be a positive integer, got %d", in.Treatments)
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
