package power

// MetricKind selects which solver applies to a calculation
type MetricKind string

const (
	// MetricProportion sizes a two-proportion z-test (conversion style metrics)
	MetricProportion MetricKind = "proportion"
	// MetricContinuous sizes a two-sample t-test (mean style metrics)
	MetricContinuous MetricKind = "continuous"
)

// Input holds the parameters of one sample-size calculation. It is a
// transient value object: nothing outlives the call that consumes it.
type Input struct {
	Metric MetricKind `json:"metric_kind"`

	// Baseline is the control-group rate for proportion metrics
	// (strictly inside (0,1)) or the current mean for continuous ones.
	Baseline float64 `json:"baseline"`

	// MDE is the minimum detectable effect. For proportion metrics it
	// is an absolute change in rate unless RelativeMDE is set, in which
	// case it is a fraction of Baseline. For continuous metrics it is
	// the absolute change in mean.
	MDE         float64 `json:"minimum_detectable_effect"`
	RelativeMDE bool    `json:"relative_mde,omitempty"`

	// StdDeviation is required and positive for continuous metrics.
	StdDeviation float64 `json:"std_deviation,omitempty"`

	Alpha float64 `json:"significance_level"`
	Power float64 `json:"statistical_power"`

	// AllocationRatio is treatment size over control size. Zero means 1.
	AllocationRatio float64 `json:"allocation_ratio"`

	// Treatments is the number of treatment groups compared against one
	// control. Values above 1 trigger the Bonferroni adjustment before
	// the solver runs. Zero means 1.
	Treatments int `json:"treatment_groups"`
}

// Result is the outcome of a sample-size calculation. Derived, never
// mutated after construction.
type Result struct {
	ControlSize   int     `json:"required_sample_size_control"`
	TreatmentSize int     `json:"required_sample_size_treatment"`
	AdjustedAlpha float64 `json:"adjusted_significance_level"`

	// EffectSize is the standardized effect the solver worked with:
	// Cohen's h for proportion metrics, Cohen's d for continuous ones.
	EffectSize float64 `json:"effect_size"`
}

// TotalSample returns the total users needed across control and all
// treatment groups.
func (r Result) TotalSample(treatments int) int {
	if treatments < 1 {
		treatments = 1
	}
	return r.ControlSize + r.TreatmentSize*treatments
}

// normalized returns a copy with zero-value defaults resolved
func (in Input) normalized() Input {
	if in.AllocationRatio == 0 {
		in.AllocationRatio = 1
	}
	if in.Treatments == 0 {
		in.Treatments = 1
	}
	return in
}
