package power

import (
	"math"

	"github.com/lilyle-2211/game-analytics-dashboard/internal/errors"
)

// Plan projects how long an experiment must run to fill its groups
// given the available daily traffic. All groups run for the same
// duration, so the slowest-filling group sets the length.
type Plan struct {
	Days        int     `json:"days"`
	Weeks       float64 `json:"weeks"`
	TotalSample int     `json:"total_sample"`

	ControlPerDay   float64 `json:"control_users_per_day"`
	TreatmentPerDay float64 `json:"treatment_users_per_day"`
}

// AllocationRatioFromShare converts a total treatment traffic share
// into the per-treatment-group allocation ratio the solvers expect.
// With share 0.75 and 3 treatment groups each group gets 25% of daily
// traffic against the control's 25%, a ratio of 1.
func AllocationRatioFromShare(treatmentShare float64, treatments int) (float64, error) {
	if treatments < 1 {
		return 0, errors.InvalidInputf("treatment group count must be a positive integer, got %d", treatments)
	}
	if treatmentShare <= 0 || treatmentShare >= 1 {
		return 0, errors.InvalidInputf("treatment share must be strictly between 0 and 1, got %g", treatmentShare)
	}
	perGroup := treatmentShare / float64(treatments)
	return perGroup / (1 - treatmentShare), nil
}

// PlanTraffic computes the experiment duration for solved group sizes.
// treatmentShare is the fraction of daily users allocated across all
// treatment groups combined.
func PlanTraffic(dailyUsers int, treatmentShare float64, treatments, control, perTreatment int) (Plan, error) {
	if dailyUsers < 1 {
		return Plan{}, errors.InvalidInputf("daily users must be a positive integer, got %d", dailyUsers)
	}
	if treatments < 1 {
		return Plan{}, errors.InvalidInputf("treatment group count must be a positive integer, got %d", treatments)
	}
	if treatmentShare <= 0 || treatmentShare >= 1 {
		return Plan{}, errors.InvalidInputf("treatment share must be strictly between 0 and 1, got %g", treatmentShare)
	}
	if control < 1 || perTreatment < 1 {
		return Plan{}, errors.InvalidInput("group sizes must be positive")
	}

	controlPerDay := float64(dailyUsers) * (1 - treatmentShare)
	perGroupPerDay := float64(dailyUsers) * treatmentShare / float64(treatments)

	daysControl := math.Ceil(float64(control) / controlPerDay)
	daysTreatment := math.Ceil(float64(perTreatment) / perGroupPerDay)
	days := math.Max(daysControl, daysTreatment)

	return Plan{
		Days:            int(days),
		Weeks:           days / 7,
		TotalSample:     control + perTreatment*treatments,
		ControlPerDay:   controlPerDay,
		TreatmentPerDay: perGroupPerDay,
	}, nil
}
