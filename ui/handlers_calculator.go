package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lilyle-2211/game-analytics-dashboard/domain/power"
	"github.com/lilyle-2211/game-analytics-dashboard/internal/errors"
)

// sampleSizeRequest carries the calculator parameters. Traffic fields
// are optional; when daily_users is present the response also projects
// the test duration.
type sampleSizeRequest struct {
	power.Input

	DailyUsers     int     `json:"daily_users,omitempty"`
	TreatmentShare float64 `json:"treatment_share,omitempty"`
}

type sampleSizeResponse struct {
	power.Result
	TotalSample int         `json:"total_sample"`
	Plan        *power.Plan `json:"plan,omitempty"`
}

func (s *Server) handleSampleSize(c *gin.Context) {
	var req sampleSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput("malformed calculator request: "+err.Error()))
		return
	}

	// A traffic share can stand in for an explicit allocation ratio.
	if req.AllocationRatio == 0 && req.TreatmentShare != 0 {
		treatments := req.Treatments
		if treatments == 0 {
			treatments = 1
		}
		ratio, err := power.AllocationRatioFromShare(req.TreatmentShare, treatments)
		if err != nil {
			respondError(c, err)
			return
		}
		req.AllocationRatio = ratio
	}

	result, err := power.Solve(req.Input)
	if err != nil {
		respondError(c, err)
		return
	}

	treatments := req.Treatments
	if treatments == 0 {
		treatments = 1
	}
	resp := sampleSizeResponse{
		Result:      result,
		TotalSample: result.TotalSample(treatments),
	}

	if req.DailyUsers > 0 {
		share := req.TreatmentShare
		if share == 0 {
			// Back out the share from the ratio: r = share/(k(1-share))
			r := req.AllocationRatio
			if r == 0 {
				r = 1
			}
			share = r * float64(treatments) / (1 + r*float64(treatments))
		}
		plan, err := power.PlanTraffic(req.DailyUsers, share, treatments, result.ControlSize, result.TreatmentSize)
		if err != nil {
			respondError(c, err)
			return
		}
		resp.Plan = &plan
	}

	c.JSON(http.StatusOK, resp)
}
