package testkit

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/lilyle-2211/game-analytics-dashboard/domain/core"
	"github.com/lilyle-2211/game-analytics-dashboard/domain/report"
	"github.com/lilyle-2211/game-analytics-dashboard/internal/errors"
	"github.com/lilyle-2211/game-analytics-dashboard/ports"
	"github.com/lilyle-2211/game-analytics-dashboard/reports"
)

// FixtureExecutor serves synthetic report tables without a warehouse.
// It backs demo mode and the handler/insight tests. Generation is
// seeded so runs are reproducible.
type FixtureExecutor struct {
	seed int64
	days int
}

// NewFixtureExecutor creates a fixture executor with a fixed seed
func NewFixtureExecutor() *FixtureExecutor {
	return &FixtureExecutor{seed: 42, days: 60}
}

// Execute synthesizes a plausible table for the requested report
func (f *FixtureExecutor) Execute(_ context.Context, def report.Definition, params map[string]interface{}) (*report.Table, error) {
	rng := rand.New(rand.NewSource(f.seed))

	var table *report.Table
	switch def.Key {
	case reports.KeyDailyEngagement:
		table = f.dailyEngagement(rng)
	case reports.KeyDailyReturnRate:
		table = f.dailyReturnRate(rng)
	case reports.KeyTwoWeekRetention:
		table = f.twoWeekRetention(rng)
	case reports.KeyProgressionMilestone:
		table = f.progressionMilestones(rng)
	case reports.KeyRevenueBySource:
		table = f.revenueBySource(rng)
	case reports.KeyAnomalyTransactions:
		table = f.anomalyTransactions(rng, params)
	case reports.KeyRevenueSegmentation:
		table = f.revenueSegmentation(rng)
	case reports.KeyRetentionRate:
		table = f.retentionRate(rng)
	case reports.KeyPlayerDistribution:
		table = f.playerDistribution(rng)
	default:
		return nil, errors.NotFound(fmt.Sprintf("fixture for report %q", def.Key))
	}

	table.Report = def.Key
	table.Run = core.CalculationID(core.NewID())
	table.ExecutedAt = core.Now()
	return table, nil
}

var _ ports.QueryExecutor = (*FixtureExecutor)(nil)

func (f *FixtureExecutor) startDate() time.Time {
	return reports.OfficialLaunchDate
}

func (f *FixtureExecutor) dailyEngagement(rng *rand.Rand) *report.Table {
	t := &report.Table{
		Columns: []string{"date", "daily_active_users", "total_levels_played", "total_levels_completed"},
	}
	for i := 0; i < f.days; i++ {
		// Slow DAU growth with weekly seasonality
		dau := int64(5000 + 40*i + 300*int(math.Sin(float64(i)*2*math.Pi/7)) + rng.Intn(200))
		played := dau * int64(6+rng.Intn(3))
		t.Rows = append(t.Rows, report.Row{
			"date":                   f.startDate().AddDate(0, 0, i),
			"daily_active_users":     dau,
			"total_levels_played":    played,
			"total_levels_completed": int64(float64(played) * (0.55 + 0.1*rng.Float64())),
		})
	}
	return t
}

func (f *FixtureExecutor) dailyReturnRate(rng *rand.Rand) *report.Table {
	t := &report.Table{
		Columns: []string{"date", "total_active_users", "returned_next_day", "daily_return_rate_pct"},
	}
	for i := 0; i < f.days; i++ {
		active := int64(5000 + 40*i + rng.Intn(300))
		rate := 28 + 6*rng.Float64()
		t.Rows = append(t.Rows, report.Row{
			"date":                  f.startDate().AddDate(0, 0, i),
			"total_active_users":    active,
			"returned_next_day":     int64(float64(active) * rate / 100),
			"daily_return_rate_pct": math.Round(rate*100) / 100,
		})
	}
	return t
}

func (f *FixtureExecutor) twoWeekRetention(rng *rand.Rand) *report.Table {
	return &report.Table{
		Columns: []string{"launch_phase", "cohort_size", "retained_users", "retention_pct"},
		Rows: []report.Row{
			{"launch_phase": "Official Launch", "cohort_size": int64(48200), "retained_users": int64(6266), "retention_pct": 13.0},
			{"launch_phase": "Soft Launch", "cohort_size": int64(9100), "retained_users": int64(1544), "retention_pct": 16.97},
		},
	}
}

func (f *FixtureExecutor) progressionMilestones(rng *rand.Rand) *report.Table {
	t := &report.Table{Columns: []string{"milestone", "players"}}
	buckets := []struct {
		name  string
		share float64
	}{
		{"0-4", 0.34}, {"5-19", 0.27}, {"20-49", 0.18},
		{"50-99", 0.11}, {"100-199", 0.06}, {"200+", 0.04},
	}
	total := 57000.0
	for _, b := range buckets {
		t.Rows = append(t.Rows, report.Row{
			"milestone": b.name,
			"players":   int64(total*b.share) + int64(rng.Intn(100)),
		})
	}
	return t
}

func (f *FixtureExecutor) revenueBySource(rng *rand.Rand) *report.Table {
	t := &report.Table{
		Columns: []string{"revenue_date", "iap_revenue", "ad_revenue", "total_revenue", "total_spenders", "dau", "total_arpdau"},
	}
	for i := 0; i < f.days; i++ {
		dau := float64(5000 + 40*i)
		iap := dau * (0.09 + 0.03*rng.Float64())
		ad := dau * (0.05 + 0.01*rng.Float64())
		t.Rows = append(t.Rows, report.Row{
			"revenue_date":   f.startDate().AddDate(0, 0, i),
			"iap_revenue":    math.Round(iap*100) / 100,
			"ad_revenue":     math.Round(ad*100) / 100,
			"total_revenue":  math.Round((iap+ad)*100) / 100,
			"total_spenders": int64(dau * 0.02),
			"dau":            int64(dau),
			"total_arpdau":   math.Round((iap+ad)/dau*10000) / 10000,
		})
	}
	return t
}

func (f *FixtureExecutor) anomalyTransactions(rng *rand.Rand, params map[string]interface{}) *report.Table {
	threshold := 100.0
	if v, ok := params["threshold"].(float64); ok {
		threshold = v
	}
	t := &report.Table{
		Columns: []string{"event_date", "user_id", "revenue_type", "transaction_value", "avg_transaction", "times_avg"},
	}
	avg := 1.8
	// A handful of whales far above the average; how many clear the bar
	// depends on the threshold parameter.
	for _, mult := range []float64{420, 280, 175, 120, 95, 60} {
		if mult < threshold {
			continue
		}
		t.Rows = append(t.Rows, report.Row{
			"event_date":        f.startDate().AddDate(0, 0, rng.Intn(f.days)),
			"user_id":           int64(20000 + rng.Intn(40000)),
			"revenue_type":      "iap",
			"transaction_value": math.Round(avg*mult*100) / 100,
			"avg_transaction":   avg,
			"times_avg":         mult,
		})
	}
	return t
}

func (f *FixtureExecutor) revenueSegmentation(rng *rand.Rand) *report.Table {
	return &report.Table{
		Columns: []string{"segment", "players", "segment_revenue", "avg_revenue_per_player"},
		Rows: []report.Row{
			{"segment": "whale", "players": int64(480), "segment_revenue": 31200.0, "avg_revenue_per_player": 65.0},
			{"segment": "dolphin", "players": int64(2150), "segment_revenue": 8600.0, "avg_revenue_per_player": 4.0},
			{"segment": "minnow", "players": int64(4900), "segment_revenue": 2450.0, "avg_revenue_per_player": 0.5},
			{"segment": "non-spender", "players": int64(49470), "segment_revenue": 0.0, "avg_revenue_per_player": 0.0},
		},
	}
}

func (f *FixtureExecutor) retentionRate(rng *rand.Rand) *report.Table {
	t := &report.Table{Columns: []string{"day_n", "cohort_size", "retained_users", "retention_pct"}}
	cohort := int64(57000)
	for day := 1; day <= 20; day++ {
		// Power-law decay typical of casual titles
		pct := 42.0 * math.Pow(float64(day), -0.55)
		t.Rows = append(t.Rows, report.Row{
			"day_n":          int64(day),
			"cohort_size":    cohort,
			"retained_users": int64(float64(cohort) * pct / 100),
			"retention_pct":  math.Round(pct*100) / 100,
		})
	}
	return t
}

func (f *FixtureExecutor) playerDistribution(rng *rand.Rand) *report.Table {
	t := &report.Table{
		Columns: []string{"launch_phase", "platform", "country", "channel", "install_week", "players"},
	}
	platforms := []string{"ios", "android"}
	channels := []string{"organic", "paid"}
	for week := 0; week < 8; week++ {
		for _, platform := range platforms {
			for _, channel := range channels {
				t.Rows = append(t.Rows, report.Row{
					"launch_phase": "Official Launch",
					"platform":     platform,
					"country":      "US",
					"channel":      channel,
					"install_week": f.startDate().AddDate(0, 0, 7*week),
					"players":      int64(800 + rng.Intn(1200)),
				})
			}
		}
	}
	return t
}
