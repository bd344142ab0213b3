package reports

import (
	"fmt"
	"time"

	"github.com/lilyle-2211/game-analytics-dashboard/domain/core"
	"github.com/lilyle-2211/game-analytics-dashboard/domain/report"
	"github.com/lilyle-2211/game-analytics-dashboard/internal/errors"
)

// Report keys
const (
	KeyPlayerDistribution   core.ReportKey = "player_distribution"
	KeyDailyEngagement      core.ReportKey = "daily_engagement"
	KeyDailyReturnRate      core.ReportKey = "daily_return_rate"
	KeyTwoWeekRetention     core.ReportKey = "two_week_retention"
	KeyProgressionMilestone core.ReportKey = "progression_milestone"
	KeyRevenueBySource      core.ReportKey = "revenue_by_source"
	KeyAnomalyTransactions  core.ReportKey = "anomaly_transactions"
	KeyRevenueSegmentation  core.ReportKey = "revenue_segmentation"
	KeyRetentionRate        core.ReportKey = "retention_rate"
)

// OfficialLaunchDate is the US launch; the soft-launch window before it
// is reported separately.
var OfficialLaunchDate = time.Date(2022, 6, 6, 0, 0, 0, 0, time.UTC)

// EarliestInstallDate bounds install-date scans; records before it are
// test devices.
var EarliestInstallDate = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func startDateParam(def time.Time) report.Param {
	return report.Param{
		Name:        "start_date",
		Kind:        report.ParamDate,
		Default:     def,
		Description: "first date included in the report window",
	}
}

var launchDateParam = report.Param{
	Name:        "launch_date",
	Kind:        report.ParamDate,
	Default:     OfficialLaunchDate,
	Description: "boundary between soft launch and official launch",
}

// Registry holds every report definition, indexed by key and by tab
type Registry struct {
	byKey map[core.ReportKey]report.Definition
	byTab map[core.TabKey][]report.Definition
	order []core.ReportKey
}

// NewRegistry builds the registry of all dashboard reports
func NewRegistry() *Registry {
	r := &Registry{
		byKey: make(map[core.ReportKey]report.Definition),
		byTab: make(map[core.TabKey][]report.Definition),
	}
	for _, def := range definitions() {
		r.register(def)
	}
	return r
}

func (r *Registry) register(def report.Definition) {
	if _, dup := r.byKey[def.Key]; dup {
		panic(fmt.Sprintf("duplicate report key %q", def.Key))
	}
	r.byKey[def.Key] = def
	r.byTab[def.Tab] = append(r.byTab[def.Tab], def)
	r.order = append(r.order, def.Key)
}

// Get returns the definition for a report key
func (r *Registry) Get(key core.ReportKey) (report.Definition, error) {
	def, ok := r.byKey[key]
	if !ok {
		return report.Definition{}, errors.NotFound(fmt.Sprintf("report %q", key))
	}
	return def, nil
}

// ByTab returns all reports of one dashboard tab, in registration order
func (r *Registry) ByTab(tab core.TabKey) ([]report.Definition, error) {
	defs, ok := r.byTab[tab]
	if !ok {
		return nil, errors.NotFound(fmt.Sprintf("tab %q", tab))
	}
	return defs, nil
}

// All returns every report definition in registration order
func (r *Registry) All() []report.Definition {
	out := make([]report.Definition, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.byKey[key])
	}
	return out
}

func definitions() []report.Definition {
	return []report.Definition{
		{
			Key:         KeyPlayerDistribution,
			Tab:         report.TabAcquisition,
			Title:       "Player Distribution",
			Description: "New players by launch phase, platform, country and channel per install week.",
			SQL:         PlayerDistributionQuery,
			Params:      []report.Param{startDateParam(EarliestInstallDate), launchDateParam},
		},
		{
			Key:         KeyDailyEngagement,
			Tab:         report.TabEngagement,
			Title:       "Daily Engagement",
			Description: "Daily active users and level throughput.",
			SQL:         DailyEngagementQuery,
			Params:      []report.Param{startDateParam(OfficialLaunchDate)},
		},
		{
			Key:         KeyDailyReturnRate,
			Tab:         report.TabEngagement,
			Title:       "Daily Return Rate",
			Description: "Share of each day's active users who come back the next day.",
			SQL:         DailyReturnRateQuery,
			Params:      []report.Param{startDateParam(OfficialLaunchDate)},
		},
		{
			Key:         KeyTwoWeekRetention,
			Tab:         report.TabEngagement,
			Title:       "Two-Week Retention",
			Description: "Players active in days 14-20 after install, by launch phase.",
			SQL:         TwoWeekRetentionQuery,
			Params:      []report.Param{startDateParam(EarliestInstallDate), launchDateParam},
		},
		{
			Key:         KeyProgressionMilestone,
			Tab:         report.TabEngagement,
			Title:       "Progression Milestones",
			Description: "How far players progress through the level curve.",
			SQL:         ProgressionMilestoneQuery,
			Params:      []report.Param{startDateParam(OfficialLaunchDate)},
		},
		{
			Key:         KeyRevenueBySource,
			Tab:         report.TabMonetization,
			Title:       "Revenue by Source",
			Description: "Daily IAP and ad revenue with ARPDAU and spender counts.",
			SQL:         RevenueBySourceQuery,
			Params:      []report.Param{startDateParam(OfficialLaunchDate)},
		},
		{
			Key:         KeyAnomalyTransactions,
			Tab:         report.TabMonetization,
			Title:       "Anomalous Transactions",
			Description: "Transactions above a multiple of the average for their revenue type.",
			SQL:         AnomalyTransactionsQuery,
			Params: []report.Param{
				startDateParam(OfficialLaunchDate),
				{Name: "threshold", Kind: report.ParamNumber, Default: float64(100), Description: "flag transactions above threshold x the type average"},
			},
		},
		{
			Key:         KeyRevenueSegmentation,
			Tab:         report.TabLTV,
			Title:       "Revenue Segmentation",
			Description: "Day 1-20 revenue per player bucketed into spender segments.",
			SQL:         RevenueSegmentationQuery,
			Params:      []report.Param{startDateParam(EarliestInstallDate)},
		},
		{
			Key:         KeyRetentionRate,
			Tab:         report.TabLTV,
			Title:       "Retention Rate",
			Description: "Day-N retention curve over the first 20 days.",
			SQL:         RetentionRateQuery,
			Params:      []report.Param{startDateParam(EarliestInstallDate)},
		},
	}
}
