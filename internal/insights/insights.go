package insights

import (
	"context"
	"math"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/montanaflynn/stats"

	"github.com/lilyle-2211/game-analytics-dashboard/domain/core"
	"github.com/lilyle-2211/game-analytics-dashboard/domain/report"
	"github.com/lilyle-2211/game-analytics-dashboard/internal/errors"
	"github.com/lilyle-2211/game-analytics-dashboard/ports"
	"github.com/lilyle-2211/game-analytics-dashboard/reports"
)

// Highlight summarizes one report's headline metric series
type Highlight struct {
	Report core.ReportKey `json:"report"`
	Metric string         `json:"metric"`

	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	P90     float64 `json:"p90"`
	Latest  float64 `json:"latest"`
	Samples int     `json:"samples"`

	// LatestVsMedianPct is how far the latest value sits from the
	// median, as a percentage. A quick drift signal for the analyst.
	LatestVsMedianPct float64 `json:"latest_vs_median_pct"`
}

// TabInsight bundles the analyst narrative and computed highlights for
// one dashboard tab.
type TabInsight struct {
	Tab           core.TabKey `json:"tab"`
	NarrativeHTML string      `json:"narrative_html"`
	Highlights    []Highlight `json:"highlights"`
}

// metricColumns names the headline series per report. Reports absent
// here are tabular breakdowns with no single trend to summarize.
var metricColumns = map[core.ReportKey]string{
	reports.KeyDailyEngagement: "daily_active_users",
	reports.KeyDailyReturnRate: "daily_return_rate_pct",
	reports.KeyRevenueBySource: "total_arpdau",
	reports.KeyRetentionRate:   "retention_pct",
}

// Analyst produces tab insights by running the tab's reports and
// summarizing their headline series.
type Analyst struct {
	registry *reports.Registry
	executor ports.QueryExecutor
}

// NewAnalyst creates an insight analyst
func NewAnalyst(registry *reports.Registry, executor ports.QueryExecutor) *Analyst {
	return &Analyst{registry: registry, executor: executor}
}

// ForTab builds the insight block for one dashboard tab
func (a *Analyst) ForTab(ctx context.Context, tab core.TabKey) (*TabInsight, error) {
	defs, err := a.registry.ByTab(tab)
	if err != nil {
		return nil, err
	}

	insight := &TabInsight{
		Tab:           tab,
		NarrativeHTML: renderNarrative(tab),
	}
	for _, def := range defs {
		metric, ok := metricColumns[def.Key]
		if !ok {
			continue
		}
		table, err := a.executor.Execute(ctx, def, def.DefaultParams())
		if err != nil {
			return nil, errors.Wrapf(err, "computing highlights for %s", def.Key)
		}
		h, err := Summarize(table, metric)
		if err != nil {
			return nil, err
		}
		insight.Highlights = append(insight.Highlights, h)
	}
	return insight, nil
}

// Summarize computes the highlight block for one metric column
func Summarize(table *report.Table, metric string) (Highlight, error) {
	series := table.FloatColumn(metric)
	if len(series) == 0 {
		return Highlight{}, errors.InvalidInputf("report %s has no numeric values in column %q", table.Report, metric)
	}

	mean, err := stats.Mean(series)
	if err != nil {
		return Highlight{}, errors.Wrap(err, "computing mean")
	}
	median, err := stats.Median(series)
	if err != nil {
		return Highlight{}, errors.Wrap(err, "computing median")
	}
	p90, err := stats.Percentile(series, 90)
	if err != nil {
		// Percentile needs more than one sample
		p90 = series[len(series)-1]
	}

	latest := series[len(series)-1]
	drift := 0.0
	if median != 0 {
		drift = (latest - median) / math.Abs(median) * 100
	}

	return Highlight{
		Report:            table.Report,
		Metric:            metric,
		Mean:              mean,
		Median:            median,
		P90:               p90,
		Latest:            latest,
		Samples:           len(series),
		LatestVsMedianPct: drift,
	}, nil
}

func renderNarrative(tab core.TabKey) string {
	md, ok := narratives[tab]
	if !ok {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(md), p, renderer))
}

// Analyst commentary per tab. Authored in markdown so it can carry
// emphasis and lists without the handlers knowing about formatting.
var narratives = map[core.TabKey]string{
	report.TabAcquisition: `**Acquisition** tracks new players from install records.
Soft-launch installs are reported separately so paid-channel spikes after the
official launch are not diluted by the test market.`,

	report.TabEngagement: `**Engagement** watches DAU, level throughput and return behavior.

- Daily return rate is the earliest signal when a content update lands badly.
- Two-week retention splits by launch phase: the soft-launch cohort skews
  engaged and should not be blended into launch KPIs.`,

	report.TabMonetization: `**Monetization** splits revenue by source (IAP vs ads) and normalizes
by DAU. The anomaly report flags transactions far above the average for their
type; verify flagged rows against the payment provider before acting on
revenue trends.`,

	report.TabLTV: `**LTV** segments players by their first 20 days of revenue. Whales are a
tiny fraction of installs but dominate revenue, so average revenue per player
is only meaningful within a segment, never across the whole population.`,
}
