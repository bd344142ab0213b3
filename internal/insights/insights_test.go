package insights

import (
	"context"
	"strings"
	"testing"

	"github.com/lilyle-2211/game-analytics-dashboard/domain/report"
	"github.com/lilyle-2211/game-analytics-dashboard/internal/testkit"
	"github.com/lilyle-2211/game-analytics-dashboard/reports"
)

func TestSummarize(t *testing.T) {
	table := &report.Table{
		Report:  "daily_engagement",
		Columns: []string{"daily_active_users"},
		Rows: []report.Row{
			{"daily_active_users": float64(100)},
			{"daily_active_users": float64(200)},
			{"daily_active_users": float64(300)},
			{"daily_active_users": int64(400)},
		},
	}

	h, err := Summarize(table, "daily_active_users")
	if err != nil {
		t.Fatal(err)
	}
	if h.Mean != 250 {
		t.Errorf("mean: want 250, got %g", h.Mean)
	}
	if h.Median != 250 {
		t.Errorf("median: want 250, got %g", h.Median)
	}
	if h.Latest != 400 {
		t.Errorf("latest: want 400, got %g", h.Latest)
	}
	if h.Samples != 4 {
		t.Errorf("samples: want 4, got %d", h.Samples)
	}
	if h.LatestVsMedianPct != 60 {
		t.Errorf("drift: want 60%%, got %g", h.LatestVsMedianPct)
	}
}

func TestSummarize_EmptySeries(t *testing.T) {
	table := &report.Table{Report: "daily_engagement", Columns: []string{"x"}}
	if _, err := Summarize(table, "x"); err == nil {
		t.Fatal("expected error for empty series")
	}
}

func TestAnalyst_ForTab(t *testing.T) {
	analyst := NewAnalyst(reports.NewRegistry(), testkit.NewFixtureExecutor())

	insight, err := analyst.ForTab(context.Background(), report.TabEngagement)
	if err != nil {
		t.Fatal(err)
	}
	if insight.NarrativeHTML == "" {
		t.Error("engagement tab should carry a narrative")
	}
	if !strings.Contains(insight.NarrativeHTML, "<") {
		t.Error("narrative should be rendered to HTML")
	}
	if len(insight.Highlights) != 2 {
		t.Fatalf("engagement has 2 headline series, got %d highlights", len(insight.Highlights))
	}
	for _, h := range insight.Highlights {
		if h.Samples == 0 {
			t.Errorf("highlight %s/%s has no samples", h.Report, h.Metric)
		}
	}
}

func TestAnalyst_ForTab_Unknown(t *testing.T) {
	analyst := NewAnalyst(reports.NewRegistry(), testkit.NewFixtureExecutor())
	if _, err := analyst.ForTab(context.Background(), "nope"); err == nil {
		t.Fatal("expected NotFound for unknown tab")
	}
}

func TestNarratives_CoverAllTabs(t *testing.T) {
	for _, tab := range report.Tabs() {
		if narratives[tab] == "" {
			t.Errorf("tab %s has no narrative", tab)
		}
	}
}
