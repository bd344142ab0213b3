package reports

import (
	"strings"
	"testing"
	"time"

	"github.com/lilyle-2211/game-analytics-dashboard/domain/report"
	"github.com/lilyle-2211/game-analytics-dashboard/internal/errors"
)

func TestRegistry_CoversAllTabs(t *testing.T) {
	reg := NewRegistry()

	for _, tab := range report.Tabs() {
		defs, err := reg.ByTab(tab)
		if err != nil {
			t.Fatalf("tab %s: %v", tab, err)
		}
		if len(defs) == 0 {
			t.Errorf("tab %s has no reports", tab)
		}
	}
}

func TestRegistry_Get(t *testing.T) {
	reg := NewRegistry()

	def, err := reg.Get(KeyDailyEngagement)
	if err != nil {
		t.Fatal(err)
	}
	if def.Tab != report.TabEngagement {
		t.Errorf("daily_engagement should belong to engagement, got %s", def.Tab)
	}

	_, err = reg.Get("no_such_report")
	if err == nil {
		t.Fatal("expected NotFound for unknown key")
	}
	if errors.GetCode(err) != errors.CodeNotFound {
		t.Errorf("expected NOT_FOUND code, got %s", errors.GetCode(err))
	}
}

func TestRegistry_SQLDeclaresItsParams(t *testing.T) {
	reg := NewRegistry()

	for _, def := range reg.All() {
		if strings.TrimSpace(def.SQL) == "" {
			t.Errorf("report %s has empty SQL", def.Key)
		}
		for _, p := range def.Params {
			if !strings.Contains(def.SQL, ":"+p.Name) {
				t.Errorf("report %s declares param %q its SQL never binds", def.Key, p.Name)
			}
		}
	}
}

func TestDefinition_ResolveParams(t *testing.T) {
	reg := NewRegistry()
	def, err := reg.Get(KeyAnomalyTransactions)
	if err != nil {
		t.Fatal(err)
	}

	params, err := def.ResolveParams(map[string]string{
		"start_date": "2022-07-01",
		"threshold":  "50",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := params["threshold"].(float64); got != 50 {
		t.Errorf("threshold override not applied: %v", got)
	}
	want := time.Date(2022, 7, 1, 0, 0, 0, 0, time.UTC)
	if got := params["start_date"].(time.Time); !got.Equal(want) {
		t.Errorf("start_date override not applied: %v", got)
	}

	if _, err := def.ResolveParams(map[string]string{"bogus": "1"}); err == nil {
		t.Error("undeclared parameter should be rejected")
	}
	if _, err := def.ResolveParams(map[string]string{"start_date": "yesterday"}); err == nil {
		t.Error("malformed date should be rejected")
	}
}

func TestDefinition_DefaultParams(t *testing.T) {
	reg := NewRegistry()
	def, err := reg.Get(KeyTwoWeekRetention)
	if err != nil {
		t.Fatal(err)
	}

	params := def.DefaultParams()
	if params["launch_date"].(time.Time) != OfficialLaunchDate {
		t.Errorf("launch_date default should be the official launch, got %v", params["launch_date"])
	}
}
