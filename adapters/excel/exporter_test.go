package excel

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lilyle-2211/game-analytics-dashboard/domain/core"
	"github.com/lilyle-2211/game-analytics-dashboard/domain/report"
)

func sampleTable() *report.Table {
	return &report.Table{
		Report:  "daily_engagement",
		Columns: []string{"date", "daily_active_users"},
		Rows: []report.Row{
			{"date": time.Date(2022, 6, 6, 0, 0, 0, 0, time.UTC), "daily_active_users": int64(5200)},
			{"date": time.Date(2022, 6, 7, 0, 0, 0, 0, time.UTC), "daily_active_users": int64(5350)},
		},
	}
}

func TestExport_RoundTrip(t *testing.T) {
	data, err := NewExporter().Export([]*report.Table{sampleTable()})
	if err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("exported bytes are not a readable workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("daily_engagement")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("want header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "date" || rows[0][1] != "daily_active_users" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "2022-06-06" {
		t.Errorf("date cell should be formatted YYYY-MM-DD, got %q", rows[1][0])
	}
}

func TestExport_MultipleSheets(t *testing.T) {
	second := sampleTable()
	second.Report = "daily_return_rate"

	data, err := NewExporter().Export([]*report.Table{sampleTable(), second})
	if err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("want 2 sheets, got %v", sheets)
	}
}

func TestExport_CarriesRunID(t *testing.T) {
	table := sampleTable()
	table.Run = core.CalculationID(core.NewID())

	data, err := NewExporter().Export([]*report.Table{table})
	if err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	props, err := f.GetDocProps()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(props.Description, table.Run.String()) {
		t.Errorf("workbook properties should name run %s, got %q", table.Run, props.Description)
	}
}

func TestExport_Empty(t *testing.T) {
	if _, err := NewExporter().Export(nil); err == nil {
		t.Fatal("expected error for empty export")
	}
}
