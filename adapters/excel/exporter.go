package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lilyle-2211/game-analytics-dashboard/domain/report"
	"github.com/lilyle-2211/game-analytics-dashboard/internal/errors"
	"github.com/lilyle-2211/game-analytics-dashboard/ports"
)

// Exporter renders report tables into an xlsx workbook, one sheet per
// report.
type Exporter struct{}

// NewExporter creates an excel exporter
func NewExporter() ports.ReportExporter {
	return &Exporter{}
}

// Export writes each table to its own sheet and returns the workbook
// bytes.
func (e *Exporter) Export(tables []*report.Table) ([]byte, error) {
	if len(tables) == 0 {
		return nil, errors.InvalidInput("nothing to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return nil, errors.ExportError("creating header style", err)
	}

	for i, table := range tables {
		sheet := sheetName(table)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, errors.ExportError("renaming sheet", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, errors.ExportError("creating sheet "+sheet, err)
			}
		}
		if err := e.writeTable(f, sheet, table, headerStyle); err != nil {
			return nil, err
		}
	}

	runs := make([]string, 0, len(tables))
	for _, table := range tables {
		runs = append(runs, table.Run.String())
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Creator:     "game-analytics-dashboard",
		Description: "runs: " + strings.Join(runs, ", "),
	}); err != nil {
		return nil, errors.ExportError("writing workbook properties", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.ExportError("serializing workbook", err)
	}
	return buf.Bytes(), nil
}

func (e *Exporter) writeTable(f *excelize.File, sheet string, table *report.Table, headerStyle int) error {
	for col, name := range table.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return errors.ExportError("addressing header cell", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return errors.ExportError("writing header", err)
		}
	}
	if len(table.Columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(table.Columns), 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return errors.ExportError("styling header", err)
		}
	}

	for r, row := range table.Rows {
		for c, name := range table.Columns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return errors.ExportError("addressing cell", err)
			}
			if err := f.SetCellValue(sheet, cell, cellValue(row[name])); err != nil {
				return errors.ExportError("writing cell", err)
			}
		}
	}
	return nil
}

// cellValue flattens driver types excelize does not take directly
func cellValue(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return ""
	case time.Time:
		return t.Format("2006-01-02")
	case []byte:
		return string(t)
	default:
		return v
	}
}

// sheetName derives a valid sheet name from the report key; excel caps
// names at 31 characters.
func sheetName(table *report.Table) string {
	name := table.Report.String()
	if name == "" {
		name = fmt.Sprintf("report_%d", time.Now().Unix())
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
