package ports

import (
	"github.com/lilyle-2211/game-analytics-dashboard/domain/report"
)

// ReportExporter renders report tables into a downloadable workbook
type ReportExporter interface {
	Export(tables []*report.Table) ([]byte, error)
}
