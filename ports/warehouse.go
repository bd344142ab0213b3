package ports

import (
	"context"

	"github.com/lilyle-2211/game-analytics-dashboard/domain/report"
)

// QueryExecutor runs a parameterized report against the warehouse and
// returns its rows as column-name to value mappings.
type QueryExecutor interface {
	Execute(ctx context.Context, def report.Definition, params map[string]interface{}) (*report.Table, error)
}
