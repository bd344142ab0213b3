package warehouse

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/semaphore"

	"github.com/lilyle-2211/game-analytics-dashboard/domain/core"
	"github.com/lilyle-2211/game-analytics-dashboard/domain/report"
	"github.com/lilyle-2211/game-analytics-dashboard/internal/errors"
	"github.com/lilyle-2211/game-analytics-dashboard/ports"
)

// Config tunes the warehouse executor
type Config struct {
	// MaxConcurrentQueries caps in-flight warehouse queries so a burst
	// of dashboard loads cannot exhaust the connection pool.
	MaxConcurrentQueries int64
	QueryTimeout         time.Duration
}

// DefaultConfig returns sensible executor defaults
func DefaultConfig() Config {
	return Config{
		MaxConcurrentQueries: 8,
		QueryTimeout:         30 * time.Second,
	}
}

// Executor runs report SQL against a Postgres warehouse
type Executor struct {
	db  *sqlx.DB
	cfg Config
	sem *semaphore.Weighted
}

// NewExecutor creates a warehouse executor on an open connection
func NewExecutor(db *sqlx.DB, cfg Config) ports.QueryExecutor {
	if cfg.MaxConcurrentQueries < 1 {
		cfg.MaxConcurrentQueries = DefaultConfig().MaxConcurrentQueries
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = DefaultConfig().QueryTimeout
	}
	return &Executor{
		db:  db,
		cfg: cfg,
		sem: semaphore.NewWeighted(cfg.MaxConcurrentQueries),
	}
}

// Execute binds the report's named parameters and runs its SQL,
// returning rows keyed by column name.
func (e *Executor) Execute(ctx context.Context, def report.Definition, params map[string]interface{}) (*report.Table, error) {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return nil, errors.Wrap(err, "waiting for warehouse query slot")
	}
	defer e.sem.Release(1)

	ctx, cancel := context.WithTimeout(ctx, e.cfg.QueryTimeout)
	defer cancel()

	query, args, err := sqlx.Named(def.SQL, params)
	if err != nil {
		return nil, errors.Wrapf(err, "binding parameters for report %s", def.Key)
	}
	query = e.db.Rebind(query)

	started := core.Now()
	rows, err := e.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, errors.WarehouseError("report "+def.Key.String()+" failed", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.WarehouseError("reading columns for report "+def.Key.String(), err)
	}

	table := &report.Table{
		Report:     def.Key,
		Columns:    cols,
		Rows:       []report.Row{},
		Run:        core.CalculationID(core.NewID()),
		ExecutedAt: started,
	}
	for rows.Next() {
		row := report.Row{}
		if err := rows.MapScan(row); err != nil {
			return nil, errors.WarehouseError("scanning row for report "+def.Key.String(), err)
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WarehouseError("iterating rows for report "+def.Key.String(), err)
	}

	table.Elapsed = time.Since(started)
	log.Printf("[Warehouse] %s run %s: %d rows in %s", def.Key, table.Run, len(table.Rows), table.Elapsed.Round(time.Millisecond))
	return table, nil
}
