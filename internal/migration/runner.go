package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/lilyle-2211/game-analytics-dashboard/internal/errors"
)

// Migrator defines the interface for schema migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// Runner creates the warehouse schema the dashboard reports read
type Runner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *Runner {
	return &Runner{version: "1.0.0"}
}

// Version returns the migration version
func (r *Runner) Version() string {
	return r.version
}

// Run executes all schema migrations in order
func (r *Runner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createPlayersTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create players table")
	}
	if err := r.createActivityTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create activity table")
	}
	if err := r.createRevenuesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create revenues table")
	}
	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}
	return nil
}

func (r *Runner) createPlayersTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS players (
			user_id         BIGINT PRIMARY KEY,
			install_date    TIMESTAMPTZ,
			platform        TEXT,
			channel_country TEXT,
			age             INT
		)`)
	return err
}

func (r *Runner) createActivityTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS activity (
			user_id          BIGINT,
			date             DATE,
			levels_played    INT DEFAULT 0,
			levels_completed INT DEFAULT 0,
			PRIMARY KEY (user_id, date)
		)`)
	return err
}

func (r *Runner) createRevenuesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS revenues (
			id                BIGSERIAL PRIMARY KEY,
			user_id           BIGINT,
			event_date        DATE,
			revenue_type      TEXT CHECK (revenue_type IN ('iap', 'ad')),
			transaction_value DOUBLE PRECISION
		)`)
	return err
}

func (r *Runner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_activity_date ON activity (date)`,
		`CREATE INDEX IF NOT EXISTS idx_players_install_date ON players (install_date)`,
		`CREATE INDEX IF NOT EXISTS idx_revenues_event_date ON revenues (event_date)`,
		`CREATE INDEX IF NOT EXISTS idx_revenues_user ON revenues (user_id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
