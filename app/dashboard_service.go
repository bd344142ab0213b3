package app

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lilyle-2211/game-analytics-dashboard/domain/core"
	"github.com/lilyle-2211/game-analytics-dashboard/domain/report"
	"github.com/lilyle-2211/game-analytics-dashboard/internal/errors"
	"github.com/lilyle-2211/game-analytics-dashboard/ports"
	"github.com/lilyle-2211/game-analytics-dashboard/reports"
)

// DashboardService runs registered reports through the query executor.
// It is stateless; every call is independent.
type DashboardService struct {
	registry *reports.Registry
	executor ports.QueryExecutor
}

// NewDashboardService creates the report-running service
func NewDashboardService(registry *reports.Registry, executor ports.QueryExecutor) *DashboardService {
	return &DashboardService{registry: registry, executor: executor}
}

// Registry exposes the report definitions for listing endpoints
func (s *DashboardService) Registry() *reports.Registry {
	return s.registry
}

// RunReport executes one report with string parameter overrides from
// the request layer.
func (s *DashboardService) RunReport(ctx context.Context, key core.ReportKey, overrides map[string]string) (*report.Table, error) {
	def, err := s.registry.Get(key)
	if err != nil {
		return nil, err
	}
	params, err := def.ResolveParams(overrides)
	if err != nil {
		return nil, errors.InvalidInput(err.Error())
	}
	return s.executor.Execute(ctx, def, params)
}

// RunTab executes every report of a tab concurrently and returns the
// tables keyed by report. One failing report fails the whole tab; the
// dashboard has no use for a partially loaded view.
func (s *DashboardService) RunTab(ctx context.Context, tab core.TabKey) (map[core.ReportKey]*report.Table, error) {
	defs, err := s.registry.ByTab(tab)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	out := make(map[core.ReportKey]*report.Table, len(defs))

	g, ctx := errgroup.WithContext(ctx)
	for _, def := range defs {
		def := def
		g.Go(func() error {
			table, err := s.executor.Execute(ctx, def, def.DefaultParams())
			if err != nil {
				return err
			}
			mu.Lock()
			out[def.Key] = table
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
