package ui

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/lilyle-2211/game-analytics-dashboard/domain/core"
	"github.com/lilyle-2211/game-analytics-dashboard/domain/report"
)

func (s *Server) handleListReports(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"reports": s.dashboard.Registry().All()})
}

// queryOverrides collects report parameters from the query string,
// dropping empty values so blank form fields fall back to defaults.
func queryOverrides(c *gin.Context) map[string]string {
	out := map[string]string{}
	for name, vals := range c.Request.URL.Query() {
		if len(vals) > 0 && vals[0] != "" {
			out[name] = vals[0]
		}
	}
	return out
}

func (s *Server) handleRunReport(c *gin.Context) {
	key := core.ReportKey(c.Param("key"))

	table, err := s.dashboard.RunReport(c.Request.Context(), key, queryOverrides(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, table)
}

func (s *Server) handleRunTab(c *gin.Context) {
	tab := core.TabKey(c.Param("tab"))

	tables, err := s.dashboard.RunTab(c.Request.Context(), tab)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tab": tab, "reports": tables})
}

func (s *Server) handleExportReport(c *gin.Context) {
	key := core.ReportKey(c.Param("key"))

	table, err := s.dashboard.RunReport(c.Request.Context(), key, queryOverrides(c))
	if err != nil {
		respondError(c, err)
		return
	}
	s.serveWorkbook(c, string(key), []*report.Table{table})
}

func (s *Server) handleExportTab(c *gin.Context) {
	tab := core.TabKey(c.Param("tab"))

	byKey, err := s.dashboard.RunTab(c.Request.Context(), tab)
	if err != nil {
		respondError(c, err)
		return
	}
	tables := make([]*report.Table, 0, len(byKey))
	for _, t := range byKey {
		tables = append(tables, t)
	}
	// Map iteration order is random; keep the workbook stable.
	sort.Slice(tables, func(i, j int) bool { return tables[i].Report < tables[j].Report })
	s.serveWorkbook(c, string(tab), tables)
}

func (s *Server) serveWorkbook(c *gin.Context, name string, tables []*report.Table) {
	data, err := s.exporter.Export(tables)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", name))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (s *Server) handleTabInsights(c *gin.Context) {
	tab := core.TabKey(c.Param("tab"))

	insight, err := s.analyst.ForTab(c.Request.Context(), tab)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, insight)
}
