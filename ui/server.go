package ui

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lilyle-2211/game-analytics-dashboard/app"
	"github.com/lilyle-2211/game-analytics-dashboard/internal/errors"
	"github.com/lilyle-2211/game-analytics-dashboard/internal/insights"
	"github.com/lilyle-2211/game-analytics-dashboard/ports"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// Server is the dashboard web server
type Server struct {
	router    *gin.Engine
	dashboard *app.DashboardService
	analyst   *insights.Analyst
	exporter  ports.ReportExporter
	templates *template.Template
}

// NewServer creates the dashboard server and registers all routes
func NewServer(dashboard *app.DashboardService, analyst *insights.Analyst, exporter ports.ReportExporter) (*Server, error) {
	funcMap := template.FuncMap{
		"pct": func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
		"num": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parsing dashboard templates")
	}

	s := &Server{
		router:    gin.Default(),
		dashboard: dashboard,
		analyst:   analyst,
		exporter:  exporter,
		templates: templates,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/tabs/:tab", s.handleTabPage)

	staticFS, err := staticSubFS()
	if err == nil {
		s.router.StaticFS("/static", staticFS)
	}

	api := s.router.Group("/api")
	{
		api.GET("/reports", s.handleListReports)
		api.GET("/reports/:key", s.handleRunReport)
		api.GET("/reports/:key/export", s.handleExportReport)
		api.GET("/tabs/:tab", s.handleRunTab)
		api.GET("/tabs/:tab/export", s.handleExportTab)
		api.GET("/insights/:tab", s.handleTabInsights)
		api.POST("/calculator/sample-size", s.handleSampleSize)
	}
}

// Start runs the server on the given address, blocking
func (s *Server) Start(addr string) error {
	log.Printf("[Server] dashboard listening on %s", addr)
	return s.router.Run(addr)
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) renderTemplate(c *gin.Context, name string, data interface{}) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := s.templates.ExecuteTemplate(c.Writer, name, data); err != nil {
		log.Printf("[Server] template %s failed: %v", name, err)
	}
}

// respondError maps AppError codes onto HTTP statuses. Invalid input
// surfaces its message verbatim so the analyst sees which constraint
// was violated.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeWarehouseError:
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
