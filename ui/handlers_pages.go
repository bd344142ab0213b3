package ui

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lilyle-2211/game-analytics-dashboard/domain/core"
	"github.com/lilyle-2211/game-analytics-dashboard/domain/report"
)

var tabTitles = map[core.TabKey]string{
	report.TabAcquisition:  "Acquisition",
	report.TabEngagement:   "Engagement",
	report.TabMonetization: "Monetization",
	report.TabLTV:          "LTV",
}

func (s *Server) handleIndex(c *gin.Context) {
	type tabLink struct {
		Key   core.TabKey
		Title string
		Count int
	}
	links := make([]tabLink, 0, len(report.Tabs()))
	for _, tab := range report.Tabs() {
		defs, err := s.dashboard.Registry().ByTab(tab)
		if err != nil {
			continue
		}
		links = append(links, tabLink{Key: tab, Title: tabTitles[tab], Count: len(defs)})
	}
	s.renderTemplate(c, "index.html", gin.H{
		"Title": "Game Analytics Dashboard",
		"Tabs":  links,
	})
}

func (s *Server) handleTabPage(c *gin.Context) {
	tab := core.TabKey(c.Param("tab"))
	defs, err := s.dashboard.Registry().ByTab(tab)
	if err != nil {
		c.String(http.StatusNotFound, "unknown tab %q", tab)
		return
	}

	insight, err := s.analyst.ForTab(c.Request.Context(), tab)
	if err != nil {
		respondError(c, err)
		return
	}

	s.renderTemplate(c, "tab.html", gin.H{
		"Title":      tabTitles[tab],
		"Tab":        tab,
		"Reports":    defs,
		"Narrative":  template.HTML(insight.NarrativeHTML),
		"Highlights": insight.Highlights,
	})
}
