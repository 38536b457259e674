package ui

import (
	"html/template"
	"net/http"

	"flightdash/app"
	"flightdash/domain/flight"
	"flightdash/internal/navigation"
	"flightdash/internal/portfolio"

	"github.com/gin-gonic/gin"
)

// Analysis tabs
const (
	tabOverview   = "overview"
	tabStatistics = "statistics"
	tabCategories = "categories"
	tabExplore    = "explore"
)

var analysisTabs = []string{tabOverview, tabStatistics, tabCategories, tabExplore}

type profileView struct {
	Nav     navigation.Context
	Profile *portfolio.Profile
}

type analysisView struct {
	Nav        navigation.Context
	Tab        string
	Tabs       []string
	Fields     []flight.Field
	Overview   *app.OverviewView
	Statistics *app.StatisticsView
	Categories *app.CategoriesView
	Explore    *app.ExploreView

	// FilterCategories and FilterRanges drive the explore form
	FilterCategories []flight.Field
	FilterRanges     []flight.Field

	// download links carrying the current filters
	DownloadCSV  template.URL
	DownloadXLSX template.URL
}

type dashboardView struct {
	Nav navigation.Context
	app.DashboardView
	Levels []int
}

type errorView struct {
	Nav     navigation.Context
	Status  int
	Code    string
	Message string
}

func (s *Server) nav(p navigation.Page) navigation.Context {
	return navigation.NewContext(p)
}

func (s *Server) handleHome(c *gin.Context) {
	s.renderTemplate(c, http.StatusOK, "home.html", profileView{Nav: s.nav(navigation.Home), Profile: s.profile})
}

func (s *Server) handleCertificates(c *gin.Context) {
	s.renderTemplate(c, http.StatusOK, "certificates.html", profileView{Nav: s.nav(navigation.Certificates), Profile: s.profile})
}

func (s *Server) handleSkills(c *gin.Context) {
	s.renderTemplate(c, http.StatusOK, "skills.html", profileView{Nav: s.nav(navigation.Skills), Profile: s.profile})
}

// handleNavigate applies the transition function to a menu selection
func (s *Server) handleNavigate(c *gin.Context) {
	current, _ := navigation.Parse(c.Query("from"))
	selected, _ := navigation.Parse(c.Query("to"))
	next, redirect := navigation.Transition(current, selected)
	if !redirect {
		s.logger.Trace("navigation stays on %s", next)
	}
	c.Redirect(http.StatusSeeOther, next.Path())
}

func (s *Server) handleAnalysis(c *gin.Context) {
	tab := c.DefaultQuery("tab", tabOverview)
	view := analysisView{
		Nav:    s.nav(navigation.DataAnalysis),
		Tab:    tab,
		Tabs:   analysisTabs,
		Fields: s.analysis.Table().Columns,

		FilterCategories: flight.CategoricalFields,
		FilterRanges:     flight.NumericFields,
	}

	switch tab {
	case tabOverview:
		ov := s.analysis.Overview()
		view.Overview = &ov
	case tabStatistics:
		st := s.analysis.Statistics()
		view.Statistics = &st
	case tabCategories:
		cv := s.analysis.Categories()
		view.Categories = &cv
	case tabExplore:
		p, err := s.analysis.ParseFilters(c.Request.URL.Query())
		if err != nil {
			s.fail(c, err)
			return
		}
		ex := s.analysis.Explore(p)
		view.Explore = &ex
		query := ex.Query.Encode()
		view.DownloadCSV = template.URL("/download/" + downloadBase + ".csv?" + query)
		view.DownloadXLSX = template.URL("/download/" + downloadBase + ".xlsx?" + query)
	default:
		view.Tab = tabOverview
		ov := s.analysis.Overview()
		view.Overview = &ov
	}
	s.renderTemplate(c, http.StatusOK, "analysis.html", view)
}

func (s *Server) handleDashboard(c *gin.Context) {
	level, err := ParseConfidence(c.Query("confidence"), s.inference.DefaultLevel())
	if err != nil {
		s.fail(c, err)
		return
	}
	dv, err := s.inference.Dashboard(c.Request.Context(), level)
	if err != nil {
		s.fail(c, err)
		return
	}
	levels := make([]int, 0, 10)
	for l := 90; l <= 99; l++ {
		levels = append(levels, l)
	}
	s.renderTemplate(c, http.StatusOK, "dashboard.html", dashboardView{
		Nav:           s.nav(navigation.Dashboard),
		DashboardView: dv,
		Levels:        levels,
	})
}
