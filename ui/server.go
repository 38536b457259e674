package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"flightdash/app"
	"flightdash/internal"
	"flightdash/internal/errors"
	"flightdash/internal/portfolio"

	"github.com/gin-gonic/gin"
)

// Server is the dashboard web server
type Server struct {
	router    *gin.Engine
	templates *template.Template
	analysis  *app.AnalysisService
	inference *app.InferenceService
	profile   *portfolio.Profile
	logger    *internal.Logger
}

// Deps are the services the handlers read from
type Deps struct {
	Analysis  *app.AnalysisService
	Inference *app.InferenceService
	Profile   *portfolio.Profile
	Logger    *internal.Logger
}

// NewServer parses the embedded templates and registers every route
func NewServer(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		deps.Logger = internal.DefaultLogger
	}
	s := &Server{
		router:    gin.New(),
		analysis:  deps.Analysis,
		inference: deps.Inference,
		profile:   deps.Profile,
		logger:    deps.Logger.With("UI"),
	}

	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(assets, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	s.templates = tmpl
	s.logger.Debug("parsed templates: %s", tmpl.DefinedTemplates())

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	if gin.Mode() == gin.DebugMode {
		s.router.Use(gin.Logger())
	}
	s.router.Use(RequestID(s.logger))

	staticFS, err := fs.Sub(assets, "static")
	if err != nil {
		log.Printf("[setupMiddleware] Error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleHome)
	s.router.GET("/certificates", s.handleCertificates)
	s.router.GET("/skills", s.handleSkills)
	s.router.GET("/analysis", s.handleAnalysis)
	s.router.GET("/dashboard", s.handleDashboard)
	s.router.GET("/navigate", s.handleNavigate)

	api := s.router.Group("/api")
	{
		api.GET("/summary/groups", s.handleGroupSummary)
		api.GET("/explore", s.handleExplore)
		api.GET("/outliers", s.handleOutliers)
		api.GET("/inference", s.handleInference)
		api.GET("/filters", s.handleFilters)
	}

	s.router.GET("/download/:file", s.handleDownload)
	s.router.NoRoute(func(c *gin.Context) {
		s.fail(c, errors.NotFound(c.Request.URL.Path))
	})
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("[Server] Starting flight dashboard on http://%s", addr)
	return s.router.Run(addr)
}

// renderTemplate executes a template into a buffer so a failure never
// leaves a half-written page
func (s *Server) renderTemplate(c *gin.Context, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("template %s: %v (data %T)", name, err, data)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "template rendering failed",
			"code":  errors.CodeInternalError,
		})
		return
	}
	if !strings.Contains(buf.String(), "</html>") {
		s.logger.Warn("rendered template %s appears truncated", name)
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// fail answers JSON for API routes and an error page otherwise
func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= 500 {
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	} else {
		s.logger.Debug("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	if strings.HasPrefix(c.Request.URL.Path, "/api/") || strings.HasPrefix(c.Request.URL.Path, "/download/") {
		c.AbortWithStatusJSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
		return
	}
	s.renderTemplate(c, status, "error.html", errorView{
		Nav:     s.nav(""),
		Status:  status,
		Code:    errors.GetCode(err),
		Message: err.Error(),
	})
	c.Abort()
}
