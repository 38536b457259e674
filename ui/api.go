package ui

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"flightdash/adapters/dataset"
	"flightdash/internal/errors"

	"github.com/gin-gonic/gin"
)

// downloadBase is the only downloadable file name
const downloadBase = "filtered"

func (s *Server) handleGroupSummary(c *gin.Context) {
	fields, measure, err := parseGroupFields(c.QueryArray("by"), c.Query("measure"))
	if err != nil {
		s.fail(c, err)
		return
	}
	groups, err := s.analysis.GroupStats(fields, measure)
	if err != nil {
		s.fail(c, errors.WithCode(errors.CodeInvalidInput, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"by":      fields,
		"measure": measure,
		"groups":  groups,
	})
}

func (s *Server) handleExplore(c *gin.Context) {
	p, err := s.analysis.ParseFilters(c.Request.URL.Query())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.analysis.Explore(p))
}

func (s *Server) handleOutliers(c *gin.Context) {
	p, err := s.analysis.ParseFilters(c.Request.URL.Query())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outliers": s.analysis.Outliers(p)})
}

func (s *Server) handleInference(c *gin.Context) {
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
	c.JSON(http.StatusOK, dv)
}

func (s *Server) handleFilters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"defaults": s.analysis.Defaults().Query(),
		"options":  s.analysis.Options(),
	})
}

// handleDownload serves /download/filtered.csv and /download/filtered.xlsx
// with the request's filters applied
func (s *Server) handleDownload(c *gin.Context) {
	name := c.Param("file")
	base, ext, ok := strings.Cut(name, ".")
	if !ok || base != downloadBase {
		s.fail(c, errors.NotFound(name))
		return
	}
	writer, err := dataset.WriterFor(ext)
	if err != nil {
		s.fail(c, errors.NotFound(name))
		return
	}
	p, err := s.analysis.ParseFilters(c.Request.URL.Query())
	if err != nil {
		s.fail(c, err)
		return
	}

	filtered := s.analysis.Filtered(p)
	var buf bytes.Buffer
	if err := writer.Write(&buf, filtered); err != nil {
		s.fail(c, err)
		return
	}
	s.logger.Info("exported %d rows as %s", filtered.Len(), writer.Extension())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, downloadBase, writer.Extension()))
	c.Data(http.StatusOK, writer.ContentType(), buf.Bytes())
}
