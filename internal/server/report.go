package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	performancedomain "github.com/smallbiznis/clinicdesk/internal/performance/domain"
	reportdomain "github.com/smallbiznis/clinicdesk/internal/report/domain"
)

type performanceQuery struct {
	Range string `form:"range"`
	Name  string `form:"name"`
}

func (s *Server) StaffPerformance(c *gin.Context) {
	var query performanceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.performanceSvc.StaffPerformance(c.Request.Context(), performancedomain.Request{
		Range: strings.TrimSpace(query.Range),
		Name:  strings.TrimSpace(query.Name),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DoctorPerformance(c *gin.Context) {
	var query performanceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.performanceSvc.DoctorPerformance(c.Request.Context(), performancedomain.Request{
		Range: strings.TrimSpace(query.Range),
		Name:  strings.TrimSpace(query.Name),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) BillReport(c *gin.Context) {
	var query struct {
		GroupBy string `form:"group_by"`
		From    string `form:"from"`
		To      string `form:"to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	loc := s.clinic.Get().Location()
	from, err := parseOptionalTime(query.From, false, loc)
	if err != nil {
		AbortWithError(c, newValidationError("from", "invalid_from", "invalid from"))
		return
	}
	to, err := parseOptionalTime(query.To, false, loc)
	if err != nil {
		AbortWithError(c, newValidationError("to", "invalid_to", "invalid to"))
		return
	}

	resp, err := s.reportSvc.Bills(c.Request.Context(), reportdomain.Request{
		GroupBy: strings.ToLower(strings.TrimSpace(query.GroupBy)),
		From:    from,
		To:      to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isReportValidationError(err error) bool {
	switch err {
	case reportdomain.ErrInvalidGroupBy,
		reportdomain.ErrInvalidRange:
		return true
	default:
		return false
	}
}
