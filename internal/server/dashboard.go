package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	dashboarddomain "github.com/smallbiznis/clinicdesk/internal/dashboard/domain"
)

func (s *Server) GetDashboard(c *gin.Context) {
	resp, err := s.dashboardSvc.Get(c.Request.Context(), dashboarddomain.Request{
		Range: strings.TrimSpace(c.Query("range")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type clinicConfigResponse struct {
	Name               string `json:"name"`
	HouseSaleLabel     string `json:"house_sale_label"`
	Timezone           string `json:"timezone"`
	DefaultReportRange string `json:"default_report_range"`
}

// GetClinicConfig exposes the settings the SPA needs to render forms, such as
// the label that marks a bill as a clinic sale.
func (s *Server) GetClinicConfig(c *gin.Context) {
	cfg := s.clinic.Get()
	c.JSON(http.StatusOK, gin.H{"data": clinicConfigResponse{
		Name:               cfg.Name,
		HouseSaleLabel:     cfg.HouseSaleLabel,
		Timezone:           cfg.Timezone,
		DefaultReportRange: cfg.DefaultReportRange,
	}})
}
