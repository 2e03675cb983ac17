package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	appointmentdomain "github.com/smallbiznis/clinicdesk/internal/appointment/domain"
	"github.com/smallbiznis/clinicdesk/pkg/db/pagination"
)

type createAppointmentRequest struct {
	ClientName  string    `json:"client_name"`
	Phone       string    `json:"phone"`
	Treatment   string    `json:"treatment"`
	DoctorName  string    `json:"doctor_name"`
	StaffName   string    `json:"staff_name"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
}

type updateAppointmentRequest struct {
	ClientName  *string    `json:"client_name,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Treatment   *string    `json:"treatment,omitempty"`
	DoctorName  *string    `json:"doctor_name,omitempty"`
	StaffName   *string    `json:"staff_name,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

func (s *Server) CreateAppointment(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.appointmentSvc.Create(c.Request.Context(), appointmentdomain.CreateRequest{
		ClientName:  strings.TrimSpace(req.ClientName),
		Phone:       strings.TrimSpace(req.Phone),
		Treatment:   strings.TrimSpace(req.Treatment),
		DoctorName:  strings.TrimSpace(req.DoctorName),
		StaffName:   strings.TrimSpace(req.StaffName),
		ScheduledAt: req.ScheduledAt,
		Status:      strings.TrimSpace(req.Status),
		Notes:       req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAppointments(c *gin.Context) {
	var query struct {
		pagination.Pagination
		ClientName string `form:"client_name"`
		Status     string `form:"status"`
		From       string `form:"from"`
		To         string `form:"to"`
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
	to, err := parseOptionalTime(query.To, true, loc)
	if err != nil {
		AbortWithError(c, newValidationError("to", "invalid_to", "invalid to"))
		return
	}

	resp, err := s.appointmentSvc.List(c.Request.Context(), appointmentdomain.ListRequest{
		PageToken:  query.PageToken,
		PageSize:   query.PageSize,
		ClientName: strings.TrimSpace(query.ClientName),
		Status:     strings.TrimSpace(query.Status),
		From:       from,
		To:         to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetAppointmentByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.appointmentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateAppointment(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req updateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.appointmentSvc.Update(c.Request.Context(), appointmentdomain.UpdateRequest{
		ID:          id,
		ClientName:  trimStringPtr(req.ClientName),
		Phone:       trimStringPtr(req.Phone),
		Treatment:   trimStringPtr(req.Treatment),
		DoctorName:  trimStringPtr(req.DoctorName),
		StaffName:   trimStringPtr(req.StaffName),
		ScheduledAt: req.ScheduledAt,
		Status:      trimStringPtr(req.Status),
		Notes:       req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteAppointment(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.appointmentSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isAppointmentValidationError(err error) bool {
	switch err {
	case appointmentdomain.ErrInvalidID,
		appointmentdomain.ErrInvalidClientName,
		appointmentdomain.ErrInvalidTreatment,
		appointmentdomain.ErrInvalidScheduledAt,
		appointmentdomain.ErrInvalidStatus,
		appointmentdomain.ErrInvalidRange:
		return true
	default:
		return false
	}
}

func isAppointmentNotFound(err error) bool {
	return err == appointmentdomain.ErrNotFound
}
