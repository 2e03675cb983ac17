package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	doctordomain "github.com/smallbiznis/clinicdesk/internal/doctor/domain"
	"github.com/smallbiznis/clinicdesk/pkg/db/pagination"
)

type createDoctorRequest struct {
	Name            string `json:"name"`
	Specialty       string `json:"specialty"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Qualification   string `json:"qualification"`
	ExperienceYears int    `json:"experience_years"`
}

type updateDoctorRequest struct {
	Name            *string `json:"name,omitempty"`
	Specialty       *string `json:"specialty,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Email           *string `json:"email,omitempty"`
	Qualification   *string `json:"qualification,omitempty"`
	ExperienceYears *int    `json:"experience_years,omitempty"`
}

func (s *Server) CreateDoctor(c *gin.Context) {
	var req createDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.doctorSvc.Create(c.Request.Context(), doctordomain.CreateRequest{
		Name:            strings.TrimSpace(req.Name),
		Specialty:       strings.TrimSpace(req.Specialty),
		Phone:           strings.TrimSpace(req.Phone),
		Email:           strings.TrimSpace(req.Email),
		Qualification:   strings.TrimSpace(req.Qualification),
		ExperienceYears: req.ExperienceYears,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListDoctors(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Name string `form:"name"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.doctorSvc.List(c.Request.Context(), doctordomain.ListRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Name:      strings.TrimSpace(query.Name),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDoctorByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.doctorSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateDoctor(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req updateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.doctorSvc.Update(c.Request.Context(), doctordomain.UpdateRequest{
		ID:              id,
		Name:            trimStringPtr(req.Name),
		Specialty:       trimStringPtr(req.Specialty),
		Phone:           trimStringPtr(req.Phone),
		Email:           trimStringPtr(req.Email),
		Qualification:   trimStringPtr(req.Qualification),
		ExperienceYears: req.ExperienceYears,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteDoctor(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.doctorSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isDoctorValidationError(err error) bool {
	switch err {
	case doctordomain.ErrInvalidID,
		doctordomain.ErrInvalidName,
		doctordomain.ErrInvalidSpecialty,
		doctordomain.ErrInvalidEmail,
		doctordomain.ErrInvalidExperience:
		return true
	default:
		return false
	}
}

func isDoctorNotFound(err error) bool {
	return err == doctordomain.ErrNotFound
}
