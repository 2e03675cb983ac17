package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	staffdomain "github.com/smallbiznis/clinicdesk/internal/staff/domain"
	"github.com/smallbiznis/clinicdesk/pkg/db/pagination"
)

type createStaffRequest struct {
	Name            string `json:"name"`
	Role            string `json:"role"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Qualification   string `json:"qualification"`
	ExperienceYears int    `json:"experience_years"`
}

type updateStaffRequest struct {
	Name            *string `json:"name,omitempty"`
	Role            *string `json:"role,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Email           *string `json:"email,omitempty"`
	Qualification   *string `json:"qualification,omitempty"`
	ExperienceYears *int    `json:"experience_years,omitempty"`
}

func (s *Server) CreateStaff(c *gin.Context) {
	var req createStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.staffSvc.Create(c.Request.Context(), staffdomain.CreateRequest{
		Name:            strings.TrimSpace(req.Name),
		Role:            strings.TrimSpace(req.Role),
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

func (s *Server) ListStaff(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Name string `form:"name"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.staffSvc.List(c.Request.Context(), staffdomain.ListRequest{
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

func (s *Server) GetStaffByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.staffSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateStaff(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req updateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.staffSvc.Update(c.Request.Context(), staffdomain.UpdateRequest{
		ID:              id,
		Name:            trimStringPtr(req.Name),
		Role:            trimStringPtr(req.Role),
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

func (s *Server) DeleteStaff(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.staffSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isStaffValidationError(err error) bool {
	switch err {
	case staffdomain.ErrInvalidID,
		staffdomain.ErrInvalidName,
		staffdomain.ErrInvalidRole,
		staffdomain.ErrInvalidEmail,
		staffdomain.ErrInvalidExperience:
		return true
	default:
		return false
	}
}

func isStaffNotFound(err error) bool {
	return err == staffdomain.ErrNotFound
}
