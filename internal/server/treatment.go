package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	treatmentdomain "github.com/smallbiznis/clinicdesk/internal/treatment/domain"
	"github.com/smallbiznis/clinicdesk/pkg/db/pagination"
)

type createTreatmentRequest struct {
	Name            string          `json:"name"`
	Code            string          `json:"code"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
}

type updateTreatmentRequest struct {
	Name            *string          `json:"name,omitempty"`
	Code            *string          `json:"code,omitempty"`
	Category        *string          `json:"category,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	DurationMinutes *int             `json:"duration_minutes,omitempty"`
}

func (s *Server) CreateTreatment(c *gin.Context) {
	var req createTreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.treatmentSvc.Create(c.Request.Context(), treatmentdomain.CreateRequest{
		Name:            strings.TrimSpace(req.Name),
		Code:            strings.TrimSpace(req.Code),
		Category:        strings.TrimSpace(req.Category),
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTreatments(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Name     string `form:"name"`
		Category string `form:"category"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.treatmentSvc.List(c.Request.Context(), treatmentdomain.ListRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Name:      strings.TrimSpace(query.Name),
		Category:  strings.TrimSpace(query.Category),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTreatmentByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.treatmentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateTreatment(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req updateTreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var price decimal.NullDecimal
	if req.Price != nil {
		price = decimal.NewNullDecimal(*req.Price)
	}

	resp, err := s.treatmentSvc.Update(c.Request.Context(), treatmentdomain.UpdateRequest{
		ID:              id,
		Name:            trimStringPtr(req.Name),
		Code:            trimStringPtr(req.Code),
		Category:        trimStringPtr(req.Category),
		Description:     req.Description,
		Price:           price,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteTreatment(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.treatmentSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isTreatmentValidationError(err error) bool {
	switch err {
	case treatmentdomain.ErrInvalidID,
		treatmentdomain.ErrInvalidName,
		treatmentdomain.ErrInvalidCode,
		treatmentdomain.ErrInvalidPrice,
		treatmentdomain.ErrInvalidDuration:
		return true
	default:
		return false
	}
}

func isTreatmentNotFound(err error) bool {
	return err == treatmentdomain.ErrNotFound
}
