package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	targetdomain "github.com/smallbiznis/clinicdesk/internal/target/domain"
	"github.com/smallbiznis/clinicdesk/pkg/db/pagination"
)

type createTargetRequest struct {
	AssigneeKind string          `json:"assignee_kind"`
	AssigneeID   string          `json:"assignee_id"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	Period       string          `json:"period"`
	Notes        string          `json:"notes"`
}

type updateTargetRequest struct {
	TargetAmount *decimal.Decimal `json:"target_amount,omitempty"`
	Period       *string          `json:"period,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
}

func (s *Server) CreateTarget(c *gin.Context) {
	var req createTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.targetSvc.Create(c.Request.Context(), targetdomain.CreateRequest{
		AssigneeKind: strings.ToLower(strings.TrimSpace(req.AssigneeKind)),
		AssigneeID:   strings.TrimSpace(req.AssigneeID),
		TargetAmount: req.TargetAmount,
		Period:       strings.ToLower(strings.TrimSpace(req.Period)),
		Notes:        req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTargets(c *gin.Context) {
	var query struct {
		pagination.Pagination
		AssigneeKind string `form:"assignee_kind"`
		AssigneeID   string `form:"assignee_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.targetSvc.List(c.Request.Context(), targetdomain.ListRequest{
		PageToken:    query.PageToken,
		PageSize:     query.PageSize,
		AssigneeKind: strings.ToLower(strings.TrimSpace(query.AssigneeKind)),
		AssigneeID:   strings.TrimSpace(query.AssigneeID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTargetByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.targetSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateTarget(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req updateTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var amount decimal.NullDecimal
	if req.TargetAmount != nil {
		amount = decimal.NewNullDecimal(*req.TargetAmount)
	}

	resp, err := s.targetSvc.Update(c.Request.Context(), targetdomain.UpdateRequest{
		ID:           id,
		TargetAmount: amount,
		Period:       trimStringPtr(req.Period),
		Notes:        req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteTarget(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.targetSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isTargetValidationError(err error) bool {
	switch err {
	case targetdomain.ErrInvalidID,
		targetdomain.ErrInvalidAssigneeKind,
		targetdomain.ErrInvalidAssigneeID,
		targetdomain.ErrAssigneeNotFound,
		targetdomain.ErrInvalidAmount,
		targetdomain.ErrInvalidPeriod:
		return true
	default:
		return false
	}
}

func isTargetNotFound(err error) bool {
	return err == targetdomain.ErrNotFound
}
