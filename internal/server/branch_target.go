package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	branchtargetdomain "github.com/smallbiznis/clinicdesk/internal/branchtarget/domain"
	"github.com/smallbiznis/clinicdesk/pkg/db/pagination"
)

type createBranchTargetRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	Period  string          `json:"period"`
	DateSet string          `json:"date_set"`
	Notes   string          `json:"notes"`
}

type updateBranchTargetRequest struct {
	Amount  *decimal.Decimal `json:"amount,omitempty"`
	Period  *string          `json:"period,omitempty"`
	DateSet *string          `json:"date_set,omitempty"`
	Notes   *string          `json:"notes,omitempty"`
}

func (s *Server) CreateBranchTarget(c *gin.Context) {
	var req createBranchTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	dateSet, err := parseOptionalTime(req.DateSet, false, s.clinic.Get().Location())
	if err != nil {
		AbortWithError(c, newValidationError("date_set", "invalid_date_set", "invalid date_set"))
		return
	}

	resp, err := s.branchTargetSvc.Create(c.Request.Context(), branchtargetdomain.CreateRequest{
		Amount:  req.Amount,
		Period:  strings.ToLower(strings.TrimSpace(req.Period)),
		DateSet: dateSet,
		Notes:   req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBranchTargets(c *gin.Context) {
	var query pagination.Pagination
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.branchTargetSvc.List(c.Request.Context(), branchtargetdomain.ListRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// GetLatestBranchTarget returns the most recently created branch target, or
// null when none has been set.
func (s *Server) GetLatestBranchTarget(c *gin.Context) {
	resp, err := s.branchTargetSvc.Latest(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetBranchTargetByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.branchTargetSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateBranchTarget(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req updateBranchTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := branchtargetdomain.UpdateRequest{
		ID:     id,
		Period: trimStringPtr(req.Period),
		Notes:  req.Notes,
	}
	if req.Amount != nil {
		update.Amount = decimal.NewNullDecimal(*req.Amount)
	}
	if req.DateSet != nil {
		dateSet, err := parseOptionalTime(*req.DateSet, false, s.clinic.Get().Location())
		if err != nil || dateSet == nil {
			AbortWithError(c, newValidationError("date_set", "invalid_date_set", "invalid date_set"))
			return
		}
		update.DateSet = dateSet
	}

	resp, err := s.branchTargetSvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteBranchTarget(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.branchTargetSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isBranchTargetValidationError(err error) bool {
	switch err {
	case branchtargetdomain.ErrInvalidID,
		branchtargetdomain.ErrInvalidAmount:
		return true
	default:
		return false
	}
}

func isBranchTargetNotFound(err error) bool {
	return err == branchtargetdomain.ErrNotFound
}
