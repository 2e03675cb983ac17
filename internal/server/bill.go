package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/clinicdesk/internal/billcalc"
	billdomain "github.com/smallbiznis/clinicdesk/internal/bill/domain"
	"github.com/smallbiznis/clinicdesk/pkg/db/pagination"
)

type createBillRequest struct {
	ClientName        string         `json:"client_name"`
	AssignedStaff     string         `json:"assigned_staff"`
	AssignedDoctor    string         `json:"assigned_doctor"`
	Service           string         `json:"service"`
	TotalSessions     *int           `json:"total_sessions"`
	SessionsCompleted int            `json:"sessions_completed"`
	Cost              billcalc.Value `json:"cost"`
	TotalAmount       billcalc.Value `json:"total_amount"`
	AmountPaid        billcalc.Value `json:"amount_paid"`
	PaymentMethod     string         `json:"payment_method"`
	Notes             string         `json:"notes"`
	Date              string         `json:"date"`
}

type updateBillRequest struct {
	ClientName        *string         `json:"client_name,omitempty"`
	AssignedStaff     *string         `json:"assigned_staff,omitempty"`
	AssignedDoctor    *string         `json:"assigned_doctor,omitempty"`
	Service           *string         `json:"service,omitempty"`
	TotalSessions     *int            `json:"total_sessions,omitempty"`
	SessionsCompleted *int            `json:"sessions_completed,omitempty"`
	Cost              *billcalc.Value `json:"cost,omitempty"`
	TotalAmount       *billcalc.Value `json:"total_amount,omitempty"`
	AmountPaid        *billcalc.Value `json:"amount_paid,omitempty"`
	PaymentMethod     *string         `json:"payment_method,omitempty"`
	Notes             *string         `json:"notes,omitempty"`
	Date              *string         `json:"date,omitempty"`
}

type deriveBillRequest struct {
	Changed string        `json:"changed"`
	Form    billcalc.Form `json:"form"`
}

func (s *Server) CreateBill(c *gin.Context) {
	var req createBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseOptionalTime(req.Date, false, s.clinic.Get().Location())
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "invalid date"))
		return
	}

	resp, err := s.billSvc.Create(c.Request.Context(), billdomain.CreateRequest{
		ClientName:        strings.TrimSpace(req.ClientName),
		AssignedStaff:     strings.TrimSpace(req.AssignedStaff),
		AssignedDoctor:    strings.TrimSpace(req.AssignedDoctor),
		Service:           strings.TrimSpace(req.Service),
		TotalSessions:     req.TotalSessions,
		SessionsCompleted: req.SessionsCompleted,
		Cost:              req.Cost,
		TotalAmount:       req.TotalAmount,
		AmountPaid:        req.AmountPaid,
		PaymentMethod:     strings.TrimSpace(req.PaymentMethod),
		Notes:             req.Notes,
		Date:              date,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBills(c *gin.Context) {
	var query struct {
		pagination.Pagination
		ClientName    string `form:"client_name"`
		AssignedStaff string `form:"assigned_staff"`
		From          string `form:"from"`
		To            string `form:"to"`
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

	resp, err := s.billSvc.List(c.Request.Context(), billdomain.ListRequest{
		PageToken:     query.PageToken,
		PageSize:      query.PageSize,
		ClientName:    strings.TrimSpace(query.ClientName),
		AssignedStaff: strings.TrimSpace(query.AssignedStaff),
		From:          from,
		To:            to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetBillByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.billSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateBill(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req updateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := billdomain.UpdateRequest{
		ID:                id,
		ClientName:        trimStringPtr(req.ClientName),
		AssignedStaff:     trimStringPtr(req.AssignedStaff),
		AssignedDoctor:    trimStringPtr(req.AssignedDoctor),
		Service:           trimStringPtr(req.Service),
		TotalSessions:     req.TotalSessions,
		SessionsCompleted: req.SessionsCompleted,
		Cost:              req.Cost,
		TotalAmount:       req.TotalAmount,
		AmountPaid:        req.AmountPaid,
		PaymentMethod:     trimStringPtr(req.PaymentMethod),
		Notes:             req.Notes,
	}
	if req.Date != nil {
		date, err := parseOptionalTime(*req.Date, false, s.clinic.Get().Location())
		if err != nil || date == nil {
			AbortWithError(c, newValidationError("date", "invalid_date", "invalid date"))
			return
		}
		update.Date = date
	}

	resp, err := s.billSvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteBill(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.billSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeriveBill recomputes the dependent money fields while the operator types.
func (s *Server) DeriveBill(c *gin.Context) {
	var req deriveBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	form, err := s.billSvc.Derive(c.Request.Context(), billdomain.DeriveRequest{
		Changed: req.Changed,
		Form:    req.Form,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": form})
}

func isBillValidationError(err error) bool {
	switch err {
	case billdomain.ErrInvalidID,
		billdomain.ErrInvalidClientName,
		billdomain.ErrInvalidService,
		billdomain.ErrInvalidTotalSessions,
		billdomain.ErrInvalidSessionsCompleted,
		billdomain.ErrInvalidPaymentMethod,
		billdomain.ErrInvalidRange:
		return true
	default:
		return false
	}
}

func isBillNotFound(err error) bool {
	return err == billdomain.ErrNotFound
}
