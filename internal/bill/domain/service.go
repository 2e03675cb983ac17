package domain

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/clinicdesk/internal/billcalc"
	"github.com/smallbiznis/clinicdesk/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (Bill, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	GetByID(ctx context.Context, id string) (Bill, error)
	Update(ctx context.Context, req UpdateRequest) (Bill, error)
	Delete(ctx context.Context, id string) error
	Derive(ctx context.Context, req DeriveRequest) (billcalc.Form, error)
}

// CreateRequest takes assigned staff as typed in the form; the configured
// house-sale label becomes a house sale. A nil TotalSessions means one session.
type CreateRequest struct {
	ClientName        string
	AssignedStaff     string
	AssignedDoctor    string
	Service           string
	TotalSessions     *int
	SessionsCompleted int
	Cost              billcalc.Value
	TotalAmount       billcalc.Value
	AmountPaid        billcalc.Value
	PaymentMethod     string
	Notes             string
	Date              *time.Time
}

type UpdateRequest struct {
	ID                string
	ClientName        *string
	AssignedStaff     *string
	AssignedDoctor    *string
	Service           *string
	TotalSessions     *int
	SessionsCompleted *int
	Cost              *billcalc.Value
	TotalAmount       *billcalc.Value
	AmountPaid        *billcalc.Value
	PaymentMethod     *string
	Notes             *string
	Date              *time.Time
}

type ListRequest struct {
	PageToken     string
	PageSize      int
	ClientName    string
	AssignedStaff string
	From          *time.Time
	To            *time.Time
}

type ListResponse struct {
	pagination.PageInfo
	Bills []Bill `json:"bills"`
}

type DeriveRequest struct {
	Changed string
	Form    billcalc.Form
}

var (
	ErrInvalidID                = errors.New("invalid_id")
	ErrInvalidClientName        = errors.New("invalid_client_name")
	ErrInvalidService           = errors.New("invalid_service")
	ErrInvalidTotalSessions     = errors.New("invalid_total_sessions")
	ErrInvalidSessionsCompleted = errors.New("invalid_sessions_completed")
	ErrInvalidPaymentMethod     = errors.New("invalid_payment_method")
	ErrInvalidRange             = errors.New("invalid_range")
	ErrNotFound                 = errors.New("not_found")
)

func ParsePaymentMethod(value string) (PaymentMethod, error) {
	switch PaymentMethod(value) {
	case "":
		return PaymentCash, nil
	case PaymentCash, PaymentCard, PaymentUPI, PaymentBankTransfer, PaymentCheque:
		return PaymentMethod(value), nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}
