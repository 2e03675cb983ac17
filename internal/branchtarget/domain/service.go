package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/clinicdesk/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (BranchTarget, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	GetByID(ctx context.Context, id string) (BranchTarget, error)
	Latest(ctx context.Context) (*BranchTarget, error)
	Update(ctx context.Context, req UpdateRequest) (BranchTarget, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	Amount  decimal.Decimal
	Period  string
	DateSet *time.Time
	Notes   string
}

type UpdateRequest struct {
	ID      string
	Amount  decimal.NullDecimal
	Period  *string
	DateSet *time.Time
	Notes   *string
}

type ListRequest struct {
	PageToken string
	PageSize  int
}

type ListResponse struct {
	pagination.PageInfo
	BranchTargets []BranchTarget `json:"branch_targets"`
}

var (
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrNotFound      = errors.New("not_found")
)
