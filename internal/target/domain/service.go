package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/clinicdesk/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (Target, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	GetByID(ctx context.Context, id string) (Target, error)
	Update(ctx context.Context, req UpdateRequest) (Target, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	AssigneeKind string
	AssigneeID   string
	TargetAmount decimal.Decimal
	Period       string
	Notes        string
}

// UpdateRequest cannot move a target to another assignee.
type UpdateRequest struct {
	ID           string
	TargetAmount decimal.NullDecimal
	Period       *string
	Notes        *string
}

type ListRequest struct {
	PageToken    string
	PageSize     int
	AssigneeKind string
	AssigneeID   string
}

type ListResponse struct {
	pagination.PageInfo
	Targets []Target `json:"targets"`
}

var (
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidAssigneeKind = errors.New("invalid_assignee_kind")
	ErrInvalidAssigneeID   = errors.New("invalid_assignee_id")
	ErrAssigneeNotFound    = errors.New("assignee_not_found")
	ErrInvalidAmount       = errors.New("invalid_target_amount")
	ErrInvalidPeriod       = errors.New("invalid_period")
	ErrNotFound            = errors.New("not_found")
)
