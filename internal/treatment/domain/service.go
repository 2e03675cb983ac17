package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/clinicdesk/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (Treatment, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	GetByID(ctx context.Context, id string) (Treatment, error)
	Update(ctx context.Context, req UpdateRequest) (Treatment, error)
	Delete(ctx context.Context, id string) error
}

// CreateRequest derives Code from Name when Code is empty.
type CreateRequest struct {
	Name            string
	Code            string
	Category        string
	Description     string
	Price           decimal.Decimal
	DurationMinutes int
}

type UpdateRequest struct {
	ID              string
	Name            *string
	Code            *string
	Category        *string
	Description     *string
	Price           decimal.NullDecimal
	DurationMinutes *int
}

type ListRequest struct {
	PageToken string
	PageSize  int
	Name      string
	Category  string
}

type ListResponse struct {
	pagination.PageInfo
	Treatments []Treatment `json:"treatments"`
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidCode     = errors.New("invalid_code")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrInvalidDuration = errors.New("invalid_duration_minutes")
	ErrCodeExists      = errors.New("code_already_exists")
	ErrNotFound        = errors.New("not_found")
)
