package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/clinicdesk/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (Client, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	GetByID(ctx context.Context, id string) (Client, error)
	Update(ctx context.Context, req UpdateRequest) (Client, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	Name     string
	Phone    string
	Email    string
	Gender   string
	Address  string
	Notes    string
	Metadata map[string]any
}

// UpdateRequest replaces metadata wholesale when Metadata is non-nil.
type UpdateRequest struct {
	ID       string
	Name     *string
	Phone    *string
	Email    *string
	Gender   *string
	Address  *string
	Notes    *string
	Metadata map[string]any
}

// ListRequest matches Query against name or phone.
type ListRequest struct {
	PageToken string
	PageSize  int
	Query     string
}

type ListResponse struct {
	pagination.PageInfo
	Clients []Client `json:"clients"`
}

var (
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidPhone  = errors.New("invalid_phone")
	ErrInvalidEmail  = errors.New("invalid_email")
	ErrInvalidGender = errors.New("invalid_gender")
	ErrNotFound      = errors.New("not_found")
)

func ParseGender(value string) (Gender, error) {
	switch Gender(value) {
	case GenderUnspecified, GenderMale, GenderFemale, GenderOther:
		return Gender(value), nil
	default:
		return "", ErrInvalidGender
	}
}
