package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/clinicdesk/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (Staff, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	GetByID(ctx context.Context, id string) (Staff, error)
	Update(ctx context.Context, req UpdateRequest) (Staff, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	Name            string
	Role            string
	Phone           string
	Email           string
	Qualification   string
	ExperienceYears int
}

type UpdateRequest struct {
	ID              string
	Name            *string
	Role            *string
	Phone           *string
	Email           *string
	Qualification   *string
	ExperienceYears *int
}

type ListRequest struct {
	PageToken string
	PageSize  int
	Name      string
}

type ListResponse struct {
	pagination.PageInfo
	Members []Staff `json:"staff"`
}

var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidRole       = errors.New("invalid_role")
	ErrInvalidEmail      = errors.New("invalid_email")
	ErrInvalidExperience = errors.New("invalid_experience_years")
	ErrNotFound          = errors.New("not_found")
)
