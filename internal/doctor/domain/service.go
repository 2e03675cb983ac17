package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/clinicdesk/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (Doctor, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	GetByID(ctx context.Context, id string) (Doctor, error)
	Update(ctx context.Context, req UpdateRequest) (Doctor, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	Name            string
	Specialty       string
	Phone           string
	Email           string
	Qualification   string
	ExperienceYears int
}

type UpdateRequest struct {
	ID              string
	Name            *string
	Specialty       *string
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
	Doctors []Doctor `json:"doctors"`
}

var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidSpecialty  = errors.New("invalid_specialty")
	ErrInvalidEmail      = errors.New("invalid_email")
	ErrInvalidExperience = errors.New("invalid_experience_years")
	ErrNotFound          = errors.New("not_found")
)
