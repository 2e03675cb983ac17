package domain

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/clinicdesk/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (Appointment, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	GetByID(ctx context.Context, id string) (Appointment, error)
	Update(ctx context.Context, req UpdateRequest) (Appointment, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	ClientName  string
	Phone       string
	Treatment   string
	DoctorName  string
	StaffName   string
	ScheduledAt time.Time
	Status      string
	Notes       string
}

type UpdateRequest struct {
	ID          string
	ClientName  *string
	Phone       *string
	Treatment   *string
	DoctorName  *string
	StaffName   *string
	ScheduledAt *time.Time
	Status      *string
	Notes       *string
}

// ListRequest filters on scheduled_at within [From, To] when set.
type ListRequest struct {
	PageToken  string
	PageSize   int
	ClientName string
	Status     string
	From       *time.Time
	To         *time.Time
}

type ListResponse struct {
	pagination.PageInfo
	Appointments []Appointment `json:"appointments"`
}

var (
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidClientName  = errors.New("invalid_client_name")
	ErrInvalidTreatment   = errors.New("invalid_treatment")
	ErrInvalidScheduledAt = errors.New("invalid_scheduled_at")
	ErrInvalidStatus      = errors.New("invalid_status")
	ErrInvalidRange       = errors.New("invalid_range")
	ErrNotFound           = errors.New("not_found")
)

func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case "":
		return StatusScheduled, nil
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return Status(value), nil
	default:
		return "", ErrInvalidStatus
	}
}
