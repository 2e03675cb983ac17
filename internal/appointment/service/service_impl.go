package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/clinicdesk/internal/appointment/domain"
	"github.com/smallbiznis/clinicdesk/pkg/db/option"
	"github.com/smallbiznis/clinicdesk/pkg/db/pagination"
	"github.com/smallbiznis/clinicdesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  repository.Repository[domain.Appointment]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("appointment.service"),
		genID: p.GenID,
		repo:  repository.ProvideStore[domain.Appointment](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Appointment, error) {
	clientName := strings.TrimSpace(req.ClientName)
	if clientName == "" {
		return domain.Appointment{}, domain.ErrInvalidClientName
	}

	treatment := strings.TrimSpace(req.Treatment)
	if treatment == "" {
		return domain.Appointment{}, domain.ErrInvalidTreatment
	}

	if req.ScheduledAt.IsZero() {
		return domain.Appointment{}, domain.ErrInvalidScheduledAt
	}

	status, err := domain.ParseStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if err != nil {
		return domain.Appointment{}, err
	}

	now := time.Now().UTC()
	appointment := domain.Appointment{
		ID:          s.genID.Generate(),
		ClientName:  clientName,
		Phone:       strings.TrimSpace(req.Phone),
		Treatment:   treatment,
		DoctorName:  strings.TrimSpace(req.DoctorName),
		StaffName:   strings.TrimSpace(req.StaffName),
		ScheduledAt: req.ScheduledAt.UTC(),
		Status:      status,
		Notes:       strings.TrimSpace(req.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, &appointment); err != nil {
		return domain.Appointment{}, err
	}

	return appointment, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return domain.ListResponse{}, domain.ErrInvalidRange
	}

	opts := []option.QueryOption{option.WithNameSearch("client_name", req.ClientName)}
	if raw := strings.TrimSpace(req.Status); raw != "" {
		status, err := domain.ParseStatus(strings.ToLower(raw))
		if err != nil {
			return domain.ListResponse{}, err
		}
		opts = append(opts, option.ApplyOperator(option.Condition{Field: "status", Value: status}))
	}
	if req.From != nil {
		opts = append(opts, option.ApplyOperator(option.Condition{Field: "scheduled_at", Operator: option.GTE, Value: req.From.UTC()}))
	}
	if req.To != nil {
		opts = append(opts, option.ApplyOperator(option.Condition{Field: "scheduled_at", Operator: option.LTE, Value: req.To.UTC()}))
	}
	opts = append(opts,
		option.ApplyPagination(pagination.Pagination{PageToken: req.PageToken, PageSize: req.PageSize}),
		option.WithSortBy(option.QuerySortBy{Field: "created_at", Desc: true}),
	)

	items, err := s.repo.Find(ctx, nil, opts...)
	if err != nil {
		return domain.ListResponse{}, err
	}

	items, pageInfo := pagination.BuildCursorPageInfo(items, req.PageSize, func(a *domain.Appointment) string {
		return pagination.RecordCursor(a.ID.String(), a.CreatedAt)
	})

	appointments := make([]domain.Appointment, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		appointments = append(appointments, *item)
	}

	return domain.ListResponse{PageInfo: pageInfo, Appointments: appointments}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Appointment, error) {
	appointmentID, err := parseID(id)
	if err != nil {
		return domain.Appointment{}, err
	}
	return s.find(ctx, appointmentID)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (domain.Appointment, error) {
	appointmentID, err := parseID(req.ID)
	if err != nil {
		return domain.Appointment{}, err
	}

	current, err := s.find(ctx, appointmentID)
	if err != nil {
		return domain.Appointment{}, err
	}

	fields := map[string]any{}
	if req.ClientName != nil {
		clientName := strings.TrimSpace(*req.ClientName)
		if clientName == "" {
			return domain.Appointment{}, domain.ErrInvalidClientName
		}
		fields["client_name"] = clientName
	}
	if req.Phone != nil {
		fields["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Treatment != nil {
		treatment := strings.TrimSpace(*req.Treatment)
		if treatment == "" {
			return domain.Appointment{}, domain.ErrInvalidTreatment
		}
		fields["treatment"] = treatment
	}
	if req.DoctorName != nil {
		fields["doctor_name"] = strings.TrimSpace(*req.DoctorName)
	}
	if req.StaffName != nil {
		fields["staff_name"] = strings.TrimSpace(*req.StaffName)
	}
	if req.ScheduledAt != nil {
		if req.ScheduledAt.IsZero() {
			return domain.Appointment{}, domain.ErrInvalidScheduledAt
		}
		fields["scheduled_at"] = req.ScheduledAt.UTC()
	}
	if req.Status != nil {
		status, err := domain.ParseStatus(strings.ToLower(strings.TrimSpace(*req.Status)))
		if err != nil {
			return domain.Appointment{}, err
		}
		if status != current.Status {
			s.log.Info("appointment status changed",
				zap.String("appointment_id", appointmentID.String()),
				zap.String("from", string(current.Status)),
				zap.String("to", string(status)),
			)
		}
		fields["status"] = status
	}
	if req.Notes != nil {
		fields["notes"] = strings.TrimSpace(*req.Notes)
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now().UTC()
		if _, err := s.repo.Update(ctx, int64(appointmentID), fields); err != nil {
			return domain.Appointment{}, err
		}
	}

	return s.find(ctx, appointmentID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	appointmentID, err := parseID(id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, int64(appointmentID))
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) find(ctx context.Context, id snowflake.ID) (domain.Appointment, error) {
	item, err := s.repo.FindOne(ctx, &domain.Appointment{ID: id})
	if err != nil {
		return domain.Appointment{}, err
	}
	if item == nil {
		return domain.Appointment{}, domain.ErrNotFound
	}
	return *item, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
