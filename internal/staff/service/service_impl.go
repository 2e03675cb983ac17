package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/clinicdesk/internal/staff/domain"
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
	repo  repository.Repository[domain.Staff]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("staff.service"),
		genID: p.GenID,
		repo:  repository.ProvideStore[domain.Staff](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Staff, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Staff{}, domain.ErrInvalidName
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		return domain.Staff{}, domain.ErrInvalidRole
	}

	email := strings.TrimSpace(req.Email)
	if !validEmail(email) {
		return domain.Staff{}, domain.ErrInvalidEmail
	}

	if req.ExperienceYears < 0 {
		return domain.Staff{}, domain.ErrInvalidExperience
	}

	now := time.Now().UTC()
	member := domain.Staff{
		ID:              s.genID.Generate(),
		Name:            name,
		Role:            role,
		Phone:           strings.TrimSpace(req.Phone),
		Email:           email,
		Qualification:   strings.TrimSpace(req.Qualification),
		ExperienceYears: req.ExperienceYears,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, &member); err != nil {
		return domain.Staff{}, err
	}

	return member, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	page := pagination.Pagination{PageToken: req.PageToken, PageSize: req.PageSize}
	items, err := s.repo.Find(ctx, nil,
		option.WithNameSearch("name", req.Name),
		option.ApplyPagination(page),
		option.WithSortBy(option.QuerySortBy{Field: "created_at", Desc: true}),
	)
	if err != nil {
		return domain.ListResponse{}, err
	}

	items, pageInfo := pagination.BuildCursorPageInfo(items, req.PageSize, func(d *domain.Staff) string {
		return pagination.RecordCursor(d.ID.String(), d.CreatedAt)
	})

	members := make([]domain.Staff, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		members = append(members, *item)
	}

	return domain.ListResponse{PageInfo: pageInfo, Members: members}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Staff, error) {
	memberID, err := parseID(id)
	if err != nil {
		return domain.Staff{}, err
	}
	return s.find(ctx, memberID)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (domain.Staff, error) {
	memberID, err := parseID(req.ID)
	if err != nil {
		return domain.Staff{}, err
	}

	if _, err := s.find(ctx, memberID); err != nil {
		return domain.Staff{}, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Staff{}, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.Role != nil {
		role := strings.TrimSpace(*req.Role)
		if role == "" {
			return domain.Staff{}, domain.ErrInvalidRole
		}
		fields["role"] = role
	}
	if req.Phone != nil {
		fields["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if !validEmail(email) {
			return domain.Staff{}, domain.ErrInvalidEmail
		}
		fields["email"] = email
	}
	if req.Qualification != nil {
		fields["qualification"] = strings.TrimSpace(*req.Qualification)
	}
	if req.ExperienceYears != nil {
		if *req.ExperienceYears < 0 {
			return domain.Staff{}, domain.ErrInvalidExperience
		}
		fields["experience_years"] = *req.ExperienceYears
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now().UTC()
		if _, err := s.repo.Update(ctx, int64(memberID), fields); err != nil {
			return domain.Staff{}, err
		}
	}

	return s.find(ctx, memberID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	memberID, err := parseID(id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, int64(memberID))
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	s.log.Info("staff deleted", zap.String("staff_id", memberID.String()))
	return nil
}

func (s *Service) find(ctx context.Context, id snowflake.ID) (domain.Staff, error) {
	item, err := s.repo.FindOne(ctx, &domain.Staff{ID: id})
	if err != nil {
		return domain.Staff{}, err
	}
	if item == nil {
		return domain.Staff{}, domain.ErrNotFound
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

func validEmail(email string) bool {
	if email == "" {
		return true
	}
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}
