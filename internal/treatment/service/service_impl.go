package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/clinicdesk/internal/treatment/domain"
	"github.com/smallbiznis/clinicdesk/pkg/db"
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
	repo  repository.Repository[domain.Treatment]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("treatment.service"),
		genID: p.GenID,
		repo:  repository.ProvideStore[domain.Treatment](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Treatment, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Treatment{}, domain.ErrInvalidName
	}

	source := strings.TrimSpace(req.Code)
	if source == "" {
		source = name
	}
	code := slug.Make(source)
	if code == "" {
		return domain.Treatment{}, domain.ErrInvalidCode
	}

	if req.Price.IsNegative() {
		return domain.Treatment{}, domain.ErrInvalidPrice
	}
	if req.DurationMinutes < 0 {
		return domain.Treatment{}, domain.ErrInvalidDuration
	}

	now := time.Now().UTC()
	treatment := domain.Treatment{
		ID:              s.genID.Generate(),
		Name:            name,
		Code:            code,
		Category:        strings.TrimSpace(req.Category),
		Description:     strings.TrimSpace(req.Description),
		Price:           req.Price.Round(2),
		DurationMinutes: req.DurationMinutes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, &treatment); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Treatment{}, domain.ErrCodeExists
		}
		return domain.Treatment{}, err
	}

	return treatment, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	opts := []option.QueryOption{option.WithNameSearch("name", req.Name)}
	if category := strings.TrimSpace(req.Category); category != "" {
		opts = append(opts, option.ApplyOperator(option.Condition{Field: "category", Operator: option.EQ, Value: category}))
	}
	opts = append(opts,
		option.ApplyPagination(pagination.Pagination{PageToken: req.PageToken, PageSize: req.PageSize}),
		option.WithSortBy(option.QuerySortBy{Field: "created_at", Desc: true}),
	)

	items, err := s.repo.Find(ctx, nil, opts...)
	if err != nil {
		return domain.ListResponse{}, err
	}

	items, pageInfo := pagination.BuildCursorPageInfo(items, req.PageSize, func(t *domain.Treatment) string {
		return pagination.RecordCursor(t.ID.String(), t.CreatedAt)
	})

	treatments := make([]domain.Treatment, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		treatments = append(treatments, *item)
	}

	return domain.ListResponse{PageInfo: pageInfo, Treatments: treatments}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Treatment, error) {
	treatmentID, err := parseID(id)
	if err != nil {
		return domain.Treatment{}, err
	}
	return s.find(ctx, treatmentID)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (domain.Treatment, error) {
	treatmentID, err := parseID(req.ID)
	if err != nil {
		return domain.Treatment{}, err
	}

	if _, err := s.find(ctx, treatmentID); err != nil {
		return domain.Treatment{}, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Treatment{}, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.Code != nil {
		code := slug.Make(strings.TrimSpace(*req.Code))
		if code == "" {
			return domain.Treatment{}, domain.ErrInvalidCode
		}
		fields["code"] = code
	}
	if req.Category != nil {
		fields["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Price.Valid {
		if req.Price.Decimal.IsNegative() {
			return domain.Treatment{}, domain.ErrInvalidPrice
		}
		fields["price"] = req.Price.Decimal.Round(2)
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes < 0 {
			return domain.Treatment{}, domain.ErrInvalidDuration
		}
		fields["duration_minutes"] = *req.DurationMinutes
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now().UTC()
		if _, err := s.repo.Update(ctx, int64(treatmentID), fields); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.Treatment{}, domain.ErrCodeExists
			}
			return domain.Treatment{}, err
		}
	}

	return s.find(ctx, treatmentID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	treatmentID, err := parseID(id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, int64(treatmentID))
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) find(ctx context.Context, id snowflake.ID) (domain.Treatment, error) {
	item, err := s.repo.FindOne(ctx, &domain.Treatment{ID: id})
	if err != nil {
		return domain.Treatment{}, err
	}
	if item == nil {
		return domain.Treatment{}, domain.ErrNotFound
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
