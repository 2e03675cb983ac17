package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/clinicdesk/internal/client/domain"
	"github.com/smallbiznis/clinicdesk/pkg/db/option"
	"github.com/smallbiznis/clinicdesk/pkg/db/pagination"
	"github.com/smallbiznis/clinicdesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
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
	repo  repository.Repository[domain.Client]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("client.service"),
		genID: p.GenID,
		repo:  repository.ProvideStore[domain.Client](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Client{}, domain.ErrInvalidName
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return domain.Client{}, domain.ErrInvalidPhone
	}

	email := strings.TrimSpace(req.Email)
	if email != "" && !strings.Contains(email, "@") {
		return domain.Client{}, domain.ErrInvalidEmail
	}

	gender, err := domain.ParseGender(strings.ToLower(strings.TrimSpace(req.Gender)))
	if err != nil {
		return domain.Client{}, err
	}

	metadata := datatypes.JSONMap{}
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	now := time.Now().UTC()
	client := domain.Client{
		ID:        s.genID.Generate(),
		Name:      name,
		Phone:     phone,
		Email:     email,
		Gender:    gender,
		Address:   strings.TrimSpace(req.Address),
		Notes:     strings.TrimSpace(req.Notes),
		Metadata:  metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, &client); err != nil {
		return domain.Client{}, err
	}

	return client, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	opts := []option.QueryOption{}
	if q := strings.TrimSpace(req.Query); q != "" {
		opts = append(opts, searchNameOrPhone(q))
	}
	opts = append(opts,
		option.ApplyPagination(pagination.Pagination{PageToken: req.PageToken, PageSize: req.PageSize}),
		option.WithSortBy(option.QuerySortBy{Field: "created_at", Desc: true}),
	)

	items, err := s.repo.Find(ctx, nil, opts...)
	if err != nil {
		return domain.ListResponse{}, err
	}

	items, pageInfo := pagination.BuildCursorPageInfo(items, req.PageSize, func(c *domain.Client) string {
		return pagination.RecordCursor(c.ID.String(), c.CreatedAt)
	})

	clients := make([]domain.Client, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		clients = append(clients, *item)
	}

	return domain.ListResponse{PageInfo: pageInfo, Clients: clients}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Client, error) {
	clientID, err := parseID(id)
	if err != nil {
		return domain.Client{}, err
	}
	return s.find(ctx, clientID)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (domain.Client, error) {
	clientID, err := parseID(req.ID)
	if err != nil {
		return domain.Client{}, err
	}

	if _, err := s.find(ctx, clientID); err != nil {
		return domain.Client{}, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Client{}, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone == "" {
			return domain.Client{}, domain.ErrInvalidPhone
		}
		fields["phone"] = phone
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email != "" && !strings.Contains(email, "@") {
			return domain.Client{}, domain.ErrInvalidEmail
		}
		fields["email"] = email
	}
	if req.Gender != nil {
		gender, err := domain.ParseGender(strings.ToLower(strings.TrimSpace(*req.Gender)))
		if err != nil {
			return domain.Client{}, err
		}
		fields["gender"] = gender
	}
	if req.Address != nil {
		fields["address"] = strings.TrimSpace(*req.Address)
	}
	if req.Notes != nil {
		fields["notes"] = strings.TrimSpace(*req.Notes)
	}
	if req.Metadata != nil {
		fields["metadata"] = datatypes.JSONMap(req.Metadata)
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now().UTC()
		if _, err := s.repo.Update(ctx, int64(clientID), fields); err != nil {
			return domain.Client{}, err
		}
	}

	return s.find(ctx, clientID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	clientID, err := parseID(id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, int64(clientID))
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) find(ctx context.Context, id snowflake.ID) (domain.Client, error) {
	item, err := s.repo.FindOne(ctx, &domain.Client{ID: id})
	if err != nil {
		return domain.Client{}, err
	}
	if item == nil {
		return domain.Client{}, domain.ErrNotFound
	}
	return *item, nil
}

func searchNameOrPhone(q string) option.QueryOption {
	pattern := "%" + strings.ToLower(q) + "%"
	return option.Func(func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(name) LIKE ? OR phone LIKE ?", pattern, pattern)
	})
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
