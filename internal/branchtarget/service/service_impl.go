package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/clinicdesk/internal/branchtarget/domain"
	"github.com/smallbiznis/clinicdesk/internal/clock"
	targetdomain "github.com/smallbiznis/clinicdesk/internal/target/domain"
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
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  repository.Repository[domain.BranchTarget]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("branchtarget.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  repository.ProvideStore[domain.BranchTarget](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.BranchTarget, error) {
	if !req.Amount.IsPositive() {
		return domain.BranchTarget{}, domain.ErrInvalidAmount
	}

	period, err := targetdomain.ParsePeriod(strings.ToLower(strings.TrimSpace(req.Period)))
	if err != nil {
		return domain.BranchTarget{}, err
	}

	now := s.clock.Now().UTC()
	dateSet := now
	if req.DateSet != nil && !req.DateSet.IsZero() {
		dateSet = req.DateSet.UTC()
	}

	target := domain.BranchTarget{
		ID:        s.genID.Generate(),
		Amount:    req.Amount.Round(2),
		Period:    period,
		DateSet:   dateSet,
		Notes:     strings.TrimSpace(req.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, &target); err != nil {
		return domain.BranchTarget{}, err
	}

	s.log.Info("branch target created",
		zap.String("branch_target_id", target.ID.String()),
		zap.String("period", string(period)),
	)
	return target, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	items, err := s.repo.Find(ctx, nil,
		option.ApplyPagination(pagination.Pagination{PageToken: req.PageToken, PageSize: req.PageSize}),
		option.WithSortBy(option.QuerySortBy{Field: "created_at", Desc: true}),
	)
	if err != nil {
		return domain.ListResponse{}, err
	}

	items, pageInfo := pagination.BuildCursorPageInfo(items, req.PageSize, func(t *domain.BranchTarget) string {
		return pagination.RecordCursor(t.ID.String(), t.CreatedAt)
	})

	targets := make([]domain.BranchTarget, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		targets = append(targets, *item)
	}

	return domain.ListResponse{PageInfo: pageInfo, BranchTargets: targets}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.BranchTarget, error) {
	targetID, err := parseID(id)
	if err != nil {
		return domain.BranchTarget{}, err
	}
	return s.find(ctx, targetID)
}

// Latest returns nil when no branch target was ever set.
func (s *Service) Latest(ctx context.Context) (*domain.BranchTarget, error) {
	return s.repo.FindOne(ctx, nil,
		option.WithSortBy(option.QuerySortBy{Field: "created_at", Desc: true}),
	)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (domain.BranchTarget, error) {
	targetID, err := parseID(req.ID)
	if err != nil {
		return domain.BranchTarget{}, err
	}

	if _, err := s.find(ctx, targetID); err != nil {
		return domain.BranchTarget{}, err
	}

	fields := map[string]any{}
	if req.Amount.Valid {
		if !req.Amount.Decimal.IsPositive() {
			return domain.BranchTarget{}, domain.ErrInvalidAmount
		}
		fields["amount"] = req.Amount.Decimal.Round(2)
	}
	if req.Period != nil {
		period, err := targetdomain.ParsePeriod(strings.ToLower(strings.TrimSpace(*req.Period)))
		if err != nil {
			return domain.BranchTarget{}, err
		}
		fields["period"] = period
	}
	if req.DateSet != nil && !req.DateSet.IsZero() {
		fields["date_set"] = req.DateSet.UTC()
	}
	if req.Notes != nil {
		fields["notes"] = strings.TrimSpace(*req.Notes)
	}

	if len(fields) > 0 {
		fields["updated_at"] = s.clock.Now().UTC()
		if _, err := s.repo.Update(ctx, int64(targetID), fields); err != nil {
			return domain.BranchTarget{}, err
		}
	}

	return s.find(ctx, targetID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	targetID, err := parseID(id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, int64(targetID))
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	s.log.Info("branch target deleted", zap.String("branch_target_id", targetID.String()))
	return nil
}

func (s *Service) find(ctx context.Context, id snowflake.ID) (domain.BranchTarget, error) {
	item, err := s.repo.FindOne(ctx, &domain.BranchTarget{ID: id})
	if err != nil {
		return domain.BranchTarget{}, err
	}
	if item == nil {
		return domain.BranchTarget{}, domain.ErrNotFound
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
