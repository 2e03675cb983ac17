package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	doctordomain "github.com/smallbiznis/clinicdesk/internal/doctor/domain"
	staffdomain "github.com/smallbiznis/clinicdesk/internal/staff/domain"
	"github.com/smallbiznis/clinicdesk/internal/target/domain"
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
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       repository.Repository[domain.Target]
	staffRepo  repository.Repository[staffdomain.Staff]
	doctorRepo repository.Repository[doctordomain.Doctor]
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("target.service"),
		genID:      p.GenID,
		repo:       repository.ProvideStore[domain.Target](p.DB),
		staffRepo:  repository.ProvideStore[staffdomain.Staff](p.DB),
		doctorRepo: repository.ProvideStore[doctordomain.Doctor](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Target, error) {
	kind, err := domain.ParseAssigneeKind(strings.ToLower(strings.TrimSpace(req.AssigneeKind)))
	if err != nil {
		return domain.Target{}, err
	}

	assigneeID, err := snowflake.ParseString(strings.TrimSpace(req.AssigneeID))
	if err != nil || assigneeID == 0 {
		return domain.Target{}, domain.ErrInvalidAssigneeID
	}

	if !req.TargetAmount.IsPositive() {
		return domain.Target{}, domain.ErrInvalidAmount
	}

	period, err := domain.ParsePeriod(strings.ToLower(strings.TrimSpace(req.Period)))
	if err != nil {
		return domain.Target{}, err
	}

	names, err := s.assigneeNames(ctx, kind, []snowflake.ID{assigneeID})
	if err != nil {
		return domain.Target{}, err
	}
	name, ok := names[assigneeID]
	if !ok {
		return domain.Target{}, domain.ErrAssigneeNotFound
	}

	now := time.Now().UTC()
	target := domain.Target{
		ID:           s.genID.Generate(),
		AssigneeKind: kind,
		AssigneeID:   assigneeID,
		TargetAmount: req.TargetAmount.Round(2),
		Period:       period,
		Notes:        strings.TrimSpace(req.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, &target); err != nil {
		return domain.Target{}, err
	}
	target.AssigneeName = name

	s.log.Info("target created",
		zap.String("target_id", target.ID.String()),
		zap.String("assignee_kind", string(kind)),
		zap.String("assignee_id", assigneeID.String()),
	)
	return target, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	filter := &domain.Target{}
	if raw := strings.TrimSpace(req.AssigneeKind); raw != "" {
		kind, err := domain.ParseAssigneeKind(strings.ToLower(raw))
		if err != nil {
			return domain.ListResponse{}, err
		}
		filter.AssigneeKind = kind
	}
	if raw := strings.TrimSpace(req.AssigneeID); raw != "" {
		assigneeID, err := snowflake.ParseString(raw)
		if err != nil || assigneeID == 0 {
			return domain.ListResponse{}, domain.ErrInvalidAssigneeID
		}
		filter.AssigneeID = assigneeID
	}

	items, err := s.repo.Find(ctx, filter,
		option.ApplyPagination(pagination.Pagination{PageToken: req.PageToken, PageSize: req.PageSize}),
		option.WithSortBy(option.QuerySortBy{Field: "created_at", Desc: true}),
	)
	if err != nil {
		return domain.ListResponse{}, err
	}

	items, pageInfo := pagination.BuildCursorPageInfo(items, req.PageSize, func(t *domain.Target) string {
		return pagination.RecordCursor(t.ID.String(), t.CreatedAt)
	})

	targets := make([]domain.Target, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		targets = append(targets, *item)
	}
	if err := s.resolveNames(ctx, targets); err != nil {
		return domain.ListResponse{}, err
	}

	return domain.ListResponse{PageInfo: pageInfo, Targets: targets}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Target, error) {
	targetID, err := parseID(id)
	if err != nil {
		return domain.Target{}, err
	}
	return s.find(ctx, targetID)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (domain.Target, error) {
	targetID, err := parseID(req.ID)
	if err != nil {
		return domain.Target{}, err
	}

	if _, err := s.find(ctx, targetID); err != nil {
		return domain.Target{}, err
	}

	fields := map[string]any{}
	if req.TargetAmount.Valid {
		if !req.TargetAmount.Decimal.IsPositive() {
			return domain.Target{}, domain.ErrInvalidAmount
		}
		fields["target_amount"] = req.TargetAmount.Decimal.Round(2)
	}
	if req.Period != nil {
		period, err := domain.ParsePeriod(strings.ToLower(strings.TrimSpace(*req.Period)))
		if err != nil {
			return domain.Target{}, err
		}
		fields["period"] = period
	}
	if req.Notes != nil {
		fields["notes"] = strings.TrimSpace(*req.Notes)
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now().UTC()
		if _, err := s.repo.Update(ctx, int64(targetID), fields); err != nil {
			return domain.Target{}, err
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

	s.log.Info("target deleted", zap.String("target_id", targetID.String()))
	return nil
}

// resolveNames fills AssigneeName in place. Targets whose assignee was deleted
// keep an empty name.
func (s *Service) resolveNames(ctx context.Context, targets []domain.Target) error {
	ids := map[domain.AssigneeKind][]snowflake.ID{}
	for _, t := range targets {
		ids[t.AssigneeKind] = append(ids[t.AssigneeKind], t.AssigneeID)
	}

	names := map[domain.AssigneeKind]map[snowflake.ID]string{}
	for kind, kindIDs := range ids {
		resolved, err := s.assigneeNames(ctx, kind, kindIDs)
		if err != nil {
			return err
		}
		names[kind] = resolved
	}

	for i := range targets {
		targets[i].AssigneeName = names[targets[i].AssigneeKind][targets[i].AssigneeID]
	}
	return nil
}

func (s *Service) assigneeNames(ctx context.Context, kind domain.AssigneeKind, ids []snowflake.ID) (map[snowflake.ID]string, error) {
	out := make(map[snowflake.ID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	byIDs := option.Func(func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN ?", ids)
	})

	switch kind {
	case domain.AssigneeStaff:
		members, err := s.staffRepo.Find(ctx, nil, byIDs)
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			out[m.ID] = m.Name
		}
	case domain.AssigneeDoctor:
		doctors, err := s.doctorRepo.Find(ctx, nil, byIDs)
		if err != nil {
			return nil, err
		}
		for _, d := range doctors {
			out[d.ID] = d.Name
		}
	}
	return out, nil
}

func (s *Service) find(ctx context.Context, id snowflake.ID) (domain.Target, error) {
	item, err := s.repo.FindOne(ctx, &domain.Target{ID: id})
	if err != nil {
		return domain.Target{}, err
	}
	if item == nil {
		return domain.Target{}, domain.ErrNotFound
	}

	targets := []domain.Target{*item}
	if err := s.resolveNames(ctx, targets); err != nil {
		return domain.Target{}, err
	}
	return targets[0], nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
