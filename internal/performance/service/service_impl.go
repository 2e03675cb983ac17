package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	billdomain "github.com/smallbiznis/clinicdesk/internal/bill/domain"
	"github.com/smallbiznis/clinicdesk/internal/clock"
	"github.com/smallbiznis/clinicdesk/internal/config"
	doctordomain "github.com/smallbiznis/clinicdesk/internal/doctor/domain"
	"github.com/smallbiznis/clinicdesk/internal/performance/domain"
	staffdomain "github.com/smallbiznis/clinicdesk/internal/staff/domain"
	targetdomain "github.com/smallbiznis/clinicdesk/internal/target/domain"
	"github.com/smallbiznis/clinicdesk/pkg/db/option"
	"github.com/smallbiznis/clinicdesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Clock  clock.Clock
	Clinic *config.ClinicConfigHolder
}

type Service struct {
	log        *zap.Logger
	clock      clock.Clock
	clinic     *config.ClinicConfigHolder
	targetRepo repository.Repository[targetdomain.Target]
	billRepo   repository.Repository[billdomain.Bill]
	staffRepo  repository.Repository[staffdomain.Staff]
	doctorRepo repository.Repository[doctordomain.Doctor]
}

func New(p Params) domain.Service {
	return &Service{
		log:        p.Log.Named("performance.service"),
		clock:      p.Clock,
		clinic:     p.Clinic,
		targetRepo: repository.ProvideStore[targetdomain.Target](p.DB),
		billRepo:   repository.ProvideStore[billdomain.Bill](p.DB),
		staffRepo:  repository.ProvideStore[staffdomain.Staff](p.DB),
		doctorRepo: repository.ProvideStore[doctordomain.Doctor](p.DB),
	}
}

var directoryOrder = option.WithSortBy(option.QuerySortBy{Field: "created_at"})

func (s *Service) StaffPerformance(ctx context.Context, req domain.Request) (domain.Report, error) {
	return s.report(ctx, req, targetdomain.AssigneeStaff, func(ctx context.Context) ([]domain.Assignee, error) {
		members, err := s.staffRepo.Find(ctx, nil, directoryOrder)
		if err != nil {
			return nil, fmt.Errorf("list staff: %w", err)
		}
		out := make([]domain.Assignee, 0, len(members))
		for _, m := range members {
			out = append(out, domain.Assignee{ID: m.ID.String(), Name: m.Name})
		}
		return out, nil
	}, func(b *billdomain.Bill) string {
		if b.HouseSale {
			return ""
		}
		return b.AssignedStaff
	})
}

func (s *Service) DoctorPerformance(ctx context.Context, req domain.Request) (domain.Report, error) {
	return s.report(ctx, req, targetdomain.AssigneeDoctor, func(ctx context.Context) ([]domain.Assignee, error) {
		doctors, err := s.doctorRepo.Find(ctx, nil, directoryOrder)
		if err != nil {
			return nil, fmt.Errorf("list doctors: %w", err)
		}
		out := make([]domain.Assignee, 0, len(doctors))
		for _, d := range doctors {
			out = append(out, domain.Assignee{ID: d.ID.String(), Name: d.Name})
		}
		return out, nil
	}, func(b *billdomain.Bill) string {
		return b.AssignedDoctor
	})
}

type directoryFunc func(ctx context.Context) ([]domain.Assignee, error)

// report fetches the three inputs concurrently. Any failed fetch fails the
// whole report.
func (s *Service) report(
	ctx context.Context,
	req domain.Request,
	kind targetdomain.AssigneeKind,
	loadDirectory directoryFunc,
	assigneeName func(*billdomain.Bill) string,
) (domain.Report, error) {
	var (
		targets   []domain.Target
		bills     []domain.Bill
		directory []domain.Assignee
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.targetRepo.Find(gctx, &targetdomain.Target{AssigneeKind: kind})
		if err != nil {
			return fmt.Errorf("list targets: %w", err)
		}
		targets = make([]domain.Target, 0, len(rows))
		for _, t := range rows {
			targets = append(targets, domain.Target{
				AssigneeID: t.AssigneeID.String(),
				Amount:     decimal.NewNullDecimal(t.TargetAmount),
				CreatedAt:  t.CreatedAt,
			})
		}
		return nil
	})
	g.Go(func() error {
		rows, err := s.billRepo.Find(gctx, nil)
		if err != nil {
			return fmt.Errorf("list bills: %w", err)
		}
		bills = make([]domain.Bill, 0, len(rows))
		for _, b := range rows {
			name := assigneeName(b)
			if name == "" {
				continue
			}
			bills = append(bills, domain.Bill{
				AssigneeName: name,
				AmountPaid:   decimal.NewNullDecimal(b.AmountPaid),
				CreatedAt:    b.CreatedAt,
			})
		}
		return nil
	})
	g.Go(func() error {
		rows, err := loadDirectory(gctx)
		if err != nil {
			return err
		}
		directory = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Warn("performance fetch failed", zap.String("assignee_kind", string(kind)), zap.Error(err))
		return domain.Report{}, err
	}

	raw := req.Range
	if strings.TrimSpace(raw) == "" {
		raw = s.clinic.Get().DefaultReportRange
	}
	rng := domain.ParseRange(raw)
	summaries := domain.Aggregate(domain.Input{
		Targets:    targets,
		Bills:      bills,
		Directory:  directory,
		Range:      rng,
		NameFilter: req.Name,
	}, s.clock.Now(), s.clinic.Get().Location())

	return domain.Report{Range: rng, Summaries: summaries}, nil
}
