package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	appointmentdomain "github.com/smallbiznis/clinicdesk/internal/appointment/domain"
	billdomain "github.com/smallbiznis/clinicdesk/internal/bill/domain"
	branchtargetdomain "github.com/smallbiznis/clinicdesk/internal/branchtarget/domain"
	clientdomain "github.com/smallbiznis/clinicdesk/internal/client/domain"
	"github.com/smallbiznis/clinicdesk/internal/clock"
	"github.com/smallbiznis/clinicdesk/internal/config"
	"github.com/smallbiznis/clinicdesk/internal/dashboard/domain"
	doctordomain "github.com/smallbiznis/clinicdesk/internal/doctor/domain"
	performancedomain "github.com/smallbiznis/clinicdesk/internal/performance/domain"
	staffdomain "github.com/smallbiznis/clinicdesk/internal/staff/domain"
	treatmentdomain "github.com/smallbiznis/clinicdesk/internal/treatment/domain"
	"github.com/smallbiznis/clinicdesk/pkg/db/option"
	"github.com/smallbiznis/clinicdesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	Clock         clock.Clock
	Clinic        *config.ClinicConfigHolder
	Performance   performancedomain.Service
	BranchTargets branchtargetdomain.Service
}

type Service struct {
	log           *zap.Logger
	clock         clock.Clock
	clinic        *config.ClinicConfigHolder
	performance   performancedomain.Service
	branchTargets branchtargetdomain.Service

	doctorRepo      repository.Repository[doctordomain.Doctor]
	staffRepo       repository.Repository[staffdomain.Staff]
	clientRepo      repository.Repository[clientdomain.Client]
	treatmentRepo   repository.Repository[treatmentdomain.Treatment]
	appointmentRepo repository.Repository[appointmentdomain.Appointment]
	billRepo        repository.Repository[billdomain.Bill]
}

func New(p Params) domain.Service {
	return &Service{
		log:             p.Log.Named("dashboard.service"),
		clock:           p.Clock,
		clinic:          p.Clinic,
		performance:     p.Performance,
		branchTargets:   p.BranchTargets,
		doctorRepo:      repository.ProvideStore[doctordomain.Doctor](p.DB),
		staffRepo:       repository.ProvideStore[staffdomain.Staff](p.DB),
		clientRepo:      repository.ProvideStore[clientdomain.Client](p.DB),
		treatmentRepo:   repository.ProvideStore[treatmentdomain.Treatment](p.DB),
		appointmentRepo: repository.ProvideStore[appointmentdomain.Appointment](p.DB),
		billRepo:        repository.ProvideStore[billdomain.Bill](p.DB),
	}
}

func (s *Service) Get(ctx context.Context, req domain.Request) (domain.Dashboard, error) {
	clinic := s.clinic.Get()
	loc := clinic.Location()
	now := s.clock.Now()

	raw := req.Range
	if strings.TrimSpace(raw) == "" {
		raw = clinic.DefaultReportRange
	}
	rng := performancedomain.ParseRange(raw)

	var (
		counts   domain.Counts
		bills    []*billdomain.Bill
		latest   *branchtargetdomain.BranchTarget
		topStaff []performancedomain.Summary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.counts(gctx, now, loc)
		return err
	})
	g.Go(func() error {
		var err error
		bills, err = s.billRepo.Find(gctx, nil)
		if err != nil {
			return fmt.Errorf("list bills: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		latest, err = s.branchTargets.Latest(gctx)
		if err != nil {
			return fmt.Errorf("latest branch target: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		report, err := s.performance.StaffPerformance(gctx, performancedomain.Request{Range: string(rng)})
		if err != nil {
			return err
		}
		topStaff = rankTop(report.Summaries, domain.TopStaffLimit)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Warn("dashboard fetch failed", zap.Error(err))
		return domain.Dashboard{}, err
	}

	var totals domain.Totals
	for _, b := range bills {
		if !rng.Contains(b.CreatedAt, now, loc) {
			continue
		}
		totals.Bills++
		totals.Sales = totals.Sales.Add(b.AmountPaid)
		totals.Billed = totals.Billed.Add(b.TotalAmount)
		totals.Pending = totals.Pending.Add(b.PendingAmount)
	}

	return domain.Dashboard{
		Range:        rng,
		Counts:       counts,
		Totals:       totals,
		BranchTarget: branchProgress(latest, bills, now, loc),
		TopStaff:     topStaff,
	}, nil
}

func (s *Service) counts(ctx context.Context, now time.Time, loc *time.Location) (domain.Counts, error) {
	var (
		out domain.Counts
		err error
	)
	if out.Doctors, err = s.doctorRepo.Count(ctx, nil); err != nil {
		return domain.Counts{}, fmt.Errorf("count doctors: %w", err)
	}
	if out.Staff, err = s.staffRepo.Count(ctx, nil); err != nil {
		return domain.Counts{}, fmt.Errorf("count staff: %w", err)
	}
	if out.Clients, err = s.clientRepo.Count(ctx, nil); err != nil {
		return domain.Counts{}, fmt.Errorf("count clients: %w", err)
	}
	if out.Treatments, err = s.treatmentRepo.Count(ctx, nil); err != nil {
		return domain.Counts{}, fmt.Errorf("count treatments: %w", err)
	}

	start, end := domain.PeriodWindow("daily", now, loc)
	out.AppointmentsToday, err = s.appointmentRepo.Count(ctx, nil,
		option.ApplyOperator(option.Condition{Field: "scheduled_at", Operator: option.GTE, Value: start.UTC()}),
		option.ApplyOperator(option.Condition{Field: "scheduled_at", Operator: option.LT, Value: end.UTC()}),
	)
	if err != nil {
		return domain.Counts{}, fmt.Errorf("count appointments: %w", err)
	}
	return out, nil
}

func branchProgress(target *branchtargetdomain.BranchTarget, bills []*billdomain.Bill, now time.Time, loc *time.Location) *domain.BranchProgress {
	if target == nil {
		return nil
	}

	start, end := domain.PeriodWindow(target.Period, now, loc)
	achieved := decimal.Zero
	for _, b := range bills {
		created := b.CreatedAt.In(loc)
		if created.Before(start) || !created.Before(end) {
			continue
		}
		achieved = achieved.Add(b.AmountPaid)
	}

	return &domain.BranchProgress{
		ID:              target.ID.String(),
		Amount:          target.Amount,
		Period:          target.Period,
		WindowStart:     start,
		WindowEnd:       end,
		Achieved:        achieved,
		Remaining:       target.Amount.Sub(achieved),
		ProgressPercent: performancedomain.Progress(achieved, target.Amount),
	}
}

// rankTop orders by achieved, highest first. Ties keep directory order.
func rankTop(summaries []performancedomain.Summary, limit int) []performancedomain.Summary {
	ranked := make([]performancedomain.Summary, len(summaries))
	copy(ranked, summaries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Achieved.GreaterThan(ranked[j].Achieved)
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
