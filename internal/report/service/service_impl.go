package service

import (
	"context"
	"strings"
	"time"

	billdomain "github.com/smallbiznis/clinicdesk/internal/bill/domain"
	"github.com/smallbiznis/clinicdesk/internal/config"
	"github.com/smallbiznis/clinicdesk/internal/report/domain"
	"github.com/smallbiznis/clinicdesk/pkg/db/option"
	"github.com/smallbiznis/clinicdesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Clinic *config.ClinicConfigHolder
}

type Service struct {
	log    *zap.Logger
	clinic *config.ClinicConfigHolder
	repo   repository.Repository[billdomain.Bill]
}

func New(p Params) domain.Service {
	return &Service{
		log:    p.Log.Named("report.service"),
		clinic: p.Clinic,
		repo:   repository.ProvideStore[billdomain.Bill](p.DB),
	}
}

func (s *Service) Bills(ctx context.Context, req domain.Request) (domain.BillReport, error) {
	groupBy, err := domain.ParseGroupBy(strings.ToLower(strings.TrimSpace(req.GroupBy)))
	if err != nil {
		return domain.BillReport{}, err
	}

	clinic := s.clinic.Get()
	loc := clinic.Location()

	opts := []option.QueryOption{}
	var from, to *time.Time
	if req.From != nil {
		start := startOfDay(*req.From, loc)
		from = &start
		opts = append(opts, option.ApplyOperator(option.Condition{Field: "date", Operator: option.GTE, Value: start.UTC()}))
	}
	if req.To != nil {
		end := startOfDay(*req.To, loc)
		to = &end
		opts = append(opts, option.ApplyOperator(option.Condition{Field: "date", Operator: option.LT, Value: end.AddDate(0, 0, 1).UTC()}))
	}
	if from != nil && to != nil && to.Before(*from) {
		return domain.BillReport{}, domain.ErrInvalidRange
	}
	opts = append(opts, option.WithSortBy(option.QuerySortBy{Field: "date", Secondary: "created_at"}))

	rows, err := s.repo.Find(ctx, nil, opts...)
	if err != nil {
		return domain.BillReport{}, err
	}
	bills := make([]billdomain.Bill, 0, len(rows))
	for _, row := range rows {
		bills = append(bills, *row)
	}

	report := domain.BillReport{
		GroupBy: groupBy,
		From:    from,
		To:      to,
		Groups:  domain.GroupBills(bills, keyFunc(groupBy, clinic.HouseSaleLabel)),
	}
	for _, g := range report.Groups {
		report.TotalAmount = report.TotalAmount.Add(g.TotalAmount)
		report.AmountPaid = report.AmountPaid.Add(g.AmountPaid)
		report.PendingAmount = report.PendingAmount.Add(g.PendingAmount)
	}

	s.log.Debug("bill report built",
		zap.String("group_by", string(groupBy)),
		zap.Int("bills", len(bills)),
		zap.Int("groups", len(report.Groups)),
	)
	return report, nil
}

func keyFunc(groupBy domain.GroupBy, houseSaleLabel string) func(billdomain.Bill) string {
	switch groupBy {
	case domain.GroupByClient:
		return func(b billdomain.Bill) string { return b.ClientName }
	case domain.GroupByDoctor:
		return func(b billdomain.Bill) string { return b.AssignedDoctor }
	default:
		return func(b billdomain.Bill) string { return b.Attribution().Label(houseSaleLabel) }
	}
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
