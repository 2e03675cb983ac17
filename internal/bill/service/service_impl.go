package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"github.com/smallbiznis/clinicdesk/internal/bill/domain"
	"github.com/smallbiznis/clinicdesk/internal/billcalc"
	"github.com/smallbiznis/clinicdesk/internal/clock"
	"github.com/smallbiznis/clinicdesk/internal/config"
	"github.com/smallbiznis/clinicdesk/pkg/db/option"
	"github.com/smallbiznis/clinicdesk/pkg/db/pagination"
	"github.com/smallbiznis/clinicdesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const numberPrefix = "BILL-"

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Clinic *config.ClinicConfigHolder
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	clock  clock.Clock
	clinic *config.ClinicConfigHolder
	repo   repository.Repository[domain.Bill]
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("bill.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		clinic: p.Clinic,
		repo:   repository.ProvideStore[domain.Bill](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Bill, error) {
	clientName := strings.TrimSpace(req.ClientName)
	if clientName == "" {
		return domain.Bill{}, domain.ErrInvalidClientName
	}

	serviceName := strings.TrimSpace(req.Service)
	if serviceName == "" {
		return domain.Bill{}, domain.ErrInvalidService
	}

	totalSessions := 1
	if req.TotalSessions != nil {
		totalSessions = *req.TotalSessions
	}
	if err := validateSessions(totalSessions, req.SessionsCompleted); err != nil {
		return domain.Bill{}, err
	}

	method, err := domain.ParsePaymentMethod(strings.ToLower(strings.TrimSpace(req.PaymentMethod)))
	if err != nil {
		return domain.Bill{}, err
	}

	amounts, err := billcalc.Submit(billcalc.Form{
		Cost:        req.Cost,
		TotalAmount: req.TotalAmount,
		AmountPaid:  req.AmountPaid,
	})
	if err != nil {
		return domain.Bill{}, err
	}

	now := s.clock.Now().UTC()
	date := now
	if req.Date != nil && !req.Date.IsZero() {
		date = req.Date.UTC()
	}

	attribution := s.resolveAttribution(req.AssignedStaff)
	bill := domain.Bill{
		ID:                s.genID.Generate(),
		Number:            numberPrefix + ulid.Make().String(),
		ClientName:        clientName,
		AssignedStaff:     attribution.Staff,
		HouseSale:         attribution.HouseSale,
		AssignedDoctor:    strings.TrimSpace(req.AssignedDoctor),
		Service:           serviceName,
		TotalSessions:     totalSessions,
		SessionsCompleted: req.SessionsCompleted,
		Cost:              amounts.Cost,
		TotalAmount:       amounts.TotalAmount,
		AmountPaid:        amounts.AmountPaid,
		PendingAmount:     amounts.PendingAmount,
		PaymentMethod:     method,
		Notes:             strings.TrimSpace(req.Notes),
		Date:              date,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, &bill); err != nil {
		return domain.Bill{}, err
	}

	s.log.Info("bill created",
		zap.String("bill_id", bill.ID.String()),
		zap.String("number", bill.Number),
		zap.Bool("house_sale", bill.HouseSale),
	)
	return bill, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return domain.ListResponse{}, domain.ErrInvalidRange
	}

	opts := []option.QueryOption{option.WithNameSearch("client_name", req.ClientName)}
	if staff := strings.TrimSpace(req.AssignedStaff); staff != "" {
		attribution := s.resolveAttribution(staff)
		if attribution.HouseSale {
			opts = append(opts, option.ApplyOperator(option.Condition{Field: "house_sale", Value: true}))
		} else {
			opts = append(opts, option.ApplyOperator(option.Condition{Field: "assigned_staff", Value: attribution.Staff}))
		}
	}
	if req.From != nil {
		opts = append(opts, option.ApplyOperator(option.Condition{Field: "date", Operator: option.GTE, Value: req.From.UTC()}))
	}
	if req.To != nil {
		opts = append(opts, option.ApplyOperator(option.Condition{Field: "date", Operator: option.LTE, Value: req.To.UTC()}))
	}
	opts = append(opts,
		option.ApplyPagination(pagination.Pagination{PageToken: req.PageToken, PageSize: req.PageSize}),
		option.WithSortBy(option.QuerySortBy{Field: "created_at", Desc: true}),
	)

	items, err := s.repo.Find(ctx, nil, opts...)
	if err != nil {
		return domain.ListResponse{}, err
	}

	items, pageInfo := pagination.BuildCursorPageInfo(items, req.PageSize, func(b *domain.Bill) string {
		return pagination.RecordCursor(b.ID.String(), b.CreatedAt)
	})

	bills := make([]domain.Bill, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		bills = append(bills, *item)
	}

	return domain.ListResponse{PageInfo: pageInfo, Bills: bills}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Bill, error) {
	billID, err := parseID(id)
	if err != nil {
		return domain.Bill{}, err
	}
	return s.find(ctx, billID)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (domain.Bill, error) {
	billID, err := parseID(req.ID)
	if err != nil {
		return domain.Bill{}, err
	}

	current, err := s.find(ctx, billID)
	if err != nil {
		return domain.Bill{}, err
	}

	fields := map[string]any{}
	if req.ClientName != nil {
		clientName := strings.TrimSpace(*req.ClientName)
		if clientName == "" {
			return domain.Bill{}, domain.ErrInvalidClientName
		}
		fields["client_name"] = clientName
	}
	if req.Service != nil {
		serviceName := strings.TrimSpace(*req.Service)
		if serviceName == "" {
			return domain.Bill{}, domain.ErrInvalidService
		}
		fields["service"] = serviceName
	}
	if req.AssignedStaff != nil {
		attribution := s.resolveAttribution(*req.AssignedStaff)
		fields["assigned_staff"] = attribution.Staff
		fields["house_sale"] = attribution.HouseSale
	}
	if req.AssignedDoctor != nil {
		fields["assigned_doctor"] = strings.TrimSpace(*req.AssignedDoctor)
	}

	if req.TotalSessions != nil || req.SessionsCompleted != nil {
		totalSessions := current.TotalSessions
		if req.TotalSessions != nil {
			totalSessions = *req.TotalSessions
		}
		completed := current.SessionsCompleted
		if req.SessionsCompleted != nil {
			completed = *req.SessionsCompleted
		}
		if err := validateSessions(totalSessions, completed); err != nil {
			return domain.Bill{}, err
		}
		fields["total_sessions"] = totalSessions
		fields["sessions_completed"] = completed
	}

	if req.Cost != nil || req.TotalAmount != nil || req.AmountPaid != nil {
		amounts, err := billcalc.Submit(mergeForm(current, req))
		if err != nil {
			return domain.Bill{}, err
		}
		fields["cost"] = amounts.Cost
		fields["total_amount"] = amounts.TotalAmount
		fields["amount_paid"] = amounts.AmountPaid
		fields["pending_amount"] = amounts.PendingAmount
	}

	if req.PaymentMethod != nil {
		method, err := domain.ParsePaymentMethod(strings.ToLower(strings.TrimSpace(*req.PaymentMethod)))
		if err != nil {
			return domain.Bill{}, err
		}
		fields["payment_method"] = method
	}
	if req.Notes != nil {
		fields["notes"] = strings.TrimSpace(*req.Notes)
	}
	if req.Date != nil && !req.Date.IsZero() {
		fields["date"] = req.Date.UTC()
	}

	if len(fields) > 0 {
		fields["updated_at"] = s.clock.Now().UTC()
		if _, err := s.repo.Update(ctx, int64(billID), fields); err != nil {
			return domain.Bill{}, err
		}
	}

	return s.find(ctx, billID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	billID, err := parseID(id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, int64(billID))
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	s.log.Info("bill deleted", zap.String("bill_id", billID.String()))
	return nil
}

func (s *Service) Derive(ctx context.Context, req domain.DeriveRequest) (billcalc.Form, error) {
	field, err := billcalc.ParseField(req.Changed)
	if err != nil {
		return billcalc.Form{}, err
	}
	return billcalc.Apply(req.Form, field), nil
}

// mergeForm overlays the submitted money fields on the stored bill. A new cost
// without an explicit total re-derives the total.
func mergeForm(current domain.Bill, req domain.UpdateRequest) billcalc.Form {
	form := billcalc.Form{
		Cost:        billcalc.Value(billcalc.Format(current.Cost)),
		TotalAmount: billcalc.Value(billcalc.Format(current.TotalAmount)),
		AmountPaid:  billcalc.Value(billcalc.Format(current.AmountPaid)),
	}
	if req.Cost != nil {
		form.Cost = *req.Cost
		form.TotalAmount = ""
	}
	if req.TotalAmount != nil {
		form.TotalAmount = *req.TotalAmount
	}
	if req.AmountPaid != nil {
		form.AmountPaid = *req.AmountPaid
	}
	return form
}

func (s *Service) resolveAttribution(raw string) domain.Attribution {
	staff := strings.TrimSpace(raw)
	if staff != "" && strings.EqualFold(staff, s.clinic.Get().HouseSaleLabel) {
		return domain.HouseSaleAttribution()
	}
	return domain.StaffAttribution(staff)
}

func validateSessions(total, completed int) error {
	if total < 1 {
		return domain.ErrInvalidTotalSessions
	}
	if completed < 0 || completed > total {
		return domain.ErrInvalidSessionsCompleted
	}
	return nil
}

func (s *Service) find(ctx context.Context, id snowflake.ID) (domain.Bill, error) {
	item, err := s.repo.FindOne(ctx, &domain.Bill{ID: id})
	if err != nil {
		return domain.Bill{}, err
	}
	if item == nil {
		return domain.Bill{}, domain.ErrNotFound
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

