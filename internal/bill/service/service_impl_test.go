package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/clinicdesk/internal/bill/domain"
	"github.com/smallbiznis/clinicdesk/internal/billcalc"
	"github.com/smallbiznis/clinicdesk/internal/clock"
	"github.com/smallbiznis/clinicdesk/internal/config"
	"github.com/smallbiznis/clinicdesk/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupService(t *testing.T) domain.Service {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Bill{}))

	node, err := snowflake.NewNode(5)
	require.NoError(t, err)

	return New(Params{
		DB:     conn,
		Log:    zap.NewNop(),
		GenID:  node,
		Clock:  clock.NewFakeClock(time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)),
		Clinic: config.NewStaticClinicConfigHolder(config.ClinicConfig{}),
	})
}

func ptr[T any](v T) *T { return &v }

func TestCreateDerivesAmounts(t *testing.T) {
	svc := setupService(t)

	bill, err := svc.Create(context.Background(), domain.CreateRequest{
		ClientName:    "Kavya Iyer",
		AssignedStaff: "Priya Nair",
		Service:       "Laser Hair Removal",
		TotalSessions: ptr(6),
		Cost:          "1000",
		AmountPaid:    "500",
		PaymentMethod: "UPI",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(bill.Number, "BILL-"))
	assert.Len(t, bill.Number, len("BILL-")+26)
	assert.Equal(t, "1180.00", bill.TotalAmount.StringFixed(2))
	assert.Equal(t, "680.00", bill.PendingAmount.StringFixed(2))
	assert.Equal(t, domain.PaymentUPI, bill.PaymentMethod)
	assert.Equal(t, "Priya Nair", bill.AssignedStaff)
	assert.False(t, bill.HouseSale)
	assert.Equal(t, time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC), bill.Date)
}

func TestCreateHouseSale(t *testing.T) {
	svc := setupService(t)

	bill, err := svc.Create(context.Background(), domain.CreateRequest{
		ClientName:    "Walk-in",
		AssignedStaff: "clinic sale",
		Service:       "Hair Spa",
		Cost:          "500",
	})
	require.NoError(t, err)
	assert.True(t, bill.HouseSale)
	assert.Empty(t, bill.AssignedStaff)
	assert.Equal(t, 1, bill.TotalSessions)
}

func TestCreateBillValidation(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	base := domain.CreateRequest{ClientName: "Kavya", Service: "Peel", Cost: "100"}

	cases := []struct {
		name   string
		mutate func(*domain.CreateRequest)
		want   error
	}{
		{name: "client", mutate: func(r *domain.CreateRequest) { r.ClientName = "" }, want: domain.ErrInvalidClientName},
		{name: "service", mutate: func(r *domain.CreateRequest) { r.Service = " " }, want: domain.ErrInvalidService},
		{name: "sessions", mutate: func(r *domain.CreateRequest) { r.TotalSessions = ptr(-1) }, want: domain.ErrInvalidTotalSessions},
		{name: "zero sessions", mutate: func(r *domain.CreateRequest) { r.TotalSessions = ptr(0) }, want: domain.ErrInvalidTotalSessions},
		{name: "completed", mutate: func(r *domain.CreateRequest) { r.TotalSessions = ptr(2); r.SessionsCompleted = 3 }, want: domain.ErrInvalidSessionsCompleted},
		{name: "method", mutate: func(r *domain.CreateRequest) { r.PaymentMethod = "barter" }, want: domain.ErrInvalidPaymentMethod},
		{name: "cost", mutate: func(r *domain.CreateRequest) { r.Cost = "free" }, want: billcalc.ErrInvalidCost},
		{name: "overpaid", mutate: func(r *domain.CreateRequest) { r.AmountPaid = "500" }, want: billcalc.ErrNegativePendingAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			_, err := svc.Create(ctx, req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUpdateCostRederivesTotal(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	bill, err := svc.Create(ctx, domain.CreateRequest{
		ClientName:  "Kavya",
		Service:     "Peel",
		Cost:        "1000",
		TotalAmount: "1100",
		AmountPaid:  "100",
	})
	require.NoError(t, err)
	assert.Equal(t, "1100.00", bill.TotalAmount.StringFixed(2))

	updated, err := svc.Update(ctx, domain.UpdateRequest{ID: bill.ID.String(), Cost: ptr(billcalc.Value("2000"))})
	require.NoError(t, err)
	assert.Equal(t, "2360.00", updated.TotalAmount.StringFixed(2))
	assert.Equal(t, "2260.00", updated.PendingAmount.StringFixed(2))

	updated, err = svc.Update(ctx, domain.UpdateRequest{ID: bill.ID.String(), AmountPaid: ptr(billcalc.Value("360"))})
	require.NoError(t, err)
	assert.Equal(t, "2360.00", updated.TotalAmount.StringFixed(2))
	assert.Equal(t, "2000.00", updated.PendingAmount.StringFixed(2))

	notes := "second installment"
	updated, err = svc.Update(ctx, domain.UpdateRequest{ID: bill.ID.String(), Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "2000.00", updated.PendingAmount.StringFixed(2))
	assert.Equal(t, "second installment", updated.Notes)
}

func TestUpdateSessionsAndAttribution(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	bill, err := svc.Create(ctx, domain.CreateRequest{ClientName: "Kavya", Service: "Peel", Cost: "100", TotalSessions: ptr(4)})
	require.NoError(t, err)

	_, err = svc.Update(ctx, domain.UpdateRequest{ID: bill.ID.String(), SessionsCompleted: ptr(5)})
	assert.ErrorIs(t, err, domain.ErrInvalidSessionsCompleted)

	updated, err := svc.Update(ctx, domain.UpdateRequest{
		ID:                bill.ID.String(),
		SessionsCompleted: ptr(2),
		AssignedStaff:     ptr("Clinic Sale"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.SessionsCompleted)
	assert.True(t, updated.HouseSale)

	updated, err = svc.Update(ctx, domain.UpdateRequest{ID: bill.ID.String(), AssignedStaff: ptr("Priya Nair")})
	require.NoError(t, err)
	assert.False(t, updated.HouseSale)
	assert.Equal(t, "Priya Nair", updated.AssignedStaff)
}

func TestListBillsByStaff(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	for _, staff := range []string{"Priya Nair", "Clinic Sale", "Priya Nair", "Rahul"} {
		_, err := svc.Create(ctx, domain.CreateRequest{ClientName: "Kavya", AssignedStaff: staff, Service: "Peel", Cost: "10"})
		require.NoError(t, err)
	}

	resp, err := svc.List(ctx, domain.ListRequest{AssignedStaff: "Priya Nair"})
	require.NoError(t, err)
	assert.Len(t, resp.Bills, 2)

	resp, err = svc.List(ctx, domain.ListRequest{AssignedStaff: "Clinic Sale"})
	require.NoError(t, err)
	require.Len(t, resp.Bills, 1)
	assert.True(t, resp.Bills[0].HouseSale)
}

func TestDerive(t *testing.T) {
	svc := setupService(t)

	form, err := svc.Derive(context.Background(), domain.DeriveRequest{
		Changed: "cost",
		Form:    billcalc.Form{Cost: "1000", AmountPaid: "500"},
	})
	require.NoError(t, err)
	assert.Equal(t, billcalc.Value("1180.00"), form.TotalAmount)
	assert.Equal(t, billcalc.Value("680.00"), form.PendingAmount)

	_, err = svc.Derive(context.Background(), domain.DeriveRequest{Changed: "notes"})
	assert.ErrorIs(t, err, billcalc.ErrInvalidField)
}
