package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	billdomain "github.com/smallbiznis/clinicdesk/internal/bill/domain"
	"github.com/smallbiznis/clinicdesk/internal/config"
	"github.com/smallbiznis/clinicdesk/internal/report/domain"
	"github.com/smallbiznis/clinicdesk/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupService(t *testing.T) domain.Service {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&billdomain.Bill{}))

	node, err := snowflake.NewNode(10)
	require.NoError(t, err)

	seed := []struct {
		client, staff, doctor string
		house                 bool
		total, paid           string
		date                  time.Time
	}{
		{"Kavya", "Asha", "Dr. Rao", false, "1180", "1000", time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)},
		{"Ravi", "", "", true, "500", "500", time.Date(2026, 3, 3, 11, 0, 0, 0, time.UTC)},
		{"Kavya", "Bala", "", false, "300", "100", time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)},
		{"Meena", "Asha", "Dr. Rao", false, "200", "200", time.Date(2026, 3, 5, 23, 30, 0, 0, time.UTC)},
		{"Old", "Asha", "", false, "999", "999", time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)},
	}
	for _, s := range seed {
		id := node.Generate()
		total := decimal.RequireFromString(s.total)
		paid := decimal.RequireFromString(s.paid)
		bill := billdomain.Bill{
			ID:             id,
			Number:         "BILL-" + id.String(),
			ClientName:     s.client,
			AssignedStaff:  s.staff,
			HouseSale:      s.house,
			AssignedDoctor: s.doctor,
			Service:        "Peel",
			TotalSessions:  1,
			Cost:           total,
			TotalAmount:    total,
			AmountPaid:     paid,
			PendingAmount:  total.Sub(paid),
			PaymentMethod:  billdomain.PaymentCash,
			Date:           s.date,
			CreatedAt:      s.date,
			UpdatedAt:      s.date,
		}
		require.NoError(t, conn.Create(&bill).Error)
	}

	return New(Params{
		DB:     conn,
		Log:    zap.NewNop(),
		Clinic: config.NewStaticClinicConfigHolder(config.ClinicConfig{Timezone: "UTC"}),
	})
}

func keys(groups []domain.Group) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Key)
	}
	return out
}

func TestBillsGroupedByStaff(t *testing.T) {
	svc := setupService(t)
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	report, err := svc.Bills(context.Background(), domain.Request{From: &from, To: &to})
	require.NoError(t, err)

	assert.Equal(t, domain.GroupByStaff, report.GroupBy)
	assert.Equal(t, []string{"Asha", config.DefaultHouseSaleLabel, "Bala"}, keys(report.Groups))
	assert.Len(t, report.Groups[0].Bills, 2)
	assert.Equal(t, "1380.00", report.Groups[0].TotalAmount.StringFixed(2))
	assert.Equal(t, "180.00", report.Groups[0].PendingAmount.StringFixed(2))
	assert.Equal(t, "2180.00", report.TotalAmount.StringFixed(2))
	assert.Equal(t, "1800.00", report.AmountPaid.StringFixed(2))
}

func TestBillsGroupedByDoctorAndClient(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	report, err := svc.Bills(ctx, domain.Request{GroupBy: "doctor"})
	require.NoError(t, err)
	assert.Equal(t, []string{domain.UnassignedKey, "Dr. Rao"}, keys(report.Groups))

	report, err = svc.Bills(ctx, domain.Request{GroupBy: "Client"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Old", "Kavya", "Ravi", "Meena"}, keys(report.Groups))
	assert.Len(t, report.Groups[1].Bills, 2)
}

func TestBillsRejectsBadInput(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Bills(ctx, domain.Request{GroupBy: "service"})
	assert.ErrorIs(t, err, domain.ErrInvalidGroupBy)

	from := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.Bills(ctx, domain.Request{From: &from, To: &to})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}
