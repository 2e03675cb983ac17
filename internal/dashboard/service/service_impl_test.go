package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
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
	targetdomain "github.com/smallbiznis/clinicdesk/internal/target/domain"
	treatmentdomain "github.com/smallbiznis/clinicdesk/internal/treatment/domain"
	"github.com/smallbiznis/clinicdesk/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var now = time.Date(2026, 8, 13, 15, 0, 0, 0, time.UTC)

type fakePerformance struct {
	summaries []performancedomain.Summary
	lastRange string
	err       error
}

func (f *fakePerformance) StaffPerformance(_ context.Context, req performancedomain.Request) (performancedomain.Report, error) {
	f.lastRange = req.Range
	return performancedomain.Report{Summaries: f.summaries}, f.err
}

func (f *fakePerformance) DoctorPerformance(context.Context, performancedomain.Request) (performancedomain.Report, error) {
	return performancedomain.Report{}, nil
}

type fakeBranchTargets struct {
	branchtargetdomain.Service
	latest *branchtargetdomain.BranchTarget
}

func (f *fakeBranchTargets) Latest(context.Context) (*branchtargetdomain.BranchTarget, error) {
	return f.latest, nil
}

func setup(t *testing.T, perf *fakePerformance, branch *fakeBranchTargets) (domain.Service, *gorm.DB, *snowflake.Node) {
	return setupWithClinic(t, perf, branch, config.ClinicConfig{Timezone: "UTC", DefaultReportRange: "this_month"})
}

func setupWithClinic(t *testing.T, perf *fakePerformance, branch *fakeBranchTargets, clinic config.ClinicConfig) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&doctordomain.Doctor{},
		&staffdomain.Staff{},
		&clientdomain.Client{},
		&treatmentdomain.Treatment{},
		&appointmentdomain.Appointment{},
		&billdomain.Bill{},
	))

	node, err := snowflake.NewNode(9)
	require.NoError(t, err)

	svc := New(Params{
		DB:            conn,
		Log:           zap.NewNop(),
		Clock:         clock.NewFakeClock(now),
		Clinic:        config.NewStaticClinicConfigHolder(clinic),
		Performance:   perf,
		BranchTargets: branch,
	})
	return svc, conn, node
}

func summary(name, achieved string) performancedomain.Summary {
	return performancedomain.Summary{Name: name, Achieved: decimal.RequireFromString(achieved)}
}

func createBill(t *testing.T, conn *gorm.DB, node *snowflake.Node, paid, total string, houseSale bool, createdAt time.Time) {
	t.Helper()
	id := node.Generate()
	totalAmount := decimal.RequireFromString(total)
	amountPaid := decimal.RequireFromString(paid)
	bill := billdomain.Bill{
		ID:            id,
		Number:        "BILL-" + id.String(),
		ClientName:    "Kavya",
		HouseSale:     houseSale,
		Service:       "Peel",
		TotalSessions: 1,
		Cost:          totalAmount,
		TotalAmount:   totalAmount,
		AmountPaid:    amountPaid,
		PendingAmount: totalAmount.Sub(amountPaid),
		PaymentMethod: billdomain.PaymentCash,
		Date:          createdAt,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	require.NoError(t, conn.Create(&bill).Error)
}

func TestDashboard(t *testing.T) {
	perf := &fakePerformance{summaries: []performancedomain.Summary{
		summary("A", "100"), summary("B", "900"), summary("C", "300"),
		summary("D", "300"), summary("E", "50"), summary("F", "700"),
	}}
	branch := &fakeBranchTargets{latest: &branchtargetdomain.BranchTarget{
		ID:     42,
		Amount: decimal.NewFromInt(10000),
		Period: targetdomain.PeriodWeekly,
	}}
	svc, conn, node := setup(t, perf, branch)

	require.NoError(t, conn.Create(&doctordomain.Doctor{ID: node.Generate(), Name: "Dr. Rao", Specialty: "Skin", CreatedAt: now, UpdatedAt: now}).Error)
	require.NoError(t, conn.Create(&staffdomain.Staff{ID: node.Generate(), Name: "Asha", Role: "Therapist", CreatedAt: now, UpdatedAt: now}).Error)
	require.NoError(t, conn.Create(&staffdomain.Staff{ID: node.Generate(), Name: "Bala", Role: "Reception", CreatedAt: now, UpdatedAt: now}).Error)

	for _, at := range []time.Time{now.Add(-3 * time.Hour), now.Add(2 * time.Hour), now.AddDate(0, 0, 1)} {
		require.NoError(t, conn.Create(&appointmentdomain.Appointment{
			ID:          node.Generate(),
			ClientName:  "Kavya",
			Treatment:   "Peel",
			ScheduledAt: at,
			Status:      appointmentdomain.StatusScheduled,
			CreatedAt:   now,
			UpdatedAt:   now,
		}).Error)
	}

	createBill(t, conn, node, "1000", "1180", false, now)
	createBill(t, conn, node, "500", "500", true, now.AddDate(0, 0, -1))
	// previous week, same month
	createBill(t, conn, node, "200", "590", false, time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC))
	// previous month
	createBill(t, conn, node, "9000", "9000", false, time.Date(2026, 7, 20, 10, 0, 0, 0, time.UTC))

	got, err := svc.Get(context.Background(), domain.Request{})
	require.NoError(t, err)

	assert.Equal(t, performancedomain.RangeThisMonth, got.Range)
	assert.Equal(t, "this_month", perf.lastRange)
	assert.Equal(t, domain.Counts{Doctors: 1, Staff: 2, AppointmentsToday: 2}, got.Counts)

	assert.Equal(t, 3, got.Totals.Bills)
	assert.Equal(t, "1700.00", got.Totals.Sales.StringFixed(2))
	assert.Equal(t, "2270.00", got.Totals.Billed.StringFixed(2))
	assert.Equal(t, "570.00", got.Totals.Pending.StringFixed(2))

	require.NotNil(t, got.BranchTarget)
	assert.Equal(t, "1500.00", got.BranchTarget.Achieved.StringFixed(2))
	assert.Equal(t, "8500.00", got.BranchTarget.Remaining.StringFixed(2))
	assert.Equal(t, "15.00", got.BranchTarget.ProgressPercent.StringFixed(2))
	assert.Equal(t, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), got.BranchTarget.WindowStart)

	require.Len(t, got.TopStaff, domain.TopStaffLimit)
	names := make([]string, 0, len(got.TopStaff))
	for _, s := range got.TopStaff {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"B", "F", "C", "D", "A"}, names)
}

func TestDashboardWithoutBranchTarget(t *testing.T) {
	svc, _, _ := setup(t, &fakePerformance{}, &fakeBranchTargets{})

	got, err := svc.Get(context.Background(), domain.Request{Range: "all_time"})
	require.NoError(t, err)
	assert.Nil(t, got.BranchTarget)
	assert.Empty(t, got.TopStaff)
	assert.True(t, got.Totals.Sales.IsZero())
}

func TestDashboardDefaultsToAllTime(t *testing.T) {
	perf := &fakePerformance{}
	svc, conn, node := setupWithClinic(t, perf, &fakeBranchTargets{}, config.ClinicConfig{Timezone: "UTC"})

	createBill(t, conn, node, "100", "100", false, now)
	createBill(t, conn, node, "9000", "9000", false, time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC))

	got, err := svc.Get(context.Background(), domain.Request{})
	require.NoError(t, err)
	assert.Equal(t, performancedomain.RangeAllTime, got.Range)
	assert.Equal(t, "all_time", perf.lastRange)
	assert.Equal(t, 2, got.Totals.Bills)
	assert.Equal(t, "9100.00", got.Totals.Sales.StringFixed(2))
}

func TestDashboardFetchFailure(t *testing.T) {
	svc, _, _ := setup(t, &fakePerformance{err: errors.New("boom")}, &fakeBranchTargets{})

	_, err := svc.Get(context.Background(), domain.Request{})
	assert.Error(t, err)
}
