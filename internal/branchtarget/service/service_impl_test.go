package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/clinicdesk/internal/branchtarget/domain"
	"github.com/smallbiznis/clinicdesk/internal/clock"
	targetdomain "github.com/smallbiznis/clinicdesk/internal/target/domain"
	"github.com/smallbiznis/clinicdesk/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupService(t *testing.T) (domain.Service, *clock.FakeClock) {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.BranchTarget{}))

	node, err := snowflake.NewNode(7)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	return New(Params{DB: conn, Log: zap.NewNop(), GenID: node, Clock: clk}), clk
}

func TestCreateBranchTarget(t *testing.T) {
	svc, clk := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.Create(ctx, domain.CreateRequest{Amount: decimal.NewFromInt(10), Period: "biweekly"})
	assert.ErrorIs(t, err, targetdomain.ErrInvalidPeriod)

	created, err := svc.Create(ctx, domain.CreateRequest{Amount: decimal.NewFromInt(100000), Period: "Quarterly"})
	require.NoError(t, err)
	assert.Equal(t, targetdomain.PeriodQuarterly, created.Period)
	assert.True(t, created.DateSet.Equal(clk.Now()))
}

func TestLatestBranchTarget(t *testing.T) {
	svc, clk := setupService(t)
	ctx := context.Background()

	latest, err := svc.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	_, err = svc.Create(ctx, domain.CreateRequest{Amount: decimal.NewFromInt(50000), Period: "monthly"})
	require.NoError(t, err)
	clk.Advance(time.Hour)
	second, err := svc.Create(ctx, domain.CreateRequest{Amount: decimal.NewFromInt(90000), Period: "yearly"})
	require.NoError(t, err)

	latest, err = svc.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)
}

func TestUpdateAndDeleteBranchTarget(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRequest{Amount: decimal.NewFromInt(1000)})
	require.NoError(t, err)
	assert.Equal(t, targetdomain.PeriodMonthly, created.Period)

	notes := "festive season"
	updated, err := svc.Update(ctx, domain.UpdateRequest{
		ID:     created.ID.String(),
		Amount: decimal.NewNullDecimal(decimal.RequireFromString("2500.5")),
		Notes:  &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, "2500.50", updated.Amount.StringFixed(2))
	assert.Equal(t, "festive season", updated.Notes)

	_, err = svc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	require.NoError(t, svc.Delete(ctx, created.ID.String()))
	_, err = svc.GetByID(ctx, created.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
