package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/clinicdesk/internal/treatment/domain"
	"github.com/smallbiznis/clinicdesk/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupService(t *testing.T) domain.Service {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Treatment{}))

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)

	return New(Params{DB: conn, Log: zap.NewNop(), GenID: node})
}

func TestCreateDerivesCode(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRequest{
		Name:            "Hydra Facial (Deluxe)",
		Category:        "Skin",
		Price:           decimal.RequireFromString("2499.999"),
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, "hydra-facial-deluxe", created.Code)
	assert.Equal(t, "2500.00", created.Price.StringFixed(2))

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "hydra facial deluxe"})
	assert.ErrorIs(t, err, domain.ErrCodeExists)
}

func TestCreateTreatmentValidation(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "Peel", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "Peel", DurationMinutes: -5})
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "Peel", Code: "!!!"})
	assert.ErrorIs(t, err, domain.ErrInvalidCode)
}

func TestUpdateTreatmentPrice(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRequest{Name: "Laser Hair Removal", Price: decimal.NewFromInt(3000)})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, domain.UpdateRequest{
		ID:    created.ID.String(),
		Price: decimal.NewNullDecimal(decimal.RequireFromString("3500.5")),
	})
	require.NoError(t, err)
	assert.Equal(t, "3500.50", updated.Price.StringFixed(2))
	assert.Equal(t, "laser-hair-removal", updated.Code)

	_, err = svc.Update(ctx, domain.UpdateRequest{
		ID:    created.ID.String(),
		Price: decimal.NewNullDecimal(decimal.NewFromInt(-1)),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestListByCategory(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	for _, req := range []domain.CreateRequest{
		{Name: "Chemical Peel", Category: "Skin"},
		{Name: "Hair Spa", Category: "Hair"},
		{Name: "Skin Polish", Category: "Skin"},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	resp, err := svc.List(ctx, domain.ListRequest{Category: "Skin"})
	require.NoError(t, err)
	assert.Len(t, resp.Treatments, 2)

	resp, err = svc.List(ctx, domain.ListRequest{Name: "spa"})
	require.NoError(t, err)
	require.Len(t, resp.Treatments, 1)
	assert.Equal(t, "hair-spa", resp.Treatments[0].Code)
}
