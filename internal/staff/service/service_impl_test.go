package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/clinicdesk/internal/staff/domain"
	"github.com/smallbiznis/clinicdesk/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupService(t *testing.T) domain.Service {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Staff{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{DB: conn, Log: zap.NewNop(), GenID: node})
}

func TestCreateValidates(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  domain.CreateRequest
		want error
	}{
		{name: "missing name", req: domain.CreateRequest{Role: "Therapist"}, want: domain.ErrInvalidName},
		{name: "missing role", req: domain.CreateRequest{Name: "Priya"}, want: domain.ErrInvalidRole},
		{name: "bad email", req: domain.CreateRequest{Name: "Priya", Role: "Therapist", Email: "priya@"}, want: domain.ErrInvalidEmail},
		{name: "negative experience", req: domain.CreateRequest{Name: "Priya", Role: "Therapist", ExperienceYears: -1}, want: domain.ErrInvalidExperience},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestStaffLifecycle(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRequest{
		Name:            "  Priya Nair ",
		Role:            "Therapist",
		Email:           "priya@clinic.test",
		ExperienceYears: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, "Priya Nair", created.Name)
	assert.NotZero(t, created.ID)

	role := "Senior Therapist"
	updated, err := svc.Update(ctx, domain.UpdateRequest{ID: created.ID.String(), Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "Senior Therapist", updated.Role)
	assert.Equal(t, "Priya Nair", updated.Name)
	assert.Equal(t, 8, updated.ExperienceYears)

	blank := " "
	_, err = svc.Update(ctx, domain.UpdateRequest{ID: created.ID.String(), Name: &blank})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	got, err := svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Senior Therapist", got.Role)

	require.NoError(t, svc.Delete(ctx, created.ID.String()))
	_, err = svc.GetByID(ctx, created.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID.String()), domain.ErrNotFound)
}

func TestListFiltersByName(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	for _, name := range []string{"Anne Smith", "Bob Jones", "Joanna Lee"} {
		_, err := svc.Create(ctx, domain.CreateRequest{Name: name, Role: "Receptionist"})
		require.NoError(t, err)
	}

	resp, err := svc.List(ctx, domain.ListRequest{Name: "ANN"})
	require.NoError(t, err)
	require.Len(t, resp.Members, 2)
	assert.False(t, resp.HasMore)

	resp, err = svc.List(ctx, domain.ListRequest{PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Members, 2)
	assert.True(t, resp.HasMore)
	assert.NotEmpty(t, resp.NextPageToken)
}

func TestInvalidID(t *testing.T) {
	svc := setupService(t)
	_, err := svc.GetByID(context.Background(), "not-a-number")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
