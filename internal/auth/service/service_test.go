package service

import (
	"context"
	"testing"
	"time"

	"github.com/smallbiznis/clinicdesk/internal/auth/domain"
	"github.com/smallbiznis/clinicdesk/internal/auth/password"
	"github.com/smallbiznis/clinicdesk/internal/clock"
	"github.com/smallbiznis/clinicdesk/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, auth config.AuthConfig) (domain.Service, *clock.FakeClock) {
	t.Helper()
	if auth.Username == "" {
		auth.Username = "admin"
	}
	if auth.JWTSecret == "" {
		auth.JWTSecret = "test-secret"
	}
	clk := clock.NewFakeClock(time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC))
	svc, err := New(Params{Config: config.Config{Auth: auth}, Log: zap.NewNop(), Clock: clk})
	require.NoError(t, err)
	return svc, clk
}

func TestLoginWithHash(t *testing.T) {
	hash, err := password.Hash("s3cret-pass")
	require.NoError(t, err)
	svc, _ := newTestService(t, config.AuthConfig{PasswordHash: hash, TokenTTLMins: 60})
	ctx := context.Background()

	_, err = svc.Login(ctx, domain.LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{Username: "root", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	res, err := svc.Login(ctx, domain.LoginRequest{Username: " admin ", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC), res.ExpiresAt.UTC())

	principal, err := svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", principal.Username)
}

func TestLoginWithoutPasswordRejected(t *testing.T) {
	svc, _ := newTestService(t, config.AuthConfig{})
	_, err := svc.Login(context.Background(), domain.LoginRequest{Username: "admin", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), domain.LoginRequest{Username: "admin", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestTokenExpiry(t *testing.T) {
	svc, clk := newTestService(t, config.AuthConfig{Password: "dev", TokenTTLMins: 30})
	ctx := context.Background()

	res, err := svc.Login(ctx, domain.LoginRequest{Username: "admin", Password: "dev"})
	require.NoError(t, err)

	clk.Advance(31 * time.Minute)
	_, err = svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _ := newTestService(t, config.AuthConfig{Password: "dev"})
	ctx := context.Background()

	res, err := svc.Login(ctx, domain.LoginRequest{Username: "admin", Password: "dev"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, res.Token))
	_, err = svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrSessionRevoked)
}

func TestAuthenticateRejectsForeignTokens(t *testing.T) {
	svc, _ := newTestService(t, config.AuthConfig{Password: "dev"})
	other, _ := newTestService(t, config.AuthConfig{Password: "dev", JWTSecret: "another-secret"})
	ctx := context.Background()

	res, err := other.Login(ctx, domain.LoginRequest{Username: "admin", Password: "dev"})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidSession)

	_, err = svc.Authenticate(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrInvalidSession)

	_, err = svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
}
