// Package domain contains core types for back-office authentication.
package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (*Principal, error)
}

type LoginRequest struct {
	Username  string
	Password  string
	IPAddress string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Principal Principal
}

// Principal is the authenticated operator behind a request.
type Principal struct {
	Username  string    `json:"username"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid session")
	ErrSessionExpired     = errors.New("session expired")
	ErrSessionRevoked     = errors.New("session revoked")
)
