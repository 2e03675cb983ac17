package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"strings"
	"sync"
	"time"

	"github.com/smallbiznis/clinicdesk/internal/auth/domain"
	"github.com/smallbiznis/clinicdesk/internal/auth/password"
	"github.com/smallbiznis/clinicdesk/internal/clock"
	"github.com/smallbiznis/clinicdesk/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const defaultTokenTTL = 12 * time.Hour

type Params struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
	Clock  clock.Clock
}

// Service authenticates the single back-office operator configured through
// the environment.
type Service struct {
	log          *zap.Logger
	clock        clock.Clock
	username     string
	passwordHash string
	password     string
	tokens       *tokenManager

	mu      sync.Mutex
	revoked map[string]time.Time
}

func New(p Params) (domain.Service, error) {
	cfg := p.Config.Auth
	log := p.Log.Named("auth.service")

	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, err
		}
		log.Warn("AUTH_JWT_SECRET not set, sessions will not survive a restart")
	}

	ttl := time.Duration(cfg.TokenTTLMins) * time.Minute
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	if cfg.PasswordHash == "" && cfg.Password == "" {
		log.Warn("no admin password configured, every login will be rejected")
	}
	if cfg.PasswordHash == "" && cfg.Password != "" && p.Config.IsProduction() {
		log.Warn("ADMIN_PASSWORD is meant for development, set ADMIN_PASSWORD_HASH instead")
	}

	return &Service{
		log:          log,
		clock:        p.Clock,
		username:     cfg.Username,
		passwordHash: cfg.PasswordHash,
		password:     cfg.Password,
		tokens:       &tokenManager{secret: secret, ttl: ttl, now: p.Clock.Now},
		revoked:      map[string]time.Time{},
	}, nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" || !s.checkCredentials(username, req.Password) {
		s.log.Warn("login rejected", zap.String("ip", req.IPAddress))
		return nil, domain.ErrInvalidCredentials
	}

	raw, c, err := s.tokens.issue(s.username)
	if err != nil {
		return nil, err
	}

	expiresAt := c.ExpiresAt.Time
	s.log.Info("login succeeded", zap.String("ip", req.IPAddress))
	return &domain.LoginResult{
		Token:     raw,
		ExpiresAt: expiresAt,
		Principal: domain.Principal{Username: s.username, TokenID: c.ID, ExpiresAt: expiresAt},
	}, nil
}

func (s *Service) Logout(ctx context.Context, rawToken string) error {
	c, err := s.tokens.parse(strings.TrimSpace(rawToken))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	s.revoked[c.ID] = c.ExpiresAt.Time
	return nil
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (*domain.Principal, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil, domain.ErrInvalidSession
	}

	c, err := s.tokens.parse(rawToken)
	if err != nil {
		return nil, err
	}
	if c.Subject != s.username {
		return nil, domain.ErrInvalidSession
	}

	s.mu.Lock()
	_, revoked := s.revoked[c.ID]
	s.mu.Unlock()
	if revoked {
		return nil, domain.ErrSessionRevoked
	}

	return &domain.Principal{Username: c.Subject, TokenID: c.ID, ExpiresAt: c.ExpiresAt.Time}, nil
}

func (s *Service) checkCredentials(username, pass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	var passOK bool
	switch {
	case s.passwordHash != "":
		passOK = password.Verify(pass, s.passwordHash)
	case s.password != "":
		passOK = subtle.ConstantTimeCompare([]byte(pass), []byte(s.password)) == 1
	}
	return userOK && passOK
}

// pruneLocked forgets revocations whose tokens have expired anyway.
func (s *Service) pruneLocked() {
	now := s.clock.Now()
	for id, exp := range s.revoked {
		if now.After(exp) {
			delete(s.revoked, id)
		}
	}
}
