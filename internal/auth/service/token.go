package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/smallbiznis/clinicdesk/internal/auth/domain"
)

const tokenIssuer = "clinicdesk"

type claims struct {
	jwt.RegisteredClaims
}

type tokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func (m *tokenManager) issue(username string) (string, claims, error) {
	now := m.now()
	c := claims{RegisteredClaims: jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    tokenIssuer,
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", claims{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, c, nil
}

func (m *tokenManager) parse(raw string) (claims, error) {
	var c claims
	keyFunc := func(*jwt.Token) (any, error) { return m.secret, nil }
	_, err := jwt.ParseWithClaims(raw, &c, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return claims{}, domain.ErrSessionExpired
		}
		return claims{}, domain.ErrInvalidSession
	}
	if c.ID == "" || c.Subject == "" {
		return claims{}, domain.ErrInvalidSession
	}
	return c, nil
}
