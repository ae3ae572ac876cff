// Package jwtauth firma y verifica los tokens HS256 que emite la propia API
// en login/registro.
package jwtauth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"vet-clinic-records/internal/ports/auth"
)

var ErrBadToken = errors.New("invalid token")

const DefaultTTL = 24 * time.Hour

type tokenClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Signer implementa auth.TokenIssuer y auth.AuthVerifier con un secreto compartido.
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

func NewSigner(secret, issuer string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Signer{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		ttl:    ttl,
		now:    time.Now,
	}
	s.parser = jwt.NewParser(
		// block alg confusion
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	return s
}

func (s *Signer) Issue(c auth.Claims) (string, error) {
	if strings.TrimSpace(c.UserID) == "" {
		return "", errors.New("jwt: user id required")
	}
	now := s.now()
	tc := tokenClaims{
		UserID: c.UserID,
		Email:  c.Email,
		Role:   c.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   c.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(s.secret)
}

func (s *Signer) Verify(ctx context.Context, raw string) (auth.Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return auth.Claims{}, ErrBadToken
	}

	var tc tokenClaims
	tok, err := s.parser.ParseWithClaims(raw, &tc, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return auth.Claims{}, errors.Join(ErrBadToken, err)
	}
	if !tok.Valid || strings.TrimSpace(tc.UserID) == "" {
		return auth.Claims{}, ErrBadToken
	}

	return auth.Claims{
		UserID: tc.UserID,
		Email:  tc.Email,
		Role:   tc.Role,
	}, nil
}
