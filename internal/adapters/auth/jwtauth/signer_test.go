package jwtauth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-records/internal/ports/auth"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	s := NewSigner("secret", "vet-clinic-records", time.Hour)

	tok, err := s.Issue(auth.Claims{UserID: "u1", Email: "ana@vet.test", Role: "admin"})
	require.NoError(t, err)

	c, err := s.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: "u1", Email: "ana@vet.test", Role: "admin"}, c)
}

func TestVerify_Expired(t *testing.T) {
	s := NewSigner("secret", "", time.Minute)
	issuedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issuedAt }

	tok, err := s.Issue(auth.Claims{UserID: "u1", Role: "staff"})
	require.NoError(t, err)

	s.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	_, err = s.Verify(context.Background(), tok)
	assert.ErrorIs(t, err, ErrBadToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerify_WrongSecretOrAlg(t *testing.T) {
	tok, err := NewSigner("secret", "", time.Hour).Issue(auth.Claims{UserID: "u1"})
	require.NoError(t, err)

	_, err = NewSigner("other", "", time.Hour).Verify(context.Background(), tok)
	assert.ErrorIs(t, err, ErrBadToken)

	// alg none
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"uid": "u1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = NewSigner("secret", "", time.Hour).Verify(context.Background(), none)
	assert.ErrorIs(t, err, ErrBadToken)
}

func TestIssue_RequiresUser(t *testing.T) {
	_, err := NewSigner("secret", "", 0).Issue(auth.Claims{})
	assert.Error(t, err)
}
