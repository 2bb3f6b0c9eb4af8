package jwtclaims_test

import (
	"testing"
	"time"

	"github.com/aqarhub/go-admin-client/internal/jwtclaims"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func token(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return signed
}

func TestExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	got, err := jwtclaims.Expiry(token(t, jwt.MapClaims{"exp": exp.Unix()}))
	require.NoError(t, err)
	require.True(t, got.Equal(exp))
}

func TestExpiryWithoutClaimIsZero(t *testing.T) {
	got, err := jwtclaims.Expiry(token(t, jwt.MapClaims{"sub": "user-1"}))
	require.NoError(t, err)
	require.True(t, got.IsZero())
}

func TestExpiryGarbageToken(t *testing.T) {
	_, err := jwtclaims.Expiry("garbage")
	require.Error(t, err)
}

func TestExpired(t *testing.T) {
	now := time.Now()
	require.True(t, jwtclaims.Expired(token(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()}), now))
	require.False(t, jwtclaims.Expired(token(t, jwt.MapClaims{"exp": now.Add(time.Minute).Unix()}), now))

	// No exp claim means nothing to expire.
	require.False(t, jwtclaims.Expired(token(t, jwt.MapClaims{"sub": "user-1"}), now))

	// Unparseable tokens are never worth sending.
	require.True(t, jwtclaims.Expired("garbage", now))
}
