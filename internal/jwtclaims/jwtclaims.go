// Package jwtclaims reads claims out of an access token without verifying
// its signature. The backend is authoritative for validity; clients only
// peek at exp to decide whether a token is worth sending.
package jwtclaims

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Expiry returns the exp claim of the raw token. A token without an exp
// claim yields a zero time and no error.
func Expiry(raw string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, errors.Wrap(err, "[jwtclaims.Expiry] parse token")
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, errors.Wrap(err, "[jwtclaims.Expiry] exp claim")
	}
	if exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}

// Expired reports whether the token's exp claim is in the past at the given
// instant. Unparseable tokens count as expired.
func Expired(raw string, now time.Time) bool {
	exp, err := Expiry(raw)
	if err != nil {
		return true
	}
	return !exp.IsZero() && exp.Before(now)
}
