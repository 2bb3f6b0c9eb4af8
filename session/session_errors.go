package session

import "errors"

var (
	// ErrSessionExpired is the uniform terminal error for the current
	// session: credentials are cleared and the caller must re-authenticate.
	ErrSessionExpired = errors.New("session expired")

	// ErrNoRefreshToken means a refresh was requested but no refresh token
	// is held.
	ErrNoRefreshToken = errors.New("no refresh token")
)
