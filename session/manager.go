// Package session owns the answer to "who is logged in". The Manager is
// constructed once at process start and passed by reference to every
// consumer; there is no ambient global session state.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/aqarhub/go-admin-client/authapi"
	"github.com/aqarhub/go-admin-client/credentials"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// AuthAPI is the token-issuing surface the Manager drives.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*authapi.LoginResponse, error)
	Refresh(ctx context.Context, token, refreshToken string) (*authapi.RefreshResponse, error)
}

// Observer receives the published profile on every session change. Observers
// run synchronously on the publishing call path, so a route-guard check made
// immediately after Login returns sees the new role set. The profile is nil
// after logout.
type Observer func(*credentials.UserProfile)

// Tokens is the pair returned by a successful refresh.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// Manager is the single source of truth for the current session. It is the
// sole writer of the credential repo; all of its state transitions are
// serialized by an internal mutex.
type Manager struct {
	repo   credentials.Repo
	api    AuthAPI
	logger zerolog.Logger

	mu        sync.RWMutex
	current   credentials.Credential
	observers []Observer
}

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger used for storage and lifecycle events.
func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager and primes it from the credential repo, so a
// restarted process resumes the persisted session. A corrupt or unreadable
// store yields a logged-out manager, never an error.
func NewManager(repo credentials.Repo, api AuthAPI, options ...ManagerOption) (*Manager, error) {
	if repo == nil {
		return nil, errors.New("[NewManager] credentials repo is required")
	}
	if api == nil {
		return nil, errors.New("[NewManager] auth API is required")
	}

	m := &Manager{
		repo:   repo,
		api:    api,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(m)
	}

	stored, err := repo.Load()
	if err != nil {
		m.logger.Error().Err(err).Msg("load stored credentials")
	} else {
		m.current = stored
	}
	return m, nil
}

// Subscribe registers an observer for session changes. Subscribing does not
// replay the current value.
func (m *Manager) Subscribe(observer Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, observer)
}

// Login exchanges credentials for a session. On success the merged profile
// (top-level roles and permissions folded into the user object) and both
// tokens are persisted and published before Login returns. On failure no
// state changes.
func (m *Manager) Login(ctx context.Context, email, password string) (*credentials.UserProfile, error) {
	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.Login] token request")
	}

	user := &credentials.UserProfile{}
	if len(resp.User) > 0 {
		if err := json.Unmarshal(resp.User, user); err != nil {
			return nil, errors.Wrap(err, "[Manager.Login] decode user")
		}
	}
	// Top-level roles win over any roles nested inside the user object.
	if len(resp.Roles) > 0 {
		user.Roles = resp.Roles
	}
	user.Permissions = resp.Permissions

	m.mu.Lock()
	m.current = credentials.Credential{
		AccessToken:  resp.Token,
		RefreshToken: resp.RefreshToken,
		User:         user,
	}
	m.persistLocked(m.current)
	m.mu.Unlock()

	m.publish(user)
	return user, nil
}

// RefreshTokens exchanges the current token pair for a new one. On success
// whatever the response carries (tokens, optionally a fresh user) is
// persisted and published. On failure the error propagates without touching
// the session; clearing it is the request authenticator's decision.
func (m *Manager) RefreshTokens(ctx context.Context) (Tokens, error) {
	m.mu.RLock()
	token := m.current.AccessToken
	refreshToken := m.current.RefreshToken
	m.mu.RUnlock()

	if refreshToken == "" {
		return Tokens{}, ErrNoRefreshToken
	}

	resp, err := m.api.Refresh(ctx, token, refreshToken)
	if err != nil {
		return Tokens{}, errors.Wrap(err, "[Manager.RefreshTokens] refresh request")
	}

	m.mu.Lock()
	if resp.Token != "" {
		m.current.AccessToken = resp.Token
	}
	if resp.RefreshToken != "" {
		m.current.RefreshToken = resp.RefreshToken
	}
	if resp.User != nil {
		m.current.User = resp.User
	}
	m.persistLocked(m.current)
	tokens := Tokens{AccessToken: m.current.AccessToken, RefreshToken: m.current.RefreshToken}
	user := m.current.User
	m.mu.Unlock()

	if resp.User != nil {
		m.publish(user)
	}
	return tokens, nil
}

// CurrentUser returns the last published profile, nil when logged out.
func (m *Manager) CurrentUser() *credentials.UserProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.User
}

// AccessToken returns the current access token, empty when logged out.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.AccessToken
}

// HasRefreshToken reports whether a refresh token is held.
func (m *Manager) HasRefreshToken() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.RefreshToken != ""
}

// IsAuthenticated reports whether both an access token and a profile are
// present. A stale profile without a token never counts as authenticated.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Authenticated()
}

// Logout clears the stored credentials and publishes a nil profile. It is
// idempotent and never fails; storage errors are logged and swallowed.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.current = credentials.Credential{}
	if err := m.repo.Clear(); err != nil {
		m.logger.Error().Err(err).Msg("clear credential store")
	}
	m.mu.Unlock()

	m.publish(nil)
}

// UpdateUser replaces the cached profile and persists it without touching
// the tokens. Used after non-auth profile edits.
func (m *Manager) UpdateUser(user *credentials.UserProfile) {
	m.mu.Lock()
	m.current.User = user
	m.persistLocked(credentials.Credential{User: user})
	m.mu.Unlock()

	m.publish(user)
}

// persistLocked writes through to the repo. Storage failures leave in-memory
// state authoritative for the rest of the process lifetime.
func (m *Manager) persistLocked(credential credentials.Credential) {
	if err := m.repo.Save(credential); err != nil {
		m.logger.Error().Err(err).Msg("persist credentials")
	}
}

func (m *Manager) publish(user *credentials.UserProfile) {
	m.mu.RLock()
	observers := make([]Observer, len(m.observers))
	copy(observers, m.observers)
	m.mu.RUnlock()

	for _, observer := range observers {
		observer(user)
	}
}
