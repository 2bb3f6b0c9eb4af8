// Package refresh collapses concurrent token-refresh attempts into a single
// network call. Callers that hit an authorization failure while a refresh is
// already in flight wait for its outcome instead of issuing their own call.
package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/aqarhub/go-admin-client/session"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single refresh call. The flow the coordinator
// replaces had no bound at all, so a hung backend wedged every waiter; here
// a stalled call takes the failure branch instead.
const DefaultTimeout = 30 * time.Second

// SessionManager is the slice of the session the coordinator drives.
type SessionManager interface {
	RefreshTokens(ctx context.Context) (session.Tokens, error)
	HasRefreshToken() bool
	Logout()
}

type outcome struct {
	token string
	err   error
}

// Coordinator serializes refresh attempts. It is either idle or refreshing;
// while refreshing, additional callers queue as waiters and are fanned the
// result of the single in-flight call.
type Coordinator struct {
	session   SessionManager
	logger    zerolog.Logger
	timeout   time.Duration
	onExpired func()

	mu         sync.Mutex
	refreshing bool
	waiters    []chan outcome
}

// CoordinatorOption configures the Coordinator.
type CoordinatorOption func(*Coordinator)

// WithTimeout bounds each refresh network call.
func WithTimeout(timeout time.Duration) CoordinatorOption {
	return func(c *Coordinator) {
		c.timeout = timeout
	}
}

// WithExpiryHook registers a callback fired when the session becomes
// terminally expired, after logout has run. Callers use it to navigate to
// the login entry point.
func WithExpiryHook(hook func()) CoordinatorOption {
	return func(c *Coordinator) {
		c.onExpired = hook
	}
}

// WithLogger sets the logger for state transitions.
func WithLogger(logger zerolog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// NewCoordinator creates a Coordinator over the given session manager.
func NewCoordinator(sessionManager SessionManager, options ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		session: sessionManager,
		logger:  zerolog.Nop(),
		timeout: DefaultTimeout,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// AccessToken returns a fresh access token, performing at most one refresh
// call regardless of how many callers arrive concurrently. When no refresh
// token exists, or the refresh fails or times out, every caller receives the
// uniform session.ErrSessionExpired, the session is logged out, and the
// expiry hook fires.
func (c *Coordinator) AccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.refreshing {
		ch := make(chan outcome, 1)
		c.waiters = append(c.waiters, ch)
		c.mu.Unlock()

		select {
		case result := <-ch:
			return result.token, result.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if !c.session.HasRefreshToken() {
		c.mu.Unlock()
		c.logger.Debug().Msg("authorization failure with no refresh token")
		c.expire()
		return "", session.ErrSessionExpired
	}

	c.refreshing = true
	c.mu.Unlock()

	// The call is detached from the initiating caller's cancellation: the
	// waiters queued behind it depend on its outcome.
	refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	tokens, err := c.session.RefreshTokens(refreshCtx)
	cancel()

	c.mu.Lock()
	c.refreshing = false
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn().Err(err).Int("waiters", len(waiters)).Msg("token refresh failed")
		for _, ch := range waiters {
			ch <- outcome{err: session.ErrSessionExpired}
		}
		c.expire()
		return "", session.ErrSessionExpired
	}

	c.logger.Debug().Int("waiters", len(waiters)).Msg("token refresh succeeded")
	for _, ch := range waiters {
		ch <- outcome{token: tokens.AccessToken}
	}
	return tokens.AccessToken, nil
}

func (c *Coordinator) expire() {
	c.session.Logout()
	if c.onExpired != nil {
		c.onExpired()
	}
}
