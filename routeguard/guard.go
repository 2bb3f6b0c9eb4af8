package routeguard

import (
	"time"

	"github.com/aqarhub/go-admin-client/credentials"
	"github.com/aqarhub/go-admin-client/internal/jwtclaims"
	"github.com/pkg/errors"
)

// Session is the snapshot of session state the guard reads. *session.Manager
// satisfies it.
type Session interface {
	AccessToken() string
	CurrentUser() *credentials.UserProfile
}

// Guard gates navigation. It is stateless per call: every evaluation reads
// the session's current snapshot.
type Guard struct {
	session Session
	nowTime func() time.Time // nowTime function (injectable for testing)
}

// GuardOption configures the Guard.
type GuardOption func(*Guard)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) GuardOption {
	return func(g *Guard) {
		g.nowTime = nowFunc
	}
}

// NewGuard creates a Guard over the given session.
func NewGuard(session Session, options ...GuardOption) (*Guard, error) {
	if session == nil {
		return nil, errors.New("[NewGuard] session is required")
	}
	g := &Guard{session: session, nowTime: time.Now}
	for _, opt := range options {
		opt(g)
	}
	return g, nil
}

// RequireAuth checks authentication presence: a missing or expired access
// token denies with a redirect to the login entry point.
func (g *Guard) RequireAuth() Decision {
	token := g.session.AccessToken()
	if token == "" {
		return denyRedirect(RouteLogin)
	}
	if jwtclaims.Expired(token, g.nowTime()) {
		return denyRedirect(RouteLogin)
	}
	return allow()
}

// CanActivate evaluates both guards for a navigation: authentication
// presence first, then the role policy against the cached profile.
func (g *Guard) CanActivate(path string) Decision {
	if decision := g.RequireAuth(); !decision.Allow {
		return decision
	}

	user := g.session.CurrentUser()
	if user == nil {
		// Authentication presence already passed; the role policy has
		// nothing to restrict without a profile.
		return allow()
	}
	return Evaluate(user.Roles, path)
}
