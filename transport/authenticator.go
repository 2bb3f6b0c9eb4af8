// Package transport provides the single interception point every outbound
// API call passes through: credential injection on the way out, refresh and
// replay on an authorization failure on the way back.
package transport

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/aqarhub/go-admin-client/authapi"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	// TenantHeader is the fixed multi-tenancy discriminator sent with every
	// request, unrelated to user identity.
	TenantHeader = "tenant"

	// DefaultTenant is the backend's root tenant.
	DefaultTenant = "root"

	requestIDHeader = "X-Request-ID"
)

// TokenProvider supplies the currently held access token, empty when logged
// out. *session.Manager satisfies it.
type TokenProvider interface {
	AccessToken() string
}

// RefreshCoordinator obtains a fresh access token after an authorization
// failure. *refresh.Coordinator satisfies it.
type RefreshCoordinator interface {
	AccessToken(ctx context.Context) (string, error)
}

var _ http.RoundTripper = (*Authenticator)(nil)

// Authenticator is an http.RoundTripper that attaches the tenant header, a
// request ID, and the bearer token to outbound calls, and reacts to a 401 by
// refreshing the session and replaying the call once.
type Authenticator struct {
	base        http.RoundTripper
	tokens      TokenProvider
	coordinator RefreshCoordinator
	tenant      string
	logger      zerolog.Logger
}

// AuthenticatorOption configures the Authenticator.
type AuthenticatorOption func(*Authenticator)

// WithBase sets the underlying transport, http.DefaultTransport otherwise.
func WithBase(base http.RoundTripper) AuthenticatorOption {
	return func(a *Authenticator) {
		a.base = base
	}
}

// WithTenant overrides the tenant header value.
func WithTenant(tenant string) AuthenticatorOption {
	return func(a *Authenticator) {
		a.tenant = tenant
	}
}

// WithLogger sets the logger for replay events.
func WithLogger(logger zerolog.Logger) AuthenticatorOption {
	return func(a *Authenticator) {
		a.logger = logger
	}
}

// NewAuthenticator creates the authenticated transport.
func NewAuthenticator(tokens TokenProvider, coordinator RefreshCoordinator, options ...AuthenticatorOption) (*Authenticator, error) {
	if tokens == nil {
		return nil, errors.New("[NewAuthenticator] token provider is required")
	}
	if coordinator == nil {
		return nil, errors.New("[NewAuthenticator] refresh coordinator is required")
	}

	a := &Authenticator{
		base:        http.DefaultTransport,
		tokens:      tokens,
		coordinator: coordinator,
		tenant:      DefaultTenant,
		logger:      zerolog.Nop(),
	}
	for _, opt := range options {
		opt(a)
	}
	return a, nil
}

// RoundTrip implements http.RoundTripper.
func (a *Authenticator) RoundTrip(req *http.Request) (*http.Response, error) {
	outbound := req.Clone(req.Context())
	outbound.Header.Set(TenantHeader, a.tenant)
	if outbound.Header.Get(requestIDHeader) == "" {
		outbound.Header.Set(requestIDHeader, uuid.New().String())
	}
	if token := a.tokens.AccessToken(); token != "" {
		outbound.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.base.RoundTrip(outbound)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// A 401 from the token endpoints is a plain authentication failure;
	// running it through the coordinator again would loop forever.
	if isAuthEndpoint(req.URL.Path) {
		return resp, nil
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	token, err := a.coordinator.AccessToken(req.Context())
	if err != nil {
		return nil, err
	}

	replay, err := a.rebuild(req)
	if err != nil {
		return nil, err
	}
	replay.Header.Set(TenantHeader, a.tenant)
	replay.Header.Set(requestIDHeader, outbound.Header.Get(requestIDHeader))
	replay.Header.Set("Authorization", "Bearer "+token)

	a.logger.Debug().Str("path", req.URL.Path).Msg("replaying request with refreshed token")
	return a.base.RoundTrip(replay)
}

// rebuild re-constructs the original request so it can be sent a second
// time. Bodies are re-materialized through GetBody rather than reusing the
// consumed reader.
func (a *Authenticator) rebuild(req *http.Request) (*http.Request, error) {
	replay := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return replay, nil
	}
	if req.GetBody == nil {
		return nil, errors.New("[Authenticator.rebuild] request body is not replayable")
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, errors.Wrap(err, "[Authenticator.rebuild] GetBody")
	}
	replay.Body = body
	return replay, nil
}

func isAuthEndpoint(path string) bool {
	return strings.HasSuffix(path, authapi.PathTokensRefresh) ||
		strings.HasSuffix(strings.TrimSuffix(path, "/"), authapi.PathTokens)
}
