package session

import (
	"context"
	"time"

	"github.com/aqarhub/go-admin-client/internal/jwtclaims"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// Refresher obtains a fresh access token, typically the refresh coordinator.
type Refresher interface {
	AccessToken(ctx context.Context) (string, error)
}

// TokenSource adapts the managed session to golang.org/x/oauth2 so
// oauth2-aware HTTP stacks can consume it. A nil refresher yields a source
// that only reports the currently held token.
func (m *Manager) TokenSource(refresher Refresher) oauth2.TokenSource {
	return &sessionTokenSource{manager: m, refresher: refresher}
}

type sessionTokenSource struct {
	manager   *Manager
	refresher Refresher
}

func (s *sessionTokenSource) Token() (*oauth2.Token, error) {
	raw := s.manager.AccessToken()
	if raw == "" {
		return nil, errors.New("[sessionTokenSource.Token] not authenticated")
	}

	if jwtclaims.Expired(raw, time.Now()) && s.refresher != nil {
		refreshed, err := s.refresher.AccessToken(context.Background())
		if err != nil {
			return nil, errors.Wrap(err, "[sessionTokenSource.Token] refresh")
		}
		raw = refreshed
	}

	expiry, _ := jwtclaims.Expiry(raw)
	return &oauth2.Token{
		AccessToken: raw,
		TokenType:   "Bearer",
		Expiry:      expiry,
	}, nil
}
