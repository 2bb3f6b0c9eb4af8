// Package authapi wraps the backend's token-issuing surface. Calls here are
// made with a plain, unauthenticated client: an authorization failure from
// these endpoints is terminal and must never re-enter the refresh pipeline.
package authapi

import (
	"context"
	"encoding/json"

	"github.com/aqarhub/go-admin-client/apiclient"
	"github.com/aqarhub/go-admin-client/credentials"
	"github.com/pkg/errors"
)

// Token endpoint paths. The request authenticator treats 401s from these
// paths as plain failures to avoid a refresh loop.
const (
	PathTokens        = "/tokens"
	PathTokensRefresh = "/tokens/refresh"
)

// LoginRequest is the credential-issuing request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued tokens plus the user object. Roles and
// permissions arrive at the top level alongside the user.
type LoginResponse struct {
	Token        string          `json:"token"`
	RefreshToken string          `json:"refreshToken,omitempty"`
	User         json.RawMessage `json:"user"`
	Roles        []string        `json:"roles,omitempty"`
	Permissions  []string        `json:"permissions,omitempty"`
}

// RefreshRequest is the token-refresh request body. The expired access token
// travels with the refresh token.
type RefreshRequest struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse carries the rotated tokens and, optionally, a fresh user.
type RefreshResponse struct {
	Token        string                   `json:"token"`
	RefreshToken string                   `json:"refreshToken,omitempty"`
	User         *credentials.UserProfile `json:"user,omitempty"`
}

// Client talks to the token endpoints.
type Client struct {
	api *apiclient.Client
}

// New creates an auth API client over the given base client.
func New(api *apiclient.Client) (*Client, error) {
	if api == nil {
		return nil, errors.New("[authapi.New] api client is required")
	}
	return &Client{api: api}, nil
}

// Login exchanges credentials for tokens.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.api.Post(ctx, PathTokens, LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, errors.Wrap(err, "[authapi.Login] POST "+PathTokens)
	}
	return &resp, nil
}

// Refresh exchanges the current token pair for a new one.
func (c *Client) Refresh(ctx context.Context, token, refreshToken string) (*RefreshResponse, error) {
	var resp RefreshResponse
	if err := c.api.Post(ctx, PathTokensRefresh, RefreshRequest{Token: token, RefreshToken: refreshToken}, &resp); err != nil {
		return nil, errors.Wrap(err, "[authapi.Refresh] POST "+PathTokensRefresh)
	}
	return &resp, nil
}
