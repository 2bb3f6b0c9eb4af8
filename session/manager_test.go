package session_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aqarhub/go-admin-client/authapi"
	"github.com/aqarhub/go-admin-client/credentials"
	"github.com/aqarhub/go-admin-client/credentials/repofake"
	"github.com/aqarhub/go-admin-client/session"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const (
	testUserID    = "user-1"
	testUserEmail = "john.doe@example.com"
	testPassword  = "password123"
)

type fakeAuthAPI struct {
	loginResp    *authapi.LoginResponse
	loginErr     error
	refreshResp  *authapi.RefreshResponse
	refreshErr   error
	loginCalls   int
	refreshCalls int

	lastRefreshToken       string
	lastRefreshAccessToken string
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (*authapi.LoginResponse, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResp, nil
}

func (f *fakeAuthAPI) Refresh(ctx context.Context, token, refreshToken string) (*authapi.RefreshResponse, error) {
	f.refreshCalls++
	f.lastRefreshAccessToken = token
	f.lastRefreshToken = refreshToken
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.refreshResp, nil
}

func loginResponse(t *testing.T) *authapi.LoginResponse {
	t.Helper()
	user, err := json.Marshal(map[string]any{
		"id":        testUserID,
		"email":     testUserEmail,
		"firstName": "John",
		"lastName":  "Doe",
	})
	require.NoError(t, err)
	return &authapi.LoginResponse{
		Token:        "access-1",
		RefreshToken: "refresh-1",
		User:         user,
		Roles:        []string{"Admin"},
		Permissions:  []string{"Permissions.Articles.View"},
	}
}

func newTestManager(t *testing.T, api session.AuthAPI) (*session.Manager, *repofake.FakeCredentialRepo) {
	t.Helper()
	repo := repofake.NewFakeCredentialRepo()
	manager, err := session.NewManager(repo, api)
	require.NoError(t, err)
	return manager, repo
}

func TestLoginMergesTopLevelRolesAndPublishesBeforeReturn(t *testing.T) {
	api := &fakeAuthAPI{loginResp: loginResponse(t)}
	manager, repo := newTestManager(t, api)

	var published *credentials.UserProfile
	manager.Subscribe(func(user *credentials.UserProfile) {
		published = user
		// The observer must see the fully authenticated session.
		require.True(t, manager.IsAuthenticated())
	})

	user, err := manager.Login(context.Background(), testUserEmail, testPassword)
	require.NoError(t, err)

	require.True(t, manager.IsAuthenticated())
	require.Equal(t, []string{"Admin"}, user.Roles)
	require.Equal(t, []string{"Permissions.Articles.View"}, user.Permissions)
	require.Equal(t, testUserEmail, user.Email)

	require.NotNil(t, published)
	require.Equal(t, user, published)
	require.Equal(t, user, manager.CurrentUser())

	stored := repo.Stored()
	require.Equal(t, "access-1", stored.AccessToken)
	require.Equal(t, "refresh-1", stored.RefreshToken)
	require.Equal(t, []string{"Admin"}, stored.User.Roles)
}

func TestLoginNestedRolesUsedWhenTopLevelAbsent(t *testing.T) {
	resp := loginResponse(t)
	resp.Roles = nil
	user, err := json.Marshal(map[string]any{"id": testUserID, "roles": []string{"Sales"}})
	require.NoError(t, err)
	resp.User = user

	manager, _ := newTestManager(t, &fakeAuthAPI{loginResp: resp})

	profile, err := manager.Login(context.Background(), testUserEmail, testPassword)
	require.NoError(t, err)
	require.Equal(t, []string{"Sales"}, profile.Roles)
}

func TestLoginFailureChangesNothing(t *testing.T) {
	api := &fakeAuthAPI{loginErr: errors.New("invalid credentials")}
	manager, repo := newTestManager(t, api)

	published := false
	manager.Subscribe(func(user *credentials.UserProfile) { published = true })

	_, err := manager.Login(context.Background(), testUserEmail, "wrong")
	require.Error(t, err)
	require.False(t, manager.IsAuthenticated())
	require.Nil(t, manager.CurrentUser())
	require.False(t, published)
	require.Zero(t, repo.SaveCalls)
}

func TestRefreshTokensPersistsRotatedPair(t *testing.T) {
	api := &fakeAuthAPI{
		loginResp: loginResponse(t),
		refreshResp: &authapi.RefreshResponse{
			Token:        "access-2",
			RefreshToken: "refresh-2",
		},
	}
	manager, repo := newTestManager(t, api)
	_, err := manager.Login(context.Background(), testUserEmail, testPassword)
	require.NoError(t, err)

	tokens, err := manager.RefreshTokens(context.Background())
	require.NoError(t, err)
	require.Equal(t, "access-2", tokens.AccessToken)
	require.Equal(t, "refresh-2", tokens.RefreshToken)

	// The expired pair travels with the refresh call.
	require.Equal(t, "access-1", api.lastRefreshAccessToken)
	require.Equal(t, "refresh-1", api.lastRefreshToken)

	require.Equal(t, "access-2", manager.AccessToken())
	require.Equal(t, "access-2", repo.Stored().AccessToken)
	require.Equal(t, "refresh-2", repo.Stored().RefreshToken)
}

func TestRefreshTokensWithoutRotationKeepsRefreshToken(t *testing.T) {
	api := &fakeAuthAPI{
		loginResp:   loginResponse(t),
		refreshResp: &authapi.RefreshResponse{Token: "access-2"},
	}
	manager, _ := newTestManager(t, api)
	_, err := manager.Login(context.Background(), testUserEmail, testPassword)
	require.NoError(t, err)

	tokens, err := manager.RefreshTokens(context.Background())
	require.NoError(t, err)
	require.Equal(t, "refresh-1", tokens.RefreshToken)
	require.True(t, manager.HasRefreshToken())
}

func TestRefreshTokensPublishesReturnedUser(t *testing.T) {
	api := &fakeAuthAPI{
		loginResp: loginResponse(t),
		refreshResp: &authapi.RefreshResponse{
			Token: "access-2",
			User:  &credentials.UserProfile{ID: testUserID, Email: testUserEmail, Roles: []string{"Sales"}},
		},
	}
	manager, _ := newTestManager(t, api)
	_, err := manager.Login(context.Background(), testUserEmail, testPassword)
	require.NoError(t, err)

	var published *credentials.UserProfile
	manager.Subscribe(func(user *credentials.UserProfile) { published = user })

	_, err = manager.RefreshTokens(context.Background())
	require.NoError(t, err)
	require.NotNil(t, published)
	require.Equal(t, []string{"Sales"}, published.Roles)
	require.Equal(t, []string{"Sales"}, manager.CurrentUser().Roles)
}

func TestRefreshTokensFailureKeepsSession(t *testing.T) {
	api := &fakeAuthAPI{
		loginResp:  loginResponse(t),
		refreshErr: errors.New("boom"),
	}
	manager, _ := newTestManager(t, api)
	_, err := manager.Login(context.Background(), testUserEmail, testPassword)
	require.NoError(t, err)

	_, err = manager.RefreshTokens(context.Background())
	require.Error(t, err)

	// Tearing the session down on failure is the authenticator's call.
	require.True(t, manager.IsAuthenticated())
	require.Equal(t, "access-1", manager.AccessToken())
}

func TestRefreshTokensWithoutRefreshToken(t *testing.T) {
	resp := loginResponse(t)
	resp.RefreshToken = ""
	manager, _ := newTestManager(t, &fakeAuthAPI{loginResp: resp})
	_, err := manager.Login(context.Background(), testUserEmail, testPassword)
	require.NoError(t, err)

	_, err = manager.RefreshTokens(context.Background())
	require.ErrorIs(t, err, session.ErrNoRefreshToken)
}

func TestLogoutIsIdempotent(t *testing.T) {
	api := &fakeAuthAPI{loginResp: loginResponse(t)}
	manager, repo := newTestManager(t, api)
	_, err := manager.Login(context.Background(), testUserEmail, testPassword)
	require.NoError(t, err)

	manager.Logout()
	manager.Logout()

	require.False(t, manager.IsAuthenticated())
	require.Nil(t, manager.CurrentUser())
	require.Empty(t, manager.AccessToken())
	require.False(t, manager.HasRefreshToken())
	require.Equal(t, 2, repo.ClearCalls)
	require.False(t, repo.Stored().Authenticated())
}

func TestLogoutPublishesNil(t *testing.T) {
	api := &fakeAuthAPI{loginResp: loginResponse(t)}
	manager, _ := newTestManager(t, api)
	_, err := manager.Login(context.Background(), testUserEmail, testPassword)
	require.NoError(t, err)

	published := make([]*credentials.UserProfile, 0, 1)
	manager.Subscribe(func(user *credentials.UserProfile) { published = append(published, user) })

	manager.Logout()
	require.Len(t, published, 1)
	require.Nil(t, published[0])
}

func TestUpdateUserKeepsTokens(t *testing.T) {
	api := &fakeAuthAPI{loginResp: loginResponse(t)}
	manager, repo := newTestManager(t, api)
	_, err := manager.Login(context.Background(), testUserEmail, testPassword)
	require.NoError(t, err)

	updated := &credentials.UserProfile{ID: testUserID, Email: testUserEmail, FirstName: "Johnny"}
	manager.UpdateUser(updated)

	require.Equal(t, "Johnny", manager.CurrentUser().FirstName)
	require.Equal(t, "access-1", manager.AccessToken())
	require.Equal(t, "access-1", repo.Stored().AccessToken)
	require.Equal(t, "Johnny", repo.Stored().User.FirstName)
}

func TestNewManagerResumesStoredSession(t *testing.T) {
	repo := repofake.NewFakeCredentialRepo()
	require.NoError(t, repo.Save(credentials.Credential{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User:         &credentials.UserProfile{ID: testUserID, Roles: []string{"Admin"}},
	}))

	manager, err := session.NewManager(repo, &fakeAuthAPI{})
	require.NoError(t, err)
	require.True(t, manager.IsAuthenticated())
	require.Equal(t, testUserID, manager.CurrentUser().ID)
}

func TestStaleProfileAloneIsNotAuthenticated(t *testing.T) {
	repo := repofake.NewFakeCredentialRepo()
	require.NoError(t, repo.Save(credentials.Credential{
		User: &credentials.UserProfile{ID: testUserID},
	}))

	manager, err := session.NewManager(repo, &fakeAuthAPI{})
	require.NoError(t, err)
	require.False(t, manager.IsAuthenticated())
}
