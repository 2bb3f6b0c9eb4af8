package filerepo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aqarhub/go-admin-client/credentials"
	"github.com/aqarhub/go-admin-client/credentials/filerepo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*filerepo.FileCredentialRepo, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := filerepo.New(dir, zerolog.Nop())
	require.NoError(t, err)
	return repo, dir
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.Save(credentials.Credential{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User: &credentials.UserProfile{
			ID:    "user-1",
			Email: "john.doe@example.com",
			Roles: []string{"Admin"},
		},
	})
	require.NoError(t, err)

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, "access-1", loaded.AccessToken)
	require.Equal(t, "refresh-1", loaded.RefreshToken)
	require.NotNil(t, loaded.User)
	require.Equal(t, "user-1", loaded.User.ID)
	require.Equal(t, []string{"Admin"}, loaded.User.Roles)
}

func TestSaveAbsentFieldsKeepStoredValues(t *testing.T) {
	repo, _ := newTestRepo(t)

	require.NoError(t, repo.Save(credentials.Credential{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}))
	// A refresh response without a rotated refresh token only carries the
	// new access token.
	require.NoError(t, repo.Save(credentials.Credential{AccessToken: "access-2"}))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, "access-2", loaded.AccessToken)
	require.Equal(t, "refresh-1", loaded.RefreshToken)
}

func TestLoadCorruptUserYieldsAbsentProfile(t *testing.T) {
	repo, dir := newTestRepo(t)

	require.NoError(t, repo.Save(credentials.Credential{AccessToken: "access-1"}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.json"), []byte("{not json"), 0o600))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Nil(t, loaded.User)
	require.Equal(t, "access-1", loaded.AccessToken)

	// The corrupt record is discarded, not kept around to fail again.
	_, statErr := os.Stat(filepath.Join(dir, "user.json"))
	require.True(t, os.IsNotExist(statErr))
}

func TestClearRemovesAllKeys(t *testing.T) {
	repo, _ := newTestRepo(t)

	require.NoError(t, repo.Save(credentials.Credential{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User:         &credentials.UserProfile{ID: "user-1"},
	}))
	require.NoError(t, repo.Clear())

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Empty(t, loaded.AccessToken)
	require.Empty(t, loaded.RefreshToken)
	require.Nil(t, loaded.User)
}

func TestClearIsIdempotent(t *testing.T) {
	repo, _ := newTestRepo(t)

	require.NoError(t, repo.Clear())
	require.NoError(t, repo.Clear())
}

func TestLoadFromEmptyFolder(t *testing.T) {
	repo, err := filerepo.New(filepath.Join(t.TempDir(), "missing"), zerolog.Nop())
	require.NoError(t, err)

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.False(t, loaded.Authenticated())
}
