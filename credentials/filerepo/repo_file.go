package filerepo

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/aqarhub/go-admin-client/credentials"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Storage key files, mirroring the keys the admin app historically used.
const (
	tokenFile        = "token"
	refreshTokenFile = "refreshToken"
	userFile         = "user.json"
)

var _ credentials.Repo = (*FileCredentialRepo)(nil)

// FileCredentialRepo persists the credential record as individual key files
// under a data folder. Storage failures are logged and swallowed so that the
// in-memory session survives a read-only or missing data folder.
type FileCredentialRepo struct {
	mu     sync.Mutex
	dir    string
	logger zerolog.Logger
}

// New creates a file-backed credential repository rooted at dir. The
// directory is created on first use if it does not exist.
func New(dir string, logger zerolog.Logger) (*FileCredentialRepo, error) {
	if dir == "" {
		return nil, errors.New("[filerepo.New] dir is required")
	}
	return &FileCredentialRepo{dir: dir, logger: logger}, nil
}

// Save writes the fields present on the credential. Empty fields leave the
// previously stored values untouched.
func (r *FileCredentialRepo) Save(credential credentials.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		r.logger.Error().Err(err).Str("dir", r.dir).Msg("credential store unavailable")
		return nil
	}

	if credential.AccessToken != "" {
		r.writeKey(tokenFile, []byte(credential.AccessToken))
	}
	if credential.RefreshToken != "" {
		r.writeKey(refreshTokenFile, []byte(credential.RefreshToken))
	}
	if credential.User != nil {
		data, err := json.Marshal(credential.User)
		if err != nil {
			r.logger.Error().Err(err).Msg("marshal stored user")
			return nil
		}
		r.writeKey(userFile, data)
	}
	return nil
}

// Load reconstructs the credential record from the key files. A corrupt user
// file is logged, deleted, and reported as an absent profile.
func (r *FileCredentialRepo) Load() (credentials.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	credential := credentials.Credential{
		AccessToken:  string(r.readKey(tokenFile)),
		RefreshToken: string(r.readKey(refreshTokenFile)),
	}

	data := r.readKey(userFile)
	if len(data) == 0 {
		return credential, nil
	}

	var user credentials.UserProfile
	if err := json.Unmarshal(data, &user); err != nil {
		r.logger.Error().Err(err).Msg("corrupt stored user, discarding")
		_ = os.Remove(filepath.Join(r.dir, userFile))
		return credential, nil
	}
	credential.User = &user
	return credential, nil
}

// Clear erases all stored keys under the lock so no partial-clear state is
// observable through this repo.
func (r *FileCredentialRepo) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range []string{tokenFile, refreshTokenFile, userFile} {
		if err := os.Remove(filepath.Join(r.dir, name)); err != nil && !os.IsNotExist(err) {
			r.logger.Error().Err(err).Str("key", name).Msg("clear credential key")
		}
	}
	return nil
}

func (r *FileCredentialRepo) writeKey(name string, data []byte) {
	if err := os.WriteFile(filepath.Join(r.dir, name), data, 0o600); err != nil {
		r.logger.Error().Err(err).Str("key", name).Msg("write credential key")
	}
}

func (r *FileCredentialRepo) readKey(name string) []byte {
	data, err := os.ReadFile(filepath.Join(r.dir, name))
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Error().Err(err).Str("key", name).Msg("read credential key")
		}
		return nil
	}
	return data
}
