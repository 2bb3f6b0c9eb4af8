package repofake

import (
	"sync"

	"github.com/aqarhub/go-admin-client/credentials"
)

var _ credentials.Repo = (*FakeCredentialRepo)(nil)

// FakeCredentialRepo is an in-memory credential repository for tests.
type FakeCredentialRepo struct {
	lock       sync.RWMutex
	credential credentials.Credential

	SaveErr  error // Returned from Save when set
	LoadErr  error // Returned from Load when set
	ClearErr error // Returned from Clear when set

	SaveCalls  int
	ClearCalls int
}

func NewFakeCredentialRepo() *FakeCredentialRepo {
	return &FakeCredentialRepo{}
}

func (r *FakeCredentialRepo) Save(credential credentials.Credential) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.SaveCalls++
	if r.SaveErr != nil {
		return r.SaveErr
	}
	if credential.AccessToken != "" {
		r.credential.AccessToken = credential.AccessToken
	}
	if credential.RefreshToken != "" {
		r.credential.RefreshToken = credential.RefreshToken
	}
	if credential.User != nil {
		user := *credential.User
		r.credential.User = &user
	}
	return nil
}

func (r *FakeCredentialRepo) Load() (credentials.Credential, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if r.LoadErr != nil {
		return credentials.Credential{}, r.LoadErr
	}
	return r.credential, nil
}

func (r *FakeCredentialRepo) Clear() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.ClearCalls++
	if r.ClearErr != nil {
		return r.ClearErr
	}
	r.credential = credentials.Credential{}
	return nil
}

// Stored returns a snapshot of the stored credential for assertions.
func (r *FakeCredentialRepo) Stored() credentials.Credential {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.credential
}
