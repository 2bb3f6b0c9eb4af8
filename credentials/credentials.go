package credentials

// UserProfile is the cached identity of the logged-in administrator.
// Roles and Permissions arrive at the top level of the login response and
// are merged into the profile before it is persisted.
type UserProfile struct {
	ID          string   `json:"id,omitempty"`          // Unique identifier for the user
	Email       string   `json:"email,omitempty"`       // User's email address
	FirstName   string   `json:"firstName,omitempty"`   // First name of the user
	LastName    string   `json:"lastName,omitempty"`    // Last name of the user
	Roles       []string `json:"roles,omitempty"`       // Role names, membership only matters
	Permissions []string `json:"permissions,omitempty"` // Permission strings, carried opaquely
}

// HasRole reports whether the profile holds the named role.
func (p *UserProfile) HasRole(role string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Credential is the persisted session record. An absent access token means
// the session is unauthenticated regardless of the cached profile.
type Credential struct {
	AccessToken  string       // Bearer token for authenticated calls
	RefreshToken string       // Opaque token used only by the refresh flow
	User         *UserProfile // Cached identity, nil when logged out
}

// Authenticated reports whether the record represents a usable session.
func (c Credential) Authenticated() bool {
	return c.AccessToken != "" && c.User != nil
}
