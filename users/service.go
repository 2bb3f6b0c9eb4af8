// Package users is the typed client for backend user administration:
// accounts, activation, and role assignment.
package users

import (
	"context"

	"github.com/aqarhub/go-admin-client/apiclient"
	"github.com/aqarhub/go-admin-client/credentials"
	"github.com/pkg/errors"
)

const basePath = "/users"

// User is a backend account as the admin screens see it.
type User struct {
	ID             string   `json:"id,omitempty"`             // Unique identifier for the user
	UserName       string   `json:"userName,omitempty"`       // Unique username
	FirstName      string   `json:"firstName,omitempty"`      // First name of the user
	LastName       string   `json:"lastName,omitempty"`       // Last name of the user
	Email          string   `json:"email,omitempty"`          // User's email address
	IsActive       bool     `json:"isActive,omitempty"`       // Whether the account may log in
	EmailConfirmed bool     `json:"emailConfirmed,omitempty"` // Whether the email was verified
	CountryCode    string   `json:"countryCode,omitempty"`
	PhoneNumber    string   `json:"phoneNumber,omitempty"`
	ImageURL       string   `json:"imageUrl,omitempty"`
	Roles          []string `json:"roles,omitempty"`
}

// CreateRequest is the new-account payload.
type CreateRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	UserName        string `json:"userName"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	PhoneNumber     string `json:"phoneNumber,omitempty"`
	CountryCode     string `json:"countryCode,omitempty"`
}

// ProfileImage is a base64-encoded avatar upload.
type ProfileImage struct {
	Name      string `json:"name"`
	Extension string `json:"extension"`
	Data      string `json:"data"`
}

// UpdateProfileRequest is the profile-edit payload.
type UpdateProfileRequest struct {
	ID                 string        `json:"id"`
	FirstName          string        `json:"firstName"`
	LastName           string        `json:"lastName"`
	PhoneNumber        string        `json:"phoneNumber,omitempty"`
	CountryCode        string        `json:"countryCode,omitempty"`
	Email              string        `json:"email"`
	Image              *ProfileImage `json:"image,omitempty"`
	DeleteCurrentImage bool          `json:"deleteCurrentImage,omitempty"`
}

// UserRole is one role assignment row.
type UserRole struct {
	RoleID   string `json:"roleId"`
	RoleName string `json:"roleName,omitempty"`
	Enabled  bool   `json:"enabled"`
}

// Service talks to the user-administration endpoints.
type Service struct {
	api *apiclient.Client
}

// NewService creates a user service over the given API client.
func NewService(api *apiclient.Client) (*Service, error) {
	if api == nil {
		return nil, errors.New("[users.NewService] api client is required")
	}
	return &Service{api: api}, nil
}

// List returns every backend account.
func (s *Service) List(ctx context.Context) ([]User, error) {
	var list []User
	if err := s.api.Get(ctx, basePath, &list); err != nil {
		return nil, errors.Wrap(err, "[users.List] list")
	}
	return list, nil
}

// Get fetches one account.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	var user User
	if err := s.api.Get(ctx, basePath+"/"+id, &user); err != nil {
		return nil, errors.Wrap(err, "[users.Get] get")
	}
	return &user, nil
}

// Create registers a new account.
func (s *Service) Create(ctx context.Context, req CreateRequest) error {
	return errors.Wrap(s.api.Post(ctx, basePath, req, nil), "[users.Create] create")
}

// UpdateProfile edits an account's profile and returns the updated record as
// a session profile, ready for session.Manager.UpdateUser.
func (s *Service) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*credentials.UserProfile, error) {
	var user User
	if err := s.api.Put(ctx, basePath+"/profile/"+req.ID, req, &user); err != nil {
		return nil, errors.Wrap(err, "[users.UpdateProfile] update")
	}
	return &credentials.UserProfile{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Roles:     user.Roles,
	}, nil
}

// ToggleStatus activates or deactivates an account.
func (s *Service) ToggleStatus(ctx context.Context, id string, activate bool) error {
	body := map[string]any{"activateUser": activate, "userId": id}
	return errors.Wrap(
		s.api.Post(ctx, basePath+"/"+id+"/toggle-status", body, nil),
		"[users.ToggleStatus] toggle",
	)
}

// Roles returns an account's role assignments.
func (s *Service) Roles(ctx context.Context, id string) ([]UserRole, error) {
	var roles []UserRole
	if err := s.api.Get(ctx, basePath+"/"+id+"/roles", &roles); err != nil {
		return nil, errors.Wrap(err, "[users.Roles] roles")
	}
	return roles, nil
}

// SetRoles replaces an account's role assignments.
func (s *Service) SetRoles(ctx context.Context, id string, roles []UserRole) error {
	body := map[string]any{"userRoles": roles}
	return errors.Wrap(
		s.api.Post(ctx, basePath+"/"+id+"/roles", body, nil),
		"[users.SetRoles] set roles",
	)
}
