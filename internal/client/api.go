package client

import (
	"context"

	"github.com/target/admin-panel/internal/domain/model"
)

// SSOLogin is the IdP redirect returned by the server.
type SSOLogin struct {
	AuthURL string `json:"authUrl"`
	State   string `json:"state"`
}

// SettingsAPI reads and replaces the settings singleton.
type SettingsAPI struct{ c *Client }

// Settings returns the settings accessor.
func (c *Client) Settings() SettingsAPI { return SettingsAPI{c: c} }

// Get fetches the current settings.
func (s SettingsAPI) Get(ctx context.Context) (*model.Settings, error) {
	var out model.Settings
	if err := s.c.Get(ctx, "settings", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Put replaces the settings.
func (s SettingsAPI) Put(ctx context.Context, req model.UpdateSettingsRequest) (*model.Settings, error) {
	var out model.Settings
	if err := s.c.Put(ctx, "settings", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dashboard fetches the per-resource counts.
func (c *Client) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	var out model.DashboardStats
	if err := c.Get(ctx, "dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	var out model.LoginResponse
	if err := c.Post(ctx, "auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the current token.
func (c *Client) Logout(ctx context.Context) error {
	return c.Post(ctx, "auth/logout", nil, nil)
}

// Me fetches the signed-in user.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := c.Get(ctx, "auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile edits the signed-in user's display fields.
func (c *Client) UpdateProfile(ctx context.Context, req model.UpdateProfileRequest) (*model.User, error) {
	var out model.User
	if err := c.Patch(ctx, "auth/profile", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword rotates the signed-in user's password.
func (c *Client) ChangePassword(ctx context.Context, req model.ChangePasswordRequest) error {
	return c.Post(ctx, "auth/password", req, nil)
}

// BeginSSO asks the server for the IdP login URL.
func (c *Client) BeginSSO(ctx context.Context, redirect string) (*SSOLogin, error) {
	var out SSOLogin
	q := map[string][]string{}
	if redirect != "" {
		q["redirect_uri"] = []string{redirect}
	}
	if err := c.Get(ctx, "auth/sso/login", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
