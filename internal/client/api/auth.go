package api

import (
	"context"
	"fmt"
	"net/http"

	"creative-editor/internal/domain"
)

// Login authenticates and stores the returned access token.
func (c *Client) Login(ctx context.Context, username, password string) (domain.LoginResponse, error) {
	var resp domain.LoginResponse
	req := domain.LoginRequest{Username: username, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return domain.LoginResponse{}, fmt.Errorf("failed to login: %w", err)
	}
	c.tokens.Set(resp.AccessToken)
	return resp, nil
}

// Logout notifies the server when a token is held. The local token is
// cleared even if that call fails; the error is returned for logging only.
func (c *Client) Logout(ctx context.Context) error {
	defer c.tokens.Clear()

	if c.tokens.Get() == "" {
		return nil
	}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// Me returns ErrNoToken without calling the server when nobody is logged in.
func (c *Client) Me(ctx context.Context) (domain.User, error) {
	if c.tokens.Get() == "" {
		return domain.User{}, ErrNoToken
	}

	var user domain.User
	if err := c.getJSON(ctx, "/users/me", &user); err != nil {
		return domain.User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return user, nil
}

func (c *Client) UpdatePreferences(ctx context.Context, prefs map[string]any) (domain.User, error) {
	var user domain.User
	if err := c.doJSON(ctx, http.MethodPut, "/users/me/preferences", prefs, &user); err != nil {
		return domain.User{}, fmt.Errorf("failed to update preferences: %w", err)
	}
	return user, nil
}
