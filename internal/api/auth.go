// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the alice backend.
package api

import (
	"context"
	"net/http"
)

// =============================================================================
// AUTH ENDPOINTS
// =============================================================================

// Login exchanges credentials for a bearer token. The token is NOT stored
// on the client; the caller persists it and installs a token source.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var out TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and returns its first bearer token.
func (c *Client) Register(ctx context.Context, email, username, password string) (*TokenResponse, error) {
	body := struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}{Email: email, Username: username, Password: password}

	var out TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the authenticated user's profile. Useful as a token validity
// probe at startup.
func (c *Client) Me(ctx context.Context) (*UserInfo, error) {
	var out UserInfo
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
