// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the alice backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend API base URL (default: http://127.0.0.1:8000)
	BaseURL string

	// StreamBaseURL is the host used for the chat streaming endpoint. It
	// defaults to BaseURL; deployments that front the API with a buffering
	// proxy point this at the backend directly.
	StreamBaseURL string

	// Timeout for non-streaming requests (default: 30s)
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:8000",
		Timeout: 30 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// TokenSource supplies the bearer token attached to every request.
// An empty return means "no token" (the request is sent unauthenticated and
// the backend answers 401).
type TokenSource func() string

// StaticToken returns a TokenSource that always yields token.
func StaticToken(token string) TokenSource {
	return func() string { return token }
}

// Client handles communication with the alice backend API.
// It is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client

	tokenMu sync.RWMutex
	token   TokenSource
}

// NewClient creates a backend client with the given configuration.
// A nil config uses defaults.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.StreamBaseURL == "" {
		config.StreamBaseURL = config.BaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// SetTokenSource installs the bearer token provider. Safe to call while
// requests are in flight (the TUI swaps it after an in-app login).
func (c *Client) SetTokenSource(src TokenSource) {
	c.tokenMu.Lock()
	c.token = src
	c.tokenMu.Unlock()
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

const apiPrefix = "/api/v1"

// do performs a JSON request against the API and decodes the response into
// out (which may be nil for endpoints without a useful body).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+apiPrefix+path, reqBody)
	if err != nil {
		return &ClientError{Type: ErrTypeNotReachable, Message: "failed to create request", Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		if errors.Is(err, context.Canceled) {
			return err
		}
		return &ClientError{Type: ErrTypeNotReachable, Message: "backend is not reachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: method + " " + path + " failed: " + resp.Status + detailSuffix(resp.Body),
		}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// authorize attaches the bearer token, if any.
func (c *Client) authorize(req *http.Request) {
	c.tokenMu.RLock()
	src := c.token
	c.tokenMu.RUnlock()
	if src == nil {
		return
	}
	if tok := src(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

// detailSuffix extracts the backend's {"detail": ...} error message, if the
// body carries one, for inclusion in the client error.
func detailSuffix(body io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err == nil && payload.Detail != "" {
		return " (" + payload.Detail + ")"
	}
	return ""
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckReachable verifies that the backend answers at all.
func (c *Client) CheckReachable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+apiPrefix+"/videos/stats/summary", nil)
	if err != nil {
		return &ClientError{Type: ErrTypeNotReachable, Message: "failed to create request", Cause: err}
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ErrNotReachable
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}
