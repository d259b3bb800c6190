// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the alice backend.
package api

import (
	"context"
	"net/http"
)

// =============================================================================
// SYSTEM / CONFIG ENDPOINTS
// =============================================================================

// GetStorageStats fetches backend disk usage figures.
func (c *Client) GetStorageStats(ctx context.Context) (*StorageStats, error) {
	var out StorageStats
	if err := c.do(ctx, http.MethodGet, "/system/storage", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CleanupStorage deletes intermediate audio files for processed videos.
func (c *Client) CleanupStorage(ctx context.Context) (*CleanupResult, error) {
	var out CleanupResult
	if err := c.do(ctx, http.MethodPost, "/system/storage/cleanup", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBackendConfig fetches the backend's ASR and LLM configuration summary.
// Secrets are never returned, only whether a key is set.
func (c *Client) GetBackendConfig(ctx context.Context) (*BackendConfig, error) {
	var out BackendConfig
	if err := c.do(ctx, http.MethodGet, "/system/config", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
