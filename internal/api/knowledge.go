// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the alice backend.
package api

import (
	"context"
	"net/http"
	"net/url"
)

// =============================================================================
// KNOWLEDGE GRAPH ENDPOINTS
// =============================================================================

// GetKnowledgeGraph fetches the concept/video graph. An empty concept
// fetches the global graph; otherwise the neighborhood of that concept.
func (c *Client) GetKnowledgeGraph(ctx context.Context, concept string) (*KnowledgeGraph, error) {
	path := "/knowledge/graph"
	if concept != "" {
		path += "?concept=" + url.QueryEscape(concept)
	}

	var out KnowledgeGraph
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetGraphStats fetches graph-wide counts without the node/edge payload.
func (c *Client) GetGraphStats(ctx context.Context) (*GraphStats, error) {
	var out GraphStats
	if err := c.do(ctx, http.MethodGet, "/knowledge/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
