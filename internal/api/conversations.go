// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the alice backend.
package api

import (
	"context"
	"net/http"

	"github.com/jeranaias/alice-tui/internal/util"
)

// =============================================================================
// CONVERSATION ENDPOINTS
// =============================================================================

// ListConversations fetches all conversations, newest first.
func (c *Client) ListConversations(ctx context.Context) ([]Conversation, error) {
	var out []Conversation
	if err := c.do(ctx, http.MethodGet, "/conversations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateConversation creates a conversation. A nil title leaves naming to
// the backend (untitled conversations display a placeholder client-side).
func (c *Client) CreateConversation(ctx context.Context, title *string) (*Conversation, error) {
	body := struct {
		Title *string `json:"title"`
	}{Title: title}

	var out Conversation
	if err := c.do(ctx, http.MethodPost, "/conversations", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetConversation fetches a conversation with its full message history.
func (c *Client) GetConversation(ctx context.Context, id int64) (*ConversationDetail, error) {
	var out ConversationDetail
	if err := c.do(ctx, http.MethodGet, "/conversations/"+util.Int64ToString(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RenameConversation sets a conversation title.
func (c *Client) RenameConversation(ctx context.Context, id int64, title string) (*Conversation, error) {
	body := struct {
		Title string `json:"title"`
	}{Title: title}

	var out Conversation
	if err := c.do(ctx, http.MethodPut, "/conversations/"+util.Int64ToString(id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteConversation removes a conversation and its messages.
func (c *Client) DeleteConversation(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/conversations/"+util.Int64ToString(id), nil, nil)
}
