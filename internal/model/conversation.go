// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the view-side data structures for conversations,
// messages, and streaming state.
package model

import (
	"github.com/jeranaias/alice-tui/internal/api"
	"github.com/jeranaias/alice-tui/internal/util"
)

// untitledDisplay is shown for conversations the user never named.
const untitledDisplay = "新对话"

// optimisticTitleRunes caps the title derived from a first message.
const optimisticTitleRunes = 30

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds a chat conversation's metadata and, once loaded, its
// message history.
type Conversation struct {
	ID           int64   `json:"id"`
	Title        *string `json:"title"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
	MessageCount int     `json:"message_count"`

	// Messages is populated by a detail fetch; nil means "not loaded yet",
	// which is distinct from an empty history.
	Messages []*Message `json:"messages,omitempty"`
}

// FromAPIConversation converts a backend list-view record.
func FromAPIConversation(src api.Conversation) *Conversation {
	return &Conversation{
		ID:           src.ID,
		Title:        src.Title,
		CreatedAt:    src.CreatedAt,
		UpdatedAt:    src.UpdatedAt,
		MessageCount: src.MessageCount,
	}
}

// FromAPIConversations converts a backend conversation list in order.
func FromAPIConversations(src []api.Conversation) []*Conversation {
	out := make([]*Conversation, 0, len(src))
	for _, c := range src {
		out = append(out, FromAPIConversation(c))
	}
	return out
}

// FromAPIConversationDetail converts a backend detail record, history
// included.
func FromAPIConversationDetail(src api.ConversationDetail) *Conversation {
	return &Conversation{
		ID:           src.ID,
		Title:        src.Title,
		CreatedAt:    src.CreatedAt,
		UpdatedAt:    src.UpdatedAt,
		MessageCount: len(src.Messages),
		Messages:     FromAPIMessages(src.Messages),
	}
}

// =============================================================================
// DISPLAY HELPERS
// =============================================================================

// DisplayTitle returns the title to render, substituting a placeholder for
// unnamed conversations.
func (c *Conversation) DisplayTitle() string {
	if c.Title == nil || *c.Title == "" {
		return untitledDisplay
	}
	return *c.Title
}

// IsUntitled reports whether the conversation still has no real title and
// is eligible for an optimistic title on first send.
func (c *Conversation) IsUntitled() bool {
	return c.Title == nil || *c.Title == ""
}

// SetTitle replaces the conversation title in place.
func (c *Conversation) SetTitle(title string) {
	c.Title = &title
}

// OptimisticTitle derives a conversation title from the first user message,
// truncated so the sidebar stays readable.
func OptimisticTitle(firstMessage string) string {
	return util.TruncateRunes(firstMessage, optimisticTitleRunes)
}

// AppendMessage adds a message and keeps the count in sync.
func (c *Conversation) AppendMessage(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.MessageCount = len(c.Messages)
}

// RemoveMessage deletes the message with the given id, if present.
func (c *Conversation) RemoveMessage(id int64) {
	for i, m := range c.Messages {
		if m.ID == id {
			c.Messages = append(c.Messages[:i], c.Messages[i+1:]...)
			c.MessageCount = len(c.Messages)
			return
		}
	}
}

// LastMessage returns the newest message, or nil for an empty history.
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}
