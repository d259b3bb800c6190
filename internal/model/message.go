// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the view-side data structures for conversations,
// messages, and streaming state.
package model

import (
	"encoding/json"
	"time"

	"github.com/jeranaias/alice-tui/internal/api"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// IsAssistant reports whether the message came from the model.
func (r Role) IsAssistant() bool {
	return r == RoleAssistant
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Alice"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
//
// Messages acknowledged by the backend carry its positive id; optimistic
// user messages awaiting acknowledgement carry a negative timestamp-derived
// id, which can never collide with backend ids.
type Message struct {
	ID        int64  `json:"id"`
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`

	// Reasoning is the model's decoded thinking trace, when one was
	// captured. Empty for user messages and non-reasoning replies.
	Reasoning string `json:"reasoning,omitempty"`

	// Pending marks an optimistic message not yet confirmed by the backend.
	Pending bool `json:"-"`
}

// NewPendingUserMessage creates the optimistic user message shown while the
// backend processes a send.
func NewPendingUserMessage(content string) *Message {
	return &Message{
		ID:        tempMessageID(),
		Role:      RoleUser,
		Content:   content,
		CreatedAt: time.Now().Format(time.RFC3339),
		Pending:   true,
	}
}

// tempMessageID generates a temporary id for an unacknowledged message.
// Negative so it can never collide with a backend id.
func tempMessageID() int64 {
	return -time.Now().UnixMilli()
}

// IsTemp reports whether the message still carries a temporary id.
func (m *Message) IsTemp() bool {
	return m.ID < 0
}

// FromAPIMessage converts a backend message record into the view model,
// decoding the reasoning trace from the sources payload.
func FromAPIMessage(src api.Message) *Message {
	return &Message{
		ID:        src.ID,
		Role:      Role(src.Role),
		Content:   src.Content,
		CreatedAt: src.CreatedAt,
		Reasoning: ParseSources(src.Sources),
	}
}

// FromAPIMessages converts a backend message history in order.
func FromAPIMessages(src []api.Message) []*Message {
	out := make([]*Message, 0, len(src))
	for _, m := range src {
		out = append(out, FromAPIMessage(m))
	}
	return out
}

// =============================================================================
// SOURCES PAYLOAD
// =============================================================================

// sourcesPayload is the JSON shape stored in a message's sources column.
type sourcesPayload struct {
	Reasoning string `json:"reasoning"`
}

// ParseSources extracts the reasoning trace from a sources JSON string.
// Nil, empty, and malformed payloads all decode to "".
func ParseSources(sources *string) string {
	if sources == nil || *sources == "" {
		return ""
	}
	var payload sourcesPayload
	if err := json.Unmarshal([]byte(*sources), &payload); err != nil {
		return ""
	}
	return payload.Reasoning
}

// EncodeSources builds the sources JSON string for a reasoning trace.
// An empty trace encodes to nil, matching what the backend stores.
func EncodeSources(reasoning string) *string {
	if reasoning == "" {
		return nil
	}
	encoded, err := json.Marshal(sourcesPayload{Reasoning: reasoning})
	if err != nil {
		return nil
	}
	s := string(encoded)
	return &s
}
