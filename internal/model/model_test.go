// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the view-side data structures for conversations,
// messages, and streaming state.
package model

import (
	"strings"
	"testing"

	"github.com/jeranaias/alice-tui/internal/api"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewPendingUserMessage(t *testing.T) {
	msg := NewPendingUserMessage("hello")

	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want user", msg.Role)
	}
	if msg.Content != "hello" {
		t.Errorf("Content = %q", msg.Content)
	}
	if msg.ID >= 0 {
		t.Errorf("ID = %d, want negative temporary id", msg.ID)
	}
	if !msg.IsTemp() {
		t.Error("IsTemp should be true for a pending message")
	}
	if !msg.Pending {
		t.Error("Pending should be true")
	}
}

func TestFromAPIMessage_DecodesReasoning(t *testing.T) {
	sources := `{"reasoning":"step by step"}`
	msg := FromAPIMessage(api.Message{
		ID:      9,
		Role:    "assistant",
		Content: "answer",
		Sources: &sources,
	})

	if msg.ID != 9 || msg.Role != RoleAssistant {
		t.Errorf("identity = %d/%q", msg.ID, msg.Role)
	}
	if msg.Reasoning != "step by step" {
		t.Errorf("Reasoning = %q", msg.Reasoning)
	}
	if msg.IsTemp() {
		t.Error("backend message must not be temporary")
	}
}

func TestParseSources(t *testing.T) {
	valid := `{"reasoning":"trace"}`
	empty := ""
	noReasoning := `{"other":"x"}`
	malformed := `{broken`

	tests := []struct {
		name    string
		sources *string
		want    string
	}{
		{"nil", nil, ""},
		{"empty string", &empty, ""},
		{"valid", &valid, "trace"},
		{"no reasoning key", &noReasoning, ""},
		{"malformed", &malformed, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseSources(tc.sources); got != tc.want {
				t.Errorf("ParseSources = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEncodeSources(t *testing.T) {
	if got := EncodeSources(""); got != nil {
		t.Errorf("EncodeSources(\"\") = %v, want nil", *got)
	}

	got := EncodeSources("why not")
	if got == nil {
		t.Fatal("EncodeSources returned nil for non-empty trace")
	}
	if ParseSources(got) != "why not" {
		t.Errorf("round trip = %q", ParseSources(got))
	}
}

func TestRoleDisplayName(t *testing.T) {
	if RoleUser.DisplayName() != "You" {
		t.Errorf("user = %q", RoleUser.DisplayName())
	}
	if RoleAssistant.DisplayName() != "Alice" {
		t.Errorf("assistant = %q", RoleAssistant.DisplayName())
	}
	if Role("weird").DisplayName() != "weird" {
		t.Errorf("unknown role = %q", Role("weird").DisplayName())
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversationDisplayTitle(t *testing.T) {
	named := "我的对话"
	empty := ""

	tests := []struct {
		name  string
		title *string
		want  string
	}{
		{"nil title", nil, "新对话"},
		{"empty title", &empty, "新对话"},
		{"named", &named, "我的对话"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &Conversation{ID: 1, Title: tc.title}
			if got := c.DisplayTitle(); got != tc.want {
				t.Errorf("DisplayTitle = %q, want %q", got, tc.want)
			}
			wantUntitled := tc.title == nil || *tc.title == ""
			if c.IsUntitled() != wantUntitled {
				t.Errorf("IsUntitled = %v", c.IsUntitled())
			}
		})
	}
}

func TestOptimisticTitle(t *testing.T) {
	short := "short question"
	if got := OptimisticTitle(short); got != short {
		t.Errorf("short = %q", got)
	}

	long := strings.Repeat("字", 40)
	got := OptimisticTitle(long)
	if got != strings.Repeat("字", 30)+"..." {
		t.Errorf("long = %q (len %d runes)", got, len([]rune(got)))
	}
}

func TestConversationMessageManagement(t *testing.T) {
	c := &Conversation{ID: 1}

	if c.LastMessage() != nil {
		t.Error("LastMessage on empty history should be nil")
	}

	c.AppendMessage(&Message{ID: 1, Content: "a"})
	c.AppendMessage(&Message{ID: -5, Content: "pending"})

	if c.MessageCount != 2 {
		t.Errorf("MessageCount = %d, want 2", c.MessageCount)
	}
	if c.LastMessage().Content != "pending" {
		t.Errorf("LastMessage = %q", c.LastMessage().Content)
	}

	c.RemoveMessage(-5)
	if c.MessageCount != 1 || c.LastMessage().ID != 1 {
		t.Errorf("after remove: count=%d last=%d", c.MessageCount, c.LastMessage().ID)
	}

	// Removing an unknown id is a no-op.
	c.RemoveMessage(777)
	if c.MessageCount != 1 {
		t.Errorf("count after no-op remove = %d", c.MessageCount)
	}
}

func TestFromAPIConversationDetail(t *testing.T) {
	sources := `{"reasoning":"r"}`
	detail := api.ConversationDetail{
		ID: 4,
		Messages: []api.Message{
			{ID: 1, Role: "user", Content: "q"},
			{ID: 2, Role: "assistant", Content: "a", Sources: &sources},
		},
	}

	c := FromAPIConversationDetail(detail)
	if c.MessageCount != 2 || len(c.Messages) != 2 {
		t.Fatalf("messages = %d", len(c.Messages))
	}
	if c.Messages[1].Reasoning != "r" {
		t.Errorf("Reasoning = %q", c.Messages[1].Reasoning)
	}
}

// =============================================================================
// STREAMING STATE TESTS
// =============================================================================

func TestStreamingStatePhases(t *testing.T) {
	var s StreamingState
	s.Active = true

	s.AppendReasoning("think ")
	s.AppendReasoning("more")
	if !s.Thinking {
		t.Error("Thinking should be true during reasoning")
	}
	if s.Reasoning != "think more" {
		t.Errorf("Reasoning = %q", s.Reasoning)
	}

	s.AppendContent("hello")
	if s.Thinking {
		t.Error("first content chunk must end the thinking phase")
	}
	s.AppendContent(" world")
	if s.Content != "hello world" {
		t.Errorf("Content = %q", s.Content)
	}

	s.Reset()
	if s.Active || s.Thinking || s.Content != "" || s.Reasoning != "" {
		t.Errorf("Reset left state %+v", s)
	}
}
