// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the view-side data structures for conversations,
// messages, and streaming state.
package model

// =============================================================================
// STREAMING STATE
// =============================================================================

// StreamingState carries the in-flight reply of the active conversation.
// At most one stream is live at a time; a terminated stream always resets
// this to the zero value so the input is never left locked.
type StreamingState struct {
	// Active is true from send until the terminal event (or abort).
	Active bool

	// Thinking is true while the model emits its reasoning trace, before
	// the first content chunk.
	Thinking bool

	// Content accumulates the reply text received so far.
	Content string

	// Reasoning accumulates the thinking trace received so far.
	Reasoning string

	// ChatID is the conversation the stream belongs to, 0 until the
	// target conversation is resolved.
	ChatID int64
}

// Reset clears all streaming state.
func (s *StreamingState) Reset() {
	*s = StreamingState{}
}

// AppendReasoning records a thinking chunk.
func (s *StreamingState) AppendReasoning(chunk string) {
	s.Thinking = true
	s.Reasoning += chunk
}

// AppendContent records a content chunk. The first content chunk ends the
// thinking phase.
func (s *StreamingState) AppendContent(chunk string) {
	s.Thinking = false
	s.Content += chunk
}
