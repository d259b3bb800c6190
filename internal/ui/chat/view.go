// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/alice-tui/internal/model"
	"github.com/jeranaias/alice-tui/internal/ui/components"
)

// streamCursor marks the reveal position while text is animating.
const streamCursor = "▌"

// =============================================================================
// VIEW RENDERING
// =============================================================================

// View renders the complete chat page.
func (m *Model) View() string {
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), m.viewport.View())

	var sections []string
	sections = append(sections, body)

	if chips := components.RenderChips(m.theme, m.resolver.Mentions()); chips != "" {
		sections = append(sections, chips)
	}
	if m.pickerOpen {
		sections = append(sections, m.picker.View())
	}
	sections = append(sections, m.theme.InputContainer.Width(m.width).Render(m.input.View()))

	m.statusBar.Status = m.currentStatus()
	m.statusBar.ErrorMsg = m.err
	m.statusBar.Notice = m.notice
	sections = append(sections, m.statusBar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// refreshViewport rebuilds the transcript pane from the current snapshot.
func (m *Model) refreshViewport() {
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderTranscript())
	if atBottom {
		m.viewport.GotoBottom()
	}
}

func (m *Model) renderTranscript() string {
	current := m.manager.Current()
	if current == nil {
		return m.theme.Faint.Render("\n  Start a new conversation. Type a message and press enter.")
	}

	now := time.Now()
	streaming := m.manager.Streaming()
	var b strings.Builder

	messages := current.Messages
	lastAssistant := -1
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role.IsAssistant() {
			lastAssistant = i
			break
		}
	}

	for i, msg := range messages {
		animated := i == lastAssistant && !streaming.Active
		b.WriteString(m.renderMessage(msg, animated, now))
		b.WriteString("\n")
	}

	if streaming.Active {
		b.WriteString(m.renderStreaming(streaming, now))
	}
	return b.String()
}

// renderMessage renders one message. The final assistant message keeps
// animating after the stream ends until the reveal catches up.
func (m *Model) renderMessage(msg *model.Message, animated bool, now time.Time) string {
	var b strings.Builder
	switch {
	case msg.Role.IsAssistant():
		b.WriteString(m.theme.AssistantLabel.Render(msg.Role.DisplayName()))
	case msg.Role == model.RoleUser:
		b.WriteString(m.theme.UserLabel.Render(msg.Role.DisplayName()))
	default:
		b.WriteString(m.theme.Faint.Render(msg.Role.DisplayName()))
	}
	if msg.Pending {
		b.WriteString(" " + m.theme.Faint.Render("(sending)"))
	}
	b.WriteString("\n")

	content := msg.Content
	if animated && m.animator.Target() == msg.Content && !m.animator.Done(now) {
		b.WriteString(m.theme.MessageBody.Render(m.animator.Visible(now)))
		b.WriteString(m.theme.Cursor.Render(streamCursor))
		b.WriteString("\n")
		return b.String()
	}

	if msg.Role.IsAssistant() {
		b.WriteString(m.renderMarkdown(content))
	} else {
		b.WriteString(m.theme.MessageBody.Render(content))
		b.WriteString("\n")
	}
	return b.String()
}

// renderStreaming renders the in-flight assistant turn.
func (m *Model) renderStreaming(streaming model.StreamingState, now time.Time) string {
	var b strings.Builder
	b.WriteString(m.theme.AssistantLabel.Render("Alice"))
	b.WriteString(" " + m.spin.View())
	b.WriteString("\n")

	if streaming.Reasoning != "" {
		b.WriteString(m.theme.Reasoning.Render(streaming.Reasoning))
		b.WriteString("\n")
	}
	if streaming.Content != "" {
		b.WriteString(m.theme.MessageBody.Render(m.animator.Visible(now)))
		b.WriteString(m.theme.Cursor.Render(streamCursor))
		b.WriteString("\n")
	} else if streaming.Thinking {
		b.WriteString(m.theme.Faint.Render("thinking..."))
		b.WriteString("\n")
	}
	return b.String()
}

// renderMarkdown renders settled assistant text through glamour, falling
// back to plain text when rendering fails.
func (m *Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return m.theme.MessageBody.Render(content) + "\n"
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return m.theme.MessageBody.Render(content) + "\n"
	}
	return out
}
