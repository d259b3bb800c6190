// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/alice-tui/internal/api"
	"github.com/jeranaias/alice-tui/internal/mention"
	"github.com/jeranaias/alice-tui/internal/ui/components"
	"github.com/jeranaias/alice-tui/internal/util"
)

// =============================================================================
// UPDATE LOOP
// =============================================================================

// Update handles all Bubble Tea messages for the chat page.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case SessionUpdatedMsg:
		return m, m.onSessionUpdated()

	case MentionsUpdatedMsg:
		return m, nil

	case SendFailedMsg:
		m.err = msg.Err.Error()
		return m, nil

	case ImportStartedMsg:
		if msg.Err != nil {
			m.err = "import failed: " + msg.Err.Error()
		} else {
			m.notice = "importing: " + msg.Title
		}
		return m, nil

	case CandidatesLoadedMsg:
		if msg.Err == nil {
			m.videos = msg.Videos
			m.videosLoaded = true
		}
		if m.pickerOpen {
			m.syncPickerItems()
		}
		return m, nil

	case AnimTickMsg:
		if msg.Generation != m.animator.Generation() {
			// A newer animation run superseded this tick chain.
			return m, nil
		}
		m.refreshViewport()
		if m.animator.Done(time.Now()) {
			m.animating = false
			return m, nil
		}
		return m, animTickCmd(msg.Generation)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// onSessionUpdated re-reads manager snapshots and keeps the reveal
// animation chasing the stream.
func (m *Model) onSessionUpdated() tea.Cmd {
	m.sidebar.SetConversations(m.manager.Conversations())
	current := m.manager.Current()
	if current != nil {
		m.sidebar.SetCurrent(current.ID)
	} else {
		m.sidebar.SetCurrent(0)
	}

	streaming := m.manager.Streaming()
	now := time.Now()
	var cmd tea.Cmd
	switch {
	case streaming.Active && streaming.Content != "":
		m.animator.SetText(streaming.Content, now)
		cmd = m.ensureAnimTick()
	case !streaming.Active && current != nil:
		// After the stream settles the full text lives on the last
		// assistant message; let the animation finish against it.
		if last := current.LastMessage(); last != nil && last.Role.IsAssistant() {
			m.animator.SetText(last.Content, now)
			cmd = m.ensureAnimTick()
		}
	}

	m.err = m.manager.LastError()
	m.refreshViewport()
	m.viewport.GotoBottom()
	return cmd
}

func (m *Model) ensureAnimTick() tea.Cmd {
	if m.animating || m.animator.Done(time.Now()) {
		return nil
	}
	m.animating = true
	return animTickCmd(m.animator.Generation())
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if m.pickerOpen {
		return m.handlePickerKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		if m.manager.IsStreaming() {
			m.manager.CancelStream()
			return m, nil
		}
		m.err = ""
		m.manager.ClearError()
		return m, nil

	case key.Matches(msg, m.keys.NewChat):
		m.manager.NewChat()
		m.resolver.Clear()
		m.animator.Reset()
		m.input.SetValue("")
		m.focus = focusInput
		m.input.Focus()
		return m, nil

	case key.Matches(msg, m.keys.FocusFlip):
		if m.focus == focusInput {
			m.focus = focusSidebar
			m.input.Blur()
		} else {
			m.focus = focusInput
			m.input.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearChips):
		m.resolver.Clear()
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	if m.focus == focusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleInputKey(msg)
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.sidebar.MoveUp()
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.sidebar.MoveDown()
		return m, nil
	case key.Matches(msg, m.keys.Send):
		if sel := m.sidebar.Selected(); sel != nil {
			m.animator.Reset()
			return m, m.selectCmd(sel.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if sel := m.sidebar.Selected(); sel != nil {
			return m, m.deleteCmd(sel.ID)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Send) {
		question := strings.TrimSpace(m.input.Value())
		if question == "" {
			return m, nil
		}
		// An input that is just a pasted bilibili link is an import,
		// not a question.
		if url := util.ExtractBilibiliLink(question); url != "" && !strings.ContainsAny(question, " \t") {
			m.input.SetValue("")
			m.notice = "importing " + url + "..."
			return m, m.importCmd(url)
		}
		content := m.resolver.BuildMessage(question)
		m.input.SetValue("")
		m.resolver.Clear()
		m.animator.Reset()
		m.err = ""
		m.notice = ""
		return m, m.sendCmd(content)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	pickerCmd := m.syncPicker()
	return m, tea.Batch(cmd, pickerCmd)
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.picker.Prev()
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.picker.Next()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.pickerOpen = false
		return m, nil
	case key.Matches(msg, m.keys.Send), key.Matches(msg, m.keys.FocusFlip):
		if sel := m.picker.Selected(); sel != nil {
			m.applyMention(*sel)
		} else if item, ok := mention.FirstMatch(m.resolver.Candidates(m.videos, m.conversationList()), m.pickerQuery); ok {
			// The candidate load may not have reached the picker yet.
			m.applyMention(item)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	pickerCmd := m.syncPicker()
	return m, tea.Batch(cmd, pickerCmd)
}

// =============================================================================
// MENTION PICKER WIRING
// =============================================================================

// syncPicker opens, closes, or refilters the picker after an input edit.
func (m *Model) syncPicker() tea.Cmd {
	query, start, ok := mentionQuery(m.input.Value(), m.input.Position())
	if !ok {
		m.pickerOpen = false
		return nil
	}
	m.pickerOpen = true
	m.pickerQuery = query
	m.pickerStart = start
	if !m.videosLoaded {
		m.picker.SetItems(nil, query)
		return m.loadCandidatesCmd()
	}
	m.syncPickerItems()
	return nil
}

func (m *Model) syncPickerItems() {
	candidates := m.resolver.Candidates(m.videos, m.conversationList())
	m.picker.SetItems(mention.Filter(candidates, m.pickerQuery), m.pickerQuery)
}

func (m *Model) conversationList() []api.Conversation {
	conversations := m.manager.Conversations()
	out := make([]api.Conversation, 0, len(conversations))
	for _, c := range conversations {
		out = append(out, api.Conversation{
			ID:           c.ID,
			Title:        c.Title,
			CreatedAt:    c.CreatedAt,
			UpdatedAt:    c.UpdatedAt,
			MessageCount: c.MessageCount,
		})
	}
	return out
}

// applyMention adds the item to the mention set and strips the "@query"
// token from the input.
func (m *Model) applyMention(item mention.Item) {
	m.resolver.Add(context.Background(), item)
	end := m.pickerStart + 1 + len([]rune(m.pickerQuery))
	m.input.SetValue(removeRuneRange(m.input.Value(), m.pickerStart, end))
	m.input.SetCursor(m.pickerStart)
	m.pickerOpen = false
}

// =============================================================================
// STATUS
// =============================================================================

func (m *Model) currentStatus() components.Status {
	streaming := m.manager.Streaming()
	switch {
	case streaming.Active && streaming.Thinking:
		return components.StatusThinking
	case streaming.Active:
		return components.StatusStreaming
	case m.err != "":
		return components.StatusError
	default:
		return components.StatusReady
	}
}
