// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the alice TUI.
package components

import (
	"strings"

	"github.com/jeranaias/alice-tui/internal/model"
	"github.com/jeranaias/alice-tui/internal/ui/styles"
	"github.com/jeranaias/alice-tui/internal/util"
)

// =============================================================================
// SIDEBAR COMPONENT - Conversation list
// =============================================================================

// Sidebar renders the conversation list on the left edge of the chat page.
// Selection is tracked by conversation ID so the cursor survives refreshes
// that reorder the list.
type Sidebar struct {
	conversations []*model.Conversation
	cursor        int
	currentID     int64
	width         int
	height        int
	offset        int
	theme         *styles.Theme
}

// NewSidebar creates a new Sidebar component.
func NewSidebar(theme *styles.Theme) *Sidebar {
	return &Sidebar{
		width:  28,
		height: 20,
		theme:  theme,
	}
}

// SetSize sets the rendered dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.clampCursor()
}

// SetConversations replaces the list, keeping the cursor on the same
// conversation when it still exists.
func (s *Sidebar) SetConversations(conversations []*model.Conversation) {
	var keepID int64
	if s.cursor >= 0 && s.cursor < len(s.conversations) {
		keepID = s.conversations[s.cursor].ID
	}
	s.conversations = conversations
	if keepID != 0 {
		for i, c := range conversations {
			if c.ID == keepID {
				s.cursor = i
				s.clampCursor()
				return
			}
		}
	}
	s.clampCursor()
}

// SetCurrent marks the conversation that is open in the chat pane.
func (s *Sidebar) SetCurrent(id int64) {
	s.currentID = id
}

// Selected returns the conversation under the cursor, or nil.
func (s *Sidebar) Selected() *model.Conversation {
	if s.cursor < 0 || s.cursor >= len(s.conversations) {
		return nil
	}
	return s.conversations[s.cursor]
}

// MoveUp moves the cursor up one entry.
func (s *Sidebar) MoveUp() {
	if s.cursor > 0 {
		s.cursor--
	}
	s.scrollToCursor()
}

// MoveDown moves the cursor down one entry.
func (s *Sidebar) MoveDown() {
	if s.cursor < len(s.conversations)-1 {
		s.cursor++
	}
	s.scrollToCursor()
}

func (s *Sidebar) clampCursor() {
	if s.cursor >= len(s.conversations) {
		s.cursor = len(s.conversations) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
	s.scrollToCursor()
}

func (s *Sidebar) visibleRows() int {
	rows := s.height - 2 // title + spacer
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (s *Sidebar) scrollToCursor() {
	rows := s.visibleRows()
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+rows {
		s.offset = s.cursor - rows + 1
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

// View renders the sidebar.
func (s *Sidebar) View() string {
	var b strings.Builder
	b.WriteString(s.theme.SidebarTitle.Render("Conversations"))
	b.WriteString("\n\n")

	if len(s.conversations) == 0 {
		b.WriteString(s.theme.SidebarMeta.Render("No conversations"))
		return s.theme.Sidebar.Width(s.width).Height(s.height).Render(b.String())
	}

	rows := s.visibleRows()
	end := s.offset + rows
	if end > len(s.conversations) {
		end = len(s.conversations)
	}
	inner := s.width - 3 // border + padding
	for i := s.offset; i < end; i++ {
		c := s.conversations[i]
		marker := "  "
		if c.ID == s.currentID {
			marker = "* "
		}
		title := util.TruncateWidth(c.DisplayTitle(), inner-2)
		line := marker + title
		switch {
		case i == s.cursor:
			b.WriteString(s.theme.SidebarSelected.Width(inner).Render(line))
		default:
			b.WriteString(s.theme.SidebarItem.Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return s.theme.Sidebar.Width(s.width).Height(s.height).Render(b.String())
}
