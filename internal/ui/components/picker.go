// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the alice TUI.
package components

import (
	"strings"

	"github.com/jeranaias/alice-tui/internal/mention"
	"github.com/jeranaias/alice-tui/internal/ui/styles"
	"github.com/jeranaias/alice-tui/internal/util"
)

// =============================================================================
// MENTION PICKER COMPONENT - @-mention popup
// =============================================================================

// MentionPicker displays the popup that opens when the user types "@" in the
// chat input. Candidates are filtered live as the user keeps typing.
type MentionPicker struct {
	items      []mention.Item
	selected   int
	maxVisible int
	width      int
	query      string
	theme      *styles.Theme
}

// NewMentionPicker creates a new mention picker.
func NewMentionPicker(theme *styles.Theme) *MentionPicker {
	return &MentionPicker{
		maxVisible: 8,
		width:      44,
		theme:      theme,
	}
}

// SetItems sets the candidates to display and resets the selection.
func (p *MentionPicker) SetItems(items []mention.Item, query string) {
	p.items = items
	p.query = query
	p.selected = 0
}

// Items returns the current candidates.
func (p *MentionPicker) Items() []mention.Item {
	return p.items
}

// Selected returns the item under the cursor, or nil when empty.
func (p *MentionPicker) Selected() *mention.Item {
	if p.selected < 0 || p.selected >= len(p.items) {
		return nil
	}
	item := p.items[p.selected]
	return &item
}

// Next moves the selection down, wrapping at the end.
func (p *MentionPicker) Next() {
	if len(p.items) == 0 {
		return
	}
	p.selected = (p.selected + 1) % len(p.items)
}

// Prev moves the selection up, wrapping at the start.
func (p *MentionPicker) Prev() {
	if len(p.items) == 0 {
		return
	}
	p.selected--
	if p.selected < 0 {
		p.selected = len(p.items) - 1
	}
}

// SetWidth sets the popup width.
func (p *MentionPicker) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	p.width = width
}

// View renders the picker popup.
func (p *MentionPicker) View() string {
	var b strings.Builder
	title := "Mention"
	if p.query != "" {
		title += " @" + p.query
	}
	b.WriteString(p.theme.Title.Render(title))
	b.WriteString("\n")

	if len(p.items) == 0 {
		b.WriteString(p.theme.Faint.Render("No matches"))
		return p.theme.PickerBox.Width(p.width).Render(b.String())
	}

	// Keep the selection visible when the list is longer than the popup.
	start := 0
	if p.selected >= p.maxVisible {
		start = p.selected - p.maxVisible + 1
	}
	end := start + p.maxVisible
	if end > len(p.items) {
		end = len(p.items)
	}

	inner := p.width - 4
	for i := start; i < end; i++ {
		item := p.items[i]
		tag := "[V]"
		if item.Type == mention.TypeConversation {
			tag = "[C]"
		}
		line := tag + " " + util.TruncateWidth(item.Title, inner-10)
		if item.Subtitle != "" {
			line += " " + p.theme.PickerMeta.Render(util.TruncateWidth(item.Subtitle, inner-util.StringWidth(line)))
		}
		if i == p.selected {
			b.WriteString(p.theme.PickerFocused.Width(inner).Render(line))
		} else {
			b.WriteString(p.theme.PickerItem.Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(p.items) {
		b.WriteString("\n")
		b.WriteString(p.theme.Faint.Render(util.IntToString(len(p.items)-end) + " more..."))
	}
	return p.theme.PickerBox.Width(p.width).Render(b.String())
}

// RenderChips renders the active mention chips shown above the input.
func RenderChips(theme *styles.Theme, items []mention.Item) string {
	if len(items) == 0 {
		return ""
	}
	var chips []string
	for _, item := range items {
		label := "@" + util.TruncateWidth(item.Title, 24)
		if item.Loading {
			chips = append(chips, theme.ChipLoading.Render(label+" ..."))
		} else {
			chips = append(chips, theme.Chip.Render(label))
		}
	}
	return strings.Join(chips, " ")
}
