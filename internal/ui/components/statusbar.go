// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the alice TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/alice-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom status bar
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusThinking
	StatusStreaming
	StatusLoading
	StatusOffline
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusThinking:
		return "Thinking..."
	case StatusStreaming:
		return "Streaming..."
	case StatusLoading:
		return "Loading..."
	case StatusOffline:
		return "Offline"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Shortcut is a key hint rendered on the right side of the bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar renders the bottom status bar: connection status on the left,
// an optional error or notice in the middle, key hints on the right.
type StatusBar struct {
	Status    Status
	ErrorMsg  string
	Notice    string
	Shortcuts []Shortcut
	Width     int
	theme     *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status: StatusReady,
		Width:  80,
		theme:  theme,
	}
}

// SetWidth sets the available width.
func (b *StatusBar) SetWidth(width int) {
	b.Width = width
}

func (b *StatusBar) statusStyle() lipgloss.Style {
	switch b.Status {
	case StatusError, StatusOffline:
		return b.theme.StatusError
	case StatusThinking, StatusStreaming, StatusLoading:
		return b.theme.StatusBusy
	default:
		return b.theme.StatusOK
	}
}

// View renders the status bar.
func (b *StatusBar) View() string {
	left := b.statusStyle().Render(b.Status.String())
	if b.ErrorMsg != "" {
		left += "  " + b.theme.Error.Render(truncateTo(b.ErrorMsg, b.Width/2))
	} else if b.Notice != "" {
		left += "  " + b.theme.ShortcutDesc.Render(truncateTo(b.Notice, b.Width/2))
	}

	var hints []string
	for _, s := range b.Shortcuts {
		hints = append(hints, b.theme.ShortcutKey.Render(s.Key)+" "+b.theme.ShortcutDesc.Render(s.Desc))
	}
	right := strings.Join(hints, "  ")

	gap := b.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + right
	return b.theme.StatusBar.Width(b.Width).Render(line)
}

func truncateTo(s string, width int) string {
	if width < 4 {
		width = 4
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width-3, "") + "..."
}
