// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the alice TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	// Header
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderTab   lipgloss.Style
	HeaderTabOn lipgloss.Style

	// Sidebar
	Sidebar         lipgloss.Style
	SidebarTitle    lipgloss.Style
	SidebarItem     lipgloss.Style
	SidebarSelected lipgloss.Style
	SidebarMeta     lipgloss.Style

	// Messages
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	MessageBody    lipgloss.Style
	Reasoning      lipgloss.Style
	Cursor         lipgloss.Style

	// Mention chips and picker
	Chip          lipgloss.Style
	ChipLoading   lipgloss.Style
	PickerBox     lipgloss.Style
	PickerItem    lipgloss.Style
	PickerFocused lipgloss.Style
	PickerMeta    lipgloss.Style

	// Input
	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	StatusOK     lipgloss.Style
	StatusBusy   lipgloss.Style
	StatusError  lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// Generic
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Faint    lipgloss.Style
	Selected lipgloss.Style
}

// New builds the theme from the terminal's detected capabilities.
func New() *Theme {
	profile := termenv.ColorProfile()
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		ColorProfile: profile,
	}

	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.HeaderTab = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)
	t.HeaderTabOn = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true).
		Padding(0, 1)

	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(TextFaint).
		PaddingRight(1)
	t.SidebarTitle = lipgloss.NewStyle().
		Foreground(TextMuted).
		Bold(true)
	t.SidebarItem = lipgloss.NewStyle().
		Foreground(Text)
	t.SidebarSelected = lipgloss.NewStyle().
		Foreground(Purple).
		Background(SurfaceBright).
		Bold(true)
	t.SidebarMeta = lipgloss.NewStyle().
		Foreground(TextFaint)

	t.UserLabel = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.AssistantLabel = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)
	t.MessageBody = lipgloss.NewStyle().
		Foreground(Text)
	t.Reasoning = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)
	t.Cursor = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.Chip = lipgloss.NewStyle().
		Foreground(Cyan).
		Background(SurfaceBright).
		Padding(0, 1)
	t.ChipLoading = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(SurfaceBright).
		Padding(0, 1)
	t.PickerBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)
	t.PickerItem = lipgloss.NewStyle().
		Foreground(Text)
	t.PickerFocused = lipgloss.NewStyle().
		Foreground(Purple).
		Background(SurfaceBright).
		Bold(true)
	t.PickerMeta = lipgloss.NewStyle().
		Foreground(TextFaint)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(TextFaint)
	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextMuted).
		Padding(0, 1)
	t.StatusOK = lipgloss.NewStyle().Foreground(Emerald)
	t.StatusBusy = lipgloss.NewStyle().Foreground(Amber)
	t.StatusError = lipgloss.NewStyle().Foreground(Rose)
	t.ShortcutKey = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(TextFaint)

	t.Title = lipgloss.NewStyle().Foreground(Text).Bold(true)
	t.Subtitle = lipgloss.NewStyle().Foreground(TextMuted)
	t.Error = lipgloss.NewStyle().Foreground(Rose)
	t.Success = lipgloss.NewStyle().Foreground(Emerald)
	t.Warning = lipgloss.NewStyle().Foreground(Amber)
	t.Faint = lipgloss.NewStyle().Foreground(TextFaint)
	t.Selected = lipgloss.NewStyle().
		Foreground(Purple).
		Background(SurfaceBright).
		Bold(true)

	return t
}

// StatusStyle picks the style for a video processing status string.
func (t *Theme) StatusStyle(status string) lipgloss.Style {
	switch status {
	case "done":
		return t.Success
	case "failed":
		return t.Error
	case "processing":
		return t.Warning
	default:
		return t.Faint
	}
}
