// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the alice TUI.

This package contains a small collection of styled components built on top
of the Bubble Tea and Lip Gloss libraries, shared across the chat page and
the other views.

# Components

Sidebar (sidebar.go) - Conversation list with cursor tracking by ID, so a
background refresh that reorders the list never moves the selection.

StatusBar (statusbar.go) - Bottom status bar with connection state, the
last error, and keyboard shortcut hints.

MentionPicker (picker.go) - The @-mention popup with live filtering, plus
RenderChips for the active-mention chips above the input.

# Theme Integration

All components accept a *styles.Theme for consistent styling:

	theme := styles.New()
	bar := components.NewStatusBar(theme)
	bar.SetWidth(80)
	view := bar.View()
*/
package components
