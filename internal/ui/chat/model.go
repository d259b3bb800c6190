// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/alice-tui/internal/anim"
	"github.com/jeranaias/alice-tui/internal/api"
	"github.com/jeranaias/alice-tui/internal/config"
	"github.com/jeranaias/alice-tui/internal/mention"
	"github.com/jeranaias/alice-tui/internal/session"
	"github.com/jeranaias/alice-tui/internal/ui/components"
	"github.com/jeranaias/alice-tui/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// focusPane identifies which pane receives key input.
type focusPane int

const (
	focusInput focusPane = iota
	focusSidebar
)

// Options configures a new chat model.
type Options struct {
	Manager  *session.Manager
	Resolver *mention.Resolver
	Client   *api.Client
	Theme    *styles.Theme
	Config   *config.Config
}

// Model is the Bubble Tea model for the chat page. All session state lives
// in the manager; the model only holds view state and snapshots.
type Model struct {
	manager  *session.Manager
	resolver *mention.Resolver
	animator *anim.Animator
	client   *api.Client
	theme    *styles.Theme
	keys     KeyMap

	sidebar   *components.Sidebar
	statusBar *components.StatusBar
	picker    *components.MentionPicker
	input     textinput.Model
	viewport  viewport.Model
	spin      spinner.Model
	renderer  *glamour.TermRenderer

	// Mention picker state. videos is the candidate cache, loaded lazily
	// the first time the picker opens.
	videos       []api.Video
	videosLoaded bool
	pickerOpen   bool
	pickerQuery  string
	pickerStart  int // rune offset of the "@" in the input

	focus         focusPane
	width, height int
	mdWidth       int
	animating     bool
	err           string
	notice        string
}

// New creates the chat page model.
func New(opts Options) *Model {
	input := textinput.New()
	input.Placeholder = "Message Alice... (@ to mention)"
	input.Prompt = "> "
	input.CharLimit = 0
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	spin.Style = opts.Theme.StatusBusy

	mdWidth := opts.Config.UI.MarkdownWidth
	if mdWidth <= 0 {
		mdWidth = 80
	}
	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(mdWidth),
	)

	m := &Model{
		manager:   opts.Manager,
		resolver:  opts.Resolver,
		animator:  anim.New(anim.Config{Delimiter: opts.Config.UI.AnimationDelimiter}),
		client:    opts.Client,
		theme:     opts.Theme,
		keys:      DefaultKeyMap(),
		sidebar:   components.NewSidebar(opts.Theme),
		statusBar: components.NewStatusBar(opts.Theme),
		picker:    components.NewMentionPicker(opts.Theme),
		input:     input,
		viewport:  viewport.New(80, 20),
		spin:      spin,
		renderer:  renderer,
		mdWidth:   mdWidth,
		width:     100,
		height:    30,
	}
	m.statusBar.Shortcuts = []components.Shortcut{
		{Key: "enter", Desc: "send"},
		{Key: "esc", Desc: "cancel"},
		{Key: "ctrl+n", Desc: "new"},
		{Key: "tab", Desc: "pane"},
	}
	return m
}

// Init starts the spinner and the initial conversation load.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.refreshCmd())
}

// SetSize lays out the page for a new terminal size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	sidebarWidth := width / 4
	if sidebarWidth < 22 {
		sidebarWidth = 22
	}
	if sidebarWidth > 36 {
		sidebarWidth = 36
	}
	bodyHeight := height - 5 // header strip, chips, input, status bar
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	m.sidebar.SetSize(sidebarWidth, bodyHeight)
	m.statusBar.SetWidth(width)
	m.viewport.Width = width - sidebarWidth - 1
	m.viewport.Height = bodyHeight
	m.input.Width = width - 6
	m.picker.SetWidth(m.viewport.Width - 4)
	m.refreshViewport()
}
