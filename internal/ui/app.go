// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui holds the top-level application model for the alice TUI.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/alice-tui/internal/api"
	"github.com/jeranaias/alice-tui/internal/config"
	"github.com/jeranaias/alice-tui/internal/mention"
	"github.com/jeranaias/alice-tui/internal/session"
	"github.com/jeranaias/alice-tui/internal/ui/chat"
	"github.com/jeranaias/alice-tui/internal/ui/pages"
	"github.com/jeranaias/alice-tui/internal/ui/styles"
)

// =============================================================================
// APP MODEL
// =============================================================================

// Page identifies a top-level application page.
type Page int

const (
	PageChat Page = iota
	PageLibrary
	PageQueue
	PageGraph
	PageSettings
	PageLogin
)

var pageTabs = []struct {
	page  Page
	key   string
	label string
}{
	{PageChat, "f1", "Chat"},
	{PageLibrary, "f2", "Library"},
	{PageQueue, "f3", "Queue"},
	{PageGraph, "f4", "Graph"},
	{PageSettings, "f5", "Settings"},
}

// Options configures the application model.
type Options struct {
	Config   *config.Config
	Client   *api.Client
	Manager  *session.Manager
	Resolver *mention.Resolver
	Theme    *styles.Theme

	// LoggedIn selects the start page: false opens the login form.
	LoggedIn bool

	// KickPoll asks the queue poller for an immediate refresh.
	KickPoll func()
}

// App is the root Bubble Tea model. It owns one sub-model per page and
// routes messages to whichever pages care about them.
type App struct {
	theme  *styles.Theme
	client *api.Client
	active Page

	chat     *chat.Model
	library  *pages.Library
	queue    *pages.Queue
	graph    *pages.Graph
	settings *pages.Settings
	login    *pages.Login

	width   int
	height  int
	started map[Page]bool
}

// NewApp builds the application model and its pages.
func NewApp(opts Options) *App {
	a := &App{
		theme:  opts.Theme,
		client: opts.Client,
		chat: chat.New(chat.Options{
			Manager:  opts.Manager,
			Resolver: opts.Resolver,
			Client:   opts.Client,
			Theme:    opts.Theme,
			Config:   opts.Config,
		}),
		library:  pages.NewLibrary(opts.Client, opts.Theme),
		queue:    pages.NewQueue(opts.Theme),
		graph:    pages.NewGraph(opts.Client, opts.Theme),
		settings: pages.NewSettings(opts.Client, opts.Theme),
		login:    pages.NewLogin(opts.Client, opts.Theme),
		started:  make(map[Page]bool),
	}
	a.queue.KickPoll = opts.KickPoll
	if !opts.LoggedIn {
		a.active = PageLogin
	}
	return a
}

// Init starts the initial page.
func (a *App) Init() tea.Cmd {
	if a.active == PageLogin {
		a.started[PageLogin] = true
		return a.login.Init()
	}
	a.started[PageChat] = true
	return a.chat.Init()
}

// Update routes messages to the pages that consume them.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		body := msg.Height - 1 // header strip
		a.chat.SetSize(msg.Width, body)
		a.library.SetSize(msg.Width, body)
		a.queue.SetSize(msg.Width, body)
		a.graph.SetSize(msg.Width, body)
		a.settings.SetSize(msg.Width, body)
		a.login.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.active != PageLogin {
			for _, tab := range pageTabs {
				if msg.String() == tab.key {
					return a, a.switchTo(tab.page)
				}
			}
		}
		return a.routeToActive(msg)

	case pages.LoginDoneMsg:
		a.client.SetTokenSource(api.StaticToken(msg.Token))
		a.active = PageChat
		a.started[PageChat] = true
		return a, a.chat.Init()

	// Session, mention, animation, and spinner traffic always goes to
	// the chat page, visible or not, so background streams keep flowing.
	case chat.SessionUpdatedMsg, chat.MentionsUpdatedMsg, chat.CandidatesLoadedMsg,
		chat.ImportStartedMsg, chat.AnimTickMsg, spinner.TickMsg:
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(msg)
		return a, cmd

	case chat.SendFailedMsg:
		// A rejected token means the session is gone. Drop it and fall
		// back to the login form.
		if api.IsUnauthorized(msg.Err) {
			_ = config.ClearToken()
			a.active = PageLogin
			a.started[PageLogin] = true
			return a, a.login.Init()
		}
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(msg)
		return a, cmd

	case pages.QueueLoadedMsg:
		var cmd tea.Cmd
		a.queue, cmd = a.queue.Update(msg)
		return a, cmd

	case pages.VideosLoadedMsg, pages.ImportResultMsg, pages.VideoActionMsg:
		var cmd tea.Cmd
		a.library, cmd = a.library.Update(msg)
		return a, cmd

	case pages.GraphLoadedMsg:
		var cmd tea.Cmd
		a.graph, cmd = a.graph.Update(msg)
		return a, cmd

	case pages.SettingsLoadedMsg, pages.CleanupDoneMsg:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.Update(msg)
		return a, cmd
	}

	return a.routeToActive(msg)
}

// switchTo activates a page, running its Init on first visit. Returning
// to the library re-fetches so imports done elsewhere show up.
func (a *App) switchTo(page Page) tea.Cmd {
	a.active = page
	if !a.started[page] {
		a.started[page] = true
		switch page {
		case PageLibrary:
			return a.library.Init()
		case PageGraph:
			return a.graph.Init()
		case PageSettings:
			return a.settings.Init()
		}
		return nil
	}
	if page == PageLibrary {
		return a.library.Reload()
	}
	return nil
}

func (a *App) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.active {
	case PageChat:
		a.chat, cmd = a.chat.Update(msg)
	case PageLibrary:
		a.library, cmd = a.library.Update(msg)
	case PageQueue:
		a.queue, cmd = a.queue.Update(msg)
	case PageGraph:
		a.graph, cmd = a.graph.Update(msg)
	case PageSettings:
		a.settings, cmd = a.settings.Update(msg)
	case PageLogin:
		a.login, cmd = a.login.Update(msg)
	}
	return a, cmd
}

// View renders the header strip plus the active page.
func (a *App) View() string {
	if a.active == PageLogin {
		return a.login.View()
	}

	var tabs []string
	tabs = append(tabs, a.theme.HeaderTitle.Render("alice"))
	for _, tab := range pageTabs {
		label := tab.key + " " + tab.label
		if tab.page == a.active {
			tabs = append(tabs, a.theme.HeaderTabOn.Render(label))
		} else {
			tabs = append(tabs, a.theme.HeaderTab.Render(label))
		}
	}
	header := a.theme.Header.Width(a.width).Render(strings.Join(tabs, " "))

	var body string
	switch a.active {
	case PageChat:
		body = a.chat.View()
	case PageLibrary:
		body = a.library.View()
	case PageQueue:
		body = a.queue.View()
	case PageGraph:
		body = a.graph.View()
	case PageSettings:
		body = a.settings.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}
