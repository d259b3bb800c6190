// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pages contains the secondary TUI pages.
package pages

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/alice-tui/internal/api"
	"github.com/jeranaias/alice-tui/internal/config"
	"github.com/jeranaias/alice-tui/internal/ui/styles"
)

// =============================================================================
// LOGIN PAGE
// =============================================================================

// LoginDoneMsg signals a successful login; the token is already persisted.
type LoginDoneMsg struct {
	Token string
}

type loginFailedMsg struct {
	err error
}

// Login is the email/password form shown when no token is stored.
type Login struct {
	client   *api.Client
	theme    *styles.Theme
	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	err      string
	width    int
	height   int
}

// NewLogin creates the login page.
func NewLogin(client *api.Client, theme *styles.Theme) *Login {
	email := textinput.New()
	email.Placeholder = "email"
	email.Prompt = "  "
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "  "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return &Login{
		client:   client,
		theme:    theme,
		email:    email,
		password: password,
	}
}

// Init implements tea.Model-style initialization.
func (l *Login) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize records the terminal size for centering.
func (l *Login) SetSize(width, height int) {
	l.width = width
	l.height = height
}

func (l *Login) submitCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		resp, err := l.client.Login(context.Background(), email, password)
		if err != nil {
			return loginFailedMsg{err: err}
		}
		if err := config.SaveToken(resp.AccessToken); err != nil {
			return loginFailedMsg{err: err}
		}
		return LoginDoneMsg{Token: resp.AccessToken}
	}
}

// Update handles login form input.
func (l *Login) Update(msg tea.Msg) (*Login, tea.Cmd) {
	switch msg := msg.(type) {
	case loginFailedMsg:
		l.busy = false
		l.err = msg.err.Error()
		return l, nil

	case tea.KeyMsg:
		if l.busy {
			return l, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			l.focus = 1 - l.focus
			if l.focus == 0 {
				l.email.Focus()
				l.password.Blur()
			} else {
				l.password.Focus()
				l.email.Blur()
			}
			return l, nil
		case "enter":
			email := strings.TrimSpace(l.email.Value())
			password := l.password.Value()
			if email == "" || password == "" {
				l.err = "email and password are required"
				return l, nil
			}
			l.busy = true
			l.err = ""
			return l, l.submitCmd(email, password)
		}
	}

	var cmd tea.Cmd
	if l.focus == 0 {
		l.email, cmd = l.email.Update(msg)
	} else {
		l.password, cmd = l.password.Update(msg)
	}
	return l, cmd
}

// View renders the centered login box.
func (l *Login) View() string {
	var b strings.Builder
	b.WriteString(l.theme.Title.Render("Sign in to Alice"))
	b.WriteString("\n\n")
	b.WriteString(l.email.View())
	b.WriteString("\n")
	b.WriteString(l.password.View())
	b.WriteString("\n\n")
	if l.busy {
		b.WriteString(l.theme.Warning.Render("Signing in..."))
	} else if l.err != "" {
		b.WriteString(l.theme.Error.Render(l.err))
	} else {
		b.WriteString(l.theme.Faint.Render("enter to sign in, tab to switch field"))
	}

	box := l.theme.PickerBox.Width(44).Render(b.String())
	if l.width == 0 {
		return box
	}
	return lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center, box)
}
