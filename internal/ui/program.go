// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui holds the top-level application model for the alice TUI.
package ui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/alice-tui/internal/api"
	"github.com/jeranaias/alice-tui/internal/config"
	"github.com/jeranaias/alice-tui/internal/mention"
	"github.com/jeranaias/alice-tui/internal/poll"
	"github.com/jeranaias/alice-tui/internal/session"
	"github.com/jeranaias/alice-tui/internal/ui/chat"
	"github.com/jeranaias/alice-tui/internal/ui/pages"
	"github.com/jeranaias/alice-tui/internal/ui/styles"
)

// Global program reference for async delivery from manager notifications
// and the queue poller.
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

// send delivers a message to the running program, dropping it when the
// program has not started yet or already exited.
func send(msg tea.Msg) {
	programMu.Lock()
	p := programRef
	programMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// RunOptions carries the wired application services into Run.
type RunOptions struct {
	Config   *config.Config
	Client   *api.Client
	Manager  *session.Manager
	Resolver *mention.Resolver
	LoggedIn bool
}

// Run wires the notifier plumbing, starts the queue poller, and runs the
// Bubble Tea program until the user quits.
func Run(opts RunOptions) error {
	theme := styles.New()

	interval := time.Duration(opts.Config.Queue.PollIntervalSecs) * time.Second
	if interval <= 0 {
		interval = 10 * time.Second
	}
	poller := poll.New(interval, func(ctx context.Context) {
		queue, err := opts.Client.GetProcessingQueue(ctx)
		send(pages.QueueLoadedMsg{Queue: queue, Err: err})
	})

	app := NewApp(Options{
		Config:   opts.Config,
		Client:   opts.Client,
		Manager:  opts.Manager,
		Resolver: opts.Resolver,
		Theme:    theme,
		LoggedIn: opts.LoggedIn,
		KickPoll: poller.Kick,
	})

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	// State changes in the manager and the mention set arrive as messages,
	// never via polling from the view side.
	opts.Manager.SetNotifier(func() {
		send(chat.SessionUpdatedMsg{})
	})
	opts.Resolver.SetNotifier(func() {
		send(chat.MentionsUpdatedMsg{})
	})

	poller.Start()
	defer poller.Stop()

	_, err := p.Run()

	programMu.Lock()
	programRef = nil
	programMu.Unlock()
	return err
}
