// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines the Bubble Tea message types used by the chat page and
// the commands that produce them.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/alice-tui/internal/api"
)

// =============================================================================
// MESSAGES
// =============================================================================

// SessionUpdatedMsg signals that the session manager's state changed and
// snapshots should be re-read. The app root pumps one of these on every
// manager notification, so the chat page never polls.
type SessionUpdatedMsg struct{}

// MentionsUpdatedMsg signals that the mention set changed, usually because
// a transcript fetch settled in the background.
type MentionsUpdatedMsg struct{}

// SendFailedMsg reports a send that failed outside the stream itself.
type SendFailedMsg struct {
	Err error
}

// CandidatesLoadedMsg delivers the video list for the mention picker.
type CandidatesLoadedMsg struct {
	Videos []api.Video
	Err    error
}

// AnimTickMsg drives the text reveal animation. Generation is stamped at
// schedule time; ticks from a superseded animation run are dropped.
type AnimTickMsg struct {
	Generation int
}

// ImportStartedMsg reports a video import triggered by pasting a bilibili
// link into the composer.
type ImportStartedMsg struct {
	Title string
	Err   error
}

// =============================================================================
// COMMANDS
// =============================================================================

// animFrameInterval is the reveal animation frame budget.
const animFrameInterval = 33 * time.Millisecond

func animTickCmd(generation int) tea.Cmd {
	return tea.Tick(animFrameInterval, func(time.Time) tea.Msg {
		return AnimTickMsg{Generation: generation}
	})
}

func (m *Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.manager.RefreshConversations(context.Background()); err != nil {
			return SendFailedMsg{Err: err}
		}
		return SessionUpdatedMsg{}
	}
}

func (m *Model) sendCmd(content string) tea.Cmd {
	return func() tea.Msg {
		if err := m.manager.SendMessage(context.Background(), content); err != nil {
			return SendFailedMsg{Err: err}
		}
		return SessionUpdatedMsg{}
	}
}

func (m *Model) selectCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.manager.SelectConversation(context.Background(), id); err != nil {
			return SendFailedMsg{Err: err}
		}
		return SessionUpdatedMsg{}
	}
}

func (m *Model) deleteCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.manager.DeleteConversation(context.Background(), id); err != nil {
			return SendFailedMsg{Err: err}
		}
		return SessionUpdatedMsg{}
	}
}

func (m *Model) importCmd(url string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.client.ImportVideo(context.Background(), api.ImportRequest{URL: url, AutoProcess: true})
		if err != nil {
			return ImportStartedMsg{Err: err}
		}
		return ImportStartedMsg{Title: resp.Title}
	}
}

func (m *Model) loadCandidatesCmd() tea.Cmd {
	return func() tea.Msg {
		page, err := m.client.ListVideos(context.Background(), api.VideoListOptions{PageSize: 100})
		if err != nil {
			return CandidatesLoadedMsg{Err: err}
		}
		return CandidatesLoadedMsg{Videos: page.Items}
	}
}
