// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pages contains the secondary TUI pages.
package pages

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/alice-tui/internal/api"
	"github.com/jeranaias/alice-tui/internal/ui/styles"
	"github.com/jeranaias/alice-tui/internal/util"
)

// =============================================================================
// PROCESSING QUEUE PAGE
// =============================================================================

// QueueLoadedMsg delivers a processing queue snapshot. The app root's
// poller pumps one of these on every interval while the page is visible.
type QueueLoadedMsg struct {
	Queue *api.ProcessingQueue
	Err   error
}

// Queue shows the backend's video processing pipeline: waiting, failed,
// and recently finished videos.
type Queue struct {
	theme  *styles.Theme
	queue  *api.ProcessingQueue
	err    string
	width  int
	height int

	// KickPoll is set by the app root; pressing r asks the poller for an
	// immediate refresh instead of waiting for the next interval.
	KickPoll func()
}

// NewQueue creates the queue page.
func NewQueue(theme *styles.Theme) *Queue {
	return &Queue{theme: theme, width: 100, height: 30}
}

// SetSize records the layout size.
func (q *Queue) SetSize(width, height int) {
	q.width = width
	q.height = height
}

// Update handles queue page messages.
func (q *Queue) Update(msg tea.Msg) (*Queue, tea.Cmd) {
	switch msg := msg.(type) {
	case QueueLoadedMsg:
		if msg.Err != nil {
			q.err = msg.Err.Error()
			return q, nil
		}
		q.queue = msg.Queue
		q.err = ""
		return q, nil

	case tea.KeyMsg:
		if msg.String() == "r" && q.KickPoll != nil {
			q.KickPoll()
		}
		return q, nil
	}
	return q, nil
}

// View renders the queue page.
func (q *Queue) View() string {
	var b strings.Builder
	b.WriteString(q.theme.Title.Render("Processing Queue"))
	b.WriteString("\n\n")

	if q.err != "" {
		b.WriteString(q.theme.Error.Render(q.err))
		return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	}
	if q.queue == nil {
		b.WriteString(q.theme.Faint.Render("Loading..."))
		return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	}

	b.WriteString(q.renderSection("Waiting ("+util.IntToString(q.queue.QueueCount)+")", q.queue.Queue, q.theme.Warning))
	b.WriteString(q.renderSection("Failed ("+util.IntToString(q.queue.FailedCount)+")", q.queue.Failed, q.theme.Error))
	b.WriteString(q.renderSection("Recently done", q.queue.RecentDone, q.theme.Success))
	b.WriteString("\n")
	b.WriteString(q.theme.Faint.Render("r refresh now"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (q *Queue) renderSection(title string, videos []api.QueueVideo, accent lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(accent.Render(title))
	b.WriteString("\n")
	if len(videos) == 0 {
		b.WriteString(q.theme.Faint.Render("  (empty)"))
		b.WriteString("\n\n")
		return b.String()
	}
	for _, v := range videos {
		line := "  " + v.BVID + "  " + util.TruncateWidth(v.Title, q.width-30)
		if v.ErrorMessage != nil && *v.ErrorMessage != "" {
			line += "  " + q.theme.Error.Render(util.TruncateWidth(*v.ErrorMessage, 40))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}
