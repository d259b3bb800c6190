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
	"github.com/jeranaias/alice-tui/internal/ui/styles"
	"github.com/jeranaias/alice-tui/internal/util"
)

// =============================================================================
// VIDEO LIBRARY PAGE
// =============================================================================

// statusFilters is the cycle order for the status filter key.
var statusFilters = []string{"", "pending", "processing", "done", "failed"}

// VideosLoadedMsg delivers a page of the video library.
type VideosLoadedMsg struct {
	Page *api.PaginatedVideos
	Err  error
}

// ImportResultMsg reports a video import attempt.
type ImportResultMsg struct {
	Resp *api.ImportResponse
	Err  error
}

// VideoActionMsg reports a process or delete action.
type VideoActionMsg struct {
	Err error
}

// libraryMode distinguishes browsing from the import/search prompts.
type libraryMode int

const (
	libraryBrowse libraryMode = iota
	libraryImport
	librarySearch
)

// Library is the video library page: paginated list, search, status
// filter, import-by-link, and process/delete actions.
type Library struct {
	client *api.Client
	theme  *styles.Theme

	page      *api.PaginatedVideos
	cursor    int
	pageNum   int
	search    string
	statusIdx int
	mode      libraryMode
	prompt    textinput.Model
	loading   bool
	status    string
	width     int
	height    int
}

// NewLibrary creates the library page.
func NewLibrary(client *api.Client, theme *styles.Theme) *Library {
	prompt := textinput.New()
	prompt.Prompt = "> "
	return &Library{
		client:  client,
		theme:   theme,
		pageNum: 1,
		prompt:  prompt,
		width:   100,
		height:  30,
	}
}

// Init kicks off the first page load.
func (l *Library) Init() tea.Cmd {
	return l.loadCmd()
}

// SetSize records the layout size.
func (l *Library) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// Reload re-fetches the current page.
func (l *Library) Reload() tea.Cmd {
	return l.loadCmd()
}

func (l *Library) loadCmd() tea.Cmd {
	opts := api.VideoListOptions{
		Page:     l.pageNum,
		PageSize: 20,
		Status:   statusFilters[l.statusIdx],
		Search:   l.search,
	}
	l.loading = true
	return func() tea.Msg {
		page, err := l.client.ListVideos(context.Background(), opts)
		return VideosLoadedMsg{Page: page, Err: err}
	}
}

func (l *Library) importCmd(url string) tea.Cmd {
	return func() tea.Msg {
		resp, err := l.client.ImportVideo(context.Background(), api.ImportRequest{URL: url, AutoProcess: true})
		return ImportResultMsg{Resp: resp, Err: err}
	}
}

func (l *Library) processCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		return VideoActionMsg{Err: l.client.ProcessVideo(context.Background(), id)}
	}
}

func (l *Library) deleteCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		return VideoActionMsg{Err: l.client.DeleteVideo(context.Background(), id)}
	}
}

func (l *Library) selected() *api.Video {
	if l.page == nil || l.cursor < 0 || l.cursor >= len(l.page.Items) {
		return nil
	}
	return &l.page.Items[l.cursor]
}

// Update handles library page messages.
func (l *Library) Update(msg tea.Msg) (*Library, tea.Cmd) {
	switch msg := msg.(type) {
	case VideosLoadedMsg:
		l.loading = false
		if msg.Err != nil {
			l.status = msg.Err.Error()
			return l, nil
		}
		l.page = msg.Page
		if l.cursor >= len(msg.Page.Items) {
			l.cursor = len(msg.Page.Items) - 1
		}
		if l.cursor < 0 {
			l.cursor = 0
		}
		l.status = ""
		return l, nil

	case ImportResultMsg:
		if msg.Err != nil {
			l.status = "import failed: " + msg.Err.Error()
			return l, nil
		}
		l.status = "imported: " + msg.Resp.Title
		return l, l.loadCmd()

	case VideoActionMsg:
		if msg.Err != nil {
			l.status = msg.Err.Error()
			return l, nil
		}
		return l, l.loadCmd()

	case tea.KeyMsg:
		return l.handleKey(msg)
	}
	return l, nil
}

func (l *Library) handleKey(msg tea.KeyMsg) (*Library, tea.Cmd) {
	if l.mode != libraryBrowse {
		switch msg.String() {
		case "esc":
			l.mode = libraryBrowse
			l.prompt.Blur()
			return l, nil
		case "enter":
			value := strings.TrimSpace(l.prompt.Value())
			mode := l.mode
			l.mode = libraryBrowse
			l.prompt.SetValue("")
			l.prompt.Blur()
			if mode == librarySearch {
				l.search = value
				l.pageNum = 1
				return l, l.loadCmd()
			}
			url := util.ExtractBilibiliLink(value)
			if url == "" {
				l.status = "no bilibili link found in input"
				return l, nil
			}
			l.status = "importing " + url + "..."
			return l, l.importCmd(url)
		}
		var cmd tea.Cmd
		l.prompt, cmd = l.prompt.Update(msg)
		return l, cmd
	}

	switch msg.String() {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
	case "down", "j":
		if l.page != nil && l.cursor < len(l.page.Items)-1 {
			l.cursor++
		}
	case "left", "h":
		if l.pageNum > 1 {
			l.pageNum--
			return l, l.loadCmd()
		}
	case "right", "l":
		if l.page != nil && l.pageNum < l.page.Pages {
			l.pageNum++
			return l, l.loadCmd()
		}
	case "f":
		l.statusIdx = (l.statusIdx + 1) % len(statusFilters)
		l.pageNum = 1
		return l, l.loadCmd()
	case "/":
		l.mode = librarySearch
		l.prompt.Placeholder = "search title or author"
		l.prompt.Focus()
	case "i":
		l.mode = libraryImport
		l.prompt.Placeholder = "paste a bilibili link or BV id"
		l.prompt.Focus()
	case "p":
		if v := l.selected(); v != nil {
			l.status = "queued " + v.BVID
			return l, l.processCmd(v.ID)
		}
	case "x":
		if v := l.selected(); v != nil {
			return l, l.deleteCmd(v.ID)
		}
	case "r":
		return l, l.loadCmd()
	}
	return l, nil
}

// View renders the library page.
func (l *Library) View() string {
	var b strings.Builder
	title := "Video Library"
	if filter := statusFilters[l.statusIdx]; filter != "" {
		title += "  [" + filter + "]"
	}
	if l.search != "" {
		title += "  /" + l.search
	}
	b.WriteString(l.theme.Title.Render(title))
	b.WriteString("\n\n")

	switch {
	case l.loading && l.page == nil:
		b.WriteString(l.theme.Faint.Render("Loading..."))
	case l.page == nil || len(l.page.Items) == 0:
		b.WriteString(l.theme.Faint.Render("No videos. Press i to import a bilibili link."))
	default:
		for i, v := range l.page.Items {
			line := l.renderVideoRow(v, i == l.cursor)
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(l.theme.Subtitle.Render(
			"page " + util.IntToString(l.page.Page) + "/" + util.IntToString(l.page.Pages) +
				"  total " + util.IntToString(l.page.Total)))
	}

	if l.mode != libraryBrowse {
		b.WriteString("\n\n")
		b.WriteString(l.prompt.View())
	}
	if l.status != "" {
		b.WriteString("\n")
		b.WriteString(l.theme.Subtitle.Render(l.status))
	}
	b.WriteString("\n\n")
	b.WriteString(l.theme.Faint.Render("i import  / search  f filter  p process  x delete  r refresh"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (l *Library) renderVideoRow(v api.Video, selected bool) string {
	badge := l.theme.StatusStyle(v.Status).Render(util.PadRight(v.Status, 10))
	author := ""
	if v.Author != nil {
		author = *v.Author
	}
	title := util.TruncateWidth(v.Title, l.width-40)
	row := badge + " " + title
	if author != "" {
		row += " " + l.theme.Faint.Render("by "+author)
	}
	if selected {
		return l.theme.Selected.Render("> " + row)
	}
	return "  " + row
}
