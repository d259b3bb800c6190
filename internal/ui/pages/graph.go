// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pages contains the secondary TUI pages.
package pages

import (
	"context"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/alice-tui/internal/api"
	"github.com/jeranaias/alice-tui/internal/ui/styles"
	"github.com/jeranaias/alice-tui/internal/util"
)

// =============================================================================
// KNOWLEDGE GRAPH PAGE
// =============================================================================

// GraphLoadedMsg delivers a knowledge graph payload.
type GraphLoadedMsg struct {
	Graph *api.KnowledgeGraph
	Err   error
}

// Graph is a text rendering of the knowledge graph: concepts ranked by
// size, with their connected videos listed underneath. Typing / focuses a
// single concept's neighborhood.
type Graph struct {
	client   *api.Client
	theme    *styles.Theme
	graph    *api.KnowledgeGraph
	concept  string
	filter   textinput.Model
	filterOn bool
	loading  bool
	err      string
	width    int
	height   int
}

// NewGraph creates the graph page.
func NewGraph(client *api.Client, theme *styles.Theme) *Graph {
	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "focus a concept"
	return &Graph{client: client, theme: theme, filter: filter, width: 100, height: 30}
}

// Init starts the first graph load.
func (g *Graph) Init() tea.Cmd {
	return g.loadCmd()
}

// SetSize records the layout size.
func (g *Graph) SetSize(width, height int) {
	g.width = width
	g.height = height
}

func (g *Graph) loadCmd() tea.Cmd {
	concept := g.concept
	g.loading = true
	return func() tea.Msg {
		graph, err := g.client.GetKnowledgeGraph(context.Background(), concept)
		return GraphLoadedMsg{Graph: graph, Err: err}
	}
}

// Update handles graph page messages.
func (g *Graph) Update(msg tea.Msg) (*Graph, tea.Cmd) {
	switch msg := msg.(type) {
	case GraphLoadedMsg:
		g.loading = false
		if msg.Err != nil {
			g.err = msg.Err.Error()
			return g, nil
		}
		g.graph = msg.Graph
		g.err = ""
		return g, nil

	case tea.KeyMsg:
		if g.filterOn {
			switch msg.String() {
			case "esc":
				g.filterOn = false
				g.filter.Blur()
				return g, nil
			case "enter":
				g.concept = strings.TrimSpace(g.filter.Value())
				g.filterOn = false
				g.filter.Blur()
				return g, g.loadCmd()
			}
			var cmd tea.Cmd
			g.filter, cmd = g.filter.Update(msg)
			return g, cmd
		}
		switch msg.String() {
		case "/":
			g.filterOn = true
			g.filter.Focus()
			return g, nil
		case "c":
			if g.concept != "" {
				g.concept = ""
				g.filter.SetValue("")
				return g, g.loadCmd()
			}
		case "r":
			return g, g.loadCmd()
		}
	}
	return g, nil
}

// View renders the graph page.
func (g *Graph) View() string {
	var b strings.Builder
	title := "Knowledge Graph"
	if g.concept != "" {
		title += "  [" + g.concept + "]"
	}
	b.WriteString(g.theme.Title.Render(title))
	b.WriteString("\n\n")

	switch {
	case g.err != "":
		b.WriteString(g.theme.Error.Render(g.err))
	case g.loading && g.graph == nil:
		b.WriteString(g.theme.Faint.Render("Loading..."))
	case g.graph == nil || len(g.graph.Nodes) == 0:
		b.WriteString(g.theme.Faint.Render("No concepts yet. Process some videos first."))
	default:
		b.WriteString(g.renderGraph())
	}
	b.WriteString("\n\n")
	b.WriteString(g.theme.Faint.Render("/ focus concept  c clear  r refresh"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (g *Graph) renderGraph() string {
	stats := g.graph.Stats
	var b strings.Builder
	b.WriteString(g.theme.Subtitle.Render(
		util.IntToString(stats.TotalConcepts) + " concepts, " +
			util.IntToString(stats.TotalVideos) + " videos, " +
			util.IntToString(stats.TotalEdges) + " links"))
	b.WriteString("\n\n")

	labels := make(map[string]string, len(g.graph.Nodes))
	var concepts []api.GraphNode
	for _, n := range g.graph.Nodes {
		labels[n.ID] = n.Label
		if n.Type == "concept" {
			concepts = append(concepts, n)
		}
	}
	sort.Slice(concepts, func(i, j int) bool {
		if concepts[i].Size != concepts[j].Size {
			return concepts[i].Size > concepts[j].Size
		}
		return concepts[i].Label < concepts[j].Label
	})

	neighbors := make(map[string][]string)
	for _, e := range g.graph.Edges {
		neighbors[e.Source] = append(neighbors[e.Source], labels[e.Target])
		neighbors[e.Target] = append(neighbors[e.Target], labels[e.Source])
	}

	shown := 0
	for _, c := range concepts {
		if shown >= g.height-10 {
			b.WriteString(g.theme.Faint.Render("  " + util.IntToString(len(concepts)-shown) + " more concepts..."))
			break
		}
		b.WriteString(g.theme.Success.Render("* " + c.Label))
		if links := neighbors[c.ID]; len(links) > 0 {
			b.WriteString(g.theme.Faint.Render("  -> " + util.TruncateWidth(strings.Join(links, ", "), g.width-20)))
		}
		b.WriteString("\n")
		shown++
	}
	return b.String()
}
