// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pages contains the secondary TUI pages.
package pages

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/jeranaias/alice-tui/internal/api"
	"github.com/jeranaias/alice-tui/internal/config"
	"github.com/jeranaias/alice-tui/internal/ui/styles"
	"github.com/jeranaias/alice-tui/internal/util"
)

// =============================================================================
// SETTINGS PAGE
// =============================================================================

// SettingsLoadedMsg delivers the backend configuration and storage stats.
type SettingsLoadedMsg struct {
	Backend *api.BackendConfig
	Storage *api.StorageStats
	Err     error
}

// CleanupDoneMsg reports a storage cleanup run.
type CleanupDoneMsg struct {
	Result *api.CleanupResult
	Err    error
}

// Settings shows the local client configuration, the backend's ASR/LLM
// configuration, and storage usage with a cleanup action.
type Settings struct {
	client  *api.Client
	theme   *styles.Theme
	backend *api.BackendConfig
	storage *api.StorageStats
	status  string
	width   int
	height  int
}

// NewSettings creates the settings page.
func NewSettings(client *api.Client, theme *styles.Theme) *Settings {
	return &Settings{client: client, theme: theme, width: 100, height: 30}
}

// Init starts the settings load.
func (s *Settings) Init() tea.Cmd {
	return s.loadCmd()
}

// SetSize records the layout size.
func (s *Settings) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *Settings) loadCmd() tea.Cmd {
	return func() tea.Msg {
		var msg SettingsLoadedMsg
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			backend, err := s.client.GetBackendConfig(ctx)
			msg.Backend = backend
			return err
		})
		g.Go(func() error {
			storage, err := s.client.GetStorageStats(ctx)
			msg.Storage = storage
			return err
		})
		msg.Err = g.Wait()
		return msg
	}
}

func (s *Settings) cleanupCmd() tea.Cmd {
	return func() tea.Msg {
		result, err := s.client.CleanupStorage(context.Background())
		return CleanupDoneMsg{Result: result, Err: err}
	}
}

// Update handles settings page messages.
func (s *Settings) Update(msg tea.Msg) (*Settings, tea.Cmd) {
	switch msg := msg.(type) {
	case SettingsLoadedMsg:
		if msg.Err != nil {
			s.status = msg.Err.Error()
		} else {
			s.status = ""
		}
		s.backend = msg.Backend
		s.storage = msg.Storage
		return s, nil

	case CleanupDoneMsg:
		if msg.Err != nil {
			s.status = "cleanup failed: " + msg.Err.Error()
			return s, nil
		}
		s.status = "cleaned " + util.IntToString(msg.Result.CleanedCount) +
			" files, freed " + util.FloatToString(msg.Result.FreedMB) + " MB"
		return s, s.loadCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "c":
			s.status = "cleaning up..."
			return s, s.cleanupCmd()
		case "r":
			return s, s.loadCmd()
		}
	}
	return s, nil
}

// View renders the settings page.
func (s *Settings) View() string {
	cfg := config.Global()
	var b strings.Builder
	b.WriteString(s.theme.Title.Render("Settings"))
	b.WriteString("\n\n")

	b.WriteString(s.theme.Subtitle.Render("Client"))
	b.WriteString("\n")
	b.WriteString("  API URL      " + cfg.API.BaseURL + "\n")
	b.WriteString("  Stream URL   " + cfg.API.StreamURL + "\n")
	b.WriteString("  Theme        " + cfg.UI.Theme + "\n")
	b.WriteString("  Config file  " + configPathOrDefault() + "\n\n")

	if s.backend != nil {
		b.WriteString(s.theme.Subtitle.Render("Backend"))
		b.WriteString("\n")
		b.WriteString("  ASR   " + s.backend.ASR.Provider + " / " + s.backend.ASR.ModelSize +
			" on " + s.backend.ASR.Device + "\n")
		b.WriteString("  LLM   " + s.backend.LLM.Provider + " / " + s.backend.LLM.Model + "\n\n")
	}
	if s.storage != nil {
		b.WriteString(s.theme.Subtitle.Render("Storage"))
		b.WriteString("\n")
		b.WriteString("  Videos      " + util.IntToString(s.storage.TotalVideos) +
			" (" + util.IntToString(s.storage.ProcessedVideos) + " processed, " +
			util.IntToString(s.storage.FailedVideos) + " failed)\n")
		b.WriteString("  Audio       " + util.FloatToString(s.storage.AudioFilesSizeMB) + " MB\n")
		b.WriteString("  Transcripts " + util.FloatToString(s.storage.TranscriptFilesSizeMB) + " MB\n")
		b.WriteString("  Total       " + util.FloatToString(s.storage.TotalSizeMB) + " MB\n")
	}

	if s.status != "" {
		b.WriteString("\n")
		b.WriteString(s.theme.Warning.Render(s.status))
	}
	b.WriteString("\n\n")
	b.WriteString(s.theme.Faint.Render("c clean up audio files  r refresh"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func configPathOrDefault() string {
	path, err := config.ConfigPath()
	if err != nil {
		return "~/.alice/config.toml"
	}
	return path
}
