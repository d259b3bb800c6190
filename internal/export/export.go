// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export provides conversation export for the alice TUI.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/alice-tui/internal/model"
	"github.com/jeranaias/alice-tui/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter converts a conversation to one output format.
type Exporter interface {
	// Export renders the conversation and returns the file content.
	Export(conv *model.Conversation) ([]byte, error)

	// FileExtension returns the file extension including the dot.
	FileExtension() string
}

// ForFormat returns the exporter for a format name ("markdown"/"md" or
// "json").
func ForFormat(format string) (Exporter, error) {
	switch strings.ToLower(format) {
	case "", "markdown", "md":
		return &MarkdownExporter{IncludeReasoning: true}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q (markdown or json)", format)
	}
}

// =============================================================================
// FILE OUTPUT
// =============================================================================

// ToFile exports a conversation into dir and returns the written path.
// The file name derives from the conversation title and export time.
func ToFile(conv *model.Conversation, exporter Exporter, dir string) (string, error) {
	content, err := exporter.Export(conv)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}

	name := fileStem(conv) + "_" + time.Now().Format("20060102_150405") + exporter.FileExtension()
	path := filepath.Join(dir, name)
	if err := util.AtomicWriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}

// fileStem builds a filesystem-safe stem from the conversation title.
func fileStem(conv *model.Conversation) string {
	stem := util.TruncateRunesNoEllipsis(conv.DisplayTitle(), 40)
	var b strings.Builder
	for _, r := range stem {
		switch {
		case r == ' ' || r == '\t':
			b.WriteRune('_')
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			// Dropped outright.
		default:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "conversation_" + util.Int64ToString(conv.ID)
	}
	return b.String()
}
