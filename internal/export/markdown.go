// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export provides conversation export for the alice TUI.
package export

import (
	"strings"

	"github.com/jeranaias/alice-tui/internal/model"
	"github.com/jeranaias/alice-tui/internal/util"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter renders a conversation as a markdown document.
type MarkdownExporter struct {
	// IncludeReasoning emits the model's reasoning in a quoted block
	// before each answer that carries one.
	IncludeReasoning bool
}

// Export implements Exporter.
func (e *MarkdownExporter) Export(conv *model.Conversation) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# " + conv.DisplayTitle() + "\n\n")
	if conv.CreatedAt != "" {
		b.WriteString("> Started " + conv.CreatedAt)
		b.WriteString(" · " + util.IntToString(len(conv.Messages)) + " messages\n\n")
	}
	b.WriteString("---\n\n")

	for _, msg := range conv.Messages {
		b.WriteString("## " + msg.Role.DisplayName() + "\n\n")
		if e.IncludeReasoning && msg.Reasoning != "" {
			for _, line := range strings.Split(strings.TrimRight(msg.Reasoning, "\n"), "\n") {
				b.WriteString("> " + line + "\n")
			}
			b.WriteString("\n")
		}
		b.WriteString(strings.TrimRight(msg.Content, "\n"))
		b.WriteString("\n\n")
	}

	return []byte(b.String()), nil
}

// FileExtension implements Exporter.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}
