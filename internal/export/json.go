// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export provides conversation export for the alice TUI.
package export

import (
	"encoding/json"

	"github.com/jeranaias/alice-tui/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter renders a conversation as pretty-printed JSON for scripting
// and re-import.
type JSONExporter struct{}

type jsonDocument struct {
	ID        int64         `json:"id"`
	Title     string        `json:"title"`
	CreatedAt string        `json:"created_at,omitempty"`
	UpdatedAt string        `json:"updated_at,omitempty"`
	Messages  []jsonMessage `json:"messages"`
}

type jsonMessage struct {
	ID        int64  `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Reasoning string `json:"reasoning,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Export implements Exporter.
func (e *JSONExporter) Export(conv *model.Conversation) ([]byte, error) {
	doc := jsonDocument{
		ID:        conv.ID,
		Title:     conv.DisplayTitle(),
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
		Messages:  make([]jsonMessage, 0, len(conv.Messages)),
	}
	for _, msg := range conv.Messages {
		doc.Messages = append(doc.Messages, jsonMessage{
			ID:        msg.ID,
			Role:      msg.Role.String(),
			Content:   msg.Content,
			Reasoning: msg.Reasoning,
			CreatedAt: msg.CreatedAt,
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

// FileExtension implements Exporter.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}
