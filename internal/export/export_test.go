// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export provides conversation export for the alice TUI.
package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeranaias/alice-tui/internal/model"
)

func testConversation() *model.Conversation {
	title := "做饭技巧"
	return &model.Conversation{
		ID:        7,
		Title:     &title,
		CreatedAt: "2025-01-15T10:00:00",
		Messages: []*model.Message{
			{ID: 1, Role: model.RoleUser, Content: "怎么炒青菜?", CreatedAt: "2025-01-15T10:00:01"},
			{ID: 2, Role: model.RoleAssistant, Content: "大火快炒。\n注意控制时间。", Reasoning: "video mentions heat control"},
		},
	}
}

func TestMarkdownExport(t *testing.T) {
	out, err := (&MarkdownExporter{IncludeReasoning: true}).Export(testConversation())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	text := string(out)
	for _, want := range []string{
		"# 做饭技巧",
		"## You",
		"## Alice",
		"怎么炒青菜?",
		"> video mentions heat control",
		"大火快炒。",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("markdown missing %q:\n%s", want, text)
		}
	}
}

func TestMarkdownExportWithoutReasoning(t *testing.T) {
	out, err := (&MarkdownExporter{}).Export(testConversation())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if strings.Contains(string(out), "heat control") {
		t.Error("reasoning should be omitted")
	}
}

func TestJSONExportRoundTrips(t *testing.T) {
	out, err := (&JSONExporter{}).Export(testConversation())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	var doc struct {
		ID       int64 `json:"id"`
		Messages []struct {
			Role      string `json:"role"`
			Reasoning string `json:"reasoning"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.ID != 7 || len(doc.Messages) != 2 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if doc.Messages[1].Role != "assistant" || doc.Messages[1].Reasoning == "" {
		t.Errorf("assistant message lost fields: %+v", doc.Messages[1])
	}
}

func TestForFormat(t *testing.T) {
	if _, err := ForFormat("md"); err != nil {
		t.Errorf("md: %v", err)
	}
	if _, err := ForFormat(""); err != nil {
		t.Errorf("default: %v", err)
	}
	if ex, err := ForFormat("JSON"); err != nil || ex.FileExtension() != ".json" {
		t.Errorf("json: ex=%v err=%v", ex, err)
	}
	if _, err := ForFormat("pdf"); err == nil {
		t.Error("pdf should be rejected")
	}
}

func TestToFileWritesSafeName(t *testing.T) {
	dir := t.TempDir()
	conv := testConversation()
	bad := "a/b:c*d?e"
	conv.Title = &bad

	path, err := ToFile(conv, &MarkdownExporter{}, dir)
	if err != nil {
		t.Fatalf("ToFile: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("written outside dir: %s", path)
	}
	base := filepath.Base(path)
	if strings.ContainsAny(base, "/:*?") {
		t.Errorf("unsafe file name %q", base)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file missing: %v", err)
	}
}

func TestToFileUntitledFallsBackToID(t *testing.T) {
	conv := testConversation()
	conv.Title = nil
	// The untitled placeholder still yields a usable stem.
	path, err := ToFile(conv, &JSONExporter{}, t.TempDir())
	if err != nil {
		t.Fatalf("ToFile: %v", err)
	}
	if !strings.HasSuffix(path, ".json") {
		t.Errorf("extension missing: %s", path)
	}
}
