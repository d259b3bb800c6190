// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package export provides conversation export for the alice TUI.

Two formats are supported:

  - Markdown (markdown.go) - a readable document with the conversation
    title, per-message headings, and optional quoted reasoning blocks.
  - JSON (json.go) - a stable machine-readable dump for scripting.

ToFile writes the export next to the caller with a name derived from the
conversation title and the export time:

	exporter, _ := export.ForFormat("markdown")
	path, err := export.ToFile(conv, exporter, ".")
*/
package export
