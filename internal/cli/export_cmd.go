// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// export_cmd.go - Conversation export command handler.
//
// Handles "alice export <id> [format]", writing the conversation into the
// current directory as markdown (default) or JSON.
package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/jeranaias/alice-tui/internal/api"
	"github.com/jeranaias/alice-tui/internal/export"
	"github.com/jeranaias/alice-tui/internal/model"
)

// RunExport exports one conversation and returns the process exit code.
func RunExport(client *api.Client, args Args) int {
	if len(args.Raw) == 0 {
		fmt.Fprintln(os.Stderr, errStyle.Render("usage: alice export <id> [markdown|json]"))
		return 2
	}
	id, err := strconv.ParseInt(args.Raw[0], 10, 64)
	if err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("conversation id must be a number"))
		return 2
	}
	format := ""
	if len(args.Raw) > 1 {
		format = args.Raw[1]
	}
	exporter, err := export.ForFormat(format)
	if err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
		return 2
	}

	detail, err := client.GetConversation(context.Background(), id)
	if err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("cannot load conversation: "+err.Error()))
		return 1
	}

	path, err := export.ToFile(model.FromAPIConversationDetail(*detail), exporter, ".")
	if err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
		return 1
	}
	fmt.Println(okStyle.Render("exported to " + path))
	return 0
}
