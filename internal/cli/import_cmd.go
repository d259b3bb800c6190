// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// import_cmd.go - Video import command handler.
//
// Handles "alice import <link>", which accepts a full bilibili URL, a
// b23.tv short link, or a bare BV id and queues the video for processing.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jeranaias/alice-tui/internal/api"
	"github.com/jeranaias/alice-tui/internal/util"
)

// RunImport imports one video and returns the process exit code.
func RunImport(client *api.Client, args Args) int {
	url := util.ExtractBilibiliLink(args.URL)
	if url == "" {
		fmt.Fprintln(os.Stderr, errStyle.Render("usage: alice import <bilibili link or BV id>"))
		return 2
	}

	resp, err := client.ImportVideo(context.Background(), api.ImportRequest{
		URL:         url,
		AutoProcess: true,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("import failed: "+err.Error()))
		return 1
	}

	fmt.Println(okStyle.Render("imported " + resp.BVID + ": " + resp.Title))
	if !args.Quiet && resp.Message != "" {
		fmt.Println(infoStyle.Render(resp.Message))
	}
	return 0
}
