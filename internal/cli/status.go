// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Backend status command handler.
//
// Prints backend reachability, library counts, queue depth, and graph
// size. When the backend is unreachable it falls back to the local
// mirror so the library is still inspectable offline.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jeranaias/alice-tui/internal/api"
	"github.com/jeranaias/alice-tui/internal/config"
	"github.com/jeranaias/alice-tui/internal/storage"
	"github.com/jeranaias/alice-tui/internal/util"
)

// RunStatus prints the status summary and returns the process exit code.
func RunStatus(client *api.Client, args Args) int {
	ctx := context.Background()
	fmt.Println(headingStyle.Render("alice status"))

	cfg := config.Global()
	fmt.Println(infoStyle.Render("backend " + cfg.API.BaseURL))

	if err := client.CheckReachable(ctx); err != nil {
		fmt.Println(errStyle.Render("  unreachable: " + err.Error()))
		return printOfflineStatus(ctx)
	}
	fmt.Println(okStyle.Render("  reachable"))

	token, _ := config.LoadToken()
	if token == "" {
		fmt.Println(warnStyle.Render("  not signed in (alice login)"))
	} else if user, err := client.Me(ctx); err == nil {
		fmt.Println(okStyle.Render("  signed in as " + user.Username))
	} else if api.IsUnauthorized(err) {
		fmt.Println(warnStyle.Render("  stored token rejected (alice login)"))
	}

	if stats, err := client.GetVideoStats(ctx); err == nil {
		fmt.Println()
		fmt.Println(headingStyle.Render("library"))
		fmt.Println("  total      " + util.IntToString(stats.Total))
		fmt.Println("  done       " + okStyle.Render(util.IntToString(stats.Done)))
		fmt.Println("  processing " + warnStyle.Render(util.IntToString(stats.Processing)))
		fmt.Println("  pending    " + util.IntToString(stats.Pending))
		fmt.Println("  failed     " + errStyle.Render(util.IntToString(stats.Failed)))
	}

	if queue, err := client.GetProcessingQueue(ctx); err == nil {
		fmt.Println()
		fmt.Println(headingStyle.Render("queue"))
		fmt.Println("  waiting " + util.IntToString(queue.QueueCount) +
			", failed " + util.IntToString(queue.FailedCount))
	}

	if graph, err := client.GetGraphStats(ctx); err == nil {
		fmt.Println()
		fmt.Println(headingStyle.Render("knowledge graph"))
		fmt.Println("  " + util.IntToString(graph.TotalConcepts) + " concepts, " +
			util.IntToString(graph.TotalVideos) + " videos, " +
			util.IntToString(graph.TotalEdges) + " links")
	}

	syncMirror(ctx, client)
	return 0
}

// printOfflineStatus reports from the local mirror when offline.
func printOfflineStatus(ctx context.Context) int {
	cache := openCache()
	if cache == nil {
		return 1
	}
	defer cache.Close()

	videos, err := cache.LoadVideos(ctx)
	if err != nil || len(videos) == 0 {
		return 1
	}
	fmt.Println()
	if when, ok := cache.LastSync(ctx, storage.KindVideos); ok {
		fmt.Println(warnStyle.Render("local mirror from " + when.Format("2006-01-02 15:04")))
	} else {
		fmt.Println(warnStyle.Render("local mirror"))
	}
	done := 0
	for _, v := range videos {
		if v.Status == "done" {
			done++
		}
	}
	fmt.Println("  " + util.IntToString(len(videos)) + " videos, " +
		util.IntToString(done) + " processed")
	return 1
}

// syncMirror refreshes the offline mirror, best effort.
func syncMirror(ctx context.Context, client *api.Client) {
	cache := openCache()
	if cache == nil {
		return
	}
	defer cache.Close()

	if page, err := client.ListVideos(ctx, api.VideoListOptions{PageSize: 500}); err == nil {
		if err := cache.SaveVideos(ctx, page.Items); err != nil {
			fmt.Fprintln(os.Stderr, warnStyle.Render("mirror update failed: "+err.Error()))
		}
	}
	if conversations, err := client.ListConversations(ctx); err == nil {
		_ = cache.SaveConversations(ctx, conversations)
	}
}
