// alice TUI - A terminal client for the alice video knowledge base.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/alice-tui/internal/api"
	"github.com/jeranaias/alice-tui/internal/cli"
	"github.com/jeranaias/alice-tui/internal/config"
	"github.com/jeranaias/alice-tui/internal/mention"
	"github.com/jeranaias/alice-tui/internal/session"
	"github.com/jeranaias/alice-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	cfg.ApplyEnvOverrides()
	config.SetGlobal(cfg)

	token, _ := config.LoadToken()
	client := api.NewClient(&api.ClientConfig{
		BaseURL:       cfg.API.BaseURL,
		StreamBaseURL: cfg.API.StreamURL,
		Timeout:       time.Duration(cfg.API.TimeoutSecs) * time.Second,
	})
	client.SetTokenSource(api.StaticToken(token))

	switch cmd {
	case cli.CmdTUI:
		runTUI(cfg, client, token != "")
	case cli.CmdAsk:
		os.Exit(cli.RunAsk(client, args))
	case cli.CmdChat:
		os.Exit(cli.RunChat(client, args))
	case cli.CmdImport:
		os.Exit(cli.RunImport(client, args))
	case cli.CmdExport:
		os.Exit(cli.RunExport(client, args))
	case cli.CmdStatus:
		os.Exit(cli.RunStatus(client, args))
	case cli.CmdLogin:
		os.Exit(cli.RunLogin(client, args))
	case cli.CmdLogout:
		os.Exit(cli.RunLogout(args))
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	}
}

// runTUI wires the services and runs the full-screen application.
func runTUI(cfg *config.Config, client *api.Client, loggedIn bool) {
	manager := session.NewManager(client)
	resolver := mention.NewResolver(client)

	// Config edits apply on the next restart for most settings, but the
	// global snapshot stays fresh for anything that reads it live.
	if watcher, err := config.NewWatcher(nil); err == nil {
		if err := watcher.Watch(); err == nil {
			defer watcher.Close()
		}
	}

	err := ui.Run(ui.RunOptions{
		Config:   cfg,
		Client:   client,
		Manager:  manager,
		Resolver: resolver,
		LoggedIn: loggedIn,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
