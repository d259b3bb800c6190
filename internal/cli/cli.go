// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing for alice.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdLogin
	CmdLogout
	CmdImport
	CmdExport
	CmdStatus
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	Plain   bool // disable markdown rendering

	// Command-specific
	Query string
	URL   string

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `alice - terminal client for the alice video knowledge base

Alice turns videos into a searchable knowledge base and lets you chat
with it. Running with no command opens the full-screen TUI.

Usage:
  alice                       Open the TUI
  alice ask "question"        Ask a one-shot question and stream the answer
  alice chat                  Interactive chat in the terminal
  alice import <link>         Import a bilibili video by link or BV id
  alice export <id> [format]  Export a conversation (markdown or json)
  alice status                Show backend, library, and queue status
  alice login                 Sign in and store the access token
  alice logout                Forget the stored access token
  alice version               Print version information
  alice help                  Show this help

Flags:
  -q, --quiet      Minimal output
  -v, --verbose    Verbose output
      --plain      Plain text output (no markdown rendering)

Environment:
  ALICE_API_URL         Override the backend API URL
  ALICE_STREAM_URL      Override the streaming endpoint URL
  ALICE_THEME           Override the UI theme (dark or light)

Configuration lives in ~/.alice/config.toml.
`

// Parse parses os.Args into a command and its arguments.
func Parse() (Command, Args) {
	return parseArgs(os.Args[1:])
}

func parseArgs(argv []string) (Command, Args) {
	var args Args
	var positional []string

	for _, a := range argv {
		switch a {
		case "-q", "--quiet":
			args.Quiet = true
		case "-v", "--verbose":
			args.Verbose = true
		case "--plain":
			args.Plain = true
		case "-h", "--help":
			return CmdHelp, args
		case "--version":
			return CmdVersion, args
		default:
			positional = append(positional, a)
		}
	}
	args.Raw = positional

	if len(positional) == 0 {
		return CmdTUI, args
	}

	cmd := positional[0]
	rest := positional[1:]
	switch cmd {
	case "ask":
		args.Query = strings.Join(rest, " ")
		return CmdAsk, args
	case "chat":
		return CmdChat, args
	case "login":
		return CmdLogin, args
	case "logout":
		return CmdLogout, args
	case "import":
		if len(rest) > 0 {
			args.URL = rest[0]
		}
		return CmdImport, args
	case "export":
		args.Raw = rest
		return CmdExport, args
	case "status":
		return CmdStatus, args
	case "version":
		return CmdVersion, args
	case "help":
		return CmdHelp, args
	default:
		// Bare words are a question, so `alice how do I ...` works.
		args.Query = strings.Join(positional, " ")
		return CmdAsk, args
	}
}

// PrintUsage writes the usage text to stdout.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion writes version information to stdout.
func PrintVersion() {
	fmt.Printf("alice %s (%s, built %s, %s/%s)\n",
		Version, GitCommit, BuildDate, runtime.GOOS, runtime.GOARCH)
}
