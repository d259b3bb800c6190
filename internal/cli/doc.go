// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package cli implements the non-TUI command line surface of alice.

Parse (cli.go) turns os.Args into a Command plus Args; main dispatches on
the command. Running with no command opens the full-screen TUI; everything
else is a plain terminal command:

	ask     one-shot question, streamed to stdout, markdown-rendered on TTYs
	chat    readline REPL with history, /commands, and the offline mirror
	import  queue a bilibili video by link or BV id
	status  backend reachability, library, queue, and graph summary
	login   prompt for credentials and store the token encrypted
	logout  forget the stored token

The chat and status commands keep the sqlite mirror under ~/.alice fresh
and read from it when the backend is unreachable.
*/
package cli
