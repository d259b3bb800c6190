// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package ui holds the top-level application model for the alice TUI.

The App model (app.go) multiplexes the pages: chat, video library,
processing queue, knowledge graph, settings, and the login form. Function
keys switch pages; the chat page keeps receiving session and animation
messages even while another page is visible, so a running stream never
stalls in the background.

Run (program.go) owns the program lifecycle. It keeps a global program
reference so out-of-loop producers can deliver messages:

  - the session manager's notifier pumps chat.SessionUpdatedMsg on every
    state change,
  - the mention resolver's notifier pumps chat.MentionsUpdatedMsg when a
    transcript fetch settles,
  - a poll.Poller fetches the processing queue on an interval and pumps
    pages.QueueLoadedMsg.
*/
package ui
