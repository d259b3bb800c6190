// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the main chat view for the alice TUI.

The chat package implements the interactive conversation page using the
Bubble Tea framework: a conversation sidebar, a scrolling transcript, an
input line with @-mention support, and a status bar.

# Key Components

## Model (model.go)

The Model struct is the Bubble Tea model for the page. It deliberately owns
no session state: conversations, the active stream, and errors all live in
the session.Manager, and the model only re-reads snapshots when a
SessionUpdatedMsg arrives.

## Update Loop (update.go)

Handles keyboard input, manager notifications, animation ticks, and the
mention picker lifecycle. Streaming is driven externally: the manager's
notifier is wired to the running tea.Program, which pumps
SessionUpdatedMsg into this page on every state change.

## View Rendering (view.go)

Renders the transcript with role-labelled messages. Settled assistant
messages go through glamour markdown rendering; the in-flight turn shows
the incremental reveal from the anim package with a cursor mark.

## Text Reveal (messages.go, anim package)

Stream content is not printed as it arrives. The animator interpolates the
visible prefix toward the growing target, and AnimTickMsg frames carry the
animator generation so ticks from an abandoned run are discarded.

## Mentions (utils.go, mention package)

Typing "@" at a word boundary opens the picker over videos and
conversations. Selecting an item strips the token from the input and
registers the mention with the resolver, which fetches video transcripts
in the background.
*/
package chat
