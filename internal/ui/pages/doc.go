// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package pages contains the secondary TUI pages of the alice application.

Each page is a self-contained Bubble Tea sub-model owned and multiplexed
by the app root in the ui package:

Login (login.go) - Email/password form shown when no token is stored.
A successful login persists the encrypted token and emits LoginDoneMsg.

Library (library.go) - Paginated video library with search, status
filtering, bilibili link import, and process/delete actions.

Queue (queue.go) - Processing pipeline snapshot: waiting, failed, and
recently finished videos. Data arrives from the app root's background
poller rather than the page's own commands; pressing r kicks the poller.

Graph (graph.go) - Text rendering of the knowledge graph, concepts
ranked by size with connected neighbors, with single-concept focus.

Settings (settings.go) - Local client configuration, backend ASR/LLM
configuration, and storage usage with a cleanup action.
*/
package pages
