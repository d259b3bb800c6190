// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session manages live chat state: the conversation list, the
// selected conversation, and the in-flight streaming reply.
//
// A single Manager owns all chat state behind one mutex. Every operation
// that changes which conversation owns the screen (new chat, select,
// delete, send) mints a fresh ownership token; asynchronous results such
// as stream events and detail fetches carry the token they were started
// under
// and are silently discarded if it has gone stale. This is what keeps a
// rapid chat switch from leaking the previous conversation's reply into
// the new one.
package session
