// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the view-side data structures for conversations,
// messages, and streaming state.
//
// These types mirror the backend records (internal/api) but carry the
// client-only fields the UI needs: pending flags, decoded reasoning traces,
// and the temporary identities of optimistic messages that have not been
// acknowledged by the backend yet.
package model
