// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides a local mirror of backend list data.
//
// The mirror is refreshed opportunistically after successful backend
// fetches and read back when the backend is unreachable, so the sidebar
// and library still show the last known state instead of going blank.
// SQLite keeps it durable across runs without a second serialization
// format.
package storage
