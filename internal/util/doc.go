// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions shared across the alice-tui
// application: rune-safe string handling, numeric formatting, and atomic
// file writes.
package util
