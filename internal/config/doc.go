// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for alice.
//
// Configuration lives at ~/.alice/config.toml with sensible defaults,
// environment variable overrides, and validation. The stored bearer token
// lives next to it, encrypted at rest.
package config
