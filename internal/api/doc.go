// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the alice backend.
//
// All requests go through a single Client configured with a base URL and a
// bearer token source. Ordinary CRUD endpoints use plain request/response
// JSON under /api/v1. The chat streaming endpoint is special: it targets the
// stream base URL directly (buffering proxies would defeat streaming) and
// yields newline-delimited "data: <json>" events parsed by StreamReader.
package api
