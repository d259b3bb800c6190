// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package anim reveals streamed reply text incrementally, so chunks that
// arrive in bursts still read as a steady typing flow.
//
// The animator is a pure function of (target text, clock): feeding it a
// grown target that extends the current one continues the reveal from the
// current position; any other change restarts it. Rendering asks for the
// visible prefix at a given instant, which makes the animator trivially
// drivable from Bubble Tea tick commands and trivially testable with a
// fake clock.
package anim
