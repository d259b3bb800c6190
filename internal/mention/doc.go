// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mention turns @-references to videos and prior conversations
// into content-bearing context blocks for the composer.
//
// Video mentions load their transcript asynchronously; the chip appears
// immediately in a loading state and fills in (or falls back to a sentinel
// on failure) when the fetch lands. A mention removed while its fetch is
// still in flight stays removed: late resolutions only ever update an item
// that is still present.
package mention
