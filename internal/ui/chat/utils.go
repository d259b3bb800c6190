// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import "unicode"

// mentionQuery scans backwards from the cursor for an "@" token under edit.
// The token opens the mention picker when the "@" starts the input or
// follows whitespace, and the text between it and the cursor has no
// whitespace. Offsets are in runes.
func mentionQuery(value string, cursor int) (query string, start int, ok bool) {
	runes := []rune(value)
	if cursor > len(runes) {
		cursor = len(runes)
	}
	for i := cursor - 1; i >= 0; i-- {
		r := runes[i]
		if unicode.IsSpace(r) {
			return "", 0, false
		}
		if r == '@' {
			if i > 0 && !unicode.IsSpace(runes[i-1]) {
				return "", 0, false
			}
			return string(runes[i+1 : cursor]), i, true
		}
	}
	return "", 0, false
}

// removeRuneRange deletes the rune range [start, end) from value.
func removeRuneRange(value string, start, end int) string {
	runes := []rune(value)
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return value
	}
	out := make([]rune, 0, len(runes)-(end-start))
	out = append(out, runes[:start]...)
	out = append(out, runes[end:]...)
	return string(out)
}
