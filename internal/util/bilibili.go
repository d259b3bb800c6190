// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the alice-tui application.
package util

import (
	"regexp"
	"strings"
)

// bvidPattern matches a bilibili video id inside a pasted link or bare text.
var bvidPattern = regexp.MustCompile(`BV[0-9A-Za-z]{10}`)

// ExtractBilibiliLink pulls a canonical bilibili URL out of pasted text.
// Full links pass through unchanged; a bare BV id is expanded. Returns ""
// when the text holds nothing importable.
func ExtractBilibiliLink(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
		if strings.Contains(text, "bilibili.com") || strings.Contains(text, "b23.tv") {
			return text
		}
		return ""
	}
	if bvid := bvidPattern.FindString(text); bvid != "" {
		return "https://www.bilibili.com/video/" + bvid
	}
	return ""
}
