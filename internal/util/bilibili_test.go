// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the alice-tui application.
package util

import "testing"

func TestExtractBilibiliLink(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "full link passes through",
			in:   "https://www.bilibili.com/video/BV1xx411c7mD?p=1",
			want: "https://www.bilibili.com/video/BV1xx411c7mD?p=1",
		},
		{
			name: "short link passes through",
			in:   "https://b23.tv/abc123",
			want: "https://b23.tv/abc123",
		},
		{
			name: "bare BV id expands",
			in:   "BV1xx411c7mD",
			want: "https://www.bilibili.com/video/BV1xx411c7mD",
		},
		{
			name: "BV id inside text",
			in:   "看看这个 BV1xx411c7mD 很有意思",
			want: "https://www.bilibili.com/video/BV1xx411c7mD",
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "  BV1xx411c7mD\n",
			want: "https://www.bilibili.com/video/BV1xx411c7mD",
		},
		{
			name: "unrelated link rejected",
			in:   "https://example.com/video/123",
			want: "",
		},
		{
			name: "plain text rejected",
			in:   "just some words",
			want: "",
		},
		{
			name: "short BV fragment rejected",
			in:   "BV12345",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractBilibiliLink(tt.in); got != tt.want {
				t.Errorf("ExtractBilibiliLink(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
