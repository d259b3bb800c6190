// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package anim reveals streamed reply text incrementally.
package anim

import (
	"strings"
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// =============================================================================
// REVEAL TESTS
// =============================================================================

func TestAnimator_RevealsGradually(t *testing.T) {
	a := New(Config{})
	a.SetText("hello world", t0)

	if got := a.Visible(t0); got != "" {
		t.Errorf("at start: %q, want empty", got)
	}
	if a.Done(t0) {
		t.Error("Done at start")
	}

	mid := a.Visible(t0.Add(80 * time.Millisecond))
	if mid == "" || mid == "hello world" {
		t.Errorf("midway: %q, want a strict prefix", mid)
	}
	if !strings.HasPrefix("hello world", mid) {
		t.Errorf("midway %q is not a prefix of the target", mid)
	}

	end := t0.Add(3 * time.Second)
	if got := a.Visible(end); got != "hello world" {
		t.Errorf("after run: %q", got)
	}
	if !a.Done(end) {
		t.Error("Done false after the run finished")
	}
}

func TestAnimator_MonotoneWithinRun(t *testing.T) {
	a := New(Config{})
	a.SetText(strings.Repeat("x", 100), t0)

	prev := 0
	for ms := 0; ms <= 2000; ms += 50 {
		n := len(a.Visible(t0.Add(time.Duration(ms) * time.Millisecond)))
		if n < prev {
			t.Fatalf("reveal went backwards at %dms: %d < %d", ms, n, prev)
		}
		prev = n
	}
	if prev != 100 {
		t.Errorf("final reveal = %d, want 100", prev)
	}
}

func TestAnimator_ExtensionContinues(t *testing.T) {
	a := New(Config{})
	a.SetText("hello", t0)

	// Let the first run finish.
	now := t0.Add(time.Second)
	if a.Visible(now) != "hello" {
		t.Fatalf("first run incomplete: %q", a.Visible(now))
	}

	// Extending must not restart from zero.
	a.SetText("hello world", now)
	if got := a.Visible(now); got != "hello" {
		t.Errorf("immediately after extension: %q, want the already-revealed prefix", got)
	}
	if got := a.Visible(now.Add(2 * time.Second)); got != "hello world" {
		t.Errorf("after extension run: %q", got)
	}
}

func TestAnimator_NonExtensionRestarts(t *testing.T) {
	a := New(Config{})
	a.SetText("hello", t0)
	now := t0.Add(time.Second)

	gen := a.Generation()
	a.SetText("different", now)

	if a.Generation() == gen {
		t.Error("generation unchanged after restart")
	}
	if got := a.Visible(now); got != "" {
		t.Errorf("after restart: %q, want empty", got)
	}
}

func TestAnimator_SameTextIsNoOp(t *testing.T) {
	a := New(Config{})
	a.SetText("stable", t0)
	gen := a.Generation()

	a.SetText("stable", t0.Add(time.Second))
	if a.Generation() != gen {
		t.Error("generation changed for identical text")
	}
}

func TestAnimator_WordMode(t *testing.T) {
	a := New(Config{Delimiter: " "})
	a.SetText("one two three four", t0)

	// Every intermediate frame must sit on a word boundary.
	valid := map[string]bool{
		"":                   true,
		"one":                true,
		"one two":            true,
		"one two three":      true,
		"one two three four": true,
	}
	for ms := 0; ms <= 300; ms += 10 {
		got := a.Visible(t0.Add(time.Duration(ms) * time.Millisecond))
		if !valid[got] {
			t.Fatalf("at %dms: %q splits a word", ms, got)
		}
	}

	if got := a.Visible(t0.Add(2 * time.Second)); got != "one two three four" {
		t.Errorf("final: %q", got)
	}
}

func TestAnimator_CJKRuneUnits(t *testing.T) {
	a := New(Config{})
	target := "你好世界"
	a.SetText(target, t0)

	// Reveal must land on rune boundaries, never split a multibyte rune.
	for ms := 0; ms <= 200; ms += 10 {
		got := a.Visible(t0.Add(time.Duration(ms) * time.Millisecond))
		if !strings.HasPrefix(target, got) {
			t.Fatalf("at %dms: %q is not a rune-boundary prefix", ms, got)
		}
	}
}

func TestAnimator_Reset(t *testing.T) {
	a := New(Config{})
	a.SetText("something", t0)
	gen := a.Generation()

	a.Reset()
	if a.Target() != "" || a.Visible(t0.Add(time.Hour)) != "" {
		t.Error("Reset left residual text")
	}
	if a.Generation() == gen {
		t.Error("Reset must bump the generation")
	}
	if !a.Done(t0) {
		t.Error("empty animator should report done")
	}
}

// =============================================================================
// DURATION TESTS
// =============================================================================

func TestRunDuration(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		delimiter string
		want      time.Duration
	}{
		{"zero units", 0, "", 0},
		{"floor", 2, "", minDuration},
		{"char linear", 20, "", 300 * time.Millisecond},
		{"char capped", 1000, "", 2 * time.Second},
		{"word linear", 10, " ", 500 * time.Millisecond},
		{"word capped", 100, " ", 1500 * time.Millisecond},
		{"custom delimiter capped", 50, "\n", time.Second},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := runDuration(tc.n, tc.delimiter); got != tc.want {
				t.Errorf("runDuration(%d, %q) = %v, want %v", tc.n, tc.delimiter, got, tc.want)
			}
		})
	}
}
