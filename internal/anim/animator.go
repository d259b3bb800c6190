// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package anim reveals streamed reply text incrementally.
package anim

import (
	"strings"
	"time"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// Delimiter selects the unit of the reveal.
//
//	""  rune by rune
//	" " word by word
//
// Any other delimiter splits on it literally.
type Config struct {
	Delimiter string
}

// minDuration floors every animation run so single-unit updates are still
// perceptible rather than instant.
const minDuration = 100 * time.Millisecond

// perUnitCost returns the per-unit reveal cost and the run cap for a
// delimiter. Finer units animate faster but are allowed a longer total run.
func perUnitCost(delimiter string) (time.Duration, time.Duration) {
	switch delimiter {
	case "":
		return 15 * time.Millisecond, 2 * time.Second
	case " ":
		return 50 * time.Millisecond, 1500 * time.Millisecond
	default:
		return 100 * time.Millisecond, time.Second
	}
}

// =============================================================================
// ANIMATOR
// =============================================================================

// Animator interpolates a reveal position across the target text.
// Not safe for concurrent use; Bubble Tea's single-threaded Update loop is
// the intended caller.
type Animator struct {
	cfg Config

	target string
	units  []string

	startUnits int       // reveal position when the current run began
	startTime  time.Time // when the current run began
	duration   time.Duration

	generation int
}

// New creates an animator. The zero Config animates rune by rune.
func New(cfg Config) *Animator {
	return &Animator{cfg: cfg}
}

// Generation identifies the current animation run. It changes whenever a
// run restarts, letting tick messages stamped with an old generation be
// discarded instead of racing the new run.
func (a *Animator) Generation() int {
	return a.generation
}

// Target returns the full text currently being revealed.
func (a *Animator) Target() string {
	return a.target
}

// SetText updates the target text. A target that extends the current one
// continues the reveal from the current position; anything else restarts
// from the beginning.
func (a *Animator) SetText(text string, now time.Time) {
	if text == a.target {
		return
	}

	extended := a.target != "" && strings.HasPrefix(text, a.target)
	from := 0
	if extended {
		from = a.revealedUnits(now)
	}

	a.target = text
	a.units = splitUnits(text, a.cfg.Delimiter)
	if from > len(a.units) {
		from = len(a.units)
	}
	a.startUnits = from
	a.startTime = now
	a.duration = runDuration(len(a.units)-from, a.cfg.Delimiter)
	a.generation++
}

// Reset clears the animator to empty.
func (a *Animator) Reset() {
	a.target = ""
	a.units = nil
	a.startUnits = 0
	a.duration = 0
	a.generation++
}

// Visible returns the revealed prefix at the given instant.
func (a *Animator) Visible(now time.Time) string {
	n := a.revealedUnits(now)
	if n >= len(a.units) {
		return a.target
	}
	return strings.Join(a.units[:n], a.cfg.Delimiter)
}

// Done reports whether the full target is revealed at the given instant.
func (a *Animator) Done(now time.Time) bool {
	return a.revealedUnits(now) >= len(a.units)
}

// revealedUnits interpolates the reveal position linearly across the
// current run. It is monotone for a fixed run: within one run it only
// grows, and extensions start new runs from the position already reached.
func (a *Animator) revealedUnits(now time.Time) int {
	total := len(a.units)
	if a.startUnits >= total {
		return total
	}
	if a.duration <= 0 {
		return total
	}

	elapsed := now.Sub(a.startTime)
	if elapsed <= 0 {
		return a.startUnits
	}
	if elapsed >= a.duration {
		return total
	}

	progress := float64(elapsed) / float64(a.duration)
	n := a.startUnits + int(progress*float64(total-a.startUnits))
	if n > total {
		n = total
	}
	return n
}

// =============================================================================
// HELPERS
// =============================================================================

// runDuration computes the time budget for revealing n units: linear in n,
// clamped between the floor and the delimiter's cap.
func runDuration(n int, delimiter string) time.Duration {
	if n <= 0 {
		return 0
	}
	per, limit := perUnitCost(delimiter)
	d := time.Duration(n) * per
	if d < minDuration {
		d = minDuration
	}
	if d > limit {
		d = limit
	}
	return d
}

// splitUnits breaks text into reveal units for a delimiter.
func splitUnits(text, delimiter string) []string {
	if text == "" {
		return nil
	}
	if delimiter == "" {
		runes := []rune(text)
		units := make([]string, len(runes))
		for i, r := range runes {
			units[i] = string(r)
		}
		return units
	}
	return strings.Split(text, delimiter)
}
