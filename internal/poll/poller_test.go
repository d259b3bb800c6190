// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package poll drives periodic background refreshes.
package poll

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoller_RunsImmediatelyAndOnInterval(t *testing.T) {
	var runs atomic.Int64
	p := New(30*time.Millisecond, func(ctx context.Context) {
		runs.Add(1)
	})

	p.Start()
	defer p.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for runs.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if runs.Load() < 3 {
		t.Fatalf("runs = %d, want >= 3 (immediate + ticks)", runs.Load())
	}
}

func TestPoller_StopHaltsRefreshes(t *testing.T) {
	var runs atomic.Int64
	p := New(10*time.Millisecond, func(ctx context.Context) {
		runs.Add(1)
	})

	p.Start()
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	settled := runs.Load()
	time.Sleep(50 * time.Millisecond)
	if runs.Load() != settled {
		t.Errorf("refreshes continued after Stop: %d -> %d", settled, runs.Load())
	}
}

func TestPoller_KickTriggersRefresh(t *testing.T) {
	var runs atomic.Int64
	p := New(time.Hour, func(ctx context.Context) {
		runs.Add(1)
	})

	p.Start()
	defer p.Stop()

	deadline := time.Now().Add(time.Second)
	for runs.Load() < 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	p.Kick()
	deadline = time.Now().Add(time.Second)
	for runs.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if runs.Load() < 2 {
		t.Fatalf("Kick did not trigger a refresh (runs = %d)", runs.Load())
	}
}

func TestPoller_KickRateLimited(t *testing.T) {
	var runs atomic.Int64
	p := New(time.Hour, func(ctx context.Context) {
		runs.Add(1)
	})

	p.Start()
	defer p.Stop()

	// Burst far past the limiter; most kicks must be dropped.
	for i := 0; i < 50; i++ {
		p.Kick()
	}
	time.Sleep(100 * time.Millisecond)

	// immediate run + at most the limiter burst of kicks
	if runs.Load() > 4 {
		t.Errorf("runs = %d, rate limit did not hold", runs.Load())
	}
}

func TestPoller_StopIdempotent(t *testing.T) {
	p := New(time.Hour, func(ctx context.Context) {})
	p.Start()
	p.Stop()
	p.Stop()
}
