// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package poll drives periodic background refreshes, such as the
// processing-queue page's five-second cycle.
//
// Manual refreshes (keypress) funnel through the same poller and are rate
// limited, so holding the refresh key cannot flood the backend.
package poll

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// POLLER
// =============================================================================

// Poller invokes a refresh function on a fixed interval and on demand.
type Poller struct {
	interval time.Duration
	limiter  *rate.Limiter
	run      func(context.Context)

	kick   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	startOnce sync.Once
	stopOnce  sync.Once
}

// New creates a poller that calls run every interval once started.
// Manual kicks are limited to one per second with a small burst.
func New(interval time.Duration, run func(context.Context)) *Poller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(time.Second), 2),
		run:      run,
		kick:     make(chan struct{}, 1),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins polling with an immediate first refresh. Subsequent calls
// are no-ops.
func (p *Poller) Start() {
	p.startOnce.Do(func() {
		p.wg.Add(1)
		go p.loop()
	})
}

// Stop halts polling and waits for an in-progress refresh to finish.
// Subsequent calls are no-ops.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		p.cancel()
		p.wg.Wait()
	})
}

// Kick requests an immediate refresh. Kicks beyond the rate limit or while
// one is already queued are dropped, not queued up.
func (p *Poller) Kick() {
	if !p.limiter.Allow() {
		return
	}
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

func (p *Poller) loop() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.run(p.ctx)
	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.run(p.ctx)
		case <-p.kick:
			p.run(p.ctx)
		}
	}
}
