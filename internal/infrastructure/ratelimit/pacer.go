// Package ratelimit paces calls to the classification service: a fixed
// minimum delay between calls plus a fixed-window token budget that pauses
// proactively before the service quota is hit.
package ratelimit

import (
	"context"
	"time"
)

const (
	// DefaultMinDelay is the minimum gap between successive classifier calls.
	DefaultMinDelay = 500 * time.Millisecond
	// DefaultWindow is the quota window of the classification service.
	DefaultWindow = time.Minute
)

// Pacer throttles synchronous calls. Not safe for concurrent use; the
// pipeline is single-threaded by design.
type Pacer struct {
	minDelay time.Duration
	window   time.Duration
	budget   int

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	lastCall    time.Time
	windowStart time.Time
	used        int
}

// New creates a pacer using the real clock. A budget of 0 disables the
// token-window check, leaving only the minimum delay.
func New(minDelay, window time.Duration, budget int) *Pacer {
	return &Pacer{
		minDelay: minDelay,
		window:   window,
		budget:   budget,
		now:      time.Now,
		sleep:    realSleep,
	}
}

// NewWithClock creates a pacer with an injected clock and sleeper, for tests.
func NewWithClock(minDelay, window time.Duration, budget int, now func() time.Time, sleep func(context.Context, time.Duration) error) *Pacer {
	p := New(minDelay, window, budget)
	p.now = now
	p.sleep = sleep
	return p
}

// Wait blocks until the next call is allowed to start, charging
// estimatedTokens against the current window.
func (p *Pacer) Wait(ctx context.Context, estimatedTokens int) error {
	now := p.now()

	if p.windowStart.IsZero() || now.Sub(p.windowStart) >= p.window {
		p.windowStart = now
		p.used = 0
	}

	if p.budget > 0 && p.used+estimatedTokens > p.budget && p.used > 0 {
		// Next call would overrun the quota window: pause to the window
		// boundary and start a fresh one.
		if err := p.sleep(ctx, p.windowStart.Add(p.window).Sub(now)); err != nil {
			return err
		}
		now = p.now()
		p.windowStart = now
		p.used = 0
	}

	if !p.lastCall.IsZero() {
		if wait := p.minDelay - now.Sub(p.lastCall); wait > 0 {
			if err := p.sleep(ctx, wait); err != nil {
				return err
			}
			now = p.now()
		}
	}

	p.used += estimatedTokens
	p.lastCall = now
	return nil
}

// EstimateTokens approximates the token cost of a prompt. Four bytes per
// token is a coarse but safe estimate for English text.
func EstimateTokens(text string) int {
	return len(text)/4 + 1
}

func realSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
