// Package ratelimit provides an interval throttle for outbound RPC calls.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter spaces consecutive calls by a minimum interval, measured from the
// previous call's issue time. It only ever delays, never rejects.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time

	// now and sleep are swappable for tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// PerSecond returns a Limiter that allows at most rate calls per second.
// A rate <= 0 disables throttling.
func PerSecond(rate float64) *Limiter {
	var interval time.Duration
	if rate > 0 {
		interval = time.Duration(float64(time.Second) / rate)
	}
	return NewLimiter(interval)
}

// NewLimiter returns a Limiter enforcing the given minimum spacing.
func NewLimiter(interval time.Duration) *Limiter {
	return &Limiter{
		interval: interval,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// Interval returns the configured minimum spacing between calls.
func (l *Limiter) Interval() time.Duration {
	return l.interval
}

// Wait blocks until the minimum interval since the last call has elapsed,
// then records the new issue time. Cancelling the context aborts the wait.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.interval <= 0 {
		return ctx.Err()
	}

	l.mu.Lock()
	now := l.now()
	wait := l.interval - now.Sub(l.last)
	if wait < 0 {
		wait = 0
	}
	// Reserve the slot before sleeping so a concurrent caller queues behind it.
	l.last = now.Add(wait)
	l.mu.Unlock()

	if wait > 0 {
		return l.sleep(ctx, wait)
	}
	return ctx.Err()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
