package backend

import (
	"context"
	"sync"
	"time"
)

// throttle spaces out store reads so a burst of nudges cannot hammer sqlite.
type throttle struct {
	gap time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(gap time.Duration) *throttle {
	if gap < 0 {
		gap = 0
	}
	return &throttle{gap: gap}
}

// wait blocks until the next slot is free and claims it. It returns
// ctx.Err() if ctx ends first.
func (t *throttle) wait(ctx context.Context) error {
	if t == nil || t.gap == 0 {
		return ctx.Err()
	}
	t.mu.Lock()
	now := time.Now()
	slot := t.next
	if slot.Before(now) {
		slot = now
	}
	t.next = slot.Add(t.gap)
	t.mu.Unlock()

	delay := time.Until(slot)
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
