package backend

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(30 * time.Millisecond)
	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := th.wait(ctx); err != nil {
			t.Fatalf("wait: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Fatalf("expected at least 60ms for three calls, got %v", elapsed)
	}
}

func TestThrottleZeroGapNeverBlocks(t *testing.T) {
	th := newThrottle(0)
	for i := 0; i < 100; i++ {
		if err := th.wait(context.Background()); err != nil {
			t.Fatalf("wait: %v", err)
		}
	}
}

func TestThrottleHonoursCancel(t *testing.T) {
	th := newThrottle(time.Hour)
	if err := th.wait(context.Background()); err != nil {
		t.Fatalf("first wait should not block: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := th.wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
