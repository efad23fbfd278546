package ratelimit

import (
	"context"
	"testing"
	"time"
)

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time { return c.current }

func (c *fakeClock) advance(d time.Duration) { c.current = c.current.Add(d) }

func newTestLimiter(t *testing.T, perMinute int, clock *fakeClock, slept *[]time.Duration) *Limiter {
	t.Helper()
	return New(perMinute,
		WithClock(clock.now),
		WithSleeper(func(_ context.Context, d time.Duration) error {
			*slept = append(*slept, d)
			clock.advance(d)
			return nil
		}),
	)
}

func TestFirstCallProceedsImmediately(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1000, 0)}
	var slept []time.Duration
	limiter := newTestLimiter(t, 30, clock, &slept)

	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if len(slept) != 0 {
		t.Fatalf("first call should not sleep, slept %v", slept)
	}
}

func TestEnforcesSpacing(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1000, 0)}
	var slept []time.Duration
	limiter := newTestLimiter(t, 30, clock, &slept)

	ctx := context.Background()
	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	clock.advance(500 * time.Millisecond)
	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if len(slept) != 1 || slept[0] != 1500*time.Millisecond {
		t.Fatalf("expected single 1.5s delay, got %v", slept)
	}
}

func TestNoDelayAfterIntervalElapsed(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1000, 0)}
	var slept []time.Duration
	limiter := newTestLimiter(t, 30, clock, &slept)

	ctx := context.Background()
	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	clock.advance(3 * time.Second)
	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if len(slept) != 0 {
		t.Fatalf("expected no delay after interval elapsed, slept %v", slept)
	}
}

func TestConsecutiveCallsNeverCloserThanInterval(t *testing.T) {
	clock := &fakeClock{current: time.Unix(0, 0)}
	var slept []time.Duration
	limiter := newTestLimiter(t, 60, clock, &slept)

	ctx := context.Background()
	var stamps []time.Time
	for i := 0; i < 5; i++ {
		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("Wait: %v", err)
		}
		stamps = append(stamps, clock.current)
		clock.advance(200 * time.Millisecond)
	}
	for i := 1; i < len(stamps); i++ {
		if gap := stamps[i].Sub(stamps[i-1]); gap < limiter.Interval() {
			t.Fatalf("calls %d and %d only %v apart, want >= %v", i-1, i, gap, limiter.Interval())
		}
	}
}

func TestWaitHonorsContextCancellation(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1000, 0)}
	limiter := New(30,
		WithClock(clock.now),
		WithSleeper(func(ctx context.Context, _ time.Duration) error {
			return ctx.Err()
		}),
	)
	ctx, cancel := context.WithCancel(context.Background())
	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	cancel()
	if err := limiter.Wait(ctx); err == nil {
		t.Fatal("expected context error during delayed wait")
	}
}

func TestZeroRateFallsBackToOnePerMinute(t *testing.T) {
	limiter := New(0)
	if limiter.Interval() != time.Minute {
		t.Fatalf("expected 1/min fallback, got %v", limiter.Interval())
	}
}
