package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"quizreel/internal/logging"
)

// Limiter spaces calls so that at most RequestsPerMinute requests are issued
// per minute. The first call proceeds immediately; each later call blocks
// until the configured interval has elapsed since the previous call returned.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	now      func() time.Time
	sleep    func(context.Context, time.Duration) error
	logger   *slog.Logger
}

// Option customizes the limiter.
type Option func(*Limiter)

// WithClock overrides the time source (useful for tests).
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// WithSleeper overrides how delays are performed (useful for tests).
func WithSleeper(sleep func(context.Context, time.Duration) error) Option {
	return func(l *Limiter) {
		if sleep != nil {
			l.sleep = sleep
		}
	}
}

// WithLogger sets the logger used for delay notices.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Limiter) {
		if logger != nil {
			l.logger = logging.NewComponentLogger(logger, "ratelimit")
		}
	}
}

// New constructs a limiter allowing requestsPerMinute calls per minute.
func New(requestsPerMinute int, opts ...Option) *Limiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 1
	}
	l := &Limiter{
		interval: time.Minute / time.Duration(requestsPerMinute),
		now:      time.Now,
		sleep:    sleepContext,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Interval reports the enforced spacing between calls.
func (l *Limiter) Interval() time.Duration {
	return l.interval
}

// Wait blocks until the spacing interval has elapsed since the previous Wait
// returned. The check-and-update of the shared timestamp is mutex-guarded so
// concurrent callers cannot compute overlapping allowances.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.last.IsZero() {
		elapsed := l.now().Sub(l.last)
		if delay := l.interval - elapsed; delay > 0 {
			l.logger.Info("rate limiting", logging.Duration("delay", delay.Round(time.Second)))
			if err := l.sleep(ctx, delay); err != nil {
				return err
			}
		}
	}
	l.last = l.now()
	return nil
}

func sleepContext(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
