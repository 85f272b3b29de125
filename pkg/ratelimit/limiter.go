package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// shutdownGrace is how long Shutdown waits for the replenishment loop to
// exit before giving up and logging a warning.
const shutdownGrace = time.Second

// Limiter is a fixed-window rate limiter.
//
// The permit pool is a buffered channel with capacity requestLimit. It starts
// full, so calls made immediately after construction are admitted without
// blocking. A dedicated goroutine refills the pool to requestLimit every
// interval. The pool count therefore always satisfies
// 0 <= Available() <= Limit().
type Limiter struct {
	limit    int
	interval time.Duration

	// permits is the pool. Receiving consumes one permit, sending restores
	// one. Channel capacity bounds the pool at limit.
	permits chan struct{}

	ticker  *time.Ticker
	done    chan struct{}
	stopped chan struct{}

	stopOnce sync.Once
	logger   *slog.Logger
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Limiter) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a Limiter admitting at most requestLimit callers per interval
// and starts its replenishment goroutine.
//
// The pool starts at full capacity, equivalent to an immediate first
// replenishment at time zero, so construction does not consume a grace
// period. Callers must invoke Shutdown during teardown to release the timer;
// each limiter that is never shut down leaks one ticker goroutine.
func New(interval time.Duration, requestLimit int, opts ...Option) (*Limiter, error) {
	if requestLimit <= 0 {
		return nil, &InvalidConfigError{
			Field:   "request_limit",
			Message: fmt.Sprintf("must be positive, got %d", requestLimit),
		}
	}
	if interval <= 0 {
		return nil, &InvalidConfigError{
			Field:   "interval",
			Message: fmt.Sprintf("must be positive, got %s", interval),
		}
	}

	l := &Limiter{
		limit:    requestLimit,
		interval: interval,
		permits:  make(chan struct{}, requestLimit),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(l)
	}

	for i := 0; i < requestLimit; i++ {
		l.permits <- struct{}{}
	}

	l.ticker = time.NewTicker(interval)
	go l.run()

	l.logger.Debug("rate limiter started",
		"interval", interval,
		"request_limit", requestLimit,
	)

	return l, nil
}

// Acquire blocks until a permit is available or ctx is done.
//
// On admission it consumes exactly one permit and returns nil. On
// cancellation it consumes no permit and returns an error wrapping both
// ErrAcquireCancelled and ctx.Err(). Acquire never returns permits to the
// pool; capacity is restored only by the replenishment tick.
func (l *Limiter) Acquire(ctx context.Context) error {
	// Fast path: an available permit wins over an already-cancelled context.
	select {
	case <-l.permits:
		return nil
	default:
	}

	select {
	case <-l.permits:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrAcquireCancelled, ctx.Err())
	}
}

// TryAcquire consumes a permit if one is immediately available.
// It never blocks; it returns false when the window's quota is exhausted.
func (l *Limiter) TryAcquire() bool {
	select {
	case <-l.permits:
		return true
	default:
		return false
	}
}

// Available returns the number of permits currently available.
func (l *Limiter) Available() int {
	return len(l.permits)
}

// Limit returns the configured admissions-per-window limit.
func (l *Limiter) Limit() int {
	return l.limit
}

// Interval returns the configured window duration.
func (l *Limiter) Interval() time.Duration {
	return l.interval
}

// Shutdown stops the replenishment clock. It is idempotent and never fails.
//
// No new tick starts after Shutdown returns; a tick already in progress is
// allowed to complete. Shutdown waits up to one second for the replenishment
// goroutine to exit and logs a warning if it does not. Callers still blocked
// in Acquire are not released; callers are expected to stop acquiring before
// shutting down.
func (l *Limiter) Shutdown() {
	l.stopOnce.Do(func() {
		l.ticker.Stop()
		close(l.done)

		select {
		case <-l.stopped:
			l.logger.Debug("rate limiter stopped")
		case <-time.After(shutdownGrace):
			l.logger.Warn("replenishment loop did not stop within grace period",
				"grace", shutdownGrace,
			)
		}
	})
}

// run is the replenishment loop. It owns the ticker and is the only writer
// to the permit pool.
func (l *Limiter) run() {
	defer close(l.stopped)

	for {
		select {
		case <-l.done:
			return
		case <-l.ticker.C:
			l.replenish()
		}
	}
}

// replenish restores the pool up to the configured limit.
//
// The deficit is computed as limit minus the current count: missed windows
// do not carry over, so a limiter idle across many windows still restores at
// most limit permits. Non-blocking sends make the refill idempotent against
// acquires racing the tick; the channel capacity guarantees the pool never
// exceeds the limit.
func (l *Limiter) replenish() {
	deficit := l.limit - len(l.permits)
	for i := 0; i < deficit; i++ {
		select {
		case l.permits <- struct{}{}:
		default:
			return
		}
	}
}
