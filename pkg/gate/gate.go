package gate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"crptlabs/crptgate/pkg/ratelimit"
)

// Work is one opaque unit of gated work, typically a single outbound request.
// The gate places no constraint on it beyond completing or failing.
type Work func(ctx context.Context) error

// Gate admits units of work through a rate limiter.
type Gate struct {
	limiter *ratelimit.Limiter
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Gate.
type Option func(*Gate)

// WithLogger sets the logger for admission events.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithMetrics enables Prometheus instrumentation of admissions and work
// outcomes.
func WithMetrics(m *Metrics) Option {
	return func(g *Gate) {
		g.metrics = m
	}
}

// New creates a Gate over an existing limiter. The gate references the
// limiter; it does not own or shut it down.
func New(limiter *ratelimit.Limiter, opts ...Option) (*Gate, error) {
	if limiter == nil {
		return nil, errors.New("gate: limiter is required")
	}

	g := &Gate{
		limiter: limiter,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Submit acquires a permit and then runs work.
//
// If acquisition is cancelled, the error from the limiter is returned and
// work is never invoked. If work fails, its error is returned verbatim; the
// permit stays consumed either way.
func (g *Gate) Submit(ctx context.Context, work Work) error {
	start := time.Now()
	if err := g.limiter.Acquire(ctx); err != nil {
		g.metrics.recordAdmission("cancelled", time.Since(start))
		g.logger.DebugContext(ctx, "admission cancelled",
			"waited", time.Since(start),
			"error", err,
		)
		return err
	}

	waited := time.Since(start)
	g.metrics.recordAdmission("admitted", waited)
	g.metrics.setAvailable(g.limiter.Available())
	if waited > g.limiter.Interval() {
		g.logger.DebugContext(ctx, "admission waited past one window", "waited", waited)
	}

	if err := work(ctx); err != nil {
		g.metrics.recordWork("error")
		return err
	}
	g.metrics.recordWork("ok")
	return nil
}
