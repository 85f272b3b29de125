package gate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"crptlabs/crptgate/pkg/ratelimit"
)

func newTestLimiter(t *testing.T, interval time.Duration, limit int) *ratelimit.Limiter {
	t.Helper()
	limiter, err := ratelimit.New(interval, limit)
	if err != nil {
		t.Fatalf("ratelimit.New failed: %v", err)
	}
	t.Cleanup(limiter.Shutdown)
	return limiter
}

func TestNew_RequiresLimiter(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("Expected error for nil limiter")
	}
}

func TestSubmit_RunsWorkAfterAdmission(t *testing.T) {
	limiter := newTestLimiter(t, time.Second, 1)
	g, err := New(limiter)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ran := false
	err = g.Submit(context.Background(), func(ctx context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if !ran {
		t.Error("Expected work to run")
	}
	if limiter.Available() != 0 {
		t.Errorf("Expected permit consumed, available=%d", limiter.Available())
	}
}

func TestSubmit_CancelledAcquireSkipsWork(t *testing.T) {
	limiter := newTestLimiter(t, time.Hour, 1)
	g, err := New(limiter)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Exhaust the window so the next submit has to wait.
	if err := g.Submit(context.Background(), func(ctx context.Context) error { return nil }); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	ran := false
	err = g.Submit(ctx, func(ctx context.Context) error {
		ran = true
		return nil
	})
	if err == nil {
		t.Fatal("Expected error from cancelled submit")
	}
	if !errors.Is(err, ratelimit.ErrAcquireCancelled) {
		t.Errorf("Expected ErrAcquireCancelled, got %v", err)
	}
	if ran {
		t.Error("Work ran despite cancelled admission")
	}
}

func TestSubmit_WorkErrorReturnedVerbatim(t *testing.T) {
	limiter := newTestLimiter(t, time.Second, 2)
	g, err := New(limiter)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	workErr := errors.New("transport exploded")
	err = g.Submit(context.Background(), func(ctx context.Context) error {
		return workErr
	})
	if !errors.Is(err, workErr) {
		t.Errorf("Expected work error verbatim, got %v", err)
	}

	// The failed work's permit stays consumed.
	if limiter.Available() != 1 {
		t.Errorf("Expected 1 permit left after failed work, got %d", limiter.Available())
	}
}

func TestSubmit_PermitNotRefundedOnSuccess(t *testing.T) {
	limiter := newTestLimiter(t, time.Hour, 1)
	g, err := New(limiter)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := g.Submit(context.Background(), func(ctx context.Context) error { return nil }); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	// Completion does not free a slot within the same window.
	if limiter.Available() != 0 {
		t.Errorf("Expected 0 available after completed work, got %d", limiter.Available())
	}
}

func TestSubmit_WithMetrics(t *testing.T) {
	limiter := newTestLimiter(t, time.Second, 2)
	m := NewMetricsWith(prometheus.NewRegistry())
	g, err := New(limiter, WithMetrics(m))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := g.Submit(context.Background(), func(ctx context.Context) error { return nil }); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	err = g.Submit(context.Background(), func(ctx context.Context) error {
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("Expected work error")
	}
}
