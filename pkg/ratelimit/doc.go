// Package ratelimit provides a fixed-window, blocking rate limiter.
//
// # Overview
//
// The limiter admits at most requestLimit callers per interval. Callers that
// arrive after the window's quota is exhausted block in Acquire until the
// next replenishment tick restores capacity, or until their context is
// cancelled:
//
//	limiter, err := ratelimit.New(time.Second, 5) // 5 admissions per second
//	if err != nil {
//	    return err
//	}
//	defer limiter.Shutdown()
//
//	if err := limiter.Acquire(ctx); err != nil {
//	    return err // cancelled while waiting
//	}
//	// Admitted: perform one unit of gated work.
//
// # Replenishment
//
// A dedicated goroutine, driven by a time.Ticker, restores the pool to
// requestLimit on every tick. Permits are never returned by callers: this is
// a rate limiter, not a concurrency semaphore, so a completed operation does
// not free a slot for another caller within the same window. A tick that
// finds the pool full is a no-op, and an idle limiter never accumulates more
// than requestLimit permits regardless of how many windows pass.
//
// # Thread Safety
//
// All operations are safe for unbounded concurrent callers. The permit pool
// is a buffered channel, so decrements (Acquire) and increments (the tick)
// are individually atomic and never race.
package ratelimit
