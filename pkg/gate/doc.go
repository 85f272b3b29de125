// Package gate runs units of work behind a rate limiter.
//
// A Gate holds a reference to a ratelimit.Limiter and admits each submitted
// unit of work only after acquiring a permit:
//
//	limiter, _ := ratelimit.New(time.Second, 10)
//	g, _ := gate.New(limiter)
//
//	err := g.Submit(ctx, func(ctx context.Context) error {
//	    return client.Post(ctx, payload)
//	})
//
// If the caller's context is cancelled while waiting for admission, the work
// never runs. If the work itself fails, its error is returned verbatim and
// the consumed permit is not refunded: permits account for admission rate,
// not success.
//
// The Gate does not own the limiter. Embedding processes shut the limiter
// down exactly once during teardown, after all submitters have stopped.
package gate
