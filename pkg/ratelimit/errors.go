package ratelimit

import (
	"errors"
	"fmt"
)

// ErrAcquireCancelled is wrapped into the error returned by Acquire when the
// caller's context is cancelled while waiting for a permit. The returned
// error also wraps the context's own error, so both
// errors.Is(err, ErrAcquireCancelled) and errors.Is(err, context.Canceled)
// hold.
var ErrAcquireCancelled = errors.New("acquire cancelled while waiting for permit")

// InvalidConfigError reports an invalid limiter configuration at
// construction time. It is never retried.
type InvalidConfigError struct {
	// Field is the configuration field that failed validation.
	Field string

	// Message is a human-readable description of the failure.
	Message string
}

// Error returns the formatted validation failure.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("ratelimit: invalid configuration: %s: %s", e.Field, e.Message)
}
