package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors shared by the cache consumers.
var (
	// ErrNotFound is returned when a requested remote resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNetwork is returned for timeouts, connection errors and 5xx responses.
	ErrNetwork = errors.New("network error")

	// ErrCacheMiss is returned by helpers that treat a miss as an error.
	ErrCacheMiss = errors.New("cache miss")
)

// RetryableError marks an error that should trigger another attempt.
type RetryableError struct{ Err error }

// Retryable wraps err as a [RetryableError]. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err wraps a [RetryableError].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryPolicy configures [RetryPolicy.Do].
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration // doubled after every failed attempt
}

// DefaultRetryPolicy is three attempts starting at one second.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Delay: time.Second}

// Do calls fn until it succeeds, returns a non-retryable error, or the
// attempts run out. The last error is returned.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Delay
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// RetryWithBackoff runs fn under [DefaultRetryPolicy].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultRetryPolicy.Do(ctx, fn)
}
