// Package retry runs an operation under a bounded, fixed-delay retry policy
// and reports how it ended as a tagged Result.
//
// Scheduling is delegated to github.com/sethvargo/go-retry: a constant
// backoff capped with WithMaxRetries. The caller decides which errors are
// worth another attempt through an isRetryable predicate.
package retry

import (
	"context"
	"errors"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

// Policy bounds a retry loop. MaxAttempts counts the first call.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// Status tags how Do finished.
type Status int

const (
	// Succeeded means op returned a nil error.
	Succeeded Status = iota
	// Exhausted means every attempt failed with a retryable error.
	Exhausted
	// Failed means op returned an error isRetryable rejected.
	Failed
	// Canceled means the context ended before a definitive outcome.
	Canceled
)

func (s Status) String() string {
	switch s {
	case Succeeded:
		return "succeeded"
	case Exhausted:
		return "exhausted"
	case Failed:
		return "failed"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Result is the outcome of Do. Err holds the last error seen (nil on success).
type Result[T any] struct {
	Value    T
	Status   Status
	Attempts int
	Err      error
}

type options struct {
	onRetry   func(attempt int, err error)
	delayHook func(time.Duration)
}

type Option func(*options)

// WithOnRetry is called after a retryable failure that will be retried.
// attempt is the 1-based number of the attempt that failed.
func WithOnRetry(fn func(attempt int, err error)) Option {
	return func(o *options) { o.onRetry = fn }
}

// WithDelayHook is called with every delay the backoff hands out.
func WithDelayHook(fn func(time.Duration)) Option {
	return func(o *options) { o.delayHook = fn }
}

// Do calls op until it succeeds, fails with a non-retryable error, runs out
// of attempts, or ctx is done. A nil isRetryable retries every error.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error), isRetryable func(error) bool, opts ...Option) Result[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if isRetryable == nil {
		isRetryable = func(error) bool { return true }
	}

	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var (
		res     Result[T]
		lastErr error
	)

	err := goretry.Do(ctx, newBackoff(p.Delay, maxAttempts, o.delayHook), func(ctx context.Context) error {
		res.Attempts++
		v, err := op(ctx)
		if err == nil {
			res.Value = v
			return nil
		}
		lastErr = err
		if !isRetryable(err) {
			return err
		}
		if res.Attempts < maxAttempts && o.onRetry != nil {
			o.onRetry(res.Attempts, err)
		}
		return goretry.RetryableError(err)
	})

	switch {
	case err == nil:
		res.Status = Succeeded
		return res
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		res.Status = Canceled
		res.Err = err
		return res
	case isRetryable(lastErr) && res.Attempts >= maxAttempts:
		res.Status = Exhausted
	default:
		res.Status = Failed
	}
	res.Err = lastErr
	return res
}

func newBackoff(delay time.Duration, maxAttempts int, hook func(time.Duration)) goretry.Backoff {
	constant := goretry.BackoffFunc(func() (time.Duration, bool) {
		if hook != nil {
			hook(delay)
		}
		return delay, false
	})
	return goretry.WithMaxRetries(uint64(maxAttempts-1), constant)
}
