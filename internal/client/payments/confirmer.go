package payments

import (
	"context"
	"errors"
	"time"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/models"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/logging"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/retry"
)

// Defaults for the confirmation loop: DefaultMaxAttempts calls in total
// with DefaultDelay between consecutive calls.
const (
	DefaultMaxAttempts = 5
	DefaultDelay       = 2000 * time.Millisecond
)

// API is the confirmation endpoint. client.HTTPClient satisfies it.
type API interface {
	ConfirmPayment(ctx context.Context, subscriptionID string) (*models.ConfirmationResponse, error)
}

// Confirmation is a settled payment.
type Confirmation struct {
	SubscriptionID string
	Status         string
	Message        string
	Attempts       int
}

// ConfirmResult is delivered by ConfirmAsync. Exactly one of the fields is set.
type ConfirmResult struct {
	Confirmation *Confirmation
	Err          *ConfirmationError
}

// Confirmer polls the confirmation endpoint until the payment settles or
// the attempts run out.
type Confirmer struct {
	api    API
	logger logging.Logger
	policy retry.Policy

	// observers, nil outside tests
	onAttempt func(Attempt)
	onDelay   func(time.Duration)
}

// Option configures a Confirmer.
type Option func(*Confirmer)

// WithPolicy overrides the attempt ceiling and delay.
func WithPolicy(p retry.Policy) Option {
	return func(c *Confirmer) { c.policy = p }
}

// WithAttemptObserver is called after every confirmation call.
func WithAttemptObserver(fn func(Attempt)) Option {
	return func(c *Confirmer) { c.onAttempt = fn }
}

// WithDelayObserver is called with each delay before it is slept.
func WithDelayObserver(fn func(time.Duration)) Option {
	return func(c *Confirmer) { c.onDelay = fn }
}

// New returns a Confirmer using DefaultMaxAttempts and DefaultDelay.
func New(api API, logger logging.Logger, opts ...Option) *Confirmer {
	c := &Confirmer{
		api:    api,
		logger: logger.With("module", "payments"),
		policy: retry.Policy{MaxAttempts: DefaultMaxAttempts, Delay: DefaultDelay},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Confirm polls the backend until the payment is settled, definitively
// fails, or the attempts run out. It blocks for up to
// MaxAttempts * Delay plus round trips; use ConfirmAsync from UI code.
// Without cancellation it always runs to one of those outcomes.
func (c *Confirmer) Confirm(ctx context.Context, subscriptionID string) (*Confirmation, error) {
	attempt := &Attempt{SubscriptionID: subscriptionID}

	op := func(ctx context.Context) (*models.ConfirmationResponse, error) {
		resp, err := c.api.ConfirmPayment(ctx, subscriptionID)
		attempt.observe(resp, err)
		if c.onAttempt != nil {
			c.onAttempt(*attempt)
		}
		attempt.AttemptNumber++

		switch attempt.Status {
		case Succeeded:
			return resp, nil
		case Processing:
			c.logger.Debug(ctx, "payment still processing", "subscription_id", subscriptionID, "attempt", attempt.AttemptNumber)
			return nil, errProcessing
		}
		if err == nil {
			err = &declinedError{}
			if resp != nil {
				err = &declinedError{status: resp.Status, message: resp.Message}
			}
		}
		c.logger.Warn(ctx, "payment confirmation attempt failed", "subscription_id", subscriptionID, "attempt", attempt.AttemptNumber, "error", err)
		return nil, err
	}

	res := retry.Do(ctx, c.policy, op, isRetryable, retry.WithDelayHook(c.onDelay))

	if res.Status == retry.Succeeded {
		c.logger.Info(ctx, "payment confirmed", "subscription_id", subscriptionID, "attempts", res.Attempts)
		return &Confirmation{
			SubscriptionID: subscriptionID,
			Status:         res.Value.Status,
			Message:        res.Value.Message,
			Attempts:       res.Attempts,
		}, nil
	}

	cerr := &ConfirmationError{
		SubscriptionID: subscriptionID,
		Reason:         reason(res.Err),
		Attempts:       res.Attempts,
		Err:            res.Err,
	}
	if res.Status == retry.Canceled {
		cerr.Reason = "canceled"
		if errors.Is(res.Err, context.DeadlineExceeded) {
			cerr.Reason = ReasonTimeout
		}
	}
	c.logger.Error(ctx, "payment confirmation failed", "subscription_id", subscriptionID, "outcome", res.Status.String(), "attempts", res.Attempts, "reason", cerr.Reason)
	return nil, cerr
}

// ConfirmAsync runs Confirm on its own goroutine. The channel receives one
// result and is then closed.
func (c *Confirmer) ConfirmAsync(ctx context.Context, subscriptionID string) <-chan ConfirmResult {
	out := make(chan ConfirmResult, 1)
	go func() {
		defer close(out)
		conf, err := c.Confirm(ctx, subscriptionID)
		if err != nil {
			var cerr *ConfirmationError
			if !errors.As(err, &cerr) {
				cerr = &ConfirmationError{SubscriptionID: subscriptionID, Reason: err.Error(), Err: err}
			}
			out <- ConfirmResult{Err: cerr}
			return
		}
		out <- ConfirmResult{Confirmation: conf}
	}()
	return out
}
