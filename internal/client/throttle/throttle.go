package throttle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/common"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/logging"
)

// Store is the part of the key-value store the throttle uses.
// kv.SQLiteStore satisfies it.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Throttle enforces the login lockout. It persists its record in a Store
// and drives the on-screen countdown.
type Throttle struct {
	store        Store
	key          string
	now          func() time.Time
	tickInterval time.Duration
	logger       logging.Logger

	mu        sync.Mutex
	countdown *countdown
}

// Option configures a Throttle.
type Option func(*Throttle)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Throttle) { t.now = now }
}

// WithTickInterval changes the countdown step. Tests use it to run a
// 60-tick countdown in milliseconds.
func WithTickInterval(d time.Duration) Option {
	return func(t *Throttle) { t.tickInterval = d }
}

// WithKey changes the store key of the record.
func WithKey(key string) Option {
	return func(t *Throttle) { t.key = key }
}

// New returns a Throttle keyed on common.LoginAttemptsKey.
func New(store Store, logger logging.Logger, opts ...Option) *Throttle {
	t := &Throttle{
		store:        store,
		key:          common.LoginAttemptsKey,
		now:          time.Now,
		tickInterval: TickInterval,
		logger:       logger.With("module", "throttle"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// CheckLockStatus reports whether a login may be attempted now. An expired
// lockout is cleared as a side effect. Call it when the login screen opens so
// a lockout carries over an app restart.
func (t *Throttle) CheckLockStatus(ctx context.Context) (LockState, error) {
	state, _, err := t.status(ctx)
	return state, err
}

// RecordFailure counts a rejected login. While locked it returns the current
// lock unchanged.
func (t *Throttle) RecordFailure(ctx context.Context) (LockState, error) {
	state, rec, err := t.status(ctx)
	if err != nil {
		return LockState{}, err
	}
	if state.Locked {
		return state, nil
	}

	next := &Record{FailureCount: 1}
	if rec != nil {
		next.FailureCount = rec.FailureCount + 1
	}
	if next.FailureCount >= Threshold {
		now := t.now()
		next.LockTimestamp = &now
	}

	if err := t.save(ctx, next); err != nil {
		return LockState{}, err
	}

	if next.LockTimestamp != nil {
		t.logger.Warn(ctx, "login locked", "failures", next.FailureCount, "window", LockoutWindow)
		return LockState{
			Locked:           true,
			RemainingSeconds: ceilSeconds(LockoutWindow),
			FailureCount:     next.FailureCount,
		}, nil
	}

	t.logger.Info(ctx, "login failure recorded", "failures", next.FailureCount)
	return LockState{FailureCount: next.FailureCount}, nil
}

// RecordSuccess clears the record. Call it only after the server accepted
// the credentials.
func (t *Throttle) RecordSuccess(ctx context.Context) error {
	t.StopCountdown()
	return t.clear(ctx)
}

// Tick advances a countdown by one second and returns the seconds left.
// When it reaches zero a locked record is cleared. An unlocked record is
// kept: it holds failures counted after the lock already expired.
func (t *Throttle) Tick(ctx context.Context, remaining int) (int, error) {
	next := remaining - 1
	if next > 0 {
		return next, nil
	}
	rec, err := t.load(ctx)
	if err != nil {
		return 0, err
	}
	if rec == nil || rec.LockTimestamp == nil {
		return 0, nil
	}
	if err := t.clear(ctx); err != nil {
		return 0, err
	}
	t.logger.Info(ctx, "lockout countdown finished")
	return 0, nil
}

// status loads the record and evaluates it against the clock. The returned
// record is nil when nothing is stored or an expired lock was just cleared.
func (t *Throttle) status(ctx context.Context) (LockState, *Record, error) {
	rec, err := t.load(ctx)
	if err != nil || rec == nil {
		return LockState{}, nil, err
	}

	if rec.LockTimestamp == nil {
		return LockState{FailureCount: rec.FailureCount}, rec, nil
	}

	elapsed := t.now().Sub(*rec.LockTimestamp)
	if elapsed < 0 {
		// Clock moved backwards: keep the full window.
		elapsed = 0
	}
	if elapsed >= LockoutWindow {
		if err := t.clear(ctx); err != nil {
			return LockState{}, nil, err
		}
		t.logger.Info(ctx, "lockout expired", "elapsed", elapsed)
		return LockState{}, nil, nil
	}

	return LockState{
		Locked:           true,
		RemainingSeconds: ceilSeconds(LockoutWindow - elapsed),
		FailureCount:     rec.FailureCount,
	}, rec, nil
}

func (t *Throttle) load(ctx context.Context) (*Record, error) {
	b, err := t.store.Get(ctx, t.key)
	if err != nil {
		return nil, fmt.Errorf("load login attempts: %w", err)
	}
	if b == nil {
		return nil, nil
	}
	rec, err := decodeRecord(b)
	if err != nil {
		t.logger.Warn(ctx, "discarding unreadable login attempt record", "error", err)
		if err := t.clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return rec, nil
}

func (t *Throttle) save(ctx context.Context, rec *Record) error {
	b, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	if err := t.store.Set(ctx, t.key, b); err != nil {
		return fmt.Errorf("save login attempts: %w", err)
	}
	return nil
}

func (t *Throttle) clear(ctx context.Context) error {
	if err := t.store.Delete(ctx, t.key); err != nil {
		return fmt.Errorf("clear login attempts: %w", err)
	}
	return nil
}
