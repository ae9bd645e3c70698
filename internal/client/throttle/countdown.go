package throttle

import (
	"context"
	"time"
)

type countdown struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// StartCountdown decrements state.RemainingSeconds once per tick interval on
// a background goroutine and reports every step to onTick. The final call
// has Locked == false; by then the record is cleared and the countdown has
// stopped itself. Any countdown already running is cancelled first. An
// unlocked state starts nothing.
func (t *Throttle) StartCountdown(ctx context.Context, state LockState, onTick func(LockState)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	if !state.Locked || state.RemainingSeconds <= 0 {
		return
	}

	cctx, cancel := context.WithCancel(ctx)
	cd := &countdown{cancel: cancel, done: make(chan struct{})}
	t.countdown = cd

	go t.runCountdown(cctx, cd, state, onTick)
}

// StopCountdown cancels the running countdown, if any. It does not wait for
// the goroutine to exit.
func (t *Throttle) StopCountdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

// CountdownActive reports whether a countdown is running.
func (t *Throttle) CountdownActive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.countdown != nil
}

// Close releases the countdown timer. Call it when the owning UI goes away.
func (t *Throttle) Close() {
	t.StopCountdown()
}

func (t *Throttle) stopLocked() {
	if t.countdown != nil {
		t.countdown.cancel()
		t.countdown = nil
	}
}

func (t *Throttle) runCountdown(ctx context.Context, cd *countdown, state LockState, onTick func(LockState)) {
	defer close(cd.done)

	ticker := time.NewTicker(t.tickInterval)
	defer ticker.Stop()

	remaining := state.RemainingSeconds
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		next, err := t.Tick(ctx, remaining)
		if err != nil {
			// An uncleared record is treated as expired by the next CheckLockStatus.
			t.logger.Error(ctx, "lockout countdown: clear failed", "error", err)
		}
		remaining = next

		step := LockState{Locked: next > 0, RemainingSeconds: next}
		if step.Locked {
			step.FailureCount = state.FailureCount
		}

		if !t.emit(cd, step, onTick) {
			return
		}
		if !step.Locked {
			t.release(cd)
			return
		}
	}
}

// emit calls onTick unless cd was stopped or replaced meanwhile.
func (t *Throttle) emit(cd *countdown, step LockState, onTick func(LockState)) bool {
	t.mu.Lock()
	current := t.countdown == cd
	t.mu.Unlock()
	if !current {
		return false
	}
	if onTick != nil {
		onTick(step)
	}
	return true
}

func (t *Throttle) release(cd *countdown) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.countdown == cd {
		cd.cancel()
		t.countdown = nil
	}
}
