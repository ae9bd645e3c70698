package throttle

import (
	"context"
	"testing"
	"time"

	"pgregory.net/rapid"
)

func TestProperty_FewerThanThresholdNeverLocks(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, Threshold-1).Draw(rt, "failures")
		th := newThrottle(newMemStore(), newFakeClock())
		ctx := context.Background()

		for i := 0; i < n; i++ {
			if _, err := th.RecordFailure(ctx); err != nil {
				rt.Fatalf("RecordFailure: %v", err)
			}
		}

		st, err := th.CheckLockStatus(ctx)
		if err != nil {
			rt.Fatalf("CheckLockStatus: %v", err)
		}
		if st.Locked || st.FailureCount != n {
			rt.Fatalf("after %d failures got %+v", n, st)
		}
	})
}

// Runs random sequences of failures, successes and clock jumps against a
// simple reference model of the policy.
func TestProperty_MatchesModel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		clock := newFakeClock()
		th := newThrottle(newMemStore(), clock)
		ctx := context.Background()

		var (
			count    int
			lockedAt *time.Time
		)
		modelLocked := func() bool {
			if lockedAt == nil {
				return false
			}
			if clock.Now().Sub(*lockedAt) >= LockoutWindow {
				count, lockedAt = 0, nil
				return false
			}
			return true
		}

		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 2).Draw(rt, "op") {
			case 0:
				st, err := th.RecordFailure(ctx)
				if err != nil {
					rt.Fatalf("RecordFailure: %v", err)
				}
				if !modelLocked() {
					count++
					if count >= Threshold {
						now := clock.Now()
						lockedAt = &now
					}
				}
				if st.Locked != (lockedAt != nil) {
					rt.Fatalf("step %d: locked=%v, model count=%d", i, st.Locked, count)
				}
			case 1:
				if err := th.RecordSuccess(ctx); err != nil {
					rt.Fatalf("RecordSuccess: %v", err)
				}
				count, lockedAt = 0, nil
			case 2:
				clock.Advance(time.Duration(rapid.IntRange(0, 90).Draw(rt, "seconds")) * time.Second)
			}

			st, err := th.CheckLockStatus(ctx)
			if err != nil {
				rt.Fatalf("CheckLockStatus: %v", err)
			}
			locked := modelLocked()
			if st.Locked != locked {
				rt.Fatalf("step %d: got %+v, model locked=%v count=%d", i, st, locked, count)
			}
			if st.FailureCount != count {
				rt.Fatalf("step %d: failure count %d, model %d", i, st.FailureCount, count)
			}
			if locked {
				want := ceilSeconds(LockoutWindow - clock.Now().Sub(*lockedAt))
				if st.RemainingSeconds != want {
					rt.Fatalf("step %d: remaining %d, want %d", i, st.RemainingSeconds, want)
				}
			}
		}
	})
}
