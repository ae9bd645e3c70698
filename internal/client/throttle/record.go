package throttle

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	// Threshold is the number of consecutive failures that starts a lockout.
	Threshold = 5
	// LockoutWindow is how long a lockout lasts. It does not grow on repeat offenses.
	LockoutWindow = 60 * time.Second
	// TickInterval is the countdown step.
	TickInterval = time.Second
)

// Record is the persisted LoginAttemptRecord.
// LockTimestamp != nil implies FailureCount >= Threshold.
type Record struct {
	FailureCount  int        `json:"failureCount"`
	LockTimestamp *time.Time `json:"lockTimestamp"`
}

// LockState is what the UI needs to decide whether to allow a submission.
type LockState struct {
	Locked           bool
	RemainingSeconds int
	FailureCount     int
}

func encodeRecord(r *Record) ([]byte, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode login attempt record: %w", err)
	}
	return b, nil
}

func decodeRecord(b []byte) (*Record, error) {
	var r Record
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("decode login attempt record: %w", err)
	}
	if r.FailureCount < 0 {
		return nil, fmt.Errorf("decode login attempt record: negative failure count %d", r.FailureCount)
	}
	return &r, nil
}

// ceilSeconds rounds d up to whole seconds.
func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
