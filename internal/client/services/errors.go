package services

import (
	"errors"
	"fmt"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/throttle"
)

var (
	ErrAccountLocked      = errors.New("account locked")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotLoggedIn        = errors.New("not logged in")
)

// LockedError is returned by Login while a lockout is active.
type LockedError struct {
	State throttle.LockState
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("account locked for %d more seconds", e.State.RemainingSeconds)
}

func (e *LockedError) Is(target error) bool { return target == ErrAccountLocked }

// RejectedError is a login the server turned down. It counts toward the
// lockout threshold.
type RejectedError struct {
	Message  string
	Failures int
}

func (e *RejectedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return ErrInvalidCredentials.Error()
}

func (e *RejectedError) Is(target error) bool { return target == ErrInvalidCredentials }

// AttemptsLeft is the number of failures still allowed before a lockout.
func (e *RejectedError) AttemptsLeft() int {
	if n := throttle.Threshold - e.Failures; n > 0 {
		return n
	}
	return 0
}
