// Package throttle implements the device-local login throttle.
//
// Consecutive failed logins are counted in a LoginAttemptRecord kept in a
// durable key-value store, so a lockout survives an application restart.
// After Threshold failures the account is locked for LockoutWindow; while
// locked, further failures do not move the window. A successful login or
// the window elapsing clears the record.
//
// The throttle also owns the one-second countdown shown to the user while
// locked (see StartCountdown). At most one countdown runs per Throttle.
package throttle
