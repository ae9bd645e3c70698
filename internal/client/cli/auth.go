package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/client"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/services"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/throttle"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func lockMessage(seconds int) string {
	return fmt.Sprintf("Account Locked... %d seconds", seconds)
}

// Login prompts for credentials and authenticates. While the account is
// locked no prompt is shown: the remaining time is printed instead, the
// same way a disabled submit button would show it.
func (a *App) Login(ctx context.Context) error {
	st, err := a.authService.LockStatus(ctx)
	if err != nil {
		printlnFn("Login unavailable:", err.Error())
		return err
	}
	if st.Locked {
		a.showLocked(ctx, st)
		return services.ErrAccountLocked
	}

	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.authService.Login(ctx, userName, password)
	if err != nil {
		var (
			locked   *services.LockedError
			rejected *services.RejectedError
		)
		switch {
		case errors.As(err, &locked):
			printlnFn("Too many failed attempts.")
			a.showLocked(ctx, locked.State)
		case errors.As(err, &rejected):
			printlnFn(fmt.Sprintf("Login unsuccessful: %s (%d attempt(s) left)", rejected.Error(), rejected.AttemptsLeft()))
		case errors.Is(err, client.ErrUnavailable):
			a.setMode(ModeOffline)
			printlnFn("Server unavailable, try again later.")
		default:
			printlnFn("Login unsuccessful:", client.UserMessage(err))
		}
		return err
	}

	a.setSession(sess)
	a.setMode(ModeOnline)
	printlnFn(fmt.Sprintf("Login successful. Welcome, %s!", sess.Username))
	return nil
}

// showLocked records the lockout, prints it, and (re)starts the countdown
// that re-enables login when it reaches zero.
func (a *App) showLocked(ctx context.Context, st throttle.LockState) {
	a.setLock(st)
	printlnFn(lockMessage(st.RemainingSeconds))
	a.authService.WatchLockout(ctx, st, a.onLockTick)
}

func (a *App) onLockTick(st throttle.LockState) {
	a.setLock(st)
	if !st.Locked {
		printlnFn("\nAccount unlocked, you can log in again.")
	}
}

// Logout drops the saved session. Lockout state is not touched.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err.Error())
		return err
	}
	a.setSession(nil)
	printlnFn("Logged out.")
	return nil
}

// Status prints the session, lockout and connectivity.
func (a *App) Status(ctx context.Context) error {
	if sess := a.currentSession(); sess != nil {
		line := "Logged in as " + sess.Username
		if !sess.ExpiresAt.IsZero() {
			line += ", session expires " + sess.ExpiresAt.Local().Format(time.RFC1123)
		}
		printlnFn(line)
	} else {
		printlnFn("Not logged in")
	}

	st, err := a.authService.LockStatus(ctx)
	if err != nil {
		return err
	}
	switch {
	case st.Locked:
		printlnFn(lockMessage(st.RemainingSeconds))
	case st.FailureCount > 0:
		printlnFn(fmt.Sprintf("Failed login attempts: %d of %d", st.FailureCount, throttle.Threshold))
	}

	if m := a.currentMode(); m != "" {
		printlnFn("Server:", string(m))
	}
	return nil
}
