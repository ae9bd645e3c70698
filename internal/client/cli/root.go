package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/services"
)

func (a *App) getStatus() string {
	s := ""
	if sess := a.currentSession(); sess != nil {
		s = sess.Username + " "
	}
	if st := a.lockState(); st.Locked {
		s += fmt.Sprintf("locked %ds ", st.RemainingSeconds)
	}
	if m := a.currentMode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// restore picks up state left by a previous run: the saved session and a
// lockout that has not yet expired.
func (a *App) restore(ctx context.Context) {
	sess, err := a.authService.Session(ctx)
	switch {
	case err == nil:
		a.setSession(sess)
		printlnFn(fmt.Sprintf("Welcome back, %s!", sess.Username))
	case !errors.Is(err, services.ErrNotLoggedIn):
		a.logger.Warn(ctx, "could not restore session", "error", err)
	}

	st, err := a.authService.LockStatus(ctx)
	if err != nil {
		a.logger.Warn(ctx, "could not read lock status", "error", err)
		return
	}
	if st.Locked {
		a.showLocked(ctx, st)
	}
}

// Root runs the REPL until the user exits or input ends.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn("Welcome to FitFlow CLI (type 'help' for commands)")

	a.checkOnline(ctx)
	a.restore(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}
