// Package services contains the application services of the FitFlow client.
// This file defines the authentication service: throttled login, the saved
// session, logout and the liveness probe.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/client"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/models"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/repositories/kv"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/throttle"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/common"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/dbx"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - LockStatus: current lockout, to be checked when the login prompt opens.
//   - Login: refuse while locked, otherwise authenticate against the server,
//     count rejections, and persist the session on success.
//   - WatchLockout: run the one-second lockout countdown.
//   - Session / Logout: read or drop the saved session.
//   - Ping / Close: server liveness and cleanup.
type AuthService interface {
	LockStatus(ctx context.Context) (throttle.LockState, error)
	Login(ctx context.Context, username string, password []byte) (*models.Session, error)
	WatchLockout(ctx context.Context, state throttle.LockState, onTick func(throttle.LockState))
	Session(ctx context.Context) (*models.Session, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client   client.Client
	db       *sql.DB
	throttle *throttle.Throttle
	logger   logging.Logger
	now      func() time.Time
}

// NewAuthService constructs an AuthService bound to the API client, the local
// database, and a throttle persisting into that database.
func NewAuthService(c client.Client, db *sql.DB, th *throttle.Throttle, logger logging.Logger) AuthService {
	return &authService{
		client:   c,
		db:       db,
		throttle: th,
		logger:   logger.With("module", "auth_service"),
		now:      time.Now,
	}
}

func (a *authService) getStore() kv.Store {
	return kv.NewSQLiteStore(a.db)
}

func (a *authService) LockStatus(ctx context.Context) (throttle.LockState, error) {
	return a.throttle.CheckLockStatus(ctx)
}

// Login returns *LockedError (ErrAccountLocked) while locked and
// *RejectedError (ErrInvalidCredentials) when the server turns the
// credentials down; the rejection that reaches the threshold returns
// *LockedError instead. Transport and server-side failures are returned
// wrapped and do not count as failed attempts.
func (a *authService) Login(ctx context.Context, username string, password []byte) (*models.Session, error) {
	state, err := a.throttle.CheckLockStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("check lock status: %w", err)
	}
	if state.Locked {
		return nil, &LockedError{State: state}
	}

	res, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		var he *client.HTTPError
		if errors.As(err, &he) && !he.Temporary() {
			return nil, a.reject(ctx, he.Message)
		}
		return nil, fmt.Errorf("login error: %w", err)
	}
	if !res.OK {
		return nil, a.reject(ctx, res.Message)
	}

	if err := a.throttle.RecordSuccess(ctx); err != nil {
		return nil, fmt.Errorf("reset login attempts: %w", err)
	}

	session := &models.Session{Username: username, Token: res.Token}
	if _, exp, err := client.TokenClaims(res.Token); err == nil {
		session.ExpiresAt = exp
	} else {
		a.logger.Debug(ctx, "session token has no readable claims", "error", err)
	}

	if err := a.saveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	a.client.SetToken(session.Token)
	a.logger.Info(ctx, "logged in", "username", username)
	return session, nil
}

func (a *authService) reject(ctx context.Context, message string) error {
	state, err := a.throttle.RecordFailure(ctx)
	if err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	if state.Locked {
		return &LockedError{State: state}
	}
	return &RejectedError{Message: message, Failures: state.FailureCount}
}

func (a *authService) WatchLockout(ctx context.Context, state throttle.LockState, onTick func(throttle.LockState)) {
	a.throttle.StartCountdown(ctx, state, onTick)
}

// saveSession persists username, token and expiry in a single transaction.
func (a *authService) saveSession(ctx context.Context, s *models.Session) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		store := kv.NewSQLiteStore(tx)
		if err := store.Set(ctx, common.SessionUserKey, []byte(s.Username)); err != nil {
			return err
		}
		if err := store.Set(ctx, common.SessionTokenKey, []byte(s.Token)); err != nil {
			return err
		}
		var exp []byte
		if !s.ExpiresAt.IsZero() {
			exp = []byte(s.ExpiresAt.UTC().Format(time.RFC3339))
		}
		return store.Set(ctx, common.SessionExpiresKey, exp)
	})
}

// Session returns the saved session, or ErrNotLoggedIn when there is none
// or it has expired. A valid session also authorizes the API client.
func (a *authService) Session(ctx context.Context) (*models.Session, error) {
	store := a.getStore()

	user, err := store.Get(ctx, common.SessionUserKey)
	if err != nil {
		return nil, err
	}
	token, err := store.Get(ctx, common.SessionTokenKey)
	if err != nil {
		return nil, err
	}
	exp, err := store.Get(ctx, common.SessionExpiresKey)
	if err != nil {
		return nil, err
	}

	s := &models.Session{Username: string(user), Token: string(token)}
	if len(exp) > 0 {
		if s.ExpiresAt, err = time.Parse(time.RFC3339, string(exp)); err != nil {
			return nil, fmt.Errorf("%w: bad session expiry", client.ErrLocalDataNotAvailable)
		}
	}
	if !s.Valid(a.now()) {
		return nil, ErrNotLoggedIn
	}
	a.client.SetToken(s.Token)
	return s, nil
}

// Logout drops the saved session. Throttle state is kept.
func (a *authService) Logout(ctx context.Context) error {
	a.client.SetToken("")
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		store := kv.NewSQLiteStore(tx)
		for _, k := range []string{common.SessionUserKey, common.SessionTokenKey, common.SessionExpiresKey} {
			if err := store.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close stops any lockout countdown and releases the client.
func (a *authService) Close(ctx context.Context) error {
	a.throttle.Close()
	return a.client.Close()
}
