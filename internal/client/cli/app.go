package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/client"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/config"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/models"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/payments"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/repositories/kv"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/services"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/throttle"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/filex"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config              *config.Config
	logger              logging.Logger
	db                  *sql.DB
	authService         services.AuthService
	subscriptionService services.SubscriptionService
	reader              *bufio.Reader
	out                 io.Writer

	mu      sync.Mutex
	session *models.Session
	lock    throttle.LockState
	mode    Mode
}

// Option adjusts an App built by NewApp.
type Option func(*appOptions)

type appOptions struct {
	in            io.Reader
	out           io.Writer
	confirmPolicy []payments.Option
	throttleOpts  []throttle.Option
}

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(o *appOptions) { o.in, o.out = in, out }
}

// WithConfirmerOptions is passed on to payments.New.
func WithConfirmerOptions(opts ...payments.Option) Option {
	return func(o *appOptions) { o.confirmPolicy = append(o.confirmPolicy, opts...) }
}

// WithThrottleOptions is passed on to throttle.New.
func WithThrottleOptions(opts ...throttle.Option) Option {
	return func(o *appOptions) { o.throttleOpts = append(o.throttleOpts, opts...) }
}

// NewApp opens the local database and wires the API client, throttle,
// confirmer and services.
func NewApp(c *config.Config, opts ...Option) (*App, error) {
	o := appOptions{in: os.Stdin, out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	ctx := context.Background()
	logger := logging.New(os.Stderr, c.LogLevel)

	if _, err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, fmt.Errorf("error preparing database directory: %w", err)
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient := client.NewHTTPClient(c.ServerEndpointAddr, c.RequestTimeout, logger)
	th := throttle.New(kv.NewSQLiteStore(db), logger, o.throttleOpts...)
	confirmer := payments.New(apiClient, logger, o.confirmPolicy...)

	as := services.NewAuthService(apiClient, db, th, logger)
	ss := services.NewSubscriptionService(apiClient, confirmer, logger)

	return &App{
		config:              c,
		logger:              logger,
		db:                  db,
		authService:         as,
		subscriptionService: ss,
		reader:              bufio.NewReader(o.in),
		out:                 o.out,
	}, nil
}

// Run blocks in the REPL and releases resources when it returns.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)
	a.Root(ctx)
}

func (a *App) Close(ctx context.Context) {
	if err := a.authService.Close(ctx); err != nil {
		a.logger.Warn(ctx, "close api client", "error", err)
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		printlnFn(fmt.Sprintf("Switched to %s mode", mode))
	}
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setSession(s *models.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = s
}

func (a *App) currentSession() *models.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

func (a *App) setLock(st throttle.LockState) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lock = st
}

func (a *App) lockState() throttle.LockState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lock
}

func (a *App) isLoggedIn() bool {
	return a.currentSession() != nil
}

// checkOnline pings the backend once and updates the mode.
func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.authService.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the backend every interval until ctx ends.
// A non-positive interval disables the watcher.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		a.logger.Warn(ctx, "online status watcher disabled", "interval", interval)
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
