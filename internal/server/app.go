// Package server initializes and runs the FitFlow development backend: it
// seeds the demo accounts, serves the REST API, and shuts down on signal.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/logging"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/server/config"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/server/httpapi"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/server/services"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	userService     *services.UserService
	paymentsService *services.PaymentService
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	us, err := services.NewUserService(c)
	if err != nil {
		return nil, fmt.Errorf("user service init error: %w", err)
	}
	ps := services.NewPaymentService(c)

	return &App{config: c, logger: logger, userService: us, paymentsService: ps}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.EndpointAddr, app.logger, app.userService, app.paymentsService,
		httpapi.WithLoginRateLimit(app.config.LoginRateLimit),
		httpapi.WithTrustProxy(app.config.TrustProxy),
		httpapi.WithCORSOrigins(app.config.CORSOrigins...),
	)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until SIGINT/SIGTERM/SIGQUIT or until ctx is cancelled.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "plans", app.config.Plans, "processing_rounds", app.config.ProcessingRounds)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
