// Package server initializes and runs the AccountKeeper server.
// It opens the account store, applies migrations, seeds the bootstrap
// administrator, and runs the gRPC and metrics endpoints until shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/dmitrijs2005/accountkeeper/internal/logging"
	"github.com/dmitrijs2005/accountkeeper/internal/server/auth"
	"github.com/dmitrijs2005/accountkeeper/internal/server/config"
	"github.com/dmitrijs2005/accountkeeper/internal/server/observability"
	"github.com/dmitrijs2005/accountkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/accountkeeper/internal/server/services"

	gs "github.com/dmitrijs2005/accountkeeper/internal/server/grpc"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	manager        repomanager.RepositoryManager
	accountService *services.AccountService
	observability  *observability.Server
	ready          atomic.Bool
}

// NewApp opens the configured store and assembles the account service.
// The returned App owns the store and releases it when Run returns.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	return newApp(ctx, c, logging.NewJSONLogger(os.Stdout, level))
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	um, err := repomanager.New(ctx, repomanager.Options{
		DSN:            c.DatabaseDSN,
		ConnectRetries: c.DBConnectRetries,
		Logger:         logger,
	})
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app := &App{config: c, logger: logger, manager: um}
	app.observability = observability.NewServer(c.MetricsAddr, logger, app.ready.Load)

	hasher := auth.NewArgon2idHasher(auth.DefaultArgon2Params, c.HashConcurrency)
	tokens := auth.NewTokenIssuer([]byte(c.SecretKey), c.TokenValidityDuration)

	app.accountService = services.NewAccountService(um.Accounts(), hasher, tokens,
		services.WithLogger(logger),
		services.WithMetrics(services.NewMetrics(app.observability.Registerer())),
	)

	return app, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) prepare(ctx context.Context) error {
	if err := app.manager.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	err := app.accountService.Bootstrap(ctx, services.BootstrapConfig{
		Login:       app.config.AdminLogin,
		Password:    app.config.AdminPassword,
		DisplayName: app.config.AdminName,
	})
	if err != nil {
		app.logger.Warn(ctx, "bootstrap admin failed", "error", err)
	}
	return nil
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.accountService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startObservabilityServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.observability.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a termination signal arrives or one of
// the endpoints fails. It always closes the store before returning.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	defer func() {
		if err := app.manager.Close(); err != nil {
			app.logger.Error(ctx, "closing store", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	if err := app.prepare(ctx); err != nil {
		return err
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.config.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startObservabilityServer(ctx, cancelFunc)
		}()
	}

	app.ready.Store(true)
	wg.Wait()
	app.ready.Store(false)

	app.logger.Info(context.WithoutCancel(ctx), "App stopped")
	return nil
}
